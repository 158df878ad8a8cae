// Package order contains the order aggregate and its lifecycle state machine.
//
// An order moves along the forward path
//
//	PendingApproval -> Processing -> InTransit -> Delivered
//
// with Cancelled reachable from PendingApproval (rejection or cancellation)
// and from Processing (cancellation). Orders already in transit or delivered
// cannot be cancelled here; post-dispatch returns are handled outside this core.
//
// The aggregate keeps every field private and mutates state exclusively through
// guarded transition methods, so a failed transition never leaves the order
// partially changed. Monetary amounts are integer minor units snapshotted at
// order time; later catalog price changes never alter a placed order.
package order
