// Package services contains stateless domain services that coordinate
// behavior across aggregates.
//
// StockReservationService applies an order's line items against inventory
// records as a single all-or-nothing batch. It holds no state of its own;
// callers provide the records, and concurrent isolation comes from the
// transaction (row locks) the records were loaded under.
package services
