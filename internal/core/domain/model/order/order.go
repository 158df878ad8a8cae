package order

import (
	"errors"
	"time"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Pricing rules applied once at order time. The total is never recomputed
// implicitly afterwards; only ReplaceItems while pending approval does.
const (
	// DeliveryFee is the flat delivery charge in minor currency units.
	DeliveryFee = 99

	// TaxRatePercent is the sales tax applied to the item subtotal.
	TaxRatePercent = 18
)

// Order is the aggregate root for a medicine-delivery order. It owns the
// lifecycle state machine and guards every mutation so that an order is either
// fully transitioned or left untouched.
//
// Invariants:
//   - id is immutable and valid
//   - items are never empty and each is a validated value object
//   - total = subtotal + tax + delivery fee, fixed at creation (or item edit)
//   - assignedAgent is held only in Processing, InTransit, or Delivered,
//     and is required in InTransit and Delivered
//   - rejectionReason is set only when Cancelled via Reject
type Order struct {
	id                   kernel.UUID
	customer             string
	items                []Item
	status               Status
	total                int
	deliveryAddress      string
	deliveryInstructions string
	assignedAgent        string
	rejectionReason      string
	paymentMethod        string
	paymentStatus        string
	createdAt            time.Time

	isConstructed bool
}

// NewOrder creates an order in PendingApproval from a checkout submission.
// The total is computed from the item price snapshots plus tax and the flat
// delivery fee. paymentMethod and paymentStatus are snapshots supplied by the
// external payment collaborator.
func NewOrder(
	id kernel.UUID,
	customer string,
	items []Item,
	deliveryAddress string,
	deliveryInstructions string,
	paymentMethod string,
	paymentStatus string,
) (*Order, error) {
	o := &Order{
		status:               PendingApproval,
		deliveryInstructions: deliveryInstructions,
		paymentStatus:        paymentStatus,
		createdAt:            time.Now().UTC(),
		isConstructed:        true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time side effects. The stored status, agent, and total are taken
// as-is after consistency checks.
func RestoreOrder(
	id kernel.UUID,
	customer string,
	items []Item,
	status Status,
	total int,
	deliveryAddress string,
	deliveryInstructions string,
	assignedAgent string,
	rejectionReason string,
	paymentMethod string,
	paymentStatus string,
	createdAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveAgent(assignedAgent != ""); err != nil {
		return nil, err
	}
	if rejectionReason != "" && status != Cancelled {
		return nil, errs.NewValueIsInvalidError("rejection reason on a non-cancelled order")
	}

	o := &Order{
		status:               status,
		total:                total,
		deliveryInstructions: deliveryInstructions,
		assignedAgent:        assignedAgent,
		rejectionReason:      rejectionReason,
		paymentStatus:        paymentStatus,
		createdAt:            createdAt,
		isConstructed:        true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	// Keep the persisted total: pricing constants may change between releases
	// but placed orders are never repriced.
	o.total = total

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the purchaser's display identifier.
func (o *Order) Customer() string {
	return o.customer
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the order total in minor currency units.
func (o *Order) Total() int {
	return o.total
}

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryInstructions returns free-text delivery notes, possibly empty.
func (o *Order) DeliveryInstructions() string {
	return o.deliveryInstructions
}

// AssignedAgent returns the delivery unit identifier (e.g. a drone code),
// or the empty string if none is assigned.
func (o *Order) AssignedAgent() string {
	return o.assignedAgent
}

// RejectionReason returns the reason recorded on rejection, or the empty string.
func (o *Order) RejectionReason() string {
	return o.rejectionReason
}

// PaymentMethod returns the payment method snapshot.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// PaymentStatus returns the payment status token from the payment collaborator.
func (o *Order) PaymentStatus() string {
	return o.paymentStatus
}

// CreatedAt returns the order creation time (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Approve transitions PendingApproval -> Processing. Stock reservation is
// coordinated by the application layer in the same transaction; the aggregate
// only enforces the state machine.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject transitions PendingApproval -> Cancelled, recording a non-empty reason.
func (o *Order) Reject(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.rejectionReason = reason
	return nil
}

// AssignAgent records the delivery unit for the order. Only legal while
// Processing; reassignment before dispatch overwrites the previous agent.
func (o *Order) AssignAgent(agentID string) error {
	if agentID == "" {
		return errs.NewValueIsRequiredError("agent id")
	}
	if o.status != Processing {
		return NewInvalidTransitionErrorWithReason(o.status, Processing, "agent can only be assigned while processing")
	}

	o.assignedAgent = agentID
	return nil
}

// Dispatch transitions Processing -> InTransit. An agent must be assigned first.
func (o *Order) Dispatch() error {
	if o.status == Processing && o.assignedAgent == "" {
		return NewInvalidTransitionErrorWithReason(o.status, InTransit, "no agent assigned")
	}

	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel transitions PendingApproval or Processing -> Cancelled. Cancellation
// after dispatch is out of scope and goes through a separate returns process.
// Any agent assignment is released; the caller is responsible for releasing
// reserved stock when cancelling a Processing order.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedAgent = ""
	return nil
}

// MarkDelivered transitions InTransit -> Delivered, the terminal forward state.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// UpdateDelivery changes the delivery address and instructions. Permitted only
// before dispatch (PendingApproval or Processing).
func (o *Order) UpdateDelivery(address, instructions string) error {
	if o.status != PendingApproval && o.status != Processing {
		return NewInvalidTransitionErrorWithReason(o.status, o.status, "delivery details are frozen after dispatch")
	}
	if err := o.setDeliveryAddress(address); err != nil {
		return err
	}

	o.deliveryInstructions = instructions
	return nil
}

// ReplaceItems swaps the order's line items and recomputes the total.
// Editing is only permitted while the order awaits approval.
func (o *Order) ReplaceItems(items []Item) error {
	if o.status != PendingApproval {
		return NewInvalidTransitionErrorWithReason(o.status, o.status, "items can only be edited pending approval")
	}
	return o.setItems(items)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.total = computeTotal(o.items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	o.paymentMethod = method
	return nil
}

// computeTotal applies the pricing rules: item subtotal, rounded percentage
// tax, and the flat delivery fee.
func computeTotal(items []Item) int {
	subtotal := 0
	for _, item := range items {
		subtotal += item.Subtotal()
	}

	tax := (subtotal*TaxRatePercent + 50) / 100
	return subtotal + tax + DeliveryFee
}
