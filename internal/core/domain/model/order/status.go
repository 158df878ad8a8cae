package order

import (
	"errors"
	"fmt"

	"mediquick/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
// Use errors.Is(err, ErrInvalidTransition) to classify guard violations.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError reports a requested lifecycle transition that is not
// legal from the order's current status. The order is left unchanged.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Reason string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// NewInvalidTransitionErrorWithReason creates an InvalidTransitionError carrying
// an explanation of the violated guard, e.g. a missing agent assignment.
func NewInvalidTransitionErrorWithReason(from, to Status, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid transition: %s -> %s (%s)", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PendingApproval ──> Processing ──> InTransit ──> Delivered
//	       │                │
//	       └──> Cancelled <─┘
//
// Status is a value object; transition methods return the next status without
// mutating anything, and the aggregate applies the result.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingApproval is the initial status after checkout. The order awaits an
	// administrator decision and its items may still be edited.
	PendingApproval

	// Processing indicates the order was approved and its stock is reserved.
	// A delivery agent is assigned while in this status.
	Processing

	// InTransit indicates the order was dispatched with an assigned agent.
	InTransit

	// Delivered is the terminal status of the forward path.
	Delivered

	// Cancelled is the terminal status for rejected or cancelled orders.
	// Cancelled orders are retained for audit, never deleted.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		PendingApproval: "PendingApproval",
		Processing:      "Processing",
		InTransit:       "InTransit",
		Delivered:       "Delivered",
		Cancelled:       "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingApproval: "PendingApproval",
		Processing:      "Processing",
		InTransit:       "InTransit",
		Delivered:       "Delivered",
		Cancelled:       "Cancelled",
	}
}

// validNext enumerates every legal lifecycle edge. Anything absent here is an
// invalid transition, including repeating an already-applied one.
func validNext() map[Status]map[Status]bool {
	return map[Status]map[Status]bool{
		PendingApproval: {Processing: true, Cancelled: true},
		Processing:      {InTransit: true, Cancelled: true},
		InTransit:       {Delivered: true},
		Delivered:       {},
		Cancelled:       {},
	}
}

// Validate checks that the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for invalid values.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as produced by String.
// Used when reconstructing orders from persistence or query parameters.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status name", name),
	)
}

// CanTransition reports whether the edge s -> to is legal.
func (s Status) CanTransition(to Status) bool {
	return validNext()[s][to]
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(validNext()[s]) == 0
}

// next validates the edge s -> to and returns the new status.
func (s Status) next(to Status) (Status, error) {
	if !s.CanTransition(to) {
		return Unknown, NewInvalidTransitionError(s, to)
	}
	return to, nil
}

// Approve transitions PendingApproval -> Processing.
func (s Status) Approve() (Status, error) {
	return s.next(Processing)
}

// Reject transitions PendingApproval -> Cancelled. Rejection is only possible
// before approval; cancelling a Processing order goes through Cancel.
func (s Status) Reject() (Status, error) {
	if s != PendingApproval {
		return Unknown, NewInvalidTransitionError(s, Cancelled)
	}
	return Cancelled, nil
}

// Dispatch transitions Processing -> InTransit.
func (s Status) Dispatch() (Status, error) {
	return s.next(InTransit)
}

// Cancel transitions PendingApproval or Processing -> Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.next(Cancelled)
}

// Deliver transitions InTransit -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.next(Delivered)
}

// ValidateCanHaveAgent validates consistency between status and agent assignment:
// an agent may only be held in Processing, InTransit, or Delivered, and must be
// held in InTransit and Delivered.
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if hasAgent && s != Processing && s != InTransit && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an assigned agent", s.String()),
		)
	}

	if !hasAgent && (s == InTransit || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no assigned agent", s.String()),
		)
	}

	return nil
}
