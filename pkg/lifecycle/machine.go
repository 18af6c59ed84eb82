package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// Role identifies the actor driving or observing an order.
type Role string

const (
	// RoleOwner is the shop owner fulfilling the order. Only owners may
	// trigger transitions.
	RoleOwner Role = "owner"
	// RoleCustomer placed the order and observes its status read-only.
	RoleCustomer Role = "customer"
)

// Action is an owner-triggered transition request.
type Action string

const (
	ActionAccept       Action = "accept"
	ActionReject       Action = "reject"
	ActionStartWashing Action = "start_washing"
	ActionStartIroning Action = "start_ironing"
	ActionMarkReady    Action = "mark_ready"
	ActionDispatch     Action = "dispatch"
)

// ActionSpec describes one available transition: the action itself, the label
// the provider dashboard renders for it, and the status it produces.
type ActionSpec struct {
	Action Action
	Label  string
	Next   Status
}

// ErrInvalidTransition is returned when the requested action is not legal for
// the order's current status and the acting role.
var ErrInvalidTransition = errors.New("invalid status transition")

// ValidationError reports a local precondition failure detected before any
// transition is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ownerActions is the full transition table. Statuses absent from the map
// (the terminal ones) admit no actions.
var ownerActions = map[Status][]ActionSpec{
	StatusPending: {
		{Action: ActionReject, Label: "Reject", Next: StatusRejected},
		{Action: ActionAccept, Label: "Accept & Pickup", Next: StatusPickedUp},
	},
	StatusPickedUp: {
		{Action: ActionStartWashing, Label: "Start Washing", Next: StatusWashing},
	},
	StatusWashing: {
		{Action: ActionStartIroning, Label: "Start Ironing", Next: StatusIroning},
	},
	StatusIroning: {
		{Action: ActionMarkReady, Label: "Mark as Ready", Next: StatusReady},
	},
	StatusReady: {
		{Action: ActionDispatch, Label: "Out for Delivery", Next: StatusDelivered},
	},
}

// AvailableActions returns the transitions legal from status for the given
// role. Customers never hold write actions, so their set is always empty.
func AvailableActions(status Status, role Role) []ActionSpec {
	if role != RoleOwner {
		return nil
	}
	specs := ownerActions[status]
	out := make([]ActionSpec, len(specs))
	copy(out, specs)
	return out
}

// ActionForTarget resolves the action that moves an order from current to
// target, if one exists. It lets the HTTP layer accept the wire shape the
// mobile clients send (a desired status) while the core still validates
// transitions action-by-action.
func ActionForTarget(current, target Status) (Action, bool) {
	for _, spec := range ownerActions[current] {
		if spec.Next == target {
			return spec.Action, true
		}
	}
	return "", false
}

// Outcome is the result of a successfully applied transition.
type Outcome struct {
	Next Status
	// EstimatedTime carries the owner-supplied arrival estimate. It is set
	// only by Accept and forcibly cleared again on Dispatch, since the
	// estimate is meaningless once the order is delivered.
	EstimatedTime string
	// ClearEstimate tells the caller to drop any previously stored estimate.
	ClearEstimate bool
}

// Apply validates act against the transition table and returns the resulting
// outcome. It never mutates anything: callers persist the outcome and refresh
// their local copy from the authoritative store.
//
// Accept requires a non-blank estimatedTime and fails with *ValidationError
// otherwise; estimatedTime is ignored for every other action.
func Apply(current Status, act Action, role Role, estimatedTime string) (Outcome, error) {
	var spec *ActionSpec
	for _, s := range AvailableActions(current, role) {
		if s.Action == act {
			spec = &s
			break
		}
	}
	if spec == nil {
		return Outcome{}, fmt.Errorf("%w: action %q not available from status %q for role %q",
			ErrInvalidTransition, act, current, role)
	}

	out := Outcome{Next: spec.Next}
	switch act {
	case ActionAccept:
		if strings.TrimSpace(estimatedTime) == "" {
			return Outcome{}, &ValidationError{Field: "estimated_time", Reason: "required when accepting an order"}
		}
		out.EstimatedTime = estimatedTime
	case ActionDispatch, ActionReject:
		out.ClearEstimate = true
	}
	return out, nil
}
