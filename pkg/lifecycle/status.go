// Package lifecycle is the single source of truth for the order fulfilment
// lifecycle: which statuses exist, which transitions are legal for which actor,
// and how a status is projected for display. Both the service handlers and the
// client-side views in pkg/laundry build on this package, so the customer and
// owner screens can never disagree on the status tables.
package lifecycle

import "fmt"

// Status is the current stage of an order's fulfilment lifecycle. The string
// values are the wire representation stored by the backend.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPickedUp  Status = "Picked Up"
	StatusWashing   Status = "Washing"
	StatusIroning   Status = "Ironing"
	StatusReady     Status = "Ready"
	StatusDelivered Status = "Delivered"
	StatusRejected  Status = "Rejected"
)

// AllStatuses lists every status in happy-path order, with the terminal
// rejection branch last.
var AllStatuses = []Status{
	StatusPending,
	StatusPickedUp,
	StatusWashing,
	StatusIroning,
	StatusReady,
	StatusDelivered,
	StatusRejected,
}

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusRejected
}

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPickedUp, StatusWashing, StatusIroning,
		StatusReady, StatusDelivered, StatusRejected:
		return true
	}
	return false
}

// ParseStatus validates a wire string against the status enumeration.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}
