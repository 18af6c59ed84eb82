package laundry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

var (
	// ErrTransitionInFlight means a transition for this order has been
	// started and has not resolved yet. The second request is dropped, not
	// queued: the caller re-enables the action when the first one resolves.
	ErrTransitionInFlight = errors.New("transition already in flight for this order")
	// ErrUnknownOrder means the order is not in the dashboard's current
	// view; the caller should Refresh and retry.
	ErrUnknownOrder = errors.New("order not present in dashboard view")
)

// Dashboard is one owner's session with their order list: the client-side
// state behind the provider screen. It caches the last confirmed orders and
// notification count, guards each order against double-submitted transitions,
// and discards results of superseded refreshes.
//
// All methods are safe for concurrent use; network calls run outside the lock.
type Dashboard struct {
	cli     *Client
	ownerID uuid.UUID

	mu       sync.Mutex
	orders   []Order
	count    int
	inflight map[uuid.UUID]bool
	// refreshGen numbers refreshes so a response that arrives after a newer
	// refresh has started is thrown away instead of clobbering fresher state.
	refreshGen uint64
}

func NewDashboard(cli *Client, ownerID uuid.UUID) *Dashboard {
	return &Dashboard{
		cli:      cli,
		ownerID:  ownerID,
		inflight: make(map[uuid.UUID]bool),
	}
}

// Refresh is the focus event of the provider screen: it pulls the latest
// notification count and order list, then acknowledges the notifications
// exactly once. The local count is only reset once the backend confirms the
// acknowledgment; on failure it keeps the last value the backend reported.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.refreshGen++
	gen := d.refreshGen
	d.mu.Unlock()

	count, countErr := d.cli.NotificationCount(ctx, d.ownerID)

	orders, err := d.cli.OrdersByOwner(ctx, d.ownerID)
	if err != nil {
		return fmt.Errorf("laundry: dashboard refresh failed: %w", err)
	}

	ackErr := d.cli.MarkSeen(ctx, d.ownerID)
	if ackErr != nil {
		log.Warn().Err(ackErr).Stringer("owner_id", d.ownerID).Msg("laundry: notification acknowledgment failed, keeping last count")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.refreshGen {
		// A newer refresh started while this one was on the wire.
		return nil
	}

	d.orders = orders
	switch {
	case ackErr == nil:
		d.count = 0
	case countErr == nil:
		d.count = count
	}
	return nil
}

// Orders returns the last confirmed order list.
func (d *Dashboard) Orders() []Order {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Order, len(d.orders))
	copy(out, d.orders)
	return out
}

// NotificationCount returns the last confirmed unseen pending-order count.
func (d *Dashboard) NotificationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// View resolves the affordance to render for one order in the current list.
func (d *Dashboard) View(orderID uuid.UUID) (lifecycle.OwnerView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.orders {
		if d.orders[i].ID == orderID {
			return lifecycle.ResolveOwnerView(d.orders[i].Status), nil
		}
	}
	return lifecycle.OwnerView{}, ErrUnknownOrder
}

// Act applies one owner action to an order. The transition is prechecked
// against the state machine before any network call, at most one transition
// per order may be in flight, and on success the local copy is replaced with
// the order the service returned. On any failure the local copy is untouched.
func (d *Dashboard) Act(ctx context.Context, orderID uuid.UUID, act lifecycle.Action, estimatedTime string) (*Order, error) {
	d.mu.Lock()
	if d.inflight[orderID] {
		d.mu.Unlock()
		return nil, ErrTransitionInFlight
	}

	var current *Order
	for i := range d.orders {
		if d.orders[i].ID == orderID {
			current = &d.orders[i]
			break
		}
	}
	if current == nil {
		d.mu.Unlock()
		return nil, ErrUnknownOrder
	}

	outcome, err := lifecycle.Apply(current.Status, act, lifecycle.RoleOwner, estimatedTime)
	if err != nil {
		d.mu.Unlock()
		return nil, err
	}

	d.inflight[orderID] = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.inflight, orderID)
		d.mu.Unlock()
	}()

	updated, err := d.cli.UpdateOrderStatus(ctx, orderID, outcome.Next, estimatedTime)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	for i := range d.orders {
		if d.orders[i].ID == orderID {
			d.orders[i] = *updated
			break
		}
	}
	d.mu.Unlock()

	return updated, nil
}
