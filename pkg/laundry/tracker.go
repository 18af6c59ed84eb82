package laundry

import (
	"context"
	"fmt"
	"sync"

	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

// TrackedOrder pairs an order with its display projection so the tracking
// screen never computes progress on its own.
type TrackedOrder struct {
	Order
	Projection lifecycle.Projection
}

// Tracker is the customer's read-only view of their orders. Customers hold no
// write actions: the tracker only fetches and projects.
type Tracker struct {
	cli *Client

	mu         sync.Mutex
	orders     []TrackedOrder
	refreshGen uint64
}

func NewTracker(cli *Client) *Tracker {
	return &Tracker{cli: cli}
}

// Refresh fetches the order list. A refresh superseded by a newer one is
// discarded. On failure the previously confirmed list stays in place, so the
// screen keeps showing the last known status rather than going blank.
func (t *Tracker) Refresh(ctx context.Context) error {
	t.mu.Lock()
	t.refreshGen++
	gen := t.refreshGen
	t.mu.Unlock()

	orders, err := t.cli.Orders(ctx)
	if err != nil {
		return fmt.Errorf("laundry: tracker refresh failed: %w", err)
	}

	tracked := make([]TrackedOrder, 0, len(orders))
	for _, o := range orders {
		tracked = append(tracked, TrackedOrder{Order: o, Projection: lifecycle.Project(o.Status)})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.refreshGen {
		return nil
	}
	t.orders = tracked
	return nil
}

// Orders returns the last confirmed tracked orders, newest first.
func (t *Tracker) Orders() []TrackedOrder {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TrackedOrder, len(t.orders))
	copy(out, t.orders)
	return out
}
