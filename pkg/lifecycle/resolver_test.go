package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

func TestResolveOwnerView_Exhaustive(t *testing.T) {
	for _, status := range lifecycle.AllStatuses {
		view := lifecycle.ResolveOwnerView(status)
		switch view.Kind {
		case lifecycle.ViewTwoButton, lifecycle.ViewSingleButton, lifecycle.ViewTerminalBadge:
		default:
			t.Fatalf("status %s resolved to unknown view kind %d", status, view.Kind)
		}
	}
}

func TestResolveOwnerView_Pending(t *testing.T) {
	view := lifecycle.ResolveOwnerView(lifecycle.StatusPending)
	require.Equal(t, lifecycle.ViewTwoButton, view.Kind)
	assert.Equal(t, lifecycle.ActionReject, view.Reject.Action)
	assert.Equal(t, lifecycle.StatusRejected, view.Reject.Next)
	assert.Equal(t, lifecycle.ActionAccept, view.Accept.Action)
	assert.Equal(t, lifecycle.StatusPickedUp, view.Accept.Next)
}

func TestResolveOwnerView_SingleButtonSteps(t *testing.T) {
	tests := []struct {
		status lifecycle.Status
		label  string
		next   lifecycle.Status
	}{
		{lifecycle.StatusPickedUp, "Start Washing", lifecycle.StatusWashing},
		{lifecycle.StatusWashing, "Start Ironing", lifecycle.StatusIroning},
		{lifecycle.StatusIroning, "Mark as Ready", lifecycle.StatusReady},
		{lifecycle.StatusReady, "Out for Delivery", lifecycle.StatusDelivered},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			view := lifecycle.ResolveOwnerView(tt.status)
			require.Equal(t, lifecycle.ViewSingleButton, view.Kind)
			assert.Equal(t, tt.label, view.Button.Label)
			assert.Equal(t, tt.next, view.Button.Next)
		})
	}
}

func TestResolveOwnerView_TerminalBadges(t *testing.T) {
	delivered := lifecycle.ResolveOwnerView(lifecycle.StatusDelivered)
	require.Equal(t, lifecycle.ViewTerminalBadge, delivered.Kind)
	assert.Equal(t, "Order Completed", delivered.Badge)
	assert.Equal(t, lifecycle.ColorSuccess, delivered.Tone)

	rejected := lifecycle.ResolveOwnerView(lifecycle.StatusRejected)
	require.Equal(t, lifecycle.ViewTerminalBadge, rejected.Kind)
	assert.Equal(t, "Order Rejected", rejected.Badge)
	assert.Equal(t, lifecycle.ColorError, rejected.Tone)
}
