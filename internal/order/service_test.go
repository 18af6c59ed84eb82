package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshfold/laundry-service/internal/order"
	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

type mockRepository struct {
	createFunc      func(ctx context.Context, o *order.Order) (uuid.UUID, error)
	getByIDFunc     func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	listFunc        func(ctx context.Context) ([]order.Order, error)
	listByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]order.Order, error)
	updateFunc      func(ctx context.Context, id uuid.UUID, st lifecycle.Status, estimate string) error
	countFunc       func(ctx context.Context, ownerID uuid.UUID) (int, error)
	markSeenFunc    func(ctx context.Context, ownerID uuid.UUID) error
}

func (m *mockRepository) CreateOrder(ctx context.Context, o *order.Order) (uuid.UUID, error) {
	return m.createFunc(ctx, o)
}

func (m *mockRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRepository) ListOrders(ctx context.Context) ([]order.Order, error) {
	return m.listFunc(ctx)
}

func (m *mockRepository) ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID) ([]order.Order, error) {
	return m.listByOwnerFunc(ctx, ownerID)
}

func (m *mockRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, st lifecycle.Status, estimate string) error {
	return m.updateFunc(ctx, id, st, estimate)
}

func (m *mockRepository) CountUnseenPending(ctx context.Context, ownerID uuid.UUID) (int, error) {
	return m.countFunc(ctx, ownerID)
}

func (m *mockRepository) MarkOrdersSeen(ctx context.Context, ownerID uuid.UUID) error {
	return m.markSeenFunc(ctx, ownerID)
}

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return id
}

func validOrder(t *testing.T) *order.Order {
	t.Helper()
	return &order.Order{
		ClientID:      mustUUID(t),
		OwnerID:       mustUUID(t),
		CustomerName:  "Ayesha",
		Items:         []order.Item{{Name: "Shirt", Count: 3}, {Name: "Jeans", Count: 1}},
		TotalPrice:    450,
		PaymentMethod: "Cash on Delivery",
		Address:       "14-B Canal Road",
		Phone:         "0301-1234567",
		PickupTime:    "04:30 PM",
	}
}

func TestService_CreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(o *order.Order)
		createFunc func(ctx context.Context, o *order.Order) (uuid.UUID, error)
		wantErr    bool
		wantField  string
	}{
		{
			name:      "no_items",
			mutate:    func(o *order.Order) { o.Items = nil },
			wantErr:   true,
			wantField: "items",
		},
		{
			name:      "zero_count",
			mutate:    func(o *order.Order) { o.Items[0].Count = 0 },
			wantErr:   true,
			wantField: "items",
		},
		{
			name:      "blank_item_name",
			mutate:    func(o *order.Order) { o.Items[0].Name = "" },
			wantErr:   true,
			wantField: "items",
		},
		{
			name:      "negative_total",
			mutate:    func(o *order.Order) { o.TotalPrice = -10 },
			wantErr:   true,
			wantField: "total_price",
		},
		{
			name:      "missing_client",
			mutate:    func(o *order.Order) { o.ClientID = uuid.Nil },
			wantErr:   true,
			wantField: "client_id",
		},
		{
			name:      "missing_owner",
			mutate:    func(o *order.Order) { o.OwnerID = uuid.Nil },
			wantErr:   true,
			wantField: "owner_id",
		},
		{
			name:   "repository_failure",
			mutate: func(o *order.Order) {},
			createFunc: func(ctx context.Context, o *order.Order) (uuid.UUID, error) {
				return uuid.Nil, errors.New("connection refused")
			},
			wantErr: true,
		},
		{
			name:    "success",
			mutate:  func(o *order.Order) {},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createFunc := tt.createFunc
			if createFunc == nil {
				createFunc = func(ctx context.Context, o *order.Order) (uuid.UUID, error) {
					id := mustUUID(t)
					o.ID = id
					return id, nil
				}
			}
			svc := order.NewService(&mockRepository{createFunc: createFunc})

			input := validOrder(t)
			tt.mutate(input)
			created, err := svc.CreateOrder(context.Background(), input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantField != "" {
					var verr *lifecycle.ValidationError
					require.True(t, errors.As(err, &verr))
					assert.Equal(t, tt.wantField, verr.Field)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, lifecycle.StatusPending, created.Status)
			assert.False(t, created.Seen)
			assert.Empty(t, created.EstimatedTime)
			assert.NotEqual(t, uuid.Nil, created.ID)
		})
	}
}

func TestService_ApplyAction(t *testing.T) {
	orderID := uuid.Must(uuid.FromString("550e8400-e29b-41d4-a716-446655440000"))

	tests := []struct {
		name          string
		currentStatus lifecycle.Status
		act           lifecycle.Action
		role          lifecycle.Role
		estimate      string
		wantStatus    lifecycle.Status
		wantEstimate  string
		wantErrIs     error
		wantValidErr  bool
	}{
		{
			name:          "accept_with_estimate",
			currentStatus: lifecycle.StatusPending,
			act:           lifecycle.ActionAccept,
			role:          lifecycle.RoleOwner,
			estimate:      "30 mins",
			wantStatus:    lifecycle.StatusPickedUp,
			wantEstimate:  "30 mins",
		},
		{
			name:          "accept_without_estimate",
			currentStatus: lifecycle.StatusPending,
			act:           lifecycle.ActionAccept,
			role:          lifecycle.RoleOwner,
			estimate:      "",
			wantValidErr:  true,
		},
		{
			name:          "reject_pending",
			currentStatus: lifecycle.StatusPending,
			act:           lifecycle.ActionReject,
			role:          lifecycle.RoleOwner,
			wantStatus:    lifecycle.StatusRejected,
		},
		{
			name:          "start_washing",
			currentStatus: lifecycle.StatusPickedUp,
			act:           lifecycle.ActionStartWashing,
			role:          lifecycle.RoleOwner,
			wantStatus:    lifecycle.StatusWashing,
			wantEstimate:  "20 mins",
		},
		{
			name:          "dispatch_clears_estimate",
			currentStatus: lifecycle.StatusReady,
			act:           lifecycle.ActionDispatch,
			role:          lifecycle.RoleOwner,
			wantStatus:    lifecycle.StatusDelivered,
			wantEstimate:  "",
		},
		{
			name:          "washing_cannot_dispatch",
			currentStatus: lifecycle.StatusWashing,
			act:           lifecycle.ActionDispatch,
			role:          lifecycle.RoleOwner,
			wantErrIs:     lifecycle.ErrInvalidTransition,
		},
		{
			name:          "delivered_is_terminal",
			currentStatus: lifecycle.StatusDelivered,
			act:           lifecycle.ActionStartWashing,
			role:          lifecycle.RoleOwner,
			wantErrIs:     lifecycle.ErrInvalidTransition,
		},
		{
			name:          "customer_cannot_act",
			currentStatus: lifecycle.StatusPending,
			act:           lifecycle.ActionAccept,
			role:          lifecycle.RoleCustomer,
			estimate:      "30 mins",
			wantErrIs:     lifecycle.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := &order.Order{
				ID:     orderID,
				Status: tt.currentStatus,
				// Carried estimate from an earlier Accept.
				EstimatedTime: "20 mins",
			}
			if tt.currentStatus == lifecycle.StatusPending {
				stored.EstimatedTime = ""
			}

			var updatedStatus lifecycle.Status
			var updatedEstimate string
			updated := false

			repo := &mockRepository{
				getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
					if updated {
						copied := *stored
						copied.Status = updatedStatus
						copied.EstimatedTime = updatedEstimate
						return &copied, nil
					}
					copied := *stored
					return &copied, nil
				},
				updateFunc: func(ctx context.Context, id uuid.UUID, st lifecycle.Status, estimate string) error {
					updated = true
					updatedStatus = st
					updatedEstimate = estimate
					return nil
				},
			}
			svc := order.NewService(repo)

			got, err := svc.ApplyAction(context.Background(), orderID, tt.act, tt.role, tt.estimate)

			if tt.wantValidErr {
				var verr *lifecycle.ValidationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &verr))
				assert.False(t, updated, "nothing may be persisted on validation failure")
				return
			}
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.False(t, updated, "nothing may be persisted on invalid transition")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantEstimate, got.EstimatedTime)
		})
	}
}

func TestService_ApplyAction_OrderNotFound(t *testing.T) {
	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return nil, order.ErrOrderNotFound
		},
	}
	svc := order.NewService(repo)

	_, err := svc.ApplyAction(context.Background(), mustUUID(t), lifecycle.ActionAccept, lifecycle.RoleOwner, "30 mins")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestService_Notifications(t *testing.T) {
	ownerID := mustUUID(t)

	t.Run("count_passthrough", func(t *testing.T) {
		svc := order.NewService(&mockRepository{
			countFunc: func(ctx context.Context, id uuid.UUID) (int, error) {
				assert.Equal(t, ownerID, id)
				return 3, nil
			},
		})
		count, err := svc.NotificationCount(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("count_error", func(t *testing.T) {
		svc := order.NewService(&mockRepository{
			countFunc: func(ctx context.Context, id uuid.UUID) (int, error) {
				return 0, errors.New("connection refused")
			},
		})
		_, err := svc.NotificationCount(context.Background(), ownerID)
		assert.Error(t, err)
	})

	t.Run("mark_seen", func(t *testing.T) {
		marked := false
		svc := order.NewService(&mockRepository{
			markSeenFunc: func(ctx context.Context, id uuid.UUID) error {
				marked = true
				return nil
			},
		})
		require.NoError(t, svc.MarkSeen(context.Background(), ownerID))
		assert.True(t, marked)
	})
}
