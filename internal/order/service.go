package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

type Service interface {
	CreateOrder(ctx context.Context, orderInput *Order) (*Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID) ([]Order, error)
	ApplyAction(ctx context.Context, orderID uuid.UUID, act lifecycle.Action, role lifecycle.Role, estimatedTime string) (*Order, error)
	NotificationCount(ctx context.Context, ownerID uuid.UUID) (int, error)
	MarkSeen(ctx context.Context, ownerID uuid.UUID) error
}

type service struct {
	orderRepo Repository
}

func NewService(orderRepo Repository) Service {
	return &service{
		orderRepo: orderRepo,
	}
}

func (s *service) CreateOrder(ctx context.Context, orderInput *Order) (*Order, error) {
	if len(orderInput.Items) == 0 {
		log.Warn().Msg("service: attempt to create order with no items")
		return nil, &lifecycle.ValidationError{Field: "items", Reason: "order must contain at least one item"}
	}

	for _, item := range orderInput.Items {
		if item.Name == "" {
			return nil, &lifecycle.ValidationError{Field: "items", Reason: "item name is required"}
		}
		if item.Count <= 0 {
			return nil, &lifecycle.ValidationError{Field: "items", Reason: fmt.Sprintf("count for %q must be greater than zero", item.Name)}
		}
	}

	if orderInput.TotalPrice < 0 {
		return nil, &lifecycle.ValidationError{Field: "total_price", Reason: "must be non-negative"}
	}
	if orderInput.ClientID == uuid.Nil {
		return nil, &lifecycle.ValidationError{Field: "client_id", Reason: "required"}
	}
	if orderInput.OwnerID == uuid.Nil {
		return nil, &lifecycle.ValidationError{Field: "owner_id", Reason: "required"}
	}

	// New orders always start their lifecycle at Pending and unseen,
	// whatever the client claims.
	orderInput.ID = uuid.Nil
	orderInput.Status = lifecycle.StatusPending
	orderInput.EstimatedTime = ""
	orderInput.Seen = false

	_, err := s.orderRepo.CreateOrder(ctx, orderInput)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Stringer("order_id", orderInput.ID).Stringer("owner_id", orderInput.OwnerID).Msg("service: order created")

	return orderInput, nil
}

func (s *service) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Err(err).Stringer("order_id", id).Msg("service: order not found by id")
			return nil, ErrOrderNotFound
		}

		log.Error().Err(err).Msg("service: failed to fetch order by id in repository")
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}

	return order, nil
}

func (s *service) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch orders in repository")
		return nil, fmt.Errorf("service: failed to fetch orders: %w", err)
	}

	return orders, nil
}

func (s *service) ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID) ([]Order, error) {
	orders, err := s.orderRepo.ListOrdersByOwner(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Stringer("owner_id", ownerID).Msg("service: failed to fetch owner orders in repository")
		return nil, fmt.Errorf("service: failed to fetch owner orders: %w", err)
	}

	return orders, nil
}

// ApplyAction runs one lifecycle transition against the stored order. The
// transition is validated against the state machine before anything is
// persisted; on success the freshly updated order is returned so callers can
// replace their local copy instead of guessing the resulting state.
func (s *service) ApplyAction(ctx context.Context, orderID uuid.UUID, act lifecycle.Action, role lifecycle.Role, estimatedTime string) (*Order, error) {
	currentOrder, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Err(err).Stringer("order_id", orderID).Str("action", string(act)).Msg("service: order not found, cannot apply action")
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", orderID).Msg("service: failed to get order for action")
		return nil, fmt.Errorf("service: failed to get order for action: %w", err)
	}

	outcome, err := lifecycle.Apply(currentOrder.Status, act, role, estimatedTime)
	if err != nil {
		log.Warn().
			Stringer("order_id", currentOrder.ID).
			Str("current_status", string(currentOrder.Status)).
			Str("action", string(act)).
			Str("role", string(role)).
			Err(err).
			Msg("service: action rejected by state machine")
		return nil, err
	}

	nextEstimate := currentOrder.EstimatedTime
	if outcome.EstimatedTime != "" {
		nextEstimate = outcome.EstimatedTime
	}
	if outcome.ClearEstimate {
		nextEstimate = ""
	}

	err = s.orderRepo.UpdateOrderStatus(ctx, orderID, outcome.Next, nextEstimate)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Err(err).Stringer("order_id", orderID).Str("new_status", string(outcome.Next)).Msg("service: order disappeared during status update")
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", orderID).Str("new_status", string(outcome.Next)).Msg("service: failed to update order status in repository")
		return nil, fmt.Errorf("service: failed to update order status: %w", err)
	}

	updated, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to re-fetch order after status update: %w", err)
	}

	log.Info().
		Stringer("order_id", orderID).
		Str("old_status", string(currentOrder.Status)).
		Str("new_status", string(updated.Status)).
		Msg("service: order status updated")
	return updated, nil
}

func (s *service) NotificationCount(ctx context.Context, ownerID uuid.UUID) (int, error) {
	count, err := s.orderRepo.CountUnseenPending(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Stringer("owner_id", ownerID).Msg("service: failed to count notifications")
		return 0, fmt.Errorf("service: failed to count notifications: %w", err)
	}

	return count, nil
}

func (s *service) MarkSeen(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.orderRepo.MarkOrdersSeen(ctx, ownerID); err != nil {
		log.Error().Err(err).Stringer("owner_id", ownerID).Msg("service: failed to mark orders seen")
		return fmt.Errorf("service: failed to mark orders seen: %w", err)
	}

	return nil
}
