package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freshfold/laundry-service/internal/order"
	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	svc order.Service
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type createOrderRequest struct {
	ClientID      uuid.UUID    `json:"client_id"`
	OwnerID       uuid.UUID    `json:"owner_id"`
	CustomerName  string       `json:"customer_name"`
	Items         []order.Item `json:"items"`
	TotalPrice    float64      `json:"total_price"`
	PaymentMethod string       `json:"payment_method"`
	Address       string       `json:"address"`
	Phone         string       `json:"phone"`
	PickupTime    string       `json:"pickup_time"`
}

type updateOrderRequest struct {
	Status        string `json:"status"`
	EstimatedTime string `json:"estimated_time"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Info().Msgf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// writeOrderError maps service errors onto the REST surface: local
// precondition failures are 400, illegal transitions 409, unknown orders 404,
// everything else a generic 500.
func writeOrderError(w http.ResponseWriter, err error) {
	var verr *lifecycle.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "status change not allowed for this order")
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order not found")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// CreateOrder handles the placement of a new order.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o := &order.Order{
		ClientID:      req.ClientID,
		OwnerID:       req.OwnerID,
		CustomerName:  req.CustomerName,
		Items:         req.Items,
		TotalPrice:    req.TotalPrice,
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		Phone:         req.Phone,
		PickupTime:    req.PickupTime,
	}

	created, err := h.svc.CreateOrder(r.Context(), o)
	if err != nil {
		log.Info().Msgf("Failed to create order: %v", err)
		writeOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"orderId": created.ID.String()})
}

// ListOrders returns every order, newest first (customer tracking view).
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		log.Info().Msgf("Failed to list orders: %v", err)
		writeOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// ListOrdersByOwner returns one shop's orders, newest first.
func (h *OrderHandler) ListOrdersByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.FromString(chi.URLParam(r, "ownerId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	orders, err := h.svc.ListOrdersByOwner(r.Context(), ownerID)
	if err != nil {
		log.Info().Msgf("Failed to list orders for owner %s: %v", ownerID, err)
		writeOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus accepts the wire shape the dashboard sends (a desired
// status plus an optional estimated time), resolves it to a state-machine
// action, and applies it as the owner role. The updated order is returned so
// clients can refresh their local copy from the response.
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.FromString(chi.URLParam(r, "orderId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := lifecycle.ParseStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	current, err := h.svc.GetOrderByID(r.Context(), orderID)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	act, ok := lifecycle.ActionForTarget(current.Status, target)
	if !ok {
		log.Info().Msgf("No action moves order %s from %s to %s", orderID, current.Status, target)
		respondError(w, http.StatusConflict, "status change not allowed for this order")
		return
	}

	updated, err := h.svc.ApplyAction(r.Context(), orderID, act, lifecycle.RoleOwner, req.EstimatedTime)
	if err != nil {
		log.Info().Msgf("Failed to update order %s: %v", orderID, err)
		writeOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// NotificationCount returns the owner's unseen pending-order count.
func (h *OrderHandler) NotificationCount(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.FromString(chi.URLParam(r, "ownerId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	count, err := h.svc.NotificationCount(r.Context(), ownerID)
	if err != nil {
		log.Info().Msgf("Failed to count notifications for owner %s: %v", ownerID, err)
		writeOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

// MarkSeen acknowledges the owner's pending orders, resetting the
// notification count.
func (h *OrderHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.FromString(chi.URLParam(r, "ownerId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	if err := h.svc.MarkSeen(r.Context(), ownerID); err != nil {
		log.Info().Msgf("Failed to mark orders seen for owner %s: %v", ownerID, err)
		writeOrderError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
