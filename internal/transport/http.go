package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshfold/laundry-service/internal/catalog"
	"github.com/freshfold/laundry-service/internal/handler"
	"github.com/freshfold/laundry-service/internal/order"
)

// NewRouter wires the repositories, services and handlers onto the REST
// surface the mobile clients consume.
func NewRouter(pool *pgxpool.Pool) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	orderRepo := order.NewRepository(pool)
	orderSvc := order.NewService(orderRepo)
	orderHandler := handler.NewOrderHandler(orderSvc)

	catalogRepo := catalog.NewRepository(pool)
	catalogSvc := catalog.NewService(catalogRepo)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)

	r.Post("/orders", orderHandler.CreateOrder)
	r.Get("/orders", orderHandler.ListOrders)
	r.Get("/orders/{ownerId}", orderHandler.ListOrdersByOwner)
	r.Put("/orders/seen/{ownerId}", orderHandler.MarkSeen)
	r.Put("/orders/{orderId}", orderHandler.UpdateOrderStatus)
	r.Get("/notifications/{ownerId}", orderHandler.NotificationCount)

	r.Get("/shops", catalogHandler.ListShops)
	r.Get("/services/{ownerId}", catalogHandler.ServicesByOwner)
	r.Post("/services", catalogHandler.ReplaceServices)

	return r
}
