package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	CreateOrder(ctx context.Context, order *Order) (uuid.UUID, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus lifecycle.Status, estimatedTime string) error
	CountUnseenPending(ctx context.Context, ownerID uuid.UUID) (int, error)
	MarkOrdersSeen(ctx context.Context, ownerID uuid.UUID) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `id, client_id, owner_id, customer_name, total_price, payment_method,
		address, phone, pickup_time, status, estimated_time, seen, created_at, updated_at`

func (r *postgresRepository) CreateOrder(ctx context.Context, orderInput *Order) (orderID uuid.UUID, err error) {
	finalOrderID := orderInput.ID
	if finalOrderID == uuid.Nil {
		genID, genErr := uuid.NewV4()
		if genErr != nil {
			log.Error().Err(genErr).Msg("repository: failed to generate order ID")
			return uuid.Nil, fmt.Errorf("repository: failed to generate order ID: %w", genErr)
		}
		finalOrderID = genID
	}
	orderInput.ID = finalOrderID

	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Stringer("order_id_attempted", finalOrderID).Msg("Panic recovered during CreateOrder, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("order_id_attempted", finalOrderID).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			log.Warn().Err(err).Stringer("order_id_attempted", finalOrderID).Msg("Transaction for CreateOrder failed, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("order_id_attempted", finalOrderID).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Stringer("order_id", finalOrderID).Msg("Failed to commit transaction")
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	now := time.Now().UTC()

	queryOrder := `
		INSERT INTO orders (id, client_id, owner_id, customer_name, total_price, payment_method,
			address, phone, pickup_time, status, estimated_time, seen, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = tx.Exec(ctx, queryOrder,
		finalOrderID,
		orderInput.ClientID,
		orderInput.OwnerID,
		orderInput.CustomerName,
		orderInput.TotalPrice,
		orderInput.PaymentMethod,
		orderInput.Address,
		orderInput.Phone,
		orderInput.PickupTime,
		string(orderInput.Status),
		orderInput.EstimatedTime,
		orderInput.Seen,
		now,
		now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to insert order: %w", err)
	}
	orderInput.CreatedAt = now
	orderInput.UpdatedAt = now

	queryItem := `
		INSERT INTO order_items (id, order_id, name, count)
		VALUES ($1, $2, $3, $4)
	`
	for i := range orderInput.Items {
		item := &orderInput.Items[i]

		itemID, genErr := uuid.NewV4()
		if genErr != nil {
			return uuid.Nil, fmt.Errorf("repository: failed to generate order item ID: %w", genErr)
		}

		_, err = tx.Exec(ctx, queryItem, itemID, finalOrderID, item.Name, item.Count)
		if err != nil {
			return uuid.Nil, fmt.Errorf("repository: failed to insert order item for order %s: %w", finalOrderID, err)
		}
	}
	return finalOrderID, nil
}

func (r *postgresRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	queryOrder := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order Order
	err := r.db.QueryRow(ctx, queryOrder, orderID).Scan(
		&order.ID,
		&order.ClientID,
		&order.OwnerID,
		&order.CustomerName,
		&order.TotalPrice,
		&order.PaymentMethod,
		&order.Address,
		&order.Phone,
		&order.PickupTime,
		&order.Status,
		&order.EstimatedTime,
		&order.Seen,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %s: %w", orderID, err)
	}

	items, err := r.itemsForOrders(ctx, []uuid.UUID{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = items[orderID]
	if order.Items == nil {
		order.Items = []Item{}
	}

	return &order, nil
}

func (r *postgresRepository) ListOrders(ctx context.Context) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *postgresRepository) ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, ownerID)
}

func (r *postgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer rows.Close()

	ordersMap := make(map[uuid.UUID]*Order)
	var orderIDs []uuid.UUID

	for rows.Next() {
		var order Order
		err := rows.Scan(
			&order.ID,
			&order.ClientID,
			&order.OwnerID,
			&order.CustomerName,
			&order.TotalPrice,
			&order.PaymentMethod,
			&order.Address,
			&order.Phone,
			&order.PickupTime,
			&order.Status,
			&order.EstimatedTime,
			&order.Seen,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		order.Items = []Item{}
		ordersMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	if len(orderIDs) == 0 {
		return []Order{}, nil
	}

	itemsByOrder, err := r.itemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for orderID, items := range itemsByOrder {
		if order, ok := ordersMap[orderID]; ok {
			order.Items = items
		}
	}

	resultOrders := make([]Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		resultOrders = append(resultOrders, *ordersMap[id])
	}

	return resultOrders, nil
}

func (r *postgresRepository) itemsForOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]Item, error) {
	query := `
		SELECT order_id, name, count
		FROM order_items
		WHERE order_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[uuid.UUID][]Item)
	for rows.Next() {
		var orderID uuid.UUID
		var item Item
		if err := rows.Scan(&orderID, &item.Name, &item.Count); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}
		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}

	return itemsByOrder, nil
}

func (r *postgresRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus lifecycle.Status, estimatedTime string) error {
	query := `
		UPDATE orders
		SET status = $1, estimated_time = $2, updated_at = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		string(newStatus),
		estimatedTime,
		time.Now().UTC(),
		orderID,
	)
	if err != nil {
		log.Error().Err(err).Stringer("order_id", orderID).Str("new_status", string(newStatus)).Msg("repository: failed to update order status")
		return fmt.Errorf("repository: failed to update order status %s: %w", orderID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		log.Warn().Stringer("order_id", orderID).Str("new_status", string(newStatus)).Msg("repository: order not found for status update")
		return ErrOrderNotFound
	}

	return nil
}

func (r *postgresRepository) CountUnseenPending(ctx context.Context, ownerID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM orders WHERE owner_id = $1 AND status = $2 AND NOT seen`

	var count int
	err := r.db.QueryRow(ctx, query, ownerID, string(lifecycle.StatusPending)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count unseen pending orders for owner %s: %w", ownerID, err)
	}

	return count, nil
}

func (r *postgresRepository) MarkOrdersSeen(ctx context.Context, ownerID uuid.UUID) error {
	query := `UPDATE orders SET seen = TRUE WHERE owner_id = $1 AND NOT seen`

	_, err := r.db.Exec(ctx, query, ownerID)
	if err != nil {
		log.Error().Err(err).Stringer("owner_id", ownerID).Msg("repository: failed to mark orders seen")
		return fmt.Errorf("repository: failed to mark orders seen for owner %s: %w", ownerID, err)
	}

	return nil
}
