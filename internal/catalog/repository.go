package catalog

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type Repository interface {
	ListShops(ctx context.Context) ([]Shop, error)
	ServicesByOwner(ctx context.Context, ownerID uuid.UUID) ([]Service, error)
	ReplaceServices(ctx context.Context, ownerID uuid.UUID, services []Service) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListShops(ctx context.Context) ([]Shop, error) {
	query := `SELECT id, name, address FROM shops ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query shops: %w", err)
	}
	defer rows.Close()

	shops := make([]Shop, 0)
	for rows.Next() {
		var shop Shop
		if err := rows.Scan(&shop.ID, &shop.Name, &shop.Address); err != nil {
			return nil, fmt.Errorf("repository: failed to scan shop: %w", err)
		}
		shops = append(shops, shop)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating shops: %w", err)
	}

	return shops, nil
}

func (r *postgresRepository) ServicesByOwner(ctx context.Context, ownerID uuid.UUID) ([]Service, error) {
	query := `SELECT name, price FROM services WHERE owner_id = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query services for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	services := make([]Service, 0)
	for rows.Next() {
		var svc Service
		if err := rows.Scan(&svc.Name, &svc.Price); err != nil {
			return nil, fmt.Errorf("repository: failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating services: %w", err)
	}

	return services, nil
}

// ReplaceServices swaps an owner's whole price list, matching how the mobile
// setup screen saves it: the posted list is the new truth.
func (r *postgresRepository) ReplaceServices(ctx context.Context, ownerID uuid.UUID, services []Service) (err error) {
	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("owner_id", ownerID).Msg("Failed to rollback service replacement")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	_, err = tx.Exec(ctx, `DELETE FROM services WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("repository: failed to clear services for owner %s: %w", ownerID, err)
	}

	query := `INSERT INTO services (owner_id, name, price) VALUES ($1, $2, $3)`
	for _, svc := range services {
		if _, err = tx.Exec(ctx, query, ownerID, svc.Name, svc.Price); err != nil {
			return fmt.Errorf("repository: failed to insert service %q for owner %s: %w", svc.Name, ownerID, err)
		}
	}

	return nil
}
