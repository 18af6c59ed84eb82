package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

type CatalogService interface {
	ListShops(ctx context.Context) ([]Shop, error)
	ServicesByOwner(ctx context.Context, ownerID uuid.UUID) ([]Service, error)
	ReplaceServices(ctx context.Context, ownerID uuid.UUID, services []Service) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) CatalogService {
	return &service{repo: repo}
}

func (s *service) ListShops(ctx context.Context) ([]Shop, error) {
	shops, err := s.repo.ListShops(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list shops")
		return nil, fmt.Errorf("service: failed to list shops: %w", err)
	}

	return shops, nil
}

func (s *service) ServicesByOwner(ctx context.Context, ownerID uuid.UUID) ([]Service, error) {
	services, err := s.repo.ServicesByOwner(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Stringer("owner_id", ownerID).Msg("service: failed to list services")
		return nil, fmt.Errorf("service: failed to list services: %w", err)
	}

	return services, nil
}

func (s *service) ReplaceServices(ctx context.Context, ownerID uuid.UUID, services []Service) error {
	if ownerID == uuid.Nil {
		return &lifecycle.ValidationError{Field: "owner_id", Reason: "required"}
	}

	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		name := strings.TrimSpace(svc.Name)
		if name == "" {
			return &lifecycle.ValidationError{Field: "services", Reason: "service name is required"}
		}
		if svc.Price <= 0 {
			return &lifecycle.ValidationError{Field: "services", Reason: fmt.Sprintf("price for %q must be greater than zero", name)}
		}
		key := strings.ToLower(name)
		if seen[key] {
			return &lifecycle.ValidationError{Field: "services", Reason: fmt.Sprintf("duplicate service %q", name)}
		}
		seen[key] = true
	}

	if err := s.repo.ReplaceServices(ctx, ownerID, services); err != nil {
		log.Error().Err(err).Stringer("owner_id", ownerID).Msg("service: failed to replace services")
		return fmt.Errorf("service: failed to replace services: %w", err)
	}

	log.Info().Stringer("owner_id", ownerID).Int("service_count", len(services)).Msg("service: price list replaced")
	return nil
}
