package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

func (s *Service) ListVillages(ctx context.Context) ([]domain.Village, error) {
	return s.villages.List(ctx)
}

func (s *Service) GetVillage(ctx context.Context, id int64) (*domain.Village, error) {
	return s.villages.GetByID(ctx, id)
}

// CreateVillage validates and stores a new village.
func (s *Service) CreateVillage(ctx context.Context, in VillageInput) (*domain.Village, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	v, err := s.villages.Create(ctx, in.toDomain(0))
	if err != nil {
		return nil, fmt.Errorf("create village: %w", err)
	}

	s.log.InfoContext(ctx, "village created", slog.Int64("village_id", v.ID), slog.String("name", v.Name))
	return v, nil
}

// UpdateVillage replaces every field of the village.
func (s *Service) UpdateVillage(ctx context.Context, id int64, in VillageInput) (*domain.Village, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	v, err := s.villages.Update(ctx, in.toDomain(id))
	if err != nil {
		return nil, fmt.Errorf("update village: %w", err)
	}
	return v, nil
}

// DeleteVillage removes the village. Its speakers and geographic records
// lose their village reference.
func (s *Service) DeleteVillage(ctx context.Context, id int64) error {
	if err := s.villages.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete village: %w", err)
	}
	s.log.InfoContext(ctx, "village deleted", slog.Int64("village_id", id))
	return nil
}
