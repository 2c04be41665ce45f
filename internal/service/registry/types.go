package registry

import (
	"context"
	"fmt"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

func (s *Service) ListTypes(ctx context.Context) ([]domain.OnomatopoeiaType, error) {
	return s.types.List(ctx)
}

func (s *Service) GetType(ctx context.Context, id int64) (*domain.OnomatopoeiaType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *Service) CreateType(ctx context.Context, in TypeInput) (*domain.OnomatopoeiaType, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t, err := s.types.Create(ctx, in.toDomain(0))
	if err != nil {
		return nil, fmt.Errorf("create type: %w", err)
	}
	return t, nil
}

func (s *Service) UpdateType(ctx context.Context, id int64, in TypeInput) (*domain.OnomatopoeiaType, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t, err := s.types.Update(ctx, in.toDomain(id))
	if err != nil {
		return nil, fmt.Errorf("update type: %w", err)
	}
	return t, nil
}

// DeleteType removes the type; records classified by it become untyped.
func (s *Service) DeleteType(ctx context.Context, id int64) error {
	if err := s.types.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete type: %w", err)
	}
	return nil
}
