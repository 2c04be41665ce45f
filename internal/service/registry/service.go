// Package registry manages the reference tables edited by archive staff:
// villages, speakers and onomatopoeia types.
package registry

import (
	"context"
	"log/slog"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

type villageRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Village, error)
	List(ctx context.Context) ([]domain.Village, error)
	Create(ctx context.Context, v domain.Village) (*domain.Village, error)
	Update(ctx context.Context, v domain.Village) (*domain.Village, error)
	Delete(ctx context.Context, id int64) error
}

type speakerRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Speaker, error)
	List(ctx context.Context) ([]domain.Speaker, error)
	Create(ctx context.Context, s domain.Speaker) (*domain.Speaker, error)
	Update(ctx context.Context, s domain.Speaker) (*domain.Speaker, error)
	Delete(ctx context.Context, id int64) error
}

type typeRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.OnomatopoeiaType, error)
	List(ctx context.Context) ([]domain.OnomatopoeiaType, error)
	Create(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error)
	Update(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error)
	Delete(ctx context.Context, id int64) error
}

// Service provides CRUD over the reference tables.
type Service struct {
	villages villageRepo
	speakers speakerRepo
	types    typeRepo
	log      *slog.Logger
}

// NewService creates a new registry service.
func NewService(log *slog.Logger, villages villageRepo, speakers speakerRepo, types typeRepo) *Service {
	return &Service{
		villages: villages,
		speakers: speakers,
		types:    types,
		log:      log.With("service", "registry"),
	}
}
