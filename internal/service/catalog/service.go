// Package catalog assembles read models for the archive's browse views.
package catalog

import (
	"context"
	"log/slog"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

type recordRepo interface {
	List(ctx context.Context, f domain.RecordFilter) ([]domain.RecordDetail, error)
	ListRecent(ctx context.Context, n int) ([]domain.RecordDetail, error)
	GetByID(ctx context.Context, id int64) (*domain.RecordDetail, error)
	Count(ctx context.Context) (int, error)
}

type villageRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Village, error)
	ListWithRecords(ctx context.Context) ([]domain.Village, error)
	CountWithRecords(ctx context.Context) (int, error)
}

type speakerRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Speaker, error)
	Count(ctx context.Context) (int, error)
}

type typeRepo interface {
	List(ctx context.Context) ([]domain.OnomatopoeiaType, error)
}

type geographicRepo interface {
	List(ctx context.Context, f domain.GeographicFilter) ([]domain.GeographicDetail, error)
	GetByID(ctx context.Context, id int64) (*domain.GeographicDetail, error)
}

type reverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) string
}

// RecentRecordsLimit is the number of records shown on the landing page.
const RecentRecordsLimit = 6

// Service provides read-only catalog queries.
type Service struct {
	records    recordRepo
	villages   villageRepo
	speakers   speakerRepo
	types      typeRepo
	geographic geographicRepo
	geocoder   reverseGeocoder
	log        *slog.Logger
}

// NewService creates a new catalog service.
func NewService(
	log *slog.Logger,
	records recordRepo,
	villages villageRepo,
	speakers speakerRepo,
	types typeRepo,
	geographic geographicRepo,
	geocoder reverseGeocoder,
) *Service {
	return &Service{
		records:    records,
		villages:   villages,
		speakers:   speakers,
		types:      types,
		geographic: geographic,
		geocoder:   geocoder,
		log:        log.With("service", "catalog"),
	}
}
