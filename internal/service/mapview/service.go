// Package mapview builds the payload of the archive map.
package mapview

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Miru57o/kikai-language-archive/internal/config"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

type speakerRepo interface {
	ListLocated(ctx context.Context, year *int) ([]domain.SpeakerLocation, error)
}

type geographicRepo interface {
	ListLocated(ctx context.Context, year *int) ([]domain.GeographicDetail, error)
	Years(ctx context.Context) ([]int, error)
}

type recordRepo interface {
	Years(ctx context.Context) ([]int, error)
}

// Settings is the initial view of the map widget.
type Settings struct {
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	TileURL     string
	Attribution string
}

// View is everything the map page needs.
type View struct {
	Settings Settings
	Markers  []Marker
	Years    []int
	Year     *int
}

// Service assembles map views.
type Service struct {
	speakers   speakerRepo
	geographic geographicRepo
	records    recordRepo
	settings   Settings
	log        *slog.Logger
}

// NewService creates a new map service.
func NewService(
	log *slog.Logger,
	cfg config.MapConfig,
	speakers speakerRepo,
	geographic geographicRepo,
	records recordRepo,
) *Service {
	return &Service{
		speakers:   speakers,
		geographic: geographic,
		records:    records,
		settings: Settings{
			CenterLat:   cfg.CenterLat,
			CenterLon:   cfg.CenterLon,
			Zoom:        cfg.Zoom,
			TileURL:     cfg.TileURL,
			Attribution: cfg.Attribution,
		},
		log: log.With("service", "mapview"),
	}
}

// Build returns the markers for year, or for all years when year is nil.
func (s *Service) Build(ctx context.Context, year *int) (*View, error) {
	speakers, err := s.speakers.ListLocated(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	geo, err := s.geographic.ListLocated(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list geographic: %w", err)
	}

	markers, err := BuildMarkers(speakers, geo)
	if err != nil {
		return nil, err
	}

	years, err := s.years(ctx)
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "map built",
		slog.Int("speakers", len(speakers)),
		slog.Int("geographic", len(geo)),
		slog.Int("markers", len(markers)),
	)

	return &View{
		Settings: s.settings,
		Markers:  markers,
		Years:    years,
		Year:     year,
	}, nil
}

// years returns the distinct years with any data, newest first.
func (s *Service) years(ctx context.Context) ([]int, error) {
	ry, err := s.records.Years(ctx)
	if err != nil {
		return nil, fmt.Errorf("record years: %w", err)
	}
	gy, err := s.geographic.Years(ctx)
	if err != nil {
		return nil, fmt.Errorf("geographic years: %w", err)
	}

	all := append(slices.Clone(ry), gy...)
	slices.Sort(all)
	all = slices.Compact(all)
	slices.Reverse(all)
	return all, nil
}
