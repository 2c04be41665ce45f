package catalog

import (
	"context"
	"fmt"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// GeographicList is a filtered geographic listing with its filter choices.
type GeographicList struct {
	Records  []domain.GeographicDetail
	Filter   domain.GeographicFilter
	Villages []domain.Village
}

// ListGeographic returns geographic records matching f.
func (s *Service) ListGeographic(ctx context.Context, f domain.GeographicFilter) (*GeographicList, error) {
	records, err := s.geographic.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list geographic: %w", err)
	}
	villages, err := s.villages.ListWithRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list villages: %w", err)
	}
	return &GeographicList{Records: records, Filter: f, Villages: villages}, nil
}

// GeographicView is a geographic record with a place name.
type GeographicView struct {
	Record domain.GeographicDetail
	Place  string
}

// GetGeographic returns one geographic record. Its own coordinates take
// precedence over the village's for the place lookup.
func (s *Service) GetGeographic(ctx context.Context, id int64) (*GeographicView, error) {
	rec, err := s.geographic.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get geographic: %w", err)
	}

	view := &GeographicView{Record: *rec}
	if ll, ok := rec.Coords(); ok {
		view.Place = s.geocoder.ReverseGeocode(ctx, ll.Lat, ll.Lon)
	} else if rec.Village != nil {
		view.Place = s.geocoder.ReverseGeocode(ctx, rec.Village.Latitude, rec.Village.Longitude)
	}
	return view, nil
}
