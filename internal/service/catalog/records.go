package catalog

import (
	"context"
	"fmt"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// RecordList is a filtered record listing plus the choices its filter
// form needs.
type RecordList struct {
	Records  []domain.RecordDetail
	Filter   domain.RecordFilter
	Villages []domain.Village
	Types    []domain.OnomatopoeiaType
}

// ListRecords returns records matching every non-empty field of f.
func (s *Service) ListRecords(ctx context.Context, f domain.RecordFilter) (*RecordList, error) {
	records, err := s.records.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	villages, err := s.villages.ListWithRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list villages: %w", err)
	}
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}

	return &RecordList{
		Records:  records,
		Filter:   f,
		Villages: villages,
		Types:    types,
	}, nil
}

// SearchRecords matches query against onomatopoeia text and meaning.
// An empty query returns every record.
func (s *Service) SearchRecords(ctx context.Context, query string) ([]domain.RecordDetail, error) {
	records, err := s.records.List(ctx, domain.RecordFilter{Query: domain.NormalizeQuery(query)})
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	return records, nil
}

// RecordView is a record detail with a human-readable place name.
type RecordView struct {
	Record domain.RecordDetail
	Place  string
}

// GetRecord returns one record. The place is reverse-geocoded from the
// speaker's village and left empty when there is none.
func (s *Service) GetRecord(ctx context.Context, id int64) (*RecordView, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	view := &RecordView{Record: *rec}
	if rec.Village != nil {
		view.Place = s.geocoder.ReverseGeocode(ctx, rec.Village.Latitude, rec.Village.Longitude)
	}
	return view, nil
}

// VillageRecords is the listing scoped to one village.
type VillageRecords struct {
	Village domain.Village
	Records []domain.RecordDetail
}

// ListVillageRecords returns records whose speaker lives in the village.
// Unknown villages yield domain.ErrNotFound.
func (s *Service) ListVillageRecords(ctx context.Context, villageID int64) (*VillageRecords, error) {
	v, err := s.villages.GetByID(ctx, villageID)
	if err != nil {
		return nil, fmt.Errorf("get village: %w", err)
	}
	records, err := s.records.List(ctx, domain.RecordFilter{VillageID: &villageID})
	if err != nil {
		return nil, fmt.Errorf("list village records: %w", err)
	}
	return &VillageRecords{Village: *v, Records: records}, nil
}

// SpeakerRecords is the listing scoped to one speaker.
type SpeakerRecords struct {
	Speaker domain.Speaker
	Records []domain.RecordDetail
}

// ListSpeakerRecords returns the speaker's records.
func (s *Service) ListSpeakerRecords(ctx context.Context, speakerID int64) (*SpeakerRecords, error) {
	sp, err := s.speakers.GetByID(ctx, speakerID)
	if err != nil {
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	records, err := s.records.List(ctx, domain.RecordFilter{SpeakerID: &speakerID})
	if err != nil {
		return nil, fmt.Errorf("list speaker records: %w", err)
	}
	return &SpeakerRecords{Speaker: *sp, Records: records}, nil
}

// RecordsInVillage lists the village's records without checking that the
// village exists. The JSON API answers unknown ids with an empty array.
func (s *Service) RecordsInVillage(ctx context.Context, villageID int64) ([]domain.RecordDetail, error) {
	records, err := s.records.List(ctx, domain.RecordFilter{VillageID: &villageID})
	if err != nil {
		return nil, fmt.Errorf("list village records: %w", err)
	}
	return records, nil
}
