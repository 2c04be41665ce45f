package rest

import (
	"context"
	"io"
	"log/slog"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
	"github.com/Miru57o/kikai-language-archive/internal/service/catalog"
	"github.com/Miru57o/kikai-language-archive/internal/service/mapview"
	"github.com/Miru57o/kikai-language-archive/internal/service/registry"
	"github.com/Miru57o/kikai-language-archive/internal/service/upload"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockCatalog struct {
	SummaryFunc            func(ctx context.Context) (*domain.ArchiveSummary, error)
	ListRecordsFunc        func(ctx context.Context, f domain.RecordFilter) (*catalog.RecordList, error)
	SearchRecordsFunc      func(ctx context.Context, query string) ([]domain.RecordDetail, error)
	GetRecordFunc          func(ctx context.Context, id int64) (*catalog.RecordView, error)
	ListVillageRecordsFunc func(ctx context.Context, id int64) (*catalog.VillageRecords, error)
	ListSpeakerRecordsFunc func(ctx context.Context, id int64) (*catalog.SpeakerRecords, error)
	RecordsInVillageFunc   func(ctx context.Context, id int64) ([]domain.RecordDetail, error)
	ListGeographicFunc     func(ctx context.Context, f domain.GeographicFilter) (*catalog.GeographicList, error)
	GetGeographicFunc      func(ctx context.Context, id int64) (*catalog.GeographicView, error)
}

func (m *mockCatalog) Summary(ctx context.Context) (*domain.ArchiveSummary, error) {
	return m.SummaryFunc(ctx)
}

func (m *mockCatalog) ListRecords(ctx context.Context, f domain.RecordFilter) (*catalog.RecordList, error) {
	return m.ListRecordsFunc(ctx, f)
}

func (m *mockCatalog) SearchRecords(ctx context.Context, query string) ([]domain.RecordDetail, error) {
	return m.SearchRecordsFunc(ctx, query)
}

func (m *mockCatalog) GetRecord(ctx context.Context, id int64) (*catalog.RecordView, error) {
	return m.GetRecordFunc(ctx, id)
}

func (m *mockCatalog) ListVillageRecords(ctx context.Context, id int64) (*catalog.VillageRecords, error) {
	return m.ListVillageRecordsFunc(ctx, id)
}

func (m *mockCatalog) ListSpeakerRecords(ctx context.Context, id int64) (*catalog.SpeakerRecords, error) {
	return m.ListSpeakerRecordsFunc(ctx, id)
}

func (m *mockCatalog) RecordsInVillage(ctx context.Context, id int64) ([]domain.RecordDetail, error) {
	return m.RecordsInVillageFunc(ctx, id)
}

func (m *mockCatalog) ListGeographic(ctx context.Context, f domain.GeographicFilter) (*catalog.GeographicList, error) {
	return m.ListGeographicFunc(ctx, f)
}

func (m *mockCatalog) GetGeographic(ctx context.Context, id int64) (*catalog.GeographicView, error) {
	return m.GetGeographicFunc(ctx, id)
}

type mockMap struct {
	BuildFunc func(ctx context.Context, year *int) (*mapview.View, error)
}

func (m *mockMap) Build(ctx context.Context, year *int) (*mapview.View, error) {
	return m.BuildFunc(ctx, year)
}

type mockUpload struct {
	LanguageFormFunc           func(ctx context.Context) (*upload.Form, error)
	GeographicFormFunc         func(ctx context.Context) (*upload.Form, error)
	UploadLanguageRecordFunc   func(ctx context.Context, in upload.LanguageInput) (*domain.LanguageRecord, error)
	UploadGeographicRecordFunc func(ctx context.Context, in upload.GeographicInput) (*domain.GeographicRecord, error)
}

func (m *mockUpload) LanguageForm(ctx context.Context) (*upload.Form, error) {
	return m.LanguageFormFunc(ctx)
}

func (m *mockUpload) GeographicForm(ctx context.Context) (*upload.Form, error) {
	return m.GeographicFormFunc(ctx)
}

func (m *mockUpload) UploadLanguageRecord(ctx context.Context, in upload.LanguageInput) (*domain.LanguageRecord, error) {
	return m.UploadLanguageRecordFunc(ctx, in)
}

func (m *mockUpload) UploadGeographicRecord(ctx context.Context, in upload.GeographicInput) (*domain.GeographicRecord, error) {
	return m.UploadGeographicRecordFunc(ctx, in)
}

type mockGeocoder struct {
	GeocodeFunc        func(ctx context.Context, address string) (domain.LatLng, bool)
	ReverseGeocodeFunc func(ctx context.Context, lat, lon float64) string
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (domain.LatLng, bool) {
	return m.GeocodeFunc(ctx, address)
}

func (m *mockGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	return m.ReverseGeocodeFunc(ctx, lat, lon)
}

// mockRegistry only implements the calls a test sets; the rest panic.
type mockRegistry struct {
	registryService

	CreateVillageFunc func(ctx context.Context, in registry.VillageInput) (*domain.Village, error)
	GetVillageFunc    func(ctx context.Context, id int64) (*domain.Village, error)
	ListSpeakersFunc  func(ctx context.Context) ([]domain.Speaker, error)
	DeleteSpeakerFunc func(ctx context.Context, id int64) error
	UpdateTypeFunc    func(ctx context.Context, id int64, in registry.TypeInput) (*domain.OnomatopoeiaType, error)
}

func (m *mockRegistry) CreateVillage(ctx context.Context, in registry.VillageInput) (*domain.Village, error) {
	return m.CreateVillageFunc(ctx, in)
}

func (m *mockRegistry) GetVillage(ctx context.Context, id int64) (*domain.Village, error) {
	return m.GetVillageFunc(ctx, id)
}

func (m *mockRegistry) ListSpeakers(ctx context.Context) ([]domain.Speaker, error) {
	return m.ListSpeakersFunc(ctx)
}

func (m *mockRegistry) DeleteSpeaker(ctx context.Context, id int64) error {
	return m.DeleteSpeakerFunc(ctx, id)
}

func (m *mockRegistry) UpdateType(ctx context.Context, id int64, in registry.TypeInput) (*domain.OnomatopoeiaType, error) {
	return m.UpdateTypeFunc(ctx, id, in)
}
