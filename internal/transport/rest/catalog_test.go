package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
	"github.com/Miru57o/kikai-language-archive/internal/service/catalog"
)

func serve(h http.HandlerFunc, method, target string, pathValues ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestCatalogHandler_Index(t *testing.T) {
	t.Parallel()

	svc := &mockCatalog{
		SummaryFunc: func(context.Context) (*domain.ArchiveSummary, error) {
			return &domain.ArchiveSummary{
				TotalRecords:  12,
				TotalVillages: 3,
				TotalSpeakers: 5,
				RecentRecords: []domain.RecordDetail{sampleDetail()},
			}, nil
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	rec := serve(h.Index, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	var body summaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 12, body.TotalRecords)
	assert.Equal(t, 3, body.TotalVillages)
	assert.Equal(t, 5, body.TotalSpeakers)
	require.Len(t, body.RecentRecords, 1)
	assert.Equal(t, "ざわざわ", body.RecentRecords[0].Onomatopoeia)
}

func TestCatalogHandler_ListRecords_ParsesFilter(t *testing.T) {
	t.Parallel()

	var got domain.RecordFilter
	svc := &mockCatalog{
		ListRecordsFunc: func(_ context.Context, f domain.RecordFilter) (*catalog.RecordList, error) {
			got = f
			return &catalog.RecordList{Filter: f}, nil
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	rec := serve(h.ListRecords, http.MethodGet, "/records/?village=4&file_type=audio&onomatopoeia_type=nature&year=abc")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.VillageID)
	assert.Equal(t, int64(4), *got.VillageID)
	assert.Equal(t, domain.FileTypeAudio, got.FileType)
	assert.Equal(t, "nature", got.TypeCode)
	assert.Nil(t, got.Year)

	var body recordListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotNil(t, body.Records)
	assert.Len(t, body.FileTypes, 3)
}

func TestCatalogHandler_Search(t *testing.T) {
	t.Parallel()

	var gotQuery string
	svc := &mockCatalog{
		SearchRecordsFunc: func(_ context.Context, q string) ([]domain.RecordDetail, error) {
			gotQuery = q
			return []domain.RecordDetail{sampleDetail()}, nil
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	rec := serve(h.Search, http.MethodGet, "/records/search/?q=%20%E9%A2%A8%20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "風", gotQuery)
	var body searchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "風", body.Query)
	assert.Len(t, body.Records, 1)
}

func TestCatalogHandler_GetRecord(t *testing.T) {
	t.Parallel()

	svc := &mockCatalog{
		GetRecordFunc: func(_ context.Context, id int64) (*catalog.RecordView, error) {
			if id != 7 {
				return nil, fmt.Errorf("get record: %w", domain.ErrNotFound)
			}
			return &catalog.RecordView{Record: sampleDetail(), Place: "鹿児島県大島郡喜界町"}, nil
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	t.Run("found", func(t *testing.T) {
		rec := serve(h.GetRecord, http.MethodGet, "/records/7/", "id", "7")

		require.Equal(t, http.StatusOK, rec.Code)
		var body recordDetailResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, int64(7), body.Record.ID)
		assert.Equal(t, "鹿児島県大島郡喜界町", body.Place)
	})

	t.Run("missing", func(t *testing.T) {
		rec := serve(h.GetRecord, http.MethodGet, "/records/99/", "id", "99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := serve(h.GetRecord, http.MethodGet, "/records/abc/", "id", "abc")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCatalogHandler_VillageRecords_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockCatalog{
		ListVillageRecordsFunc: func(context.Context, int64) (*catalog.VillageRecords, error) {
			return nil, fmt.Errorf("get village: %w", domain.ErrNotFound)
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	rec := serve(h.VillageRecords, http.MethodGet, "/village/5/records/", "id", "5")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_SpeakerRecords(t *testing.T) {
	t.Parallel()

	svc := &mockCatalog{
		ListSpeakerRecordsFunc: func(_ context.Context, id int64) (*catalog.SpeakerRecords, error) {
			return &catalog.SpeakerRecords{
				Speaker: domain.Speaker{ID: id, SpeakerID: "SP001", AgeRange: domain.AgeRange80s, Gender: domain.GenderMale},
				Records: []domain.RecordDetail{sampleDetail()},
			}, nil
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	rec := serve(h.SpeakerRecords, http.MethodGet, "/speaker/1/records/", "id", "1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body speakerRecordsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "SP001", body.Speaker.SpeakerID)
	assert.Equal(t, "80代", body.Speaker.AgeRangeLabel)
	assert.Equal(t, "男性", body.Speaker.GenderLabel)
	assert.Len(t, body.Records, 1)
}

func TestCatalogHandler_APIVillageRecords_EmptyArray(t *testing.T) {
	t.Parallel()

	svc := &mockCatalog{
		RecordsInVillageFunc: func(context.Context, int64) ([]domain.RecordDetail, error) {
			return nil, nil
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	rec := serve(h.APIVillageRecords, http.MethodGet, "/api/village/42/records/", "id", "42")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCatalogHandler_APIVillageRecords_NullSpeaker(t *testing.T) {
	t.Parallel()

	d := sampleDetail()
	d.Speaker, d.Village = nil, nil
	svc := &mockCatalog{
		RecordsInVillageFunc: func(context.Context, int64) ([]domain.RecordDetail, error) {
			return []domain.RecordDetail{d}, nil
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	rec := serve(h.APIVillageRecords, http.MethodGet, "/api/village/1/records/", "id", "1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Nil(t, body[0]["speaker"])
}

func TestCatalogHandler_Geographic(t *testing.T) {
	t.Parallel()

	lat, lon := 28.33, 129.95
	g := domain.GeographicDetail{
		GeographicRecord: domain.GeographicRecord{
			ID: 9, Title: "海岸", ContentType: domain.ContentTypeDroneVideo,
			Latitude: &lat, Longitude: &lon,
		},
	}

	var gotFilter domain.GeographicFilter
	svc := &mockCatalog{
		ListGeographicFunc: func(_ context.Context, f domain.GeographicFilter) (*catalog.GeographicList, error) {
			gotFilter = f
			return &catalog.GeographicList{Records: []domain.GeographicDetail{g}, Filter: f}, nil
		},
		GetGeographicFunc: func(context.Context, int64) (*catalog.GeographicView, error) {
			return &catalog.GeographicView{Record: g, Place: "lat: 28.33, lon: 129.95"}, nil
		},
	}
	h := NewCatalogHandler(svc, newTestLogger())

	rec := serve(h.ListGeographic, http.MethodGet, "/geographic/?content_type=drone_video&village=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ContentTypeDroneVideo, gotFilter.ContentType)

	var list geographicListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Records, 1)
	assert.Equal(t, "ドローン映像", list.Records[0].ContentTypeLabel)
	require.NotNil(t, list.Records[0].Location)
	assert.InDelta(t, 28.33, list.Records[0].Location.Lat, 1e-9)

	rec = serve(h.GetGeographic, http.MethodGet, "/geographic/9/", "id", "9")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail geographicDetailResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&detail))
	assert.Equal(t, "lat: 28.33, lon: 129.95", detail.Place)
}
