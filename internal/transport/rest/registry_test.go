package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
	"github.com/Miru57o/kikai-language-archive/internal/service/registry"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAdminHandler_CreateVillage(t *testing.T) {
	t.Parallel()

	var got registry.VillageInput
	svc := &mockRegistry{CreateVillageFunc: func(_ context.Context, in registry.VillageInput) (*domain.Village, error) {
		got = in
		return &domain.Village{ID: 1, Name: in.Name, Latitude: *in.Latitude, Longitude: *in.Longitude}, nil
	}}
	h := NewAdminHandler(svc, newTestLogger())

	rec := httptest.NewRecorder()
	h.CreateVillage(rec, jsonRequest(http.MethodPost, "/api/admin/villages/", `{"name":"湾","latitude":28.32,"longitude":129.93}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "湾", got.Name)
	var body villageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(1), body.ID)
}

func TestAdminHandler_CreateVillage_BadBody(t *testing.T) {
	t.Parallel()

	h := NewAdminHandler(&mockRegistry{}, newTestLogger())

	for _, body := range []string{`{`, `{"unknown":1}`} {
		rec := httptest.NewRecorder()
		h.CreateVillage(rec, jsonRequest(http.MethodPost, "/api/admin/villages/", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestAdminHandler_CreateVillage_Validation(t *testing.T) {
	t.Parallel()

	svc := &mockRegistry{CreateVillageFunc: func(context.Context, registry.VillageInput) (*domain.Village, error) {
		return nil, domain.NewValidationError("latitude", "required")
	}}
	h := NewAdminHandler(svc, newTestLogger())

	rec := httptest.NewRecorder()
	h.CreateVillage(rec, jsonRequest(http.MethodPost, "/api/admin/villages/", `{"name":"湾"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "latitude", body.Fields[0].Field)
}

func TestAdminHandler_GetVillage_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockRegistry{GetVillageFunc: func(context.Context, int64) (*domain.Village, error) {
		return nil, fmt.Errorf("get village: %w", domain.ErrNotFound)
	}}
	h := NewAdminHandler(svc, newTestLogger())

	rec := serve(h.GetVillage, http.MethodGet, "/api/admin/villages/8/", "id", "8")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminHandler_ListSpeakers(t *testing.T) {
	t.Parallel()

	svc := &mockRegistry{ListSpeakersFunc: func(context.Context) ([]domain.Speaker, error) {
		return []domain.Speaker{{ID: 1, SpeakerID: "SP001", AgeRange: domain.AgeRange100s, Gender: domain.GenderOther}}, nil
	}}
	h := NewAdminHandler(svc, newTestLogger())

	rec := serve(h.ListSpeakers, http.MethodGet, "/api/admin/speakers/")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []speakerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "100歳以上", body[0].AgeRangeLabel)
	assert.Equal(t, "その他", body[0].GenderLabel)
}

func TestAdminHandler_DeleteSpeaker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"referenced", fmt.Errorf("delete speaker: %w", domain.ErrConflict), http.StatusConflict},
		{"missing", domain.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockRegistry{DeleteSpeakerFunc: func(context.Context, int64) error { return tt.err }}
			h := NewAdminHandler(svc, newTestLogger())

			rec := serve(h.DeleteSpeaker, http.MethodDelete, "/api/admin/speakers/1/", "id", "1")

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestAdminHandler_UpdateType_Duplicate(t *testing.T) {
	t.Parallel()

	var gotID int64
	svc := &mockRegistry{UpdateTypeFunc: func(_ context.Context, id int64, _ registry.TypeInput) (*domain.OnomatopoeiaType, error) {
		gotID = id
		return nil, domain.ErrAlreadyExists
	}}
	h := NewAdminHandler(svc, newTestLogger())

	req := jsonRequest(http.MethodPut, "/api/admin/onomatopoeia-types/4/", `{"type_code":"nature","type_name":"自然音"}`)
	req.SetPathValue("id", "4")
	rec := httptest.NewRecorder()
	h.UpdateType(rec, req)

	assert.Equal(t, int64(4), gotID)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
