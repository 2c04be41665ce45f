package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
	"github.com/Miru57o/kikai-language-archive/internal/service/registry"
)

type registryService interface {
	ListVillages(ctx context.Context) ([]domain.Village, error)
	GetVillage(ctx context.Context, id int64) (*domain.Village, error)
	CreateVillage(ctx context.Context, in registry.VillageInput) (*domain.Village, error)
	UpdateVillage(ctx context.Context, id int64, in registry.VillageInput) (*domain.Village, error)
	DeleteVillage(ctx context.Context, id int64) error

	ListSpeakers(ctx context.Context) ([]domain.Speaker, error)
	GetSpeaker(ctx context.Context, id int64) (*domain.Speaker, error)
	CreateSpeaker(ctx context.Context, in registry.SpeakerInput) (*domain.Speaker, error)
	UpdateSpeaker(ctx context.Context, id int64, in registry.SpeakerInput) (*domain.Speaker, error)
	DeleteSpeaker(ctx context.Context, id int64) error

	ListTypes(ctx context.Context) ([]domain.OnomatopoeiaType, error)
	GetType(ctx context.Context, id int64) (*domain.OnomatopoeiaType, error)
	CreateType(ctx context.Context, in registry.TypeInput) (*domain.OnomatopoeiaType, error)
	UpdateType(ctx context.Context, id int64, in registry.TypeInput) (*domain.OnomatopoeiaType, error)
	DeleteType(ctx context.Context, id int64) error
}

// AdminHandler serves CRUD endpoints for the reference tables under /api/admin/.
type AdminHandler struct {
	svc registryService
	log *slog.Logger
}

func NewAdminHandler(svc registryService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: logger.With("handler", "admin")}
}

// ---------------------------------------------------------------------------
// Villages
// ---------------------------------------------------------------------------

func (h *AdminHandler) ListVillages(w http.ResponseWriter, r *http.Request) {
	vs, err := h.svc.ListVillages(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVillageResponses(vs))
}

func (h *AdminHandler) GetVillage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.svc.GetVillage(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVillageResponse(*v))
}

func (h *AdminHandler) CreateVillage(w http.ResponseWriter, r *http.Request) {
	var in registry.VillageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v, err := h.svc.CreateVillage(r.Context(), in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVillageResponse(*v))
}

func (h *AdminHandler) UpdateVillage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in registry.VillageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v, err := h.svc.UpdateVillage(r.Context(), id, in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVillageResponse(*v))
}

func (h *AdminHandler) DeleteVillage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteVillage(r.Context(), id); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Speakers
// ---------------------------------------------------------------------------

func (h *AdminHandler) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	ss, err := h.svc.ListSpeakers(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpeakerResponses(ss))
}

func (h *AdminHandler) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s, err := h.svc.GetSpeaker(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpeakerResponse(*s))
}

func (h *AdminHandler) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var in registry.SpeakerInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.svc.CreateSpeaker(r.Context(), in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSpeakerResponse(*s))
}

func (h *AdminHandler) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in registry.SpeakerInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.svc.UpdateSpeaker(r.Context(), id, in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpeakerResponse(*s))
}

// DeleteSpeaker answers 409 while language records still reference the speaker.
func (h *AdminHandler) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteSpeaker(r.Context(), id); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Onomatopoeia types
// ---------------------------------------------------------------------------

func (h *AdminHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.ListTypes(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTypeResponses(ts))
}

func (h *AdminHandler) GetType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.svc.GetType(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTypeResponse(*t))
}

func (h *AdminHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var in registry.TypeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.svc.CreateType(r.Context(), in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTypeResponse(*t))
}

func (h *AdminHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in registry.TypeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.svc.UpdateType(r.Context(), id, in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTypeResponse(*t))
}

func (h *AdminHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteType(r.Context(), id); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
