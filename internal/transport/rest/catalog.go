package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
	"github.com/Miru57o/kikai-language-archive/internal/service/catalog"
)

type catalogService interface {
	Summary(ctx context.Context) (*domain.ArchiveSummary, error)
	ListRecords(ctx context.Context, f domain.RecordFilter) (*catalog.RecordList, error)
	SearchRecords(ctx context.Context, query string) ([]domain.RecordDetail, error)
	GetRecord(ctx context.Context, id int64) (*catalog.RecordView, error)
	ListVillageRecords(ctx context.Context, villageID int64) (*catalog.VillageRecords, error)
	ListSpeakerRecords(ctx context.Context, speakerID int64) (*catalog.SpeakerRecords, error)
	RecordsInVillage(ctx context.Context, villageID int64) ([]domain.RecordDetail, error)
	ListGeographic(ctx context.Context, f domain.GeographicFilter) (*catalog.GeographicList, error)
	GetGeographic(ctx context.Context, id int64) (*catalog.GeographicView, error)
}

// CatalogHandler serves the read-only archive views.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

// Index handles GET /.
func (h *CatalogHandler) Index(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		TotalRecords:  s.TotalRecords,
		TotalVillages: s.TotalVillages,
		TotalSpeakers: s.TotalSpeakers,
		RecentRecords: formatRecords(s.RecentRecords),
	})
}

// ListRecords handles GET /records/?village=&file_type=&onomatopoeia_type=.
func (h *CatalogHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListRecords(r.Context(), domain.ParseRecordFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordListResponse(list))
}

// Search handles GET /records/search/?q=.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	records, err := h.svc.SearchRecords(r.Context(), q)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Records: formatRecords(records)})
}

// GetRecord handles GET /records/{id}/.
func (h *CatalogHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	view, err := h.svc.GetRecord(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordDetailResponse{Record: FormatRecord(view.Record), Place: view.Place})
}

// VillageRecords handles GET /village/{id}/records/.
func (h *CatalogHandler) VillageRecords(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.ListVillageRecords(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, villageRecordsResponse{
		Village: toVillageResponse(res.Village),
		Records: formatRecords(res.Records),
	})
}

// SpeakerRecords handles GET /speaker/{id}/records/.
func (h *CatalogHandler) SpeakerRecords(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.ListSpeakerRecords(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, speakerRecordsResponse{
		Speaker: toSpeakerResponse(res.Speaker),
		Records: formatRecords(res.Records),
	})
}

// APIVillageRecords handles GET /api/village/{id}/records/. Unknown
// villages produce an empty array rather than 404.
func (h *CatalogHandler) APIVillageRecords(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	records, err := h.svc.RecordsInVillage(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatRecords(records))
}

// ListGeographic handles GET /geographic/?content_type=&village=.
func (h *CatalogHandler) ListGeographic(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListGeographic(r.Context(), domain.ParseGeographicFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGeographicListResponse(list))
}

// GetGeographic handles GET /geographic/{id}/.
func (h *CatalogHandler) GetGeographic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	view, err := h.svc.GetGeographic(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, geographicDetailResponse{
		Record: toGeographicResponse(view.Record),
		Place:  view.Place,
	})
}
