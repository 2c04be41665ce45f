package rest

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
	"github.com/Miru57o/kikai-language-archive/internal/service/upload"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before parts spill to temporary files.
const multipartMemory = 32 << 20

type uploadService interface {
	LanguageForm(ctx context.Context) (*upload.Form, error)
	GeographicForm(ctx context.Context) (*upload.Form, error)
	UploadLanguageRecord(ctx context.Context, in upload.LanguageInput) (*domain.LanguageRecord, error)
	UploadGeographicRecord(ctx context.Context, in upload.GeographicInput) (*domain.GeographicRecord, error)
}

// UploadHandler serves the record upload forms.
type UploadHandler struct {
	svc      uploadService
	maxBytes int64
	log      *slog.Logger
}

// NewUploadHandler creates an UploadHandler. maxBytes bounds a single file;
// the request body may hold a file and a thumbnail.
func NewUploadHandler(svc uploadService, maxBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, maxBytes: maxBytes, log: logger.With("handler", "upload")}
}

// LanguageForm handles GET /records/upload/.
func (h *UploadHandler) LanguageForm(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.LanguageForm(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFormResponse(f))
}

// GeographicForm handles GET /geographic/upload/.
func (h *UploadHandler) GeographicForm(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.GeographicForm(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFormResponse(f))
}

// UploadLanguage handles POST /records/upload/ (multipart/form-data).
func (h *UploadHandler) UploadLanguage(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	var fe formErrors
	in := upload.LanguageInput{
		OnomatopoeiaText:   r.FormValue("onomatopoeia_text"),
		Meaning:            r.FormValue("meaning"),
		UsageExample:       r.FormValue("usage_example"),
		PhoneticNotation:   r.FormValue("phonetic_notation"),
		LanguageFrequency:  strings.TrimSpace(r.FormValue("language_frequency")),
		FileType:           strings.TrimSpace(r.FormValue("file_type")),
		SpeakerID:          fe.id(r, "speaker"),
		OnomatopoeiaTypeID: fe.id(r, "onomatopoeia_type"),
		RecordedDate:       r.FormValue("recorded_date"),
		Notes:              r.FormValue("notes"),
	}
	if fe.reply(w) {
		return
	}

	file, closeFile := formFile(r, "file")
	defer closeFile()
	thumb, closeThumb := formFile(r, "thumbnail")
	defer closeThumb()
	in.File, in.Thumbnail = file, thumb

	rec, err := h.svc.UploadLanguageRecord(r.Context(), in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLanguageRecordResponse(rec))
}

// UploadGeographic handles POST /geographic/upload/ (multipart/form-data).
func (h *UploadHandler) UploadGeographic(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	var fe formErrors
	in := upload.GeographicInput{
		Title:        r.FormValue("title"),
		ContentType:  strings.TrimSpace(r.FormValue("content_type")),
		Description:  r.FormValue("description"),
		VillageID:    fe.id(r, "village"),
		Latitude:     fe.float(r, "latitude"),
		Longitude:    fe.float(r, "longitude"),
		Address:      strings.TrimSpace(r.FormValue("address")),
		CapturedDate: r.FormValue("captured_date"),
	}
	if fe.reply(w) {
		return
	}

	file, closeFile := formFile(r, "file")
	defer closeFile()
	thumb, closeThumb := formFile(r, "thumbnail")
	defer closeThumb()
	in.File, in.Thumbnail = file, thumb

	rec, err := h.svc.UploadGeographicRecord(r.Context(), in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCreatedGeographicResponse(rec))
}

func (h *UploadHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxBytes+multipartMemory)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return false
	}
	return true
}

// formFile returns nil when the part is absent or empty.
func formFile(r *http.Request, field string) (*upload.File, func()) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, func() {}
	}
	closeFn := func() { f.Close() } //nolint:errcheck
	if hdr.Size == 0 {
		return nil, closeFn
	}
	return &upload.File{
		Name:        hdr.Filename,
		ContentType: partContentType(hdr),
		Size:        hdr.Size,
		Body:        f,
	}, closeFn
}

func partContentType(hdr *multipart.FileHeader) string {
	ct := hdr.Header.Get("Content-Type")
	if ct == "application/octet-stream" {
		return ""
	}
	return ct
}

// formErrors collects malformed numeric fields. Blank values are left to
// the service, which reports them as missing.
type formErrors []domain.FieldError

func (fe *formErrors) id(r *http.Request, field string) *int64 {
	s := strings.TrimSpace(r.FormValue(field))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*fe = append(*fe, domain.FieldError{Field: field, Message: "must be an integer"})
		return nil
	}
	return &v
}

func (fe *formErrors) float(r *http.Request, field string) *float64 {
	s := strings.TrimSpace(r.FormValue(field))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*fe = append(*fe, domain.FieldError{Field: field, Message: "must be a number"})
		return nil
	}
	return &v
}

func (fe formErrors) reply(w http.ResponseWriter) bool {
	if len(fe) == 0 {
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fe})
	return true
}
