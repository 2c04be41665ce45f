package rest

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

const defaultDownloadName = "download"

// DownloadHandler streams a remote media file back as an attachment.
type DownloadHandler struct {
	client  *http.Client
	allowed []string
	log     *slog.Logger
}

// NewDownloadHandler creates a DownloadHandler. An empty allowed list
// permits any host.
func NewDownloadHandler(client *http.Client, allowed []string, logger *slog.Logger) *DownloadHandler {
	return &DownloadHandler{client: client, allowed: allowed, log: logger.With("handler", "download")}
}

// Download handles GET /download/?url=&filename=.
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		writeError(w, http.StatusBadRequest, "invalid url")
		return
	}
	if !h.hostAllowed(target.Hostname()) {
		writeError(w, http.StatusBadRequest, "host is not allowed")
		return
	}

	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		filename = path.Base(target.Path)
		if filename == "/" || filename == "." {
			filename = defaultDownloadName
		}
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid url")
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.fail(w, r, target, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		h.fail(w, r, target, fmt.Errorf("upstream status %d", resp.StatusCode))
		return
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	if resp.ContentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(resp.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.log.WarnContext(r.Context(), "download interrupted",
			slog.String("host", target.Host),
			slog.String("error", err.Error()),
		)
	}
}

func (h *DownloadHandler) fail(w http.ResponseWriter, r *http.Request, target *url.URL, err error) {
	h.log.ErrorContext(r.Context(), "download failed",
		slog.String("host", target.Host),
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusInternalServerError, "download error: "+err.Error())
}

func (h *DownloadHandler) hostAllowed(host string) bool {
	if len(h.allowed) == 0 {
		return true
	}
	return slices.Contains(h.allowed, strings.ToLower(host))
}

// contentDisposition always carries a quoted ASCII filename. Names with
// other characters also get an RFC 5987 filename* parameter.
func contentDisposition(name string) string {
	var ascii strings.Builder
	isASCII := true
	for _, r := range name {
		switch {
		case r == utf8.RuneError || r > 0x7e || r < 0x20:
			isASCII = false
			ascii.WriteByte('_')
		case r == '"' || r == '\\':
			ascii.WriteByte('\\')
			ascii.WriteRune(r)
		default:
			ascii.WriteRune(r)
		}
	}

	v := `attachment; filename="` + ascii.String() + `"`
	if !isASCII {
		v += "; filename*=UTF-8''" + strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	}
	return v
}
