// Package supabase uploads archive media to Supabase Storage over its REST API.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Miru57o/kikai-language-archive/internal/config"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

const maxErrorBody = 4 << 10

// ErrNotConfigured is returned when no Supabase URL or key is set.
var ErrNotConfigured = errors.New("storage is not configured")

// Recorder counts storage operations. *metrics.Metrics satisfies it.
type Recorder interface {
	StorageOperation(operation, bucket, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) StorageOperation(string, string, string) {}

// Client is a minimal Supabase Storage client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	rec        Recorder
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.rec = r }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client. The service-role key is preferred over the
// anon key.
func NewClient(cfg config.StorageConfig, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.SupabaseURL, "/"),
		apiKey:     cfg.APIKey(),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		rec:        nopRecorder{},
		log:        logger.With("adapter", "supabase"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PublicURL returns the public object URL for bucket/key.
func (c *Client) PublicURL(bucket, key string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + escapeKey(key)
}

// Upload stores body under bucket/key and returns its public URL. Errors
// wrap domain.ErrUpload. There is no retry.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error) {
	if c.baseURL == "" || c.apiKey == "" {
		c.rec.StorageOperation("upload", bucket, "error")
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(bucket, key), body)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", domain.ErrUpload, err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", contentType)
	if size > 0 {
		req.ContentLength = size
	}

	if err := c.do(req); err != nil {
		c.rec.StorageOperation("upload", bucket, "error")
		c.log.ErrorContext(ctx, "upload failed",
			slog.String("bucket", bucket),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}

	c.rec.StorageOperation("upload", bucket, "success")
	c.log.InfoContext(ctx, "object uploaded",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int64("size", size),
	)
	return c.PublicURL(bucket, key), nil
}

// Delete removes bucket/key.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	if c.baseURL == "" || c.apiKey == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(bucket, key), nil)
	if err != nil {
		return fmt.Errorf("supabase: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)

	if err := c.do(req); err != nil {
		c.rec.StorageOperation("delete", bucket, "error")
		return err
	}
	c.rec.StorageOperation("delete", bucket, "success")
	return nil
}

// Check reports whether the storage API is configured and reachable. Any
// answer below 500 counts as reachable: the anon key may not list buckets.
func (c *Client) Check(ctx context.Context) error {
	if c.baseURL == "" || c.apiKey == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/storage/v1/bucket", nil)
	if err != nil {
		return fmt.Errorf("supabase: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("supabase: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) objectURL(bucket, key string) string {
	return c.baseURL + "/storage/v1/object/" + bucket + "/" + escapeKey(key)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("supabase: status %s: %s", strconv.Itoa(resp.StatusCode), strings.TrimSpace(string(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
