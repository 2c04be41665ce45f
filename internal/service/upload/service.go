// Package upload stores new archive media in object storage and records
// them in the database.
package upload

import (
	"context"
	"io"
	"log/slog"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

type objectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

type geocoder interface {
	Geocode(ctx context.Context, address string) (domain.LatLng, bool)
}

type villageRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Village, error)
	List(ctx context.Context) ([]domain.Village, error)
}

type speakerRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Speaker, error)
	List(ctx context.Context) ([]domain.Speaker, error)
}

type typeRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.OnomatopoeiaType, error)
	List(ctx context.Context) ([]domain.OnomatopoeiaType, error)
}

type recordRepo interface {
	Create(ctx context.Context, rec domain.LanguageRecord) (*domain.LanguageRecord, error)
}

type geographicRepo interface {
	Create(ctx context.Context, g domain.GeographicRecord) (*domain.GeographicRecord, error)
}

// Service handles media uploads.
type Service struct {
	store      objectStore
	geocoder   geocoder
	villages   villageRepo
	speakers   speakerRepo
	types      typeRepo
	records    recordRepo
	geographic geographicRepo
	maxBytes   int64
	log        *slog.Logger
}

// Deps groups the collaborators of the upload service.
type Deps struct {
	Store      objectStore
	Geocoder   geocoder
	Villages   villageRepo
	Speakers   speakerRepo
	Types      typeRepo
	Records    recordRepo
	Geographic geographicRepo
}

// NewService creates a new upload service. maxBytes of zero disables the
// size check.
func NewService(log *slog.Logger, deps Deps, maxBytes int64) *Service {
	return &Service{
		store:      deps.Store,
		geocoder:   deps.Geocoder,
		villages:   deps.Villages,
		speakers:   deps.Speakers,
		types:      deps.Types,
		records:    deps.Records,
		geographic: deps.Geographic,
		maxBytes:   maxBytes,
		log:        log.With("service", "upload"),
	}
}

type storedObject struct {
	bucket string
	key    string
}

// put uploads f and returns its public URL.
func (s *Service) put(ctx context.Context, bucket, prefix string, f *File) (string, storedObject, error) {
	key := ObjectKey(prefix, f.Name)
	url, err := s.store.Upload(ctx, bucket, key, contentTypeOf(f), f.Body, f.Size)
	if err != nil {
		return "", storedObject{}, err
	}
	return url, storedObject{bucket: bucket, key: key}, nil
}

// discard removes objects whose database row could not be written.
// Failures are logged and not retried.
func (s *Service) discard(ctx context.Context, objects ...storedObject) {
	ctx = context.WithoutCancel(ctx)
	for _, o := range objects {
		if err := s.store.Delete(ctx, o.bucket, o.key); err != nil {
			s.log.WarnContext(ctx, "orphaned object left in storage",
				slog.String("bucket", o.bucket),
				slog.String("key", o.key),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.log.InfoContext(ctx, "orphaned object removed",
			slog.String("bucket", o.bucket),
			slog.String("key", o.key),
		)
	}
}
