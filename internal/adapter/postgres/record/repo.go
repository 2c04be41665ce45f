// Package record implements the LanguageRecord repository using PostgreSQL.
// Reads return records joined with their speaker, the speaker's village and
// the onomatopoeia type.
package record

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Repo provides language record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new record repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var detailColumns = []string{
	"lr.id", "lr.onomatopoeia_text", "lr.meaning", "lr.usage_example", "lr.phonetic_notation",
	"lr.language_frequency", "lr.file_type", "lr.file_path", "lr.thumbnail_path",
	"lr.speaker_id", "lr.onomatopoeia_type_id", "lr.recorded_date", "lr.notes",
	"lr.created_at", "lr.updated_at",
	"s.speaker_id AS s_code", "s.age_range AS s_age_range", "s.gender AS s_gender",
	"s.village_id AS s_village_id", "s.consent_video AS s_consent_video",
	"s.notes AS s_notes", "s.created_at AS s_created_at",
	"v.name AS v_name", "v.latitude AS v_latitude", "v.longitude AS v_longitude",
	"v.description AS v_description",
	"t.type_code AS t_code", "t.type_name AS t_name", "t.description AS t_description",
}

const detailFrom = "language_records lr"

func selectDetails() sq.SelectBuilder {
	return postgres.Builder().
		Select(detailColumns...).
		From(detailFrom).
		LeftJoin("speakers s ON s.id = lr.speaker_id").
		LeftJoin("villages v ON v.id = s.village_id").
		LeftJoin("onomatopoeia_types t ON t.id = lr.onomatopoeia_type_id")
}

type detailRow struct {
	ID                 int64     `db:"id"`
	OnomatopoeiaText   string    `db:"onomatopoeia_text"`
	Meaning            string    `db:"meaning"`
	UsageExample       string    `db:"usage_example"`
	PhoneticNotation   string    `db:"phonetic_notation"`
	LanguageFrequency  string    `db:"language_frequency"`
	FileType           string    `db:"file_type"`
	FilePath           string    `db:"file_path"`
	ThumbnailPath      *string   `db:"thumbnail_path"`
	SpeakerID          *int64    `db:"speaker_id"`
	OnomatopoeiaTypeID *int64    `db:"onomatopoeia_type_id"`
	RecordedDate       time.Time `db:"recorded_date"`
	Notes              string    `db:"notes"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`

	SCode         *string    `db:"s_code"`
	SAgeRange     *string    `db:"s_age_range"`
	SGender       *string    `db:"s_gender"`
	SVillageID    *int64     `db:"s_village_id"`
	SConsentVideo *bool      `db:"s_consent_video"`
	SNotes        *string    `db:"s_notes"`
	SCreatedAt    *time.Time `db:"s_created_at"`

	VName        *string  `db:"v_name"`
	VLatitude    *float64 `db:"v_latitude"`
	VLongitude   *float64 `db:"v_longitude"`
	VDescription *string  `db:"v_description"`

	TCode        *string `db:"t_code"`
	TName        *string `db:"t_name"`
	TDescription *string `db:"t_description"`
}

func (r detailRow) toDomain() domain.RecordDetail {
	d := domain.RecordDetail{
		LanguageRecord: domain.LanguageRecord{
			ID:                 r.ID,
			OnomatopoeiaText:   r.OnomatopoeiaText,
			Meaning:            r.Meaning,
			UsageExample:       r.UsageExample,
			PhoneticNotation:   r.PhoneticNotation,
			LanguageFrequency:  domain.LanguageFrequency(r.LanguageFrequency),
			FileType:           domain.FileType(r.FileType),
			FilePath:           r.FilePath,
			ThumbnailPath:      r.ThumbnailPath,
			SpeakerID:          r.SpeakerID,
			OnomatopoeiaTypeID: r.OnomatopoeiaTypeID,
			RecordedDate:       r.RecordedDate,
			Notes:              r.Notes,
			CreatedAt:          r.CreatedAt,
			UpdatedAt:          r.UpdatedAt,
		},
	}

	if r.SpeakerID != nil && r.SCode != nil {
		d.Speaker = &domain.Speaker{
			ID:           *r.SpeakerID,
			SpeakerID:    *r.SCode,
			AgeRange:     domain.AgeRange(deref(r.SAgeRange)),
			Gender:       domain.Gender(deref(r.SGender)),
			VillageID:    r.SVillageID,
			ConsentVideo: r.SConsentVideo != nil && *r.SConsentVideo,
			Notes:        deref(r.SNotes),
		}
		if r.SCreatedAt != nil {
			d.Speaker.CreatedAt = *r.SCreatedAt
		}
	}

	if r.SVillageID != nil && r.VName != nil {
		d.Village = &domain.Village{
			ID:          *r.SVillageID,
			Name:        *r.VName,
			Latitude:    derefFloat(r.VLatitude),
			Longitude:   derefFloat(r.VLongitude),
			Description: deref(r.VDescription),
		}
	}

	if r.OnomatopoeiaTypeID != nil && r.TCode != nil {
		d.Type = &domain.OnomatopoeiaType{
			ID:          *r.OnomatopoeiaTypeID,
			TypeCode:    *r.TCode,
			TypeName:    deref(r.TName),
			Description: deref(r.TDescription),
		}
	}

	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns records matching every non-empty field of f, newest
// recording first. Returns an empty slice when nothing matches.
func (r *Repo) List(ctx context.Context, f domain.RecordFilter) ([]domain.RecordDetail, error) {
	b := applyFilter(selectDetails(), f).OrderBy("lr.recorded_date DESC", "lr.id DESC")
	return r.selectDetails(ctx, b)
}

// ListRecent returns the n most recently created records.
func (r *Repo) ListRecent(ctx context.Context, n int) ([]domain.RecordDetail, error) {
	b := selectDetails().OrderBy("lr.created_at DESC", "lr.id DESC").Limit(uint64(n))
	return r.selectDetails(ctx, b)
}

// GetByID returns a record with its relations.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.RecordDetail, error) {
	query, args, err := selectDetails().Where(sq.Eq{"lr.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build record query: %w", err)
	}

	var dst detailRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "record", id)
	}

	d := dst.toDomain()
	return &d, nil
}

// Count returns the total number of language records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, "SELECT COUNT(*) FROM language_records").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Years returns the distinct recording years, newest first.
func (r *Repo) Years(ctx context.Context) ([]int, error) {
	const q = `SELECT DISTINCT EXTRACT(YEAR FROM recorded_date)::int AS year
FROM language_records
ORDER BY year DESC`

	var years []int
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &years, q); err != nil {
		return nil, fmt.Errorf("list record years: %w", err)
	}
	return years, nil
}

func (r *Repo) selectDetails(ctx context.Context, b sq.SelectBuilder) ([]domain.RecordDetail, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build record query: %w", err)
	}

	var rows []detailRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := make([]domain.RecordDetail, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a record and returns it with generated id and timestamps.
// Returns domain.ErrNotFound if the speaker or type does not exist.
func (r *Repo) Create(ctx context.Context, rec domain.LanguageRecord) (*domain.LanguageRecord, error) {
	query, args, err := postgres.Builder().
		Insert("language_records").
		Columns(
			"onomatopoeia_text", "meaning", "usage_example", "phonetic_notation",
			"language_frequency", "file_type", "file_path", "thumbnail_path",
			"speaker_id", "onomatopoeia_type_id", "recorded_date", "notes",
		).
		Values(
			rec.OnomatopoeiaText, rec.Meaning, rec.UsageExample, rec.PhoneticNotation,
			string(rec.LanguageFrequency), string(rec.FileType), rec.FilePath, rec.ThumbnailPath,
			rec.SpeakerID, rec.OnomatopoeiaTypeID, rec.RecordedDate, rec.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build record insert: %w", err)
	}

	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "record", 0)
	}
	return &rec, nil
}
