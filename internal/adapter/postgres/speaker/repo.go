// Package speaker implements the Speaker repository using PostgreSQL.
package speaker

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Repo provides speaker persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new speaker repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"s.id", "s.speaker_id", "s.age_range", "s.gender", "s.village_id",
	"s.consent_video", "s.notes", "s.created_at",
}

type row struct {
	ID           int64     `db:"id"`
	SpeakerID    string    `db:"speaker_id"`
	AgeRange     string    `db:"age_range"`
	Gender       string    `db:"gender"`
	VillageID    *int64    `db:"village_id"`
	ConsentVideo bool      `db:"consent_video"`
	Notes        string    `db:"notes"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Speaker {
	return domain.Speaker{
		ID:           r.ID,
		SpeakerID:    r.SpeakerID,
		AgeRange:     domain.AgeRange(r.AgeRange),
		Gender:       domain.Gender(r.Gender),
		VillageID:    r.VillageID,
		ConsentVideo: r.ConsentVideo,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}

type locationRow struct {
	row
	VName        string  `db:"v_name"`
	VLatitude    float64 `db:"v_latitude"`
	VLongitude   float64 `db:"v_longitude"`
	VDescription string  `db:"v_description"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a speaker by primary key.
// Returns domain.ErrNotFound if the speaker does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("speakers s").
		Where(sq.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build speaker query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "speaker", id)
	}

	s := dst.toDomain()
	return &s, nil
}

// List returns all speakers ordered by speaker code.
func (r *Repo) List(ctx context.Context) ([]domain.Speaker, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("speakers s").
		OrderBy("s.speaker_id", "s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build speaker query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}

	out := make([]domain.Speaker, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// Count returns the total number of speakers.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, "SELECT COUNT(*) FROM speakers").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count speakers: %w", err)
	}
	return n, nil
}

// ListLocated returns speakers that have a village and at least one language
// record, paired with that village. When year is set only records from that
// calendar year count. Ordered by speaker code.
func (r *Repo) ListLocated(ctx context.Context, year *int) ([]domain.SpeakerLocation, error) {
	hasRecord := postgres.Builder().
		Select("1").
		From("language_records lr").
		Where("lr.speaker_id = s.id")
	if year != nil {
		hasRecord = hasRecord.Where(sq.Eq{"EXTRACT(YEAR FROM lr.recorded_date)": *year})
	}

	cols := append([]string{}, columns...)
	cols = append(cols,
		"v.name AS v_name", "v.latitude AS v_latitude",
		"v.longitude AS v_longitude", "v.description AS v_description",
	)

	query, args, err := postgres.Builder().
		Select(cols...).
		From("speakers s").
		Join("villages v ON v.id = s.village_id").
		Where(sq.Expr("EXISTS (?)", hasRecord)).
		OrderBy("s.speaker_id", "s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build located speakers query: %w", err)
	}

	var rows []locationRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list located speakers: %w", err)
	}

	out := make([]domain.SpeakerLocation, len(rows))
	for i, rw := range rows {
		s := rw.row.toDomain()
		out[i] = domain.SpeakerLocation{
			Speaker: s,
			Village: domain.Village{
				ID:          *s.VillageID,
				Name:        rw.VName,
				Latitude:    rw.VLatitude,
				Longitude:   rw.VLongitude,
				Description: rw.VDescription,
			},
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a speaker.
// Returns domain.ErrAlreadyExists if the speaker code is taken and
// domain.ErrNotFound if the village does not exist.
func (r *Repo) Create(ctx context.Context, s domain.Speaker) (*domain.Speaker, error) {
	query, args, err := postgres.Builder().
		Insert("speakers").
		Columns("speaker_id", "age_range", "gender", "village_id", "consent_video", "notes").
		Values(s.SpeakerID, string(s.AgeRange), string(s.Gender), s.VillageID, s.ConsentVideo, s.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build speaker insert: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "speaker", 0)
	}
	return &s, nil
}

// Upsert inserts a speaker or updates the one with the same speaker code.
func (r *Repo) Upsert(ctx context.Context, s domain.Speaker) (*domain.Speaker, error) {
	query, args, err := postgres.Builder().
		Insert("speakers").
		Columns("speaker_id", "age_range", "gender", "village_id", "consent_video", "notes").
		Values(s.SpeakerID, string(s.AgeRange), string(s.Gender), s.VillageID, s.ConsentVideo, s.Notes).
		Suffix(`ON CONFLICT (speaker_id) DO UPDATE
			SET age_range = EXCLUDED.age_range,
			    gender = EXCLUDED.gender,
			    village_id = EXCLUDED.village_id,
			    consent_video = EXCLUDED.consent_video,
			    notes = EXCLUDED.notes
			RETURNING id, created_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build speaker upsert: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "speaker", 0)
	}
	return &s, nil
}

// Update overwrites all mutable fields of a speaker.
// Returns domain.ErrNotFound if the speaker does not exist.
func (r *Repo) Update(ctx context.Context, s domain.Speaker) (*domain.Speaker, error) {
	query, args, err := postgres.Builder().
		Update("speakers").
		Set("speaker_id", s.SpeakerID).
		Set("age_range", string(s.AgeRange)).
		Set("gender", string(s.Gender)).
		Set("village_id", s.VillageID).
		Set("consent_video", s.ConsentVideo).
		Set("notes", s.Notes).
		Where(sq.Eq{"id": s.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build speaker update: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&s.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "speaker", s.ID)
	}
	return &s, nil
}

// Delete removes a speaker.
// Returns domain.ErrConflict while language records reference the speaker
// and domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder().
		Delete("speakers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build speaker delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapDeleteError(err, "speaker", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("speaker %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
