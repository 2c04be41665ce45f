// Package village implements the Village repository using PostgreSQL.
package village

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Repo provides village persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new village repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{"v.id", "v.name", "v.latitude", "v.longitude", "v.description"}

type row struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`
	Description string  `db:"description"`
}

func (r row) toDomain() domain.Village {
	return domain.Village{
		ID:          r.ID,
		Name:        r.Name,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Description: r.Description,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a village by primary key.
// Returns domain.ErrNotFound if the village does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Village, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("villages v").
		Where(sq.Eq{"v.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build village query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "village", id)
	}

	v := dst.toDomain()
	return &v, nil
}

// List returns all villages ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Village, error) {
	return r.selectVillages(ctx, postgres.Builder().
		Select(columns...).
		From("villages v").
		OrderBy("v.name", "v.id"))
}

// ListWithRecords returns villages reachable from archive content: through a
// speaker that has language records, or directly from a geographic record.
func (r *Repo) ListWithRecords(ctx context.Context) ([]domain.Village, error) {
	viaSpeakers := postgres.Builder().
		Select("1").
		From("speakers s").
		Join("language_records lr ON lr.speaker_id = s.id").
		Where("s.village_id = v.id")
	viaGeographic := postgres.Builder().
		Select("1").
		From("geographic_records g").
		Where("g.village_id = v.id")

	return r.selectVillages(ctx, postgres.Builder().
		Select(columns...).
		From("villages v").
		Where(sq.Or{
			sq.Expr("EXISTS (?)", viaSpeakers),
			sq.Expr("EXISTS (?)", viaGeographic),
		}).
		OrderBy("v.name", "v.id"))
}

// CountWithRecords returns the number of distinct villages reached through
// language records and their speakers.
func (r *Repo) CountWithRecords(ctx context.Context) (int, error) {
	query, args, err := postgres.Builder().
		Select("COUNT(DISTINCT s.village_id)").
		From("language_records lr").
		Join("speakers s ON s.id = lr.speaker_id").
		Where(sq.NotEq{"s.village_id": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build village count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count villages with records: %w", err)
	}
	return n, nil
}

func (r *Repo) selectVillages(ctx context.Context, b sq.SelectBuilder) ([]domain.Village, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build village query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list villages: %w", err)
	}

	out := make([]domain.Village, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a village and returns it with its generated id.
// Returns domain.ErrAlreadyExists if the name is taken.
func (r *Repo) Create(ctx context.Context, v domain.Village) (*domain.Village, error) {
	query, args, err := postgres.Builder().
		Insert("villages").
		Columns("name", "latitude", "longitude", "description").
		Values(v.Name, v.Latitude, v.Longitude, v.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build village insert: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&v.ID); err != nil {
		return nil, postgres.MapError(err, "village", 0)
	}
	return &v, nil
}

// Upsert inserts a village or updates the one with the same name.
func (r *Repo) Upsert(ctx context.Context, v domain.Village) (*domain.Village, error) {
	query, args, err := postgres.Builder().
		Insert("villages").
		Columns("name", "latitude", "longitude", "description").
		Values(v.Name, v.Latitude, v.Longitude, v.Description).
		Suffix(`ON CONFLICT (name) DO UPDATE
			SET latitude = EXCLUDED.latitude,
			    longitude = EXCLUDED.longitude,
			    description = EXCLUDED.description
			RETURNING id`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build village upsert: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&v.ID); err != nil {
		return nil, postgres.MapError(err, "village", 0)
	}
	return &v, nil
}

// Update overwrites all fields of an existing village.
// Returns domain.ErrNotFound if the village does not exist.
func (r *Repo) Update(ctx context.Context, v domain.Village) (*domain.Village, error) {
	query, args, err := postgres.Builder().
		Update("villages").
		Set("name", v.Name).
		Set("latitude", v.Latitude).
		Set("longitude", v.Longitude).
		Set("description", v.Description).
		Where(sq.Eq{"id": v.ID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build village update: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&v.ID); err != nil {
		return nil, postgres.MapError(err, "village", v.ID)
	}
	return &v, nil
}

// Delete removes a village. Speakers and geographic records keep existing
// with their village cleared.
// Returns domain.ErrNotFound if the village does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder().
		Delete("villages").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build village delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapDeleteError(err, "village", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("village %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
