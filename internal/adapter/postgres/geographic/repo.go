// Package geographic implements the GeographicRecord repository using PostgreSQL.
package geographic

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Repo provides geographic record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new geographic record repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var detailColumns = []string{
	"g.id", "g.title", "g.content_type", "g.file_path", "g.thumbnail_path",
	"g.description", "g.village_id", "g.latitude", "g.longitude",
	"g.captured_date", "g.created_at",
	"v.name AS v_name", "v.latitude AS v_latitude", "v.longitude AS v_longitude",
	"v.description AS v_description",
}

func selectDetails() sq.SelectBuilder {
	return postgres.Builder().
		Select(detailColumns...).
		From("geographic_records g").
		LeftJoin("villages v ON v.id = g.village_id")
}

type detailRow struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	ContentType   string    `db:"content_type"`
	FilePath      string    `db:"file_path"`
	ThumbnailPath *string   `db:"thumbnail_path"`
	Description   string    `db:"description"`
	VillageID     *int64    `db:"village_id"`
	Latitude      *float64  `db:"latitude"`
	Longitude     *float64  `db:"longitude"`
	CapturedDate  time.Time `db:"captured_date"`
	CreatedAt     time.Time `db:"created_at"`

	VName        *string  `db:"v_name"`
	VLatitude    *float64 `db:"v_latitude"`
	VLongitude   *float64 `db:"v_longitude"`
	VDescription *string  `db:"v_description"`
}

func (r detailRow) toDomain() domain.GeographicDetail {
	d := domain.GeographicDetail{
		GeographicRecord: domain.GeographicRecord{
			ID:            r.ID,
			Title:         r.Title,
			ContentType:   domain.ContentType(r.ContentType),
			FilePath:      r.FilePath,
			ThumbnailPath: r.ThumbnailPath,
			Description:   r.Description,
			VillageID:     r.VillageID,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			CapturedDate:  r.CapturedDate,
			CreatedAt:     r.CreatedAt,
		},
	}
	if r.VillageID != nil && r.VName != nil && r.VLatitude != nil && r.VLongitude != nil {
		d.Village = &domain.Village{
			ID:        *r.VillageID,
			Name:      *r.VName,
			Latitude:  *r.VLatitude,
			Longitude: *r.VLongitude,
		}
		if r.VDescription != nil {
			d.Village.Description = *r.VDescription
		}
	}
	return d
}

func applyFilter(b sq.SelectBuilder, f domain.GeographicFilter) sq.SelectBuilder {
	if f.VillageID != nil {
		b = b.Where(sq.Eq{"g.village_id": *f.VillageID})
	}
	if f.ContentType != "" {
		b = b.Where(sq.Eq{"g.content_type": string(f.ContentType)})
	}
	if f.Query != "" {
		b = b.Where(postgres.FoldedILike("g.title", postgres.ContainsPattern(f.Query)))
	}
	if f.Year != nil {
		b = b.Where(sq.Eq{"EXTRACT(YEAR FROM g.captured_date)": *f.Year})
	}
	return b
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns geographic records matching f, newest capture first.
func (r *Repo) List(ctx context.Context, f domain.GeographicFilter) ([]domain.GeographicDetail, error) {
	return r.selectDetails(ctx, applyFilter(selectDetails(), f).
		OrderBy("g.captured_date DESC", "g.id DESC"))
}

// ListLocated returns records that carry their own coordinates, optionally
// limited to one capture year.
func (r *Repo) ListLocated(ctx context.Context, year *int) ([]domain.GeographicDetail, error) {
	b := applyFilter(selectDetails(), domain.GeographicFilter{Year: year}).
		Where(sq.NotEq{"g.latitude": nil}).
		Where(sq.NotEq{"g.longitude": nil}).
		OrderBy("g.captured_date DESC", "g.id DESC")
	return r.selectDetails(ctx, b)
}

// GetByID returns domain.ErrNotFound if the record does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.GeographicDetail, error) {
	query, args, err := selectDetails().Where(sq.Eq{"g.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build geographic query: %w", err)
	}

	var dst detailRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "geographic record", id)
	}

	d := dst.toDomain()
	return &d, nil
}

// Years returns the distinct capture years, newest first.
func (r *Repo) Years(ctx context.Context) ([]int, error) {
	const q = `SELECT DISTINCT EXTRACT(YEAR FROM captured_date)::int AS year
FROM geographic_records
ORDER BY year DESC`

	var years []int
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &years, q); err != nil {
		return nil, fmt.Errorf("list geographic years: %w", err)
	}
	return years, nil
}

func (r *Repo) selectDetails(ctx context.Context, b sq.SelectBuilder) ([]domain.GeographicDetail, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build geographic query: %w", err)
	}

	var rows []detailRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list geographic records: %w", err)
	}

	out := make([]domain.GeographicDetail, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a record. Returns domain.ErrValidation when only one of
// latitude and longitude is set and domain.ErrNotFound for an unknown village.
func (r *Repo) Create(ctx context.Context, g domain.GeographicRecord) (*domain.GeographicRecord, error) {
	query, args, err := postgres.Builder().
		Insert("geographic_records").
		Columns(
			"title", "content_type", "file_path", "thumbnail_path", "description",
			"village_id", "latitude", "longitude", "captured_date",
		).
		Values(
			g.Title, string(g.ContentType), g.FilePath, g.ThumbnailPath, g.Description,
			g.VillageID, g.Latitude, g.Longitude, g.CapturedDate,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build geographic insert: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "geographic record", 0)
	}
	return &g, nil
}
