// Package onomatype implements the OnomatopoeiaType repository using PostgreSQL.
package onomatype

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Repo provides onomatopoeia type persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{"t.id", "t.type_code", "t.type_name", "t.description"}

type row struct {
	ID          int64  `db:"id"`
	TypeCode    string `db:"type_code"`
	TypeName    string `db:"type_name"`
	Description string `db:"description"`
}

func (r row) toDomain() domain.OnomatopoeiaType {
	return domain.OnomatopoeiaType{
		ID:          r.ID,
		TypeCode:    r.TypeCode,
		TypeName:    r.TypeName,
		Description: r.Description,
	}
}

// GetByID returns domain.ErrNotFound if the type does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.OnomatopoeiaType, error) {
	return r.getOne(ctx, sq.Eq{"t.id": id}, id)
}

// GetByCode returns domain.ErrNotFound if no type has the code.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.OnomatopoeiaType, error) {
	return r.getOne(ctx, sq.Eq{"t.type_code": code}, 0)
}

func (r *Repo) getOne(ctx context.Context, pred sq.Eq, id int64) (*domain.OnomatopoeiaType, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("onomatopoeia_types t").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build type query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "onomatopoeia type", id)
	}

	t := dst.toDomain()
	return &t, nil
}

// List returns all types ordered by code.
func (r *Repo) List(ctx context.Context) ([]domain.OnomatopoeiaType, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("onomatopoeia_types t").
		OrderBy("t.type_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build type query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list onomatopoeia types: %w", err)
	}

	out := make([]domain.OnomatopoeiaType, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// Create returns domain.ErrAlreadyExists if the code is taken.
func (r *Repo) Create(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error) {
	return r.insert(ctx, t, "RETURNING id")
}

// Upsert inserts a type or updates the one with the same code.
func (r *Repo) Upsert(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error) {
	return r.insert(ctx, t, `ON CONFLICT (type_code) DO UPDATE
		SET type_name = EXCLUDED.type_name,
		    description = EXCLUDED.description
		RETURNING id`)
}

func (r *Repo) insert(ctx context.Context, t domain.OnomatopoeiaType, suffix string) (*domain.OnomatopoeiaType, error) {
	query, args, err := postgres.Builder().
		Insert("onomatopoeia_types").
		Columns("type_code", "type_name", "description").
		Values(t.TypeCode, t.TypeName, t.Description).
		Suffix(suffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build type insert: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&t.ID); err != nil {
		return nil, postgres.MapError(err, "onomatopoeia type", 0)
	}
	return &t, nil
}

// Update returns domain.ErrNotFound if the type does not exist.
func (r *Repo) Update(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error) {
	query, args, err := postgres.Builder().
		Update("onomatopoeia_types").
		Set("type_code", t.TypeCode).
		Set("type_name", t.TypeName).
		Set("description", t.Description).
		Where(sq.Eq{"id": t.ID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build type update: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&t.ID); err != nil {
		return nil, postgres.MapError(err, "onomatopoeia type", t.ID)
	}
	return &t, nil
}

// Delete removes a type; records that used it keep existing untyped.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder().
		Delete("onomatopoeia_types").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build type delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapDeleteError(err, "onomatopoeia type", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("onomatopoeia type %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
