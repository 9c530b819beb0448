package branch

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for branches.
type Repository interface {
	Create(ctx context.Context, b *Branch) error
	GetByID(ctx context.Context, id string) (*Branch, error)
	List(ctx context.Context) ([]*Branch, error)
	Update(ctx context.Context, b *Branch) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Branch) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.branches").
		Columns("name", "address", "phone", "open_time", "close_time").
		Values(b.Name, b.Address, b.Phone, b.OpenTime, b.CloseTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create branch query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Branch, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "address", "phone", "open_time", "close_time", "created_at").
		From("public.branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get branch query failed: %w", err)
	}

	var b Branch
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.OpenTime, &b.CloseTime, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get branch failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Branch, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "address", "phone", "open_time", "close_time", "created_at").
		From("public.branches").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list branches query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list branches failed: %w", err)
	}
	defer rows.Close()

	var branches []*Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.OpenTime, &b.CloseTime, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan branch failed: %w", err)
		}
		branches = append(branches, &b)
	}
	return branches, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, b *Branch) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.branches").
		Set("name", b.Name).
		Set("address", b.Address).
		Set("phone", b.Phone).
		Set("open_time", b.OpenTime).
		Set("close_time", b.CloseTime).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update branch query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update branch failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a branch. Rooms and reservations under it are removed by
// ON DELETE CASCADE foreign keys.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete branch query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete branch failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
