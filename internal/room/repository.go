package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roomColumns = "id, branch_id, name, capacity, price_weekday, price_weekend, image_path, thumbnail_path, created_at"

// Repository defines data access methods for rooms.
type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	// ListByBranch returns the branch's rooms ordered by name so availability
	// grids come back in a stable order.
	ListByBranch(ctx context.Context, branchID string) ([]*Room, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("branch_id", "name", "capacity", "price_weekday", "price_weekend").
		Values(rm.BranchID, rm.Name, rm.Capacity, rm.PriceWeekday, rm.PriceWeekend).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&rm.ID, &rm.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(roomColumns).
		From("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	var rm Room
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&rm.ID, &rm.BranchID, &rm.Name, &rm.Capacity,
		&rm.PriceWeekday, &rm.PriceWeekend, &rm.ImagePath, &rm.ThumbnailPath, &rm.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) ListByBranch(ctx context.Context, branchID string) ([]*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(roomColumns).
		From("public.rooms").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.BranchID, &rm.Name, &rm.Capacity,
			&rm.PriceWeekday, &rm.PriceWeekend, &rm.ImagePath, &rm.ThumbnailPath, &rm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}
	return rooms, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("name", rm.Name).
		Set("capacity", rm.Capacity).
		Set("price_weekday", rm.PriceWeekday).
		Set("price_weekend", rm.PriceWeekend).
		Set("image_path", rm.ImagePath).
		Set("thumbnail_path", rm.ThumbnailPath).
		Where(squirrel.Eq{"id": rm.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
