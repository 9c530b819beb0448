package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Reservation, error)
	// ListForDay returns the branch's non-cancelled reservations whose
	// interval intersects [dayStart, dayEnd). A reservation starting before
	// dayStart but ending inside it still blocks slots.
	ListForDay(ctx context.Context, branchID string, dayStart, dayEnd time.Time) ([]*Reservation, error)
	ListByBranch(ctx context.Context, branchID string) ([]*Reservation, error)
	ListByPhone(ctx context.Context, phone string) ([]*Reservation, error)

	// HasConflict checks if any non-cancelled reservation for the room
	// overlaps [start, end). excludeID is used during edits to ignore the
	// reservation itself.
	HasConflict(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error)

	// CreateAtomic takes a per-room advisory lock, re-checks for overlap
	// inside the same transaction and inserts. Returns ErrTimeConflict if an
	// overlapping row exists or a room/timerange exclusion constraint fires,
	// ErrCodeCollision on a duplicate booking code.
	CreateAtomic(ctx context.Context, r *Reservation) error
	// UpdateTimeAtomic is the same locked check-then-write for moving an
	// existing reservation's time range.
	UpdateTimeAtomic(ctx context.Context, r *Reservation) error

	Update(ctx context.Context, r *Reservation) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func selectReservations() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"res.id", "res.room_id", "rm.name", "rm.branch_id", "b.name",
		"res.customer_name", "res.phone", "res.email",
		"res.start_time", "res.end_time", "res.status",
		"res.total_price", "res.guest_count", "res.notes",
		"res.booking_code", "res.is_notified", "res.created_at", "res.updated_at",
	).
		From("public.reservations res").
		Join("public.rooms rm ON res.room_id = rm.id").
		Join("public.branches b ON rm.branch_id = b.id")
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var r Reservation
	err := row.Scan(
		&r.ID, &r.RoomID, &r.RoomName, &r.BranchID, &r.BranchName,
		&r.CustomerName, &r.Phone, &r.Email,
		&r.StartTime, &r.EndTime, &r.Status,
		&r.TotalPrice, &r.GuestCount, &r.Notes,
		&r.BookingCode, &r.IsNotified, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query, args, err := selectReservations().
		Where(squirrel.Eq{"res.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	r, err := scanReservation(repo.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return r, nil
}

func (repo *pgxRepository) queryMany(ctx context.Context, builder squirrel.SelectBuilder) ([]*Reservation, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var out []*Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (repo *pgxRepository) ListForDay(ctx context.Context, branchID string, dayStart, dayEnd time.Time) ([]*Reservation, error) {
	return repo.queryMany(ctx, selectReservations().
		Where(squirrel.Eq{"rm.branch_id": branchID}).
		Where(squirrel.NotEq{"res.status": StatusCancelled}).
		Where(squirrel.Lt{"res.start_time": dayEnd}).
		Where(squirrel.Gt{"res.end_time": dayStart}).
		OrderBy("res.start_time ASC"))
}

func (repo *pgxRepository) ListByBranch(ctx context.Context, branchID string) ([]*Reservation, error) {
	return repo.queryMany(ctx, selectReservations().
		Where(squirrel.Eq{"rm.branch_id": branchID}).
		OrderBy("res.start_time ASC"))
}

func (repo *pgxRepository) ListByPhone(ctx context.Context, phone string) ([]*Reservation, error) {
	return repo.queryMany(ctx, selectReservations().
		Where(squirrel.Eq{"res.phone": phone}).
		OrderBy("res.start_time DESC"))
}

func conflictQuery(roomID string, start, end time.Time, excludeID string) (string, []interface{}, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build check conflict query failed: %w", err)
	}
	return "SELECT EXISTS (" + sql + ")", args, nil
}

func (repo *pgxRepository) HasConflict(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	query, args, err := conflictQuery(roomID, start, end, excludeID)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := repo.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check conflict failed: %w", err)
	}
	return exists, nil
}

// lockRoom serializes writers for one room within the transaction. The lock
// is released automatically at commit/rollback.
func lockRoom(ctx context.Context, tx pgx.Tx, roomID string) error {
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", roomID); err != nil {
		return fmt.Errorf("lock room failed: %w", err)
	}
	return nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrCodeCollision
		case pgerrcode.ExclusionViolation:
			// A room/timerange exclusion constraint is the database-level
			// backstop for the no-overlap invariant.
			return ErrTimeConflict
		}
	}
	return err
}

func (repo *pgxRepository) CreateAtomic(ctx context.Context, r *Reservation) error {
	tx, err := repo.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create reservation failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockRoom(ctx, tx, r.RoomID); err != nil {
		return err
	}

	query, args, err := conflictQuery(r.RoomID, r.StartTime, r.EndTime, "")
	if err != nil {
		return err
	}
	var exists bool
	if err := tx.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return fmt.Errorf("check conflict failed: %w", err)
	}
	if exists {
		return ErrTimeConflict
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err = psql.Insert("public.reservations").
		Columns(
			"room_id", "customer_name", "phone", "email",
			"start_time", "end_time", "status",
			"total_price", "guest_count", "notes", "booking_code",
		).
		Values(
			r.RoomID, r.CustomerName, r.Phone, r.Email,
			r.StartTime, r.EndTime, r.Status,
			r.TotalPrice, r.GuestCount, r.Notes, r.BookingCode,
		).
		Suffix("RETURNING id, is_notified, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).
		Scan(&r.ID, &r.IsNotified, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return mapWriteError(err)
	}

	return tx.Commit(ctx)
}

func (repo *pgxRepository) UpdateTimeAtomic(ctx context.Context, r *Reservation) error {
	tx, err := repo.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin update reservation failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockRoom(ctx, tx, r.RoomID); err != nil {
		return err
	}

	query, args, err := conflictQuery(r.RoomID, r.StartTime, r.EndTime, r.ID)
	if err != nil {
		return err
	}
	var exists bool
	if err := tx.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return fmt.Errorf("check conflict failed: %w", err)
	}
	if exists {
		return ErrTimeConflict
	}

	query, args, err = updateSQL(r)
	if err != nil {
		return err
	}
	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func updateSQL(r *Reservation) (string, []interface{}, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("customer_name", r.CustomerName).
		Set("phone", r.Phone).
		Set("email", r.Email).
		Set("start_time", r.StartTime).
		Set("end_time", r.EndTime).
		Set("status", r.Status).
		Set("total_price", r.TotalPrice).
		Set("guest_count", r.GuestCount).
		Set("notes", r.Notes).
		Set("is_notified", r.IsNotified).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": r.ID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build update reservation query failed: %w", err)
	}
	return query, args, nil
}

func (repo *pgxRepository) Update(ctx context.Context, r *Reservation) error {
	query, args, err := updateSQL(r)
	if err != nil {
		return err
	}

	ct, err := repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reservation query failed: %w", err)
	}

	ct, err := repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
