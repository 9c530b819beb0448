package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/weiting-tw/room-booking-backend/internal/reservation"
)

// Repository reads and flags reservations pending a next-day reminder.
type Repository interface {
	// ListDue returns pending/confirmed, not yet notified reservations whose
	// start falls inside [dayStart, dayEnd), with room and branch names.
	ListDue(ctx context.Context, dayStart, dayEnd time.Time) ([]*reservation.Reservation, error)
	// SetNotified flips the reminder dedup flag.
	SetNotified(ctx context.Context, id string, notified bool) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListDue(ctx context.Context, dayStart, dayEnd time.Time) ([]*reservation.Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"res.id", "res.room_id", "rm.name", "rm.branch_id", "b.name",
		"res.customer_name", "res.phone", "res.email",
		"res.start_time", "res.end_time", "res.status",
		"res.total_price", "res.guest_count", "res.notes",
		"res.booking_code", "res.is_notified", "res.created_at", "res.updated_at",
	).
		From("public.reservations res").
		Join("public.rooms rm ON res.room_id = rm.id").
		Join("public.branches b ON rm.branch_id = b.id").
		Where(squirrel.Eq{"res.is_notified": false}).
		Where(squirrel.Eq{"res.status": []string{string(reservation.StatusPending), string(reservation.StatusConfirmed)}}).
		Where(squirrel.GtOrEq{"res.start_time": dayStart}).
		Where(squirrel.Lt{"res.start_time": dayEnd}).
		OrderBy("res.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list due reminders query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list due reminders failed: %w", err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		var res reservation.Reservation
		if err := rows.Scan(
			&res.ID, &res.RoomID, &res.RoomName, &res.BranchID, &res.BranchName,
			&res.CustomerName, &res.Phone, &res.Email,
			&res.StartTime, &res.EndTime, &res.Status,
			&res.TotalPrice, &res.GuestCount, &res.Notes,
			&res.BookingCode, &res.IsNotified, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reminder row failed: %w", err)
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

func (r *pgxRepository) SetNotified(ctx context.Context, id string, notified bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("is_notified", notified).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set notified query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set notified failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return reservation.ErrNotFound
	}
	return nil
}
