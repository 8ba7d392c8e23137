package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// Filter selects bookings for List. Exactly one of BookerID and OwnerID is expected.
// A nil Window matches every booking.
type Filter struct {
	BookerID string
	OwnerID  string
	Window   squirrel.Sqlizer
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	List(ctx context.Context, filter Filter) ([]*Booking, error)

	// LastForItem returns the latest non-rejected booking that started before now, or nil.
	LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	// NextForItem returns the earliest non-rejected booking that starts after now, or nil.
	NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	// HasPastBooking reports whether bookerID has a finished, non-rejected booking of itemID.
	HasPastBooking(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
		"b.start_time", "b.end_time", "b.status", "b.created_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		if mapped := apperror.FromDB(err); errors.Is(mapped, apperror.ErrDataIntegrity) {
			return mapped
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(db.Conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := db.Conn(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		if mapped := apperror.FromDB(err); errors.Is(mapped, apperror.ErrDataIntegrity) {
			return mapped
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	query := selectBookings()

	if filter.BookerID != "" {
		query = query.Where(squirrel.Eq{"b.booker_id": filter.BookerID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}
	if filter.Window != nil {
		query = query.Where(filter.Window)
	}

	query = query.OrderBy("b.start_time DESC", "b.id ASC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	bookings := make([]*Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, nil
}

func (r *pgxRepository) LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.adjacent(ctx, lastForItemQuery(itemID, now))
}

func (r *pgxRepository) NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.adjacent(ctx, nextForItemQuery(itemID, now))
}

// lastForItemQuery picks by start time, so a booking still in progress counts as the last one.
func lastForItemQuery(itemID string, now time.Time) squirrel.SelectBuilder {
	return selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.NotEq{"b.status": StatusRejected}).
		Where(squirrel.Lt{"b.start_time": now}).
		OrderBy("b.start_time DESC").
		Limit(1)
}

func nextForItemQuery(itemID string, now time.Time) squirrel.SelectBuilder {
	return selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.NotEq{"b.status": StatusRejected}).
		Where(squirrel.Gt{"b.start_time": now}).
		OrderBy("b.start_time ASC").
		Limit(1)
}

func (r *pgxRepository) adjacent(ctx context.Context, query squirrel.SelectBuilder) (*Booking, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build adjacent booking query failed: %w", err)
	}

	b, err := scanBooking(db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjacent booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) HasPastBooking(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings b").
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(pastWindow(now))

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build past booking query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check past booking failed: %w", err)
	}
	return exists, nil
}
