package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxRepository stores booking records as JSONB rows keyed by id. It is the
// alternative backing to the file repository, selected by configuration.
type pgxRepository struct {
	pool *pgxpool.Pool
}

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS public.bookings (
	id         text PRIMARY KEY,
	status     text NOT NULL,
	created_at timestamptz NOT NULL,
	record     jsonb NOT NULL
)`

// NewPgxRepository creates a Postgres-backed repository, ensuring the
// bookings table exists.
func NewPgxRepository(ctx context.Context, pool *pgxpool.Pool) (Repository, error) {
	if _, err := pool.Exec(ctx, createBookingsTable); err != nil {
		return nil, fmt.Errorf("failed to ensure bookings table: %w", err)
	}
	return &pgxRepository{pool: pool}, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	record, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal booking %s: %w", b.ID, err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("id", "status", "created_at", "record").
		Values(b.ID, b.Status, b.CreatedAt, record).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Put(ctx context.Context, b *Booking) error {
	record, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal booking %s: %w", b.ID, err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("id", "status", "created_at", "record").
		Values(b.ID, b.Status, b.CreatedAt, record).
		Suffix("ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, record = EXCLUDED.record").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put booking query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("put booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("record").
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var record []byte
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	var b Booking
	if err := json.Unmarshal(record, &b); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("record").
		From("public.bookings").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}

		var b Booking
		if err := json.Unmarshal(record, &b); err != nil {
			return nil, fmt.Errorf("failed to decode booking record: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, nil
}
