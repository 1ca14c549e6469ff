package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"roombook/internal/models"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const bookingColumns = `id, name, phone, day, hour, notes, week_start, created_at, updated_at`

// InsertBooking persists a new booking in a single INSERT. The unique_slot
// index is the authoritative guard against double booking: a concurrent
// insert for the same (day, hour, week_start) fails here with ErrSlotTaken
// no matter what any earlier FindSlot call reported.
func (db *DB) InsertBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (name, phone, day, hour, notes, week_start, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		booking.Name,
		booking.Phone,
		booking.Day,
		booking.Hour,
		booking.Notes,
		booking.WeekStart,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return nil
}

// FindSlot returns the booking occupying a slot, or nil when it is free.
func (db *DB) FindSlot(ctx context.Context, day string, hour int, weekStart string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE day = ? AND hour = ? AND week_start = ?`

	var b models.Booking
	err := db.QueryRowContext(ctx, query, day, hour, weekStart).Scan(
		&b.ID, &b.Name, &b.Phone, &b.Day, &b.Hour, &b.Notes, &b.WeekStart, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}
	return &b, nil
}

func (db *DB) ListByWeek(ctx context.Context, weekStart string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE week_start = ? ORDER BY day, hour`

	rows, err := db.QueryContext(ctx, query, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by week: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(
			&b.ID, &b.Name, &b.Phone, &b.Day, &b.Hour, &b.Notes, &b.WeekStart, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return bookings, nil
}

// DeleteBooking removes a booking by id. A missing id is not an error; the
// caller gets false and decides what that means at its boundary.
func (db *DB) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

func (db *DB) DeleteByWeek(ctx context.Context, weekStart string) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE week_start = ?`, weekStart)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings by week: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected, nil
}

func (db *DB) CountByWeek(ctx context.Context, weekStart string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE week_start = ?`, weekStart).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
