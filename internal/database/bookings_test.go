package database

import (
	"context"
	"io"
	"testing"

	"roombook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newBooking(day string, hour int, weekStart string) *models.Booking {
	return &models.Booking{
		Name:      "Nguyễn Văn A",
		Phone:     "0123456789",
		Day:       day,
		Hour:      hour,
		Notes:     "Học nhóm",
		WeekStart: weekStart,
	}
}

func TestInsertAndFindSlot(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	b := newBooking("Thứ 2", 8, "2025-09-01")
	err := db.InsertBooking(ctx, b)
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.False(t, b.UpdatedAt.IsZero())

	found, err := db.FindSlot(ctx, "Thứ 2", 8, "2025-09-01")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, b.ID, found.ID)
	assert.Equal(t, "Nguyễn Văn A", found.Name)
	assert.Equal(t, "Học nhóm", found.Notes)

	// free slot
	free, err := db.FindSlot(ctx, "Thứ 2", 9, "2025-09-01")
	require.NoError(t, err)
	assert.Nil(t, free)
}

func TestInsertConflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 2", 8, "2025-09-01")))

	// same slot, same week
	err := db.InsertBooking(ctx, newBooking("Thứ 2", 8, "2025-09-01"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// same slot, different week is fine
	err = db.InsertBooking(ctx, newBooking("Thứ 2", 8, "2025-09-08"))
	assert.NoError(t, err)

	// different hour, same week is fine
	err = db.InsertBooking(ctx, newBooking("Thứ 2", 9, "2025-09-01"))
	assert.NoError(t, err)
}

func TestSlotFreedAfterDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	b := newBooking("Thứ 2", 8, "2025-09-01")
	require.NoError(t, db.InsertBooking(ctx, b))

	assert.ErrorIs(t, db.InsertBooking(ctx, newBooking("Thứ 2", 8, "2025-09-01")), ErrSlotTaken)

	removed, err := db.DeleteBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// slot is bookable again
	assert.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 2", 8, "2025-09-01")))
}

func TestDeleteBooking_NotFound(t *testing.T) {
	db := setupTestDB(t)

	removed, err := db.DeleteBooking(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestListByWeek(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 3", 14, "2025-09-01")))
	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 3", 9, "2025-09-01")))
	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 5", 16, "2025-09-08")))

	bookings, err := db.ListByWeek(ctx, "2025-09-01")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	// deterministic ordering: hour ascending within a day
	assert.Equal(t, 9, bookings[0].Hour)
	assert.Equal(t, 14, bookings[1].Hour)

	empty, err := db.ListByWeek(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteByWeek(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 2", 8, "2025-09-01")))
	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 4", 10, "2025-09-01")))
	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 2", 8, "2025-09-08")))

	count, err := db.DeleteByWeek(ctx, "2025-09-01")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// other weeks untouched
	remaining, err := db.ListByWeek(ctx, "2025-09-08")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	// no-op on empty week
	count, err = db.DeleteByWeek(ctx, "2025-09-01")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCountByWeek(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	count, err := db.CountByWeek(ctx, "2025-09-01")
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 2", 8, "2025-09-01")))
	require.NoError(t, db.InsertBooking(ctx, newBooking("Thứ 7", 20, "2025-09-01")))

	count, err = db.CountByWeek(ctx, "2025-09-01")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
