package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"roombook/internal/database"
	"roombook/internal/domain"
	"roombook/internal/events"
	"roombook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) InsertBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockStore) FindSlot(ctx context.Context, day string, hour int, weekStart string) (*models.Booking, error) {
	args := m.Called(ctx, day, hour, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockStore) ListByWeek(ctx context.Context, weekStart string) ([]*models.Booking, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockStore) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockStore) DeleteByWeek(ctx context.Context, weekStart string) (int64, error) {
	args := m.Called(ctx, weekStart)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockStore) CountByWeek(ctx context.Context, weekStart string) (int, error) {
	args := m.Called(ctx, weekStart)
	return args.Int(0), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// Wednesday 2025-09-03; the week key is Monday 2025-09-01.
var testClock = fixedClock{now: time.Date(2025, 9, 3, 12, 0, 0, 0, time.Local)}

const testWeek = "2025-09-01"

func newTestService(store domain.Store) *BookingService {
	logger := zerolog.New(io.Discard)
	return NewBookingService(store, events.NewEventBus(), testClock, &logger)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(&mockStore{})
	ctx := context.Background()

	tests := []struct {
		name  string
		req   domain.CreateRequest
		field string
	}{
		{"missing name", domain.CreateRequest{Phone: "0123456789", Day: "Thứ 2", Hour: 8}, "name"},
		{"whitespace name", domain.CreateRequest{Name: "   ", Phone: "0123456789", Day: "Thứ 2", Hour: 8}, "name"},
		{"missing phone", domain.CreateRequest{Name: "A", Day: "Thứ 2", Hour: 8}, "phone"},
		{"unknown day", domain.CreateRequest{Name: "A", Phone: "0123456789", Day: "Monday", Hour: 8}, "day"},
		{"hour below range", domain.CreateRequest{Name: "A", Phone: "0123456789", Day: "Thứ 2", Hour: 6}, "hour"},
		{"hour above range", domain.CreateRequest{Name: "A", Phone: "0123456789", Day: "Thứ 2", Hour: 23}, "hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreate_Success(t *testing.T) {
	store := &mockStore{}
	store.On("FindSlot", mock.Anything, "Thứ 2", 8, testWeek).Return(nil, nil)
	store.On("InsertBooking", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.Name == "A" && b.Day == "Thứ 2" && b.Hour == 8 && b.WeekStart == testWeek
	})).Return(nil)

	svc := newTestService(store)

	booking, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:  "  A  ",
		Phone: " 0123456789 ",
		Day:   "Thứ 2",
		Hour:  8,
		Notes: " ghi chú ",
	})
	require.NoError(t, err)
	assert.Equal(t, "A", booking.Name)
	assert.Equal(t, "0123456789", booking.Phone)
	assert.Equal(t, "ghi chú", booking.Notes)
	assert.Equal(t, testWeek, booking.WeekStart)
	store.AssertExpectations(t)
}

func TestCreate_SlotTakenOnPrecheck(t *testing.T) {
	store := &mockStore{}
	store.On("FindSlot", mock.Anything, "Thứ 2", 8, testWeek).
		Return(&models.Booking{ID: 1}, nil)

	svc := newTestService(store)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name: "B", Phone: "0987654321", Day: "Thứ 2", Hour: 8,
	})
	assert.ErrorIs(t, err, database.ErrSlotTaken)
	store.AssertNotCalled(t, "InsertBooking", mock.Anything, mock.Anything)
}

func TestCreate_SlotTakenOnInsertRace(t *testing.T) {
	// pre-check sees a free slot but a concurrent insert wins the race;
	// the store surfaces the unique-index conflict
	store := &mockStore{}
	store.On("FindSlot", mock.Anything, "Thứ 2", 8, testWeek).Return(nil, nil)
	store.On("InsertBooking", mock.Anything, mock.Anything).Return(database.ErrSlotTaken)

	svc := newTestService(store)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name: "B", Phone: "0987654321", Day: "Thứ 2", Hour: 8,
	})
	assert.ErrorIs(t, err, database.ErrSlotTaken)
}

func TestRemove(t *testing.T) {
	store := &mockStore{}
	store.On("DeleteBooking", mock.Anything, int64(1)).Return(true, nil)
	store.On("DeleteBooking", mock.Anything, int64(2)).Return(false, nil)

	svc := newTestService(store)
	ctx := context.Background()

	removed, err := svc.Remove(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	// not found is a normal outcome, not an error
	removed, err = svc.Remove(ctx, 2)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestResetCurrentWeek(t *testing.T) {
	store := &mockStore{}
	store.On("DeleteByWeek", mock.Anything, testWeek).Return(int64(5), nil)

	svc := newTestService(store)

	weekStart, count, err := svc.ResetCurrentWeek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testWeek, weekStart)
	assert.Equal(t, int64(5), count)
}

func TestStats(t *testing.T) {
	tests := []struct {
		name   string
		booked int
	}{
		{"empty week", 0},
		{"partial week", 42},
		{"full week", models.TotalSlots},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			store.On("CountByWeek", mock.Anything, testWeek).Return(tt.booked, nil)

			svc := newTestService(store)

			stats, err := svc.Stats(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.TotalSlots, stats.TotalSlots)
			assert.Equal(t, tt.booked, stats.BookedSlots)
			assert.Equal(t, stats.TotalSlots, stats.BookedSlots+stats.AvailableSlots)
			assert.Equal(t, testWeek, stats.WeekStart)
		})
	}
}

func TestStats_StoreError(t *testing.T) {
	store := &mockStore{}
	store.On("CountByWeek", mock.Anything, testWeek).Return(0, errors.New("disk failure"))

	svc := newTestService(store)

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}

func TestListCurrentWeek_DropsOutOfRangeRecords(t *testing.T) {
	store := &mockStore{}
	store.On("ListByWeek", mock.Anything, testWeek).Return([]*models.Booking{
		{ID: 1, Day: "Thứ 2", Hour: 8},
		{ID: 2, Day: "bogus", Hour: 8},
	}, nil)

	svc := newTestService(store)

	weekStart, grid, err := svc.ListCurrentWeek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testWeek, weekStart)
	assert.NotNil(t, grid["Thứ 2"][8])

	cells := 0
	for _, hours := range grid {
		cells += len(hours)
	}
	assert.Equal(t, models.TotalSlots, cells)
}

// Full lifecycle against the real SQLite store.
func TestBookingLifecycle(t *testing.T) {
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	svc := NewBookingService(db, events.NewEventBus(), testClock, &logger)
	ctx := context.Background()

	req := domain.CreateRequest{Name: "A", Phone: "0123456789", Day: "Thứ 2", Hour: 8}

	booking, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)

	// same slot, same week
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, database.ErrSlotTaken)

	removed, err := svc.Remove(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// slot freed, create succeeds again
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	weekStart, count, err := svc.ResetCurrentWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, testWeek, weekStart)
	assert.Equal(t, int64(1), count)

	_, grid, err := svc.ListCurrentWeek(ctx)
	require.NoError(t, err)
	for _, hours := range grid {
		for _, info := range hours {
			assert.Nil(t, info)
		}
	}
}
