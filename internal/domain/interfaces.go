package domain

import (
	"context"

	"roombook/internal/models"
)

// Store is the persistence boundary for bookings. The implementation owns
// the (day, hour, week_start) uniqueness invariant.
type Store interface {
	InsertBooking(ctx context.Context, booking *models.Booking) error
	FindSlot(ctx context.Context, day string, hour int, weekStart string) (*models.Booking, error)
	ListByWeek(ctx context.Context, weekStart string) ([]*models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) (bool, error)
	DeleteByWeek(ctx context.Context, weekStart string) (int64, error)
	CountByWeek(ctx context.Context, weekStart string) (int, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter decides whether a client identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type BookingService interface {
	ListCurrentWeek(ctx context.Context) (string, models.Grid, error)
	Create(ctx context.Context, req CreateRequest) (*models.Booking, error)
	Remove(ctx context.Context, id int64) (bool, error)
	ResetCurrentWeek(ctx context.Context) (string, int64, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// CreateRequest carries client-supplied booking fields. The week key is
// always computed server-side, never accepted from the client.
type CreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Day   string `json:"day"`
	Hour  int    `json:"hour"`
	Notes string `json:"notes"`
}
