package service

import (
	"context"
	"fmt"
	"strings"

	"roombook/internal/database"
	"roombook/internal/domain"
	"roombook/internal/events"
	"roombook/internal/models"
	"roombook/internal/schedule"

	"github.com/rs/zerolog"
)

type BookingService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	clock    schedule.Clock
	logger   *zerolog.Logger
}

func NewBookingService(store domain.Store, eventBus domain.EventPublisher, clock schedule.Clock, logger *zerolog.Logger) *BookingService {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	return &BookingService{
		store:    store,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

// ListCurrentWeek fetches the current week's bookings and projects them onto
// the dense grid. The week key is recomputed on every call, so past weeks
// fall out of view.
func (s *BookingService) ListCurrentWeek(ctx context.Context) (string, models.Grid, error) {
	weekStart := schedule.WeekStart(s.clock.Now())

	bookings, err := s.store.ListByWeek(ctx, weekStart)
	if err != nil {
		return "", nil, err
	}

	grid, dropped := schedule.BuildGrid(bookings)
	for _, b := range dropped {
		s.logger.Warn().
			Int64("booking_id", b.ID).
			Str("day", b.Day).
			Int("hour", b.Hour).
			Msg("booking outside canonical slot range, not shown in grid")
	}

	return weekStart, grid, nil
}

func (s *BookingService) Create(ctx context.Context, req domain.CreateRequest) (*models.Booking, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	day := strings.TrimSpace(req.Day)

	if name == "" {
		return nil, newValidationError("name", "required")
	}
	if phone == "" {
		return nil, newValidationError("phone", "required")
	}
	if models.DayIndex(day) < 0 {
		return nil, newValidationError("day", "must be one of the seven day labels")
	}
	if !models.ValidHour(req.Hour) {
		return nil, newValidationError("hour", fmt.Sprintf("must be between %d and %d", models.FirstHour, models.LastHour))
	}

	// Неделя всегда вычисляется на сервере
	weekStart := schedule.WeekStart(s.clock.Now())

	// Optimistic pre-check for a friendly answer; the unique index in the
	// store remains the actual guard against the create/create race.
	existing, err := s.store.FindSlot(ctx, day, req.Hour, weekStart)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, database.ErrSlotTaken
	}

	booking := &models.Booking{
		Name:      name,
		Phone:     phone,
		Day:       day,
		Hour:      req.Hour,
		Notes:     strings.TrimSpace(req.Notes),
		WeekStart: weekStart,
	}
	if err := s.store.InsertBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishBookingEvent(events.EventBookingCreated, booking)
	return booking, nil
}

// Remove deletes a booking by id. A missing id yields false, not an error.
func (s *BookingService) Remove(ctx context.Context, id int64) (bool, error) {
	removed, err := s.store.DeleteBooking(ctx, id)
	if err != nil {
		return false, err
	}

	if removed {
		s.publishBookingEvent(events.EventBookingDeleted, &models.Booking{ID: id})
	}
	return removed, nil
}

// ResetCurrentWeek deletes every booking in the current week. Destructive
// and irreversible; confirmation is the caller's concern.
func (s *BookingService) ResetCurrentWeek(ctx context.Context) (string, int64, error) {
	weekStart := schedule.WeekStart(s.clock.Now())

	count, err := s.store.DeleteByWeek(ctx, weekStart)
	if err != nil {
		return "", 0, err
	}

	if s.eventBus != nil {
		payload := events.WeekResetPayload{WeekStart: weekStart, Deleted: count}
		if err := s.eventBus.PublishJSON(events.EventWeekReset, payload); err != nil {
			s.logger.Error().Err(err).Str("week_start", weekStart).Msg("publish event error")
		}
	}

	return weekStart, count, nil
}

func (s *BookingService) Stats(ctx context.Context) (models.Stats, error) {
	weekStart := schedule.WeekStart(s.clock.Now())

	booked, err := s.store.CountByWeek(ctx, weekStart)
	if err != nil {
		return models.Stats{}, err
	}

	return models.Stats{
		TotalSlots:     models.TotalSlots,
		BookedSlots:    booked,
		AvailableSlots: models.TotalSlots - booked,
		WeekStart:      weekStart,
	}, nil
}

func (s *BookingService) publishBookingEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		Name:      booking.Name,
		Day:       booking.Day,
		Hour:      booking.Hour,
		WeekStart: booking.WeekStart,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
