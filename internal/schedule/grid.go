package schedule

import "roombook/internal/models"

// BuildGrid projects a flat record list onto the dense day×hour grid. Every
// canonical cell is present in the result, nil when free. Records whose day
// or hour fall outside the canonical ranges are never written into the grid;
// they are returned separately so the caller can log them.
func BuildGrid(bookings []*models.Booking) (models.Grid, []*models.Booking) {
	grid := make(models.Grid, models.NumDays)
	for _, day := range models.Days {
		hours := make(map[int]*models.SlotInfo, models.HoursPerDay)
		for hour := models.FirstHour; hour <= models.LastHour; hour++ {
			hours[hour] = nil
		}
		grid[day] = hours
	}

	var dropped []*models.Booking
	for _, b := range bookings {
		if models.DayIndex(b.Day) < 0 || !models.ValidHour(b.Hour) {
			dropped = append(dropped, b)
			continue
		}
		grid[b.Day][b.Hour] = &models.SlotInfo{
			ID:        b.ID,
			Name:      b.Name,
			Phone:     b.Phone,
			Notes:     b.Notes,
			CreatedAt: b.CreatedAt,
		}
	}

	return grid, dropped
}
