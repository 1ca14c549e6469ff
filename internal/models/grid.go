package models

import "time"

// SlotInfo is the booking summary shown in a grid cell.
type SlotInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// Grid maps every canonical day label to every bookable hour. A nil cell
// means the slot is free; the grid is always dense, never sparse.
type Grid map[string]map[int]*SlotInfo

type Stats struct {
	TotalSlots     int    `json:"totalSlots"`
	BookedSlots    int    `json:"bookedSlots"`
	AvailableSlots int    `json:"availableSlots"`
	WeekStart      string `json:"weekStart"`
}
