package models

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Day       string    `json:"day"`
	Hour      int       `json:"hour"`
	Notes     string    `json:"notes"`
	WeekStart string    `json:"weekStart"` // "2006-01-02", Monday of the booking's week
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
