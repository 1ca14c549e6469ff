package database

import "errors"

var (
	// ErrSlotTaken возвращается при нарушении уникальности (day, hour, week_start)
	ErrSlotTaken = errors.New("slot is already booked")
)
