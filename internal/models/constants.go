package models

// Canonical day labels, Monday first, Sunday last. The grid and the unique
// slot index both key on these exact strings.
var Days = []string{"Thứ 2", "Thứ 3", "Thứ 4", "Thứ 5", "Thứ 6", "Thứ 7", "Chủ nhật"}

const (
	// FirstHour и LastHour bookable hour range, inclusive
	FirstHour = 7
	LastHour  = 22

	// HoursPerDay размер диапазона часов
	HoursPerDay = LastHour - FirstHour + 1

	// NumDays дней в сетке
	NumDays = 7

	// TotalSlots слотов в неделе
	TotalSlots = NumDays * HoursPerDay
)

const (
	// WeekKeyFormat формат ключа недели
	WeekKeyFormat = "2006-01-02"

	// DefaultRateLimitRequests запросов в окне
	DefaultRateLimitRequests = 60

	// DefaultRateLimitWindow окно ограничения частоты запросов в секундах
	DefaultRateLimitWindow = 60
)

// DayIndex returns the position of a day label in Days, or -1 when the label
// is not canonical.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// ValidHour reports whether hour falls inside the bookable range.
func ValidHour(hour int) bool {
	return hour >= FirstHour && hour <= LastHour
}
