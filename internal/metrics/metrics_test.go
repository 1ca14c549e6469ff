package metrics

import "testing"

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register() // second call must not panic

	IncHTTP("/api/bookings")
	IncBookingsCreated()
	IncBookingsDeleted(3)
	IncSlotConflicts()
}
