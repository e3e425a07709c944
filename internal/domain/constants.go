package domain

import "time"

// Party size limits
const (
	MinPartySize = 1
	MaxPartySize = 8
)

// Slot grid: every 30 minutes from 08:00 through 20:00 inclusive
const (
	SlotStepMinutes = 30
	FirstSlotTime   = "08:00"
	LastSlotTime    = "20:00"
	SlotsPerDay     = 25
)

// Default booking settings
const (
	DefaultTablesPerSlot      = 0 // 0 = unlimited
	DefaultAdvanceBookingDays = 90
)

// Business validation constants
const (
	MaxTablesPerSlot         = 100
	MaxAdvanceBookingDays    = 365
	MaxSpecialRequestsLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DateOnly обнуляет время, оставляя календарный день в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
