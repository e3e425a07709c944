package domain

import (
	"fmt"
	"time"
)

// CafeSettings booking settings of a café
type CafeSettings struct {
	CafeID             string
	TablesPerSlot      int // 0 = unlimited
	AdvanceBookingDays int // 0 = unlimited
	UpdatedAt          time.Time
}

// DefaultCafeSettings настройки для кафе без собственной записи
func DefaultCafeSettings(cafeID string, defaults CafeSettings) *CafeSettings {
	return &CafeSettings{
		CafeID:             cafeID,
		TablesPerSlot:      defaults.TablesPerSlot,
		AdvanceBookingDays: defaults.AdvanceBookingDays,
	}
}

// HasCapacityLimit returns true if concurrent bookings per slot are limited
func (s *CafeSettings) HasCapacityLimit() bool {
	return s.TablesPerSlot > 0
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *CafeSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// Validate проверяет диапазоны значений
func (s *CafeSettings) Validate() error {
	if s.TablesPerSlot < 0 || s.TablesPerSlot > MaxTablesPerSlot {
		return fmt.Errorf("%w: tablesPerSlot must be between 0 and %d", ErrValidationFailed, MaxTablesPerSlot)
	}
	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d", ErrValidationFailed, MaxAdvanceBookingDays)
	}
	return nil
}
