package domain

import (
	"github.com/m04kA/CafeBookingService/pkg/types"
)

// TimeSlot a bookable time of day with an availability flag.
// Generated on demand, never persisted.
type TimeSlot struct {
	Time      types.TimeString
	Available bool
}

var slotGrid = buildSlotGrid()

func buildSlotGrid() []types.TimeString {
	grid := make([]types.TimeString, 0, SlotsPerDay)
	current := types.TimeString(FirstSlotTime)
	for !current.IsAfter(LastSlotTime) {
		grid = append(grid, current)
		next, err := current.AddMinutes(SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}
	return grid
}

// SlotGrid возвращает копию дневной сетки слотов
func SlotGrid() []types.TimeString {
	grid := make([]types.TimeString, len(slotGrid))
	copy(grid, slotGrid)
	return grid
}

// IsOnSlotGrid проверяет, что время совпадает с одним из слотов сетки
func IsOnSlotGrid(t types.TimeString) bool {
	for _, slot := range slotGrid {
		if slot == t {
			return true
		}
	}
	return false
}
