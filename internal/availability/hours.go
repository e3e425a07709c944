package availability

import (
	"github.com/m04kA/CafeBookingService/internal/domain"
)

// OpeningHours слот доступен, если он целиком попадает в часы работы кафе в этот день недели
type OpeningHours struct{}

func (OpeningHours) IsAvailable(in Input) bool {
	if in.Cafe == nil {
		return false
	}

	hours, ok := in.Cafe.HoursOn(in.Date)
	if !ok {
		return false
	}

	slotEnd, err := in.Slot.AddMinutes(domain.SlotStepMinutes)
	if err != nil {
		return false
	}

	return !in.Slot.IsBefore(hours.Open) && !slotEnd.IsAfter(hours.Close)
}
