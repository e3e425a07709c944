package availability

// Capacity слот недоступен, когда число активных бронирований в нем достигло TablesPerSlot.
// TablesPerSlot = 0 снимает ограничение.
type Capacity struct{}

func (Capacity) IsAvailable(in Input) bool {
	if in.Settings == nil || !in.Settings.HasCapacityLimit() {
		return true
	}

	return CountInSlot(in) < in.Settings.TablesPerSlot
}

// CountInSlot количество активных бронирований в слоте
func CountInSlot(in Input) int {
	count := 0
	for _, booking := range in.Bookings {
		if booking.IsActive() && booking.Time == in.Slot {
			count++
		}
	}
	return count
}
