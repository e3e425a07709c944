package availability

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/pkg/types"
)

// 2026-06-01 понедельник
var monday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func testCafe() *domain.Cafe {
	hours := make(map[string]domain.DayHours, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		hours[day] = domain.DayHours{Open: "09:00", Close: "18:00"}
	}
	hours["Sunday"] = domain.DayHours{Open: "10:00", Close: "14:00"}
	return &domain.Cafe{ID: "1", Name: "Test", Hours: hours}
}

func TestOpeningHours(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		slot     types.TimeString
		expected bool
	}{
		{name: "before opening", date: monday, slot: "08:30", expected: false},
		{name: "at opening", date: monday, slot: "09:00", expected: true},
		{name: "last slot ends at closing", date: monday, slot: "17:30", expected: true},
		{name: "at closing", date: monday, slot: "18:00", expected: false},
		{name: "sunday hours", date: monday.AddDate(0, 0, 6), slot: "14:00", expected: false},
		{name: "sunday open", date: monday.AddDate(0, 0, 6), slot: "13:30", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Cafe: testCafe(), Date: tt.date, Slot: tt.slot}
			assert.Equal(t, tt.expected, OpeningHours{}.IsAvailable(in))
		})
	}
}

func TestOpeningHours_NoCafe(t *testing.T) {
	assert.False(t, OpeningHours{}.IsAvailable(Input{Date: monday, Slot: "10:00"}))
}

func TestCapacity(t *testing.T) {
	active := &domain.Booking{ID: "a", Time: "10:00", Status: domain.StatusUpcoming}
	cancelled := &domain.Booking{ID: "c", Time: "10:00", Status: domain.StatusCancelled}
	other := &domain.Booking{ID: "o", Time: "10:30", Status: domain.StatusUpcoming}

	bookings := []*domain.Booking{active, cancelled, other}

	unlimited := &domain.CafeSettings{TablesPerSlot: 0}
	assert.True(t, Capacity{}.IsAvailable(Input{Settings: unlimited, Slot: "10:00", Bookings: bookings}))

	one := &domain.CafeSettings{TablesPerSlot: 1}
	assert.False(t, Capacity{}.IsAvailable(Input{Settings: one, Slot: "10:00", Bookings: bookings}))
	assert.False(t, Capacity{}.IsAvailable(Input{Settings: one, Slot: "10:30", Bookings: bookings}))
	assert.True(t, Capacity{}.IsAvailable(Input{Settings: one, Slot: "11:00", Bookings: bookings}))

	two := &domain.CafeSettings{TablesPerSlot: 2}
	assert.True(t, Capacity{}.IsAvailable(Input{Settings: two, Slot: "10:00", Bookings: bookings}))

	assert.True(t, Capacity{}.IsAvailable(Input{Slot: "10:00", Bookings: bookings}))
}

func TestAll(t *testing.T) {
	yes := PolicyFunc(func(Input) bool { return true })
	no := PolicyFunc(func(Input) bool { return false })

	assert.True(t, All().IsAvailable(Input{}))
	assert.True(t, All(yes, yes).IsAvailable(Input{}))
	assert.False(t, All(yes, no).IsAvailable(Input{}))
}

func TestDeterministic_IsRepeatable(t *testing.T) {
	policy := Deterministic()
	in := Input{Cafe: testCafe(), Settings: &domain.CafeSettings{TablesPerSlot: 1}, Date: monday}

	for _, slot := range domain.SlotGrid() {
		in.Slot = slot
		assert.Equal(t, policy.IsAvailable(in), policy.IsAvailable(in), "slot %s", slot)
	}
}

func TestRandom_Extremes(t *testing.T) {
	never := NewRandom(0, rand.NewPCG(1, 2))
	always := NewRandom(1, rand.NewPCG(1, 2))

	for _, slot := range domain.SlotGrid() {
		in := Input{Slot: slot}
		assert.True(t, never.IsAvailable(in))
		assert.False(t, always.IsAvailable(in))
	}
}

func TestRandom_SameSeedSameSequence(t *testing.T) {
	a := NewRandom(DefaultUnavailableProbability, rand.NewPCG(42, 7))
	b := NewRandom(DefaultUnavailableProbability, rand.NewPCG(42, 7))

	for _, slot := range domain.SlotGrid() {
		in := Input{Slot: slot}
		assert.Equal(t, a.IsAvailable(in), b.IsAvailable(in))
	}
}

func TestForBooking(t *testing.T) {
	full := []*domain.Booking{{ID: "a", Time: "10:00", Status: domain.StatusUpcoming}}
	oneTable := &domain.CafeSettings{TablesPerSlot: 1}

	closed := Input{Cafe: testCafe(), Date: monday, Slot: "18:00"}
	taken := Input{Cafe: testCafe(), Settings: oneTable, Date: monday, Slot: "10:00", Bookings: full}
	open := Input{Cafe: testCafe(), Settings: oneTable, Date: monday, Slot: "10:30", Bookings: full}

	deterministic := ForBooking(PolicyDeterministic)
	assert.False(t, deterministic.IsAvailable(closed))
	assert.False(t, deterministic.IsAvailable(taken))
	assert.True(t, deterministic.IsAvailable(open))

	random := ForBooking(PolicyRandom)
	assert.True(t, random.IsAvailable(closed))
	assert.False(t, random.IsAvailable(taken))
	assert.True(t, random.IsAvailable(open))
}
