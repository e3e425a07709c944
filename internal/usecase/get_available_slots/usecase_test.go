package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CafeBookingService/internal/availability"
	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/fixtures"
	bookingRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/booking"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	settingsRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/settings"
	"github.com/m04kA/CafeBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingMetrics struct{ slots int }

func (m *countingMetrics) IncSlotsRequested() { m.slots++ }

type mockBookingRepository struct{ mock.Mock }

func (m *mockBookingRepository) GetByCafeWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

// 2026-06-01 понедельник, The Coffee Studio работает 07:00-20:00
var monday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

type env struct {
	cafes    *cafeRepo.MemoryRepository
	bookings *bookingRepo.MemoryRepository
	settings *settingsRepo.MemoryRepository
	metrics  *countingMetrics
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		cafes:    cafeRepo.NewMemoryRepository(),
		bookings: bookingRepo.NewMemoryRepository(),
		settings: settingsRepo.NewMemoryRepository(),
		metrics:  &countingMetrics{},
	}

	cafes, err := fixtures.Cafes()
	require.NoError(t, err)
	for _, c := range cafes {
		require.NoError(t, e.cafes.Upsert(context.Background(), c))
	}

	return e
}

func (e *env) useCase(policy Policy) *UseCase {
	defaults := domain.CafeSettings{TablesPerSlot: 1, AdvanceBookingDays: domain.DefaultAdvanceBookingDays}
	return NewUseCase(e.cafes, e.bookings, e.settings, policy, defaults, e.metrics, nopLogger{})
}

func slotTimes(slots []domain.TimeSlot) []types.TimeString {
	times := make([]types.TimeString, len(slots))
	for i, s := range slots {
		times[i] = s.Time
	}
	return times
}

func TestExecute_AlwaysReturnsFullGrid(t *testing.T) {
	e := newEnv(t)
	policies := map[string]Policy{
		"random":        availability.NewRandom(availability.DefaultUnavailableProbability, nil),
		"deterministic": availability.Deterministic(),
	}

	for name, policy := range policies {
		t.Run(name, func(t *testing.T) {
			for _, date := range []time.Time{monday, monday.AddDate(0, 0, 6), monday.AddDate(-1, 0, 0)} {
				resp, err := e.useCase(policy).Execute(context.Background(), &Request{CafeID: "1", Date: date})
				require.NoError(t, err)
				require.Len(t, resp.Slots, domain.SlotsPerDay)
				assert.Equal(t, domain.SlotGrid(), slotTimes(resp.Slots))
				assert.Equal(t, types.TimeString("08:00"), resp.Slots[0].Time)
				assert.Equal(t, types.TimeString("20:00"), resp.Slots[24].Time)
			}
		})
	}
}

func TestExecute_DeterministicFollowsHoursAndBookings(t *testing.T) {
	e := newEnv(t)
	uc := e.useCase(availability.Deterministic())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{CafeID: "1", Date: monday.Add(15 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, monday, resp.Date)

	// 20:00 начинается в момент закрытия
	assert.True(t, resp.Slots[0].Available)
	assert.True(t, resp.Slots[23].Available)
	assert.False(t, resp.Slots[24].Available)

	_, err = e.bookings.Create(ctx, &domain.Booking{
		ID: "b1", CafeID: "1", UserID: "u1", Date: monday, Time: "10:00",
		PartySize: 2, Status: domain.StatusUpcoming, CreatedAt: monday, UpdatedAt: monday,
	})
	require.NoError(t, err)

	resp, err = uc.Execute(ctx, &Request{CafeID: "1", Date: monday})
	require.NoError(t, err)
	assert.False(t, resp.Slots[4].Available, "10:00 is taken")
	assert.True(t, resp.Slots[5].Available)

	// Собственные настройки кафе снимают ограничение
	_, err = e.settings.Upsert(ctx, &domain.CafeSettings{CafeID: "1", TablesPerSlot: 0})
	require.NoError(t, err)

	resp, err = uc.Execute(ctx, &Request{CafeID: "1", Date: monday})
	require.NoError(t, err)
	assert.True(t, resp.Slots[4].Available)

	assert.Equal(t, 3, e.metrics.slots)
}

func TestExecute_Errors(t *testing.T) {
	e := newEnv(t)
	uc := e.useCase(availability.Deterministic())

	tests := []struct {
		name          string
		req           *Request
		expectedError error
		domainError   error
	}{
		{name: "empty cafe id", req: &Request{Date: monday}, expectedError: ErrInvalidInput, domainError: domain.ErrValidationFailed},
		{name: "zero date", req: &Request{CafeID: "1"}, expectedError: ErrInvalidInput, domainError: domain.ErrValidationFailed},
		{name: "unknown cafe", req: &Request{CafeID: "999", Date: monday}, expectedError: ErrCafeNotFound, domainError: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.ErrorIs(t, err, tt.domainError)
		})
	}
}

func TestExecute_BookingRepositoryError(t *testing.T) {
	e := newEnv(t)
	bookings := &mockBookingRepository{}
	bookings.On("GetByCafeWithFilter", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	uc := NewUseCase(e.cafes, bookings, e.settings, availability.Deterministic(), domain.CafeSettings{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CafeID: "1", Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
	bookings.AssertExpectations(t)
}
