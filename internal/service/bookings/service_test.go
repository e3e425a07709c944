package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/fixtures"
	"github.com/m04kA/CafeBookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/booking"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	"github.com/m04kA/CafeBookingService/internal/service/bookings/models"
	"github.com/m04kA/CafeBookingService/pkg/ptr"
	"github.com/m04kA/CafeBookingService/pkg/simpletxmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type countingMetrics struct {
	mu          sync.Mutex
	transitions map[string]int
}

func (m *countingMetrics) IncBookingTransition(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[status]++
}

func (m *countingMetrics) IncEventPublishFailed() {}

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	svc       *Service
	bookings  *bookingRepo.MemoryRepository
	publisher *recordingPublisher
	metrics   *countingMetrics
}

// newEnv загружает фикстуры: пять бронирований demo-пользователя
func newEnv(t *testing.T) *env {
	t.Helper()

	ctx := context.Background()
	cafes := cafeRepo.NewMemoryRepository()
	bookings := bookingRepo.NewMemoryRepository()
	require.NoError(t, fixtures.NewSeeder(cafes, bookings, nopLogger{}).Seed(ctx, now, "demo"))

	e := &env{
		bookings:  bookings,
		publisher: &recordingPublisher{},
		metrics:   &countingMetrics{transitions: make(map[string]int)},
	}
	e.svc = NewService(bookings, cafes, simpletxmanager.NewTransactionManager(), e.publisher, e.metrics, nopLogger{})
	e.svc.timeProvider = fixedTime{now: now}

	return e
}

func TestGetByID(t *testing.T) {
	e := newEnv(t)

	resp, err := e.svc.GetByID(context.Background(), "1", "demo")
	require.NoError(t, err)
	assert.Equal(t, "The Coffee Studio", resp.CafeName)
	assert.Equal(t, "2026-06-02", resp.Date)
	assert.Equal(t, "10:00", resp.Time)

	_, err = e.svc.GetByID(context.Background(), "1", "intruder")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.svc.GetByID(context.Background(), "missing", "demo")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUserBookings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	resp, err := e.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "demo"})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 5)
	for i, id := range []string{"1", "2", "3", "4", "5"} {
		assert.Equal(t, id, resp.Bookings[i].ID)
	}

	resp, err = e.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "demo", Status: ptr.Ptr("completed")})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = e.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)

	_, err = e.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "demo", Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestCancel(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	resp, err := e.svc.Cancel(ctx, "1", &models.CancelBookingRequest{UserID: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, 2, resp.PartySize)
	require.NotNil(t, resp.CancelledAt)

	// Изменилось только это бронирование, список видит изменение сразу
	list, err := e.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", list.Bookings[0].Status)
	assert.Equal(t, "upcoming", list.Bookings[1].Status)
	assert.Equal(t, "completed", list.Bookings[2].Status)

	require.Len(t, e.publisher.events, 1)
	assert.Equal(t, events.TypeBookingCancelled, e.publisher.events[0].Type)
	assert.Equal(t, 1, e.metrics.transitions["cancelled"])

	_, err = e.svc.Cancel(ctx, "1", &models.CancelBookingRequest{UserID: "demo"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_Errors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.Cancel(ctx, "2", &models.CancelBookingRequest{UserID: "intruder"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.svc.Cancel(ctx, "missing", &models.CancelBookingRequest{UserID: "demo"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// Завершенное бронирование отменить нельзя
	_, err = e.svc.Cancel(ctx, "3", &models.CancelBookingRequest{UserID: "demo"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := e.bookings.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUpcoming, stored.Status)
	assert.Empty(t, e.publisher.events)
}

func TestSetStatus(t *testing.T) {
	tests := []struct {
		name          string
		bookingID     string
		status        string
		expectedError error
	}{
		{name: "complete upcoming", bookingID: "2", status: "completed"},
		{name: "cancel upcoming", bookingID: "2", status: "cancelled"},
		{name: "upcoming to upcoming", bookingID: "2", status: "upcoming", expectedError: ErrInvalidTransition},
		{name: "reopen completed", bookingID: "3", status: "upcoming", expectedError: ErrInvalidTransition},
		{name: "cancel completed", bookingID: "4", status: "cancelled", expectedError: ErrInvalidTransition},
		{name: "complete cancelled", bookingID: "5", status: "completed", expectedError: ErrInvalidTransition},
		{name: "unknown status", bookingID: "2", status: "no_show", expectedError: ErrInvalidInput},
		{name: "unknown booking", bookingID: "42", status: "completed", expectedError: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)

			resp, err := e.svc.SetStatus(context.Background(), tt.bookingID, &models.SetStatusRequest{Status: tt.status})
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status)
			require.Len(t, e.publisher.events, 1)
			assert.Equal(t, events.TypeForStatus(domain.BookingStatus(tt.status)), e.publisher.events[0].Type)
		})
	}
}

func TestSetStatus_ConcurrentTransitionsOnlyOneWins(t *testing.T) {
	e := newEnv(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for _, status := range []string{"completed", "cancelled", "completed", "cancelled"} {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			_, err := e.svc.SetStatus(context.Background(), "1", &models.SetStatusRequest{Status: status})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidTransition))
		}(status)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestGetCafeBookings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	resp, err := e.svc.GetCafeBookings(ctx, &models.GetCafeBookingsRequest{CafeID: "2"})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "4", resp.Bookings[0].ID)

	day := now.AddDate(0, 0, 1)
	resp, err = e.svc.GetCafeBookings(ctx, &models.GetCafeBookingsRequest{CafeID: "1", Date: &day, Status: ptr.Ptr("upcoming")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "1", resp.Bookings[0].ID)

	resp, err = e.svc.GetCafeBookings(ctx, &models.GetCafeBookingsRequest{CafeID: "1", Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)

	_, err = e.svc.GetCafeBookings(ctx, &models.GetCafeBookingsRequest{CafeID: "1", Status: ptr.Ptr("bogus")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.svc.GetCafeBookings(ctx, &models.GetCafeBookingsRequest{CafeID: "404"})
	assert.ErrorIs(t, err, ErrCafeNotFound)
}
