package booking

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// MemoryRepository ledger бронирований в памяти.
// Записи хранятся в порядке вставки, наружу отдаются только копии.
type MemoryRepository struct {
	mu       sync.RWMutex
	bookings []*domain.Booking
	byID     map[string]int
}

// NewMemoryRepository создает пустой ledger в памяти
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]int)}
}

func (r *MemoryRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[booking.ID]; exists {
		return nil, ErrBookingExists
	}

	r.byID[booking.ID] = len(r.bookings)
	r.bookings = append(r.bookings, booking.Clone())

	return booking, nil
}

func (r *MemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byID[id]
	return exists, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrBookingNotFound
	}

	return r.bookings[idx].Clone(), nil
}

func (r *MemoryRepository) GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b.Clone())
	}

	return result, nil
}

func (r *MemoryRepository) GetByCafeWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Matches(b) {
			result = append(result, b.Clone())
		}
	}

	// Та же сортировка, что и в SQL: день, слот, порядок ledger
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Time.IsBefore(result[j].Time)
	})

	return result, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[booking.ID]
	if !ok {
		return ErrBookingNotFound
	}

	stored := r.bookings[idx]
	if stored.Status != from {
		return ErrStatusConflict
	}

	updated := stored.Clone()
	updated.Status = booking.Status
	updated.UpdatedAt = booking.UpdatedAt
	updated.CancelledAt = nil
	if booking.CancelledAt != nil {
		at := *booking.CancelledAt
		updated.CancelledAt = &at
	}
	r.bookings[idx] = updated

	return nil
}
