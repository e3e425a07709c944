package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CafeBookingService/internal/availability"
	"github.com/m04kA/CafeBookingService/internal/domain"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	settingsRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/settings"
)

// UseCase use case генерации слотов бронирования на день
type UseCase struct {
	cafeRepo     CafeRepository
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	policy       Policy
	defaults     domain.CafeSettings
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// defaults используются для кафе без собственных настроек.
func NewUseCase(
	cafeRepo CafeRepository,
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	policy Policy,
	defaults domain.CafeSettings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		cafeRepo:     cafeRepo,
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		policy:       policy,
		defaults:     defaults,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: cafe=%s, date=%s", req.CafeID, date.Format(domain.DateFormat))

	if uc.metrics != nil {
		uc.metrics.IncSlotsRequested()
	}

	// 2. Получаем кафе
	cafe, err := uc.cafeRepo.GetByID(ctx, req.CafeID)
	if err != nil {
		if errors.Is(err, cafeRepo.ErrCafeNotFound) {
			uc.logger.Warn("GetAvailableSlots: cafe id=%s not found", req.CafeID)
			return nil, ErrCafeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get cafe id=%s: %v", req.CafeID, err)
		return nil, fmt.Errorf("%w: failed to get cafe: %v", ErrInternal, err)
	}

	// 3. Настройки кафе (дефолтные, если своих нет)
	settings, err := uc.settingsRepo.GetByCafeID(ctx, cafe.ID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings for cafe=%s: %v", cafe.ID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultCafeSettings(cafe.ID, uc.defaults)
	}

	// 4. Активные бронирования на дату
	bookings, err := uc.bookingRepo.GetByCafeWithFilter(ctx, domain.BookingsFilter{
		CafeID: cafe.ID,
		Date:   &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Сетка слотов и решение политики по каждому
	grid := domain.SlotGrid()
	slots := make([]domain.TimeSlot, 0, len(grid))
	available := 0

	for _, slot := range grid {
		isAvailable := uc.policy.IsAvailable(availability.Input{
			Cafe:     cafe,
			Settings: settings,
			Date:     date,
			Slot:     slot,
			Bookings: bookings,
		})
		if isAvailable {
			available++
		}
		slots = append(slots, domain.TimeSlot{Time: slot, Available: isAvailable})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d available) for cafe=%s, date=%s",
		len(slots), available, cafe.ID, date.Format(domain.DateFormat))

	return &Response{
		CafeID: cafe.ID,
		Date:   date,
		Slots:  slots,
	}, nil
}
