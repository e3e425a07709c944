package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/CafeBookingService/internal/availability"
	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/infra/events"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	settingsRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/settings"
)

// UseCase use case для создания бронирования
type UseCase struct {
	cafeRepo     CafeRepository
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	slotPolicy   SlotPolicy
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	defaults     domain.CafeSettings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cafeRepo CafeRepository,
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	slotPolicy SlotPolicy,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	defaults domain.CafeSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		cafeRepo:     cafeRepo,
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		slotPolicy:   slotPolicy,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		defaults:     defaults,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, cafe=%s, date=%s, time=%s, party=%d",
		req.UserID, req.CafeID, req.Date.Format(domain.DateFormat), req.Time, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	var result *domain.Booking

	// 3. Выполняем операции с хранилищем в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем кафе
		cafe, err := uc.cafeRepo.GetByID(txCtx, req.CafeID)
		if err != nil {
			if errors.Is(err, cafeRepo.ErrCafeNotFound) {
				uc.logger.Warn("CreateBooking: cafe id=%s not found", req.CafeID)
				return ErrCafeNotFound
			}
			uc.logger.Error("CreateBooking: failed to get cafe id=%s: %v", req.CafeID, err)
			return fmt.Errorf("%w: failed to get cafe: %v", ErrInternal, err)
		}

		// 3.2. Настройки кафе
		settings, err := uc.settingsRepo.GetByCafeID(txCtx, cafe.ID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateBooking: failed to get settings for cafe=%s: %v", cafe.ID, err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultCafeSettings(cafe.ID, uc.defaults)
		}

		// 3.3. Валидация даты с учетом настроек
		if err := validateDate(date, now, settings.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 3.4. Слот должен быть доступен по той же политике, что и в выдаче слотов
		// (чтение бронирований дня блокирует их на postgres)
		bookings, err := uc.bookingRepo.GetByCafeWithFilter(txCtx, domain.BookingsFilter{
			CafeID: cafe.ID,
			Date:   &date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		in := availability.Input{Cafe: cafe, Settings: settings, Date: date, Slot: req.Time, Bookings: bookings}
		if !uc.slotPolicy.IsAvailable(in) {
			uc.logger.Warn("CreateBooking: slot %s on %s not available for cafe=%s, %d/%d tables taken",
				req.Time, date.Format(domain.DateFormat), cafe.ID, availability.CountInSlot(in), settings.TablesPerSlot)
			return ErrSlotNotAvailable
		}

		// 3.5. Создаем бронирование со снимком данных кафе
		booking := &domain.Booking{
			ID:              uuid.NewString(),
			CafeID:          cafe.ID,
			UserID:          req.UserID,
			CafeName:        cafe.Name,
			CafeImage:       cafe.PrimaryPhoto(),
			Date:            date,
			Time:            req.Time,
			PartySize:       req.PartySize,
			Status:          domain.StatusUpcoming,
			SpecialRequests: req.SpecialRequests,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		// 3.6. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 4. После коммита: событие и метрики
	if uc.metrics != nil {
		uc.metrics.IncBookingsCreated(result.CafeID)
	}
	if uc.publisher != nil {
		event := events.NewBookingEvent(events.TypeBookingCreated, result, now)
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Error("CreateBooking: failed to publish event for booking id=%s: %v", result.ID, err)
			if uc.metrics != nil {
				uc.metrics.IncEventPublishFailed()
			}
		}
	}

	return toResponse(result), nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		CafeID:          b.CafeID,
		UserID:          b.UserID,
		Date:            b.Date,
		Time:            b.Time,
		PartySize:       b.PartySize,
		Status:          string(b.Status),
		CafeName:        b.CafeName,
		CafeImage:       b.CafeImage,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
