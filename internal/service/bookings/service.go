package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/booking"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	"github.com/m04kA/CafeBookingService/internal/service/bookings/models"
)

// Service сервис для чтения ledger и переходов статусов
type Service struct {
	bookingRepo  BookingRepository
	cafeRepo     CafeRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cafeRepo CafeRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		cafeRepo:     cafeRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь может видеть только своё бронирование.
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает все бронирования пользователя в порядке ledger.
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", req.UserID)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCafeBookings получает бронирования кафе для оператора.
// Фильтры по дню и статусу опциональны, порядок: день, слот, порядок ledger.
func (s *Service) GetCafeBookings(ctx context.Context, req *models.GetCafeBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetCafeBookings: fetching bookings for cafe=%s", req.CafeID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if _, err := s.cafeRepo.GetByID(ctx, req.CafeID); err != nil {
		if errors.Is(err, cafeRepo.ErrCafeNotFound) {
			s.logger.Warn("GetCafeBookings: cafe id=%s not found", req.CafeID)
			return nil, ErrCafeNotFound
		}
		s.logger.Error("GetCafeBookings: failed to get cafe id=%s: %v", req.CafeID, err)
		return nil, fmt.Errorf("%w: GetCafeBookings - cafe lookup: %v", ErrInternal, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCafeBookings: invalid filter for cafe=%s: %v", req.CafeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByCafeWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCafeBookings: repository error for cafe=%s: %v", req.CafeID, err)
		return nil, fmt.Errorf("%w: GetCafeBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCafeBookings: successfully fetched %d bookings for cafe=%s", len(bookings), req.CafeID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование по запросу владельца (upcoming -> cancelled)
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, req.UserID)

	booking, err := s.transition(ctx, "Cancel", bookingID, domain.StatusCancelled, func(b *domain.Booking) error {
		if b.UserID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", req.UserID, bookingID)
			return ErrAccessDenied
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// SetStatus переводит бронирование в новый статус по команде оператора
func (s *Service) SetStatus(ctx context.Context, bookingID string, req *models.SetStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("SetStatus: updating booking id=%s to status=%s", bookingID, req.Status)

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("SetStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.transition(ctx, "SetStatus", bookingID, status, nil)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// transition выполняет переход статуса в сериализуемой транзакции.
// authorize вызывается до перехода и может отклонить операцию.
func (s *Service) transition(
	ctx context.Context,
	op string,
	bookingID string,
	next domain.BookingStatus,
	authorize func(b *domain.Booking) error,
) (*domain.Booking, error) {
	var result *domain.Booking
	now := s.timeProvider.Now()

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, op, bookingID)
		if err != nil {
			return err
		}

		if authorize != nil {
			if err := authorize(booking); err != nil {
				return err
			}
		}

		from := booking.Status
		if err := booking.TransitionTo(next, now); err != nil {
			s.logger.Warn("%s: booking id=%s cannot move %s -> %s", op, bookingID, from, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, next)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, booking, from); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrStatusConflict):
				s.logger.Warn("%s: booking id=%s status changed concurrently", op, bookingID)
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			default:
				s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
				return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
			}
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%s moved to status=%s", op, bookingID, result.Status)

	if s.metrics != nil {
		s.metrics.IncBookingTransition(string(result.Status))
	}
	if s.publisher != nil {
		event := events.NewBookingEvent(events.TypeForStatus(result.Status), result, now)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("%s: failed to publish event for booking id=%s: %v", op, bookingID, err)
			if s.metrics != nil {
				s.metrics.IncEventPublishFailed()
			}
		}
	}

	return result, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}
