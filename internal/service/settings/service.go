package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	settingsRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/settings"
	"github.com/m04kA/CafeBookingService/internal/service/settings/models"
)

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Service сервис для работы с настройками бронирования кафе
type Service struct {
	settingsRepo SettingsRepository
	cafeRepo     CafeRepository
	defaults     domain.CafeSettings
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	cafeRepo CafeRepository,
	defaults domain.CafeSettings,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		cafeRepo:     cafeRepo,
		defaults:     defaults,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает настройки кафе.
// Если собственной записи нет, возвращаются настройки по умолчанию.
func (s *Service) Get(ctx context.Context, cafeID string) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for cafe=%s", cafeID)

	if err := s.ensureCafe(ctx, "Get", cafeID); err != nil {
		return nil, err
	}

	stored, err := s.settingsRepo.GetByCafeID(ctx, cafeID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: no settings for cafe=%s, using defaults", cafeID)
			return models.FromDomainSettings(domain.DefaultCafeSettings(cafeID, s.defaults), true), nil
		}
		s.logger.Error("Get: repository error for cafe=%s: %v", cafeID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(stored, false), nil
}

// Update сохраняет настройки кафе целиком
func (s *Service) Update(ctx context.Context, cafeID string, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: cafe=%s, tablesPerSlot=%d, advanceBookingDays=%d",
		cafeID, req.TablesPerSlot, req.AdvanceBookingDays)

	updated := req.ToDomainSettings(cafeID, s.timeProvider.Now())
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for cafe=%s: %v", cafeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.ensureCafe(ctx, "Update", cafeID); err != nil {
		return nil, err
	}

	saved, err := s.settingsRepo.Upsert(ctx, updated)
	if err != nil {
		s.logger.Error("Update: repository error for cafe=%s: %v", cafeID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for cafe=%s", cafeID)
	return models.FromDomainSettings(saved, false), nil
}

func (s *Service) ensureCafe(ctx context.Context, op, cafeID string) error {
	if _, err := s.cafeRepo.GetByID(ctx, cafeID); err != nil {
		if errors.Is(err, cafeRepo.ErrCafeNotFound) {
			s.logger.Warn("%s: cafe id=%s not found", op, cafeID)
			return ErrCafeNotFound
		}
		s.logger.Error("%s: failed to get cafe id=%s: %v", op, cafeID, err)
		return fmt.Errorf("%w: %s - failed to get cafe: %v", ErrInternal, op, err)
	}
	return nil
}
