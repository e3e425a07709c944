package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CafeBookingService/internal/domain"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	"github.com/m04kA/CafeBookingService/internal/service/catalog/models"
)

// Service сервис каталога кафе (только чтение)
type Service struct {
	cafeRepo CafeRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(cafeRepo CafeRepository, logger Logger) *Service {
	return &Service{
		cafeRepo: cafeRepo,
		logger:   logger,
	}
}

// FindByID получает кафе по ID
func (s *Service) FindByID(ctx context.Context, id string) (*domain.Cafe, error) {
	cafe, err := s.cafeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cafeRepo.ErrCafeNotFound) {
			s.logger.Warn("FindByID: cafe id=%s not found", id)
			return nil, ErrCafeNotFound
		}
		s.logger.Error("FindByID: repository error for cafe id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: FindByID - repository error: %v", ErrInternal, err)
	}

	return cafe, nil
}

// Search возвращает кафе, подходящие под все заданные фильтры, в порядке каталога
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.CafeListResponse, error) {
	s.logger.Info("Search: search=%q, category=%q, city=%q, priceRange=%q",
		req.Search, req.Category, req.City, req.PriceRange)

	if req.PriceRange != "" && !domain.PriceRange(req.PriceRange).IsValid() {
		s.logger.Warn("Search: unknown priceRange=%q", req.PriceRange)
		return nil, fmt.Errorf("%w: priceRange must be one of $, $$, $$$", ErrInvalidInput)
	}

	cafes, err := s.list(ctx, "Search")
	if err != nil {
		return nil, err
	}

	filter := req.ToDomainFilter()
	result := make([]*domain.Cafe, 0, len(cafes))
	for _, cafe := range cafes {
		if filter.Matches(cafe) {
			result = append(result, cafe)
		}
	}

	s.logger.Info("Search: found %d of %d cafes", len(result), len(cafes))
	return &models.CafeListResponse{Cafes: result}, nil
}

// ListCities города каталога без повторов в порядке первого появления
func (s *Service) ListCities(ctx context.Context) ([]string, error) {
	cafes, err := s.list(ctx, "ListCities")
	if err != nil {
		return nil, err
	}
	return cities(cafes), nil
}

// ListCategories категории каталога без повторов в порядке первого появления
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	cafes, err := s.list(ctx, "ListCategories")
	if err != nil {
		return nil, err
	}
	return categories(cafes), nil
}

// Filters возвращает города и категории одним запросом
func (s *Service) Filters(ctx context.Context) (*models.FiltersResponse, error) {
	cafes, err := s.list(ctx, "Filters")
	if err != nil {
		return nil, err
	}

	return &models.FiltersResponse{
		Cities:     cities(cafes),
		Categories: categories(cafes),
	}, nil
}

func (s *Service) list(ctx context.Context, op string) ([]*domain.Cafe, error) {
	cafes, err := s.cafeRepo.List(ctx)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return cafes, nil
}

func cities(cafes []*domain.Cafe) []string {
	seen := make(map[string]struct{}, len(cafes))
	result := make([]string, 0, len(cafes))
	for _, cafe := range cafes {
		if _, ok := seen[cafe.Location.City]; ok {
			continue
		}
		seen[cafe.Location.City] = struct{}{}
		result = append(result, cafe.Location.City)
	}
	return result
}

func categories(cafes []*domain.Cafe) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for _, cafe := range cafes {
		for _, category := range cafe.Categories {
			if _, ok := seen[category]; ok {
				continue
			}
			seen[category] = struct{}{}
			result = append(result, category)
		}
	}
	return result
}
