package models

import (
	"github.com/m04kA/CafeBookingService/internal/domain"
)

// SearchRequest параметры поиска. Пустые поля не ограничивают выборку.
type SearchRequest struct {
	Search     string `json:"search,omitempty"`
	Category   string `json:"category,omitempty"`
	City       string `json:"city,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *SearchRequest) ToDomainFilter() domain.CafeFilter {
	return domain.CafeFilter{
		SearchTerm: r.Search,
		Category:   r.Category,
		City:       r.City,
		PriceRange: r.PriceRange,
	}
}

// CafeListResponse результат поиска в порядке каталога
type CafeListResponse struct {
	Cafes []*domain.Cafe `json:"cafes"`
}

// FiltersResponse значения для фильтров поиска
type FiltersResponse struct {
	Cities     []string `json:"cities"`
	Categories []string `json:"categories"`
}
