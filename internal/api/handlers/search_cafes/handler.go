package search_cafes

import (
	"errors"
	"net/http"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	"github.com/m04kA/CafeBookingService/internal/service/catalog"
	"github.com/m04kA/CafeBookingService/internal/service/catalog/models"
)

const msgInvalidPriceRange = "некорректный ценовой диапазон, ожидается $, $$ или $$$"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cafes
// Query params: search, category, city, priceRange (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.SearchRequest{
		Search:     query.Get("search"),
		Category:   query.Get("category"),
		City:       query.Get("city"),
		PriceRange: query.Get("priceRange"),
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("GET /cafes - Invalid filters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPriceRange)
			return
		}
		h.logger.Error("GET /cafes - Failed to search cafes: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /cafes - Cafes found: count=%d", len(result.Cafes))
	handlers.RespondJSON(w, http.StatusOK, result.Cafes)
}
