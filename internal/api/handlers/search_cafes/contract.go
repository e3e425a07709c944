package search_cafes

import (
	"context"

	"github.com/m04kA/CafeBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.CafeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
