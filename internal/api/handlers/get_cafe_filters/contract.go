package get_cafe_filters

import (
	"context"

	"github.com/m04kA/CafeBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	Filters(ctx context.Context) (*models.FiltersResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
