package get_cafe

import (
	"context"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

type CatalogService interface {
	FindByID(ctx context.Context, id string) (*domain.Cafe, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
