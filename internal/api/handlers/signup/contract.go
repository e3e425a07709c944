package signup

import (
	"context"

	"github.com/m04kA/CafeBookingService/internal/service/identity/models"
)

type SessionService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
