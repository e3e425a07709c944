package get_cafe_filters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/CafeBookingService/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct{ mock.Mock }

func (m *mockService) Filters(ctx context.Context) (*models.FiltersResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.FiltersResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("Filters", mock.Anything).Return(&models.FiltersResponse{
		Cities:     []string{"Portland"},
		Categories: []string{"Coffee", "Tea"},
	}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cafes/filters", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cities":["Portland"],"categories":["Coffee","Tea"]}`, rec.Body.String())
}

func TestHandle_Error(t *testing.T) {
	svc := &mockService{}
	svc.On("Filters", mock.Anything).Return(nil, errors.New("db down")).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cafes/filters", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
