package login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/service/identity"
	"github.com/m04kA/CafeBookingService/internal/service/identity/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct{ mock.Mock }

func (m *mockService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		result     *models.AuthResponse
		err        error
		callsSvc   bool
		wantStatus int
	}{
		{
			name:       "ok",
			body:       `{"email":"a@b.c","password":"pw"}`,
			result:     &models.AuthResponse{Token: "tok", User: &domain.User{ID: "u-1"}},
			callsSvc:   true,
			wantStatus: http.StatusOK,
		},
		{name: "broken body", body: `{"email":`, wantStatus: http.StatusBadRequest},
		{name: "empty fields", body: `{"email":"","password":""}`, err: identity.ErrInvalidInput, callsSvc: true, wantStatus: http.StatusBadRequest},
		{name: "rejected", body: `{"email":"a@b.c","password":"x"}`, err: identity.ErrInvalidCredentials, callsSvc: true, wantStatus: http.StatusUnauthorized},
		{name: "provider down", body: `{"email":"a@b.c","password":"x"}`, err: identity.ErrInternal, callsSvc: true, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.callsSvc {
				svc.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).Return(tt.result, tt.err).Once()
			}

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
