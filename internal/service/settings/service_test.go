package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/fixtures"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	settingsRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/settings"
	"github.com/m04kA/CafeBookingService/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *settingsRepo.MemoryRepository) {
	t.Helper()

	cafes, err := fixtures.Cafes()
	require.NoError(t, err)

	cafeStore := cafeRepo.NewMemoryRepository()
	for _, c := range cafes {
		require.NoError(t, cafeStore.Upsert(context.Background(), c))
	}

	repo := settingsRepo.NewMemoryRepository()
	svc := NewService(repo, cafeStore, domain.CafeSettings{TablesPerSlot: 5, AdvanceBookingDays: 30}, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc, repo
}

func TestGet_Defaults(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, &models.SettingsResponse{
		CafeID:             "1",
		TablesPerSlot:      5,
		AdvanceBookingDays: 30,
		IsDefault:          true,
	}, resp)
}

func TestUpdate_ThenGet(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	resp, err := svc.Update(ctx, "2", &models.UpdateSettingsRequest{TablesPerSlot: 0, AdvanceBookingDays: 7})
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 0, resp.TablesPerSlot)
	require.NotNil(t, resp.UpdatedAt)
	assert.Equal(t, now, *resp.UpdatedAt)

	got, err := svc.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, resp, got)

	stored, err := repo.GetByCafeID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 7, stored.AdvanceBookingDays)
}

func TestUpdate_Validation(t *testing.T) {
	svc, repo := newService(t)

	tests := []struct {
		name string
		req  models.UpdateSettingsRequest
	}{
		{name: "negative tables", req: models.UpdateSettingsRequest{TablesPerSlot: -1}},
		{name: "too many tables", req: models.UpdateSettingsRequest{TablesPerSlot: domain.MaxTablesPerSlot + 1}},
		{name: "negative days", req: models.UpdateSettingsRequest{AdvanceBookingDays: -1}},
		{name: "too many days", req: models.UpdateSettingsRequest{AdvanceBookingDays: domain.MaxAdvanceBookingDays + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), "1", &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
		})
	}

	_, err := repo.GetByCafeID(context.Background(), "1")
	assert.ErrorIs(t, err, settingsRepo.ErrSettingsNotFound)
}

func TestUnknownCafe(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "404")
	assert.ErrorIs(t, err, ErrCafeNotFound)

	_, err = svc.Update(ctx, "404", &models.UpdateSettingsRequest{TablesPerSlot: 1})
	assert.ErrorIs(t, err, ErrCafeNotFound)
}
