package settings

import (
	"context"
	"sync"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// MemoryRepository настройки кафе в памяти
type MemoryRepository struct {
	mu       sync.RWMutex
	settings map[string]domain.CafeSettings
}

// NewMemoryRepository создает пустое хранилище настроек
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{settings: make(map[string]domain.CafeSettings)}
}

func (r *MemoryRepository) GetByCafeID(ctx context.Context, cafeID string) (*domain.CafeSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.settings[cafeID]
	if !ok {
		return nil, ErrSettingsNotFound
	}

	return &stored, nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, settings *domain.CafeSettings) (*domain.CafeSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[settings.CafeID] = *settings

	return settings, nil
}
