package cafe

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// MemoryRepository каталог в памяти, сохраняет порядок вставки
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.Cafe
}

// NewMemoryRepository создает пустой каталог в памяти
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*domain.Cafe)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, cafe *domain.Cafe) error {
	stored, err := cloneCafe(cafe)
	if err != nil {
		return fmt.Errorf("%w: Upsert - cafe %s: %v", ErrEncode, cafe.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[cafe.ID]; !exists {
		r.order = append(r.order, cafe.ID)
	}
	r.byID[cafe.ID] = stored

	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Cafe, error) {
	r.mu.RLock()
	stored, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrCafeNotFound
	}

	return cloneCafe(stored)
}

func (r *MemoryRepository) List(ctx context.Context) ([]*domain.Cafe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cafes := make([]*domain.Cafe, 0, len(r.order))
	for _, id := range r.order {
		cafe, err := cloneCafe(r.byID[id])
		if err != nil {
			return nil, err
		}
		cafes = append(cafes, cafe)
	}

	return cafes, nil
}

// cloneCafe глубокая копия через JSON: записи каталога содержат карты и срезы
func cloneCafe(cafe *domain.Cafe) (*domain.Cafe, error) {
	data, err := json.Marshal(cafe)
	if err != nil {
		return nil, err
	}
	var clone domain.Cafe
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}
