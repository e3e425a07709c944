package models

import (
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// UpdateSettingsRequest запрос на изменение настроек кафе
type UpdateSettingsRequest struct {
	TablesPerSlot      int `json:"tablesPerSlot"`
	AdvanceBookingDays int `json:"advanceBookingDays"`
}

// ToDomainSettings конвертирует request в domain модель
func (r *UpdateSettingsRequest) ToDomainSettings(cafeID string, updatedAt time.Time) *domain.CafeSettings {
	return &domain.CafeSettings{
		CafeID:             cafeID,
		TablesPerSlot:      r.TablesPerSlot,
		AdvanceBookingDays: r.AdvanceBookingDays,
		UpdatedAt:          updatedAt,
	}
}

// SettingsResponse ответ с настройками бронирования.
// Нулевые значения означают отсутствие ограничения.
type SettingsResponse struct {
	CafeID             string     `json:"cafeId"`
	TablesPerSlot      int        `json:"tablesPerSlot"`
	AdvanceBookingDays int        `json:"advanceBookingDays"`
	IsDefault          bool       `json:"isDefault"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в response
func FromDomainSettings(s *domain.CafeSettings, isDefault bool) *SettingsResponse {
	resp := &SettingsResponse{
		CafeID:             s.CafeID,
		TablesPerSlot:      s.TablesPerSlot,
		AdvanceBookingDays: s.AdvanceBookingDays,
		IsDefault:          isDefault,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
