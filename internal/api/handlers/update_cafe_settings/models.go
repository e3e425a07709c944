package update_cafe_settings

import (
	"github.com/m04kA/CafeBookingService/internal/service/settings/models"
)

// UpdateCafeSettingsRequest HTTP request model. Ноль означает отсутствие ограничения.
type UpdateCafeSettingsRequest struct {
	TablesPerSlot      *int `json:"tablesPerSlot"`
	AdvanceBookingDays *int `json:"advanceBookingDays"`
}

// IsComplete проверяет, что переданы оба поля
func (r *UpdateCafeSettingsRequest) IsComplete() bool {
	return r.TablesPerSlot != nil && r.AdvanceBookingDays != nil
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateCafeSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		TablesPerSlot:      *r.TablesPerSlot,
		AdvanceBookingDays: *r.AdvanceBookingDays,
	}
}
