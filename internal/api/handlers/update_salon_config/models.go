package update_salon_config

import (
	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig/models"
)

// UpdateConfigRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	SchedulingMode        *string `json:"schedulingMode,omitempty"`
	BufferMinutes         *int    `json:"bufferMinutes,omitempty"`
	MinBookingNoticeHours *int    `json:"minBookingNoticeHours,omitempty"`
	AdvanceBookingDays    *int    `json:"advanceBookingDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(userID int64) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:                userID,
		SchedulingMode:        r.SchedulingMode,
		BufferMinutes:         r.BufferMinutes,
		MinBookingNoticeHours: r.MinBookingNoticeHours,
		AdvanceBookingDays:    r.AdvanceBookingDays,
	}
}
