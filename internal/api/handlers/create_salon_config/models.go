package create_salon_config

import (
	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig/models"
)

// CreateConfigRequest HTTP request model
type CreateConfigRequest struct {
	StaffID               *int64 `json:"staffId,omitempty"`
	ServiceID             *int64 `json:"serviceId,omitempty"`
	SchedulingMode        string `json:"schedulingMode"`
	BufferMinutes         int    `json:"bufferMinutes"`
	MinBookingNoticeHours int    `json:"minBookingNoticeHours"`
	AdvanceBookingDays    int    `json:"advanceBookingDays"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateConfigRequest) ToServiceRequest(salonID, userID int64) *models.CreateConfigRequest {
	return &models.CreateConfigRequest{
		UserID:                userID,
		SalonID:               salonID,
		StaffID:               r.StaffID,
		ServiceID:             r.ServiceID,
		SchedulingMode:        r.SchedulingMode,
		BufferMinutes:         r.BufferMinutes,
		MinBookingNoticeHours: r.MinBookingNoticeHours,
		AdvanceBookingDays:    r.AdvanceBookingDays,
	}
}
