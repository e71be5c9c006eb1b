package create_availability_rule

import (
	"github.com/m04kA/Salon-BookingService/internal/service/availabilityrules/models"
)

// CreateRuleRequest HTTP request model
// Задаётся либо dayOfWeek, либо specificDate - ровно одно из двух
type CreateRuleRequest struct {
	StaffID      *int64  `json:"staffId,omitempty"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	IsAvailable  bool    `json:"isAvailable"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateRuleRequest) ToServiceRequest(salonID, userID int64) *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		UserID:       userID,
		SalonID:      salonID,
		StaffID:      r.StaffID,
		DayOfWeek:    r.DayOfWeek,
		SpecificDate: r.SpecificDate,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		IsAvailable:  r.IsAvailable,
	}
}
