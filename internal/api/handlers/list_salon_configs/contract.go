package list_salon_configs

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig/models"
)

type ConfigService interface {
	GetAllBySalon(ctx context.Context, salonID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
