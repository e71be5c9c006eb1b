package create_salon_config

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig/models"
)

type ConfigService interface {
	Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
