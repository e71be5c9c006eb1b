package create_availability_rule

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/availabilityrules/models"
)

type RuleService interface {
	Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
