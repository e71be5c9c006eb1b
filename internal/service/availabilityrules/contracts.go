package availabilityrules

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	ListBySalon(ctx context.Context, salonID int64, staffID *int64) ([]*domain.AvailabilityRule, error)
	Delete(ctx context.Context, id int64) error
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetStaff(ctx context.Context, salonID, staffID int64) (*salonservice.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
