package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBySalonWithFilter получает бронирования салона с фильтрацией по мастеру и дате
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
	GetConfigWithHierarchy(ctx context.Context, salonID int64, staffID *int64, serviceID *int64) (*domain.SalonSlotsConfig, error)
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	// ListBySalon получает правила салона, опционально с правилами конкретного мастера
	ListBySalon(ctx context.Context, salonID int64, staffID *int64) ([]*domain.AvailabilityRule, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetSalonBySlug(ctx context.Context, slug string) (*salonservice.Salon, error)
	GetService(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error)
	GetStaff(ctx context.Context, salonID, staffID int64) (*salonservice.Staff, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
