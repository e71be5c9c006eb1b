package reminders

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/notifyservice"
)

type BookingRepository interface {
	GetDueForReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

type NotifyServiceClient interface {
	SendBookingReminder(ctx context.Context, reminder *notifyservice.ReminderRequest) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
