package domain

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// IsActive returns true if the status occupies the calendar in rule-based mode
// (anything that is not cancelled and not a no-show)
func (s BookingStatus) IsActive() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// IsCommitted returns true if the status occupies the calendar in fixed-grid mode
// (only pending and confirmed bookings)
func (s BookingStatus) IsCommitted() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking represents an appointment booked at a salon
type Booking struct {
	ID              int64
	CustomerID      int64
	SalonID         int64
	StaffID         int64 // ID мастера, выполняющего услугу
	ServiceID       int64
	ReferenceCode   string // публичный код бронирования для клиента
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	StaffName    *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	// Когда отправлено напоминание о визите (NULL = еще не отправлялось)
	ReminderSentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies the calendar in rule-based mode
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsCommitted returns true if the booking occupies the calendar in fixed-grid mode
func (b *Booking) IsCommitted() bool {
	return b.Status.IsCommitted()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsFinished returns true if the booking is completed or was a no-show
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// EndTime возвращает время окончания визита
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	StaffID         *int64         // Фильтр по мастеру (опционально, если nil - все мастера)
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, no-show)
}
