package create_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	SalonID    int64            // ID салона
	StaffID    int64            // ID мастера
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	CustomerID      int64            // ID клиента
	SalonID         int64            // ID салона
	StaffID         int64            // ID мастера
	ServiceID       int64            // ID услуги
	ReferenceCode   string           // Публичный код бронирования
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	StaffName    *string // Имя мастера
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
