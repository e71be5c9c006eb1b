package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/availability"
	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
// Салон задается либо по SalonID, либо по публичному SalonSlug
// (если SalonID = 0, поиск идет по slug)
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	SalonID   int64     // ID салона
	SalonSlug string    // Публичный slug салона (альтернатива SalonID)
	StaffID   *int64    // ID мастера (опционально)
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date           time.Time // Дата, на которую запрашивались слоты
	SalonID        int64     // ID салона
	StaffID        *int64    // ID мастера (если указан в запросе)
	ServiceID      int64     // ID услуги
	SchedulingMode string    // Режим вычисления слотов
	Closed         bool      // День полностью закрыт
	TotalSlots     int       // Всего сгенерировано кандидатов
	AvailableCount int       // Из них доступно
	Slots          []Slot    // Список слотов (включая недоступные)
}

// Slot модель временного слота
// Времена абсолютные (дата + время), форматирование - на уровне HTTP
type Slot struct {
	StartTime       time.Time // Абсолютное время начала слота
	EndTime         time.Time // Абсолютное время окончания слота
	DurationMinutes int       // Длительность слота в минутах
	Available       bool      // Доступен ли слот для бронирования
}

// fromEngineResult конвертирует результат движка в Response
func fromEngineResult(req *Request, salonID int64, mode domain.SchedulingMode, result *availability.Result) *Response {
	slots := make([]Slot, 0, len(result.Slots))
	for _, s := range result.Slots {
		slots = append(slots, Slot{
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: int(s.Duration().Minutes()),
			Available:       s.Available,
		})
	}

	return &Response{
		Date:           req.Date,
		SalonID:        salonID,
		StaffID:        req.StaffID,
		ServiceID:      req.ServiceID,
		SchedulingMode: string(mode),
		Closed:         result.Closed,
		TotalSlots:     result.TotalSlots,
		AvailableCount: result.AvailableCount,
		Slots:          slots,
	}
}
