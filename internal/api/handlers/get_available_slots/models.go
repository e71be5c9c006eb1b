package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string          `json:"date"`
	SalonID        int64           `json:"salonId"`
	StaffID        *int64          `json:"staffId,omitempty"`
	ServiceID      int64           `json:"serviceId"`
	SchedulingMode string          `json:"schedulingMode"`
	Closed         bool            `json:"closed"`
	TotalSlots     int             `json:"totalSlots"`
	AvailableCount int             `json:"availableCount"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
// Времена отдаются как абсолютные метки RFC3339 в UTC
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Отдаются только доступные слоты: недоступные кандидаты клиенту не нужны,
// агрегаты totalSlots/availableCount сохраняют полную картину
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, 0, resp.AvailableCount)
	for _, slot := range resp.Slots {
		if !slot.Available {
			continue
		}
		slots = append(slots, AvailableSlot{
			StartTime:       slot.StartTime.UTC().Format(time.RFC3339),
			EndTime:         slot.EndTime.UTC().Format(time.RFC3339),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		SalonID:        resp.SalonID,
		StaffID:        resp.StaffID,
		ServiceID:      resp.ServiceID,
		SchedulingMode: resp.SchedulingMode,
		Closed:         resp.Closed,
		TotalSlots:     resp.TotalSlots,
		AvailableCount: resp.AvailableCount,
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута и query
// Мастер опционален, парсинг staffId выполняется на уровне handler-а
func ToUseCaseRequest(salonID int64, serviceID int64, staffID *int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID:   salonID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
