// Package availability чистый движок вычисления доступных слотов.
//
// Движок не обращается к БД и к системным часам: снимок занятых интервалов
// и текущее время передаются явно, поэтому результат полностью
// детерминирован для одинаковых входных данных.
//
// Поддерживаются два режима:
//   - фиксированная сетка по рабочим часам салона (ComputeFixedGrid);
//   - слоты по правилам доступности мастера/салона (ComputeRuleBased).
//
// Режимы намеренно различаются: сетка идёт с шагом 30 минут и расширяет
// занятые интервалы буфером, режим правил шагает на буфер (или на
// длительность услуги) и буфер к занятым интервалам НЕ применяет.
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Interval занятый интервал существующей записи
type Interval struct {
	Start  time.Time
	End    time.Time
	Status domain.BookingStatus
}

// Result результат генерации слотов
type Result struct {
	// Closed день полностью закрыт (нет рабочих часов или правило-запрет)
	// Отличается от "нет свободных слотов": Slots при Closed всегда пуст
	Closed bool

	// Slots все сгенерированные кандидаты в порядке возрастания StartTime,
	// включая недоступные
	Slots []domain.SlotCandidate

	// TotalSlots количество сгенерированных кандидатов
	TotalSlots int

	// AvailableCount количество доступных кандидатов
	AvailableCount int
}

// AvailableSlots возвращает только доступные кандидаты
func (r *Result) AvailableSlots() []domain.SlotCandidate {
	slots := make([]domain.SlotCandidate, 0, r.AvailableCount)
	for _, s := range r.Slots {
		if s.Available {
			slots = append(slots, s)
		}
	}
	return slots
}

// DaySchedule рабочие часы салона на один день недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// WeekSchedule таблица рабочих часов по дням недели
type WeekSchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForDate возвращает расписание на день недели указанной даты
func (w WeekSchedule) ForDate(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Engine движок вычисления слотов (stateless, безопасен для конкурентного использования)
type Engine struct{}

// NewEngine создает новый экземпляр движка
func NewEngine() *Engine {
	return &Engine{}
}

// validateInput общая валидация входных данных обоих режимов
// Длительность и дата обязательны: молчаливый дефолт испортил бы все слоты ниже по течению
func validateInput(date time.Time, durationMinutes int) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive, got %d", ErrInvalidInput, durationMinutes)
	}
	return nil
}

// overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Строгие неравенства: граничащие интервалы пересечением не считаются
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict проверяет пересечение кандидата [start, end) с занятыми интервалами
// с учетом режима: в fixed_grid занятые интервалы расширяются буфером с обеих
// сторон и учитываются только pending/confirmed, в rule_based буфер не
// применяется и учитывается всё, кроме отмен и неявок.
// Используется при создании бронирования для финальной проверки слота.
func HasConflict(mode domain.SchedulingMode, start, end time.Time, bufferMinutes int, bookings []Interval) bool {
	buffer := time.Duration(bufferMinutes) * time.Minute

	for _, b := range bookings {
		switch mode {
		case domain.SchedulingModeFixedGrid:
			if !b.Status.IsCommitted() {
				continue
			}
			if overlaps(start, end, b.Start.Add(-buffer), b.End.Add(buffer)) {
				return true
			}
		default:
			if !b.Status.IsActive() {
				continue
			}
			if overlaps(start, end, b.Start, b.End) {
				return true
			}
		}
	}

	return false
}

func countAvailable(slots []domain.SlotCandidate) int {
	count := 0
	for _, s := range slots {
		if s.Available {
			count++
		}
	}
	return count
}
