package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// FixedGridInput входные данные режима фиксированной сетки
type FixedGridInput struct {
	Date            time.Time    // дата, на которую вычисляются слоты
	Hours           WeekSchedule // рабочие часы салона по дням недели
	Bookings        []Interval   // снимок существующих записей на дату
	DurationMinutes int          // длительность услуги
	BufferMinutes   int          // пауза вокруг существующих записей
	MinNoticeHours  int          // минимальное время от Now до начала слота
	Now             time.Time    // текущее время (передается явно)
}

// ComputeFixedGrid вычисляет слоты по фиксированной сетке.
//
// Кандидаты генерируются от открытия салона с шагом domain.GridStepMinutes.
// Кандидат, конец которого выходит за время закрытия, не генерируется вовсе.
// Кандидат, начинающийся раньше Now + MinNoticeHours, генерируется, но
// помечается недоступным (начало ровно на границе - доступно).
// Остальные кандидаты проверяются на пересечение с записями в статусах
// pending/confirmed, расширенными буфером с обеих сторон.
func (e *Engine) ComputeFixedGrid(in FixedGridInput) (*Result, error) {
	if err := validateInput(in.Date, in.DurationMinutes); err != nil {
		return nil, err
	}

	day := in.Hours.ForDate(in.Date)
	if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
		return &Result{Closed: true, Slots: []domain.SlotCandidate{}}, nil
	}

	openAt, err := day.OpenTime.OnDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed open time %q", ErrInvalidInput, *day.OpenTime)
	}

	closeAt, err := day.CloseTime.OnDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed close time %q", ErrInvalidInput, *day.CloseTime)
	}

	var (
		step     = domain.GridStepMinutes * time.Minute
		duration = time.Duration(in.DurationMinutes) * time.Minute
		minStart = in.Now.Add(time.Duration(in.MinNoticeHours) * time.Hour)
	)

	slots := make([]domain.SlotCandidate, 0)

	for start := openAt; ; start = start.Add(step) {
		end := start.Add(duration)
		// Конец ровно в закрытие допустим, позже - слот не генерируется
		if end.After(closeAt) {
			break
		}

		available := true
		if start.Before(minStart) {
			available = false
		} else if HasConflict(domain.SchedulingModeFixedGrid, start, end, in.BufferMinutes, in.Bookings) {
			available = false
		}

		slots = append(slots, domain.SlotCandidate{
			StartTime: start,
			EndTime:   end,
			Available: available,
		})
	}

	return &Result{
		Slots:          slots,
		TotalSlots:     len(slots),
		AvailableCount: countAvailable(slots),
	}, nil
}
