package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// RuleBasedInput входные данные режима правил доступности
type RuleBasedInput struct {
	Date            time.Time                 // дата, на которую вычисляются слоты
	Rules           []domain.AvailabilityRule // все правила салона/мастера
	Bookings        []Interval                // снимок существующих записей на дату
	DurationMinutes int                       // длительность услуги
	BufferMinutes   int                       // шаг между слотами (0 = слоты вплотную)
}

// ComputeRuleBased вычисляет слоты по правилам доступности.
//
// Выбор правил: правила на конкретную дату имеют приоритет над еженедельными;
// если среди выбранных есть правило с IsAvailable = false - день закрыт.
// Пустой набор правил означает закрытый день, а не ошибку.
//
// Внутри каждого открытого интервала слоты идут с шагом BufferMinutes
// (если он положителен), иначе вплотную с шагом DurationMinutes.
// Занятость проверяется обычным пересечением без расширения буфером -
// в отличие от режима сетки (см. комментарий к пакету).
// Пересекающиеся правила могут дать дублирующиеся интервалы,
// дедупликация не выполняется; итог отсортирован по возрастанию начала.
func (e *Engine) ComputeRuleBased(in RuleBasedInput) (*Result, error) {
	if err := validateInput(in.Date, in.DurationMinutes); err != nil {
		return nil, err
	}

	selected := selectRulesForDate(in.Rules, in.Date)
	if len(selected) == 0 {
		return &Result{Closed: true, Slots: []domain.SlotCandidate{}}, nil
	}

	// Правило-запрет закрывает день целиком, остальные правила не важны
	for _, rule := range selected {
		if !rule.IsAvailable {
			return &Result{Closed: true, Slots: []domain.SlotCandidate{}}, nil
		}
	}

	stepMinutes := in.BufferMinutes
	if stepMinutes <= 0 {
		stepMinutes = in.DurationMinutes
	}

	var (
		step     = time.Duration(stepMinutes) * time.Minute
		duration = time.Duration(in.DurationMinutes) * time.Minute
	)

	// Сортируем правила по времени начала для детерминированного обхода
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].StartTime.IsBefore(selected[j].StartTime)
	})

	slots := make([]domain.SlotCandidate, 0)

	for _, rule := range selected {
		ruleStart, err := rule.StartTime.OnDate(in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed rule start time %q", ErrInvalidInput, rule.StartTime)
		}

		ruleEnd, err := rule.EndTime.OnDate(in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed rule end time %q", ErrInvalidInput, rule.EndTime)
		}

		// Конец слота ровно в конец интервала допустим
		for start := ruleStart; !start.Add(duration).After(ruleEnd); start = start.Add(step) {
			end := start.Add(duration)
			available := !HasConflict(domain.SchedulingModeRuleBased, start, end, 0, in.Bookings)

			slots = append(slots, domain.SlotCandidate{
				StartTime: start,
				EndTime:   end,
				Available: available,
			})
		}
	}

	// Интервалы разных правил могут чередоваться и пересекаться
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})

	return &Result{
		Slots:          slots,
		TotalSlots:     len(slots),
		AvailableCount: countAvailable(slots),
	}, nil
}

// selectRulesForDate выбирает правила, действующие на дату
// Переопределения на конкретную дату вытесняют еженедельные правила
func selectRulesForDate(rules []domain.AvailabilityRule, date time.Time) []domain.AvailabilityRule {
	overrides := make([]domain.AvailabilityRule, 0)
	weekly := make([]domain.AvailabilityRule, 0)

	for _, rule := range rules {
		if !rule.AppliesTo(date) {
			continue
		}
		if rule.IsDateOverride() {
			overrides = append(overrides, rule)
		} else {
			weekly = append(weekly, rule)
		}
	}

	if len(overrides) > 0 {
		return overrides
	}
	return weekly
}
