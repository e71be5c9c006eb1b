package domain

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// AvailabilityRule правило доступности салона или конкретного мастера
// Правило либо повторяется еженедельно (задан DayOfWeek),
// либо действует на конкретную дату (задан SpecificDate) - взаимоисключающе.
// Дата-специфичные правила имеют приоритет над еженедельными,
// а правило с IsAvailable = false полностью закрывает день.
type AvailabilityRule struct {
	ID           int64
	SalonID      int64
	StaffID      *int64     // NULL = правило салона целиком
	DayOfWeek    *int       // 0-6, воскресенье = 0
	SpecificDate *time.Time // разовое переопределение на конкретную дату
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDateOverride returns true if the rule applies to one specific date
func (r *AvailabilityRule) IsDateOverride() bool {
	return r.SpecificDate != nil
}

// AppliesTo returns true if the rule is in effect on the given date
// Дата-специфичное правило срабатывает только на свою дату,
// еженедельное - на совпадающий день недели
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	if r.SpecificDate != nil {
		y1, m1, d1 := r.SpecificDate.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	if r.DayOfWeek != nil {
		return *r.DayOfWeek == int(date.Weekday())
	}
	return false
}
