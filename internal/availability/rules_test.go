package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

func weeklyRule(dayOfWeek int, start, end string, available bool) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		DayOfWeek:   ptr.Ptr(dayOfWeek),
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsAvailable: available,
	}
}

func dateRule(date time.Time, start, end string, available bool) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		SpecificDate: ptr.Ptr(date),
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		IsAvailable:  available,
	}
}

func TestComputeRuleBased_SplitDay(t *testing.T) {
	// Два интервала на понедельник: 09:00-12:00 и 13:00-17:00,
	// услуга 30 минут, буфер 0 - слоты вплотную с шагом 30,
	// ни один не пересекает перерыв 12:00-13:00.
	engine := NewEngine()

	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "09:00", "12:00", true),
			weeklyRule(1, "13:00", "17:00", true),
		},
		DurationMinutes: 30,
		BufferMinutes:   0,
	})
	require.NoError(t, err)

	require.False(t, result.Closed)
	// 6 слотов в утреннем интервале + 8 в дневном
	require.Len(t, result.Slots, 14)

	gapStart := at(12, 0)
	gapEnd := at(13, 0)
	for _, slot := range result.Slots {
		assert.Equal(t, 30*time.Minute, slot.Duration())
		// Слот либо целиком до перерыва, либо целиком после
		assert.False(t, overlaps(slot.StartTime, slot.EndTime, gapStart, gapEnd),
			"slot %s crosses the midday gap", slot.StartTime)
	}

	// Последний утренний слот заканчивается ровно в 12:00
	assert.Equal(t, at(11, 30), result.Slots[5].StartTime)
	assert.Equal(t, at(12, 0), result.Slots[5].EndTime)
	// Дневной интервал начинается с 13:00
	assert.Equal(t, at(13, 0), result.Slots[6].StartTime)
}

func TestComputeRuleBased_BufferAsStep(t *testing.T) {
	// Буфер 15 задаёт шаг между слотами: 09:00, 09:15, 09:30
	// (09:45 + 30m = 10:15 выходит за конец интервала)
	engine := NewEngine()

	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "09:00", "10:00", true),
		},
		DurationMinutes: 30,
		BufferMinutes:   15,
	})
	require.NoError(t, err)

	require.Len(t, result.Slots, 3)
	assert.Equal(t, at(9, 0), result.Slots[0].StartTime)
	assert.Equal(t, at(9, 15), result.Slots[1].StartTime)
	assert.Equal(t, at(9, 30), result.Slots[2].StartTime)
	assert.Equal(t, at(10, 0), result.Slots[2].EndTime)
}

func TestComputeRuleBased_NoBufferPaddingOnBookings(t *testing.T) {
	// В режиме правил буфер НЕ расширяет занятые интервалы:
	// слот, граничащий с записью, остаётся доступным
	engine := NewEngine()

	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "09:00", "11:00", true),
		},
		Bookings: []Interval{
			booking(at(9, 30), at(10, 0), domain.StatusConfirmed),
		},
		DurationMinutes: 30,
		BufferMinutes:   0,
	})
	require.NoError(t, err)

	require.Len(t, result.Slots, 4)
	assert.True(t, result.Slots[0].Available)  // 09:00-09:30 граничит с записью
	assert.False(t, result.Slots[1].Available) // 09:30-10:00 пересекает
	assert.True(t, result.Slots[2].Available)  // 10:00-10:30 граничит
	assert.True(t, result.Slots[3].Available)
}

func TestComputeRuleBased_RawIntervalsNeverOverlapAvailable(t *testing.T) {
	// Свойство: доступный слот не пересекается ни с одной активной записью
	engine := NewEngine()

	bookings := []Interval{
		booking(at(9, 10), at(9, 40), domain.StatusPending),
		booking(at(10, 0), at(11, 0), domain.StatusConfirmed),
		booking(at(14, 0), at(15, 0), domain.StatusCompleted),
	}

	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "09:00", "17:00", true),
		},
		Bookings:        bookings,
		DurationMinutes: 45,
		BufferMinutes:   15,
	})
	require.NoError(t, err)

	for _, slot := range result.AvailableSlots() {
		for _, b := range bookings {
			assert.False(t, overlaps(slot.StartTime, slot.EndTime, b.Start, b.End))
		}
	}
}

func TestComputeRuleBased_CompletedBlocksButCancelledDoesNot(t *testing.T) {
	// В режиме правил календарь занимает всё, кроме отмен и неявок:
	// завершённая запись блокирует слот, отменённая - нет
	engine := NewEngine()

	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "09:00", "11:00", true),
		},
		Bookings: []Interval{
			booking(at(9, 0), at(9, 30), domain.StatusCompleted),
			booking(at(10, 0), at(10, 30), domain.StatusCancelled),
			booking(at(10, 30), at(11, 0), domain.StatusNoShow),
		},
		DurationMinutes: 30,
		BufferMinutes:   0,
	})
	require.NoError(t, err)

	require.Len(t, result.Slots, 4)
	assert.False(t, result.Slots[0].Available) // занят завершённой записью
	assert.True(t, result.Slots[1].Available)
	assert.True(t, result.Slots[2].Available) // отмена не блокирует
	assert.True(t, result.Slots[3].Available) // неявка не блокирует
}

func TestComputeRuleBased_DateOverridePrecedence(t *testing.T) {
	engine := NewEngine()

	// Еженедельное правило открывает понедельник,
	// но переопределение на дату сдвигает часы
	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "09:00", "18:00", true),
			dateRule(monday, "12:00", "14:00", true),
		},
		DurationMinutes: 60,
		BufferMinutes:   0,
	})
	require.NoError(t, err)

	// Слоты только из окна переопределения: 12:00 и 13:00
	require.Len(t, result.Slots, 2)
	assert.Equal(t, at(12, 0), result.Slots[0].StartTime)
	assert.Equal(t, at(13, 0), result.Slots[1].StartTime)
}

func TestComputeRuleBased_ClosedByDateOverride(t *testing.T) {
	engine := NewEngine()

	// Правило-запрет на дату закрывает день, несмотря на еженедельное правило
	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "09:00", "18:00", true),
			dateRule(monday, "00:00", "23:59", false),
		},
		Bookings: []Interval{
			booking(at(10, 0), at(11, 0), domain.StatusConfirmed),
		},
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.True(t, result.Closed)
	assert.Empty(t, result.Slots)
}

func TestComputeRuleBased_EmptyRuleSet(t *testing.T) {
	engine := NewEngine()

	// Отсутствие правил - закрытый день, а не ошибка
	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date:            monday,
		Rules:           nil,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.True(t, result.Closed)
	assert.Empty(t, result.Slots)
}

func TestComputeRuleBased_NoMatchingDay(t *testing.T) {
	engine := NewEngine()

	// Правило только на вторник - понедельник закрыт
	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(2, "09:00", "18:00", true),
		},
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.True(t, result.Closed)
}

func TestComputeRuleBased_OverlappingRulesKeepDuplicates(t *testing.T) {
	engine := NewEngine()

	// Пересекающиеся правила дают дублирующиеся интервалы - это допустимо,
	// важен только порядок по возрастанию начала
	result, err := engine.ComputeRuleBased(RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "09:00", "10:00", true),
			weeklyRule(1, "09:00", "10:00", true),
		},
		DurationMinutes: 60,
		BufferMinutes:   0,
	})
	require.NoError(t, err)

	require.Len(t, result.Slots, 2)
	assert.Equal(t, result.Slots[0].StartTime, result.Slots[1].StartTime)

	for i := 1; i < len(result.Slots); i++ {
		assert.False(t, result.Slots[i].StartTime.Before(result.Slots[i-1].StartTime))
	}
}

func TestComputeRuleBased_InvalidInput(t *testing.T) {
	engine := NewEngine()

	_, err := engine.ComputeRuleBased(RuleBasedInput{
		Date:            monday,
		DurationMinutes: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = engine.ComputeRuleBased(RuleBasedInput{
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeRuleBased_Deterministic(t *testing.T) {
	engine := NewEngine()

	input := RuleBasedInput{
		Date: monday,
		Rules: []domain.AvailabilityRule{
			weeklyRule(1, "13:00", "17:00", true),
			weeklyRule(1, "09:00", "12:00", true),
		},
		Bookings: []Interval{
			booking(at(9, 30), at(10, 15), domain.StatusConfirmed),
		},
		DurationMinutes: 45,
		BufferMinutes:   15,
	}

	first, err := engine.ComputeRuleBased(input)
	require.NoError(t, err)
	second, err := engine.ComputeRuleBased(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHasConflict_ModeDifferences(t *testing.T) {
	bookings := []Interval{
		booking(at(10, 0), at(11, 0), domain.StatusConfirmed),
	}

	// Кандидат 09:00-10:00 граничит с записью:
	// без буфера конфликта нет, буфер 15 в режиме сетки его создаёт
	assert.False(t, HasConflict(domain.SchedulingModeFixedGrid, at(9, 0), at(10, 0), 0, bookings))
	assert.True(t, HasConflict(domain.SchedulingModeFixedGrid, at(9, 0), at(10, 0), 15, bookings))
	assert.False(t, HasConflict(domain.SchedulingModeRuleBased, at(9, 0), at(10, 0), 15, bookings))

	// Завершённая запись учитывается только в режиме правил
	finished := []Interval{
		booking(at(10, 0), at(11, 0), domain.StatusCompleted),
	}
	assert.False(t, HasConflict(domain.SchedulingModeFixedGrid, at(10, 0), at(10, 30), 0, finished))
	assert.True(t, HasConflict(domain.SchedulingModeRuleBased, at(10, 0), at(10, 30), 0, finished))
}
