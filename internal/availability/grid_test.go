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

// monday 2025-06-02 - понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func openDay(open, close string) DaySchedule {
	return DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(types.TimeString(open)),
		CloseTime: ptr.Ptr(types.TimeString(close)),
	}
}

func mondayHours(open, close string) WeekSchedule {
	return WeekSchedule{Monday: openDay(open, close)}
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func booking(start, end time.Time, status domain.BookingStatus) Interval {
	return Interval{Start: start, End: end, Status: status}
}

func TestComputeFixedGrid_NoBookings(t *testing.T) {
	// Салон открыт пн 09:00-18:00, услуга 60 минут, буфер 15,
	// минимальное уведомление 2 часа, сейчас пн 08:00.
	// Первый доступный слот - 10:00 (ровно now + 2h), последний - 17:00.
	engine := NewEngine()

	result, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:            monday,
		Hours:           mondayHours("09:00", "18:00"),
		Bookings:        nil,
		DurationMinutes: 60,
		BufferMinutes:   15,
		MinNoticeHours:  2,
		Now:             at(8, 0),
	})
	require.NoError(t, err)

	require.False(t, result.Closed)
	// Сетка 30 минут: 09:00, 09:30, ..., 17:00 (17:00+60m = 18:00 = закрытие)
	require.Len(t, result.Slots, 17)
	assert.Equal(t, 17, result.TotalSlots)

	// 09:00 и 09:30 раньше 10:00 - сгенерированы, но недоступны
	assert.False(t, result.Slots[0].Available)
	assert.False(t, result.Slots[1].Available)
	assert.Equal(t, 15, result.AvailableCount)

	available := result.AvailableSlots()
	require.NotEmpty(t, available)
	assert.Equal(t, at(10, 0), available[0].StartTime)
	assert.Equal(t, at(17, 0), available[len(available)-1].StartTime)
	assert.Equal(t, at(18, 0), available[len(available)-1].EndTime)
}

func TestComputeFixedGrid_SlotLengthEqualsDuration(t *testing.T) {
	engine := NewEngine()

	result, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:            monday,
		Hours:           mondayHours("09:00", "18:00"),
		DurationMinutes: 45,
		Now:             at(0, 0),
	})
	require.NoError(t, err)

	for _, slot := range result.Slots {
		assert.Equal(t, 45*time.Minute, slot.Duration())
	}
}

func TestComputeFixedGrid_BufferPadding(t *testing.T) {
	// Запись 10:00-11:00 с буфером 15 расширяется до [09:45, 11:15).
	// Любой кандидат, пересекающий этот интервал, недоступен.
	engine := NewEngine()

	result, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:  monday,
		Hours: mondayHours("09:00", "18:00"),
		Bookings: []Interval{
			booking(at(10, 0), at(11, 0), domain.StatusConfirmed),
		},
		DurationMinutes: 60,
		BufferMinutes:   15,
		MinNoticeHours:  0,
		Now:             monday.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	unavailable := map[string]bool{}
	for _, slot := range result.Slots {
		if !slot.Available {
			unavailable[slot.StartTime.Format("15:04")] = true
		}
	}

	// 09:00-10:00 пересекает [09:45, 11:15), как и все старты до 11:00 включительно
	assert.Equal(t, map[string]bool{
		"09:00": true,
		"09:30": true,
		"10:00": true,
		"10:30": true,
		"11:00": true,
	}, unavailable)

	// 11:30-12:30 начинается после 11:15 - доступен
	for _, slot := range result.Slots {
		if slot.StartTime.Equal(at(11, 30)) {
			assert.True(t, slot.Available)
		}
	}
}

func TestComputeFixedGrid_PaddedIntervalsNeverOverlapAvailable(t *testing.T) {
	// Свойство: расширенный буфером интервал записи никогда
	// не пересекается с доступным слотом
	engine := NewEngine()

	bookings := []Interval{
		booking(at(10, 0), at(11, 0), domain.StatusConfirmed),
		booking(at(13, 15), at(14, 0), domain.StatusPending),
	}

	const bufferMinutes = 15

	result, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:            monday,
		Hours:           mondayHours("09:00", "18:00"),
		Bookings:        bookings,
		DurationMinutes: 30,
		BufferMinutes:   bufferMinutes,
		Now:             monday.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	buffer := bufferMinutes * time.Minute
	for _, slot := range result.AvailableSlots() {
		for _, b := range bookings {
			assert.False(t, overlaps(slot.StartTime, slot.EndTime, b.Start.Add(-buffer), b.End.Add(buffer)),
				"available slot %s overlaps padded booking %s", slot.StartTime, b.Start)
		}
	}
}

func TestComputeFixedGrid_CancelledAndNoShowDoNotBlock(t *testing.T) {
	engine := NewEngine()

	result, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:  monday,
		Hours: mondayHours("09:00", "12:00"),
		Bookings: []Interval{
			booking(at(9, 0), at(10, 0), domain.StatusCancelled),
			booking(at(10, 0), at(11, 0), domain.StatusNoShow),
			booking(at(11, 0), at(12, 0), domain.StatusCompleted),
		},
		DurationMinutes: 30,
		BufferMinutes:   15,
		Now:             monday.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	// В режиме сетки календарь занимают только pending/confirmed
	assert.Equal(t, result.TotalSlots, result.AvailableCount)
}

func TestComputeFixedGrid_MinNoticeBoundary(t *testing.T) {
	engine := NewEngine()

	input := FixedGridInput{
		Date:            monday,
		Hours:           mondayHours("09:00", "18:00"),
		DurationMinutes: 60,
		MinNoticeHours:  2,
	}

	findSlot := func(result *Result, start time.Time) domain.SlotCandidate {
		for _, slot := range result.Slots {
			if slot.StartTime.Equal(start) {
				return slot
			}
		}
		t.Fatalf("slot %s not found", start)
		return domain.SlotCandidate{}
	}

	// now + 2h = 10:00 ровно: слот 10:00 доступен
	input.Now = at(8, 0)
	result, err := engine.ComputeFixedGrid(input)
	require.NoError(t, err)
	assert.True(t, findSlot(result, at(10, 0)).Available)

	// На секунду позже: слот 10:00 уже недоступен
	input.Now = at(8, 0).Add(time.Second)
	result, err = engine.ComputeFixedGrid(input)
	require.NoError(t, err)
	assert.False(t, findSlot(result, at(10, 0)).Available)
}

func TestComputeFixedGrid_ClosedDay(t *testing.T) {
	engine := NewEngine()

	// Вторник не задан в таблице - салон закрыт, записи не важны
	tuesday := monday.AddDate(0, 0, 1)
	result, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:  tuesday,
		Hours: mondayHours("09:00", "18:00"),
		Bookings: []Interval{
			booking(at(10, 0), at(11, 0), domain.StatusConfirmed),
		},
		DurationMinutes: 60,
		Now:             at(8, 0),
	})
	require.NoError(t, err)

	assert.True(t, result.Closed)
	assert.Empty(t, result.Slots)
	assert.Equal(t, 0, result.TotalSlots)
}

func TestComputeFixedGrid_LastSlotEndsExactlyAtClose(t *testing.T) {
	engine := NewEngine()

	result, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:            monday,
		Hours:           mondayHours("09:00", "10:30"),
		DurationMinutes: 60,
		Now:             monday.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	// 09:00-10:00 и 09:30-10:30; старт 10:00 дал бы конец 11:00 > 10:30
	require.Len(t, result.Slots, 2)
	assert.Equal(t, at(9, 30), result.Slots[1].StartTime)
	assert.Equal(t, at(10, 30), result.Slots[1].EndTime)
}

func TestComputeFixedGrid_InvalidInput(t *testing.T) {
	engine := NewEngine()

	_, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:            monday,
		Hours:           mondayHours("09:00", "18:00"),
		DurationMinutes: 0,
		Now:             at(8, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = engine.ComputeFixedGrid(FixedGridInput{
		Date:            monday,
		Hours:           mondayHours("09:00", "18:00"),
		DurationMinutes: -30,
		Now:             at(8, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = engine.ComputeFixedGrid(FixedGridInput{
		Hours:           mondayHours("09:00", "18:00"),
		DurationMinutes: 30,
		Now:             at(8, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeFixedGrid_Deterministic(t *testing.T) {
	engine := NewEngine()

	input := FixedGridInput{
		Date:  monday,
		Hours: mondayHours("09:00", "18:00"),
		Bookings: []Interval{
			booking(at(12, 0), at(13, 0), domain.StatusPending),
			booking(at(9, 30), at(10, 0), domain.StatusConfirmed),
		},
		DurationMinutes: 30,
		BufferMinutes:   10,
		MinNoticeHours:  1,
		Now:             at(8, 0),
	}

	first, err := engine.ComputeFixedGrid(input)
	require.NoError(t, err)
	second, err := engine.ComputeFixedGrid(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeFixedGrid_AscendingOrder(t *testing.T) {
	engine := NewEngine()

	result, err := engine.ComputeFixedGrid(FixedGridInput{
		Date:            monday,
		Hours:           mondayHours("09:00", "18:00"),
		DurationMinutes: 30,
		Now:             at(8, 0),
	})
	require.NoError(t, err)

	for i := 1; i < len(result.Slots); i++ {
		assert.True(t, result.Slots[i-1].StartTime.Before(result.Slots[i].StartTime))
	}
}
