package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/availability"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// toWeekSchedule конвертирует рабочие часы из SalonService в расписание движка
func toWeekSchedule(wh salonservice.WorkingHours) (availability.WeekSchedule, error) {
	var schedule availability.WeekSchedule
	var err error

	days := []struct {
		src salonservice.DaySchedule
		dst *availability.DaySchedule
	}{
		{wh.Monday, &schedule.Monday},
		{wh.Tuesday, &schedule.Tuesday},
		{wh.Wednesday, &schedule.Wednesday},
		{wh.Thursday, &schedule.Thursday},
		{wh.Friday, &schedule.Friday},
		{wh.Saturday, &schedule.Saturday},
		{wh.Sunday, &schedule.Sunday},
	}

	for _, d := range days {
		*d.dst, err = toDaySchedule(d.src)
		if err != nil {
			return schedule, err
		}
	}

	return schedule, nil
}

// toDaySchedule конвертирует расписание одного дня с парсингом времени
func toDaySchedule(day salonservice.DaySchedule) (availability.DaySchedule, error) {
	if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
		return availability.DaySchedule{IsOpen: false}, nil
	}

	openTime, err := types.NewTimeStringFromString(*day.OpenTime)
	if err != nil {
		return availability.DaySchedule{}, fmt.Errorf("malformed open time %q: %w", *day.OpenTime, err)
	}

	closeTime, err := types.NewTimeStringFromString(*day.CloseTime)
	if err != nil {
		return availability.DaySchedule{}, fmt.Errorf("malformed close time %q: %w", *day.CloseTime, err)
	}

	return availability.DaySchedule{
		IsOpen:    true,
		OpenTime:  &openTime,
		CloseTime: &closeTime,
	}, nil
}

// toIntervals конвертирует бронирования в занятые интервалы на дату
// Бронирования с некорректным временем пропускаются - они не должны
// блокировать выдачу слотов целиком
func toIntervals(bookings []*domain.Booking, logger Logger) []availability.Interval {
	intervals := make([]availability.Interval, 0, len(bookings))

	for _, b := range bookings {
		start, err := b.StartTime.OnDate(b.BookingDate)
		if err != nil {
			logger.Warn("toIntervals: booking id=%d has malformed start time %q, skipped", b.ID, b.StartTime)
			continue
		}

		intervals = append(intervals, availability.Interval{
			Start:  start,
			End:    start.Add(minutes(b.DurationMinutes)),
			Status: b.Status,
		})
	}

	return intervals
}

func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
