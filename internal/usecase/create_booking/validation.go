package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/availability"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Заметки ограничены по длине
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingNotice проверяет, что начало слота не раньше now + minNoticeHours
// Начало ровно на границе допустимо
func validateBookingNotice(startAt time.Time, now time.Time, minNoticeHours int) error {
	minStart := now.Add(time.Duration(minNoticeHours) * time.Hour)
	if startAt.Before(minStart) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, minNoticeHours)
	}
	return nil
}

// validateServiceByStaff проверяет, что услуга выполняется указанным мастером
func validateServiceByStaff(service *salonservice.Service, staffID int64) error {
	for _, id := range service.StaffIDs {
		if id == staffID {
			return nil
		}
	}
	return ErrServiceNotByStaff
}

// validateSlotWithinWorkingHours проверяет, что слот целиком лежит в рабочих часах
// Конец слота ровно в закрытие допустим
func validateSlotWithinWorkingHours(day salonservice.DaySchedule, date time.Time, startAt, endAt time.Time) error {
	if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
		return ErrSalonClosed
	}

	openAt, err := timeOnDate(*day.OpenTime, date)
	if err != nil {
		return fmt.Errorf("%w: malformed open time %q", ErrInternal, *day.OpenTime)
	}

	closeAt, err := timeOnDate(*day.CloseTime, date)
	if err != nil {
		return fmt.Errorf("%w: malformed close time %q", ErrInternal, *day.CloseTime)
	}

	if startAt.Before(openAt) || endAt.After(closeAt) {
		return ErrInvalidTimeSlot
	}

	return nil
}

// validateSlotWithinRules проверяет, что слот целиком лежит в одном из открытых
// интервалов правил доступности на дату
// Правило-запрет или пустой набор правил означают закрытый день
func validateSlotWithinRules(rules []domain.AvailabilityRule, date time.Time, startAt, endAt time.Time) error {
	selected := selectRulesForDate(rules, date)
	if len(selected) == 0 {
		return ErrSalonClosed
	}

	for _, rule := range selected {
		if !rule.IsAvailable {
			return ErrSalonClosed
		}
	}

	for _, rule := range selected {
		ruleStart, err := rule.StartTime.OnDate(date)
		if err != nil {
			continue
		}
		ruleEnd, err := rule.EndTime.OnDate(date)
		if err != nil {
			continue
		}
		if !startAt.Before(ruleStart) && !endAt.After(ruleEnd) {
			return nil
		}
	}

	return ErrInvalidTimeSlot
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

// toIntervals конвертирует бронирования в занятые интервалы
func toIntervals(bookings []*domain.Booking) []availability.Interval {
	intervals := make([]availability.Interval, 0, len(bookings))

	for _, b := range bookings {
		start, err := b.StartTime.OnDate(b.BookingDate)
		if err != nil {
			continue
		}
		intervals = append(intervals, availability.Interval{
			Start:  start,
			End:    start.Add(time.Duration(b.DurationMinutes) * time.Minute),
			Status: b.Status,
		})
	}

	return intervals
}

// getWorkingHoursForDay возвращает расписание работы салона на указанный день недели
func getWorkingHoursForDay(salon *salonservice.Salon, date time.Time) salonservice.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return salon.WorkingHours.Monday
	case time.Tuesday:
		return salon.WorkingHours.Tuesday
	case time.Wednesday:
		return salon.WorkingHours.Wednesday
	case time.Thursday:
		return salon.WorkingHours.Thursday
	case time.Friday:
		return salon.WorkingHours.Friday
	case time.Saturday:
		return salon.WorkingHours.Saturday
	case time.Sunday:
		return salon.WorkingHours.Sunday
	default:
		return salonservice.DaySchedule{IsOpen: false}
	}
}

// timeOnDate парсит "HH:MM" и привязывает к дате
func timeOnDate(value string, date time.Time) (time.Time, error) {
	ts, err := types.NewTimeStringFromString(value)
	if err != nil {
		return time.Time{}, err
	}
	return ts.OnDate(date)
}

func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
