package domain

// Default configuration values
const (
	DefaultSchedulingMode        = SchedulingModeFixedGrid
	DefaultBufferMinutes         = 0
	DefaultMinBookingNoticeHours = 2
	DefaultAdvanceBookingDays    = 0 // 0 = unlimited
)

// GridStepMinutes фиксированный шаг сетки слотов в режиме fixed_grid
const GridStepMinutes = 30

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 120
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinNoticeHours              = 0
	MaxNoticeHours              = 168 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих календарь
// Используется для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// CommittedStatuses список статусов, занимающих календарь в режиме fixed_grid
var CommittedStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
