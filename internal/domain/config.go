package domain

import "time"

// SchedulingMode режим вычисления доступных слотов
type SchedulingMode string

const (
	// SchedulingModeFixedGrid фиксированная сетка с шагом 30 минут
	// по рабочим часам салона (таблица по дням недели)
	SchedulingModeFixedGrid SchedulingMode = "fixed_grid"

	// SchedulingModeRuleBased слоты по правилам доступности
	// (еженедельные интервалы и разовые переопределения на дату)
	SchedulingModeRuleBased SchedulingMode = "rule_based"
)

// IsValid проверяет, что режим известен
func (m SchedulingMode) IsValid() bool {
	return m == SchedulingModeFixedGrid || m == SchedulingModeRuleBased
}

// SalonSlotsConfig represents the booking configuration for a salon
// Supports hierarchical configuration:
// 1. Service by specific staff member (salon_id, staff_id, service_id)
// 2. Staff-wide (salon_id, staff_id, NULL)
// 3. Salon-wide (salon_id, NULL, NULL)
type SalonSlotsConfig struct {
	ID                    int64
	SalonID               int64
	StaffID               *int64 // NULL = config for all staff members
	ServiceID             *int64 // NULL = config for all services
	SchedulingMode        SchedulingMode
	BufferMinutes         int // обязательная пауза вокруг существующих записей
	MinBookingNoticeHours int // минимальное время от "сейчас" до начала слота
	AdvanceBookingDays    int // 0 = unlimited
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsGlobalConfig returns true if this is a salon-wide configuration
func (c *SalonSlotsConfig) IsGlobalConfig() bool {
	return c.StaffID == nil && c.ServiceID == nil
}

// IsStaffSpecific returns true if this configuration is for a specific staff member
func (c *SalonSlotsConfig) IsStaffSpecific() bool {
	return c.StaffID != nil && c.ServiceID == nil
}

// IsServiceSpecific returns true if this configuration is for a specific service
func (c *SalonSlotsConfig) IsServiceSpecific() bool {
	return c.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *SalonSlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
