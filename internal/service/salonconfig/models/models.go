package models

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// Request модели

// CreateConfigRequest запрос на создание конфигурации слотов
type CreateConfigRequest struct {
	UserID                int64  `json:"userId"`
	SalonID               int64  `json:"salonId"`
	StaffID               *int64 `json:"staffId,omitempty"`   // NULL = для всех мастеров
	ServiceID             *int64 `json:"serviceId,omitempty"` // NULL = для всех услуг
	SchedulingMode        string `json:"schedulingMode"`      // fixed_grid | rule_based
	BufferMinutes         int    `json:"bufferMinutes"`
	MinBookingNoticeHours int    `json:"minBookingNoticeHours"`
	AdvanceBookingDays    int    `json:"advanceBookingDays"` // 0 = без ограничений
}

// UpdateConfigRequest запрос на обновление конфигурации слотов
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	UserID                int64   `json:"userId"`
	SchedulingMode        *string `json:"schedulingMode,omitempty"`
	BufferMinutes         *int    `json:"bufferMinutes,omitempty"`
	MinBookingNoticeHours *int    `json:"minBookingNoticeHours,omitempty"`
	AdvanceBookingDays    *int    `json:"advanceBookingDays,omitempty"`
}

// GetConfigRequest запрос на получение конфигурации (для иерархического поиска)
// StaffID и ServiceID могут быть nil для иерархического поиска
type GetConfigRequest struct {
	SalonID   int64  `json:"salonId"`
	StaffID   *int64 `json:"staffId,omitempty"`   // nil означает любой мастер
	ServiceID *int64 `json:"serviceId,omitempty"` // nil означает любая услуга
}

// Response модели

// ConfigResponse ответ с данными конфигурации слотов
type ConfigResponse struct {
	ID                    int64     `json:"id"`
	SalonID               int64     `json:"salonId"`
	StaffID               *int64    `json:"staffId,omitempty"`
	ServiceID             *int64    `json:"serviceId,omitempty"`
	SchedulingMode        string    `json:"schedulingMode"`
	BufferMinutes         int       `json:"bufferMinutes"`
	MinBookingNoticeHours int       `json:"minBookingNoticeHours"`
	AdvanceBookingDays    int       `json:"advanceBookingDays"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SalonSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                    c.ID,
		SalonID:               c.SalonID,
		StaffID:               c.StaffID,
		ServiceID:             c.ServiceID,
		SchedulingMode:        string(c.SchedulingMode),
		BufferMinutes:         c.BufferMinutes,
		MinBookingNoticeHours: c.MinBookingNoticeHours,
		AdvanceBookingDays:    c.AdvanceBookingDays,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.SalonSlotsConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}

// ToDomainConfig конвертирует CreateConfigRequest в domain модель
func (r *CreateConfigRequest) ToDomainConfig() *domain.SalonSlotsConfig {
	return &domain.SalonSlotsConfig{
		SalonID:               r.SalonID,
		StaffID:               r.StaffID,
		ServiceID:             r.ServiceID,
		SchedulingMode:        domain.SchedulingMode(r.SchedulingMode),
		BufferMinutes:         r.BufferMinutes,
		MinBookingNoticeHours: r.MinBookingNoticeHours,
		AdvanceBookingDays:    r.AdvanceBookingDays,
	}
}

// ApplyToConfig применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.SalonSlotsConfig) {
	if r.SchedulingMode != nil {
		config.SchedulingMode = domain.SchedulingMode(*r.SchedulingMode)
	}
	if r.BufferMinutes != nil {
		config.BufferMinutes = *r.BufferMinutes
	}
	if r.MinBookingNoticeHours != nil {
		config.MinBookingNoticeHours = *r.MinBookingNoticeHours
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
}
