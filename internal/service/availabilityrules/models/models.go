package models

import (
	"errors"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")
)

// Request модели

// CreateRuleRequest запрос на создание правила доступности
// Задаётся либо dayOfWeek (еженедельное правило), либо specificDate
// (разовое переопределение) - ровно одно из двух
type CreateRuleRequest struct {
	UserID       int64   `json:"userId"`
	SalonID      int64   `json:"salonId"`
	StaffID      *int64  `json:"staffId,omitempty"`      // NULL = правило салона целиком
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`    // 0-6, воскресенье = 0
	SpecificDate *string `json:"specificDate,omitempty"` // "2025-10-15"
	StartTime    string  `json:"startTime"`              // "09:00"
	EndTime      string  `json:"endTime"`                // "17:00"
	IsAvailable  bool    `json:"isAvailable"`
}

// ToDomainRule конвертирует request в domain модель с парсингом дат и времени
func (r *CreateRuleRequest) ToDomainRule() (*domain.AvailabilityRule, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	rule := &domain.AvailabilityRule{
		SalonID:     r.SalonID,
		StaffID:     r.StaffID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: r.IsAvailable,
	}

	if r.SpecificDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.SpecificDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		rule.SpecificDate = &date
	}

	return rule, nil
}

// ListRulesRequest запрос на получение правил доступности салона
type ListRulesRequest struct {
	SalonID int64  `json:"salonId"`
	StaffID *int64 `json:"staffId,omitempty"` // Фильтр по мастеру (опционально)
}

// Response модели

// RuleResponse ответ с данными правила доступности
type RuleResponse struct {
	ID           int64     `json:"id"`
	SalonID      int64     `json:"salonId"`
	StaffID      *int64    `json:"staffId,omitempty"`
	DayOfWeek    *int      `json:"dayOfWeek,omitempty"`
	SpecificDate *string   `json:"specificDate,omitempty"` // "2025-10-15"
	StartTime    string    `json:"startTime"`              // "09:00"
	EndTime      string    `json:"endTime"`                // "17:00"
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил доступности
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:          r.ID,
		SalonID:     r.SalonID,
		StaffID:     r.StaffID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.SpecificDate != nil {
		dateStr := r.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &dateStr
	}

	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	if rules == nil {
		return &RuleListResponse{
			Rules: []RuleResponse{},
		}
	}

	resp := &RuleListResponse{
		Rules: make([]RuleResponse, len(rules)),
	}

	for i, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules[i] = *ruleResp
		}
	}

	return resp
}
