package availabilityrules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	ruleRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/availabilityrule"
	salonClient "github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/internal/service/availabilityrules/models"
)

// Service сервис для работы с правилами доступности
type Service struct {
	ruleRepo    RuleRepository
	salonClient SalonServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил доступности
func NewService(
	ruleRepo RuleRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:    ruleRepo,
		salonClient: salonClient,
		logger:      logger,
	}
}

// Create создает новое правило доступности
// Доступно только менеджерам салона
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating rule for salon=%d, staff=%v by user=%d",
		req.SalonID, req.StaffID, req.UserID)

	// 1. Конвертируем и парсим входные данные
	rule, err := req.ToDomainRule()
	if err != nil {
		s.logger.Warn("Create: invalid rule data for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Валидируем правило
	if err := s.validateRule(rule); err != nil {
		s.logger.Warn("Create: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	// 3. Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("Create: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Create: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Проверяем права доступа (только менеджер салона)
	if !salon.IsManager(req.UserID) {
		s.logger.Warn("Create: user=%d is not a manager of salon=%d", req.UserID, req.SalonID)
		return nil, ErrAccessDenied
	}

	// 5. Если указан staffID, проверяем его существование
	if req.StaffID != nil {
		if _, err := s.salonClient.GetStaff(ctx, req.SalonID, *req.StaffID); err != nil {
			if errors.Is(err, salonClient.ErrStaffNotFound) {
				s.logger.Warn("Create: staff id=%d not found in salon=%d", *req.StaffID, req.SalonID)
				return nil, ErrStaffNotFound
			}
			s.logger.Error("Create: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	// 6. Создаем правило
	createdRule, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created rule id=%d", createdRule.ID)
	return models.FromDomainRule(createdRule), nil
}

// List получает правила доступности салона
// Публичный метод - используется и менеджерами, и при вычислении слотов
func (s *Service) List(ctx context.Context, req *models.ListRulesRequest) (*models.RuleListResponse, error) {
	s.logger.Info("List: fetching rules for salon=%d, staff=%v", req.SalonID, req.StaffID)

	rules, err := s.ruleRepo.ListBySalon(ctx, req.SalonID, req.StaffID)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rules for salon=%d", len(rules), req.SalonID)
	return models.FromDomainRuleList(rules), nil
}

// Delete удаляет правило доступности по ID
// Доступно только менеджерам салона
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting rule id=%d by user=%d", id, userID)

	// 1. Получаем правило для проверки прав доступа
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// 2. Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, rule.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("Delete: salon id=%d not found", rule.SalonID)
			return ErrSalonNotFound
		}
		s.logger.Error("Delete: failed to get salon id=%d: %v", rule.SalonID, err)
		return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер салона)
	if !salon.IsManager(userID) {
		s.logger.Warn("Delete: user=%d is not a manager of salon=%d", userID, rule.SalonID)
		return ErrAccessDenied
	}

	// 4. Удаляем правило
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found during deletion", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted rule id=%d", id)
	return nil
}

// Вспомогательные методы

// validateRule валидирует правило доступности
func (s *Service) validateRule(rule *domain.AvailabilityRule) error {
	// Ровно одно из двух: день недели или конкретная дата
	if rule.DayOfWeek == nil && rule.SpecificDate == nil {
		return fmt.Errorf("%w: either dayOfWeek or specificDate must be set", ErrInvalidInput)
	}
	if rule.DayOfWeek != nil && rule.SpecificDate != nil {
		return fmt.Errorf("%w: dayOfWeek and specificDate are mutually exclusive", ErrInvalidInput)
	}

	// День недели в диапазоне 0-6 (воскресенье = 0)
	if rule.DayOfWeek != nil && (*rule.DayOfWeek < 0 || *rule.DayOfWeek > 6) {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	// Начало интервала должно быть раньше конца
	if !rule.StartTime.IsBefore(rule.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}
