package salonconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salonconfig"
	salonClient "github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig/models"
)

// Service сервис для работы с конфигурацией слотов
type Service struct {
	configRepo  ConfigRepository
	salonClient SalonServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		salonClient: salonClient,
		logger:      logger,
	}
}

// Create создает новую конфигурацию слотов
// Доступно только менеджерам салона
// Проверяет существование салона, мастера (если указан) и услуги (если указана)
func (s *Service) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Create: creating config for salon=%d, staff=%v, service=%v by user=%d",
		req.SalonID, req.StaffID, req.ServiceID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateConfigData(req.SchedulingMode, req.BufferMinutes,
		req.MinBookingNoticeHours, req.AdvanceBookingDays); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("Create: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Create: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер салона)
	if !salon.IsManager(req.UserID) {
		s.logger.Warn("Create: user=%d is not a manager of salon=%d", req.UserID, req.SalonID)
		return nil, ErrAccessDenied
	}

	// 4. Если указан staffID, проверяем его существование
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

	// 5. Если указан serviceID, проверяем его существование и привязку к мастеру
	if req.ServiceID != nil {
		service, err := s.salonClient.GetService(ctx, req.SalonID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, salonClient.ErrServiceNotFound) {
				s.logger.Warn("Create: service id=%d not found in salon=%d", *req.ServiceID, req.SalonID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Create: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// Если указан и мастер, и услуга - проверяем, что мастер выполняет эту услугу
		if req.StaffID != nil {
			if !s.serviceByStaff(service, *req.StaffID) {
				s.logger.Warn("Create: service id=%d is not provided by staff id=%d",
					*req.ServiceID, *req.StaffID)
				return nil, fmt.Errorf("%w: service is not provided by this staff member", ErrInvalidInput)
			}
		}
	}

	// 6. Проверяем, не существует ли уже конфигурация с такими параметрами
	existingConfig, err := s.configRepo.GetBySalonStaffAndService(ctx, req.SalonID, req.StaffID, req.ServiceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Create: failed to check existing config: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing config: %v", ErrInternal, err)
	}
	if existingConfig != nil {
		s.logger.Warn("Create: config already exists for salon=%d, staff=%v, service=%v",
			req.SalonID, req.StaffID, req.ServiceID)
		return nil, ErrConfigAlreadyExists
	}

	// 7. Создаем конфигурацию
	domainConfig := req.ToDomainConfig()
	createdConfig, err := s.configRepo.Create(ctx, domainConfig)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created config id=%d", createdConfig.ID)
	return models.FromDomainConfig(createdConfig), nil
}

// GetByID получает конфигурацию по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetByID: fetching config id=%d", id)

	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetByID: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetByID: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched config id=%d", id)
	return models.FromDomainConfig(config), nil
}

// GetWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Публичный метод - используется для получения актуальной конфигурации при бронировании
// Приоритет: service@staff > staff > service > global
func (s *Service) GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching config for salon=%d, staff=%v, service=%v",
		req.SalonID, req.StaffID, req.ServiceID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.SalonID, req.StaffID, req.ServiceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetWithHierarchy: no config found for salon=%d, staff=%v, service=%v",
				req.SalonID, req.StaffID, req.ServiceID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetWithHierarchy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWithHierarchy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWithHierarchy: successfully fetched config id=%d (level: %s)",
		config.ID, s.getConfigLevel(config))
	return models.FromDomainConfig(config), nil
}

// GetAllBySalon получает все конфигурации салона
// Доступно только менеджерам салона
func (s *Service) GetAllBySalon(ctx context.Context, salonID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllBySalon: fetching configs for salon=%d by user=%d", salonID, userID)

	// Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("GetAllBySalon: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetAllBySalon: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер салона)
	if !salon.IsManager(userID) {
		s.logger.Warn("GetAllBySalon: user=%d is not a manager of salon=%d", userID, salonID)
		return nil, ErrAccessDenied
	}

	configs, err := s.configRepo.GetAllBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("GetAllBySalon: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetAllBySalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBySalon: successfully fetched %d configs for salon=%d", len(configs), salonID)
	return models.FromDomainConfigList(configs), nil
}

// Update обновляет существующую конфигурацию
// Доступно только менеджерам салона
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config id=%d by user=%d", id, req.UserID)

	// 1. Получаем существующую конфигурацию
	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем обновления к копии для валидации
	tempConfig := *config
	req.ApplyToConfig(&tempConfig)

	// 3. Валидируем обновленные данные
	if err := s.validateConfigData(string(tempConfig.SchedulingMode), tempConfig.BufferMinutes,
		tempConfig.MinBookingNoticeHours, tempConfig.AdvanceBookingDays); err != nil {
		s.logger.Warn("Update: validation failed for config id=%d: %v", id, err)
		return nil, err
	}

	// 4. Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, config.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("Update: salon id=%d not found", config.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Update: failed to get salon id=%d: %v", config.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 5. Проверяем права доступа (только менеджер салона)
	if !salon.IsManager(req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of salon=%d", req.UserID, config.SalonID)
		return nil, ErrAccessDenied
	}

	// 6. Применяем обновления к оригинальной конфигурации
	req.ApplyToConfig(config)

	// 7. Обновляем конфигурацию в БД
	updatedConfig, err := s.configRepo.Update(ctx, config)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found during update", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config id=%d", id)
	return models.FromDomainConfig(updatedConfig), nil
}

// Delete удаляет конфигурацию по ID
// Доступно только менеджерам салона
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting config id=%d by user=%d", id, userID)

	// 1. Получаем конфигурацию для проверки прав доступа
	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found", id)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// 2. Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, config.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("Delete: salon id=%d not found", config.SalonID)
			return ErrSalonNotFound
		}
		s.logger.Error("Delete: failed to get salon id=%d: %v", config.SalonID, err)
		return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер салона)
	if !salon.IsManager(userID) {
		s.logger.Warn("Delete: user=%d is not a manager of salon=%d", userID, config.SalonID)
		return ErrAccessDenied
	}

	// 4. Удаляем конфигурацию
	if err := s.configRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found during deletion", id)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", id)
	return nil
}

// Вспомогательные методы

// validateConfigData валидирует параметры конфигурации
func (s *Service) validateConfigData(schedulingMode string, bufferMinutes, minNoticeHours, advanceDays int) error {
	// Проверяем режим вычисления слотов
	if !domain.SchedulingMode(schedulingMode).IsValid() {
		return fmt.Errorf("%w: schedulingMode must be %q or %q",
			ErrInvalidInput, domain.SchedulingModeFixedGrid, domain.SchedulingModeRuleBased)
	}

	// Проверяем bufferMinutes
	if bufferMinutes < domain.MinBufferMinutes || bufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	// Проверяем minBookingNoticeHours
	if minNoticeHours < domain.MinNoticeHours || minNoticeHours > domain.MaxNoticeHours {
		return fmt.Errorf("%w: minBookingNoticeHours must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeHours, domain.MaxNoticeHours)
	}

	// Проверяем advanceBookingDays
	if advanceDays < domain.MinAdvanceBookingDays || advanceDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// serviceByStaff проверяет, что услуга выполняется указанным мастером
func (s *Service) serviceByStaff(service *salonClient.Service, staffID int64) bool {
	for _, id := range service.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// getConfigLevel возвращает строковое представление уровня конфигурации для логирования
func (s *Service) getConfigLevel(config *domain.SalonSlotsConfig) string {
	if config.StaffID != nil && config.ServiceID != nil {
		return "service@staff"
	}
	if config.IsStaffSpecific() {
		return "staff"
	}
	if config.IsServiceSpecific() {
		return "service"
	}
	return "global"
}
