package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/availability"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salonconfig"
	salonClient "github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
)

// UseCase use case для получения слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	ruleRepo     RuleRepository
	salonClient  SalonServiceClient
	engine       *availability.Engine
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	ruleRepo RuleRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		ruleRepo:     ruleRepo,
		salonClient:  salonClient,
		engine:       availability.NewEngine(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, salon=%d, slug=%q, staff=%v, service=%d, date=%s",
		req.UserID, req.SalonID, req.SalonSlug, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон (по ID или по публичному slug)
	salon, err := uc.resolveSalon(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, salon.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Если указан мастер - проверяем, что он существует и выполняет услугу
	if req.StaffID != nil {
		if _, err := uc.salonClient.GetStaff(ctx, salon.ID, *req.StaffID); err != nil {
			if errors.Is(err, salonClient.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}

		if err := validateServiceByStaff(service, *req.StaffID); err != nil {
			uc.logger.Warn("GetAvailableSlots: service id=%d not provided by staff id=%d",
				req.ServiceID, *req.StaffID)
			return nil, err
		}
	}

	// 6. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.resolveConfig(ctx, salon.ID, req)
	if err != nil {
		return nil, err
	}

	// 7. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 8. Получаем бронирования на эту дату
	// Отмены и неявки не запрашиваем: календарь они не занимают ни в одном режиме
	filter := domain.SalonBookingsFilter{
		SalonID:         salon.ID,
		StaffID:         req.StaffID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	intervals := toIntervals(bookings, uc.logger)

	// 9. Вычисляем слоты движком в зависимости от режима
	var result *availability.Result

	switch config.SchedulingMode {
	case domain.SchedulingModeRuleBased:
		result, err = uc.computeRuleBased(ctx, salon.ID, req, service.DurationMinutes, config, intervals)
	default:
		result, err = uc.computeFixedGrid(salon, req, service.DurationMinutes, config, intervals, now)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: mode=%s, salon=%d, date=%s: %d slots, %d available, closed=%v",
		config.SchedulingMode, salon.ID, req.Date.Format(domain.DateFormat),
		result.TotalSlots, result.AvailableCount, result.Closed)

	return fromEngineResult(req, salon.ID, config.SchedulingMode, result), nil
}

// resolveSalon получает салон по ID или по публичному slug
func (uc *UseCase) resolveSalon(ctx context.Context, req *Request) (*salonClient.Salon, error) {
	var (
		salon *salonClient.Salon
		err   error
	)

	if req.SalonID > 0 {
		salon, err = uc.salonClient.GetSalon(ctx, req.SalonID)
	} else {
		salon, err = uc.salonClient.GetSalonBySlug(ctx, req.SalonSlug)
	}

	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%d slug=%q not found", req.SalonID, req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%d slug=%q: %v", req.SalonID, req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	return salon, nil
}

// resolveConfig получает конфигурацию слотов, при отсутствии использует дефолтную
func (uc *UseCase) resolveConfig(ctx context.Context, salonID int64, req *Request) (*domain.SalonSlotsConfig, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, salonID, req.StaffID, &req.ServiceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = &domain.SalonSlotsConfig{
			SalonID:               salonID,
			SchedulingMode:        domain.DefaultSchedulingMode,
			BufferMinutes:         domain.DefaultBufferMinutes,
			MinBookingNoticeHours: domain.DefaultMinBookingNoticeHours,
			AdvanceBookingDays:    domain.DefaultAdvanceBookingDays,
		}
		uc.logger.Info("GetAvailableSlots: using default config for salon=%d, staff=%v, service=%d",
			salonID, req.StaffID, req.ServiceID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	return config, nil
}

// computeFixedGrid вычисляет слоты по фиксированной сетке рабочих часов салона
func (uc *UseCase) computeFixedGrid(
	salon *salonClient.Salon,
	req *Request,
	durationMinutes int,
	config *domain.SalonSlotsConfig,
	intervals []availability.Interval,
	now time.Time,
) (*availability.Result, error) {
	hours, err := toWeekSchedule(salon.WorkingHours)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: malformed working hours for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: malformed working hours: %v", ErrInternal, err)
	}

	result, err := uc.engine.ComputeFixedGrid(availability.FixedGridInput{
		Date:            req.Date,
		Hours:           hours,
		Bookings:        intervals,
		DurationMinutes: durationMinutes,
		BufferMinutes:   config.BufferMinutes,
		MinNoticeHours:  config.MinBookingNoticeHours,
		Now:             now,
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: fixed grid computation failed: %v", err)
		return nil, fmt.Errorf("%w: fixed grid computation failed: %v", ErrInternal, err)
	}

	return result, nil
}

// computeRuleBased вычисляет слоты по правилам доступности
func (uc *UseCase) computeRuleBased(
	ctx context.Context,
	salonID int64,
	req *Request,
	durationMinutes int,
	config *domain.SalonSlotsConfig,
	intervals []availability.Interval,
) (*availability.Result, error) {
	rulePtrs, err := uc.ruleRepo.ListBySalon(ctx, salonID, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	rules := make([]domain.AvailabilityRule, 0, len(rulePtrs))
	for _, r := range rulePtrs {
		rules = append(rules, *r)
	}

	result, err := uc.engine.ComputeRuleBased(availability.RuleBasedInput{
		Date:            req.Date,
		Rules:           rules,
		Bookings:        intervals,
		DurationMinutes: durationMinutes,
		BufferMinutes:   config.BufferMinutes,
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: rule based computation failed: %v", err)
		return nil, fmt.Errorf("%w: rule based computation failed: %v", ErrInternal, err)
	}

	return result, nil
}
