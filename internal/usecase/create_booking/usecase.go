package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/availability"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salonconfig"
	salonClient "github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	ruleRepo     RuleRepository
	salonClient  SalonServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	ruleRepo RuleRepository,
	salonClient SalonServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		ruleRepo:     ruleRepo,
		salonClient:  salonClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// конкурирующие запросы на один слот не могут оба пройти проверку занятости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, salon=%d, staff=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем мастера и проверяем, что он выполняет услугу
	staff, err := uc.salonClient.GetStaff(ctx, req.SalonID, req.StaffID)
	if err != nil {
		if errors.Is(err, salonClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if err := validateServiceByStaff(service, req.StaffID); err != nil {
		uc.logger.Warn("CreateBooking: service id=%d not provided by staff id=%d", req.ServiceID, req.StaffID)
		return nil, err
	}

	// Время начала и конца слота как моменты времени
	startAt, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endAt := startAt.Add(minutes(service.DurationMinutes))

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию слотов с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.SalonID, ptr.Ptr(req.StaffID), ptr.Ptr(req.ServiceID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = &domain.SalonSlotsConfig{
				SalonID:               req.SalonID,
				SchedulingMode:        domain.DefaultSchedulingMode,
				BufferMinutes:         domain.DefaultBufferMinutes,
				MinBookingNoticeHours: domain.DefaultMinBookingNoticeHours,
				AdvanceBookingDays:    domain.DefaultAdvanceBookingDays,
			}
			uc.logger.Info("CreateBooking: using default config for salon=%d, staff=%d, service=%d",
				req.SalonID, req.StaffID, req.ServiceID)
		} else {
			uc.logger.Info("CreateBooking: using config id=%d, mode=%s", config.ID, config.SchedulingMode)
		}

		// 6.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 6.3. Проверяем минимальное время до начала слота
		if err := validateBookingNotice(startAt, now, config.MinBookingNoticeHours); err != nil {
			uc.logger.Warn("CreateBooking: notice validation failed: %v", err)
			return err
		}

		// 6.4. Проверяем, что слот лежит в открытых часах салона (зависит от режима)
		if err := uc.validateSlotOpen(txCtx, salon, req, config, startAt, endAt); err != nil {
			return err
		}

		// 6.5. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.SalonBookingsFilter{
			SalonID:         req.SalonID,
			StaffID:         ptr.Ptr(req.StaffID),
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetBySalonWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.6. Проверяем занятость слота (с буфером в режиме сетки)
		if availability.HasConflict(config.SchedulingMode, startAt, endAt, config.BufferMinutes, toIntervals(bookings)) {
			uc.logger.Warn("CreateBooking: slot %s-%s is not available", req.StartTime,
				endAt.Format(domain.TimeFormat))
			return ErrSlotNotAvailable
		}

		// 6.7. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			SalonID:         req.SalonID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			ReferenceCode:   uuid.NewString(),
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			// Денормализация данных услуги и мастера
			ServiceName:  service.Name,
			ServicePrice: getServicePrice(service),
			StaffName:    &staff.Name,
			// Заметки
			Notes: req.Notes,
		}

		// 6.8. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.ReferenceCode)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		SalonID:         result.SalonID,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		ReferenceCode:   result.ReferenceCode,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		StaffName:       result.StaffName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// validateSlotOpen проверяет, что слот лежит в открытых часах с учетом режима:
// в fixed_grid - рабочие часы салона, в rule_based - открытые интервалы правил
func (uc *UseCase) validateSlotOpen(
	ctx context.Context,
	salon *salonClient.Salon,
	req *Request,
	config *domain.SalonSlotsConfig,
	startAt, endAt time.Time,
) error {
	switch config.SchedulingMode {
	case domain.SchedulingModeRuleBased:
		rulePtrs, err := uc.ruleRepo.ListBySalon(ctx, req.SalonID, ptr.Ptr(req.StaffID))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get rules for salon=%d: %v", req.SalonID, err)
			return fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
		}

		rules := make([]domain.AvailabilityRule, 0, len(rulePtrs))
		for _, r := range rulePtrs {
			rules = append(rules, *r)
		}

		if err := validateSlotWithinRules(rules, req.Date, startAt, endAt); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed for salon=%d: %v", req.SalonID, err)
			return err
		}
	default:
		day := getWorkingHoursForDay(salon, req.Date)
		if err := validateSlotWithinWorkingHours(day, req.Date, startAt, endAt); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed for salon=%d: %v", req.SalonID, err)
			return err
		}
	}

	return nil
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *salonClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
