package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salonconfig"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// monday 2025-06-02 - понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetBySalonWithFilter(_ context.Context, _ domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeConfigRepo struct {
	config *domain.SalonSlotsConfig
	err    error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64, _ *int64) (*domain.SalonSlotsConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeRuleRepo struct {
	rules []*domain.AvailabilityRule
	err   error
}

func (f *fakeRuleRepo) ListBySalon(_ context.Context, _ int64, _ *int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, f.err
}

type fakeSalonClient struct {
	salon   *salonservice.Salon
	service *salonservice.Service
	staff   *salonservice.Staff
}

func (f *fakeSalonClient) GetSalon(_ context.Context, _ int64) (*salonservice.Salon, error) {
	if f.salon == nil {
		return nil, salonservice.ErrSalonNotFound
	}
	return f.salon, nil
}

func (f *fakeSalonClient) GetSalonBySlug(_ context.Context, _ string) (*salonservice.Salon, error) {
	if f.salon == nil {
		return nil, salonservice.ErrSalonNotFound
	}
	return f.salon, nil
}

func (f *fakeSalonClient) GetService(_ context.Context, _, _ int64) (*salonservice.Service, error) {
	if f.service == nil {
		return nil, salonservice.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeSalonClient) GetStaff(_ context.Context, _, _ int64) (*salonservice.Staff, error) {
	if f.staff == nil {
		return nil, salonservice.ErrStaffNotFound
	}
	return f.staff, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы тестовых данных

func testSalon() *salonservice.Salon {
	return &salonservice.Salon{
		ID:   1,
		Name: "Тестовый салон",
		Slug: "test-salon",
		WorkingHours: salonservice.WorkingHours{
			Monday: salonservice.DaySchedule{
				IsOpen:    true,
				OpenTime:  ptr.Ptr("09:00"),
				CloseTime: ptr.Ptr("12:00"),
			},
		},
	}
}

func testService(staffIDs ...int64) *salonservice.Service {
	return &salonservice.Service{
		ID:              10,
		SalonID:         1,
		Name:            "Стрижка",
		DurationMinutes: 60,
		StaffIDs:        staffIDs,
	}
}

func testBooking(start string, durationMinutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              100,
		SalonID:         1,
		StaffID:         5,
		ServiceID:       10,
		BookingDate:     monday,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	configs *fakeConfigRepo,
	rules *fakeRuleRepo,
	client *fakeSalonClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, configs, rules, client, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_FixedGrid_DefaultConfig(t *testing.T) {
	// Конфигурация не задана - используется дефолтная (fixed_grid, уведомление 2ч).
	// Салон открыт пн 09:00-12:00, услуга 60 минут, сейчас пн 07:00:
	// сетка 09:00..11:00 с шагом 30 минут, все слоты доступны.
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeConfigRepo{},
		&fakeRuleRepo{},
		&fakeSalonClient{salon: testSalon(), service: testService(5)},
		monday.Add(7*time.Hour),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:   1,
		ServiceID: 10,
		Date:      monday,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.SchedulingModeFixedGrid), resp.SchedulingMode)
	assert.False(t, resp.Closed)
	// 09:00, 09:30, 10:00, 10:30, 11:00 (11:00+60m = 12:00 = закрытие)
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, 5, resp.TotalSlots)
	assert.Equal(t, 5, resp.AvailableCount)
	assert.Equal(t, monday.Add(9*time.Hour), resp.Slots[0].StartTime)
	assert.Equal(t, monday.Add(10*time.Hour), resp.Slots[0].EndTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestExecute_FixedGrid_BookingBlocksSlots(t *testing.T) {
	// Подтвержденное бронирование 10:00-11:00 закрывает пересекающиеся слоты.
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			testBooking("10:00", 60, domain.StatusConfirmed),
		}},
		&fakeConfigRepo{},
		&fakeRuleRepo{},
		&fakeSalonClient{salon: testSalon(), service: testService(5)},
		monday.Add(7*time.Hour),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:   1,
		ServiceID: 10,
		Date:      monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 5)
	// 09:00-10:00 свободен, 09:30-10:30 пересекается с 10:00-11:00
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.False(t, resp.Slots[2].Available)
	assert.False(t, resp.Slots[3].Available)
	assert.True(t, resp.Slots[4].Available)
	assert.Equal(t, 2, resp.AvailableCount)
}

func TestExecute_FixedGrid_CancelledBookingIgnored(t *testing.T) {
	// Отмененное бронирование календарь не занимает
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			testBooking("10:00", 60, domain.StatusCancelled),
		}},
		&fakeConfigRepo{},
		&fakeRuleRepo{},
		&fakeSalonClient{salon: testSalon(), service: testService(5)},
		monday.Add(7*time.Hour),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:   1,
		ServiceID: 10,
		Date:      monday,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.AvailableCount)
}

func TestExecute_RuleBased_WeeklyRule(t *testing.T) {
	// Режим rule_based: еженедельное правило пн 10:00-12:00, без буфера.
	// Шаг равен длительности услуги (60 минут): слоты 10:00 и 11:00.
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeConfigRepo{config: &domain.SalonSlotsConfig{
			ID:             7,
			SalonID:        1,
			SchedulingMode: domain.SchedulingModeRuleBased,
		}},
		&fakeRuleRepo{rules: []*domain.AvailabilityRule{
			{
				SalonID:     1,
				DayOfWeek:   ptr.Ptr(1), // понедельник
				StartTime:   types.TimeString("10:00"),
				EndTime:     types.TimeString("12:00"),
				IsAvailable: true,
			},
		}},
		&fakeSalonClient{salon: testSalon(), service: testService(5)},
		monday.Add(7*time.Hour),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:   1,
		ServiceID: 10,
		Date:      monday,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.SchedulingModeRuleBased), resp.SchedulingMode)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, monday.Add(10*time.Hour), resp.Slots[0].StartTime)
	assert.Equal(t, monday.Add(11*time.Hour), resp.Slots[1].StartTime)
	assert.Equal(t, 2, resp.AvailableCount)
}

func TestExecute_RuleBased_NoRulesMeansClosed(t *testing.T) {
	// Нет правил на дату - день закрыт
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeConfigRepo{config: &domain.SalonSlotsConfig{
			SalonID:        1,
			SchedulingMode: domain.SchedulingModeRuleBased,
		}},
		&fakeRuleRepo{},
		&fakeSalonClient{salon: testSalon(), service: testService(5)},
		monday.Add(7*time.Hour),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:   1,
		ServiceID: 10,
		Date:      monday,
	})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ResolvesSalonBySlug(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeConfigRepo{},
		&fakeRuleRepo{},
		&fakeSalonClient{salon: testSalon(), service: testService(5)},
		monday.Add(7*time.Hour),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonSlug: "test-salon",
		ServiceID: 10,
		Date:      monday,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.SalonID)
}

func TestExecute_SalonNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeConfigRepo{},
		&fakeRuleRepo{},
		&fakeSalonClient{},
		monday.Add(7*time.Hour),
	)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID:   42,
		ServiceID: 10,
		Date:      monday,
	})
	require.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecute_ServiceNotByStaff(t *testing.T) {
	// Мастер существует, но не выполняет выбранную услугу
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeConfigRepo{},
		&fakeRuleRepo{},
		&fakeSalonClient{
			salon:   testSalon(),
			service: testService(6), // услуга закреплена за другим мастером
			staff:   &salonservice.Staff{ID: 5, SalonID: 1, Name: "Мария"},
		},
		monday.Add(7*time.Hour),
	)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID:   1,
		StaffID:   ptr.Ptr(int64(5)),
		ServiceID: 10,
		Date:      monday,
	})
	require.ErrorIs(t, err, ErrServiceNotByStaff)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	// advanceBookingDays = 7, дата через 30 дней
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeConfigRepo{config: &domain.SalonSlotsConfig{
			SalonID:            1,
			SchedulingMode:     domain.SchedulingModeFixedGrid,
			AdvanceBookingDays: 7,
		}},
		&fakeRuleRepo{},
		&fakeSalonClient{salon: testSalon(), service: testService(5)},
		monday.Add(7*time.Hour),
	)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID:   1,
		ServiceID: 10,
		Date:      monday.AddDate(0, 0, 30),
	})
	require.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeConfigRepo{},
		&fakeRuleRepo{},
		&fakeSalonClient{salon: testSalon(), service: testService(5)},
		monday.Add(7*time.Hour),
	)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID:   1,
		ServiceID: 10,
		Date:      monday.AddDate(0, 0, -1),
	})
	require.ErrorIs(t, err, ErrInvalidDate)
}
