package create_booking

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
	existing []*domain.Booking
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = 42
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetBySalonWithFilter(_ context.Context, _ domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeConfigRepo struct {
	config *domain.SalonSlotsConfig
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64, _ *int64) (*domain.SalonSlotsConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeRuleRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeRuleRepo) ListBySalon(_ context.Context, _ int64, _ *int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
		WorkingHours: salonservice.WorkingHours{
			Monday: salonservice.DaySchedule{
				IsOpen:    true,
				OpenTime:  ptr.Ptr("09:00"),
				CloseTime: ptr.Ptr("18:00"),
			},
		},
	}
}

func testClient() *fakeSalonClient {
	return &fakeSalonClient{
		salon: testSalon(),
		service: &salonservice.Service{
			ID:              10,
			SalonID:         1,
			Name:            "Стрижка",
			DurationMinutes: 60,
			Price:           ptr.Ptr(1500.0),
			StaffIDs:        []int64{5},
		},
		staff: &salonservice.Staff{ID: 5, SalonID: 1, Name: "Мария"},
	}
}

func testRequest(start string) *Request {
	return &Request{
		CustomerID: 200,
		SalonID:    1,
		StaffID:    5,
		ServiceID:  10,
		Date:       monday,
		StartTime:  types.TimeString(start),
	}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	configs *fakeConfigRepo,
	rules *fakeRuleRepo,
	client *fakeSalonClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, configs, rules, client, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_CreatesBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeRuleRepo{}, testClient(), monday.Add(7*time.Hour))

	resp, err := uc.Execute(context.Background(), testRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.NotEmpty(t, resp.ReferenceCode)

	// Денормализация данных услуги и мастера на момент записи
	require.NotNil(t, repo.created)
	assert.Equal(t, "Стрижка", repo.created.ServiceName)
	assert.Equal(t, 1500.0, repo.created.ServicePrice)
	require.NotNil(t, repo.created.StaffName)
	assert.Equal(t, "Мария", *repo.created.StaffName)
	assert.Equal(t, 60, repo.created.DurationMinutes)
}

func TestExecute_SlotAlreadyTaken(t *testing.T) {
	// Существующее подтвержденное бронирование 10:00-11:00 блокирует слот 10:30
	repo := &fakeBookingRepo{existing: []*domain.Booking{
		{
			ID:              1,
			SalonID:         1,
			StaffID:         5,
			BookingDate:     monday,
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeRuleRepo{}, testClient(), monday.Add(7*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("10:30"))
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_BufferExtendsConflict(t *testing.T) {
	// Буфер 30 минут: бронирование 10:00-11:00 с буфером занимает 09:30-11:30,
	// слот 11:00 конфликтует
	repo := &fakeBookingRepo{existing: []*domain.Booking{
		{
			ID:              1,
			SalonID:         1,
			StaffID:         5,
			BookingDate:     monday,
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}}
	uc := newTestUseCase(repo, &fakeConfigRepo{config: &domain.SalonSlotsConfig{
		SalonID:        1,
		SchedulingMode: domain.SchedulingModeFixedGrid,
		BufferMinutes:  30,
	}}, &fakeRuleRepo{}, testClient(), monday.Add(7*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("11:00"))
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	// Салон работает до 18:00, услуга 60 минут: 17:30 выходит за закрытие
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeRuleRepo{}, testClient(), monday.Add(7*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("17:30"))
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotEndingAtCloseAllowed(t *testing.T) {
	// Слот, заканчивающийся ровно в закрытие (17:00 + 60m = 18:00), разрешён
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeRuleRepo{}, testClient(), monday.Add(7*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("17:00"))
	require.NoError(t, err)
}

func TestExecute_TooLateToBook(t *testing.T) {
	// Минимальное уведомление 2 часа (дефолт): сейчас 09:00, слот 10:00 - поздно
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeRuleRepo{}, testClient(), monday.Add(9*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("10:00"))
	require.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_NoticeBoundaryInclusive(t *testing.T) {
	// Слот ровно через minNoticeHours разрешён: сейчас 09:00, слот 11:00
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeRuleRepo{}, testClient(), monday.Add(9*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("11:00"))
	require.NoError(t, err)
}

func TestExecute_RuleBased_DenyRuleClosesDay(t *testing.T) {
	// Переопределение на дату с is_available=false закрывает день,
	// несмотря на еженедельное правило
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: &domain.SalonSlotsConfig{
		SalonID:        1,
		SchedulingMode: domain.SchedulingModeRuleBased,
	}}, &fakeRuleRepo{rules: []*domain.AvailabilityRule{
		{
			SalonID:     1,
			DayOfWeek:   ptr.Ptr(1),
			StartTime:   types.TimeString("09:00"),
			EndTime:     types.TimeString("18:00"),
			IsAvailable: true,
		},
		{
			SalonID:      1,
			SpecificDate: &monday,
			StartTime:    types.TimeString("00:00"),
			EndTime:      types.TimeString("23:59"),
			IsAvailable:  false,
		},
	}}, testClient(), monday.Add(7*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("10:00"))
	require.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecute_RuleBased_SlotWithinRule(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: &domain.SalonSlotsConfig{
		SalonID:        1,
		SchedulingMode: domain.SchedulingModeRuleBased,
	}}, &fakeRuleRepo{rules: []*domain.AvailabilityRule{
		{
			SalonID:     1,
			DayOfWeek:   ptr.Ptr(1),
			StartTime:   types.TimeString("10:00"),
			EndTime:     types.TimeString("14:00"),
			IsAvailable: true,
		},
	}}, testClient(), monday.Add(7*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("12:00"))
	require.NoError(t, err)

	// Слот вне интервала правила
	_, err = uc.Execute(context.Background(), testRequest("14:30"))
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_StaffDoesNotProvideService(t *testing.T) {
	client := testClient()
	client.service.StaffIDs = []int64{6}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeRuleRepo{}, client, monday.Add(7*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("10:00"))
	require.ErrorIs(t, err, ErrServiceNotByStaff)
}

func TestExecute_SalonNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeRuleRepo{}, &fakeSalonClient{}, monday.Add(7*time.Hour))

	_, err := uc.Execute(context.Background(), testRequest("10:00"))
	require.ErrorIs(t, err, ErrSalonNotFound)
}
