package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/notifyservice"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	due        []*domain.Booking
	fetchErr   error
	markErr    error
	markedIDs  []int64
	fetchedFor [][2]time.Time
}

func (f *fakeBookingRepo) GetDueForReminder(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	f.fetchedFor = append(f.fetchedFor, [2]time.Time{from, to})
	return f.due, f.fetchErr
}

func (f *fakeBookingRepo) MarkReminderSent(_ context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedIDs = append(f.markedIDs, id)
	return nil
}

type fakeNotifyClient struct {
	sent    []*notifyservice.ReminderRequest
	sendErr error
}

func (f *fakeNotifyClient) SendBookingReminder(_ context.Context, reminder *notifyservice.ReminderRequest) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, reminder)
	return nil
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

func dueBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		CustomerID:    200,
		SalonID:       1,
		ReferenceCode: "ref-123",
		ServiceName:   "Стрижка",
		BookingDate:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("14:00"),
		Status:        domain.StatusConfirmed,
	}
}

func newTestWorker(repo *fakeBookingRepo, client *fakeNotifyClient, now time.Time) *Worker {
	w := NewWorker(repo, client, nopLogger{}, 15, 24)
	w.timeProvider = fixedTime{now: now}
	return w
}

func TestProcessDueReminders_SendsAndMarks(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{due: []*domain.Booking{dueBooking(1), dueBooking(2)}}
	client := &fakeNotifyClient{}

	w := newTestWorker(repo, client, now)
	w.processDueReminders(context.Background())

	require.Len(t, client.sent, 2)
	assert.Equal(t, []int64{1, 2}, repo.markedIDs)

	// Окно выборки: [now, now + lead_time]
	require.Len(t, repo.fetchedFor, 1)
	assert.Equal(t, now, repo.fetchedFor[0][0])
	assert.Equal(t, now.Add(24*time.Hour), repo.fetchedFor[0][1])

	// Содержимое напоминания
	reminder := client.sent[0]
	assert.Equal(t, int64(200), reminder.CustomerID)
	assert.Equal(t, "ref-123", reminder.ReferenceCode)
	assert.Equal(t, "2025-06-02", reminder.BookingDate)
	assert.Equal(t, "14:00", reminder.StartTime)
}

func TestProcessDueReminders_SendFailureNotMarked(t *testing.T) {
	// Если доставка не удалась, напоминание не помечается отправленным -
	// повторная попытка на следующем проходе
	repo := &fakeBookingRepo{due: []*domain.Booking{dueBooking(1)}}
	client := &fakeNotifyClient{sendErr: errors.New("notify service unavailable")}

	w := newTestWorker(repo, client, time.Now())
	w.processDueReminders(context.Background())

	assert.Empty(t, repo.markedIDs)
}

func TestProcessDueReminders_FetchFailure(t *testing.T) {
	repo := &fakeBookingRepo{fetchErr: errors.New("db down")}
	client := &fakeNotifyClient{}

	w := newTestWorker(repo, client, time.Now())
	w.processDueReminders(context.Background())

	assert.Empty(t, client.sent)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := &fakeBookingRepo{}
	client := &fakeNotifyClient{}

	w := newTestWorker(repo, client, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	// Первый проход выполняется сразу при старте
	require.NotEmpty(t, repo.fetchedFor)
}
