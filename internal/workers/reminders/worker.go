package reminders

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/notifyservice"
)

// Worker фоновый воркер напоминаний о предстоящих визитах
// Периодически выбирает подтвержденные бронирования, начинающиеся в ближайшие
// leadTime часов, и ставит напоминания в очередь доставки через NotifyService
type Worker struct {
	bookingRepo  BookingRepository
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	logger       Logger

	interval time.Duration
	leadTime time.Duration
}

// NewWorker создает новый экземпляр воркера напоминаний
func NewWorker(
	bookingRepo BookingRepository,
	notifyClient NotifyServiceClient,
	logger Logger,
	intervalMinutes int,
	leadTimeHours int,
) *Worker {
	return &Worker{
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		timeProvider: RealTimeProvider{},
		logger:       logger,
		interval:     time.Duration(intervalMinutes) * time.Minute,
		leadTime:     time.Duration(leadTimeHours) * time.Hour,
	}
}

// Run запускает цикл воркера, блокируется до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("reminders worker: started, interval=%s, lead_time=%s", w.interval, w.leadTime)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Первый проход сразу после запуска, не дожидаясь тикера
	w.processDueReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminders worker: stopped")
			return
		case <-ticker.C:
			w.processDueReminders(ctx)
		}
	}
}

// processDueReminders выполняет один проход: выбирает бронирования в окне
// напоминания и отправляет по ним уведомления
func (w *Worker) processDueReminders(ctx context.Context) {
	now := w.timeProvider.Now()

	bookings, err := w.bookingRepo.GetDueForReminder(ctx, now, now.Add(w.leadTime))
	if err != nil {
		w.logger.Error("reminders worker: failed to fetch due bookings: %v", err)
		return
	}

	if len(bookings) == 0 {
		return
	}

	w.logger.Info("reminders worker: processing %d due bookings", len(bookings))

	sent := 0
	for _, booking := range bookings {
		if ctx.Err() != nil {
			return
		}

		if err := w.sendReminder(ctx, booking); err != nil {
			// Не помечаем напоминание отправленным - попробуем на следующем проходе
			w.logger.Error("reminders worker: failed to send reminder for booking id=%d: %v",
				booking.ID, err)
			continue
		}

		if err := w.bookingRepo.MarkReminderSent(ctx, booking.ID); err != nil {
			w.logger.Error("reminders worker: failed to mark reminder sent for booking id=%d: %v",
				booking.ID, err)
			continue
		}

		sent++
	}

	w.logger.Info("reminders worker: pass finished, sent=%d/%d", sent, len(bookings))
}

func (w *Worker) sendReminder(ctx context.Context, booking *domain.Booking) error {
	return w.notifyClient.SendBookingReminder(ctx, &notifyservice.ReminderRequest{
		CustomerID:    booking.CustomerID,
		SalonID:       booking.SalonID,
		BookingID:     booking.ID,
		ReferenceCode: booking.ReferenceCode,
		ServiceName:   booking.ServiceName,
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime.String(),
	})
}
