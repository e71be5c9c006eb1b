package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidDateTime   = "некорректный формат даты или времени"
	msgUnauthorized      = "пользователь не авторизован"
	msgSalonNotFound     = "салон не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgStaffNotFound     = "мастер не найден"
	msgServiceNotByStaff = "услуга не выполняется выбранным мастером"
	msgInvalidDate       = "некорректная дата записи"
	msgDateTooFar        = "дата слишком далеко в будущем"
	msgSalonClosed       = "салон не работает в выбранное время"
	msgSlotNotAvailable  = "выбранное время уже занято"
	msgInvalidTimeSlot   = "выбранное время вне рабочих часов"
	msgTooLateToBook     = "слишком поздно для записи на выбранное время"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// ID клиента из заголовка (проставляется gateway-ем после аутентификации)
	customerID := middleware.UserID(r)
	if customerID == 0 {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time: customer_id=%d, error=%v", customerID, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, customerID, &req, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, salon_id=%d, reference=%s",
		result.ID, customerID, req.SalonID, result.ReferenceCode)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// respondError мапит ошибки use case на HTTP статусы
func (h *Handler) respondError(w http.ResponseWriter, customerID int64, req *CreateBookingRequest, err error) {
	switch {
	case errors.Is(err, createBooking.ErrSalonNotFound):
		h.logger.Warn("POST /bookings - Salon not found: customer_id=%d, salon_id=%d", customerID, req.SalonID)
		handlers.RespondNotFound(w, msgSalonNotFound)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		h.logger.Warn("POST /bookings - Service not found: customer_id=%d, service_id=%d", customerID, req.ServiceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrStaffNotFound):
		h.logger.Warn("POST /bookings - Staff not found: customer_id=%d, staff_id=%d", customerID, req.StaffID)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, createBooking.ErrServiceNotByStaff):
		h.logger.Warn("POST /bookings - Service not by staff: customer_id=%d, staff_id=%d, service_id=%d",
			customerID, req.StaffID, req.ServiceID)
		handlers.RespondBadRequest(w, msgServiceNotByStaff)

	case errors.Is(err, createBooking.ErrInvalidDate):
		h.logger.Warn("POST /bookings - Invalid date: customer_id=%d, date=%s", customerID, req.BookingDate)
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		h.logger.Warn("POST /bookings - Date too far: customer_id=%d, date=%s", customerID, req.BookingDate)
		handlers.RespondBadRequest(w, msgDateTooFar)

	case errors.Is(err, createBooking.ErrSalonClosed):
		h.logger.Warn("POST /bookings - Salon closed: customer_id=%d, salon_id=%d, date=%s",
			customerID, req.SalonID, req.BookingDate)
		handlers.RespondBadRequest(w, msgSalonClosed)

	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		h.logger.Warn("POST /bookings - Slot not available: customer_id=%d, salon_id=%d, date=%s, time=%s",
			customerID, req.SalonID, req.BookingDate, req.StartTime)
		handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

	case errors.Is(err, createBooking.ErrInvalidTimeSlot):
		h.logger.Warn("POST /bookings - Invalid time slot: customer_id=%d, time=%s", customerID, req.StartTime)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createBooking.ErrTooLateToBook):
		h.logger.Warn("POST /bookings - Too late to book: customer_id=%d, date=%s, time=%s",
			customerID, req.BookingDate, req.StartTime)
		handlers.RespondBadRequest(w, msgTooLateToBook)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, error=%v", customerID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, salon_id=%d, error=%v",
			customerID, req.SalonID, err)
		handlers.RespondInternalError(w)
	}
}
