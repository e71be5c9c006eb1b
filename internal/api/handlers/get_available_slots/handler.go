package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgMissingServiceID   = "ID услуги обязателен"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotByStaff  = "услуга не выполняется выбранным мастером"
	msgInvalidBookingDate = "некорректная дата"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем salonId из URL
	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем опционального мастера из query параметров
	var staffID *int64
	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		id, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(salonID, serviceID, staffID, dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		respondUseCaseError(w, h.logger, salonID, serviceID, err)
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/available-slots - Slots retrieved successfully: salon_id=%d, service_id=%d, available=%d/%d",
		salonID, serviceID, result.AvailableCount, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// respondUseCaseError мапит ошибки use case на HTTP статусы
func respondUseCaseError(w http.ResponseWriter, logger Logger, salonID, serviceID int64, err error) {
	switch {
	case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
		logger.Warn("GET /salons/{id}/available-slots - Salon not found: salon_id=%d", salonID)
		handlers.RespondNotFound(w, msgSalonNotFound)

	case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
		logger.Warn("GET /salons/{id}/available-slots - Service not found: salon_id=%d, service_id=%d",
			salonID, serviceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
		logger.Warn("GET /salons/{id}/available-slots - Staff not found: salon_id=%d", salonID)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, getAvailableSlots.ErrServiceNotByStaff):
		logger.Warn("GET /salons/{id}/available-slots - Service not by staff: salon_id=%d, service_id=%d",
			salonID, serviceID)
		handlers.RespondBadRequest(w, msgServiceNotByStaff)

	case errors.Is(err, getAvailableSlots.ErrInvalidDate):
		logger.Warn("GET /salons/{id}/available-slots - Invalid date: salon_id=%d", salonID)
		handlers.RespondBadRequest(w, msgInvalidBookingDate)

	case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
		logger.Warn("GET /salons/{id}/available-slots - Date too far: salon_id=%d", salonID)
		handlers.RespondBadRequest(w, msgDateTooFar)

	case errors.Is(err, getAvailableSlots.ErrInvalidInput):
		logger.Warn("GET /salons/{id}/available-slots - Invalid input: salon_id=%d, error=%v", salonID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	default:
		logger.Error("GET /salons/{id}/available-slots - Failed to get slots: salon_id=%d, service_id=%d, error=%v",
			salonID, serviceID, err)
		handlers.RespondInternalError(w)
	}
}
