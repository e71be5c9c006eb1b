package get_public_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	slotsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_available_slots"
	getAvailableSlots "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSlug      = "некорректный slug салона"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingServiceID = "ID услуги обязателен"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректные параметры запроса"
	msgSalonNotFound    = "салон не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgStaffNotFound    = "мастер не найден"
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

// Handle GET /api/v1/public/salons/{slug}/available-slots
// Публичная страница записи: салон задается slug-ом, а не внутренним ID
// Query params: serviceId (required), date (required, YYYY-MM-DD), staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slug := vars["slug"]
	if slug == "" {
		h.logger.Warn("GET /public/salons/{slug}/available-slots - Missing slug")
		handlers.RespondBadRequest(w, msgInvalidSlug)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /public/salons/{slug}/available-slots - Missing service ID: slug=%s", slug)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /public/salons/{slug}/available-slots - Invalid service ID: slug=%s, error=%v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /public/salons/{slug}/available-slots - Missing date: slug=%s", slug)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Мастер опционален
	var staffID *int64
	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		id, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /public/salons/{slug}/available-slots - Invalid staff ID: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		staffID = &id
	}

	// Переиспользуем конвертацию параметров основного handler-а,
	// вместо ID подставляем slug
	useCaseReq, err := slotsHandler.ToUseCaseRequest(0, serviceID, staffID, dateStr)
	if err != nil {
		h.logger.Warn("GET /public/salons/{slug}/available-slots - Invalid date: slug=%s, error=%v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	useCaseReq.SalonSlug = slug

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
			h.logger.Warn("GET /public/salons/{slug}/available-slots - Salon not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /public/salons/{slug}/available-slots - Service not found: slug=%s, service_id=%d",
				slug, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /public/salons/{slug}/available-slots - Staff not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotByStaff),
			errors.Is(err, getAvailableSlots.ErrInvalidDate),
			errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture),
			errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/salons/{slug}/available-slots - Bad request: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /public/salons/{slug}/available-slots - Failed to get slots: slug=%s, error=%v",
				slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := slotsHandler.FromUseCaseResponse(result)

	h.logger.Info("GET /public/salons/{slug}/available-slots - Slots retrieved successfully: slug=%s, service_id=%d, available=%d/%d",
		slug, serviceID, result.AvailableCount, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, response)
}
