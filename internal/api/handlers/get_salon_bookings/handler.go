package get_salon_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidParams  = "некорректные параметры фильтрации"
	msgUnauthorized   = "пользователь не авторизован"
	msgSalonNotFound  = "салон не найден"
	msgAccessDenied   = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/bookings
// Query params: staffId, startDate, endDate, status, includeInactive (all optional)
// Доступно только менеджерам салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID := middleware.UserID(r)
	if userID == 0 {
		h.logger.Warn("GET /salons/{id}/bookings - Missing user ID: salon_id=%d", salonID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := ToServiceRequest(salonID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid filter params: salon_id=%d, error=%v", salonID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetSalonBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/bookings - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/bookings - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/bookings - Invalid filter: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /salons/{id}/bookings - Failed to get bookings: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/bookings - Bookings retrieved successfully: salon_id=%d, count=%d",
		salonID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
