package list_salon_configs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgUnauthorized   = "пользователь не авторизован"
	msgSalonNotFound  = "салон не найден"
	msgAccessDenied   = "доступ запрещен"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/configs
// Доступно только менеджерам салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/configs - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID := middleware.UserID(r)
	if userID == 0 {
		h.logger.Warn("GET /salons/{id}/configs - Missing user ID: salon_id=%d", salonID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetAllBySalon(r.Context(), salonID, userID)
	if err != nil {
		switch {
		case errors.Is(err, salonconfig.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/configs - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salonconfig.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/configs - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /salons/{id}/configs - Failed to get configs: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/configs - Configs retrieved successfully: salon_id=%d, count=%d",
		salonID, len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
