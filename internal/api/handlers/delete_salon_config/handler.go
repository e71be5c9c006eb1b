package delete_salon_config

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
	msgInvalidConfigID = "некорректный ID конфигурации"
	msgUnauthorized    = "пользователь не авторизован"
	msgConfigNotFound  = "конфигурация не найдена"
	msgSalonNotFound   = "салон не найден"
	msgAccessDenied    = "доступ запрещен"
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

// Handle DELETE /api/v1/configs/{configId}
// Доступно только менеджерам салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	configID, err := strconv.ParseInt(vars["configId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /configs/{id} - Invalid config ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	userID := middleware.UserID(r)
	if userID == 0 {
		h.logger.Warn("DELETE /configs/{id} - Missing user ID: config_id=%d", configID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), configID, userID); err != nil {
		switch {
		case errors.Is(err, salonconfig.ErrConfigNotFound):
			h.logger.Warn("DELETE /configs/{id} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, salonconfig.ErrSalonNotFound):
			h.logger.Warn("DELETE /configs/{id} - Salon not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salonconfig.ErrAccessDenied):
			h.logger.Warn("DELETE /configs/{id} - Access denied: config_id=%d, user_id=%d", configID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /configs/{id} - Failed to delete config: config_id=%d, error=%v",
				configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /configs/{id} - Config deleted successfully: config_id=%d, user_id=%d",
		configID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
