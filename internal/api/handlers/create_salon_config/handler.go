package create_salon_config

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
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidBody        = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры конфигурации"
	msgUnauthorized       = "пользователь не авторизован"
	msgSalonNotFound      = "салон не найден"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgAccessDenied       = "доступ запрещен"
	msgConfigExists       = "конфигурация с такими параметрами уже существует"
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

// Handle POST /api/v1/salons/{salonId}/config
// Доступно только менеджерам салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/config - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID := middleware.UserID(r)
	if userID == 0 {
		h.logger.Warn("POST /salons/{id}/config - Missing user ID: salon_id=%d", salonID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/config - Invalid request body: salon_id=%d, error=%v", salonID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	config, err := h.service.Create(r.Context(), req.ToServiceRequest(salonID, userID))
	if err != nil {
		switch {
		case errors.Is(err, salonconfig.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/config - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salonconfig.ErrStaffNotFound):
			h.logger.Warn("POST /salons/{id}/config - Staff not found: salon_id=%d, staff_id=%v",
				salonID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, salonconfig.ErrServiceNotFound):
			h.logger.Warn("POST /salons/{id}/config - Service not found: salon_id=%d, service_id=%v",
				salonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, salonconfig.ErrAccessDenied):
			h.logger.Warn("POST /salons/{id}/config - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, salonconfig.ErrConfigAlreadyExists):
			h.logger.Warn("POST /salons/{id}/config - Config already exists: salon_id=%d, staff_id=%v, service_id=%v",
				salonID, req.StaffID, req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgConfigExists)

		case errors.Is(err, salonconfig.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/config - Invalid params: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /salons/{id}/config - Failed to create config: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/config - Config created successfully: salon_id=%d, config_id=%d",
		salonID, config.ID)
	handlers.RespondJSON(w, http.StatusCreated, config)
}
