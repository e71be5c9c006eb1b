package update_salon_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig"
	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig/models"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidStaffID   = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidParams    = "некорректные параметры конфигурации"
	msgUnauthorized     = "пользователь не авторизован"
	msgConfigNotFound   = "конфигурация не найдена"
	msgSalonNotFound    = "салон не найден"
	msgAccessDenied     = "доступ запрещен"
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

// Handle PUT /api/v1/salons/{salonId}/config
// Query params: staffId (optional), serviceId (optional) - задают уровень конфигурации
// Доступно только менеджерам салона
// Находит конфигурацию через иерархический поиск и обновляет её
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/config - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID := middleware.UserID(r)
	if userID == 0 {
		h.logger.Warn("PUT /salons/{id}/config - Missing user ID: salon_id=%d", salonID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	getReq := &models.GetConfigRequest{
		SalonID: salonID,
	}

	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("PUT /salons/{id}/config - Invalid staff ID: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		getReq.StaffID = &staffID
	}

	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("PUT /salons/{id}/config - Invalid service ID: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		getReq.ServiceID = &serviceID
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/config - Invalid request body: salon_id=%d, error=%v", salonID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Находим конфигурацию для обновления через иерархический поиск
	existingConfig, err := h.service.GetWithHierarchy(r.Context(), getReq)
	if err != nil {
		switch {
		case errors.Is(err, salonconfig.ErrConfigNotFound):
			h.logger.Warn("PUT /salons/{id}/config - Config not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("PUT /salons/{id}/config - Failed to find config: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	config, err := h.service.Update(r.Context(), existingConfig.ID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, salonconfig.ErrConfigNotFound):
			h.logger.Warn("PUT /salons/{id}/config - Config not found during update: config_id=%d", existingConfig.ID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, salonconfig.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id}/config - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salonconfig.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id}/config - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, salonconfig.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/config - Invalid params: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("PUT /salons/{id}/config - Failed to update config: config_id=%d, error=%v",
				existingConfig.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/config - Config updated successfully: salon_id=%d, config_id=%d",
		salonID, config.ID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
