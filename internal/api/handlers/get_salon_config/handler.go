package get_salon_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig"
	"github.com/m04kA/Salon-BookingService/internal/service/salonconfig/models"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidStaffID   = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgConfigNotFound   = "конфигурация не найдена"
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

// Handle GET /api/v1/salons/{salonId}/config
// Query params: staffId (optional), serviceId (optional)
// Публичный endpoint - возвращает конфигурацию с учетом иерархии приоритетов:
// service@staff > staff > service > global
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/config - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	req := &models.GetConfigRequest{
		SalonID: salonID,
	}

	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/config - Invalid staff ID: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/config - Invalid service ID: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	config, err := h.service.GetWithHierarchy(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, salonconfig.ErrConfigNotFound):
			h.logger.Warn("GET /salons/{id}/config - Config not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("GET /salons/{id}/config - Failed to get config: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/config - Config retrieved successfully: salon_id=%d, config_id=%d",
		salonID, config.ID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
