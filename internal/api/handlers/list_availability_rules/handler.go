package list_availability_rules

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/service/availabilityrules/models"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidStaffID = "некорректный ID мастера"
)

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/availability-rules
// Query params: staffId (optional)
// Публичный endpoint - правила нужны и клиентам для страницы записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/availability-rules - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	req := &models.ListRulesRequest{
		SalonID: salonID,
	}

	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/availability-rules - Invalid staff ID: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /salons/{id}/availability-rules - Failed to list rules: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/availability-rules - Rules retrieved successfully: salon_id=%d, count=%d",
		salonID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
