package create_availability_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/availabilityrules"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidBody    = "некорректное тело запроса"
	msgInvalidParams  = "некорректные параметры правила"
	msgUnauthorized   = "пользователь не авторизован"
	msgSalonNotFound  = "салон не найден"
	msgStaffNotFound  = "мастер не найден"
	msgAccessDenied   = "доступ запрещен"
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

// Handle POST /api/v1/salons/{salonId}/availability-rules
// Доступно только менеджерам салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/availability-rules - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID := middleware.UserID(r)
	if userID == 0 {
		h.logger.Warn("POST /salons/{id}/availability-rules - Missing user ID: salon_id=%d", salonID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/availability-rules - Invalid request body: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	rule, err := h.service.Create(r.Context(), req.ToServiceRequest(salonID, userID))
	if err != nil {
		switch {
		case errors.Is(err, availabilityrules.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/availability-rules - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, availabilityrules.ErrStaffNotFound):
			h.logger.Warn("POST /salons/{id}/availability-rules - Staff not found: salon_id=%d, staff_id=%v",
				salonID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, availabilityrules.ErrAccessDenied):
			h.logger.Warn("POST /salons/{id}/availability-rules - Access denied: salon_id=%d, user_id=%d",
				salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, availabilityrules.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/availability-rules - Invalid params: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /salons/{id}/availability-rules - Failed to create rule: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/availability-rules - Rule created successfully: salon_id=%d, rule_id=%d",
		salonID, rule.ID)
	handlers.RespondJSON(w, http.StatusCreated, rule)
}
