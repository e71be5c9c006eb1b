package delete_availability_rule

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
	msgInvalidRuleID = "некорректный ID правила"
	msgUnauthorized  = "пользователь не авторизован"
	msgRuleNotFound  = "правило не найдено"
	msgSalonNotFound = "салон не найден"
	msgAccessDenied  = "доступ запрещен"
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

// Handle DELETE /api/v1/availability-rules/{ruleId}
// Доступно только менеджерам салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /availability-rules/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	userID := middleware.UserID(r)
	if userID == 0 {
		h.logger.Warn("DELETE /availability-rules/{id} - Missing user ID: rule_id=%d", ruleID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), ruleID, userID); err != nil {
		switch {
		case errors.Is(err, availabilityrules.ErrRuleNotFound):
			h.logger.Warn("DELETE /availability-rules/{id} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, availabilityrules.ErrSalonNotFound):
			h.logger.Warn("DELETE /availability-rules/{id} - Salon not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, availabilityrules.ErrAccessDenied):
			h.logger.Warn("DELETE /availability-rules/{id} - Access denied: rule_id=%d, user_id=%d",
				ruleID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /availability-rules/{id} - Failed to delete rule: rule_id=%d, error=%v",
				ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability-rules/{id} - Rule deleted successfully: rule_id=%d, user_id=%d",
		ruleID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
