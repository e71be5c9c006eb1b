package get_customer_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgUnauthorized      = "пользователь не авторизован"
	msgAccessDenied      = "доступ запрещен"
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

// Handle GET /api/v1/customers/{customerId}/bookings
// Query params: status (optional)
// Клиент может смотреть только свою историю бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/bookings - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	userID := middleware.UserID(r)
	if userID == 0 {
		h.logger.Warn("GET /customers/{id}/bookings - Missing user ID: customer_id=%d", customerID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// История бронирований доступна только самому клиенту
	if userID != customerID {
		h.logger.Warn("GET /customers/{id}/bookings - Access denied: customer_id=%d, user_id=%d",
			customerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetCustomerBookingsRequest{
		CustomerID: customerID,
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/bookings - Invalid status: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{id}/bookings - Failed to get bookings: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/bookings - Bookings retrieved successfully: customer_id=%d, count=%d",
		customerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
