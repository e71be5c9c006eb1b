package create_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	createBooking "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
// ID клиента берется из заголовка X-User-ID, а не из тела запроса
type CreateBookingRequest struct {
	SalonID     int64   `json:"salonId"`
	StaffID     int64   `json:"staffId"`
	ServiceID   int64   `json:"serviceId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	SalonID         int64   `json:"salonId"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	ReferenceCode   string  `json:"referenceCode"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	StaffName       *string `json:"staffName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID: customerID,
		SalonID:    r.SalonID,
		StaffID:    r.StaffID,
		ServiceID:  r.ServiceID,
		Date:       bookingDate,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		SalonID:         resp.SalonID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		ReferenceCode:   resp.ReferenceCode,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		StaffName:       resp.StaffName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
