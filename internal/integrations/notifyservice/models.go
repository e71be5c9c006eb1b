package notifyservice

// ReminderRequest запрос на отправку напоминания о визите
// Доставка (SMS/WhatsApp) выполняется на стороне NotifyService
type ReminderRequest struct {
	CustomerID    int64  `json:"customer_id"`
	SalonID       int64  `json:"salon_id"`
	BookingID     int64  `json:"booking_id"`
	ReferenceCode string `json:"reference_code"`
	SalonName     string `json:"salon_name,omitempty"`
	ServiceName   string `json:"service_name"`
	BookingDate   string `json:"booking_date"` // YYYY-MM-DD
	StartTime     string `json:"start_time"`   // HH:MM
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
