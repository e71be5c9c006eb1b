package get_salon_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
// Поддерживаемые фильтры: staffId, startDate, endDate, status, includeInactive
func ToServiceRequest(salonID, userID int64, query url.Values) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{
		UserID:  userID,
		SalonID: salonID,
	}

	if staffIDStr := query.Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
