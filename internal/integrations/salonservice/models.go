package salonservice

// Salon модель салона из SalonService (каталог салонов)
type Salon struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"` // публичный идентификатор страницы записи
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	ManagerIDs   []int64      `json:"manager_ids"`
	WorkingHours WorkingHours `json:"working_hours"`
}

// WorkingHours рабочие часы салона по дням недели
type WorkingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime *string `json:"close_time,omitempty"` // "18:00"
}

// Service модель услуги салона
type Service struct {
	ID              int64    `json:"id"`
	SalonID         int64    `json:"salon_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	StaffIDs        []int64  `json:"staff_ids"` // мастера, выполняющие услугу
}

// Staff модель мастера салона
type Staff struct {
	ID      int64  `json:"id"`
	SalonID int64  `json:"salon_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// IsManager проверяет, что пользователь является менеджером салона
func (s *Salon) IsManager(userID int64) bool {
	for _, id := range s.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от SalonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
