package salonconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"salon_id",
	"staff_id",
	"service_id",
	"scheduling_mode",
	"buffer_minutes",
	"min_booking_notice_hours",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию слотов
func (r *Repository) Create(ctx context.Context, config *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salon_slots_config").
		Columns(
			"salon_id",
			"staff_id",
			"service_id",
			"scheduling_mode",
			"buffer_minutes",
			"min_booking_notice_hours",
			"advance_booking_days",
		).
		Values(
			config.SalonID,
			config.StaffID,
			config.ServiceID,
			config.SchedulingMode,
			config.BufferMinutes,
			config.MinBookingNoticeHours,
			config.AdvanceBookingDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByID получает конфигурацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("salon_slots_config").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	config, err := r.scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetBySalonStaffAndService получает конфигурацию для точного сочетания
// салона, мастера и услуги (nil означает NULL в БД, а не "любой")
func (r *Repository) GetBySalonStaffAndService(ctx context.Context, salonID int64, staffID *int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("salon_slots_config").
		Where(squirrel.Eq{"salon_id": salonID})

	// squirrel.Eq с nil значением корректно генерирует IS NULL
	selectBuilder = selectBuilder.
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"service_id": serviceID})

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonStaffAndService - build select query: %v", ErrBuildQuery, err)
	}

	config, err := r.scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonStaffAndService - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Услуга у конкретного мастера (salon_id, staff_id, service_id)
// 2. Конкретный мастер (salon_id, staff_id, NULL)
// 3. Конкретная услуга (salon_id, NULL, service_id)
// 4. Глобальная конфигурация салона (salon_id, NULL, NULL)
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, salonID int64, staffID *int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
	// Кандидаты в порядке убывания приоритета
	candidates := [][2]*int64{
		{staffID, serviceID},
		{staffID, nil},
		{nil, serviceID},
		{nil, nil},
	}

	for _, c := range candidates {
		config, err := r.GetBySalonStaffAndService(ctx, salonID, c[0], c[1])
		if err == ErrConfigNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		return config, nil
	}

	return nil, ErrConfigNotFound
}

// GetAllBySalon получает все конфигурации салона
func (r *Repository) GetAllBySalon(ctx context.Context, salonID int64) ([]*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("salon_slots_config").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SalonSlotsConfig, 0)
	for rows.Next() {
		config, err := r.scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllBySalon - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Update обновляет конфигурацию слотов по ID
func (r *Repository) Update(ctx context.Context, config *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salon_slots_config").
		Set("scheduling_mode", config.SchedulingMode).
		Set("buffer_minutes", config.BufferMinutes).
		Set("min_booking_notice_hours", config.MinBookingNoticeHours).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("salon_slots_config").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanConfig(row rowScanner) (*domain.SalonSlotsConfig, error) {
	var config domain.SalonSlotsConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.SalonID,
		&config.StaffID,
		&config.ServiceID,
		&config.SchedulingMode,
		&config.BufferMinutes,
		&config.MinBookingNoticeHours,
		&config.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
