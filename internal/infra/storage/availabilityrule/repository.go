package availabilityrule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"salon_id",
	"staff_id",
	"day_of_week",
	"specific_date",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило доступности
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"salon_id",
			"staff_id",
			"day_of_week",
			"specific_date",
			"start_time",
			"end_time",
			"is_available",
		).
		Values(
			rule.SalonID,
			rule.StaffID,
			rule.DayOfWeek,
			rule.SpecificDate,
			rule.StartTime,
			rule.EndTime,
			rule.IsAvailable,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило доступности по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := r.scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ListBySalon получает правила доступности салона.
// При указании staffID возвращаются правила мастера вместе с общими
// правилами салона (staff_id IS NULL).
func (r *Repository) ListBySalon(ctx context.Context, salonID int64, staffID *int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"salon_id": salonID})

	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"staff_id": *staffID},
			squirrel.Eq{"staff_id": nil},
		})
	}

	query, args, err := selectBuilder.
		OrderBy("specific_date ASC NULLS LAST", "day_of_week ASC NULLS LAST", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		rule, err := r.scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Delete удаляет правило доступности по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_rules").
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
		return ErrRuleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRule(row rowScanner) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var specificDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.SalonID,
		&rule.StaffID,
		&rule.DayOfWeek,
		&specificDate,
		&rule.StartTime,
		&rule.EndTime,
		&rule.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if specificDate.Valid {
		rule.SpecificDate = &specificDate.Time
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
