package delete_availability_rule

import (
	"context"
)

type RuleService interface {
	Delete(ctx context.Context, id int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
