package salonconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("salonconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("salonconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("salonconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("salonconfig.repository: failed to scan row")

	// ErrDuplicateConfig возвращается при попытке создать дубликат конфигурации
	ErrDuplicateConfig = errors.New("salonconfig.repository: duplicate config for salon, staff and service")
)
