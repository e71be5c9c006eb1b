package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/cancel_booking"
	createRuleHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_availability_rule"
	createBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_booking"
	createConfigHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_salon_config"
	deleteRuleHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/delete_availability_rule"
	deleteConfigHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/delete_salon_config"
	getAvailableSlotsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_customer_bookings"
	getPublicSlotsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_public_slots"
	getSalonBookingsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_salon_bookings"
	getSalonConfigHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_salon_config"
	listRulesHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/list_availability_rules"
	listConfigsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/list_salon_configs"
	updateBookingStatusHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_booking_status"
	updateConfigHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_salon_config"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/config"
	ruleRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/availabilityrule"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salonconfig"
	notifyServiceClient "github.com/m04kA/Salon-BookingService/internal/integrations/notifyservice"
	salonServiceClient "github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	rulesService "github.com/m04kA/Salon-BookingService/internal/service/availabilityrules"
	bookingsService "github.com/m04kA/Salon-BookingService/internal/service/bookings"
	configService "github.com/m04kA/Salon-BookingService/internal/service/salonconfig"
	createBookingUC "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
	remindersWorker "github.com/m04kA/Salon-BookingService/internal/workers/reminders"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/logger"
	"github.com/m04kA/Salon-BookingService/pkg/metrics"
	"github.com/m04kA/Salon-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/Salon-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting Salon-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (SalonService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		configRepository  *configRepo.Repository
		ruleRepository    *ruleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		salonClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		salonClient,
		log,
	)
	rulesSvc := rulesService.NewService(
		ruleRepository,
		salonClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		configRepository,
		ruleRepository,
		salonClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		configRepository,
		ruleRepository,
		salonClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getPublicSlots := getPublicSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	getSalonConfig := getSalonConfigHandler.NewHandler(configSvc, log)
	createSalonConfig := createConfigHandler.NewHandler(configSvc, log)
	updateSalonConfig := updateConfigHandler.NewHandler(configSvc, log)
	listSalonConfigs := listConfigsHandler.NewHandler(configSvc, log)
	deleteSalonConfig := deleteConfigHandler.NewHandler(configSvc, log)
	createRule := createRuleHandler.NewHandler(rulesSvc, log)
	listRules := listRulesHandler.NewHandler(rulesSvc, log)
	deleteRule := deleteRuleHandler.NewHandler(rulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной request id для трассировки запросов в логах
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов для записи
	api.HandleFunc("/salons/{salonId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Публичная страница записи: салон задаётся slug-ом
	api.HandleFunc("/public/salons/{slug}/available-slots",
		getPublicSlots.Handle).Methods(http.MethodGet)

	// Получение конфигурации слотов салона (с учётом иерархии)
	api.HandleFunc("/salons/{salonId}/config",
		getSalonConfig.Handle).Methods(http.MethodGet)

	// Правила доступности салона
	api.HandleFunc("/salons/{salonId}/availability-rules",
		listRules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса бронирования (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	// Список бронирований салона
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// Конфигурации слотов
	protected.HandleFunc("/salons/{salonId}/config", createSalonConfig.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/config", updateSalonConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/configs", listSalonConfigs.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/configs/{configId}", deleteSalonConfig.Handle).Methods(http.MethodDelete)

	// Правила доступности
	protected.HandleFunc("/salons/{salonId}/availability-rules", createRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability-rules/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)

	// Запускаем воркер напоминаний (если включен)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if cfg.Reminders.Enabled {
		worker := remindersWorker.NewWorker(
			bookingRepository,
			notifyClient,
			log,
			cfg.Reminders.IntervalMinutes,
			cfg.Reminders.LeadTimeHours,
		)
		go worker.Run(workerCtx)
		log.Info("Reminders worker started (interval=%dm, lead_time=%dh)",
			cfg.Reminders.IntervalMinutes, cfg.Reminders.LeadTimeHours)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем воркер напоминаний
	stopWorker()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
