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

	cancelBookingHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/create_booking"
	createCustomerHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/create_customer"
	createUnitHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/create_unit"
	getBookingHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/get_booking"
	getSettingsHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/list_bookings"
	listCustomersHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/list_customers"
	listUnitsHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/list_units"
	markNoShowHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/mark_no_show"
	reportAgentActivityHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/report_agent_activity"
	reportCancellationsHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/report_cancellations"
	reportDashboardHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/report_dashboard"
	reportOccupancyHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/report_occupancy"
	reportSummaryHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/report_summary"
	searchBookingsHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/search_bookings"
	todayCheckInsHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/today_check_ins"
	todayCheckOutsHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/today_check_outs"
	updateBookingHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/update_booking"
	updateCustomerHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/update_customer"
	updateSettingsHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/update_settings"
	updateUnitHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/update_unit"
	whatsappLinkHandler "github.com/m04kA/RIH-BookingService/internal/api/handlers/whatsapp_link"
	"github.com/m04kA/RIH-BookingService/internal/api/middleware"
	"github.com/m04kA/RIH-BookingService/internal/config"
	auditRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/audit"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/customer"
	settingsRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/settings"
	unitRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/unit"
	notifierClient "github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/RIH-BookingService/internal/service/bookings"
	customersService "github.com/m04kA/RIH-BookingService/internal/service/customers"
	reportsService "github.com/m04kA/RIH-BookingService/internal/service/reports"
	settingsService "github.com/m04kA/RIH-BookingService/internal/service/settings"
	unitsService "github.com/m04kA/RIH-BookingService/internal/service/units"
	whatsappService "github.com/m04kA/RIH-BookingService/internal/service/whatsapp"
	cancelBookingUC "github.com/m04kA/RIH-BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/RIH-BookingService/internal/usecase/create_booking"
	sweepExpiredUC "github.com/m04kA/RIH-BookingService/internal/usecase/sweep_expired"
	updateBookingUC "github.com/m04kA/RIH-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/RIH-BookingService/internal/worker"
	"github.com/m04kA/RIH-BookingService/pkg/logger"
	"github.com/m04kA/RIH-BookingService/pkg/metrics"
	"github.com/m04kA/RIH-BookingService/pkg/txmanager"
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

	log.Info("Starting RIH-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем клиент уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (url=%s timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	unitRepository := unitRepo.NewRepository(db)
	customerRepository := customerRepo.NewRepository(db)
	auditRepository := auditRepo.NewRepository(db)
	settingsRepository := settingsRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		unitRepository,
		auditRepository,
		txMgr,
		log,
	)
	unitSvc := unitsService.NewService(unitRepository, log)
	customerSvc := customersService.NewService(customerRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)
	reportSvc := reportsService.NewService(bookingRepository, unitRepository, log)
	whatsappSvc := whatsappService.NewService(
		bookingRepository,
		customerRepository,
		unitRepository,
		settingsRepository,
		log,
	)

	var createMetrics createBookingUC.CreateMetrics = createBookingUC.NopMetrics{}
	if cfg.Metrics.Enabled {
		createMetrics = metricsCollector
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		unitRepository,
		customerRepository,
		settingsSvc,
		auditRepository,
		notifier,
		txMgr,
		createMetrics,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		unitRepository,
		settingsSvc,
		auditRepository,
		notifier,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		auditRepository,
		notifier,
		txMgr,
		log,
	)

	var sweepMetrics sweepExpiredUC.SweepMetrics = sweepExpiredUC.NopMetrics{}
	if cfg.Metrics.Enabled {
		sweepMetrics = metricsCollector
	}
	sweepExpiredUseCase := sweepExpiredUC.NewUseCase(
		bookingRepository,
		auditRepository,
		notifier,
		txMgr,
		sweepMetrics,
		log,
	)

	// Фоновая отмена просроченных tentative-броней
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	if cfg.Sweeper.Enabled {
		sweeper := worker.NewSweeper(
			sweepExpiredUseCase,
			time.Duration(cfg.Sweeper.IntervalMinutes)*time.Minute,
			log,
		)
		go sweeper.Run(sweeperCtx)
		log.Info("Expiry sweeper started (interval=%dm)", cfg.Sweeper.IntervalMinutes)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	searchBookings := searchBookingsHandler.NewHandler(bookingSvc, log)
	todayCheckIns := todayCheckInsHandler.NewHandler(bookingSvc, log)
	todayCheckOuts := todayCheckOutsHandler.NewHandler(bookingSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	whatsappLink := whatsappLinkHandler.NewHandler(whatsappSvc, log)
	listUnits := listUnitsHandler.NewHandler(unitSvc, log)
	createUnit := createUnitHandler.NewHandler(unitSvc, log)
	updateUnit := updateUnitHandler.NewHandler(unitSvc, log)
	listCustomers := listCustomersHandler.NewHandler(customerSvc, log)
	createCustomer := createCustomerHandler.NewHandler(customerSvc, log)
	updateCustomer := updateCustomerHandler.NewHandler(customerSvc, log)
	reportSummary := reportSummaryHandler.NewHandler(reportSvc, log)
	reportOccupancy := reportOccupancyHandler.NewHandler(reportSvc, log)
	reportAgentActivity := reportAgentActivityHandler.NewHandler(reportSvc, log)
	reportCancellations := reportCancellationsHandler.NewHandler(reportSvc, log)
	reportDashboard := reportDashboardHandler.NewHandler(reportSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limiting enabled (rps=%.1f burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; все маршруты требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	// Фиксированные пути регистрируются раньше {bookingId}
	api.HandleFunc("/bookings/search-phone", searchBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/today-check-ins", todayCheckIns.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/today-check-outs", todayCheckOuts.Handle).Methods(http.MethodGet)

	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/whatsapp-url", whatsappLink.Handle).Methods(http.MethodGet)

	// --- Единицы размещения ---
	api.HandleFunc("/units", listUnits.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units", createUnit.Handle).Methods(http.MethodPost)
	api.HandleFunc("/units/{unitId}", updateUnit.Handle).Methods(http.MethodPut)

	// --- Клиенты ---
	api.HandleFunc("/customers", listCustomers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/customers", createCustomer.Handle).Methods(http.MethodPost)
	api.HandleFunc("/customers/{customerId}", updateCustomer.Handle).Methods(http.MethodPut)

	// --- Отчеты ---
	api.HandleFunc("/reports/summary", reportSummary.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reports/occupancy", reportOccupancy.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reports/agent-activity", reportAgentActivity.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reports/cancellations", reportCancellations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reports/today-dashboard", reportDashboard.Handle).Methods(http.MethodGet)

	// --- Настройки ---
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновый sweeper
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}