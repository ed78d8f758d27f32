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
	"github.com/redis/go-redis/v9"

	blockedDatesHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/blocked_dates"
	bookingPolicyHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/booking_policy"
	businessHoursHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/business_hours"
	cancelAppointmentHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/get_available_slots"
	getCustomerAppointmentsHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/get_customer_appointments"
	getTenantAppointmentsHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/get_tenant_appointments"
	previewRecurringHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/preview_recurring"
	specialDaysHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/special_days"
	staffScheduleHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/staff_schedule"
	suggestRescheduleHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/suggest_reschedule"
	updateStatusHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/update_appointment_status"
	validateDatetimeHandler "github.com/barbersmart/BS-AvailabilityService/internal/api/handlers/validate_datetime"
	"github.com/barbersmart/BS-AvailabilityService/internal/api/middleware"
	"github.com/barbersmart/BS-AvailabilityService/internal/config"
	"github.com/barbersmart/BS-AvailabilityService/internal/infra/cache/conversation"
	appointmentRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/appointment"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	directoryClient "github.com/barbersmart/BS-AvailabilityService/internal/integrations/directory"
	messagingClient "github.com/barbersmart/BS-AvailabilityService/internal/integrations/messaging"
	appointmentsService "github.com/barbersmart/BS-AvailabilityService/internal/service/appointments"
	scheduleService "github.com/barbersmart/BS-AvailabilityService/internal/service/schedule"
	createAppointmentUC "github.com/barbersmart/BS-AvailabilityService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/barbersmart/BS-AvailabilityService/internal/usecase/get_available_slots"
	previewRecurringUC "github.com/barbersmart/BS-AvailabilityService/internal/usecase/preview_recurring"
	suggestRescheduleUC "github.com/barbersmart/BS-AvailabilityService/internal/usecase/suggest_reschedule"
	validateDatetimeUC "github.com/barbersmart/BS-AvailabilityService/internal/usecase/validate_datetime"
	"github.com/barbersmart/BS-AvailabilityService/pkg/dbmetrics"
	"github.com/barbersmart/BS-AvailabilityService/pkg/logger"
	"github.com/barbersmart/BS-AvailabilityService/pkg/metrics"
	"github.com/barbersmart/BS-AvailabilityService/pkg/simpletxmanager"
	"github.com/barbersmart/BS-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting BS-AvailabilityService...")
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

	// Подключаемся к Redis (контекст диалогов восстановления)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	messenger := messagingClient.NewClient(
		cfg.Messaging.URL,
		cfg.Messaging.APIKey,
		time.Duration(cfg.Messaging.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Directory=%s timeout=%ds, Messaging=%s timeout=%ds)",
		cfg.Directory.URL, cfg.Directory.Timeout, cfg.Messaging.URL, cfg.Messaging.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище контекста диалогов переноса
	conversationStore := conversation.NewStore(
		rdb,
		time.Duration(cfg.Recovery.ConversationTTLHours)*time.Hour,
	)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, log)

	// Инициализируем use cases
	validateDatetimeUseCase := validateDatetimeUC.NewUseCase(scheduleRepository, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		txMgr,
		log,
	)
	previewRecurringUseCase := previewRecurringUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		log,
	)
	suggestRescheduleUseCase := suggestRescheduleUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		conversationStore,
		messenger,
		suggestRescheduleUC.Config{
			SuggestionDays: cfg.Recovery.SuggestionDays,
			MaxSuggestions: cfg.Recovery.MaxSuggestions,
		},
		log,
	)

	// Инициализируем handlers
	validateDatetime := validateDatetimeHandler.NewHandler(validateDatetimeUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	previewRecurring := previewRecurringHandler.NewHandler(previewRecurringUseCase, log)
	suggestReschedule := suggestRescheduleHandler.NewHandler(suggestRescheduleUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getTenantAppointments := getTenantAppointmentsHandler.NewHandler(appointmentSvc, log)
	businessHours := businessHoursHandler.NewHandler(scheduleSvc, log)
	staffSchedule := staffScheduleHandler.NewHandler(scheduleSvc, log)
	specialDays := specialDaysHandler.NewHandler(scheduleSvc, log)
	blockedDates := blockedDatesHandler.NewHandler(scheduleSvc, log)
	bookingPolicy := bookingPolicyHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Проверка даты и времени на доступность
	api.HandleFunc("/tenants/{tenantId}/validate-datetime",
		validateDatetime.Handle).Methods(http.MethodGet)

	// Получение доступных слотов
	api.HandleFunc("/tenants/{tenantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Часы работы барбершопа
	api.HandleFunc("/tenants/{tenantId}/business-hours",
		businessHours.HandleGet).Methods(http.MethodGet)

	// Политика бронирования
	api.HandleFunc("/tenants/{tenantId}/policy",
		bookingPolicy.HandleGet).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/tenants/{tenantId}/appointments",
		createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}",
		getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel",
		cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status",
		updateStatus.Handle).Methods(http.MethodPatch)

	// Неявка с предложением переноса
	protected.HandleFunc("/appointments/{appointmentId}/no-show",
		suggestReschedule.Handle).Methods(http.MethodPost)

	// История записей клиента
	protected.HandleFunc("/appointments",
		getCustomerAppointments.Handle).Methods(http.MethodGet)

	// Список записей барбершопа
	protected.HandleFunc("/tenants/{tenantId}/appointments",
		getTenantAppointments.Handle).Methods(http.MethodGet)

	// Предпросмотр повторяющейся серии
	protected.HandleFunc("/tenants/{tenantId}/recurring-preview",
		previewRecurring.Handle).Methods(http.MethodPost)

	// --- Управление расписанием (для менеджеров) ---
	// Замена часов работы
	protected.HandleFunc("/tenants/{tenantId}/business-hours",
		businessHours.HandlePut).Methods(http.MethodPut)

	// График мастера
	protected.HandleFunc("/tenants/{tenantId}/staff/{staffId}/schedule",
		staffSchedule.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/staff/{staffId}/schedule",
		staffSchedule.HandlePut).Methods(http.MethodPut)

	// Особые дни
	protected.HandleFunc("/tenants/{tenantId}/special-days",
		specialDays.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/special-days",
		specialDays.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/special-days/{dayId}",
		specialDays.HandleDelete).Methods(http.MethodDelete)

	// Блокировки дат
	protected.HandleFunc("/tenants/{tenantId}/blocked-dates",
		blockedDates.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/blocked-dates",
		blockedDates.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/blocked-dates/{blockId}",
		blockedDates.HandleDelete).Methods(http.MethodDelete)

	// Политика бронирования
	protected.HandleFunc("/tenants/{tenantId}/policy",
		bookingPolicy.HandlePut).Methods(http.MethodPut)

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
