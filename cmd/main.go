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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	createAppointmentHandler "github.com/m04kA/SMC-TireBooking/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-TireBooking/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-TireBooking/internal/api/handlers/get_availability"
	healthHandler "github.com/m04kA/SMC-TireBooking/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-TireBooking/internal/api/handlers/list_appointments"
	purgeAppointmentHandler "github.com/m04kA/SMC-TireBooking/internal/api/handlers/purge_appointment"
	updateDetailsHandler "github.com/m04kA/SMC-TireBooking/internal/api/handlers/update_appointment_details"
	updateStatusHandler "github.com/m04kA/SMC-TireBooking/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-TireBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TireBooking/internal/config"
	appointmentRepo "github.com/m04kA/SMC-TireBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-TireBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TireBooking/internal/integrations/authservice"
	"github.com/m04kA/SMC-TireBooking/internal/policy"
	appointmentsService "github.com/m04kA/SMC-TireBooking/internal/service/appointments"
	"github.com/m04kA/SMC-TireBooking/internal/service/capacity"
	createAppointmentUC "github.com/m04kA/SMC-TireBooking/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/m04kA/SMC-TireBooking/internal/usecase/get_availability"
	updateDetailsUC "github.com/m04kA/SMC-TireBooking/internal/usecase/update_appointment_details"
	"github.com/m04kA/SMC-TireBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireBooking/pkg/logger"
	"github.com/m04kA/SMC-TireBooking/pkg/metrics"
	"github.com/m04kA/SMC-TireBooking/pkg/txmanager"
)

// appointmentStore хранилище записей (PostgreSQL или память)
type appointmentStore interface {
	createAppointmentUC.AppointmentRepository
	updateDetailsUC.AppointmentRepository
	appointmentsService.AppointmentRepository
	capacity.AppointmentCounter
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage собранный слой хранения
type storage struct {
	store  appointmentStore
	tx     transactionManager
	pinger healthHandler.Pinger
	close  func()
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "tire-booking",
		Short:        "Tire garage appointment scheduling service",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "Path to TOML config")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runServer(cfg, *configPath)
		},
	}
}

func runServer(cfg *config.Config, configPath string) error {
	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-TireBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище записей
	st, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		return err
	}
	defer st.close()

	// Поиск роли: без URL роль берется только из токена
	var roleLookup policy.RoleLookup
	if cfg.Auth.RoleLookupURL != "" {
		roleLookup = authservice.NewClient(
			cfg.Auth.RoleLookupURL,
			cfg.Auth.APIKey,
			time.Duration(cfg.Auth.Timeout)*time.Second,
			log,
		)
		log.Info("Role lookup client initialized (url=%s timeout=%ds)", cfg.Auth.RoleLookupURL, cfg.Auth.Timeout)
	} else {
		log.Warn("Role lookup URL is not configured, roles will be taken from token metadata")
	}
	roleResolver := policy.NewRoleResolver(roleLookup, log)

	// Инициализируем сервисы и use cases
	hours := cfg.BusinessHours()
	capacityChecker := capacity.NewChecker(st.store)

	appointmentSvc := appointmentsService.NewService(st.store, metricsCollector, log)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(capacityChecker, hours, metricsCollector, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		st.store,
		capacityChecker,
		st.tx,
		hours,
		metricsCollector,
		log,
	)
	updateDetailsUseCase := updateDetailsUC.NewUseCase(
		st.store,
		capacityChecker,
		st.tx,
		hours,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentSvc, log)
	updateDetails := updateDetailsHandler.NewHandler(updateDetailsUseCase, log)
	purgeAppointment := purgeAppointmentHandler.NewHandler(appointmentSvc, log)
	health := healthHandler.NewHandler(st.pinger, log)

	identity := middleware.NewIdentity(middleware.JWTConfig{
		SigningKey: []byte(cfg.Auth.JWTSecret),
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
	}, roleResolver, log)

	// Создание записи анонимом ограничивается по IP
	var createHandler http.Handler = http.HandlerFunc(createAppointment.Handle)
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		limiter := middleware.NewRateLimiter(
			rdb,
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.Window)*time.Second,
			cfg.RateLimit.Prefix,
			cfg.RateLimit.FailOpen,
			log,
		)
		createHandler = limiter.Middleware(createHandler)
		log.Info("Rate limiting enabled (redis=%s limit=%d window=%ds fail_open=%t)",
			cfg.Redis.Addr, cfg.RateLimit.Limit, cfg.RateLimit.Window, cfg.RateLimit.FailOpen)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix, вызывающий определяется по Bearer токену (без токена - аноним)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(identity.Middleware)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи (аноним, клиент или администратор)
	api.Handle("/appointments", createHandler).Methods(http.MethodPost)

	// Список записей (аноним получает пустой список)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireIdentity)

	idPath := "/appointments/{" + handlers.AppointmentIDVar + "}"

	protected.HandleFunc(idPath, getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc(idPath+"/status", updateStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc(idPath, updateDetails.Handle).Methods(http.MethodPatch)

	// Окончательное удаление, отдельно от отмены
	protected.HandleFunc("/admin"+idPath, purgeAppointment.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		close(stopMetricsCh)
		return err
	}

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// openStorage подключает PostgreSQL или создает хранилище в памяти
func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		log.Warn("Using in-memory appointment store, data will be lost on restart")
		return &storage{
			store: store,
			tx:    memory.NewTxManager(store),
			close: func() {},
		}, nil
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обертка собирает метрики запросов; без коллектора только проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)
	if m != nil {
		log.Info("Database metrics collection started")
	}

	return &storage{
		store:  appointmentRepo.NewRepository(wrappedDB),
		tx:     txmanager.NewTransactionManager(wrappedDB),
		pinger: wrappedDB,
		close:  func() { _ = db.Close() },
	}, nil
}

// openDB открывает пул соединений с PostgreSQL и проверяет подключение
func openDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
