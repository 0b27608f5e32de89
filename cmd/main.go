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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	attachOutcomeHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/attach_outcome"
	bookSessionHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/book_session"
	cancelSessionHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/cancel_session"
	getAvailabilityHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/get_availability"
	getBookableSlotsHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/get_bookable_slots"
	getFullAvailabilityHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/get_full_availability"
	getSessionHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/get_session"
	getUserSessionsHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/get_user_sessions"
	markNoShowHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/mark_no_show"
	putAvailabilityHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/put_availability"
	startSessionHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/start_session"
	sweepCompletionsHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/sweep_completions"
	updateSessionMetaHandler "github.com/mentorgrid/MG-SessionService/internal/api/handlers/update_session_meta"
	"github.com/mentorgrid/MG-SessionService/internal/api/middleware"
	"github.com/mentorgrid/MG-SessionService/internal/config"
	availabilityRepo "github.com/mentorgrid/MG-SessionService/internal/infra/storage/availability"
	sessionRepo "github.com/mentorgrid/MG-SessionService/internal/infra/storage/session"
	notifierClient "github.com/mentorgrid/MG-SessionService/internal/integrations/notifier"
	profileServiceClient "github.com/mentorgrid/MG-SessionService/internal/integrations/profileservice"
	availabilityService "github.com/mentorgrid/MG-SessionService/internal/service/availability"
	sessionsService "github.com/mentorgrid/MG-SessionService/internal/service/sessions"
	bookSessionUC "github.com/mentorgrid/MG-SessionService/internal/usecase/book_session"
	resolveSlotsUC "github.com/mentorgrid/MG-SessionService/internal/usecase/resolve_slots"
	sweepCompletionsUC "github.com/mentorgrid/MG-SessionService/internal/usecase/sweep_completions"
	"github.com/mentorgrid/MG-SessionService/migrations"
	"github.com/mentorgrid/MG-SessionService/pkg/dbmetrics"
	"github.com/mentorgrid/MG-SessionService/pkg/logger"
	"github.com/mentorgrid/MG-SessionService/pkg/metrics"
	"github.com/mentorgrid/MG-SessionService/pkg/simpletxmanager"
	"github.com/mentorgrid/MG-SessionService/pkg/txmanager"
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

	log.Info("Starting MG-SessionService...")
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

	// Применяем миграции
	if cfg.Database.RunMigrations {
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, "."); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied")
	}

	// Инициализируем интеграционных клиентов
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		cfg.Notifier.Enabled,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds, Notifier=%s enabled=%t)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout, cfg.Notifier.URL, cfg.Notifier.Enabled)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		sessionRepository      *sessionRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	sessionSvc := sessionsService.NewService(sessionRepository, notifier, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, profileClient, txMgr, log)

	// Инициализируем use cases
	bookSessionUseCase := bookSessionUC.NewUseCase(
		sessionRepository,
		availabilityRepository,
		profileClient,
		notifier,
		txMgr,
		log,
	)
	resolveSlotsUseCase := resolveSlotsUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		profileClient,
		log,
	)
	sweepCompletionsUseCase := sweepCompletionsUC.NewUseCase(sessionRepository, notifier, log)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getFullAvailability := getFullAvailabilityHandler.NewHandler(availabilitySvc, log)
	putAvailability := putAvailabilityHandler.NewHandler(availabilitySvc, log)
	getBookableSlots := getBookableSlotsHandler.NewHandler(resolveSlotsUseCase, log)
	bookSession := bookSessionHandler.NewHandler(bookSessionUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	getUserSessions := getUserSessionsHandler.NewHandler(sessionSvc, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionSvc, log)
	startSession := startSessionHandler.NewHandler(sessionSvc, log)
	attachOutcome := attachOutcomeHandler.NewHandler(sessionSvc, log)
	markNoShow := markNoShowHandler.NewHandler(sessionSvc, log)
	updateSessionMeta := updateSessionMetaHandler.NewHandler(sessionSvc, log)
	sweepCompletions := sweepCompletionsHandler.NewHandler(sweepCompletionsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Внутренние ручки (за сетевым периметром, без аутентификации)
	r.HandleFunc("/internal/sweep-completions", sweepCompletions.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Публичное расписание ментора
	api.HandleFunc("/mentors/{mentorId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Доступные для бронирования слоты
	api.HandleFunc("/mentors/{mentorId}/bookable-slots", getBookableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Доступность ---
	// Полное расписание (включая выключенные слоты)
	protected.HandleFunc("/mentors/{mentorId}/availability/full", getFullAvailability.Handle).Methods(http.MethodGet)

	// Замена недельного расписания
	protected.HandleFunc("/mentors/{mentorId}/availability", putAvailability.Handle).Methods(http.MethodPut)

	// --- Сессии ---
	// Бронирование сессии
	protected.HandleFunc("/sessions", bookSession.Handle).Methods(http.MethodPost)

	// Получение сессии по ID
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// История сессий пользователя
	protected.HandleFunc("/users/{userId}/sessions", getUserSessions.Handle).Methods(http.MethodGet)

	// Отмена сессии
	protected.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPatch)

	// Начало сессии ментором
	protected.HandleFunc("/sessions/{sessionId}/start", startSession.Handle).Methods(http.MethodPatch)

	// Оценка и отзыв
	protected.HandleFunc("/sessions/{sessionId}/outcome", attachOutcome.Handle).Methods(http.MethodPatch)

	// Административная отметка неявки
	protected.HandleFunc("/sessions/{sessionId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// Ссылка на встречу и заметки
	protected.HandleFunc("/sessions/{sessionId}/meta", updateSessionMeta.Handle).Methods(http.MethodPatch)

	// Фоновый проход автозавершения
	stopSweepCh := make(chan struct{})
	go func() {
		interval := time.Duration(cfg.Scheduler.SweepIntervalSeconds) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info("Completion sweep scheduler started (interval=%s)", interval)

		for {
			select {
			case <-ticker.C:
				resp, err := sweepCompletionsUseCase.Execute(context.Background())
				if err != nil {
					log.Error("Scheduled sweep failed: %v", err)
					continue
				}
				if cfg.Metrics.Enabled && resp.Completed > 0 {
					metricsCollector.SweepTransitionsTotal.Add(float64(resp.Completed))
				}
			case <-stopSweepCh:
				log.Info("Completion sweep scheduler stopped")
				return
			}
		}
	}()

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

	close(stopSweepCh)

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
