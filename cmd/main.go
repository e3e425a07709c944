package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	cancelBookingHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_booking"
	getBookingQRHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_booking_qr"
	getCafeHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_cafe"
	getCafeBookingsHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_cafe_bookings"
	getCafeFiltersHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_cafe_filters"
	getCafeSettingsHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_cafe_settings"
	getMeHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_me"
	getUserBookingsHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/get_user_bookings"
	loginHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/logout"
	searchCafesHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/search_cafes"
	setBookingStatusHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/set_booking_status"
	signupHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/signup"
	updateCafeSettingsHandler "github.com/m04kA/CafeBookingService/internal/api/handlers/update_cafe_settings"
	"github.com/m04kA/CafeBookingService/internal/api/middleware"
	"github.com/m04kA/CafeBookingService/internal/availability"
	"github.com/m04kA/CafeBookingService/internal/config"
	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/fixtures"
	"github.com/m04kA/CafeBookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/booking"
	cafeRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/cafe"
	"github.com/m04kA/CafeBookingService/internal/infra/storage/schema"
	"github.com/m04kA/CafeBookingService/internal/infra/storage/session"
	settingsRepo "github.com/m04kA/CafeBookingService/internal/infra/storage/settings"
	userServiceClient "github.com/m04kA/CafeBookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/CafeBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/CafeBookingService/internal/service/catalog"
	identityService "github.com/m04kA/CafeBookingService/internal/service/identity"
	settingsService "github.com/m04kA/CafeBookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/CafeBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/CafeBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/CafeBookingService/pkg/dbmetrics"
	"github.com/m04kA/CafeBookingService/pkg/logger"
	"github.com/m04kA/CafeBookingService/pkg/metrics"
	"github.com/m04kA/CafeBookingService/pkg/psqlbuilder"
	"github.com/m04kA/CafeBookingService/pkg/simpletxmanager"
	"github.com/m04kA/CafeBookingService/pkg/txmanager"
)

// serializableRetries сколько раз запускать сериализуемую транзакцию на postgres
const serializableRetries = 3

// Наборы методов, которые нужны сразу нескольким потребителям
type (
	cafeRepository interface {
		catalogService.CafeRepository
		fixtures.CafeRepository
	}

	bookingRepository interface {
		bookingsService.BookingRepository
		createBookingUC.BookingRepository
		fixtures.BookingRepository
	}

	settingsRepository interface {
		settingsService.SettingsRepository
	}

	transactionManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	eventPublisher interface {
		Publish(ctx context.Context, event events.Event) error
		Close() error
	}
)

type storage struct {
	cafes     cafeRepository
	bookings  bookingRepository
	settings  settingsRepository
	txManager transactionManager
	close     func() error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if path := os.Getenv("CAFE_CONFIG"); path != "" {
		configPath = path
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.NewWithFormat(cfg.Logs.File, cfg.Logs.Level, cfg.Logs.Format)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CafeBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx := context.Background()

	// Хранилище
	store, err := openStorage(ctx, cfg, dbRecorder, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Каталог и демонстрационные бронирования
	if cfg.Booking.SeedFixtures {
		seeder := fixtures.NewSeeder(store.cafes, store.bookings, log)
		demoUserID := ""
		if cfg.Identity.Provider == config.IdentityStub && cfg.Identity.DemoEmail != "" {
			demoUserID = identityService.StubUserID(cfg.Identity.DemoEmail)
		}
		if err := seeder.Seed(ctx, time.Now(), demoUserID); err != nil {
			log.Fatal("Failed to seed fixtures: %v", err)
		}
	}

	// Хранилище сессий
	var sessionStore identityService.SessionStore
	switch cfg.Sessions.Driver {
	case config.SessionsRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		sessionStore = session.NewRedisStore(redisClient)
		log.Info("Sessions stored in redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	default:
		sessionStore = session.NewMemoryStore()
		log.Info("Sessions stored in memory")
	}

	// Публикация событий
	var publisher eventPublisher
	switch cfg.Events.Driver {
	case config.EventsKafka:
		writer := events.NewKafkaWriter(cfg.Events.Brokers, cfg.Events.Topic,
			time.Duration(cfg.Events.Timeout)*time.Second)
		publisher = events.NewKafkaPublisher(writer, log)
		log.Info("Booking events published to kafka (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	default:
		publisher = events.NewNoopPublisher()
	}
	defer publisher.Close()

	// Провайдер учетных записей
	var provider identityService.Provider
	switch cfg.Identity.Provider {
	case config.IdentityRemote:
		userClient := userServiceClient.NewClient(
			cfg.Identity.URL,
			time.Duration(cfg.Identity.Timeout)*time.Second,
			log,
		)
		provider = identityService.NewRemoteProvider(userClient)
		log.Info("Identity provider: UserService=%s timeout=%ds", cfg.Identity.URL, cfg.Identity.Timeout)
	default:
		provider = identityService.NewStubProvider()
		log.Info("Identity provider: stub, demo user %s", cfg.Identity.DemoEmail)
	}

	// Политика доступности слотов
	var policy availability.Policy
	switch cfg.Availability.Policy {
	case availability.PolicyRandom:
		seed := uint64(time.Now().UnixNano())
		policy = availability.NewRandom(cfg.Availability.UnavailableProbability, rand.NewPCG(seed, seed>>1))
		log.Warn("Availability policy: random (p=%.2f), results are not reproducible",
			cfg.Availability.UnavailableProbability)
	default:
		policy = availability.Deterministic()
		log.Info("Availability policy: deterministic")
	}

	defaults := domain.CafeSettings{
		TablesPerSlot:      cfg.Booking.DefaultTablesPerSlot,
		AdvanceBookingDays: cfg.Booking.DefaultAdvanceBookingDays,
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(store.cafes, log)
	settingsSvc := settingsService.NewService(store.settings, store.cafes, defaults, log)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.cafes,
		store.txManager,
		publisher,
		metricsCollector,
		log,
	)
	identitySvc := identityService.NewService(
		provider,
		sessionStore,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.cafes,
		store.bookings,
		store.settings,
		availability.ForBooking(cfg.Availability.Policy),
		store.txManager,
		publisher,
		metricsCollector,
		defaults,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.cafes,
		store.bookings,
		store.settings,
		policy,
		defaults,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	searchCafes := searchCafesHandler.NewHandler(catalogSvc, log)
	getCafeFilters := getCafeFiltersHandler.NewHandler(catalogSvc, log)
	getCafe := getCafeHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCafeSettings := getCafeSettingsHandler.NewHandler(settingsSvc, log)
	updateCafeSettings := updateCafeSettingsHandler.NewHandler(settingsSvc, log)
	login := loginHandler.NewHandler(identitySvc, log)
	signup := signupHandler.NewHandler(identitySvc, log)
	logout := logoutHandler.NewHandler(identitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingQR := getBookingQRHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCafeBookings := getCafeBookingsHandler.NewHandler(bookingSvc, log)
	setBookingStatus := setBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.Latency.SimulatedDelayMs > 0 {
		api.Use(middleware.Latency(time.Duration(cfg.Latency.SimulatedDelayMs) * time.Millisecond))
		log.Info("Simulated latency %dms enabled", cfg.Latency.SimulatedDelayMs)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог: /cafes/filters регистрируется раньше /cafes/{cafeId}
	api.HandleFunc("/cafes", searchCafes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cafes/filters", getCafeFilters.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cafes/{cafeId}", getCafe.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/cafes/{cafeId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Настройки бронирования кафе
	api.HandleFunc("/cafes/{cafeId}/settings", getCafeSettings.Handle).Methods(http.MethodGet)

	// Вход и регистрация (с ограничением частоты)
	authLimiter := middleware.NewRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst, log)
	limiterCtx, stopLimiter := context.WithCancel(ctx)
	go authLimiter.Run(limiterCtx, time.Minute)
	authRoutes := api.PathPrefix("/auth").Subrouter()
	limited := authRoutes.NewRoute().Subrouter()
	limited.Use(authLimiter.Middleware())
	limited.HandleFunc("/login", login.Handle).Methods(http.MethodPost)
	limited.HandleFunc("/signup", signup.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	sessionRoutes := authRoutes.NewRoute().Subrouter()
	sessionRoutes.Use(middleware.Auth(identitySvc, log))
	sessionRoutes.HandleFunc("/logout", logout.Handle).Methods(http.MethodPost)
	sessionRoutes.HandleFunc("/me", getMeHandler.Handle).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(identitySvc, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/qr", getBookingQR.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// OPERATOR ROUTES (требуют X-Operator-Key)
	// ============================================================

	if cfg.Operator.APIKey == "" {
		log.Warn("Operator API key is not set, operator routes will reject every request")
	}
	operator := api.NewRoute().Subrouter()
	operator.Use(middleware.OperatorKey(cfg.Operator.APIKey, log))
	operator.HandleFunc("/bookings/{bookingId}/status", setBookingStatus.Handle).Methods(http.MethodPatch)
	operator.HandleFunc("/cafes/{cafeId}/settings", updateCafeSettings.Handle).Methods(http.MethodPut)
	operator.HandleFunc("/cafes/{cafeId}/bookings", getCafeBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORS.AllowedOrigins)(r),
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
	close(stopMetricsCh)
	stopLimiter()

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

// openStorage выбирает хранилище по storage.driver.
// Для SQL драйверов применяет схему и оборачивает соединение метриками.
func openStorage(
	ctx context.Context,
	cfg *config.Config,
	recorder dbmetrics.Recorder,
	stop <-chan struct{},
	log *logger.Logger,
) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Info("Using in-memory storage")
		return &storage{
			cafes:     cafeRepo.NewMemoryRepository(),
			bookings:  bookingRepo.NewMemoryRepository(),
			settings:  settingsRepo.NewMemoryRepository(),
			txManager: simpletxmanager.NewTransactionManager(),
			close:     func() error { return nil },
		}, nil
	}

	var (
		driverName string
		dsn        string
		txOpts     []txmanager.Option
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		driverName, dsn = "postgres", cfg.Database.DSN()
		// Конфликт сериализации между двумя бронированиями повторяем целиком
		txOpts = append(txOpts, txmanager.WithRetry(serializableRetries, txmanager.IsSerializationFailure))
	case config.StorageSQLite:
		if dir := filepath.Dir(cfg.Database.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		driverName = "sqlite"
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", cfg.Database.Path)
		// sqlite не поддерживает уровни изоляции, запись сериализует сам движок
		txOpts = append(txOpts, txmanager.WithoutIsolationLevels())
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	if cfg.Storage.Driver == config.StorageSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stop)

	// Проверяем соединение
	if err := wrappedDB.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := schema.Migrate(ctx, wrappedDB); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("Connected to %s storage, schema is up to date", driverName)

	qb := psqlbuilder.ForDriver(driverName)
	return &storage{
		cafes:     cafeRepo.NewRepository(wrappedDB, qb),
		bookings:  bookingRepo.NewRepository(wrappedDB, qb),
		settings:  settingsRepo.NewRepository(wrappedDB, qb),
		txManager: txmanager.NewTransactionManager(wrappedDB, txOpts...),
		close:     wrappedDB.Close,
	}, nil
}
