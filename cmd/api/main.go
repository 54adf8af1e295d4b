package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gorilla/mux"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/victoragudo/hotel-management-system/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/adapter"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/config"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/eventbus"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/handler"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/queue"
	"github.com/victoragudo/hotel-management-system/pkg/clock"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
	"github.com/victoragudo/hotel-management-system/pkg/database"
	"github.com/victoragudo/hotel-management-system/pkg/entities"
	"github.com/victoragudo/hotel-management-system/pkg/logger"
	"gorm.io/gorm"

	_ "github.com/victoragudo/hotel-management-system/docs"
)

// @title Hotel Management API
// @version 1.0
// @description Rooms, facilities and reservations for a single hotel
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /
// @schemes http https

const version = "1.0.0"

// cacheStore is what the API needs from any of the cache backends.
type cacheStore interface {
	room.CacheRepository
	Ping(ctx context.Context) error
}

type Application struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	logger *slog.Logger
	server *http.Server

	cache     cacheStore
	publisher *queue.RabbitMQPublisher
}

func main() {
	bootLogger := logger.SetupLogger("info")

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger.Error(fmt.Sprintf("Failed to load configuration: %s", err.Error()))
		os.Exit(1)
	}

	applicationLogger := logger.SetupLoggerWithFormat(cfg.Logging.Level, cfg.Logging.Format)

	app, err := NewApplication(cfg, applicationLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func NewApplication(cfg *config.Config, applicationLogger *slog.Logger) (*Application, error) {
	db, err := database.GormOpen(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	if err := database.ConfigurePool(db, database.PoolOptions{
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		ConnMaxLife:        cfg.Database.ConnMaxLife,
	}); err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, entities.All()...); err != nil {
			return nil, err
		}
	}

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient = initRedis(cfg.Redis, applicationLogger)
	}

	cache := initCache(cfg, redisClient, applicationLogger)
	locker := initLocker(cfg, redisClient, applicationLogger)

	policy, err := reservation.NewCancellationPolicy(cfg.Reservation.CancellationWindow, cfg.Reservation.CancellationMode)
	if err != nil {
		return nil, err
	}

	reservationRepo := adapter.NewGormReservationRepository(db, applicationLogger)
	roomRepo := adapter.NewGormRoomRepository(db, applicationLogger)
	facilityRepo := adapter.NewGormFacilityRepository(db, applicationLogger)
	assignmentRepo := adapter.NewGormRoomFacilityRepository(db, applicationLogger)
	clk := clock.System{}

	bus := eventbus.New(applicationLogger)
	bus.Subscribe(constants.EventRoomBooked, "mark_room_booked", usecase.NewMarkRoomBookedUseCase(roomRepo, applicationLogger))

	var publisher *queue.RabbitMQPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = initPublisher(cfg.RabbitMQ, applicationLogger)
		if err != nil {
			return nil, err
		}
		bus.Subscribe(constants.EventRoomBooked, "rabbitmq_forwarder",
			queue.NewRoomBookedForwarder(publisher, cfg.RabbitMQ.PublishTimeout, applicationLogger))
	}

	cacheTTL := usecase.CacheTTL{Rooms: cfg.Cache.RoomsTTL, AvailableRooms: cfg.Cache.AvailableRoomsTTL}
	checkRoomAvailabilityUseCase := usecase.NewCheckRoomAvailabilityUseCase(reservationRepo, applicationLogger)
	cancellationEligibilityUseCase := usecase.NewCheckCancellationEligibilityUseCase(reservationRepo, policy, clk, applicationLogger)

	reservationHandler := handler.NewReservationHandler(
		usecase.NewMakeReservationUseCase(
			reservationRepo,
			roomRepo,
			checkRoomAvailabilityUseCase,
			locker,
			bus,
			clk,
			usecase.LockOptions{TTL: cfg.Reservation.LockTTL, Wait: cfg.Reservation.LockWait},
			applicationLogger,
		),
		usecase.NewCancelReservationUseCase(reservationRepo, cancellationEligibilityUseCase, applicationLogger),
		usecase.NewEditReservationUseCase(reservationRepo, applicationLogger),
		usecase.NewViewReservationUseCase(reservationRepo, applicationLogger),
		cancellationEligibilityUseCase,
		applicationLogger,
	)

	roomHandler := handler.NewRoomHandler(
		usecase.NewGetRoomsUseCase(roomRepo, cache, cacheTTL, applicationLogger),
		usecase.NewGetAvailableRoomsUseCase(roomRepo, cache, cacheTTL, applicationLogger),
		checkRoomAvailabilityUseCase,
		usecase.NewAddRoomUseCase(roomRepo, cache, applicationLogger),
		usecase.NewUpdateRoomUseCase(roomRepo, cache, applicationLogger),
		usecase.NewDeleteRoomUseCase(roomRepo, cache, applicationLogger),
		usecase.NewAssignRoomFacilityUseCase(roomRepo, facilityRepo, assignmentRepo, cache, applicationLogger),
		applicationLogger,
	)

	facilityHandler := handler.NewFacilityHandler(
		usecase.NewGetFacilitiesUseCase(facilityRepo, applicationLogger),
		usecase.NewAddFacilityUseCase(facilityRepo, cache, applicationLogger),
		usecase.NewUpdateFacilityUseCase(facilityRepo, cache, applicationLogger),
		usecase.NewDeleteFacilityUseCase(facilityRepo, cache, applicationLogger),
		applicationLogger,
	)

	healthHandler := handler.NewHealthHandler(map[string]handler.Checker{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
		"cache":    cache.Ping,
	}, version, applicationLogger)

	server := initServer(cfg.Server, applicationLogger, healthHandler, reservationHandler, roomHandler, facilityHandler)

	return &Application{
		config:    cfg,
		db:        db,
		redis:     redisClient,
		logger:    applicationLogger,
		server:    server,
		cache:     cache,
		publisher: publisher,
	}, nil
}

func (app *Application) Start() error {
	ctx := context.Background()

	app.logger.Info("Starting hotel API",
		"version", version,
		"address", app.config.Server.Address(),
		"database_driver", app.config.Database.Driver,
		"cache_driver", app.config.Cache.Driver,
		"lock_driver", app.config.Reservation.LockDriver,
	)

	if err := app.performHealthChecks(ctx); err != nil {
		app.logger.Error("Health checks failed", "error", err)
		return err
	}

	go func() {
		figure.NewFigure("Hotel API", "", true).Print()
		fmt.Println("")
		fmt.Println("Hotel API started at " + app.config.Server.Address())
		fmt.Println("")
		if err := app.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("HTTP server failed", "error", err)
		}
	}()

	app.waitForShutdown()

	return nil
}

func (app *Application) performHealthChecks(ctx context.Context) error {
	app.logger.Info("Performing health checks")

	if err := database.Ping(ctx, app.db); err != nil {
		return err
	}

	if err := app.cache.Ping(ctx); err != nil {
		app.logger.Warn("Cache health check failed", "driver", app.config.Cache.Driver, "error", err)
	}

	return nil
}

func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	app.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("Server forced to shutdown", "error", err)
	}

	if app.publisher != nil {
		app.publisher.Close()
	}

	if err := database.Close(app.db); err != nil {
		app.logger.Error("Error closing database", "error", err)
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing Redis", "error", err)
		}
	}

	app.logger.Info("Server stopped gracefully")
}

func initRedis(cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	logger.Info("Connecting to Redis", "address", cfg.Address())

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.Database,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	logger.Info("Redis client created")
	return client
}

func initCache(cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) cacheStore {
	switch cfg.Cache.Driver {
	case "redis":
		return adapter.NewRedisCacheAdapterWithClient(redisClient, logger)
	case "memcached":
		logger.Info("Connecting to Memcached", "servers", cfg.Memcached.Servers)
		return adapter.NewMemcachedCacheAdapter(cfg.Memcached.Servers, logger)
	default:
		return adapter.NewLocalCacheAdapter(cfg.Cache.LocalMaxSize, logger)
	}
}

func initLocker(cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) reservation.Locker {
	if cfg.Reservation.LockDriver == "redis" {
		return adapter.NewRedisLockAdapterWithClient(redisClient, logger)
	}
	return adapter.NewLocalLockAdapter()
}

func initPublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (*queue.RabbitMQPublisher, error) {
	logger.Info("Connecting to RabbitMQ", "host", cfg.Host, "exchange", cfg.Exchange)

	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	return queue.NewMQPublisher(conn, ch, cfg.Exchange, cfg.RoutingKey, queue.BreakerSettings{
		MaxRequests:         cfg.Breaker.MaxRequests,
		Interval:            cfg.Breaker.Interval,
		Timeout:             cfg.Breaker.Timeout,
		ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
	}, logger)
}

type routeRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

func initServer(cfg config.ServerConfig, logger *slog.Logger, health routeRegistrar, apiHandlers ...routeRegistrar) *http.Server {
	router := mux.NewRouter()

	api := router.PathPrefix(constants.BaseAPIPath).Subrouter()
	for _, h := range apiHandlers {
		h.RegisterRoutes(api)
	}

	health.RegisterRoutes(router)

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	router.Use(handler.RequestIDMiddleware)
	if cfg.RateLimit.Enabled {
		router.Use(handler.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
	router.Use(handler.LoggingMiddleware(logger))
	if cfg.EnableCORS {
		router.Use(handler.CORSMiddleware)
	}

	printRoutes(router, logger)

	return &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func printRoutes(router *mux.Router, logger *slog.Logger) {
	fmt.Println("API Routes Overview")
	fmt.Println("═══════════════════════════════════════════════════════════════")

	var routes []string

	err := router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		methods, err := route.GetMethods()
		if err != nil {
			if len(ancestors) == 0 && !strings.Contains(pathTemplate, "/swagger") {
				return nil
			}
			methods = []string{"ALL"}
		}

		routes = append(routes, fmt.Sprintf("  %-8s %s", strings.Join(methods, ", "), pathTemplate))
		return nil
	})

	if err != nil {
		logger.Error("Error walking routes", "error", err)
		return
	}

	for _, route := range routes {
		fmt.Println(route)
	}

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("Total registered routes: %d\n", len(routes))
	fmt.Println("Visit /swagger/ for interactive API documentation")
}
