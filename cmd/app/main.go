package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airportservice/api"
	"github.com/Domenick1991/airportservice/config"
	"github.com/Domenick1991/airportservice/internal/auth"
	"github.com/Domenick1991/airportservice/internal/boardingpass"
	"github.com/Domenick1991/airportservice/internal/bootstrap"
	"github.com/Domenick1991/airportservice/internal/cache"
	"github.com/Domenick1991/airportservice/internal/kafka"
	"github.com/Domenick1991/airportservice/internal/logging"
	"github.com/Domenick1991/airportservice/internal/media"
	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/Domenick1991/airportservice/internal/service/crew"
	"github.com/Domenick1991/airportservice/internal/service/fleet"
	"github.com/Domenick1991/airportservice/internal/service/flights"
	"github.com/Domenick1991/airportservice/internal/service/geo"
	"github.com/Domenick1991/airportservice/internal/service/orders"
	"github.com/Domenick1991/airportservice/internal/service/routes"
	"github.com/Domenick1991/airportservice/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		slog.Error("app stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yaml"
	}
	cfgPath := pflag.String("config", defaultPath, "path to the yaml config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return err
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.ReferenceTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()

	store := media.NewStore(cfg.HTTP.MediaDir, cfg.HTTP.MediaURL)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL(), cfg.Auth.RefreshTTL())
	passes := boardingpass.NewGenerator(cfg.Auth.JWTSecret)

	userRepo := repository.NewUserRepository(pool)

	geoService := geo.NewGeoService(
		repository.NewCountryRepository(pool),
		repository.NewCityRepository(pool),
		repository.NewAirportRepository(pool),
		redisCache,
		logger,
	)
	routeService := routes.NewRouteService(repository.NewRouteRepository(pool))
	fleetService := fleet.NewFleetService(
		repository.NewAirplaneTypeRepository(pool),
		repository.NewAirplaneRepository(pool),
		redisCache,
		store,
		logger,
	)
	crewService := crew.NewCrewService(repository.NewCrewRepository(pool))
	flightService := flights.NewFlightService(repository.NewFlightRepository(pool))
	orderService := orders.NewOrderService(
		repository.NewOrderRepository(pool),
		userRepo,
		producer,
		cfg.Kafka.OrdersTopic,
		logger,
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	userService := users.NewUserService(userRepo, tokens, store, logger)

	if err := userService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	handlers := bootstrap.Handlers{
		Countries:     api.NewCountryHandler(geoService),
		Cities:        api.NewCityHandler(geoService),
		Airports:      api.NewAirportHandler(geoService),
		Routes:        api.NewRouteHandler(routeService),
		AirplaneTypes: api.NewAirplaneTypeHandler(fleetService),
		Airplanes:     api.NewAirplaneHandler(fleetService, store),
		Crew:          api.NewCrewHandler(crewService),
		Flights:       api.NewFlightHandler(flightService, store),
		Orders:        api.NewOrderHandler(orderService, passes),
		Users:         api.NewUserHandler(userService, store),
	}

	return bootstrap.Run(ctx, cfg, tokens, handlers, logger)
}
