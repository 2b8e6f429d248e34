package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/airportservice/api"
	"github.com/Domenick1991/airportservice/config"
	"github.com/Domenick1991/airportservice/internal/auth"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const swaggerDoc = "/swagger/airport.swagger.json"

// Handlers groups every REST resource mounted under /api.
type Handlers struct {
	Countries     *api.CountryHandler
	Cities        *api.CityHandler
	Airports      *api.AirportHandler
	Routes        *api.RouteHandler
	AirplaneTypes *api.AirplaneTypeHandler
	Airplanes     *api.AirplaneHandler
	Crew          *api.CrewHandler
	Flights       *api.FlightHandler
	Orders        *api.OrderHandler
	Users         *api.UserHandler
}

// Run serves the REST API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, tokens *auth.TokenManager, h Handlers, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, tokens, h, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "address", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter builds the gin engine with the access policy of every resource group.
func NewRouter(cfg *config.Config, tokens *auth.TokenManager, h Handlers, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(api.MethodNotAllowed)
	router.NoRoute(api.NotFound)
	router.Use(gin.Recovery(), requestLogger(logger), auth.Authenticate(tokens))

	root := router.Group("/api")

	catalog := []struct {
		path     string
		register func(*gin.RouterGroup)
	}{
		{"/countries", h.Countries.Register},
		{"/cities", h.Cities.Register},
		{"/airports", h.Airports.Register},
		{"/routes", h.Routes.Register},
		{"/airplane_types", h.AirplaneTypes.Register},
		{"/airplanes", h.Airplanes.Register},
		{"/crew", h.Crew.Register},
		{"/flights", h.Flights.Register},
	}
	for _, r := range catalog {
		r.register(root.Group(r.path, auth.ReadAuthenticated()))
	}

	h.Orders.Register(root.Group("/orders", auth.Authenticated()))
	h.Users.Register(root.Group("/users"))

	if cfg.HTTP.MediaDir != "" {
		router.Static("/media", cfg.HTTP.MediaDir)
	}

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerDoc))))
	}

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
