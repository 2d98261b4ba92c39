package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tanishqpabla/agrogenius-gateways/internal/config"
	"github.com/tanishqpabla/agrogenius-gateways/internal/mandi"
	"github.com/tanishqpabla/agrogenius-gateways/internal/server/handlers"
	"github.com/tanishqpabla/agrogenius-gateways/internal/server/middlewares"
	"github.com/tanishqpabla/agrogenius-gateways/internal/weather"
	"github.com/tanishqpabla/agrogenius-gateways/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	engine    *gin.Engine
	server    *http.Server
	weatherGW *weather.Gateway
	mandiGW   *mandi.Gateway
	metricsH  *handlers.MetricsHandler
	logger    *zap.Logger
	tele      *telemetry.Telemetry
}

var (
	instance *Server
	once     sync.Once
)

func NewServer(logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	once.Do(func() {
		cfg := config.GetConfig()

		weatherGW := weather.NewGateway(&cfg.Weather, logger, tele)
		mandiGW := mandi.NewGateway(&cfg.Market, logger, tele)

		gin.SetMode(gin.ReleaseMode)
		engine := gin.New()

		metricsMW := middlewares.NewMetricsMiddleware(logger, tele)
		metricsH := handlers.NewMetricsHandler(logger, metricsMW.GetHTTPMetrics())
		weatherGW.SetMetricsRecorder(metricsH)
		mandiGW.SetMetricsRecorder(metricsH)

		engine.Use(middlewares.RequestIDMiddleware(logger))
		engine.Use(middlewares.LoggingMiddleware(logger, time.RFC3339, true))
		engine.Use(middlewares.RecoveryMiddleware(logger, true))
		engine.Use(middlewares.CORSMiddleware())
		engine.Use(middlewares.TelemetryMiddleware(logger, tele))
		engine.Use(metricsMW.Handler())

		instance = &Server{
			engine:    engine,
			weatherGW: weatherGW,
			mandiGW:   mandiGW,
			metricsH:  metricsH,
			logger:    logger,
			tele:      tele,
		}

		instance.setupRoutes()
	})

	return instance
}

func (s *Server) setupRoutes() {
	// Gateway endpoints. OPTIONS is answered by the CORS middleware; the
	// explicit registrations keep gin from routing preflights to 404.
	weatherH := handlers.NewWeatherHandler(s.weatherGW, s.logger)
	mandiH := handlers.NewMandiHandler(s.mandiGW, s.logger)

	s.engine.POST("/functions/v1/get-weather", weatherH.GetWeather)
	s.engine.OPTIONS("/functions/v1/get-weather", preflight)
	s.engine.POST("/functions/v1/get-mandi-prices", mandiH.GetPrices)
	s.engine.OPTIONS("/functions/v1/get-mandi-prices", preflight)

	// Health endpoints (Kubernetes friendly)
	healthH := handlers.NewHealthHandler(s.logger)
	s.engine.GET("/health", healthH.Health)
	s.engine.GET("/health/live", healthH.Liveness)
	s.engine.GET("/health/ready", healthH.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", s.metricsH.ServeMetrics)
}

func preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) Start() error {
	cfg := config.GetConfig()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
