package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanishqpabla/agrogenius-gateways/internal/server/utils"
	"github.com/tanishqpabla/agrogenius-gateways/internal/weather"
	"go.uber.org/zap"
)

type WeatherHandler struct {
	gateway *weather.Gateway
	logger  *zap.Logger
}

func NewWeatherHandler(gateway *weather.Gateway, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// GetWeather handles POST /functions/v1/get-weather. Error mapping: missing
// location is the caller's fault (400), a missing API key is a deployment
// fault (500), a failed current-weather fetch mirrors the upstream status.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	requestID := utils.GetRequestIDFromGinContext(c)

	reqLogger := h.logger.With(zap.String("request_id", requestID))

	var req WeatherRequest
	// An absent body binds to the zero value; validation catches both that
	// and a blank location.
	_ = c.ShouldBindJSON(&req)
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		reqLogger.Warn("Weather request missing location", zap.Any("validation", verrs))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "location is required",
			Code:  CodeMissingParameter,
		})
		return
	}

	reqLogger.Info("Processing weather request", zap.String("location", req.Location))

	report, err := h.gateway.Fetch(ctx, req.Location)
	if err != nil {
		h.writeError(c, reqLogger, err)
		return
	}

	reqLogger.Info("Weather request completed",
		zap.String("location", report.Location),
		zap.Int("forecast_days", len(report.Forecast)))

	c.JSON(http.StatusOK, report)
}

func (h *WeatherHandler) writeError(c *gin.Context, logger *zap.Logger, err error) {
	var upstreamErr *weather.UpstreamError
	switch {
	case errors.Is(err, weather.ErrNotConfigured):
		logger.Error("Weather gateway not configured")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "weather service is not configured",
			Code:  CodeNotConfigured,
		})
	case errors.As(err, &upstreamErr):
		logger.Warn("Upstream weather failure",
			zap.Int("upstream_status", upstreamErr.StatusCode),
			zap.String("upstream_message", upstreamErr.Message))
		c.JSON(upstreamErr.StatusCode, ErrorResponse{
			Error:   "failed to fetch weather data",
			Code:    CodeUpstreamError,
			Details: upstreamErr.Message,
		})
	default:
		logger.Error("Weather request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  CodeInternalError,
		})
	}
}
