package handlers

import (
	"context"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPStats is implemented by the metrics middleware; the handler stays
// decoupled from its internals.
type HTTPStats interface {
	Snapshot() (requests map[string]int64, avgDuration float64, active int64)
}

// AppMetrics holds gateway-level counters: upstream weather calls and which
// data path served each mandi response.
type AppMetrics struct {
	mutex          sync.RWMutex
	upstreamCalls  map[string]int64
	upstreamErrors map[string]int64
	priceSources   map[string]int64
}

type MetricsHandler struct {
	logger     *zap.Logger
	httpStats  HTTPStats
	appMetrics *AppMetrics
}

func NewMetricsHandler(logger *zap.Logger, httpStats HTTPStats) *MetricsHandler {
	return &MetricsHandler{
		logger:    logger,
		httpStats: httpStats,
		appMetrics: &AppMetrics{
			upstreamCalls:  make(map[string]int64),
			upstreamErrors: make(map[string]int64),
			priceSources:   make(map[string]int64),
		},
	}
}

// RecordUpstreamCall implements weather.MetricsRecorder.
func (h *MetricsHandler) RecordUpstreamCall(ctx context.Context, endpoint string, success bool) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.upstreamCalls[endpoint]++
	if !success {
		h.appMetrics.upstreamErrors[endpoint]++
	}
	h.appMetrics.mutex.Unlock()
}

// RecordPriceSource implements mandi.MetricsRecorder.
func (h *MetricsHandler) RecordPriceSource(ctx context.Context, source string) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.priceSources[source]++
	h.appMetrics.mutex.Unlock()
}

// ServeMetrics exposes counters in Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	h.appMetrics.mutex.RLock()
	defer h.appMetrics.mutex.RUnlock()

	response := ""

	if h.httpStats != nil {
		requests, avgDuration, active := h.httpStats.Snapshot()

		response += "# HELP http_requests_total Total number of HTTP requests\n"
		response += "# TYPE http_requests_total counter\n"
		for key, count := range requests {
			response += "http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(count, 10) + "\n"
		}

		response += "\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n"
		response += "# TYPE http_request_duration_seconds_avg gauge\n"
		response += "http_request_duration_seconds_avg " + strconv.FormatFloat(avgDuration, 'f', 6, 64) + "\n"

		response += "\n# HELP http_active_requests Number of active HTTP requests\n"
		response += "# TYPE http_active_requests gauge\n"
		response += "http_active_requests " + strconv.FormatInt(active, 10) + "\n"
	}

	response += "\n# HELP weather_upstream_calls_total Total upstream weather API calls\n"
	response += "# TYPE weather_upstream_calls_total counter\n"
	for endpoint, count := range h.appMetrics.upstreamCalls {
		response += "weather_upstream_calls_total{endpoint=\"" + endpoint + "\"} " + strconv.FormatInt(count, 10) + "\n"
	}

	response += "\n# HELP weather_upstream_errors_total Total upstream weather API errors\n"
	response += "# TYPE weather_upstream_errors_total counter\n"
	for endpoint, count := range h.appMetrics.upstreamErrors {
		response += "weather_upstream_errors_total{endpoint=\"" + endpoint + "\"} " + strconv.FormatInt(count, 10) + "\n"
	}

	response += "\n# HELP mandi_responses_total Total mandi price responses by data source\n"
	response += "# TYPE mandi_responses_total counter\n"
	for source, count := range h.appMetrics.priceSources {
		response += "mandi_responses_total{source=\"" + source + "\"} " + strconv.FormatInt(count, 10) + "\n"
	}

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(200, response)
}
