package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanishqpabla/agrogenius-gateways/internal/config"
	"github.com/tanishqpabla/agrogenius-gateways/internal/mandi"
	"github.com/tanishqpabla/agrogenius-gateways/internal/server/middlewares"
	"github.com/tanishqpabla/agrogenius-gateways/internal/weather"
	"github.com/tanishqpabla/agrogenius-gateways/pkg/telemetry"
	"go.uber.org/zap"
)

func testEngine(t *testing.T, weatherUpstream string) *gin.Engine {
	t.Helper()

	tele, err := telemetry.New(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	logger := zap.NewNop()

	weatherGW := weather.NewGateway(&config.WeatherConfig{
		BaseURL: weatherUpstream,
		APIKey:  "test-key",
		Country: "India",
		Timeout: 5,
	}, logger, tele)

	mandiGW := mandi.NewGateway(&config.MarketConfig{
		BaseURL:    "http://127.0.0.1:0",
		APIKey:     "",
		Timeout:    5,
		MaxRecords: 50,
	}, logger, tele)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middlewares.CORSMiddleware())

	engine.POST("/functions/v1/get-weather", NewWeatherHandler(weatherGW, logger).GetWeather)
	engine.POST("/functions/v1/get-mandi-prices", NewMandiHandler(mandiGW, logger).GetPrices)
	engine.OPTIONS("/functions/v1/get-weather", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.OPTIONS("/functions/v1/get-mandi-prices", func(c *gin.Context) { c.Status(http.StatusOK) })

	return engine
}

func TestGetWeatherMissingLocation(t *testing.T) {
	engine := testEngine(t, "http://127.0.0.1:0")

	for _, body := range []string{`{}`, `{"location": ""}`, ``} {
		req := httptest.NewRequest(http.MethodPost, "/functions/v1/get-weather", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, CodeMissingParameter, resp.Code)
	}
}

func TestGetWeatherMirrorsUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod": "404", "message": "city not found"}`)
	}))
	defer upstream.Close()

	engine := testEngine(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/get-weather", strings.NewReader(`{"location": "Nowhere"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, CodeUpstreamError, resp.Code)
	assert.Equal(t, "city not found", resp.Details)
}

func TestGetMandiPricesAlwaysSucceeds(t *testing.T) {
	engine := testEngine(t, "http://127.0.0.1:0")

	req := httptest.NewRequest(http.MethodPost,
		"/functions/v1/get-mandi-prices?state=Haryana&district=Hisar&commodity=Wheat", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result mandi.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, mandi.SourceMock, result.Source)
	assert.Equal(t, len(result.Records), result.Total)
	require.Len(t, result.Records, 3)
	for _, r := range result.Records {
		assert.Equal(t, "Wheat", r.Commodity)
		assert.Equal(t, "Hisar", r.District)
	}
}

func TestPreflight(t *testing.T) {
	engine := testEngine(t, "http://127.0.0.1:0")

	for _, path := range []string{"/functions/v1/get-weather", "/functions/v1/get-mandi-prices"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Body.String())
	}
}
