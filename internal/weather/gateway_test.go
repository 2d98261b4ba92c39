package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanishqpabla/agrogenius-gateways/internal/config"
	"github.com/tanishqpabla/agrogenius-gateways/pkg/telemetry"
	"go.uber.org/zap"
)

func noopTelemetry(t *testing.T) *telemetry.Telemetry {
	t.Helper()
	tele, err := telemetry.New(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	return tele
}

func testGateway(t *testing.T, upstreamURL, apiKey string) *Gateway {
	t.Helper()
	cfg := &config.WeatherConfig{
		BaseURL: upstreamURL,
		APIKey:  apiKey,
		Country: "India",
		Timeout: 5,
	}
	return NewGateway(cfg, zap.NewNop(), noopTelemetry(t))
}

const currentFixture = `{
	"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
	"main": {"temp": 28.4, "feels_like": 30.1, "humidity": 48},
	"wind": {"speed": 5.0},
	"sys": {"sunrise": 1770000000, "sunset": 1770040000},
	"name": "Hisar"
}`

func forecastFixture(now time.Time) string {
	list := ""
	for day := 0; day < 2; day++ {
		for hour := 0; hour < 24; hour += 3 {
			if list != "" {
				list += ","
			}
			ts := now.AddDate(0, 0, day+1).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
			list += fmt.Sprintf(`{
				"dt": %d,
				"main": {"temp": %f, "humidity": 55},
				"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
				"wind": {"speed": 4.0},
				"pop": 0.4
			}`, ts.Unix(), 22.0+float64(hour)/6)
		}
	}
	return fmt.Sprintf(`{"list": [%s], "city": {"timezone": 19800}}`, list)
}

func TestFetchNotConfigured(t *testing.T) {
	gw := testGateway(t, "http://127.0.0.1:0", "")

	_, err := gw.Fetch(context.Background(), "Hisar")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFetchMirrorsUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod": "404", "message": "city not found"}`)
	}))
	defer upstream.Close()

	gw := testGateway(t, upstream.URL, "test-key")

	_, err := gw.Fetch(context.Background(), "Nowhere")
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
	assert.Equal(t, "city not found", upstreamErr.Message)
}

func TestFetchForecastFailureDegrades(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			fmt.Fprint(w, currentFixture)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer upstream.Close()

	gw := testGateway(t, upstream.URL, "test-key")

	report, err := gw.Fetch(context.Background(), "Hisar")
	require.NoError(t, err)
	assert.NotNil(t, report.Forecast)
	assert.Empty(t, report.Forecast)
	assert.Equal(t, 28, report.Current.Temperature)
}

func TestFetchSuccess(t *testing.T) {
	var currentQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			currentQuery = r.URL.Query().Get("q")
			assert.Equal(t, "metric", r.URL.Query().Get("units"))
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			fmt.Fprint(w, currentFixture)
		case "/forecast":
			fmt.Fprint(w, forecastFixture(time.Now()))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	gw := testGateway(t, upstream.URL, "test-key")

	report, err := gw.Fetch(context.Background(), "Hisar")
	require.NoError(t, err)

	// Place names are country-qualified before hitting upstream.
	assert.Equal(t, "Hisar,India", currentQuery)
	assert.Equal(t, "Hisar", report.Location)

	assert.Equal(t, 28, report.Current.Temperature)
	assert.Equal(t, 30, report.Current.FeelsLike)
	assert.Equal(t, 48, report.Current.Humidity)
	assert.Equal(t, 18, report.Current.WindSpeed)
	assert.Equal(t, "clear sky", report.Current.Description)
	assert.Equal(t, "Clear", report.Current.Condition)

	require.NotEmpty(t, report.Forecast)
	assert.LessOrEqual(t, len(report.Forecast), 7)
	for _, day := range report.Forecast {
		assert.GreaterOrEqual(t, day.TempMax, day.TempMin)
		assert.Equal(t, 55, day.Humidity)
		assert.Equal(t, 40, day.Pop)
		assert.Equal(t, KmhFromMS(4.0), day.WindSpeed)
	}
}
