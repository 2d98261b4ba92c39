package mandi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

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
	cfg := &config.MarketConfig{
		BaseURL:    upstreamURL,
		APIKey:     apiKey,
		Timeout:    5,
		MaxRecords: 50,
	}
	return NewGateway(cfg, zap.NewNop(), noopTelemetry(t))
}

func TestFetchWithoutCredentialServesMock(t *testing.T) {
	gw := testGateway(t, "http://127.0.0.1:0", "")

	result := gw.Fetch(context.Background(), Filters{State: "Punjab"})
	require.NotNil(t, result)
	assert.Equal(t, SourceMock, result.Source)
	assert.Equal(t, len(result.Records), result.Total)
	assert.LessOrEqual(t, result.Total, 50)
	assert.NotEmpty(t, result.Records)

	// Two identical requests both degrade to mock and stay structurally
	// valid; values are independently randomized.
	again := gw.Fetch(context.Background(), Filters{State: "Punjab"})
	assert.Equal(t, SourceMock, again.Source)
	assert.Equal(t, result.Total, again.Total)
}

func TestFetchLive(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api-key"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "Haryana", r.URL.Query().Get("filters[state]"))
		// "All" filters must not constrain the upstream query.
		assert.Empty(t, r.URL.Query().Get("filters[district]"))

		fmt.Fprint(w, `{"records": [
			{"state": "Haryana", "district": "Hisar", "market": "Hisar Mandi",
			 "commodity": "Wheat", "arrival_date": "01/09/2026",
			 "min_price": "2100", "max_price": "2400", "modal_price": "2250"},
			{"state": "Haryana", "district": "Hisar", "market": "Adampur Mandi",
			 "commodity": "Wheat", "arrival_date": "01/09/2026",
			 "min_price": "NA", "max_price": "2350", "modal_price": ""}
		]}`)
	}))
	defer upstream.Close()

	gw := testGateway(t, upstream.URL, "test-key")

	result := gw.Fetch(context.Background(), Filters{State: "Haryana"})
	require.NotNil(t, result)
	assert.Equal(t, SourceLive, result.Source)
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "Wheat", first.Commodity)
	assert.Equal(t, 2100, first.MinPrice)
	assert.Equal(t, 2400, first.MaxPrice)
	assert.Equal(t, 2250, first.ModalPrice)
	assert.Equal(t, TrendStable, first.Trend)
	assert.Equal(t, 0.0, first.ChangePercent)

	// Unparseable numeric fields default to zero instead of failing.
	second := result.Records[1]
	assert.Equal(t, 0, second.MinPrice)
	assert.Equal(t, 2350, second.MaxPrice)
	assert.Equal(t, 0, second.ModalPrice)
}

func TestFetchLiveFailureFallsBackToMock(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	gw := testGateway(t, upstream.URL, "test-key")

	result := gw.Fetch(context.Background(), Filters{State: "Haryana", District: "Hisar", Commodity: "Wheat"})
	require.NotNil(t, result)
	assert.Equal(t, SourceMock, result.Source)
	assert.Len(t, result.Records, 3)
}

func TestFetchLiveMalformedBodyFallsBackToMock(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"records": [`)
	}))
	defer upstream.Close()

	gw := testGateway(t, upstream.URL, "test-key")

	result := gw.Fetch(context.Background(), Filters{})
	require.NotNil(t, result)
	assert.Equal(t, SourceMock, result.Source)
}

func TestFetchNormalizesEmptyFilters(t *testing.T) {
	gw := testGateway(t, "http://127.0.0.1:0", "")

	result := gw.Fetch(context.Background(), Filters{State: "", District: "", Commodity: "", Market: ""})
	assert.Equal(t, SourceMock, result.Source)
	assert.Len(t, result.Records, 50)
}
