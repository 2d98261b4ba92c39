package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanishqpabla/agrogenius-gateways/internal/mandi"
	"github.com/tanishqpabla/agrogenius-gateways/internal/weather"
)

const eventually = 2 * time.Second

func fakeGateway(t *testing.T, weatherCalls *int64, failMandi *int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/functions/v1/get-weather":
			if weatherCalls != nil {
				atomic.AddInt64(weatherCalls, 1)
			}
			var req struct {
				Location string `json:"location"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if req.Location == "Nowhere" {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"error": "failed to fetch weather data", "details": "city not found"}`)
				return
			}
			json.NewEncoder(w).Encode(weather.Report{
				Current:  weather.Snapshot{Temperature: 27, WindSpeed: 14},
				Forecast: []weather.ForecastDay{},
				Location: req.Location,
			})
		case "/functions/v1/get-mandi-prices":
			if failMandi != nil && atomic.LoadInt32(failMandi) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"error": "internal server error"}`)
				return
			}
			records := []mandi.Record{{
				Commodity: "Wheat", Market: r.URL.Query().Get("market"),
				State: r.URL.Query().Get("state"), District: r.URL.Query().Get("district"),
				MinPrice: 2100, MaxPrice: 2400, ModalPrice: 2250, Trend: mandi.TrendStable,
			}}
			json.NewEncoder(w).Encode(mandi.Result{Records: records, Source: mandi.SourceMock, Total: len(records)})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestWeatherViewFetchesOnLocationChange(t *testing.T) {
	var calls int64
	srv := fakeGateway(t, &calls, nil)
	defer srv.Close()

	view := NewWeatherView(New(srv.URL, "anon-key"))
	ctx := context.Background()

	// Empty location is a no-op.
	view.SetLocation(ctx, "")
	data, loading, err := view.Snapshot()
	assert.Nil(t, data)
	assert.False(t, loading)
	assert.NoError(t, err)

	view.SetLocation(ctx, "Karnal")
	require.Eventually(t, func() bool {
		data, loading, _ := view.Snapshot()
		return !loading && data != nil
	}, eventually, 10*time.Millisecond)

	data, _, err = view.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "Karnal", data.Location)
	assert.Equal(t, 27, data.Current.Temperature)

	// Setting the same location again does not refetch.
	before := atomic.LoadInt64(&calls)
	view.SetLocation(ctx, "Karnal")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, atomic.LoadInt64(&calls))
}

func TestWeatherViewError(t *testing.T) {
	srv := fakeGateway(t, nil, nil)
	defer srv.Close()

	view := NewWeatherView(New(srv.URL, "anon-key"))
	view.SetLocation(context.Background(), "Nowhere")

	require.Eventually(t, func() bool {
		_, loading, err := view.Snapshot()
		return !loading && err != nil
	}, eventually, 10*time.Millisecond)

	data, _, err := view.Snapshot()
	assert.Nil(t, data)
	assert.ErrorContains(t, err, "city not found")
}

func TestMandiViewFetchAndErrorReset(t *testing.T) {
	var failMandi int32
	srv := fakeGateway(t, nil, &failMandi)
	defer srv.Close()

	view := NewMandiView(New(srv.URL, "anon-key"))
	ctx := context.Background()

	view.FetchPrices(ctx, mandi.Filters{State: "Haryana", District: "Hisar"})
	require.Eventually(t, func() bool {
		records, _, loading, _ := view.Snapshot()
		return !loading && len(records) > 0
	}, eventually, 10*time.Millisecond)

	records, source, _, err := view.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, mandi.SourceMock, source)
	require.Len(t, records, 1)
	assert.Equal(t, "Haryana", records[0].State)

	// A failed fetch clears prior records rather than leaving stale rows.
	atomic.StoreInt32(&failMandi, 1)
	view.FetchPrices(ctx, mandi.Filters{State: "Haryana"})
	require.Eventually(t, func() bool {
		_, _, loading, err := view.Snapshot()
		return !loading && err != nil
	}, eventually, 10*time.Millisecond)

	records, source, _, err = view.Snapshot()
	assert.Error(t, err)
	assert.Empty(t, records)
	assert.Empty(t, source)
}
