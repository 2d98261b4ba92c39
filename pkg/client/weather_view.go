package client

import (
	"context"
	"sync"

	"github.com/tanishqpabla/agrogenius-gateways/internal/weather"
)

// WeatherView tracks weather state for one location input. Setting a new
// location triggers a fetch automatically; setting the same location again,
// or an empty one, is a no-op. Completions overwrite state unconditionally,
// so when fetches race the last one to finish wins.
type WeatherView struct {
	client *Client

	mu       sync.Mutex
	location string
	data     *weather.Report
	loading  bool
	err      error
}

func NewWeatherView(client *Client) *WeatherView {
	return &WeatherView{client: client}
}

// SetLocation updates the tracked location and fetches in the background
// when it changed to a non-empty value.
func (v *WeatherView) SetLocation(ctx context.Context, location string) {
	v.mu.Lock()
	if location == v.location {
		v.mu.Unlock()
		return
	}
	v.location = location
	if location == "" {
		v.mu.Unlock()
		return
	}
	v.loading = true
	v.err = nil
	v.mu.Unlock()

	go v.fetch(ctx, location)
}

func (v *WeatherView) fetch(ctx context.Context, location string) {
	report, err := v.client.GetWeather(ctx, location)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.data = nil
		v.err = err
		return
	}
	v.data = report
	v.err = nil
}

// Snapshot returns the current view state. Exactly one of data and err is
// set once a fetch has completed.
func (v *WeatherView) Snapshot() (*weather.Report, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.data, v.loading, v.err
}
