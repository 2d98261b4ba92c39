package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tanishqpabla/agrogenius-gateways/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OpenWeatherClient talks to an OpenWeatherMap-shaped upstream: a /weather
// current-conditions endpoint and a /forecast 5-day/3-hour endpoint, both
// keyed by a place-name query in metric units.
type OpenWeatherClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

type owWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owCurrent struct {
	Weather []owWeather `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Name string `json:"name"`
}

type owSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []owWeather `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"`
}

type owForecast struct {
	List []owSample `json:"list"`
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
}

type owError struct {
	Message string `json:"message"`
}

func NewOpenWeatherClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, tele *telemetry.Telemetry) *OpenWeatherClient {
	return &OpenWeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		tele:   tele,
	}
}

// fetchCurrent fetches current conditions for the given place-name query. A
// non-2xx upstream status becomes an *UpstreamError carrying the upstream
// status code and message.
func (c *OpenWeatherClient) fetchCurrent(ctx context.Context, query string) (*owCurrent, error) {
	ctx, span := c.tele.GetTracer().Start(ctx, "openweather.fetchCurrent")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	var payload owCurrent
	if err := c.get(ctx, "/weather", query, &payload); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	span.SetAttributes(attribute.Bool("success", true))
	return &payload, nil
}

// fetchForecast fetches the 5-day/3-hour forecast for the given query.
func (c *OpenWeatherClient) fetchForecast(ctx context.Context, query string) (*owForecast, error) {
	ctx, span := c.tele.GetTracer().Start(ctx, "openweather.fetchForecast")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	var payload owForecast
	if err := c.get(ctx, "/forecast", query, &payload); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	span.SetAttributes(attribute.Bool("success", true), attribute.Int("samples", len(payload.List)))
	return &payload, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, path, query string, out interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr owError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("upstream request failed with status %d", resp.StatusCode)
		}
		c.logger.Warn("Upstream weather call failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return &UpstreamError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
