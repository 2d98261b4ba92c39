package weather

import (
	"context"
	"time"

	"github.com/tanishqpabla/agrogenius-gateways/internal/config"
	"github.com/tanishqpabla/agrogenius-gateways/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MetricsRecorder counts upstream calls for the metrics endpoint.
type MetricsRecorder interface {
	RecordUpstreamCall(ctx context.Context, endpoint string, success bool)
}

// Gateway normalizes upstream weather data into the app's envelope. It is
// stateless; every request stands alone.
type Gateway struct {
	cfg     *config.WeatherConfig
	client  *OpenWeatherClient
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics MetricsRecorder
}

func NewGateway(cfg *config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Gateway {
	return &Gateway{
		cfg:    cfg,
		client: NewOpenWeatherClient(cfg.BaseURL, cfg.APIKey, time.Duration(cfg.Timeout)*time.Second, logger, tele),
		logger: logger,
		tele:   tele,
	}
}

func (g *Gateway) SetMetricsRecorder(metrics MetricsRecorder) {
	g.metrics = metrics
}

// Fetch resolves a place name into the normalized {current, forecast,
// location} report. Current weather is a hard dependency: its failure fails
// the request. The forecast is soft: on failure the report ships with an
// empty forecast.
func (g *Gateway) Fetch(ctx context.Context, location string) (*Report, error) {
	ctx, span := g.tele.GetTracer().Start(ctx, "weather.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("location", location))

	if g.cfg.APIKey == "" {
		g.logger.Error("Weather gateway called without an API key configured")
		return nil, ErrNotConfigured
	}

	// Qualify with the country so ambiguous town names resolve locally.
	query := location + "," + g.cfg.Country

	current, err := g.client.fetchCurrent(ctx, query)
	g.recordCall(ctx, "current", err == nil)
	if err != nil {
		return nil, err
	}

	forecast := g.fetchForecast(ctx, query)

	resolved := current.Name
	if resolved == "" {
		resolved = location
	}

	span.SetAttributes(attribute.Int("forecast_days", len(forecast)))

	return &Report{
		Current:  snapshotFromCurrent(current),
		Forecast: forecast,
		Location: resolved,
	}, nil
}

func (g *Gateway) fetchForecast(ctx context.Context, query string) []ForecastDay {
	fc, err := g.client.fetchForecast(ctx, query)
	g.recordCall(ctx, "forecast", err == nil)
	if err != nil {
		g.logger.Warn("Forecast fetch failed, serving current conditions only",
			zap.String("query", query),
			zap.Error(err))
		return []ForecastDay{}
	}

	samples := make([]Sample, 0, len(fc.List))
	for _, item := range fc.List {
		s := Sample{
			Timestamp: item.Dt,
			Temp:      item.Main.Temp,
			Humidity:  item.Main.Humidity,
			WindMS:    item.Wind.Speed,
			Pop:       item.Pop,
		}
		if len(item.Weather) > 0 {
			s.Icon = item.Weather[0].Icon
			s.Description = item.Weather[0].Description
		}
		samples = append(samples, s)
	}

	days := AggregateDaily(samples, fc.City.Timezone)
	if days == nil {
		return []ForecastDay{}
	}
	return days
}

func snapshotFromCurrent(current *owCurrent) Snapshot {
	snap := Snapshot{
		Temperature: roundC(current.Main.Temp),
		FeelsLike:   roundC(current.Main.FeelsLike),
		Humidity:    roundC(current.Main.Humidity),
		WindSpeed:   KmhFromMS(current.Wind.Speed),
		Sunrise:     current.Sys.Sunrise,
		Sunset:      current.Sys.Sunset,
	}
	if len(current.Weather) > 0 {
		snap.Description = current.Weather[0].Description
		snap.Icon = current.Weather[0].Icon
		snap.Condition = current.Weather[0].Main
	}
	return snap
}

func (g *Gateway) recordCall(ctx context.Context, endpoint string, success bool) {
	if g.metrics != nil {
		g.metrics.RecordUpstreamCall(ctx, endpoint, success)
	}
}
