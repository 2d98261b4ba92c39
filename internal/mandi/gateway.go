package mandi

import (
	"context"
	"time"

	"github.com/tanishqpabla/agrogenius-gateways/internal/config"
	"github.com/tanishqpabla/agrogenius-gateways/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MetricsRecorder counts which data path served each response.
type MetricsRecorder interface {
	RecordPriceSource(ctx context.Context, source string)
}

// Gateway serves mandi price quotes with availability over accuracy: the
// live upstream is tried when configured, and any failure there degrades to
// synthesized data instead of reaching the caller. Fetch never fails.
type Gateway struct {
	cfg     *config.MarketConfig
	live    *DataGovClient
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics MetricsRecorder
}

func NewGateway(cfg *config.MarketConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Gateway {
	g := &Gateway{
		cfg:    cfg,
		logger: logger,
		tele:   tele,
	}

	if cfg.APIKey != "" {
		g.live = NewDataGovClient(cfg.BaseURL, cfg.APIKey, cfg.MaxRecords, time.Duration(cfg.Timeout)*time.Second, logger, tele)
	}

	return g
}

func (g *Gateway) SetMetricsRecorder(metrics MetricsRecorder) {
	g.metrics = metrics
}

// Fetch returns a best-effort result for the given filters. The source field
// records which path produced it.
func (g *Gateway) Fetch(ctx context.Context, f Filters) *Result {
	ctx, span := g.tele.GetTracer().Start(ctx, "mandi.Fetch")
	defer span.End()

	f = f.Normalized()
	span.SetAttributes(
		attribute.String("state", f.State),
		attribute.String("district", f.District),
		attribute.String("commodity", f.Commodity),
		attribute.String("market", f.Market),
	)

	if records, ok := g.tryLiveFetch(ctx, f); ok {
		return g.finish(ctx, span, records, SourceLive)
	}

	records := SynthesizeRecords(f, time.Now(), g.cfg.MaxRecords)
	return g.finish(ctx, span, records, SourceMock)
}

// tryLiveFetch is the first of the two data paths. It reports false when the
// upstream is not configured or the call fails for any reason; the failure
// is logged, never propagated.
func (g *Gateway) tryLiveFetch(ctx context.Context, f Filters) ([]Record, bool) {
	if g.live == nil {
		return nil, false
	}

	records, err := g.live.FetchRecords(ctx, f)
	if err != nil {
		g.logger.Warn("Live market fetch failed, falling back to mock data",
			zap.String("state", f.State),
			zap.String("district", f.District),
			zap.String("commodity", f.Commodity),
			zap.String("market", f.Market),
			zap.Error(err))
		return nil, false
	}

	return records, true
}

func (g *Gateway) finish(ctx context.Context, span trace.Span, records []Record, source string) *Result {
	if records == nil {
		records = []Record{}
	}

	span.SetAttributes(
		attribute.String("source", source),
		attribute.Int("records", len(records)),
	)

	if g.metrics != nil {
		g.metrics.RecordPriceSource(ctx, source)
	}

	return &Result{
		Records: records,
		Source:  source,
		Total:   len(records),
	}
}
