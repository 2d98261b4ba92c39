package mandi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tanishqpabla/agrogenius-gateways/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DataGovClient queries a data.gov.in-shaped market-price resource: filter
// query parameters in, paginated JSON records out.
type DataGovClient struct {
	baseURL string
	apiKey  string
	limit   int
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

type liveRecord struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	ModalPrice  string `json:"modal_price"`
}

type liveResponse struct {
	Records []liveRecord `json:"records"`
}

func NewDataGovClient(baseURL, apiKey string, limit int, timeout time.Duration, logger *zap.Logger, tele *telemetry.Telemetry) *DataGovClient {
	return &DataGovClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		limit:   limit,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		tele:   tele,
	}
}

// FetchRecords queries the upstream resource with the non-"All" filters as
// constraints. The upstream has no trend data, so trend and change percent
// come back as stable/zero.
func (c *DataGovClient) FetchRecords(ctx context.Context, f Filters) ([]Record, error) {
	ctx, span := c.tele.GetTracer().Start(ctx, "datagov.FetchRecords")
	defer span.End()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("api-key", c.apiKey)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(c.limit))
	setFilter(q, "state", f.State)
	setFilter(q, "district", f.District)
	setFilter(q, "commodity", f.Commodity)
	setFilter(q, "market", f.Market)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetAttributes(attribute.Bool("success", false), attribute.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("market upstream returned status %d", resp.StatusCode)
	}

	var payload liveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fmt.Errorf("malformed market upstream response: %w", err)
	}

	records := make([]Record, 0, len(payload.Records))
	for _, r := range payload.Records {
		records = append(records, Record{
			Commodity:     r.Commodity,
			Market:        r.Market,
			District:      r.District,
			State:         r.State,
			ArrivalDate:   r.ArrivalDate,
			MinPrice:      atoiOrZero(r.MinPrice),
			MaxPrice:      atoiOrZero(r.MaxPrice),
			ModalPrice:    atoiOrZero(r.ModalPrice),
			Trend:         TrendStable,
			ChangePercent: 0,
		})
	}

	span.SetAttributes(attribute.Bool("success", true), attribute.Int("records", len(records)))
	return records, nil
}

func setFilter(q url.Values, field, value string) {
	if value != "" && value != FilterAll {
		q.Set("filters["+field+"]", value)
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
