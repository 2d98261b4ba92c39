// Package client is the Go counterpart of the app's data hooks: a thin HTTP
// client for the two gateway endpoints plus stateful views that track
// data/loading/error the way the UI consumes them.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tanishqpabla/agrogenius-gateways/internal/mandi"
	"github.com/tanishqpabla/agrogenius-gateways/internal/weather"
)

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewFromEnv builds a client from the deployment environment: the gateway
// base URL from AGRO_GATEWAY_URL and the public key from
// AGRO_GATEWAY_ANON_KEY.
func NewFromEnv() *Client {
	return New(os.Getenv("AGRO_GATEWAY_URL"), os.Getenv("AGRO_GATEWAY_ANON_KEY"))
}

// New builds a gateway client. The API key is sent as a bearer token and an
// apikey header on every call; both values come from deployment config.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// GetWeather calls the get-weather gateway for a place name.
func (c *Client) GetWeather(ctx context.Context, location string) (*weather.Report, error) {
	body := strings.NewReader(fmt.Sprintf(`{"location":%q}`, location))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/functions/v1/get-weather", body)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	var report weather.Report
	if err := c.do(req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetMandiPrices calls the get-mandi-prices gateway. Filters ride in the
// query string; "All" values are sent as-is since the gateway treats absent
// and "All" identically.
func (c *Client) GetMandiPrices(ctx context.Context, f mandi.Filters) (*mandi.Result, error) {
	f = f.Normalized()

	q := url.Values{}
	q.Set("state", f.State)
	q.Set("district", f.District)
	q.Set("commodity", f.Commodity)
	q.Set("market", f.Market)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/functions/v1/get-mandi-prices?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	var result mandi.Result
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("apikey", c.apiKey)
	}
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Error == "" {
			return fmt.Errorf("gateway returned status %d", resp.StatusCode)
		}
		if apiErr.Details != "" {
			return fmt.Errorf("%s: %s", apiErr.Error, apiErr.Details)
		}
		return fmt.Errorf("%s", apiErr.Error)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
