package client

import (
	"context"
	"sync"

	"github.com/tanishqpabla/agrogenius-gateways/internal/mandi"
)

// MandiView tracks market-price state. Fetches are explicit: changing
// filters never refetches on its own, which supports a "set filters, then
// press search" flow. A failed fetch replaces any prior records with an
// empty slice so stale rows never linger behind an error banner.
type MandiView struct {
	client *Client

	mu      sync.Mutex
	records []mandi.Record
	source  string
	loading bool
	err     error
}

func NewMandiView(client *Client) *MandiView {
	return &MandiView{client: client}
}

// FetchPrices queries the gateway in the background with the given filters.
// Concurrent calls race; the last completion wins.
func (v *MandiView) FetchPrices(ctx context.Context, f mandi.Filters) {
	v.mu.Lock()
	v.loading = true
	v.err = nil
	v.mu.Unlock()

	go v.fetch(ctx, f)
}

func (v *MandiView) fetch(ctx context.Context, f mandi.Filters) {
	result, err := v.client.GetMandiPrices(ctx, f)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.records = []mandi.Record{}
		v.source = ""
		v.err = err
		return
	}
	v.records = result.Records
	v.source = result.Source
	v.err = nil
}

// Snapshot returns the current records, the data source that produced them,
// whether a fetch is in flight, and the last error.
func (v *MandiView) Snapshot() ([]mandi.Record, string, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.records, v.source, v.loading, v.err
}
