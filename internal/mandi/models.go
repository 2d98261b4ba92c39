package mandi

// Source labels for the response envelope. The client renders a trust
// indicator from this field, so the two values are a contract.
const (
	SourceLive = "live"
	SourceMock = "mock"
)

// FilterAll is the sentinel meaning "no constraint at this level".
const FilterAll = "All"

// Trend values for mock records.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Record is one commodity-market-date quote. Prices are rupees per quintal.
type Record struct {
	Commodity     string  `json:"commodity"`
	Market        string  `json:"market"`
	District      string  `json:"district"`
	State         string  `json:"state"`
	ArrivalDate   string  `json:"arrival_date"`
	MinPrice      int     `json:"min_price"`
	MaxPrice      int     `json:"max_price"`
	ModalPrice    int     `json:"modal_price"`
	Trend         string  `json:"trend"`
	ChangePercent float64 `json:"change_percent"`
}

// Filters selects a slice of the market taxonomy. Empty values are treated
// as FilterAll.
type Filters struct {
	State     string
	District  string
	Commodity string
	Market    string
}

// Normalized returns a copy with empty filter values replaced by FilterAll.
func (f Filters) Normalized() Filters {
	if f.State == "" {
		f.State = FilterAll
	}
	if f.District == "" {
		f.District = FilterAll
	}
	if f.Commodity == "" {
		f.Commodity = FilterAll
	}
	if f.Market == "" {
		f.Market = FilterAll
	}
	return f
}

// Result is the gateway response envelope. Source is always exactly
// SourceLive or SourceMock.
type Result struct {
	Records []Record `json:"records"`
	Source  string   `json:"source"`
	Total   int      `json:"total"`
}
