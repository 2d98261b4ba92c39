package mandi

import (
	"math"
	"math/rand"
	"time"
)

// SynthesizeRecords generates placeholder quotes for every (state, district,
// market, commodity) tuple the filters select, in taxonomy declaration
// order, truncated to limit. Prices are sampled uniformly from each
// commodity's ranges with the modal price drawn from [min, max], so
// min <= modal <= max holds by construction.
func SynthesizeRecords(f Filters, now time.Time, limit int) []Record {
	f = f.Normalized()
	date := now.Format("2006-01-02")

	records := make([]Record, 0, limit)
	for _, state := range marketDirectory {
		if f.State != FilterAll && f.State != state.Name {
			continue
		}
		for _, district := range state.Districts {
			if f.District != FilterAll && f.District != district.Name {
				continue
			}
			for _, market := range district.Markets {
				if f.Market != FilterAll && f.Market != market {
					continue
				}
				for _, commodity := range commodityDirectory {
					if f.Commodity != FilterAll && f.Commodity != commodity.Name {
						continue
					}
					if len(records) >= limit {
						return records
					}
					records = append(records, synthesizeRecord(state.Name, district.Name, market, commodity, date))
				}
			}
		}
	}

	return records
}

func synthesizeRecord(state, district, market string, commodity commodityEntry, date string) Record {
	minPrice := sampleRange(commodity.Min)
	maxPrice := sampleRange(commodity.Max)
	if maxPrice < minPrice {
		minPrice, maxPrice = maxPrice, minPrice
	}
	modalPrice := minPrice + rand.Intn(maxPrice-minPrice+1)

	trend, change := sampleTrend()

	return Record{
		Commodity:     commodity.Name,
		Market:        market,
		District:      district,
		State:         state,
		ArrivalDate:   date,
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		ModalPrice:    modalPrice,
		Trend:         trend,
		ChangePercent: change,
	}
}

func sampleRange(r priceRange) int {
	return r.Low + rand.Intn(r.High-r.Low+1)
}

// sampleTrend picks a trend uniformly and derives a change percent whose
// sign and magnitude agree with it: up is strictly positive, down strictly
// negative, stable a small positive drift of at most 0.5.
func sampleTrend() (string, float64) {
	switch rand.Intn(3) {
	case 0:
		return TrendUp, round1(0.1 + rand.Float64()*4.9)
	case 1:
		return TrendDown, -round1(0.1 + rand.Float64()*4.9)
	default:
		return TrendStable, round1(rand.Float64() * 0.5)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
