package weather

import (
	"math"
	"sort"
	"time"
)

const maxForecastDays = 7

// KmhFromMS converts a wind speed from m/s to km/h, rounded to the nearest
// integer. Current and forecast paths share this so the two never disagree.
func KmhFromMS(speed float64) int {
	return int(math.Round(speed * 3.6))
}

func roundC(v float64) int {
	return int(math.Round(v))
}

// AggregateDaily reduces 3-hourly forecast samples into per-day buckets.
// Samples are bucketed by calendar date in the upstream location's timezone
// (tzOffsetSec east of UTC), sorted ascending, capped at seven days.
//
// Per bucket: max/min temperature over the samples, mean humidity and wind
// (rounded), max precipitation probability scaled to 0-100, and the icon and
// description of the temporal midpoint sample. Icon and description are
// categorical, so the middle sample stands in for the day rather than any
// kind of average.
func AggregateDaily(samples []Sample, tzOffsetSec int) []ForecastDay {
	if len(samples) == 0 {
		return nil
	}

	zone := time.FixedZone("upstream", tzOffsetSec)

	buckets := make(map[string][]Sample)
	order := make([]string, 0, maxForecastDays+1)
	for _, s := range samples {
		date := time.Unix(s.Timestamp, 0).In(zone).Format("2006-01-02")
		if _, seen := buckets[date]; !seen {
			order = append(order, date)
		}
		buckets[date] = append(buckets[date], s)
	}

	sort.Strings(order)
	if len(order) > maxForecastDays {
		order = order[:maxForecastDays]
	}

	days := make([]ForecastDay, 0, len(order))
	for _, date := range order {
		days = append(days, reduceDay(date, buckets[date], zone))
	}

	return days
}

func reduceDay(date string, samples []Sample, zone *time.Location) ForecastDay {
	tempMax := samples[0].Temp
	tempMin := samples[0].Temp
	popMax := samples[0].Pop
	var humiditySum, windSum float64

	for _, s := range samples {
		tempMax = math.Max(tempMax, s.Temp)
		tempMin = math.Min(tempMin, s.Temp)
		popMax = math.Max(popMax, s.Pop)
		humiditySum += s.Humidity
		windSum += s.WindMS
	}

	n := float64(len(samples))
	mid := samples[len(samples)/2]

	day := ""
	if t, err := time.ParseInLocation("2006-01-02", date, zone); err == nil {
		day = t.Format("Mon")
	}

	return ForecastDay{
		Date:        date,
		Day:         day,
		TempMax:     roundC(tempMax),
		TempMin:     roundC(tempMin),
		Icon:        mid.Icon,
		Description: mid.Description,
		Humidity:    roundC(humiditySum / n),
		WindSpeed:   KmhFromMS(windSum / n),
		Pop:         roundC(popMax * 100),
	}
}
