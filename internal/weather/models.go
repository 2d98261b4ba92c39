package weather

// Snapshot is the normalized current-conditions payload. Temperatures are
// Celsius, wind is km/h, humidity is a percentage. Upstream field names and
// units never leak through this type.
type Snapshot struct {
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feels_like"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Condition   string `json:"condition"`
	Sunrise     int64  `json:"sunrise"`
	Sunset      int64  `json:"sunset"`
}

// ForecastDay is one calendar day reduced from the upstream 3-hourly samples.
type ForecastDay struct {
	Date        string `json:"date"`
	Day         string `json:"day"`
	TempMax     int    `json:"temp_max"`
	TempMin     int    `json:"temp_min"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	Pop         int    `json:"pop"`
}

// Report is the gateway response envelope.
type Report struct {
	Current  Snapshot      `json:"current"`
	Forecast []ForecastDay `json:"forecast"`
	Location string        `json:"location"`
}

// Sample is one 3-hourly forecast point in upstream units (Celsius, m/s,
// fractional precipitation probability).
type Sample struct {
	Timestamp   int64
	Temp        float64
	Humidity    float64
	WindMS      float64
	Pop         float64
	Icon        string
	Description string
}
