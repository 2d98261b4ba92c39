package handlers

// WeatherRequest is the get-weather request body. The location is a place
// name, not geocoordinates.
type WeatherRequest struct {
	Location string `json:"location" validate:"required,notblank"`
}

// ErrorResponse is the error body shared by both gateways.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Stable error codes for the caller-visible error taxonomy.
const (
	CodeMissingParameter = "MISSING_PARAMETER"
	CodeNotConfigured    = "NOT_CONFIGURED"
	CodeUpstreamError    = "UPSTREAM_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
}
