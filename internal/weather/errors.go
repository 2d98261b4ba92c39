package weather

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no upstream API key is set. Weather has
// no offline fallback, so this surfaces to the caller as a deployment error.
var ErrNotConfigured = errors.New("weather API key not configured")

// UpstreamError carries a failed current-weather call back to the handler so
// the upstream status code and message can be mirrored in the response.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream weather API returned %d: %s", e.StatusCode, e.Message)
}
