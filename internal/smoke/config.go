package smoke

import "time"

// Default configuration values for the smoke checker.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultActivity = "Art Club"
	DefaultTimeout  = 10 * time.Second
)

// Config controls a smoke run against a live service instance.
type Config struct {
	// BaseURL of the running service, without a trailing slash.
	BaseURL string

	// Activity to sign the probe student up for. Must exist on the
	// target instance.
	Activity string

	// Timeout applies per HTTP request.
	Timeout time.Duration
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Activity == "" {
		c.Activity = DefaultActivity
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
