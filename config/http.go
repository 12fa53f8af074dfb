package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// AllowedOrigin is the single origin permitted to call the API with
	// cross-origin requests, e.g. "https://example.com". Empty disables the
	// CORS headers.
	AllowedOrigin string `env:"HTTP_ALLOWED_ORIGIN" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":8080"
	}
}
