package integrations

import (
	"errors"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds each catalog request.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies requests as a desktop browser; the catalog
	// refuses obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var (
	// ErrNotFound is returned when the catalog has no page at the requested URL.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-200 responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given per-request timeout.
// timeout <= 0 uses DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// BrowserHeaders returns the default headers for catalog page requests.
// An empty userAgent uses DefaultUserAgent.
func BrowserHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return map[string]string{
		"User-Agent": userAgent,
		"Accept":     "text/html,application/xhtml+xml",
	}
}
