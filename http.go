package ghgql

import (
	"net/http"
	"time"
)

var defaultRequestTimeout = 30 * time.Second

// newHTTPClient builds the HTTP client used when the caller does not bring
// its own. Connections are pooled and reused across queries until the
// session is closed.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaultRequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
