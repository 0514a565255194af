package httpx

import (
	"net/http"
	"time"
)

// NewPooledClient creates the shared outbound HTTP client with connection
// pooling sized for the probe workload.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
