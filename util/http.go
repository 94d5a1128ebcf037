package util

import (
	"net/http"
)

// HTTPClient returns the client used for all outgoing requests
func HTTPClient() *http.Client {
	return &http.Client{Timeout: GetHTTPTimeout()}
}
