// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is the shared client for outbound calls (Discord webhooks,
// completions API). Pollers with tighter deadlines carry their own.
var HTTPClient = &http.Client{
	Timeout: 60 * time.Second,
}
