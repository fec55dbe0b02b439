package httpclient

import "time"

// DefaultTimeout bounds a single backend call when no timeout is configured.
const DefaultTimeout = 15 * time.Second

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	contentTypeJSON     = "application/json"

	// maxErrorBody caps how much of a failed reply is kept for diagnostics.
	maxErrorBody = 4 << 10
)
