package httpclient

import "context"

// Client talks JSON to the backend collaborator. Calls are never retried.
// Implementations are safe for concurrent use.
type Client interface {
	// Do performs the request and decodes a 2xx body into out when out is non-nil.
	Do(ctx context.Context, req Request, out interface{}) error
}

// Option customises the client.
type Option func(*clientImpl)

// WithObserver installs a per-call observer, typically metrics.
func WithObserver(o Observer) Option {
	return func(c *clientImpl) { c.observer = o }
}

// New creates a backend client.
func New(cfg Config, opts ...Option) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &clientImpl{
		baseURL: cfg.BaseURL,
		client:  defaultHTTPClient(timeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
