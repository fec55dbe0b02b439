package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Config holds configuration for the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Request describes one backend call. Route is the path template used as a
// metrics label; Path is the concrete path.
type Request struct {
	Method string
	Route  string
	Path   string
	Query  url.Values
	Body   interface{}
}

// Observer is notified after every backend call.
type Observer interface {
	ObserveUpstream(method, route string, status int, duration time.Duration)
}

// StatusError is returned for non-2xx replies. Message holds the structured
// error message from the reply body when one was present.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

type clientImpl struct {
	baseURL  string
	client   *http.Client
	observer Observer
}
