package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

func defaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (c *clientImpl) Do(ctx context.Context, req Request, out interface{}) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set(headerAccept, contentTypeJSON)
	if bodyReader != nil {
		httpReq.Header.Set(headerContentType, contentTypeJSON)
	}
	if token := bearerFrom(ctx); token != "" {
		httpReq.Header.Set(headerAuthorization, "Bearer "+token)
	}
	if id := requestIDFrom(ctx); id != "" {
		httpReq.Header.Set(headerRequestID, id)
	}

	route := req.Route
	if route == "" {
		route = req.Path
	}
	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.observe(method, route, 0, start)
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close() //nolint:errcheck
	c.observe(method, route, resp.StatusCode, start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(fmt.Errorf("failed to read response body: %w", err), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, req.Path, resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return appErrors.Wrap(fmt.Errorf("failed to decode response: %w", err), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	return nil
}

func (c *clientImpl) observe(method, route string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstream(method, route, status, time.Since(start))
	}
}

// statusError maps a failed reply onto the console error taxonomy. Client
// errors keep their status so 401/403/404 reach the caller unchanged; every
// other failure is reported as a bad gateway.
func statusError(method, path string, status int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	se := &StatusError{Method: method, Path: path, Status: status, Message: extractMessage(body), Body: body}

	httpStatus := appErrors.ErrUpstream.Status
	if status >= 400 && status < 500 {
		httpStatus = status
	}
	message := se.Message
	if message == "" {
		message = appErrors.ErrUpstream.Message
	}
	return appErrors.Wrap(se, appErrors.ErrUpstream.Code, httpStatus, message)
}

// extractMessage reads {"message": "..."} or {"error": "..."} or
// {"error": {"message": "..."}} from an error body.
func extractMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	if len(payload.Error) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload.Error, &text); err == nil {
		return text
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &nested); err == nil {
		return nested.Message
	}
	return ""
}
