package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

// Backend routes consumed by the gateway.
const (
	routeUsers        = "/api/users"
	routeUser         = "/api/users/:id"
	routeUserStatus   = "/api/users/:id/status"
	routeSectors      = "/api/sectors"
	routeSector       = "/api/sectors/:id"
	routeActivities   = "/api/activities"
	routeRecent       = "/api/activities/recent"
	routeReports      = "/api/activities/reports"
	routeReport       = "/api/activities/reports/:id"
	routeMainCriteria = "/api/criteria/main"
	routeSubCriteria  = "/api/criteria/sub"
)

// envelope is the loose {success, message} wrapper some endpoints return.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// decodeEnvelope reads {success, message} when the body is an object and
// yields an empty envelope otherwise.
func decodeEnvelope(raw json.RawMessage) envelope {
	var env envelope
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		_ = json.Unmarshal(raw, &env)
	}
	return env
}

// businessError turns a 2xx reply carrying success:false into ErrBusiness.
func businessError(env envelope, fallback string) error {
	if env.Success == nil || *env.Success {
		return nil
	}
	msg := env.Message
	if msg == "" {
		msg = fallback
	}
	return appErrors.Clone(appErrors.ErrBusiness, msg)
}

// unwrapList decodes a collection that may arrive bare or under one of keys.
// Missing collections decode as empty.
func unwrapList(raw json.RawMessage, dest interface{}, keys ...string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '[' {
		return decodeList(raw, dest)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return upstreamDecodeError(err)
	}
	for _, key := range keys {
		inner := bytes.TrimSpace(obj[key])
		if len(inner) > 0 && inner[0] == '[' {
			return decodeList(inner, dest)
		}
	}
	return nil
}

func decodeList(raw json.RawMessage, dest interface{}) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return upstreamDecodeError(err)
	}
	return nil
}

func upstreamDecodeError(err error) error {
	return appErrors.Wrap(fmt.Errorf("decode backend collection: %w", err), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
}
