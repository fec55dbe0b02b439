package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

type recordingObserver struct {
	calls  int
	route  string
	status int
}

func (o *recordingObserver) ObserveUpstream(_, route string, status int, _ time.Duration) {
	o.calls++
	o.route = route
	o.status = status
}

func TestDoForwardsCredentialsAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/api/users/7", r.URL.Path)
		assert.Equal(t, "x", r.URL.Query().Get("q"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "v", body["k"])
		_, _ = w.Write([]byte(`{"id":"7"}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(Config{BaseURL: srv.URL}, WithObserver(obs))
	ctx := WithRequestID(WithBearer(context.Background(), "tok"), "req-1")

	var out struct {
		ID string `json:"id"`
	}
	err := client.Do(ctx, Request{
		Method: http.MethodPut,
		Route:  "/api/users/:id",
		Path:   "/api/users/7",
		Query:  url.Values{"q": {"x"}},
		Body:   map[string]string{"k": "v"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "7", out.ID)
	assert.Equal(t, 1, obs.calls)
	assert.Equal(t, "/api/users/:id", obs.route)
	assert.Equal(t, http.StatusOK, obs.status)
}

func TestDoNeverRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(Config{BaseURL: srv.URL}).Do(context.Background(), Request{Path: "/api/activities"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUpstream)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, http.StatusBadGateway, appErrors.FromError(err).Status)
}

func TestDoExtractsStructuredMessage(t *testing.T) {
	cases := map[string]string{
		`{"message":"اسم المستخدم موجود"}`:          "اسم المستخدم موجود",
		`{"error":"bad dates"}`:                     "bad dates",
		`{"success":false,"error":{"message":"x"}}`: "x",
	}
	for body, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(body))
		}))
		err := New(Config{BaseURL: srv.URL}).Do(context.Background(), Request{Path: "/x"}, nil)
		srv.Close()

		msg, ok := StructuredMessage(err)
		assert.True(t, ok, body)
		assert.Equal(t, want, msg)
		assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
		assert.True(t, IsStatus(err, http.StatusBadRequest))
	}
}

func TestDoWithoutStructuredMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>nope</html>"))
	}))
	defer srv.Close()

	err := New(Config{BaseURL: srv.URL}).Do(context.Background(), Request{Path: "/x"}, nil)
	_, ok := StructuredMessage(err)
	assert.False(t, ok)
	assert.Equal(t, appErrors.ErrUpstream.Message, appErrors.FromError(err).Message)
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	err := New(Config{BaseURL: base}, WithObserver(obs)).Do(context.Background(), Request{Path: "/x"}, nil)
	assert.ErrorIs(t, err, appErrors.ErrUpstream)
	assert.Equal(t, 0, obs.status)
}
