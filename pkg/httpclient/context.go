package httpclient

import "context"

type ctxKey int

const (
	bearerKey ctxKey = iota
	requestIDKey
)

// WithBearer stores the caller's access token so backend calls act on their behalf.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey, token)
}

// WithRequestID stores the request id propagated to the backend.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func bearerFrom(ctx context.Context) string {
	v, _ := ctx.Value(bearerKey).(string)
	return v
}

func requestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
