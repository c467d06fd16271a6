// Package reqctx carries per-request identity through context.Context.
package reqctx

import "context"

type key int

const (
	actorKey key = iota
	requestIDKey
)

func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey, userID)
}

// Actor returns the authenticated user id, empty when anonymous.
func Actor(ctx context.Context) string {
	id, _ := ctx.Value(actorKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
