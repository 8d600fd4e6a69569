package middleware

import (
	"context"

	"github.com/TariqTawalbeh/employees-board/internal/access"
)

type contextKey string

const ctxActor contextKey = "actor"

// ActorFromContext returns the authenticated actor seeded by Auth.
func ActorFromContext(ctx context.Context) (access.Actor, bool) {
	if ctx == nil {
		return access.Actor{}, false
	}
	if v, ok := ctx.Value(ctxActor).(access.Actor); ok {
		return v, true
	}
	return access.Actor{}, false
}

// WithActor injects the authenticated actor into the context.
func WithActor(ctx context.Context, actor access.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}
