// Package actorctx carries the authenticated operator through request context.
package actorctx

import "context"

type ctxKey struct{}

const AnonymousOperator = ""

func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, ctxKey{}, operator)
}

func Operator(ctx context.Context) string {
	v, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return AnonymousOperator
	}
	return v
}
