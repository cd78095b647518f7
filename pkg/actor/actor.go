// Package actor carries the authenticated user id through request contexts
// so that lower layers can attribute writes without depending on HTTP code.
package actor

import "context"

type ctxKey struct{}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns nil for anonymous or system contexts.
func UserID(ctx context.Context) *int {
	id, ok := ctx.Value(ctxKey{}).(int)
	if !ok {
		return nil
	}
	return &id
}
