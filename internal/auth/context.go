package auth

import (
	"context"

	"github.com/duoplan/duoplan/internal/model"
)

type contextKey struct{}

// AuthContext carries the resolved identity for a request. Stores only ever
// see the user id; tokens stop at the middleware.
type AuthContext struct {
	UserID model.UserID
	Token  string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

// UserID returns the authenticated user, or the empty id when the request
// carries no identity.
func UserID(ctx context.Context) model.UserID {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.UserID
}
