package web

import (
	"context"

	"github.com/crimebase/crimebase/internal/models"
)

type ctxKey int

const (
	userCtxKey ctxKey = iota
	tokenCtxKey
)

// userFrom returns the authenticated user stored by the auth middleware.
func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userCtxKey).(*models.User)
	return user
}

// tokenFrom returns the raw session token for the current request.
func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey).(string)
	return token
}
