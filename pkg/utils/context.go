package utils

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// UserContext is the authenticated principal of a request.
type UserContext struct {
	ID       uint
	Username string
}

type principalKey struct{}

const userLocalsKey = "user"

// ContextWithPrincipal attaches the principal to ctx. Services read it from
// there to scope owned queries.
func ContextWithPrincipal(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// PrincipalFromContext returns the principal, or nil for anonymous calls.
func PrincipalFromContext(ctx context.Context) *UserContext {
	if ctx == nil {
		return nil
	}
	user, _ := ctx.Value(principalKey{}).(*UserContext)
	return user
}

// SetUser stores the principal in both fiber locals and the request context.
func SetUser(c *fiber.Ctx, user *UserContext) {
	c.Locals(userLocalsKey, user)
	c.SetUserContext(ContextWithPrincipal(c.UserContext(), user))
}

func GetUserFromContext(c *fiber.Ctx) (*UserContext, error) {
	user, ok := c.Locals(userLocalsKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}
