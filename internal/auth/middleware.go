package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated desk operator for one request.
type Principal struct {
	Session *Session
}

// AuthMiddleware validates bearer tokens and loads session principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions *SessionStore
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions *SessionStore) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	session, err := m.sessions.Get(c.Context(), claims.SessionID)
	if err != nil {
		return apperrors.NewUnauthorized("session expired")
	}

	c.Locals(principalKey, &Principal{Session: session})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated operator.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireAction gates a route on the operator's role.
func RequireAction(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !CanPerform(principal.Session.User.Role, action) {
			return apperrors.NewForbidden("role may not perform " + string(action))
		}
		return c.Next()
	}
}

// RequireView gates a route on panel visibility.
func RequireView(view View) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, allowed := PermittedViews(principal.Session.User.Role)[view]; !allowed {
			return apperrors.NewForbidden("role may not open " + string(view))
		}
		return c.Next()
	}
}
