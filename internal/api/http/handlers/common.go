// Package handlers exposes the desk's HTTP surface. Handlers parse and
// validate requests, resolve the operator's session bundle and delegate to
// the service layer.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ricardo-aragon/ticashop-desk/internal/auth"
	"github.com/ricardo-aragon/ticashop-desk/internal/service"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// resolveSession builds the request-scoped session bundle from the
// middleware principal.
func resolveSession(c *fiber.Ctx, sessions *service.SessionManager) (*service.Session, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Session == nil {
		return nil, apperrors.NewUnauthorized("operator required")
	}
	return sessions.Resolve(principal.Session), nil
}

// idParam parses the :id route parameter.
func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}
