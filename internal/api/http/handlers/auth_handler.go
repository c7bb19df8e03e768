package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ricardo-aragon/ticashop-desk/internal/api/dto"
	"github.com/ricardo-aragon/ticashop-desk/internal/auth"
	"github.com/ricardo-aragon/ticashop-desk/internal/service"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// AuthHandler manages session endpoints.
type AuthHandler struct {
	sessions *service.SessionManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	out, err := h.sessions.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     out.Token,
		ExpiresAt: out.ExpiresAt,
		User:      dto.NewUserResponse(out.User),
	})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Session == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	if err := h.sessions.Logout(c.UserContext(), principal.Session.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Session == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	user := principal.Session.User

	permitted := auth.PermittedViews(user.Role)
	views := make([]auth.View, 0, len(permitted))
	for _, v := range []auth.View{auth.ViewDashboard, auth.ViewTickets, auth.ViewLicitaciones, auth.ViewReportes, auth.ViewAdministracion} {
		if _, ok := permitted[v]; ok {
			views = append(views, v)
		}
	}
	return c.JSON(dto.MeResponse{User: dto.NewUserResponse(user), Views: views})
}
