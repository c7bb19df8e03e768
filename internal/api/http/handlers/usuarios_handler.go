package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/api/dto"
	"github.com/ricardo-aragon/ticashop-desk/internal/service"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// UsuariosHandler manages operator account endpoints. All routes are
// admin-gated in the router.
type UsuariosHandler struct {
	sessions *service.SessionManager
	desk     *service.DeskService
}

// NewUsuariosHandler constructs handler.
func NewUsuariosHandler(sessions *service.SessionManager, desk *service.DeskService) *UsuariosHandler {
	return &UsuariosHandler{sessions: sessions, desk: desk}
}

// List GET /usuarios.
func (h *UsuariosHandler) List(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if !sess.Store.Ready() {
		if err := h.desk.Reload(c.UserContext(), sess); err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": dto.NewUserListResponse(sess.Store.Users())})
}

// Create POST /usuarios.
func (h *UsuariosHandler) Create(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Correo) == "" || req.Password == "" {
		return apperrors.NewValidationError("correo and password required", nil)
	}
	if req.Rol == "" {
		return apperrors.NewValidationError("rol required", nil)
	}

	draft := adapter.UserDraft{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Correo:   req.Correo,
		Rol:      req.Rol,
		Password: req.Password,
	}
	user, err := h.desk.CreateUser(c.UserContext(), sess, draft)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update PUT /usuarios/:id.
func (h *UsuariosHandler) Update(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := adapter.UserUpdate{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Correo:   req.Correo,
		Rol:      req.Rol,
		Password: req.Password,
	}
	user, err := h.desk.UpdateUser(c.UserContext(), sess, id, update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete DELETE /usuarios/:id.
func (h *UsuariosHandler) Delete(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.desk.DeleteUser(c.UserContext(), sess, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
