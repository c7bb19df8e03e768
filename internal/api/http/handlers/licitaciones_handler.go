package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/api/dto"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
	"github.com/ricardo-aragon/ticashop-desk/internal/service"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// LicitacionesHandler manages bid endpoints.
type LicitacionesHandler struct {
	sessions *service.SessionManager
	desk     *service.DeskService
}

// NewLicitacionesHandler constructs handler.
func NewLicitacionesHandler(sessions *service.SessionManager, desk *service.DeskService) *LicitacionesHandler {
	return &LicitacionesHandler{sessions: sessions, desk: desk}
}

// List GET /licitaciones.
func (h *LicitacionesHandler) List(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if !sess.Store.Ready() {
		if err := h.desk.Reload(c.UserContext(), sess); err != nil {
			return err
		}
	}

	if estado := c.Query("estado"); estado != "" {
		licitaciones := sess.Store.LicitacionesByEstado(domain.LicitacionStatus(estado))
		return c.JSON(fiber.Map{"data": dto.NewLicitacionListResponse(licitaciones)})
	}
	return c.JSON(fiber.Map{"data": dto.NewLicitacionListResponse(sess.Store.Licitaciones())})
}

// Get GET /licitaciones/:id.
func (h *LicitacionesHandler) Get(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if licitacion, ok := sess.Store.Licitacion(id); ok {
		return c.JSON(fiber.Map{"data": dto.NewLicitacionResponse(licitacion)})
	}

	licitacion, err := sess.Client.GetLicitacion(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return h.desk.MapUpstreamError(c.UserContext(), sess, err)
		}
		return apperrors.NewNotFound("licitacion", map[string]any{"id": id})
	}
	sess.Store.UpsertLicitacion(licitacion)
	return c.JSON(fiber.Map{"data": dto.NewLicitacionResponse(licitacion)})
}

// Create POST /licitaciones.
func (h *LicitacionesHandler) Create(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.CreateLicitacionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Titulo) == "" {
		return apperrors.NewValidationError("titulo required", nil)
	}
	if req.Monto < 0 {
		return apperrors.NewValidationError("monto must not be negative", nil)
	}

	draft := adapter.LicitacionDraft{
		Numero:      req.Numero,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Tipo:        req.Tipo,
		Monto:       req.Monto,
		Moneda:      req.Moneda,
		Entidad:     req.Entidad,
		Propuesta:   req.Propuesta,
		Estado:      req.Estado,
		FechaInicio: req.FechaInicio,
		FechaCierre: req.FechaCierre,
	}
	licitacion, err := h.desk.CreateLicitacion(c.UserContext(), sess, draft)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewLicitacionResponse(licitacion)})
}

// Update PATCH /licitaciones/:id.
func (h *LicitacionesHandler) Update(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.UpdateLicitacionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Monto != nil && *req.Monto < 0 {
		return apperrors.NewValidationError("monto must not be negative", nil)
	}

	update := adapter.LicitacionUpdate{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Tipo:        req.Tipo,
		Monto:       req.Monto,
		Moneda:      req.Moneda,
		Entidad:     req.Entidad,
		Propuesta:   req.Propuesta,
		Estado:      req.Estado,
		FechaCierre: req.FechaCierre,
	}
	licitacion, err := h.desk.UpdateLicitacion(c.UserContext(), sess, id, update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLicitacionResponse(licitacion)})
}

// Delete DELETE /licitaciones/:id.
func (h *LicitacionesHandler) Delete(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.desk.DeleteLicitacion(c.UserContext(), sess, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
