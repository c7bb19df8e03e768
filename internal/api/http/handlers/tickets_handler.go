package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/api/dto"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
	"github.com/ricardo-aragon/ticashop-desk/internal/service"
	"github.com/ricardo-aragon/ticashop-desk/internal/store"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	sessions *service.SessionManager
	desk     *service.DeskService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(sessions *service.SessionManager, desk *service.DeskService) *TicketsHandler {
	return &TicketsHandler{sessions: sessions, desk: desk}
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if err := h.ensureLoaded(c, sess); err != nil {
		return err
	}

	tickets := sess.Store.FilteredTickets(parseTicketFilter(c))
	return c.JSON(fiber.Map{"data": dto.NewTicketListResponse(tickets)})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if ticket, ok := sess.Store.Ticket(id); ok {
		return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
	}

	// Cache miss, go upstream.
	ticket, err := sess.Client.GetTicket(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return h.desk.MapUpstreamError(c.UserContext(), sess, err)
		}
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	sess.Store.UpsertTicket(ticket)
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("title or description required", nil)
	}
	if strings.TrimSpace(req.Customer) == "" {
		return apperrors.NewValidationError("customer required", nil)
	}

	draft := adapter.TicketDraft{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      domain.TicketStatusOpen,
		Customer:    req.Customer,
		Email:       req.Email,
		Phone:       req.Phone,
		UsuarioID:   req.TecnicoID,
	}
	ticket, err := h.desk.CreateTicket(c.UserContext(), sess, draft)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := adapter.TicketUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      req.Status,
		Customer:    req.Customer,
		Email:       req.Email,
		Phone:       req.Phone,
	}
	ticket, err := h.desk.UpdateTicket(c.UserContext(), sess, id, update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.desk.DeleteTicket(c.UserContext(), sess, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Close POST /tickets/:id/close.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ticket, err := h.desk.CloseTicket(c.UserContext(), sess, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Assign POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TecnicoID <= 0 {
		return apperrors.NewValidationError("tecnicoId required", nil)
	}
	ticket, err := h.desk.AssignTicket(c.UserContext(), sess, id, req.TecnicoID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Escalate POST /tickets/:id/escalate.
func (h *TicketsHandler) Escalate(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ticket, err := h.desk.EscalateTicket(c.UserContext(), sess, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ListComments GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	comments, err := sess.Client.ListComentarios(c.UserContext(), id)
	if err != nil {
		return h.desk.MapUpstreamError(c.UserContext(), sess, err)
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, dto.NewCommentResponse(comment))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}

	comment, err := h.desk.AddComment(c.UserContext(), sess, id, req.Content, req.Type)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// ensureLoaded performs a lazy first load so list endpoints work right after
// login or a restart.
func (h *TicketsHandler) ensureLoaded(c *fiber.Ctx, sess *service.Session) error {
	if sess.Store.Ready() {
		return nil
	}
	return h.desk.Reload(c.UserContext(), sess)
}

func parseTicketFilter(c *fiber.Ctx) store.FilterSet {
	var filter store.FilterSet
	if v := c.Query("status"); v != "" {
		status := domain.TicketStatus(v)
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.TicketPriority(v)
		filter.Priority = &priority
	}
	if v := c.Query("category"); v != "" {
		category := domain.TicketCategory(v)
		filter.Category = &category
	}
	if v := c.Query("assignedTo"); v != "" {
		filter.AssignedTo = &v
	}
	filter.Search = c.Query("search")
	return filter
}
