package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ricardo-aragon/ticashop-desk/internal/service"
)

// ViewHandler manages the session's view-state lifecycle.
type ViewHandler struct {
	sessions *service.SessionManager
	desk     *service.DeskService
}

// NewViewHandler constructs handler.
func NewViewHandler(sessions *service.SessionManager, desk *service.DeskService) *ViewHandler {
	return &ViewHandler{sessions: sessions, desk: desk}
}

// Reload POST /view/reload refetches every collection for this session.
func (h *ViewHandler) Reload(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if err := h.desk.Reload(c.UserContext(), sess); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": viewStatus(sess)})
}

// Status GET /view/status reports the session's load state.
func (h *ViewHandler) Status(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": viewStatus(sess)})
}

func viewStatus(sess *service.Session) fiber.Map {
	status := fiber.Map{
		"ready":   sess.Store.Ready(),
		"loading": sess.Store.Loading(),
	}
	if err := sess.Store.Err(); err != nil {
		status["error"] = err.Error()
	}
	if loadedAt := sess.Store.LoadedAt(); !loadedAt.IsZero() {
		status["loadedAt"] = loadedAt.Format(time.RFC3339)
	}
	return status
}
