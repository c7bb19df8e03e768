package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ricardo-aragon/ticashop-desk/internal/api/dto"
	"github.com/ricardo-aragon/ticashop-desk/internal/report"
	"github.com/ricardo-aragon/ticashop-desk/internal/service"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// ReportesHandler manages metric snapshots, dashboard stats and exports.
type ReportesHandler struct {
	sessions *service.SessionManager
	desk     *service.DeskService
	reports  *service.ReportService
}

// NewReportesHandler constructs handler.
func NewReportesHandler(sessions *service.SessionManager, desk *service.DeskService, reports *service.ReportService) *ReportesHandler {
	return &ReportesHandler{sessions: sessions, desk: desk, reports: reports}
}

// List GET /reportes.
func (h *ReportesHandler) List(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	reportes, err := sess.Client.ListReportes(c.UserContext())
	if err != nil {
		return h.desk.MapUpstreamError(c.UserContext(), sess, err)
	}
	return c.JSON(fiber.Map{"data": dto.NewReporteListResponse(reportes)})
}

// Latest GET /reportes/latest.
func (h *ReportesHandler) Latest(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	reporte, err := sess.Client.LatestReporte(c.UserContext())
	if err != nil {
		return h.desk.MapUpstreamError(c.UserContext(), sess, err)
	}
	if reporte == nil {
		return apperrors.NewNotFound("reporte", nil)
	}
	return c.JSON(fiber.Map{"data": dto.NewReporteResponse(*reporte)})
}

// Generate POST /reportes.
func (h *ReportesHandler) Generate(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	reporte, err := h.reports.Generate(c.UserContext(), sess.Client)
	if err != nil {
		return err
	}
	sess.Store.AppendReporte(reporte)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewReporteResponse(reporte)})
}

// Stats GET /stats.
func (h *ReportesHandler) Stats(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if !sess.Store.Ready() {
		if err := h.desk.Reload(c.UserContext(), sess); err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"tickets":      report.ComputeTicketStats(sess.Store.Tickets()),
		"licitaciones": report.ComputeLicitacionStats(sess.Store.Licitaciones()),
	}})
}

// ExportTickets GET /export/tickets. The format query selects csv (default)
// or xlsx; filters match the ticket list endpoint.
func (h *ReportesHandler) ExportTickets(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if !sess.Store.Ready() {
		if err := h.desk.Reload(c.UserContext(), sess); err != nil {
			return err
		}
	}
	tickets := sess.Store.FilteredTickets(parseTicketFilter(c))

	switch c.Query("format", "csv") {
	case "csv":
		data, err := report.TicketsCSV(tickets)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		return sendAttachment(c, data, "text/csv", report.ExportFilename("tickets", "csv", time.Now()))
	case "xlsx":
		data, err := report.TicketsXLSX(tickets)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		return sendAttachment(c, data,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			report.ExportFilename("tickets", "xlsx", time.Now()))
	default:
		return apperrors.NewValidationError("format must be csv or xlsx", nil)
	}
}

// ExportLicitaciones GET /export/licitaciones.
func (h *ReportesHandler) ExportLicitaciones(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if !sess.Store.Ready() {
		if err := h.desk.Reload(c.UserContext(), sess); err != nil {
			return err
		}
	}
	licitaciones := sess.Store.Licitaciones()

	switch c.Query("format", "csv") {
	case "csv":
		data, err := report.LicitacionesCSV(licitaciones)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		return sendAttachment(c, data, "text/csv", report.ExportFilename("licitaciones", "csv", time.Now()))
	case "xlsx":
		data, err := report.LicitacionesXLSX(licitaciones)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		return sendAttachment(c, data,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			report.ExportFilename("licitaciones", "xlsx", time.Now()))
	default:
		return apperrors.NewValidationError("format must be csv or xlsx", nil)
	}
}

func sendAttachment(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
