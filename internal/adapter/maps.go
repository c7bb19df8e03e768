package adapter

import (
	"strings"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// Lookup tables accepting both the legacy localized token set and the
// canonical token set. Unknown input falls back to one documented default
// per field: status→open, priority→medium, category→other.

var statusFromBackend = map[string]domain.TicketStatus{
	"abierto":     domain.TicketStatusOpen,
	"en proceso":  domain.TicketStatusInProgress,
	"cerrado":     domain.TicketStatusClosed,
	"open":        domain.TicketStatusOpen,
	"in-progress": domain.TicketStatusInProgress,
	"closed":      domain.TicketStatusClosed,
}

var statusToBackend = map[domain.TicketStatus]string{
	domain.TicketStatusOpen:       "Abierto",
	domain.TicketStatusInProgress: "En Proceso",
	domain.TicketStatusClosed:     "Cerrado",
}

var priorityFromBackend = map[string]domain.TicketPriority{
	"alta":   domain.TicketPriorityHigh,
	"media":  domain.TicketPriorityMedium,
	"baja":   domain.TicketPriorityLow,
	"high":   domain.TicketPriorityHigh,
	"medium": domain.TicketPriorityMedium,
	"low":    domain.TicketPriorityLow,
}

var priorityToBackend = map[domain.TicketPriority]string{
	domain.TicketPriorityHigh:   "Alta",
	domain.TicketPriorityMedium: "Media",
	domain.TicketPriorityLow:    "Baja",
}

var categoryFromBackend = map[string]domain.TicketCategory{
	"tecnico":     domain.TicketCategoryTechnical,
	"cuenta":      domain.TicketCategoryAccount,
	"pedido":      domain.TicketCategoryOrder,
	"facturacion": domain.TicketCategoryBilling,
	"otro":        domain.TicketCategoryOther,
	"technical":   domain.TicketCategoryTechnical,
	"account":     domain.TicketCategoryAccount,
	"order":       domain.TicketCategoryOrder,
	"billing":     domain.TicketCategoryBilling,
	"other":       domain.TicketCategoryOther,
}

var categoryToBackend = map[domain.TicketCategory]string{
	domain.TicketCategoryTechnical: "Tecnico",
	domain.TicketCategoryAccount:   "Cuenta",
	domain.TicketCategoryOrder:     "Pedido",
	domain.TicketCategoryBilling:   "Facturacion",
	domain.TicketCategoryOther:     "Otro",
}

func lookupStatus(raw string) (domain.TicketStatus, bool) {
	s, ok := statusFromBackend[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

func lookupPriority(raw string) (domain.TicketPriority, bool) {
	p, ok := priorityFromBackend[strings.ToLower(strings.TrimSpace(raw))]
	return p, ok
}

func lookupCategory(raw string) (domain.TicketCategory, bool) {
	c, ok := categoryFromBackend[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// statusFromFreeForm classifies a free-form estado string by substring.
// The legacy upstream stores arbitrary operator-entered estados ("Nuevo",
// "En Proceso de Revisión", ...) that the exact lookup cannot cover.
func statusFromFreeForm(raw string) (domain.TicketStatus, bool) {
	estado := strings.ToLower(raw)
	switch {
	case strings.Contains(estado, "abierto"), strings.Contains(estado, "nuevo"):
		return domain.TicketStatusOpen, true
	case strings.Contains(estado, "proceso"), strings.Contains(estado, "progreso"):
		return domain.TicketStatusInProgress, true
	case strings.Contains(estado, "cerrado"), strings.Contains(estado, "resuelto"):
		return domain.TicketStatusClosed, true
	}
	return "", false
}

// licitacionEstadoBuckets is ordered: earlier entries win when a free-form
// estado matches several substrings.
var licitacionEstadoBuckets = []struct {
	needle string
	status domain.LicitacionStatus
}{
	{"adjudicad", domain.LicitacionAdjudicada},
	{"evaluacion", domain.LicitacionEnEvaluacion},
	{"evaluación", domain.LicitacionEnEvaluacion},
	{"cancelad", domain.LicitacionCancelada},
	{"publicad", domain.LicitacionPublicada},
	{"borrador", domain.LicitacionBorrador},
}

func lookupLicitacionEstado(raw string) (domain.LicitacionStatus, bool) {
	estado := strings.ToLower(strings.TrimSpace(raw))
	switch domain.LicitacionStatus(estado) {
	case domain.LicitacionBorrador, domain.LicitacionPublicada, domain.LicitacionEnEvaluacion,
		domain.LicitacionAdjudicada, domain.LicitacionCancelada:
		return domain.LicitacionStatus(estado), true
	}
	for _, bucket := range licitacionEstadoBuckets {
		if strings.Contains(estado, bucket.needle) {
			return bucket.status, true
		}
	}
	return "", false
}

var licitacionTipos = map[string]domain.LicitacionTipo{
	"servicios":   domain.LicitacionServicios,
	"productos":   domain.LicitacionProductos,
	"obras":       domain.LicitacionObras,
	"consultoria": domain.LicitacionConsultoria,
}

func lookupLicitacionTipo(raw string) (domain.LicitacionTipo, bool) {
	t, ok := licitacionTipos[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

var commentTypes = map[string]domain.CommentType{
	"system":   domain.CommentTypeSystem,
	"sistema":  domain.CommentTypeSystem,
	"agent":    domain.CommentTypeAgent,
	"agente":   domain.CommentTypeAgent,
	"customer": domain.CommentTypeCustomer,
	"cliente":  domain.CommentTypeCustomer,
}

func lookupCommentType(raw string) (domain.CommentType, bool) {
	t, ok := commentTypes[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}
