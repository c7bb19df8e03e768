package adapter

import (
	"encoding/json"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// DecodeReporte parses a raw upstream reporte.
func DecodeReporte(data []byte) (domain.Reporte, []Fallback) {
	var p ReportePayload
	if err := json.Unmarshal(data, &p); err != nil {
		r, fb := ReporteFromBackend(ReportePayload{})
		return r, append(fb, Fallback{Entity: "reporte", Field: "payload", Used: "unparseable: " + err.Error()})
	}
	return ReporteFromBackend(p)
}

// DecodeReporteList parses an upstream list response in either list shape.
func DecodeReporteList(data []byte) ([]domain.Reporte, []Fallback) {
	items, fb := unwrapList(data, "reporte")
	reportes := make([]domain.Reporte, 0, len(items))
	for _, item := range items {
		r, itemFB := DecodeReporte(item)
		reportes = append(reportes, r)
		fb = append(fb, itemFB...)
	}
	return reportes, fb
}

// ReporteFromBackend maps a decoded snapshot into the canonical model.
// Counts and the resolution average are clamped non-negative.
func ReporteFromBackend(p ReportePayload) (domain.Reporte, []Fallback) {
	var fb []Fallback
	note := func(field, used string) {
		fb = append(fb, Fallback{Entity: "reporte", Field: field, Used: used})
	}

	id := p.ID
	if id == 0 {
		id = p.IDReporte
	}

	fecha, ok := parseDate(p.Fecha)
	if !ok {
		fecha = timeNow()
		note("fecha", "now")
	}

	abiertos := p.TicketsAbiertos
	if abiertos < 0 {
		abiertos = 0
		note("ticketsAbiertos", "clamped negative to 0")
	}
	cerrados := p.TicketsCerrados
	if cerrados < 0 {
		cerrados = 0
		note("ticketsCerrados", "clamped negative to 0")
	}
	resolucion := p.TiempoProResolucion
	if resolucion < 0 {
		resolucion = 0
		note("tiempoProResolucion", "clamped negative to 0")
	}

	return domain.Reporte{
		ID:                  id,
		Fecha:               fecha,
		TicketsAbiertos:     abiertos,
		TicketsCerrados:     cerrados,
		TiempoProResolucion: resolucion,
	}, fb
}

// ReporteToBackend builds the upstream create payload. Fecha is assigned by
// the upstream on insert; snapshots are immutable once created.
func ReporteToBackend(r domain.Reporte) map[string]any {
	return map[string]any{
		"ticketsAbiertos":     r.TicketsAbiertos,
		"ticketsCerrados":     r.TicketsCerrados,
		"tiempoProResolucion": r.TiempoProResolucion,
	}
}
