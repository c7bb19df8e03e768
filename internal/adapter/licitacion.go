package adapter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// SentinelCliente is used when no owning usuario can be resolved for a bid.
const SentinelCliente = "Cliente Desconocido"

// DecodeLicitacion parses a raw upstream licitación.
func DecodeLicitacion(data []byte) (domain.Licitacion, []Fallback) {
	var p LicitacionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		l, fb := LicitacionFromBackend(LicitacionPayload{})
		return l, append(fb, Fallback{Entity: "licitacion", Field: "payload", Used: "unparseable: " + err.Error()})
	}
	return LicitacionFromBackend(p)
}

// DecodeLicitacionList parses an upstream list response in either list shape.
func DecodeLicitacionList(data []byte) ([]domain.Licitacion, []Fallback) {
	items, fb := unwrapList(data, "licitacion")
	licitaciones := make([]domain.Licitacion, 0, len(items))
	for _, item := range items {
		l, itemFB := DecodeLicitacion(item)
		licitaciones = append(licitaciones, l)
		fb = append(fb, itemFB...)
	}
	return licitaciones, fb
}

// LicitacionFromBackend maps a decoded payload into the canonical model.
func LicitacionFromBackend(p LicitacionPayload) (domain.Licitacion, []Fallback) {
	var fb []Fallback
	note := func(field, used string) {
		fb = append(fb, Fallback{Entity: "licitacion", Field: field, Used: used})
	}

	descripcion := firstNonEmpty(p.Descripcion, p.Description, p.Desc)
	if descripcion == "" {
		descripcion = SentinelDescription
		note("descripcion", SentinelDescription)
	}

	titulo := firstNonEmpty(p.Titulo, p.Title)
	if titulo == "" {
		if p.Descripcion != "" || p.Description != "" || p.Desc != "" {
			titulo = truncate(descripcion, titlePrefixLen)
			note("titulo", "descripcion prefix")
		} else {
			titulo = SentinelTitle
			note("titulo", SentinelTitle)
		}
	}

	numero := p.Numero
	if numero == "" {
		numero = fmt.Sprintf("LIC-%d", p.ID)
	}

	tipo, ok := lookupLicitacionTipo(p.Tipo)
	if !ok {
		tipo = domain.LicitacionServicios
		note("tipo", string(domain.LicitacionServicios))
	}

	monto := p.Monto
	if monto < 0 {
		monto = 0
		note("monto", "clamped negative to 0")
	}

	moneda := p.Moneda
	if moneda == "" {
		moneda = "USD"
		note("moneda", "USD")
	}

	estado, ok := lookupLicitacionEstado(firstNonEmpty(p.Estado, p.Status))
	if !ok {
		estado = domain.LicitacionBorrador
		note("estado", string(domain.LicitacionBorrador))
	}

	cliente := firstNonEmpty(refNombre(p.IDUsuario), refUsername(p.IDUsuario))
	if cliente == "" {
		cliente = SentinelCliente
		note("cliente", SentinelCliente)
	}

	fechaCreacion, ok := parseFirstDate(p.FechaCreacion, p.CreatedAt)
	if !ok {
		fechaCreacion = timeNow()
		note("fechaCreacion", "now")
	}

	var fechaInicio, fechaCierre *time.Time
	if t, ok := parseDate(p.FechaInicio); ok {
		fechaInicio = &t
	}
	if t, ok := parseDate(p.FechaCierre); ok {
		fechaCierre = &t
	}

	return domain.Licitacion{
		ID:            p.ID,
		Numero:        numero,
		Titulo:        titulo,
		Descripcion:   descripcion,
		Tipo:          tipo,
		Monto:         monto,
		Moneda:        moneda,
		Entidad:       p.Entidad,
		Cliente:       cliente,
		Propuesta:     p.Propuesta,
		Estado:        estado,
		FechaInicio:   fechaInicio,
		FechaCierre:   fechaCierre,
		FechaCreacion: fechaCreacion,
	}, fb
}

// LicitacionDraft carries outbound fields for bid creation.
type LicitacionDraft struct {
	Numero      string
	Titulo      string
	Descripcion string
	Tipo        domain.LicitacionTipo
	Monto       float64
	Moneda      string
	Entidad     string
	Propuesta   string
	Estado      domain.LicitacionStatus
	FechaInicio *time.Time
	FechaCierre *time.Time
	UsuarioID   int64
}

// LicitacionToBackend builds the upstream create payload.
func LicitacionToBackend(d LicitacionDraft) map[string]any {
	payload := map[string]any{
		"numero":      d.Numero,
		"titulo":      d.Titulo,
		"descripcion": d.Descripcion,
		"tipo":        string(d.Tipo),
		"monto":       d.Monto,
		"moneda":      d.Moneda,
		"entidad":     d.Entidad,
		"propuesta":   d.Propuesta,
		"estado":      string(d.Estado),
	}
	if d.FechaInicio != nil {
		payload["fechaInicio"] = d.FechaInicio.Format(time.RFC3339)
	}
	if d.FechaCierre != nil {
		payload["fechaCierre"] = d.FechaCierre.Format(time.RFC3339)
	}
	if d.UsuarioID != 0 {
		payload["idUsuario"] = d.UsuarioID
	}
	return payload
}

// LicitacionUpdate carries a partial update: only non-nil fields are sent.
type LicitacionUpdate struct {
	Titulo      *string
	Descripcion *string
	Tipo        *domain.LicitacionTipo
	Monto       *float64
	Moneda      *string
	Entidad     *string
	Propuesta   *string
	Estado      *domain.LicitacionStatus
	FechaCierre *time.Time
}

// LicitacionUpdateToBackend builds the upstream PATCH payload.
func LicitacionUpdateToBackend(u LicitacionUpdate) map[string]any {
	payload := map[string]any{}
	if u.Titulo != nil {
		payload["titulo"] = *u.Titulo
	}
	if u.Descripcion != nil {
		payload["descripcion"] = *u.Descripcion
	}
	if u.Tipo != nil {
		payload["tipo"] = string(*u.Tipo)
	}
	if u.Monto != nil {
		payload["monto"] = *u.Monto
	}
	if u.Moneda != nil {
		payload["moneda"] = *u.Moneda
	}
	if u.Entidad != nil {
		payload["entidad"] = *u.Entidad
	}
	if u.Propuesta != nil {
		payload["propuesta"] = *u.Propuesta
	}
	if u.Estado != nil {
		payload["estado"] = string(*u.Estado)
	}
	if u.FechaCierre != nil {
		payload["fechaCierre"] = u.FechaCierre.Format(time.RFC3339)
	}
	return payload
}
