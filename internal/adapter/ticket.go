// Package adapter translates between the upstream ticashop REST payloads,
// which vary across backend revisions, and the canonical in-memory model.
// Decoding never fails: when no known schema binds a field the adapter fills
// a documented default or sentinel and records a Fallback so callers can log
// the degradation instead of masking it.
package adapter

import (
	"encoding/json"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// Fallback records a field that no known upstream schema could bind, together
// with the default or sentinel used instead.
type Fallback struct {
	Entity string
	Field  string
	Used   string
}

// Sentinel values. Never empty, never nil: the desk must always have
// something to render.
const (
	SentinelCustomer    = "Cliente no especificado"
	SentinelEmail       = "sin@email.com"
	SentinelTitle       = "Sin título"
	SentinelDescription = "Sin descripción"
	SentinelAuthor      = "Usuario"
)

const titlePrefixLen = 50

var timeNow = time.Now

// DecodeTicket parses a raw upstream ticket. Unparseable JSON yields a
// degraded-but-renderable zero ticket rather than an error.
func DecodeTicket(data []byte) (domain.Ticket, []Fallback) {
	var p TicketPayload
	if err := json.Unmarshal(data, &p); err != nil {
		t, fb := TicketFromBackend(TicketPayload{})
		return t, append(fb, Fallback{Entity: "ticket", Field: "payload", Used: "unparseable: " + err.Error()})
	}
	return TicketFromBackend(p)
}

// DecodeTicketList parses an upstream list response, accepting both the bare
// array shape and the paginated {"results": [...]} envelope.
func DecodeTicketList(data []byte) ([]domain.Ticket, []Fallback) {
	items, fb := unwrapList(data, "ticket")
	tickets := make([]domain.Ticket, 0, len(items))
	for _, item := range items {
		t, itemFB := DecodeTicket(item)
		tickets = append(tickets, t)
		fb = append(fb, itemFB...)
	}
	return tickets, fb
}

// TicketFromBackend maps a decoded payload into the canonical model. The
// current REST shape is tried first, then the legacy shape, then sentinels.
func TicketFromBackend(p TicketPayload) (domain.Ticket, []Fallback) {
	var fb []Fallback
	note := func(field, used string) {
		fb = append(fb, Fallback{Entity: "ticket", Field: field, Used: used})
	}

	id := p.ID
	if id == 0 {
		id = p.IDTicket
	}

	description := firstNonEmpty(p.Descripcion, p.Description, p.Desc)
	if description == "" {
		description = SentinelDescription
		note("description", SentinelDescription)
	}

	title := firstNonEmpty(p.Titulo, p.Title)
	if title == "" {
		if p.Descripcion != "" || p.Description != "" || p.Desc != "" {
			title = truncate(description, titlePrefixLen)
			note("title", "description prefix")
		} else {
			title = SentinelTitle
			note("title", SentinelTitle)
		}
	}

	status, ok := lookupStatus(firstNonEmpty(p.Estado, p.Status))
	if !ok {
		if s, derived := statusFromFreeForm(p.Estado); derived {
			status = s
			note("status", "derived from free-form estado")
		} else {
			status = domain.TicketStatusOpen
			note("status", string(domain.TicketStatusOpen))
		}
	}

	priority, ok := lookupPriority(firstNonEmpty(p.Prioridad, p.Priority))
	if !ok {
		priority = domain.TicketPriorityMedium
		note("priority", string(domain.TicketPriorityMedium))
	}

	category, ok := lookupCategory(firstNonEmpty(p.Categoria, p.Category))
	if !ok {
		category = domain.TicketCategoryOther
		note("category", string(domain.TicketCategoryOther))
	}

	customer := firstNonEmpty(p.NombreCliente, p.Cliente, p.Customer, p.NombreClienteCamel,
		refNombre(p.IDUsuario), refUsername(p.IDUsuario))
	if customer == "" {
		customer = SentinelCustomer
		note("customer", SentinelCustomer)
	}

	email := firstNonEmpty(p.EmailCliente, p.Correo, p.Email, p.CorreoCliente,
		refCorreo(p.IDUsuario), refEmail(p.IDUsuario))
	if email == "" {
		email = SentinelEmail
		note("email", SentinelEmail)
	}

	var phone *string
	if raw := firstNonEmpty(p.TelefonoCliente, p.Telefono, p.Phone, p.TelefonoClienteCamel,
		refTelefono(p.IDUsuario)); raw != "" {
		phone = &raw
	}

	var assignedTo *string
	if name := firstNonEmpty(p.IDTecnico.DisplayName(), p.Tecnico.DisplayName(), p.NombreTecnico, p.AssignedTo); name != "" {
		assignedTo = &name
	}

	createdAt, ok := parseFirstDate(p.FechaCreacion, p.CreatedAt)
	if !ok {
		createdAt = timeNow()
		note("createdAt", "now")
	}
	updatedAt, ok := parseFirstDate(p.FechaActualizacion, p.UpdatedAt)
	if !ok {
		// createdAt keeps updatedAt >= createdAt when only one side is known.
		updatedAt = createdAt
		note("updatedAt", "createdAt")
	}
	var closedAt *time.Time
	if t, ok := parseDate(p.FechaCierre); ok {
		closedAt = &t
	}

	rawComments := p.Comentarios
	if rawComments == nil {
		rawComments = p.Comments
	}
	comments := make([]domain.Comment, 0, len(rawComments))
	for _, rc := range rawComments {
		c, commentFB := commentFromBackend(rc)
		comments = append(comments, c)
		fb = append(fb, commentFB...)
	}

	return domain.Ticket{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
		Status:      status,
		Customer:    customer,
		Email:       email,
		Phone:       phone,
		AssignedTo:  assignedTo,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		ClosedAt:    closedAt,
		Comments:    comments,
	}, fb
}

// DecodeComment parses one raw upstream comentario.
func DecodeComment(data []byte) (domain.Comment, []Fallback) {
	var p ComentarioPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c, fb := commentFromBackend(ComentarioPayload{})
		return c, append(fb, Fallback{Entity: "comment", Field: "payload", Used: "unparseable: " + err.Error()})
	}
	return commentFromBackend(p)
}

// DecodeCommentList parses an upstream comment list in either list shape.
func DecodeCommentList(data []byte) ([]domain.Comment, []Fallback) {
	items, fb := unwrapList(data, "comment")
	comments := make([]domain.Comment, 0, len(items))
	for _, item := range items {
		c, itemFB := DecodeComment(item)
		comments = append(comments, c)
		fb = append(fb, itemFB...)
	}
	return comments, fb
}

func commentFromBackend(p ComentarioPayload) (domain.Comment, []Fallback) {
	var fb []Fallback

	id := p.ID
	if id == 0 {
		id = p.IDComentario
	}

	author := firstNonEmpty(p.Autor, p.Author, refNombre(p.Usuario), refUsername(p.Usuario))
	if author == "" {
		author = SentinelAuthor
		fb = append(fb, Fallback{Entity: "comment", Field: "author", Used: SentinelAuthor})
	}

	timestamp, ok := parseFirstDate(p.FechaCreacion, p.Timestamp, p.Fecha)
	if !ok {
		timestamp = timeNow()
		fb = append(fb, Fallback{Entity: "comment", Field: "timestamp", Used: "now"})
	}

	commentType, ok := lookupCommentType(firstNonEmpty(p.Tipo, p.Type))
	if !ok {
		commentType = domain.CommentTypeAgent
	}

	return domain.Comment{
		ID:        id,
		Author:    author,
		Content:   firstNonEmpty(p.Contenido, p.Content, p.Texto),
		Timestamp: timestamp,
		Type:      commentType,
	}, fb
}

// TicketDraft carries the outbound fields for ticket creation.
type TicketDraft struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    domain.TicketCategory
	Status      domain.TicketStatus
	Customer    string
	Email       string
	Phone       *string
	UsuarioID   int64
}

// TicketToBackend builds the upstream create payload.
func TicketToBackend(d TicketDraft) map[string]any {
	payload := map[string]any{
		"titulo":         d.Title,
		"descripcion":    d.Description,
		"prioridad":      priorityToken(d.Priority),
		"estado":         statusToken(d.Status),
		"categoria":      categoryToken(d.Category),
		"nombre_cliente": d.Customer,
		"email_cliente":  d.Email,
	}
	if d.Phone != nil {
		payload["telefono_cliente"] = *d.Phone
	}
	if d.UsuarioID != 0 {
		payload["idUsuario"] = d.UsuarioID
	}
	return payload
}

// TicketUpdate carries a partial update: only non-nil fields are translated.
type TicketUpdate struct {
	Title       *string
	Description *string
	Priority    *domain.TicketPriority
	Category    *domain.TicketCategory
	Status      *domain.TicketStatus
	Customer    *string
	Email       *string
	Phone       *string
}

// TicketUpdateToBackend builds the upstream PATCH payload, translating only
// the fields present in the partial update.
func TicketUpdateToBackend(u TicketUpdate) map[string]any {
	payload := map[string]any{}
	if u.Title != nil {
		payload["titulo"] = *u.Title
	}
	if u.Description != nil {
		payload["descripcion"] = *u.Description
	}
	if u.Priority != nil {
		payload["prioridad"] = priorityToken(*u.Priority)
	}
	if u.Category != nil {
		payload["categoria"] = categoryToken(*u.Category)
	}
	if u.Status != nil {
		payload["estado"] = statusToken(*u.Status)
	}
	if u.Customer != nil {
		payload["nombre_cliente"] = *u.Customer
	}
	if u.Email != nil {
		payload["email_cliente"] = *u.Email
	}
	if u.Phone != nil {
		payload["telefono_cliente"] = *u.Phone
	}
	return payload
}

// Unrecognized canonical values pass through unchanged so new tokens survive
// the trip when both ends understand them.

func statusToken(s domain.TicketStatus) string {
	if token, ok := statusToBackend[s]; ok {
		return token
	}
	return string(s)
}

func priorityToken(p domain.TicketPriority) string {
	if token, ok := priorityToBackend[p]; ok {
		return token
	}
	return string(p)
}

func categoryToken(c domain.TicketCategory) string {
	if token, ok := categoryToBackend[c]; ok {
		return token
	}
	return string(c)
}

func parseFirstDate(candidates ...string) (time.Time, bool) {
	for _, c := range candidates {
		if t, ok := parseDate(c); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func refNombre(u *UserRef) string {
	if u == nil {
		return ""
	}
	return u.Nombre
}

func refUsername(u *UserRef) string {
	if u == nil {
		return ""
	}
	return u.Username
}

func refCorreo(u *UserRef) string {
	if u == nil {
		return ""
	}
	return u.Correo
}

func refEmail(u *UserRef) string {
	if u == nil {
		return ""
	}
	return u.Email
}

func refTelefono(u *UserRef) string {
	if u == nil {
		return ""
	}
	return u.Telefono
}

func unwrapList(data []byte, entity string) ([]json.RawMessage, []Fallback) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var envelope struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, nil
	}
	return nil, []Fallback{{Entity: entity, Field: "list", Used: "unrecognized list shape, empty"}}
}
