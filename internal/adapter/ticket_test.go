package adapter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}

func TestDecodeTicketModernShape(t *testing.T) {
	payload := `{
		"id": 7,
		"titulo": "No puedo entrar",
		"descripcion": "El login rechaza mi clave",
		"prioridad": "Alta",
		"categoria": "Tecnico",
		"estado": "Abierto",
		"nombre_cliente": "Ana Ruiz",
		"email_cliente": "ana@example.com",
		"telefono_cliente": "555-0101",
		"fecha_creacion": "2026-01-10T09:00:00Z",
		"fecha_actualizacion": "2026-01-11T10:30:00Z"
	}`

	ticket, fallbacks := DecodeTicket([]byte(payload))
	if len(fallbacks) != 0 {
		t.Fatalf("expected no fallbacks, got %v", fallbacks)
	}
	if ticket.ID != 7 {
		t.Errorf("ID = %d, want 7", ticket.ID)
	}
	if ticket.Title != "No puedo entrar" {
		t.Errorf("Title = %q", ticket.Title)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("Status = %q, want open", ticket.Status)
	}
	if ticket.Priority != domain.TicketPriorityHigh {
		t.Errorf("Priority = %q, want high", ticket.Priority)
	}
	if ticket.Category != domain.TicketCategoryTechnical {
		t.Errorf("Category = %q, want technical", ticket.Category)
	}
	if ticket.Customer != "Ana Ruiz" || ticket.Email != "ana@example.com" {
		t.Errorf("customer/email = %q/%q", ticket.Customer, ticket.Email)
	}
	if ticket.Phone == nil || *ticket.Phone != "555-0101" {
		t.Errorf("Phone = %v", ticket.Phone)
	}
	if !ticket.UpdatedAt.After(ticket.CreatedAt) {
		t.Errorf("UpdatedAt %v not after CreatedAt %v", ticket.UpdatedAt, ticket.CreatedAt)
	}
}

func TestDecodeTicketLegacyShape(t *testing.T) {
	payload := `{
		"idTicket": 42,
		"desc": "Pantalla en blanco al abrir reportes",
		"estado": "Nuevo",
		"idUsuario": {"id": 3, "nombre": "Luis", "apellido": "Mora", "correo": "luis@example.com", "telefono": "555-0202"},
		"idTecnico": {"id": 9, "nombre": "Carla", "apellido": "Vega"},
		"fecha_creacion": "2026-01-05"
	}`

	ticket, _ := DecodeTicket([]byte(payload))
	if ticket.ID != 42 {
		t.Errorf("ID = %d, want 42", ticket.ID)
	}
	if ticket.Description != "Pantalla en blanco al abrir reportes" {
		t.Errorf("Description = %q", ticket.Description)
	}
	// Title derives from the description when no title field binds.
	if ticket.Title != "Pantalla en blanco al abrir reportes" {
		t.Errorf("Title = %q", ticket.Title)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("Status = %q, want open for estado Nuevo", ticket.Status)
	}
	if ticket.Customer != "Luis Mora" {
		t.Errorf("Customer = %q, want Luis Mora", ticket.Customer)
	}
	if ticket.Email != "luis@example.com" {
		t.Errorf("Email = %q", ticket.Email)
	}
	if ticket.Phone == nil || *ticket.Phone != "555-0202" {
		t.Errorf("Phone = %v", ticket.Phone)
	}
	if ticket.AssignedTo == nil || *ticket.AssignedTo != "Carla Vega" {
		t.Errorf("AssignedTo = %v", ticket.AssignedTo)
	}
}

func TestDecodeTicketEmptyPayloadUsesSentinels(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	ticket, fallbacks := DecodeTicket([]byte(`{}`))
	if ticket.Title != SentinelTitle {
		t.Errorf("Title = %q, want %q", ticket.Title, SentinelTitle)
	}
	if ticket.Description != SentinelDescription {
		t.Errorf("Description = %q", ticket.Description)
	}
	if ticket.Customer != SentinelCustomer {
		t.Errorf("Customer = %q", ticket.Customer)
	}
	if ticket.Email != SentinelEmail {
		t.Errorf("Email = %q", ticket.Email)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("Status = %q, want open", ticket.Status)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Errorf("Priority = %q, want medium", ticket.Priority)
	}
	if ticket.Category != domain.TicketCategoryOther {
		t.Errorf("Category = %q, want other", ticket.Category)
	}
	if !ticket.CreatedAt.Equal(now) || !ticket.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v, want %v", ticket.CreatedAt, ticket.UpdatedAt, now)
	}
	if len(fallbacks) == 0 {
		t.Fatal("expected fallbacks for an empty payload")
	}
}

func TestDecodeTicketUnparseableNeverFails(t *testing.T) {
	fixedNow(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	ticket, fallbacks := DecodeTicket([]byte(`not json`))
	if ticket.Title != SentinelTitle {
		t.Errorf("Title = %q, want sentinel", ticket.Title)
	}
	found := false
	for _, fb := range fallbacks {
		if fb.Field == "payload" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a payload fallback, got %v", fallbacks)
	}
}

func TestTicketStatusFreeForm(t *testing.T) {
	cases := []struct {
		estado string
		want   domain.TicketStatus
	}{
		{"Nuevo", domain.TicketStatusOpen},
		{"En Proceso de Revisión", domain.TicketStatusInProgress},
		{"Resuelto por el equipo", domain.TicketStatusClosed},
		{"???", domain.TicketStatusOpen},
	}
	for _, tc := range cases {
		ticket, _ := DecodeTicket([]byte(`{"id":1,"estado":"` + tc.estado + `"}`))
		if ticket.Status != tc.want {
			t.Errorf("estado %q: got %q, want %q", tc.estado, ticket.Status, tc.want)
		}
	}
}

func TestTicketUpdatedAtDefaultsToCreatedAt(t *testing.T) {
	ticket, _ := DecodeTicket([]byte(`{"id":1,"fecha_creacion":"2026-01-10T09:00:00Z"}`))
	if !ticket.UpdatedAt.Equal(ticket.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want CreatedAt %v", ticket.UpdatedAt, ticket.CreatedAt)
	}
}

func TestUserRefAcceptsBareID(t *testing.T) {
	var p TicketPayload
	if err := json.Unmarshal([]byte(`{"id":5,"idUsuario":3}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.IDUsuario == nil || p.IDUsuario.ID != 3 {
		t.Errorf("IDUsuario = %+v, want ID 3", p.IDUsuario)
	}
}

func TestDecodeTicketListShapes(t *testing.T) {
	bare := []byte(`[{"id":1},{"id":2}]`)
	envelope := []byte(`{"count":2,"results":[{"id":1},{"id":2}]}`)

	for name, data := range map[string][]byte{"bare": bare, "envelope": envelope} {
		tickets, _ := DecodeTicketList(data)
		if len(tickets) != 2 {
			t.Errorf("%s: got %d tickets, want 2", name, len(tickets))
		}
	}

	tickets, fallbacks := DecodeTicketList([]byte(`"garbage"`))
	if len(tickets) != 0 {
		t.Errorf("garbage list: got %d tickets", len(tickets))
	}
	if len(fallbacks) == 0 {
		t.Error("garbage list: expected a fallback")
	}
}

func TestTicketRoundTrip(t *testing.T) {
	phone := "555-0303"
	draft := TicketDraft{
		Title:       "Factura duplicada",
		Description: "El cliente recibió dos facturas en enero",
		Priority:    domain.TicketPriorityLow,
		Category:    domain.TicketCategoryBilling,
		Status:      domain.TicketStatusInProgress,
		Customer:    "Marta Díaz",
		Email:       "marta@example.com",
		Phone:       &phone,
	}

	outbound, err := json.Marshal(TicketToBackend(draft))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	ticket, _ := DecodeTicket(outbound)

	if ticket.Title != draft.Title || ticket.Description != draft.Description {
		t.Errorf("title/description changed: %q / %q", ticket.Title, ticket.Description)
	}
	if ticket.Priority != draft.Priority {
		t.Errorf("Priority = %q, want %q", ticket.Priority, draft.Priority)
	}
	if ticket.Category != draft.Category {
		t.Errorf("Category = %q, want %q", ticket.Category, draft.Category)
	}
	if ticket.Status != draft.Status {
		t.Errorf("Status = %q, want %q", ticket.Status, draft.Status)
	}
	if ticket.Customer != draft.Customer || ticket.Email != draft.Email {
		t.Errorf("customer/email changed: %q / %q", ticket.Customer, ticket.Email)
	}
	if ticket.Phone == nil || *ticket.Phone != phone {
		t.Errorf("Phone = %v, want %q", ticket.Phone, phone)
	}
}

func TestTicketUpdateToBackendOnlyPresentFields(t *testing.T) {
	status := domain.TicketStatusClosed
	payload := TicketUpdateToBackend(TicketUpdate{Status: &status})
	if len(payload) != 1 {
		t.Fatalf("payload = %v, want exactly one field", payload)
	}
	if payload["estado"] != "Cerrado" {
		t.Errorf("estado = %v, want Cerrado", payload["estado"])
	}
}

func TestDecodeCommentDefaults(t *testing.T) {
	fixedNow(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	comment, fallbacks := DecodeComment([]byte(`{"id":4,"texto":"seguimiento"}`))
	if comment.Author != SentinelAuthor {
		t.Errorf("Author = %q, want %q", comment.Author, SentinelAuthor)
	}
	if comment.Content != "seguimiento" {
		t.Errorf("Content = %q", comment.Content)
	}
	if comment.Type != domain.CommentTypeAgent {
		t.Errorf("Type = %q, want agent", comment.Type)
	}
	if len(fallbacks) == 0 {
		t.Error("expected fallbacks for missing author and timestamp")
	}
}
