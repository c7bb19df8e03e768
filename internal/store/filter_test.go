package store

import (
	"testing"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

func strPtr(s string) *string { return &s }

func filterFixture() []domain.Ticket {
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Ticket{
		{
			ID: 1, Title: "Impresora sin tóner", Customer: "Ana Díaz",
			Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh,
			Category: domain.TicketCategoryTechnical, AssignedTo: strPtr("Carla Vega"),
			UpdatedAt: base,
		},
		{
			ID: 2, Title: "Factura duplicada", Customer: "Luis Mora",
			Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow,
			Category: domain.TicketCategoryBilling,
			UpdatedAt: base.Add(2 * time.Hour),
		},
		{
			ID: 3, Title: "Acceso revocado", Customer: "Ana Díaz",
			Status: domain.TicketStatusClosed, Priority: domain.TicketPriorityHigh,
			Category: domain.TicketCategoryAccount, AssignedTo: strPtr("Carla Vega"),
			UpdatedAt: base.Add(time.Hour),
		},
	}
}

func TestApplySortsNewestActivityFirst(t *testing.T) {
	got := FilterSet{}.Apply(filterFixture())
	if len(got) != 3 {
		t.Fatalf("got %d tickets, want 3", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Errorf("order = %d, %d, %d", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestApplyBreaksTiesByHighestID(t *testing.T) {
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{ID: 1, UpdatedAt: at},
		{ID: 5, UpdatedAt: at},
		{ID: 3, UpdatedAt: at},
	}
	got := FilterSet{}.Apply(tickets)
	if got[0].ID != 5 || got[1].ID != 3 || got[2].ID != 1 {
		t.Errorf("order = %d, %d, %d", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestFiltersCombineConjunctively(t *testing.T) {
	status := domain.TicketStatusOpen
	priority := domain.TicketPriorityHigh
	got := FilterSet{Status: &status, Priority: &priority}.Apply(filterFixture())
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("got %+v, want only ticket 1", got)
	}
}

func TestAssignedToFilterSkipsUnassigned(t *testing.T) {
	got := FilterSet{AssignedTo: strPtr("Carla Vega")}.Apply(filterFixture())
	if len(got) != 2 {
		t.Fatalf("got %d tickets, want 2", len(got))
	}
	for _, ticket := range got {
		if ticket.AssignedTo == nil || *ticket.AssignedTo != "Carla Vega" {
			t.Errorf("ticket %d has wrong assignee", ticket.ID)
		}
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	got := FilterSet{Search: "ana díaz"}.Apply(filterFixture())
	if len(got) != 2 {
		t.Errorf("customer search got %d tickets, want 2", len(got))
	}

	got = FilterSet{Search: "FACTURA"}.Apply(filterFixture())
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("title search got %+v", got)
	}

	got = FilterSet{Search: "no existe"}.Apply(filterFixture())
	if len(got) != 0 {
		t.Errorf("miss should return empty, got %d", len(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tickets := filterFixture()
	FilterSet{}.Apply(tickets)
	if tickets[0].ID != 1 || tickets[1].ID != 2 || tickets[2].ID != 3 {
		t.Error("input slice was reordered")
	}
}
