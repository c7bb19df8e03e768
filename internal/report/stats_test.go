package report

import (
	"testing"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

func mkTicket(id int64, status domain.TicketStatus, priority domain.TicketPriority, category domain.TicketCategory) domain.Ticket {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	t := domain.Ticket{
		ID:        id,
		Status:    status,
		Priority:  priority,
		Category:  category,
		CreatedAt: created,
		UpdatedAt: created,
	}
	if status == domain.TicketStatusClosed {
		closed := created.Add(5 * time.Hour)
		t.ClosedAt = &closed
		t.UpdatedAt = closed
	}
	return t
}

func TestCountsPartitionTheCollection(t *testing.T) {
	tickets := []domain.Ticket{
		mkTicket(1, domain.TicketStatusOpen, domain.TicketPriorityHigh, domain.TicketCategoryTechnical),
		mkTicket(2, domain.TicketStatusOpen, domain.TicketPriorityMedium, domain.TicketCategoryBilling),
		mkTicket(3, domain.TicketStatusInProgress, domain.TicketPriorityMedium, domain.TicketCategoryOther),
		mkTicket(4, domain.TicketStatusClosed, domain.TicketPriorityLow, domain.TicketCategoryTechnical),
	}

	byStatus := CountByStatus(tickets)
	var statusTotal int
	for _, n := range byStatus {
		statusTotal += n
	}
	if statusTotal != len(tickets) {
		t.Errorf("status counts sum to %d, want %d", statusTotal, len(tickets))
	}
	if byStatus[domain.TicketStatusOpen] != 2 {
		t.Errorf("open = %d, want 2", byStatus[domain.TicketStatusOpen])
	}

	byPriority := CountByPriority(tickets)
	if byPriority[domain.TicketPriorityMedium] != 2 {
		t.Errorf("medium = %d, want 2", byPriority[domain.TicketPriorityMedium])
	}

	byCategory := CountByCategory(tickets)
	if byCategory[domain.TicketCategoryTechnical] != 2 {
		t.Errorf("technical = %d, want 2", byCategory[domain.TicketCategoryTechnical])
	}
}

func TestAverageResolutionHours(t *testing.T) {
	if avg := AverageResolutionHours(nil); avg != 0 {
		t.Errorf("empty avg = %v, want 0", avg)
	}

	open := []domain.Ticket{mkTicket(1, domain.TicketStatusOpen, domain.TicketPriorityHigh, domain.TicketCategoryOther)}
	if avg := AverageResolutionHours(open); avg != 0 {
		t.Errorf("no closed tickets: avg = %v, want 0", avg)
	}

	tickets := append(open, mkTicket(2, domain.TicketStatusClosed, domain.TicketPriorityLow, domain.TicketCategoryOther))
	if avg := AverageResolutionHours(tickets); avg != 5 {
		t.Errorf("avg = %v, want 5", avg)
	}
}

func TestComputeLicitacionStats(t *testing.T) {
	if stats := ComputeLicitacionStats(nil); stats.AverageMonto != 0 || stats.WinRatePercent != 0 {
		t.Errorf("empty stats = %+v, want zeroes", stats)
	}

	licitaciones := []domain.Licitacion{
		{ID: 1, Monto: 100, Estado: domain.LicitacionAdjudicada},
		{ID: 2, Monto: 300, Estado: domain.LicitacionCancelada},
		{ID: 3, Monto: 200, Estado: domain.LicitacionPublicada},
	}
	stats := ComputeLicitacionStats(licitaciones)
	if stats.TotalMonto != 600 {
		t.Errorf("TotalMonto = %v, want 600", stats.TotalMonto)
	}
	if stats.AverageMonto != 200 {
		t.Errorf("AverageMonto = %v, want 200", stats.AverageMonto)
	}
	// Undecided bids count in the denominator: one won out of three total.
	if want := float64(1) / 3 * 100; stats.WinRatePercent != want {
		t.Errorf("WinRatePercent = %v, want %v", stats.WinRatePercent, want)
	}
}

func TestWinRateAllDecided(t *testing.T) {
	licitaciones := []domain.Licitacion{
		{ID: 1, Estado: domain.LicitacionAdjudicada},
		{ID: 2, Estado: domain.LicitacionCancelada},
	}
	if stats := ComputeLicitacionStats(licitaciones); stats.WinRatePercent != 50 {
		t.Errorf("WinRatePercent = %v, want 50", stats.WinRatePercent)
	}
}

func TestSnapshot(t *testing.T) {
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		mkTicket(1, domain.TicketStatusOpen, domain.TicketPriorityHigh, domain.TicketCategoryOther),
		mkTicket(2, domain.TicketStatusInProgress, domain.TicketPriorityMedium, domain.TicketCategoryOther),
		mkTicket(3, domain.TicketStatusClosed, domain.TicketPriorityLow, domain.TicketCategoryOther),
	}

	snapshot := Snapshot(tickets, at)
	if snapshot.TicketsAbiertos != 2 {
		t.Errorf("TicketsAbiertos = %d, want 2 (open plus in-progress)", snapshot.TicketsAbiertos)
	}
	if snapshot.TicketsCerrados != 1 {
		t.Errorf("TicketsCerrados = %d, want 1", snapshot.TicketsCerrados)
	}
	if snapshot.TiempoProResolucion != 5 {
		t.Errorf("TiempoProResolucion = %v, want 5", snapshot.TiempoProResolucion)
	}
	if !snapshot.Fecha.Equal(at) {
		t.Errorf("Fecha = %v", snapshot.Fecha)
	}
}
