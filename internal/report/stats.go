// Package report aggregates the canonical collections into dashboard stats,
// metric snapshots and exportable documents.
package report

import (
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// TicketStats is the aggregate view the dashboard renders.
type TicketStats struct {
	Total                  int                           `json:"total"`
	ByStatus               map[domain.TicketStatus]int   `json:"byStatus"`
	ByPriority             map[domain.TicketPriority]int `json:"byPriority"`
	ByCategory             map[domain.TicketCategory]int `json:"byCategory"`
	AverageResolutionHours float64                       `json:"averageResolutionHours"`
}

// LicitacionStats is the aggregate view over bids.
type LicitacionStats struct {
	Total          int                             `json:"total"`
	ByEstado       map[domain.LicitacionStatus]int `json:"byEstado"`
	TotalMonto     float64                         `json:"totalMonto"`
	AverageMonto   float64                         `json:"averageMonto"`
	WinRatePercent float64                         `json:"winRatePercent"`
}

// CountByStatus partitions tickets into status buckets. Every ticket lands in
// exactly one bucket, so the counts sum to len(tickets).
func CountByStatus(tickets []domain.Ticket) map[domain.TicketStatus]int {
	counts := make(map[domain.TicketStatus]int)
	for _, t := range tickets {
		counts[t.Status]++
	}
	return counts
}

// CountByPriority partitions tickets into priority buckets.
func CountByPriority(tickets []domain.Ticket) map[domain.TicketPriority]int {
	counts := make(map[domain.TicketPriority]int)
	for _, t := range tickets {
		counts[t.Priority]++
	}
	return counts
}

// CountByCategory partitions tickets into category buckets.
func CountByCategory(tickets []domain.Ticket) map[domain.TicketCategory]int {
	counts := make(map[domain.TicketCategory]int)
	for _, t := range tickets {
		counts[t.Category]++
	}
	return counts
}

// AverageResolutionHours returns the mean open-to-close time across closed
// tickets, in hours. Zero when no ticket has closed yet.
func AverageResolutionHours(tickets []domain.Ticket) float64 {
	var total time.Duration
	var closed int
	for i := range tickets {
		if !tickets[i].IsClosed() {
			continue
		}
		total += tickets[i].ResolutionTime()
		closed++
	}
	if closed == 0 {
		return 0
	}
	return total.Hours() / float64(closed)
}

// ComputeTicketStats builds the full ticket aggregate.
func ComputeTicketStats(tickets []domain.Ticket) TicketStats {
	return TicketStats{
		Total:                  len(tickets),
		ByStatus:               CountByStatus(tickets),
		ByPriority:             CountByPriority(tickets),
		ByCategory:             CountByCategory(tickets),
		AverageResolutionHours: AverageResolutionHours(tickets),
	}
}

// ComputeLicitacionStats builds the bid aggregate. The win rate is the share
// of all bids that were won, undecided ones included; zero when there are no
// bids at all.
func ComputeLicitacionStats(licitaciones []domain.Licitacion) LicitacionStats {
	stats := LicitacionStats{
		ByEstado: make(map[domain.LicitacionStatus]int),
	}
	var won int
	for i := range licitaciones {
		l := &licitaciones[i]
		stats.Total++
		stats.ByEstado[l.Estado]++
		stats.TotalMonto += l.Monto
		if l.Estado == domain.LicitacionAdjudicada {
			won++
		}
	}
	if stats.Total > 0 {
		stats.AverageMonto = stats.TotalMonto / float64(stats.Total)
		stats.WinRatePercent = float64(won) / float64(stats.Total) * 100
	}
	return stats
}

// Snapshot condenses the current ticket collection into an immutable Reporte.
// The ID is assigned upstream on create.
func Snapshot(tickets []domain.Ticket, at time.Time) domain.Reporte {
	counts := CountByStatus(tickets)
	return domain.Reporte{
		Fecha:               at,
		TicketsAbiertos:     counts[domain.TicketStatusOpen] + counts[domain.TicketStatusInProgress],
		TicketsCerrados:     counts[domain.TicketStatusClosed],
		TiempoProResolucion: AverageResolutionHours(tickets),
	}
}
