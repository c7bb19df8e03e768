package store

import (
	"sort"
	"strings"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// FilterSet narrows the ticket list. Nil fields do not constrain; set fields
// combine conjunctively. Search matches title, customer and description,
// case-insensitively.
type FilterSet struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	Category   *domain.TicketCategory
	AssignedTo *string
	Search     string
}

// Apply filters and orders a ticket slice without mutating it. Results are
// newest-activity first.
func (f FilterSet) Apply(tickets []domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f FilterSet) matches(t domain.Ticket) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.AssignedTo != nil {
		if t.AssignedTo == nil || *t.AssignedTo != *f.AssignedTo {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Customer), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

// FilteredTickets applies the filter set to the current snapshot.
func (s *Store) FilteredTickets(f FilterSet) []domain.Ticket {
	return f.Apply(s.Tickets())
}

// LicitacionesByEstado returns the cached bids in one lifecycle bucket,
// newest first.
func (s *Store) LicitacionesByEstado(estado domain.LicitacionStatus) []domain.Licitacion {
	all := s.Licitaciones()
	out := make([]domain.Licitacion, 0, len(all))
	for _, l := range all {
		if l.Estado == estado {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].FechaCreacion.Equal(out[j].FechaCreacion) {
			return out[i].FechaCreacion.After(out[j].FechaCreacion)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
