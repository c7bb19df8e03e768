package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityLow    TicketPriority = "low"
)

// TicketCategory classifies the kind of customer problem.
type TicketCategory string

const (
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryAccount   TicketCategory = "account"
	TicketCategoryOrder     TicketCategory = "order"
	TicketCategoryBilling   TicketCategory = "billing"
	TicketCategoryOther     TicketCategory = "other"
)

// CommentType indicates who authored a comment.
type CommentType string

const (
	CommentTypeSystem   CommentType = "system"
	CommentTypeAgent    CommentType = "agent"
	CommentTypeCustomer CommentType = "customer"
)

// Comment is a single thread entry owned by its parent ticket.
// Insertion order is chronological.
type Comment struct {
	ID        int64
	Author    string
	Content   string
	Timestamp time.Time
	Type      CommentType
}

// Ticket is the canonical support case the desk operates on, independent of
// upstream payload shape.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Priority    TicketPriority
	Category    TicketCategory
	Status      TicketStatus
	Customer    string
	Email       string
	Phone       *string
	AssignedTo  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
	Comments    []Comment
}

// IsClosed reports whether the ticket reached its terminal state.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}

// ResolutionTime returns the open-to-close duration for closed tickets and
// zero otherwise.
func (t *Ticket) ResolutionTime() time.Duration {
	if !t.IsClosed() {
		return 0
	}
	end := t.UpdatedAt
	if t.ClosedAt != nil {
		end = *t.ClosedAt
	}
	if end.Before(t.CreatedAt) {
		return 0
	}
	return end.Sub(t.CreatedAt)
}
