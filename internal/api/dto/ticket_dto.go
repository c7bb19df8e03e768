package dto

import (
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    domain.TicketCategory `json:"category"`
	Customer    string                `json:"customer"`
	Email       string                `json:"email"`
	Phone       *string               `json:"phone"`
	TecnicoID   int64                 `json:"tecnicoId"`
}

// UpdateTicketRequest carries a partial update; absent fields stay untouched.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
	Category    *domain.TicketCategory `json:"category"`
	Status      *domain.TicketStatus   `json:"status"`
	Customer    *string                `json:"customer"`
	Email       *string                `json:"email"`
	Phone       *string                `json:"phone"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TecnicoID int64 `json:"tecnicoId"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string             `json:"content"`
	Type    domain.CommentType `json:"type"`
}

// CommentResponse represents one thread entry.
type CommentResponse struct {
	ID        int64              `json:"id"`
	Author    string             `json:"author"`
	Content   string             `json:"content"`
	Timestamp time.Time          `json:"timestamp"`
	Type      domain.CommentType `json:"type"`
}

// TicketResponse is the full canonical ticket.
type TicketResponse struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    domain.TicketCategory `json:"category"`
	Status      domain.TicketStatus   `json:"status"`
	Customer    string                `json:"customer"`
	Email       string                `json:"email"`
	Phone       *string               `json:"phone"`
	AssignedTo  *string               `json:"assignedTo"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
	ClosedAt    *time.Time            `json:"closedAt"`
	Comments    []CommentResponse     `json:"comments"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t domain.Ticket) TicketResponse {
	comments := make([]CommentResponse, 0, len(t.Comments))
	for _, c := range t.Comments {
		comments = append(comments, NewCommentResponse(c))
	}
	return TicketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Category:    t.Category,
		Status:      t.Status,
		Customer:    t.Customer,
		Email:       t.Email,
		Phone:       t.Phone,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		ClosedAt:    t.ClosedAt,
		Comments:    comments,
	}
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Author:    c.Author,
		Content:   c.Content,
		Timestamp: c.Timestamp,
		Type:      c.Type,
	}
}

// NewTicketListResponse maps a ticket slice.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(tickets[i]))
	}
	return items
}
