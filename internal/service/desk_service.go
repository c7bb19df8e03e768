package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
	"github.com/ricardo-aragon/ticashop-desk/internal/events"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// DeskService coordinates ticket and bid workflows. Every mutation goes
// through the upstream API first and is spliced into the session's view
// state only after the upstream confirms it.
type DeskService struct {
	sessions   *SessionManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDeskService constructs the service.
func NewDeskService(sessions *SessionManager, dispatcher events.Dispatcher, logger *zap.Logger) *DeskService {
	return &DeskService{sessions: sessions, dispatcher: dispatcher, logger: logger}
}

// mapError translates upstream failures. A rejected bearer token revokes the
// desk session so the operator is sent back to login.
func (s *DeskService) mapError(ctx context.Context, sess *Session, err error) error {
	if errors.Is(err, upstream.ErrUnauthorized) {
		s.sessions.Invalidate(ctx, sess.Auth.ID)
		return apperrors.NewUnauthorized("upstream session expired")
	}
	return apperrors.NewUpstreamError(err)
}

// MapUpstreamError translates an upstream failure for callers that read from
// the upstream directly, with the same 401 handling as the write paths.
func (s *DeskService) MapUpstreamError(ctx context.Context, sess *Session, err error) error {
	return s.mapError(ctx, sess, err)
}

// Reload refetches the session's collections.
func (s *DeskService) Reload(ctx context.Context, sess *Session) error {
	if err := sess.Store.Load(ctx); err != nil {
		return s.mapError(ctx, sess, err)
	}
	return nil
}

// CreateTicket opens a new case.
func (s *DeskService) CreateTicket(ctx context.Context, sess *Session, draft adapter.TicketDraft) (domain.Ticket, error) {
	ticket, err := sess.Client.CreateTicket(ctx, draft)
	if err != nil {
		return domain.Ticket{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertTicket(ticket)
	s.publish(ctx, sess, events.EventTicketCreated, ticket.ID, events.TicketCreatedPayload{
		Title:    ticket.Title,
		Priority: ticket.Priority,
		Customer: ticket.Customer,
	})
	return ticket, nil
}

// UpdateTicket applies a partial update.
func (s *DeskService) UpdateTicket(ctx context.Context, sess *Session, id int64, update adapter.TicketUpdate) (domain.Ticket, error) {
	previous, known := sess.Store.Ticket(id)

	ticket, err := sess.Client.UpdateTicket(ctx, id, update)
	if err != nil {
		return domain.Ticket{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertTicket(ticket)

	if known {
		if previous.Status != ticket.Status {
			s.publish(ctx, sess, events.EventTicketStatusChanged, ticket.ID, events.TicketStatusChangedPayload{
				OldStatus: previous.Status,
				NewStatus: ticket.Status,
			})
			s.postStatusComment(ctx, sess, ticket.ID, previous.Status, ticket.Status)
		}
		if previous.Priority != ticket.Priority {
			s.publish(ctx, sess, events.EventTicketPriorityChanged, ticket.ID, events.TicketPriorityChangedPayload{
				OldPriority: previous.Priority,
				NewPriority: ticket.Priority,
			})
		}
	}
	return ticket, nil
}

// DeleteTicket removes a case.
func (s *DeskService) DeleteTicket(ctx context.Context, sess *Session, id int64) error {
	if err := sess.Client.DeleteTicket(ctx, id); err != nil {
		return s.mapError(ctx, sess, err)
	}
	sess.Store.RemoveTicket(id)
	return nil
}

// CloseTicket moves a case into its terminal state.
func (s *DeskService) CloseTicket(ctx context.Context, sess *Session, id int64) (domain.Ticket, error) {
	previous, known := sess.Store.Ticket(id)

	ticket, err := sess.Client.CloseTicket(ctx, id, time.Now())
	if err != nil {
		return domain.Ticket{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertTicket(ticket)

	oldStatus := domain.TicketStatusOpen
	if known {
		oldStatus = previous.Status
	}
	if oldStatus != ticket.Status {
		s.publish(ctx, sess, events.EventTicketStatusChanged, ticket.ID, events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		})
		s.postStatusComment(ctx, sess, ticket.ID, oldStatus, ticket.Status)
	}
	return ticket, nil
}

// AssignTicket hands a case to a technician.
func (s *DeskService) AssignTicket(ctx context.Context, sess *Session, id, tecnicoID int64) (domain.Ticket, error) {
	ticket, err := sess.Client.AssignTecnico(ctx, id, tecnicoID)
	if err != nil {
		return domain.Ticket{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertTicket(ticket)

	payload := events.TicketAssignedPayload{TecnicoID: tecnicoID}
	if ticket.AssignedTo != nil {
		payload.TecnicoName = *ticket.AssignedTo
	}
	s.publish(ctx, sess, events.EventTicketAssigned, ticket.ID, payload)
	return ticket, nil
}

// EscalateTicket bumps a case's priority one level.
func (s *DeskService) EscalateTicket(ctx context.Context, sess *Session, id int64) (domain.Ticket, error) {
	previous, known := sess.Store.Ticket(id)

	ticket, err := sess.Client.EscalatePriority(ctx, id)
	if err != nil {
		return domain.Ticket{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertTicket(ticket)

	if known && previous.Priority != ticket.Priority {
		s.publish(ctx, sess, events.EventTicketPriorityChanged, ticket.ID, events.TicketPriorityChangedPayload{
			OldPriority: previous.Priority,
			NewPriority: ticket.Priority,
		})
	}
	return ticket, nil
}

// AddComment appends an operator comment to a case's thread.
func (s *DeskService) AddComment(ctx context.Context, sess *Session, ticketID int64, content string, commentType domain.CommentType) (domain.Comment, error) {
	if commentType == "" {
		commentType = domain.CommentTypeAgent
	}
	comment, err := sess.Client.CreateComentario(ctx, ticketID, sess.Auth.User.ID, content, commentType)
	if err != nil {
		return domain.Comment{}, s.mapError(ctx, sess, err)
	}
	sess.Store.SpliceComment(ticketID, comment)

	s.publish(ctx, sess, events.EventTicketCommentAdded, ticketID, events.TicketCommentAddedPayload{
		CommentID:   comment.ID,
		CommentType: comment.Type,
		Preview:     preview(comment.Content),
	})
	return comment, nil
}

// CreateLicitacion records a new bid.
func (s *DeskService) CreateLicitacion(ctx context.Context, sess *Session, draft adapter.LicitacionDraft) (domain.Licitacion, error) {
	if draft.UsuarioID == 0 {
		draft.UsuarioID = sess.Auth.User.ID
	}
	licitacion, err := sess.Client.CreateLicitacion(ctx, draft)
	if err != nil {
		return domain.Licitacion{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertLicitacion(licitacion)
	return licitacion, nil
}

// UpdateLicitacion applies a partial bid update.
func (s *DeskService) UpdateLicitacion(ctx context.Context, sess *Session, id int64, update adapter.LicitacionUpdate) (domain.Licitacion, error) {
	licitacion, err := sess.Client.UpdateLicitacion(ctx, id, update)
	if err != nil {
		return domain.Licitacion{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertLicitacion(licitacion)
	return licitacion, nil
}

// DeleteLicitacion removes a bid.
func (s *DeskService) DeleteLicitacion(ctx context.Context, sess *Session, id int64) error {
	if err := sess.Client.DeleteLicitacion(ctx, id); err != nil {
		return s.mapError(ctx, sess, err)
	}
	sess.Store.RemoveLicitacion(id)
	return nil
}

// CreateUser provisions a new operator account.
func (s *DeskService) CreateUser(ctx context.Context, sess *Session, draft adapter.UserDraft) (domain.User, error) {
	user, err := sess.Client.CreateUsuario(ctx, draft)
	if err != nil {
		return domain.User{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertUser(user)
	return user, nil
}

// UpdateUser applies a partial account update.
func (s *DeskService) UpdateUser(ctx context.Context, sess *Session, id int64, update adapter.UserUpdate) (domain.User, error) {
	user, err := sess.Client.UpdateUsuario(ctx, id, update)
	if err != nil {
		return domain.User{}, s.mapError(ctx, sess, err)
	}
	sess.Store.UpsertUser(user)
	return user, nil
}

// DeleteUser removes an operator account. Operators may not delete
// themselves, that would orphan the session mid-request.
func (s *DeskService) DeleteUser(ctx context.Context, sess *Session, id int64) error {
	if id == sess.Auth.User.ID {
		return apperrors.NewValidationError("cannot delete own account", nil)
	}
	if err := sess.Client.DeleteUsuario(ctx, id); err != nil {
		return s.mapError(ctx, sess, err)
	}
	sess.Store.RemoveUser(id)
	return nil
}

// postStatusComment leaves an audit trail entry in the ticket's own thread.
// Failures are logged, never surfaced: the status change already committed.
func (s *DeskService) postStatusComment(ctx context.Context, sess *Session, ticketID int64, from, to domain.TicketStatus) {
	text := fmt.Sprintf("Estado cambiado de %s a %s", from, to)
	comment, err := sess.Client.CreateComentario(ctx, ticketID, sess.Auth.User.ID, text, domain.CommentTypeSystem)
	if err != nil {
		s.logger.Warn("failed to record status comment",
			zap.Int64("ticket_id", ticketID),
			zap.Error(err),
		)
		return
	}
	sess.Store.SpliceComment(ticketID, comment)
}

func (s *DeskService) publish(ctx context.Context, sess *Session, eventType events.EventType, ticketID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		TicketID: ticketID,
		Actor: events.Actor{
			UserID:   sess.Auth.User.ID,
			Username: sess.Auth.User.Username,
			Role:     sess.Auth.User.Role,
		},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= 80 {
		return content
	}
	return string(runes[:80])
}
