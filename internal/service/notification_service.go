package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ricardo-aragon/ticashop-desk/internal/events"
	"github.com/ricardo-aragon/ticashop-desk/internal/persistence"
)

const (
	notificationKeyPrefix = "desk:notifications:"
	notificationKeep      = 100
	notificationTTL       = 7 * 24 * time.Hour
)

// Notification is one inbox entry for an operator.
type Notification struct {
	ID        string           `json:"id"`
	Type      events.EventType `json:"type"`
	TicketID  int64            `json:"ticketId"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NotificationService fans domain events out into per-operator Redis inboxes.
// Each inbox keeps the newest entries only.
type NotificationService struct {
	dispatcher events.Dispatcher
	redis      *persistence.Redis
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, redis *persistence.Redis, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, redis: redis, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketPriorityChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketCommentAdded, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("desk event",
		zap.String("type", string(event.Type)),
		zap.Int64("ticket_id", event.TicketID),
		zap.Int64("actor_id", event.Actor.UserID),
	)

	notification := Notification{
		ID:        event.ID,
		Type:      event.Type,
		TicketID:  event.TicketID,
		Message:   describe(event),
		CreatedAt: event.Timestamp,
	}
	return n.push(ctx, event.Actor.UserID, notification)
}

// ListForUser returns the operator's inbox, newest first.
func (n *NotificationService) ListForUser(ctx context.Context, userID int64) ([]Notification, error) {
	key := fmt.Sprintf("%s%d", notificationKeyPrefix, userID)
	raw, err := n.redis.Client.LRange(ctx, key, 0, notificationKeep-1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}

	notifications := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var notification Notification
		if err := json.Unmarshal([]byte(item), &notification); err != nil {
			continue
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

// ClearForUser empties the operator's inbox.
func (n *NotificationService) ClearForUser(ctx context.Context, userID int64) error {
	key := fmt.Sprintf("%s%d", notificationKeyPrefix, userID)
	return n.redis.Client.Del(ctx, key).Err()
}

func (n *NotificationService) push(ctx context.Context, userID int64, notification Notification) error {
	raw, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%d", notificationKeyPrefix, userID)

	pipe := n.redis.Client.Pipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, notificationKeep-1)
	pipe.Expire(ctx, key, notificationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		n.logger.Warn("failed to store notification", zap.Error(err))
		return err
	}
	return nil
}

func describe(event events.Event) string {
	switch payload := event.Payload.(type) {
	case events.TicketCreatedPayload:
		return fmt.Sprintf("Ticket #%d creado: %s", event.TicketID, payload.Title)
	case events.TicketStatusChangedPayload:
		return fmt.Sprintf("Ticket #%d: estado %s a %s", event.TicketID, payload.OldStatus, payload.NewStatus)
	case events.TicketPriorityChangedPayload:
		return fmt.Sprintf("Ticket #%d: prioridad %s a %s", event.TicketID, payload.OldPriority, payload.NewPriority)
	case events.TicketAssignedPayload:
		if payload.TecnicoName != "" {
			return fmt.Sprintf("Ticket #%d asignado a %s", event.TicketID, payload.TecnicoName)
		}
		return fmt.Sprintf("Ticket #%d asignado", event.TicketID)
	case events.TicketCommentAddedPayload:
		return fmt.Sprintf("Ticket #%d: nuevo comentario", event.TicketID)
	default:
		return fmt.Sprintf("Ticket #%d: %s", event.TicketID, event.Type)
	}
}
