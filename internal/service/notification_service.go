package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/soportek/helpdesk-service/internal/config"
	"github.com/soportek/helpdesk-service/internal/events"
	"github.com/soportek/helpdesk-service/internal/persistence"
	"github.com/soportek/helpdesk-service/internal/repository"
)

// Notification is one entry in a user's feed.
type Notification struct {
	EventID   string           `json:"event_id"`
	Type      events.EventType `json:"type"`
	TicketID  string           `json:"ticket_id"`
	ActorID   string           `json:"actor_id"`
	Timestamp time.Time        `json:"timestamp"`
}

// NotificationService fans ticket lifecycle events out to the requester and
// assignee of the affected ticket, persisting a capped per-user feed in Redis.
type NotificationService struct {
	dispatcher events.Dispatcher
	tickets    repository.TicketRepository
	redis      *persistence.Redis
	logger     *zap.Logger
	maxEntries int64
}

// NewNotificationService creates the service.
func NewNotificationService(
	dispatcher events.Dispatcher,
	tickets repository.TicketRepository,
	redis *persistence.Redis,
	logger *zap.Logger,
	cfg config.NotificationConfig,
) *NotificationService {
	maxEntries := cfg.FeedMaxEntries
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &NotificationService{
		dispatcher: dispatcher,
		tickets:    tickets,
		redis:      redis,
		logger:     logger,
		maxEntries: maxEntries,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventCommentAdded, n.handleEvent)
	n.dispatcher.Subscribe(events.EventAttachmentAdded, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("ticket event",
		zap.String("type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor_id", event.ActorID))

	for _, userID := range n.recipients(ctx, event) {
		n.push(ctx, userID, event)
	}
	return nil
}

// recipients are the ticket's requester and assignee, minus the actor who
// triggered the event.
func (n *NotificationService) recipients(ctx context.Context, event events.Event) []string {
	ticket, err := n.tickets.GetByID(ctx, event.TicketID)
	if err != nil {
		return nil
	}
	var out []string
	if ticket.RequesterID != event.ActorID {
		out = append(out, ticket.RequesterID)
	}
	if ticket.AssigneeID != nil && *ticket.AssigneeID != event.ActorID && *ticket.AssigneeID != ticket.RequesterID {
		out = append(out, *ticket.AssigneeID)
	}
	return out
}

func (n *NotificationService) push(ctx context.Context, userID string, event events.Event) {
	if n.redis == nil || n.redis.Client == nil {
		return
	}
	entry := Notification{
		EventID:   event.ID,
		Type:      event.Type,
		TicketID:  event.TicketID,
		ActorID:   event.ActorID,
		Timestamp: event.Timestamp,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}

	key := "notifications:" + userID
	pipe := n.redis.Client.Pipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, n.maxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		n.logger.Warn("failed to push notification", zap.String("user_id", userID), zap.Error(err))
	}
}

// Feed returns the most recent notifications for a user, newest first.
func (n *NotificationService) Feed(ctx context.Context, userID string, limit int64) ([]Notification, error) {
	if n.redis == nil || n.redis.Client == nil {
		return nil, persistence.ErrNotConfigured
	}
	if limit <= 0 || limit > n.maxEntries {
		limit = n.maxEntries
	}

	raw, err := n.redis.Client.LRange(ctx, "notifications:"+userID, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var entry Notification
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}
