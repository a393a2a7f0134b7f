package notification

import (
	"context"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/notification"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/sse"
)

type NotificationServiceImpl struct {
	notification.NotificationRepository
	hub *sse.Hub
}

func NewNotificationService(notificationRepo notification.NotificationRepository, hub *sse.Hub) notification.NotificationService {
	return &NotificationServiceImpl{
		NotificationRepository: notificationRepo,
		hub:                    hub,
	}
}

// Notify implements notification.NotificationService. The notification
// is persisted first, then pushed to any live SSE subscribers of the
// recipient.
func (s *NotificationServiceImpl) Notify(ctx context.Context, n notification.Notification) error {
	created, err := s.NotificationRepository.Create(ctx, n)
	if err != nil {
		return err
	}

	s.hub.Publish(created.RecipientID, sse.Event{
		RecipientID: created.RecipientID,
		Event:       "notification",
		Data:        toNotificationResponse(created),
	})

	return nil
}

// List implements notification.NotificationService.
func (s *NotificationServiceImpl) List(ctx context.Context, recipientID string, filter *notification.NotificationFilter) (*notification.ListNotificationsResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	notifications, total, err := s.NotificationRepository.ListByRecipient(ctx, recipientID, *filter)
	if err != nil {
		return nil, err
	}

	unread, err := s.NotificationRepository.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	resp := &notification.ListNotificationsResponse{
		TotalCount:    total,
		UnreadCount:   unread,
		Page:          filter.Page,
		Limit:         filter.Limit,
		Notifications: make([]notification.NotificationResponse, 0, len(notifications)),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, toNotificationResponse(n))
	}

	return resp, nil
}

// UnreadCount implements notification.NotificationService.
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.NotificationRepository.CountUnread(ctx, recipientID)
}

// MarkRead implements notification.NotificationService. A recipient can
// only mark their own notifications.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, recipientID, id string) error {
	n, err := s.NotificationRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != recipientID {
		return notification.ErrNotRecipient
	}

	return s.NotificationRepository.MarkRead(ctx, id)
}

// MarkAllRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.NotificationRepository.MarkAllRead(ctx, recipientID)
}

func toNotificationResponse(n notification.Notification) notification.NotificationResponse {
	var readAt *string
	if n.ReadAt != nil {
		formatted := n.ReadAt.Format(time.RFC3339)
		readAt = &formatted
	}

	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Reference: n.Reference,
		IsRead:    n.IsRead,
		ReadAt:    readAt,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
