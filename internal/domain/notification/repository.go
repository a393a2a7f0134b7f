package notification

import "context"

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, filter NotificationFilter) ([]Notification, int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	GetByID(ctx context.Context, id string) (Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}

// NotificationService creates notifications and pushes them to live
// subscribers.
type NotificationService interface {
	Notify(ctx context.Context, n Notification) error
	List(ctx context.Context, recipientID string, filter *NotificationFilter) (*ListNotificationsResponse, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}
