package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/notification"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

const notificationColumns = `
	id, recipient_id, sender_id, type, title, message,
	reference_kind, reference_id, is_read, read_at, created_at`

// The reference lives in two nullable columns; both are set or both are
// NULL.
func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	var refKind, refID *string

	err := row.Scan(
		&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message,
		&refKind, &refID, &n.IsRead, &n.ReadAt, &n.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, err
	}

	if refKind != nil && refID != nil {
		n.Reference = &notification.Reference{
			Kind: notification.ReferenceKind(*refKind),
			ID:   *refID,
		}
	}

	return n, nil
}

// Create implements notification.NotificationRepository.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	var refKind, refID *string
	if n.Reference != nil {
		kind := string(n.Reference.Kind)
		refKind = &kind
		refID = &n.Reference.ID
	}

	query := `
		INSERT INTO notifications (
			id, recipient_id, sender_id, type, title, message,
			reference_kind, reference_id, is_read
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, FALSE
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message,
		refKind, refID,
	).Scan(&n.CreatedAt)

	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// ListByRecipient implements notification.NotificationRepository.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, filter notification.NotificationFilter) ([]notification.Notification, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "recipient_id = $1"
	args := []interface{}{recipientID}
	argIdx := 2

	if filter.UnreadOnly {
		baseWhere += " AND is_read = FALSE"
	}

	countQuery := "SELECT COUNT(*) FROM notifications WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	selectQuery := fmt.Sprintf(`SELECT`+notificationColumns+`
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, total, nil
}

// CountUnread implements notification.NotificationRepository.
func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// GetByID implements notification.NotificationRepository.
func (r *notificationRepository) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + notificationColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// MarkRead implements notification.NotificationRepository.
func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE id = $2 AND is_read = FALSE`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		// Either missing or already read; only the former is an error.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// MarkAllRead implements notification.NotificationRepository.
func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE recipient_id = $2 AND is_read = FALSE`,
		time.Now(), recipientID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}
