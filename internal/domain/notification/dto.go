package notification

import (
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
)

type NotificationResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Reference *Reference `json:"reference,omitempty"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *string    `json:"read_at,omitempty"`
	CreatedAt string     `json:"created_at"`
}

type NotificationFilter struct {
	UnreadOnly bool `json:"unread_only"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
}

func (f *NotificationFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListNotificationsResponse struct {
	TotalCount    int64                  `json:"total_count"`
	UnreadCount   int64                  `json:"unread_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Notifications []NotificationResponse `json:"notifications"`
}
