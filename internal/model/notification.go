package model

import "time"

// Notification is written as a side effect of a comment or like on someone
// else's project. It is never created directly by a user action and never
// deleted; readers poll it on page load.
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"` // Recipient
	Message   string    `db:"message" json:"message"`
	ProjectID *int64    `db:"project_id" json:"project_id,omitempty"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NotificationList is the poll response with the unread badge count.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
