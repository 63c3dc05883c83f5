// ABOUTME: Activity log and notifications facades, consumed read-only
// ABOUTME: Both feed the admin console's feed panels

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ActivityEntry is one row of the gateway's activity log.
type ActivityEntry struct {
	ID         int64      `json:"id,omitempty"`
	UserID     int64      `json:"userId,omitempty"`
	UserName   string     `json:"userName,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entityType,omitempty"`
	EntityID   int64      `json:"entityId,omitempty"`
	Details    string     `json:"details,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// Notification is one entry of the current user's notification feed.
type Notification struct {
	ID        int64      `json:"id,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message,omitempty"`
	Severity  string     `json:"severity,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ActivityService reads the activity log.
type ActivityService struct {
	c *Client
}

// List fetches the activity log, newest first.
func (s *ActivityService) List(ctx context.Context) ([]ActivityEntry, error) {
	var out []ActivityEntry
	if err := s.c.call(ctx, http.MethodGet, "/api/activities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NotificationsService reads and acknowledges notifications.
type NotificationsService struct {
	c *Client
}

// List fetches the current user's notifications.
func (s *NotificationsService) List(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := s.c.call(ctx, http.MethodGet, "/api/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead acknowledges a notification.
func (s *NotificationsService) MarkRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/notifications/%d/read", id)
	return s.c.call(ctx, http.MethodPut, path, nil, nil)
}
