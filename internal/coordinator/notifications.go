package coordinator

import (
	"context"

	"skillswap-web/internal/schemas"
)

// MarkNotificationRead marks one notification of the signed-in member as read.
func (c *Coordinator) MarkNotificationRead(ctx context.Context, id schemas.ID) *schemas.AppError {
	const title = "Could not update notification"

	if !Capabilities(c.role()).Allows(CapReadNotifications) {
		return c.reject(ctx, schemas.CodePermissionDenied, title, schemas.MessageForbidden)
	}

	if _, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Patch(ctx, notificationPath(id.String()), schemas.NotificationReadBody{IsRead: true})
	}); appErr != nil {
		return appErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications[i].Read = true
		}
	}
	return nil
}

// MarkAllNotificationsRead marks every notification of the signed-in member as read.
func (c *Coordinator) MarkAllNotificationsRead(ctx context.Context) *schemas.AppError {
	const title = "Could not update notifications"

	if !Capabilities(c.role()).Allows(CapReadNotifications) {
		return c.reject(ctx, schemas.CodePermissionDenied, title, schemas.MessageForbidden)
	}

	if _, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Post(ctx, pathMarkAllRead, nil)
	}); appErr != nil {
		return appErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		c.notifications[i].Read = true
	}
	c.pushNotice("All caught up", "All notifications marked as read.", "")
	return nil
}

func unreadCount(notifications []schemas.Notification) int {
	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	return unread
}
