package utils

import (
	"encoding/json"
	"fmt"

	"skillswap-web/internal/schemas"
)

// NormalizeNotification converts a notification payload of either dialect into the canonical shape.
func NormalizeNotification(p schemas.NotificationPayload) schemas.Notification {
	requestID := p.RequestID
	if requestID == "" {
		requestID = p.RelatedObjectID
	}

	return schemas.Notification{
		ID:        p.ID,
		Title:     p.Title,
		Message:   p.Message,
		Time:      firstNonBlank(p.Time, p.CreatedAt),
		Read:      firstBool(false, p.Read, p.IsRead),
		Type:      firstNonBlank(p.Type, p.NotificationType),
		RequestID: requestID,
	}
}

// NormalizeNotifications decodes a notification list response and normalizes every entry.
func NormalizeNotifications(data []byte) ([]schemas.Notification, error) {
	items, err := DecodeList(data)
	if err != nil {
		return nil, err
	}

	notifications := make([]schemas.Notification, 0, len(items))
	for _, item := range items {
		var payload schemas.NotificationPayload
		if err := json.Unmarshal(item, &payload); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		notifications = append(notifications, NormalizeNotification(payload))
	}
	return notifications, nil
}
