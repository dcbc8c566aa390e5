package schemas

import "encoding/json"

// Notification is the canonical shape of a notification. The client only reads
// notifications and marks them as read.
type Notification struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Time      string `json:"time"`
	Read      bool   `json:"read"`
	Type      string `json:"type"`
	RequestID ID     `json:"requestId,omitempty"`
}

// NotificationPayload reads a notification in either dialect.
type NotificationPayload struct {
	ID      ID     `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`

	Time      string `json:"time"`
	Read      *bool  `json:"read"`
	Type      string `json:"type"`
	RequestID ID     `json:"requestId"`

	CreatedAt        string `json:"created_at"`
	IsRead           *bool  `json:"is_read"`
	NotificationType string `json:"notification_type"`
	RelatedObjectID  ID     `json:"related_object_id"`
}

// AdminDashboard is the opaque aggregate served by the admin dashboard endpoint.
type AdminDashboard = json.RawMessage

// AdminCache is the persisted snapshot of admin collections.
type AdminCache struct {
	Users         []User         `json:"users"`
	Swaps         []SwapRequest  `json:"swaps"`
	Notifications []Notification `json:"notifications"`
	Dashboard     AdminDashboard `json:"dashboard"`
	Timestamp     int64          `json:"timestamp"`
}
