package ws

import (
	"encoding/json"
	"time"

	"recruitment-portal/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationEvent struct {
	Type        string    `json:"type"`
	ID          uuid.UUID `json:"id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   string    `json:"created_at"`
}

func EncodeNotification(n notification.Notification) ([]byte, error) {
	evt := NotificationEvent{
		Type:        "notification",
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Message:     n.Message,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.UTC().Format(time.RFC3339),
	}
	return json.Marshal(evt)
}

func DecodeNotification(b []byte) (NotificationEvent, error) {
	var evt NotificationEvent
	err := json.Unmarshal(b, &evt)
	return evt, err
}
