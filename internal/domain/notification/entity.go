package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}

// Request asks for one notification to be stored and delivered.
type Request struct {
	RecipientID uuid.UUID
	Message     string
}

func StatusChanged(recipient uuid.UUID, jobTitle, status string) Request {
	return Request{
		RecipientID: recipient,
		Message:     fmt.Sprintf("The status of your application for %s has been updated to %s.", jobTitle, status),
	}
}

func FeedbackReceived(recipient uuid.UUID, jobTitle string) Request {
	return Request{
		RecipientID: recipient,
		Message:     fmt.Sprintf("You have received feedback on your application for %s.", jobTitle),
	}
}
