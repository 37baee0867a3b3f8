// Package notify delivers committed notifications to connected users and,
// when configured, by email.
package notify

import (
	"context"
	"fmt"
	"strings"

	"recruitment-portal/internal/domain/notification"
	"recruitment-portal/internal/domain/user"
	"recruitment-portal/internal/infrastructure/mail"
	"recruitment-portal/internal/metrics"
	"recruitment-portal/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ChannelPrefix  = "notifications:"
	ChannelPattern = ChannelPrefix + "*"

	mailSubject = "Update on your job application"
)

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type LocalHub interface {
	SendTo(userID uuid.UUID, message []byte)
}

type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, m mail.Message) error
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

type Dispatcher struct {
	pub    Publisher
	hub    LocalHub
	mailer Mailer
	users  UserLookup
	logger *zap.Logger
}

func NewDispatcher(pub Publisher, hub LocalHub, mailer Mailer, users UserLookup, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{pub: pub, hub: hub, mailer: mailer, users: users, logger: logger}
}

func Channel(userID uuid.UUID) string {
	return ChannelPrefix + userID.String()
}

// Dispatch publishes each notification for the recipient's live sessions.
// When the publisher is not reachable the local hub is used directly.
// Failures are logged and never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, notes []notification.Notification) {
	for _, n := range notes {
		d.push(ctx, n)
		d.mail(ctx, n)
	}
}

func (d *Dispatcher) push(ctx context.Context, n notification.Notification) {
	payload, err := ws.EncodeNotification(n)
	if err != nil {
		d.logger.Error("encode notification failed", zap.String("notification_id", n.ID.String()), zap.Error(err))
		metrics.RecordDelivery("websocket", false)
		return
	}

	if d.pub != nil {
		err = d.pub.Publish(ctx, Channel(n.RecipientID), payload)
		if err == nil {
			metrics.RecordDelivery("websocket", true)
			return
		}
		d.logger.Debug("publish notification failed, delivering locally", zap.Error(err))
	}

	if d.hub == nil {
		metrics.RecordDelivery("websocket", false)
		return
	}
	d.hub.SendTo(n.RecipientID, payload)
	metrics.RecordDelivery("websocket", true)
}

func (d *Dispatcher) mail(ctx context.Context, n notification.Notification) {
	if d.mailer == nil || !d.mailer.Enabled() || d.users == nil {
		return
	}
	u, err := d.users.GetUserByID(ctx, n.RecipientID)
	if err != nil {
		d.logger.Warn("notification mail: recipient lookup failed", zap.String("recipient_id", n.RecipientID.String()), zap.Error(err))
		metrics.RecordDelivery("email", false)
		return
	}
	if strings.TrimSpace(u.Email) == "" {
		return
	}

	err = d.mailer.Send(ctx, mail.Message{
		To:      u.Email,
		Subject: mailSubject,
		Body:    fmt.Sprintf("Hello %s,\r\n\r\n%s\r\n", u.FullName(), n.Message),
	})
	if err != nil {
		d.logger.Warn("notification mail failed", zap.String("recipient_id", n.RecipientID.String()), zap.Error(err))
		metrics.RecordDelivery("email", false)
		return
	}
	metrics.RecordDelivery("email", true)
}
