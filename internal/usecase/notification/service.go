package notification

import (
	"context"
	"errors"

	"recruitment-portal/internal/domain/identity"
	notedomain "recruitment-portal/internal/domain/notification"
	"recruitment-portal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("notification not found")
	ErrInternal     = errors.New("internal error")
)

const listLimit = 50

type InboxUsecase interface {
	List(ctx context.Context, caller identity.Caller, unreadOnly bool) ([]notedomain.Notification, error)
	MarkRead(ctx context.Context, caller identity.Caller, id uuid.UUID) (notedomain.Notification, error)
}

type Service struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func NewService(notifications repository.NotificationRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{notifications: notifications, logger: logger}
}

func (s *Service) List(ctx context.Context, caller identity.Caller, unreadOnly bool) ([]notedomain.Notification, error) {
	if !identity.IsAuthenticated(caller) {
		return nil, ErrUnauthorized
	}
	out, err := s.notifications.ListByRecipient(ctx, caller.UserID(), unreadOnly, listLimit)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("user_id", caller.UserID().String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// MarkRead is allowed for the recipient only. Marking an already read
// notification succeeds.
func (s *Service) MarkRead(ctx context.Context, caller identity.Caller, id uuid.UUID) (notedomain.Notification, error) {
	if !identity.IsAuthenticated(caller) {
		return notedomain.Notification{}, ErrUnauthorized
	}
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return notedomain.Notification{}, s.fail("get notification", err)
	}
	if n.RecipientID != caller.UserID() {
		return notedomain.Notification{}, ErrForbidden
	}
	if n.IsRead {
		return n, nil
	}
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return notedomain.Notification{}, s.fail("mark notification read", err)
	}
	n.IsRead = true
	return n, nil
}

func (s *Service) fail(op string, err error) error {
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return ErrNotFound
	}
	s.logger.Error("notification operation failed", zap.String("operation", op), zap.Error(err))
	return ErrInternal
}
