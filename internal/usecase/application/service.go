// Package application implements the application workflow: submission,
// review by the owning poster, withdrawal by the applicant, and the
// notifications those transitions produce.
package application

import (
	"context"
	"io"
	"time"

	"recruitment-portal/internal/database"
	appdomain "recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/notification"
	"recruitment-portal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore keeps uploaded documents. Save returns a reference that Remove
// accepts.
type FileStore interface {
	Save(ctx context.Context, dir, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Dispatcher delivers notifications that were already committed.
type Dispatcher interface {
	Dispatch(ctx context.Context, notes []notification.Notification)
}

type Engine interface {
	Submit(ctx context.Context, applicant identity.Applicant, jobID uuid.UUID, in SubmitInput) (appdomain.Application, error)
	ListForApplicant(ctx context.Context, applicant identity.Applicant) ([]appdomain.Application, error)
	ListForJob(ctx context.Context, poster identity.Poster, jobID uuid.UUID) ([]appdomain.Application, error)
	Get(ctx context.Context, caller identity.Caller, id uuid.UUID) (appdomain.Application, error)
	UpdateStatus(ctx context.Context, poster identity.Poster, id uuid.UUID, status string) (appdomain.Application, error)
	AttachFeedback(ctx context.Context, poster identity.Poster, id uuid.UUID, text string) (appdomain.Application, error)
	Withdraw(ctx context.Context, applicant identity.Applicant, id uuid.UUID) (appdomain.Application, error)
}

type Service struct {
	tx            database.Transactor
	applications  repository.ApplicationRepository
	jobs          repository.JobRepository
	notifications repository.NotificationRepository
	files         FileStore
	dispatcher    Dispatcher
	logger        *zap.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

type Deps struct {
	Tx            database.Transactor
	Applications  repository.ApplicationRepository
	Jobs          repository.JobRepository
	Notifications repository.NotificationRepository
	Files         FileStore
	Dispatcher    Dispatcher
	Logger        *zap.Logger
}

func NewService(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tx:            d.Tx,
		applications:  d.Applications,
		jobs:          d.Jobs,
		notifications: d.Notifications,
		files:         d.Files,
		dispatcher:    d.Dispatcher,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.New,
	}
}

// emit stores the notification in the caller's transaction.
func (s *Service) emit(ctx context.Context, req notification.Request) (notification.Notification, error) {
	n := notification.Notification{
		ID:          s.newID(),
		RecipientID: req.RecipientID,
		Message:     req.Message,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (s *Service) dispatch(ctx context.Context, notes []notification.Notification) {
	if len(notes) == 0 || s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(context.WithoutCancel(ctx), notes)
}
