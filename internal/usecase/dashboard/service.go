package dashboard

import (
	"context"
	"errors"
	"time"

	appdomain "recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/job"
	"recruitment-portal/internal/domain/notification"
	"recruitment-portal/internal/repository"

	"go.uber.org/zap"
)

var ErrInternal = errors.New("internal error")

const (
	recentWindow      = 7 * 24 * time.Hour
	notificationLimit = 50
)

type Applicant struct {
	Applications        []appdomain.Application
	TotalApplications   int
	InterviewCount      int
	UnreadNotifications []notification.Notification
}

type Poster struct {
	Jobs               []job.Posting
	TotalJobs          int
	TotalApplications  int
	RecentApplications int
}

type DashboardUsecase interface {
	ForApplicant(ctx context.Context, applicant identity.Applicant) (Applicant, error)
	ForPoster(ctx context.Context, poster identity.Poster) (Poster, error)
}

type Service struct {
	applications  repository.ApplicationRepository
	jobs          repository.JobRepository
	notifications repository.NotificationRepository
	logger        *zap.Logger

	now func() time.Time
}

func NewService(applications repository.ApplicationRepository, jobs repository.JobRepository, notifications repository.NotificationRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{applications: applications, jobs: jobs, notifications: notifications, logger: logger, now: time.Now}
}

func (s *Service) ForApplicant(ctx context.Context, applicant identity.Applicant) (Applicant, error) {
	apps, err := s.applications.ListActiveByApplicant(ctx, applicant.ID)
	if err != nil {
		s.logger.Error("applicant dashboard: list applications failed", zap.Error(err))
		return Applicant{}, ErrInternal
	}
	unread, err := s.notifications.ListByRecipient(ctx, applicant.ID, true, notificationLimit)
	if err != nil {
		s.logger.Error("applicant dashboard: list notifications failed", zap.Error(err))
		return Applicant{}, ErrInternal
	}

	out := Applicant{
		Applications:        apps,
		TotalApplications:   len(apps),
		UnreadNotifications: unread,
	}
	for _, a := range apps {
		if a.Status == appdomain.StatusInterview {
			out.InterviewCount++
		}
	}
	return out, nil
}

func (s *Service) ForPoster(ctx context.Context, poster identity.Poster) (Poster, error) {
	jobs, err := s.jobs.ListByOwner(ctx, poster.ID)
	if err != nil {
		s.logger.Error("poster dashboard: list jobs failed", zap.Error(err))
		return Poster{}, ErrInternal
	}
	total, recent, err := s.applications.CountByJobOwner(ctx, poster.ID, s.now().Add(-recentWindow))
	if err != nil {
		s.logger.Error("poster dashboard: count applications failed", zap.Error(err))
		return Poster{}, ErrInternal
	}
	return Poster{
		Jobs:               jobs,
		TotalJobs:          len(jobs),
		TotalApplications:  total,
		RecentApplications: recent,
	}, nil
}
