package application

import (
	"context"
	"strings"

	appdomain "recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/job"
	"recruitment-portal/internal/domain/notification"
	"recruitment-portal/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// loadOwned locks the application and checks that poster owns its job.
func (s *Service) loadOwned(ctx context.Context, poster identity.Poster, id uuid.UUID) (appdomain.Application, job.Posting, error) {
	a, err := s.applications.GetByIDForUpdate(ctx, id)
	if err != nil {
		return appdomain.Application{}, job.Posting{}, err
	}
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return appdomain.Application{}, job.Posting{}, err
	}
	if !j.OwnedBy(poster.ID) {
		return appdomain.Application{}, job.Posting{}, ErrForbidden
	}
	a.JobTitle = j.Title
	return a, j, nil
}

// UpdateStatus moves the application to status. Each distinct change notifies
// the applicant once; setting the current status again is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, poster identity.Poster, id uuid.UUID, status string) (appdomain.Application, error) {
	next, err := appdomain.ParseStatus(status)
	if err != nil {
		return appdomain.Application{}, invalid("status", "must be one of Pending, Interview, Accepted, Rejected")
	}

	var out appdomain.Application
	var emitted []notification.Notification
	changed := false

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		a, j, err := s.loadOwned(ctx, poster, id)
		if err != nil {
			return err
		}
		if a.Status == next {
			out = a
			return nil
		}
		if !appdomain.CanTransition(a.Status, next) {
			return invalid("status", "transition from "+string(a.Status)+" to "+string(next)+" is not allowed")
		}

		now := s.now().UTC()
		if err := s.applications.UpdateStatus(ctx, a.ID, next, now); err != nil {
			return err
		}
		n, err := s.emit(ctx, notification.StatusChanged(a.ApplicantID, j.Title, string(next)))
		if err != nil {
			return err
		}

		a.Status = next
		a.UpdatedAt = now
		out = a
		emitted = append(emitted, n)
		changed = true
		return nil
	})
	if err != nil {
		return appdomain.Application{}, s.fail("update_status", err)
	}

	if changed {
		metrics.RecordTransition("update_status", string(next))
		metrics.RecordNotificationsEmitted(len(emitted))
		s.logger.Info("application status updated",
			zap.String("application_id", out.ID.String()),
			zap.String("status", string(next)),
		)
	}
	s.dispatch(ctx, emitted)
	return out, nil
}

// AttachFeedback overwrites the feedback text and always notifies the
// applicant, even when the text did not change.
func (s *Service) AttachFeedback(ctx context.Context, poster identity.Poster, id uuid.UUID, text string) (appdomain.Application, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return appdomain.Application{}, invalid("feedback", "is required")
	}

	var out appdomain.Application
	var emitted []notification.Notification

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		a, j, err := s.loadOwned(ctx, poster, id)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		if err := s.applications.UpdateFeedback(ctx, a.ID, text, now); err != nil {
			return err
		}
		n, err := s.emit(ctx, notification.FeedbackReceived(a.ApplicantID, j.Title))
		if err != nil {
			return err
		}

		a.Feedback = text
		a.UpdatedAt = now
		out = a
		emitted = append(emitted, n)
		return nil
	})
	if err != nil {
		return appdomain.Application{}, s.fail("attach_feedback", err)
	}

	metrics.RecordTransition("attach_feedback", string(out.Status))
	metrics.RecordNotificationsEmitted(len(emitted))
	s.dispatch(ctx, emitted)
	return out, nil
}
