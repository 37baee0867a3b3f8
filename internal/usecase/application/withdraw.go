package application

import (
	"context"

	appdomain "recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Withdraw hides the application from the applicant's list. The row stays
// visible to the poster and keeps blocking a new submission for the job.
// Withdrawing twice succeeds.
func (s *Service) Withdraw(ctx context.Context, applicant identity.Applicant, id uuid.UUID) (appdomain.Application, error) {
	var out appdomain.Application
	changed := false

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		a, err := s.applications.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !a.SubmittedBy(applicant.ID) {
			return ErrForbidden
		}
		if !a.IsActive {
			out = a
			return nil
		}

		now := s.now().UTC()
		if err := s.applications.Deactivate(ctx, a.ID, now); err != nil {
			return err
		}
		a.IsActive = false
		a.UpdatedAt = now
		out = a
		changed = true
		return nil
	})
	if err != nil {
		return appdomain.Application{}, s.fail("withdraw", err)
	}

	if changed {
		metrics.RecordTransition("withdraw", string(out.Status))
		s.logger.Info("application withdrawn", zap.String("application_id", out.ID.String()))
	}
	return out, nil
}
