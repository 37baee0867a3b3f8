package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	appdomain "recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/domain/job"
	"recruitment-portal/internal/domain/notification"
	"recruitment-portal/internal/repository"

	"github.com/google/uuid"
)

// store backs every fake repository. memTx snapshots it so a failed unit of
// work leaves no trace.
type store struct {
	mu            sync.Mutex
	jobs          map[uuid.UUID]job.Posting
	applications  map[uuid.UUID]appdomain.Application
	notifications map[uuid.UUID]notification.Notification

	skipExistsCheck   bool
	failNotifications bool
	statusWrites      int
}

func newStore() *store {
	return &store{
		jobs:          map[uuid.UUID]job.Posting{},
		applications:  map[uuid.UUID]appdomain.Application{},
		notifications: map[uuid.UUID]notification.Notification{},
	}
}

func (s *store) snapshot() (map[uuid.UUID]job.Posting, map[uuid.UUID]appdomain.Application, map[uuid.UUID]notification.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make(map[uuid.UUID]job.Posting, len(s.jobs))
	for k, v := range s.jobs {
		jobs[k] = v
	}
	apps := make(map[uuid.UUID]appdomain.Application, len(s.applications))
	for k, v := range s.applications {
		apps[k] = v
	}
	notes := make(map[uuid.UUID]notification.Notification, len(s.notifications))
	for k, v := range s.notifications {
		notes[k] = v
	}
	return jobs, apps, notes
}

func (s *store) restore(jobs map[uuid.UUID]job.Posting, apps map[uuid.UUID]appdomain.Application, notes map[uuid.UUID]notification.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs, s.applications, s.notifications = jobs, apps, notes
}

func (s *store) notificationsFor(recipient uuid.UUID) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notification.Notification, 0)
	for _, n := range s.notifications {
		if n.RecipientID == recipient {
			out = append(out, n)
		}
	}
	return out
}

type memTx struct {
	s       *store
	commits int
}

func (t *memTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	jobs, apps, notes := t.s.snapshot()
	if err := fn(ctx); err != nil {
		t.s.restore(jobs, apps, notes)
		return err
	}
	t.commits++
	return nil
}

type fakeJobs struct{ s *store }

func (f fakeJobs) Create(_ context.Context, p job.Posting) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.jobs[p.ID] = p
	return nil
}

func (f fakeJobs) Update(_ context.Context, p job.Posting) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.jobs[p.ID]; !ok {
		return repository.ErrJobNotFound
	}
	f.s.jobs[p.ID] = p
	return nil
}

func (f fakeJobs) Delete(_ context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.jobs, id)
	return nil
}

func (f fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.jobs[id]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	return p, nil
}

func (f fakeJobs) ListOpen(context.Context, int, int) ([]job.Posting, error) { return nil, nil }

func (f fakeJobs) ListByOwner(context.Context, uuid.UUID) ([]job.Posting, error) { return nil, nil }

func (f fakeJobs) CloseExpired(context.Context, time.Time) (int64, error) { return 0, nil }

type fakeApplications struct{ s *store }

func (f fakeApplications) Create(_ context.Context, a appdomain.Application) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.applications {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return repository.ErrDuplicateApplication
		}
	}
	f.s.applications[a.ID] = a
	return nil
}

func (f fakeApplications) GetByID(_ context.Context, id uuid.UUID) (appdomain.Application, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.applications[id]
	if !ok {
		return appdomain.Application{}, repository.ErrApplicationNotFound
	}
	if j, ok := f.s.jobs[a.JobID]; ok {
		a.JobTitle = j.Title
	}
	return a, nil
}

func (f fakeApplications) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (appdomain.Application, error) {
	return f.GetByID(ctx, id)
}

func (f fakeApplications) ExistsForApplicant(_ context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.skipExistsCheck {
		return false, nil
	}
	for _, a := range f.s.applications {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeApplications) list(keep func(appdomain.Application) bool) []appdomain.Application {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]appdomain.Application, 0)
	for _, a := range f.s.applications {
		if keep(a) {
			if j, ok := f.s.jobs[a.JobID]; ok {
				a.JobTitle = j.Title
			}
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].SubmittedAt.After(out[k].SubmittedAt) })
	return out
}

func (f fakeApplications) ListActiveByApplicant(_ context.Context, applicantID uuid.UUID) ([]appdomain.Application, error) {
	return f.list(func(a appdomain.Application) bool { return a.ApplicantID == applicantID && a.IsActive }), nil
}

func (f fakeApplications) ListAllByJob(_ context.Context, jobID uuid.UUID) ([]appdomain.Application, error) {
	return f.list(func(a appdomain.Application) bool { return a.JobID == jobID }), nil
}

func (f fakeApplications) mutate(id uuid.UUID, fn func(*appdomain.Application)) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.applications[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	fn(&a)
	f.s.applications[id] = a
	return nil
}

func (f fakeApplications) UpdateStatus(_ context.Context, id uuid.UUID, status appdomain.Status, at time.Time) error {
	f.s.mu.Lock()
	f.s.statusWrites++
	f.s.mu.Unlock()
	return f.mutate(id, func(a *appdomain.Application) {
		a.Status = status
		a.UpdatedAt = at
	})
}

func (f fakeApplications) UpdateFeedback(_ context.Context, id uuid.UUID, feedback string, at time.Time) error {
	return f.mutate(id, func(a *appdomain.Application) {
		a.Feedback = feedback
		a.UpdatedAt = at
	})
}

func (f fakeApplications) Deactivate(_ context.Context, id uuid.UUID, at time.Time) error {
	return f.mutate(id, func(a *appdomain.Application) {
		a.IsActive = false
		a.UpdatedAt = at
	})
}

func (f fakeApplications) CountByJobOwner(context.Context, uuid.UUID, time.Time) (int, int, error) {
	return 0, 0, nil
}

type fakeNotifications struct{ s *store }

func (f fakeNotifications) Create(_ context.Context, n notification.Notification) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failNotifications {
		return errors.New("notifications table unavailable")
	}
	f.s.notifications[n.ID] = n
	return nil
}

func (f fakeNotifications) GetByID(_ context.Context, id uuid.UUID) (notification.Notification, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n, ok := f.s.notifications[id]
	if !ok {
		return notification.Notification{}, repository.ErrNotificationNotFound
	}
	return n, nil
}

func (f fakeNotifications) ListByRecipient(_ context.Context, recipientID uuid.UUID, _ bool, _ int) ([]notification.Notification, error) {
	return f.s.notificationsFor(recipientID), nil
}

func (f fakeNotifications) MarkRead(context.Context, uuid.UUID) error { return nil }

type fakeFiles struct {
	mu    sync.Mutex
	files map[string][]byte
	fail  bool
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{files: map[string][]byte{}}
}

func (f *fakeFiles) Save(_ context.Context, dir, name string, r io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("disk full")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ref := dir + "/" + name
	f.files[ref] = b
	return ref, nil
}

func (f *fakeFiles) Remove(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, ref)
	return nil
}

func (f *fakeFiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

type recordingDispatcher struct {
	mu    sync.Mutex
	notes []notification.Notification
}

func (d *recordingDispatcher) Dispatch(_ context.Context, notes []notification.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notes = append(d.notes, notes...)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.notes)
}

func upload(name string) Upload {
	return Upload{Filename: name, Content: bytes.NewReader([]byte("%PDF-1.4 " + strings.Repeat("x", 16)))}
}
