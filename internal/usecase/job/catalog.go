package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/job"
	"recruitment-portal/internal/metrics"
	"recruitment-portal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 50
	latestCount  = 5

	listKeyPattern = "jobs:list:*"
	lockKeyPattern = "jobs:lock:list:*"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// ApplicationLister finds the applications whose uploads go with a posting.
type ApplicationLister interface {
	ListAllByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
}

type FileRemover interface {
	Remove(ctx context.Context, ref string) error
}

type ListParams struct {
	Limit  int
	Offset int
}

// Input is the editable part of a posting. Deadline uses YYYY-MM-DD; an
// empty Status means Open.
type Input struct {
	Title          string
	Description    string
	RequiredSkills string
	Location       string
	Type           string
	Deadline       string
	Status         string
}

type CatalogUsecase interface {
	ListOpen(ctx context.Context, params ListParams) ([]job.Posting, error)
	Latest(ctx context.Context) ([]job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Create(ctx context.Context, poster identity.Poster, in Input) (job.Posting, error)
	Update(ctx context.Context, poster identity.Poster, id uuid.UUID, in Input) (job.Posting, error)
	Delete(ctx context.Context, poster identity.Poster, id uuid.UUID) error
	ListOwned(ctx context.Context, poster identity.Poster) ([]job.Posting, error)
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

type Catalog struct {
	jobs   repository.JobRepository
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger

	applications ApplicationLister
	files        FileRemover

	newID func() uuid.UUID
}

func NewCatalog(jobs repository.JobRepository, cache Cache, ttl time.Duration, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{jobs: jobs, cache: cache, ttl: ttl, logger: logger, newID: uuid.New}
}

// WithApplicationFiles makes Delete remove the uploads of a posting's
// applications after the rows are gone.
func (c *Catalog) WithApplicationFiles(applications ApplicationLister, files FileRemover) *Catalog {
	c.applications = applications
	c.files = files
	return c
}

func ListCacheKey(limit, offset int) string {
	return fmt.Sprintf("jobs:list:%d:%d", limit, offset)
}

func (c *Catalog) ListOpen(ctx context.Context, params ListParams) ([]job.Posting, error) {
	limit := params.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 0 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := params.Offset

	key := ListCacheKey(limit, offset)
	if c.cache != nil {
		var cached []job.Posting
		hit, err := c.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			metrics.RecordCacheLookup(true)
			c.logger.Debug("job list cache hit", zap.String("key", key))
			return cached, nil
		}
		metrics.RecordCacheLookup(false)
	}

	out, err := c.jobs.ListOpen(ctx, limit, offset)
	if err != nil {
		c.logger.Error("list open jobs failed", zap.Error(err))
		return nil, ErrInternal
	}

	if c.cache != nil {
		// Only the request holding the fill lock writes the entry.
		lockKey := "jobs:lock:" + strings.TrimPrefix(key, "jobs:")
		if ok, err := c.cache.SetIfNotExists(ctx, lockKey, "1", 10*time.Second); err == nil && ok {
			if err := c.cache.SetJSON(ctx, key, out, c.ttl); err != nil {
				c.logger.Warn("job list cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return out, nil
}

func (c *Catalog) Latest(ctx context.Context) ([]job.Posting, error) {
	out, err := c.jobs.ListOpen(ctx, latestCount, 0)
	if err != nil {
		c.logger.Error("list latest jobs failed", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	p, err := c.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Posting{}, c.fail("get job", err)
	}
	return p, nil
}

func (c *Catalog) Create(ctx context.Context, poster identity.Poster, in Input) (job.Posting, error) {
	p, err := in.posting()
	if err != nil {
		return job.Posting{}, err
	}
	p.ID = c.newID()
	p.PostedBy = poster.ID

	if err := c.jobs.Create(ctx, p); err != nil {
		return job.Posting{}, c.fail("create job", err)
	}
	c.invalidate(ctx)

	created, err := c.jobs.GetByID(ctx, p.ID)
	if err != nil {
		return job.Posting{}, c.fail("reload job", err)
	}
	c.logger.Info("job created", zap.String("job_id", p.ID.String()), zap.String("poster_id", poster.ID.String()))
	return created, nil
}

func (c *Catalog) Update(ctx context.Context, poster identity.Poster, id uuid.UUID, in Input) (job.Posting, error) {
	existing, err := c.owned(ctx, poster, id)
	if err != nil {
		return job.Posting{}, err
	}
	p, err := in.posting()
	if err != nil {
		return job.Posting{}, err
	}
	p.ID = existing.ID
	p.PostedBy = existing.PostedBy

	if err := c.jobs.Update(ctx, p); err != nil {
		return job.Posting{}, c.fail("update job", err)
	}
	c.invalidate(ctx)

	updated, err := c.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Posting{}, c.fail("reload job", err)
	}
	return updated, nil
}

// Delete removes the posting and, by cascade, its applications.
func (c *Catalog) Delete(ctx context.Context, poster identity.Poster, id uuid.UUID) error {
	if _, err := c.owned(ctx, poster, id); err != nil {
		return err
	}
	refs, err := c.uploadRefs(ctx, id)
	if err != nil {
		return c.fail("list job applications", err)
	}
	if err := c.jobs.Delete(ctx, id); err != nil {
		return c.fail("delete job", err)
	}
	c.invalidate(ctx)
	c.removeFiles(ctx, id, refs)
	c.logger.Info("job deleted", zap.String("job_id", id.String()), zap.Int("files_removed", len(refs)))
	return nil
}

func (c *Catalog) uploadRefs(ctx context.Context, jobID uuid.UUID) ([]string, error) {
	if c.applications == nil || c.files == nil {
		return nil, nil
	}
	apps, err := c.applications.ListAllByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(apps)*2)
	for _, a := range apps {
		for _, ref := range []string{a.CVFile, a.AdditionalDocuments} {
			if strings.TrimSpace(ref) != "" {
				refs = append(refs, ref)
			}
		}
	}
	return refs, nil
}

// removeFiles runs after the rows are deleted; a leftover file is logged only.
func (c *Catalog) removeFiles(ctx context.Context, jobID uuid.UUID, refs []string) {
	for _, ref := range refs {
		if err := c.files.Remove(ctx, ref); err != nil {
			c.logger.Warn("remove application file failed",
				zap.String("job_id", jobID.String()),
				zap.String("ref", ref),
				zap.Error(err),
			)
		}
	}
}

func (c *Catalog) ListOwned(ctx context.Context, poster identity.Poster) ([]job.Posting, error) {
	out, err := c.jobs.ListByOwner(ctx, poster.ID)
	if err != nil {
		return nil, c.fail("list owned jobs", err)
	}
	return out, nil
}

func (c *Catalog) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := c.jobs.CloseExpired(ctx, now)
	if err != nil {
		return 0, c.fail("close expired jobs", err)
	}
	if n > 0 {
		c.invalidate(ctx)
	}
	return n, nil
}

func (c *Catalog) owned(ctx context.Context, poster identity.Poster, id uuid.UUID) (job.Posting, error) {
	p, err := c.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Posting{}, c.fail("get job", err)
	}
	if !p.OwnedBy(poster.ID) {
		return job.Posting{}, ErrForbidden
	}
	return p, nil
}

func (c *Catalog) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	for _, p := range []string{listKeyPattern, lockKeyPattern} {
		if err := c.cache.DeleteByPattern(ctx, p); err != nil {
			c.logger.Warn("job list cache invalidation failed", zap.String("pattern", p), zap.Error(err))
		}
	}
}

func (c *Catalog) fail(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrJobNotFound
	case errors.Is(err, repository.ErrJobOwner):
		return ErrForbidden
	default:
		c.logger.Error("job catalog failed", zap.String("operation", op), zap.Error(err))
		return ErrInternal
	}
}

func (in Input) posting() (job.Posting, error) {
	fields := map[string]string{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields["title"] = "is required"
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		fields["description"] = "is required"
	}
	loc := strings.TrimSpace(in.Location)
	if loc == "" {
		fields["location"] = "is required"
	}

	typ, err := job.ParseType(in.Type)
	if err != nil {
		fields["job_type"] = "must be one of Full-time, Part-time, Internship"
	}

	deadline, err := time.Parse(job.DeadlineLayout, strings.TrimSpace(in.Deadline))
	if err != nil {
		fields["application_deadline"] = "must be a date in YYYY-MM-DD format"
	}

	status := job.StatusOpen
	if strings.TrimSpace(in.Status) != "" {
		st, err := job.ParseStatus(in.Status)
		if err != nil {
			fields["status"] = "must be Open or Closed"
		}
		status = st
	}

	if len(fields) > 0 {
		return job.Posting{}, &ValidationError{Fields: fields}
	}

	return job.Posting{
		Title:          title,
		Description:    desc,
		RequiredSkills: strings.Join(job.SplitSkills(in.RequiredSkills), ", "),
		Location:       loc,
		Type:           typ,
		Deadline:       deadline,
		Status:         status,
	}, nil
}
