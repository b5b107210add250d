package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-site/portfolio-backend/internal/media"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

// Repository is the row store behind ProjectService.
type Repository interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Insert(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, id string, f domain.Fields) error
	Delete(ctx context.Context, id string) (bool, error)
}

type Uploader interface {
	Upload(ctx context.Context, files []media.File) ([]string, error)
}

type ObjectRemover interface {
	Remove(ctx context.Context, paths []string) error
}

// Phase names the step of Create that produced its result.
type Phase string

const (
	PhaseUpload Phase = "upload"
	PhaseInsert Phase = "insert"
	PhaseDone   Phase = "done"
)

// CreateResult describes how far Create got. Orphaned lists storage paths
// that were written but are not referenced by any row.
type CreateResult struct {
	Phase    Phase
	Orphaned []string
	Project  *domain.Project
}

// DeleteResult describes both steps of Delete. A non-nil RemoveErr with
// RowDeleted set means the row is gone but its objects may remain.
type DeleteResult struct {
	RemovedPaths []string
	RemoveErr    error
	RowDeleted   bool
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo     Repository
	uploader Uploader
	objects  ObjectRemover
}

func NewProjectService(repo Repository, uploader Uploader, objects ObjectRemover) *ProjectService {
	return &ProjectService{repo: repo, uploader: uploader, objects: objects}
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Persist("list projects", err)
	}
	return items, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Persist("get project", err)
	}
	return p, nil
}

// Create uploads files, then inserts the project with their URLs in upload
// order. Nothing is rolled back: a failure in either phase is reported with
// the storage paths it left behind.
func (s *ProjectService) Create(ctx context.Context, sess *authdomain.Session, f domain.Fields, files []media.File) (*CreateResult, error) {
	if err := authdomain.RequireSession(sess); err != nil {
		return nil, err
	}
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperr.Invalid("images", "at least one image is required")
	}
	if err := media.CheckFiles(files); err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx)

	urls, err := s.uploader.Upload(ctx, files)
	if err != nil {
		res := &CreateResult{Phase: PhaseUpload}
		var ue *media.UploadError
		if errors.As(err, &ue) {
			res.Orphaned = ue.Committed
		}
		return res, err
	}

	p := &domain.Project{
		Title:       f.Title,
		Description: f.Description,
		Link:        f.Link,
		Images:      urls,
		Tech:        f.Tech,
		Category:    f.Category,
		Published:   true,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		orphaned := media.StoragePaths(urls)
		log.Error().Err(err).Strs("orphaned", orphaned).Msg("projects: insert failed after upload")
		return &CreateResult{Phase: PhaseInsert, Orphaned: orphaned}, apperr.Persist("create project", err)
	}

	log.Info().Str("project_id", p.ID).Int("images", len(urls)).Msg("projects: created")
	return &CreateResult{Phase: PhaseDone, Project: p}, nil
}

// Update writes the editable fields of id. Images are left as they are.
func (s *ProjectService) Update(ctx context.Context, sess *authdomain.Session, id string, f domain.Fields) error {
	if err := authdomain.RequireSession(sess); err != nil {
		return err
	}
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Update(ctx, id, f); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return apperr.Persist("update project", err)
	}
	return nil
}

// Delete removes the project's objects, then its row. The row is deleted
// even if removing objects failed; DeleteResult records what happened.
func (s *ProjectService) Delete(ctx context.Context, sess *authdomain.Session, id string, images []string) (*DeleteResult, error) {
	if err := authdomain.RequireSession(sess); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	log := zerolog.Ctx(ctx)
	res := &DeleteResult{}

	if paths := media.StoragePaths(images); len(paths) > 0 {
		if err := s.objects.Remove(ctx, paths); err != nil {
			res.RemoveErr = err
			log.Warn().Err(err).Strs("paths", paths).Msg("projects: object removal failed, deleting row anyway")
		} else {
			res.RemovedPaths = paths
		}
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return res, apperr.Persist("delete project", err)
	}
	res.RowDeleted = deleted
	return res, nil
}
