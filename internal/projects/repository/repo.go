package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, link, images, tech, category, published, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p        domain.Project
		link     sql.NullString
		category string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &link, pq.Array(&p.Images), pq.Array(&p.Tech), &category, &p.Published, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Link = link.String
	p.Category = domain.Category(category)
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tech == nil {
		p.Tech = []string{}
	}
	return &p, nil
}

// List returns every project, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT ` + projectColumns + `
FROM projects
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Insert stores p, assigning its id when empty and its created_at from the
// database clock.
func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	const q = `
INSERT INTO projects (id, title, description, link, images, tech, category, published)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
RETURNING created_at;
`
	return r.db.QueryRowContext(ctx, q,
		p.ID, p.Title, p.Description, p.Link,
		pq.Array(p.Images), pq.Array(p.Tech), string(p.Category), p.Published,
	).Scan(&p.CreatedAt)
}

// Update rewrites the editable fields. The images column is never written.
func (r *ProjectRepository) Update(ctx context.Context, id string, f domain.Fields) error {
	const q = `
UPDATE projects
SET title = $2, description = $3, link = NULLIF($4, ''), tech = $5, category = $6
WHERE id = $1;
`
	result, err := r.db.ExecContext(ctx, q, id, f.Title, f.Description, f.Link, pq.Array(f.Tech), string(f.Category))
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the row and reports whether it existed.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM projects WHERE id = $1;`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AllImages returns every image URL referenced by any project.
func (r *ProjectRepository) AllImages(ctx context.Context) ([]string, error) {
	const q = `SELECT unnest(images) FROM projects;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
