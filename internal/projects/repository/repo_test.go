package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

var projectCols = []string{"id", "title", "description", "link", "images", "tech", "category", "published", "created_at"}

func setupProjectRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewProjectRepository(db), mock
}

func TestProjectRepository_List(t *testing.T) {
	repo, mock := setupProjectRepo(t)
	newer := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, title, description, link, images, tech, category, published, created_at\s+FROM projects\s+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow("p2", "Recon Tool", "scanner", nil, "{https://cdn/1-a.png,https://cdn/2-b.png}", "{Go,nmap}", "security", true, newer).
			AddRow("p1", "Site", "", "https://example.com", "{}", "{}", "web", true, older))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "p2", items[0].ID)
	assert.Equal(t, "", items[0].Link)
	assert.Equal(t, []string{"https://cdn/1-a.png", "https://cdn/2-b.png"}, items[0].Images)
	assert.Equal(t, []string{"Go", "nmap"}, items[0].Tech)
	assert.Equal(t, domain.CategorySecurity, items[0].Category)

	assert.Equal(t, "https://example.com", items[1].Link)
	assert.Equal(t, []string{}, items[1].Images)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Get(t *testing.T) {
	repo, mock := setupProjectRepo(t)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`FROM projects\s+WHERE id = \$1`).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow("p1", "Site", "", nil, "{https://cdn/1-a.png}", "{}", "web", true, time.Now()))

		p, err := repo.Get(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "Site", p.Title)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`FROM projects\s+WHERE id = \$1`).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Insert(t *testing.T) {
	repo, mock := setupProjectRepo(t)
	created := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO projects \(id, title, description, link, images, tech, category, published\)`).
		WithArgs(sqlmock.AnyArg(), "Recon Tool", "desc", "", sqlmock.AnyArg(), sqlmock.AnyArg(), "security", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	p := &domain.Project{
		Title:       "Recon Tool",
		Description: "desc",
		Images:      []string{"https://cdn/1-a.png"},
		Tech:        []string{"Go"},
		Category:    domain.CategorySecurity,
		Published:   true,
	}
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, created, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_UpdateNeverTouchesImages(t *testing.T) {
	repo, mock := setupProjectRepo(t)

	t.Run("updates editable columns", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects\s+SET title = \$2, description = \$3, link = NULLIF\(\$4, ''\), tech = \$5, category = \$6\s+WHERE id = \$1`).
			WithArgs("p1", "New", "d", "https://x", sqlmock.AnyArg(), "web").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), "p1", domain.Fields{Title: "New", Description: "d", Link: "https://x", Category: domain.CategoryWeb})
		require.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects`).
			WithArgs("p9", "New", "", "", sqlmock.AnyArg(), "web").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), "p9", domain.Fields{Title: "New", Category: domain.CategoryWeb})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Delete(t *testing.T) {
	repo, mock := setupProjectRepo(t)

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).
		WithArgs("p1").
		WillReturnError(errors.New("connection reset"))
	_, err = repo.Delete(context.Background(), "p1")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_AllImages(t *testing.T) {
	repo, mock := setupProjectRepo(t)

	mock.ExpectQuery(`SELECT unnest\(images\) FROM projects`).
		WillReturnRows(sqlmock.NewRows([]string{"unnest"}).AddRow("https://cdn/1-a.png").AddRow("https://cdn/2-b.png"))

	urls, err := repo.AllImages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/1-a.png", "https://cdn/2-b.png"}, urls)
	require.NoError(t, mock.ExpectationsWereMet())
}
