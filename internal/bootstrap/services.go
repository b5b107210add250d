package bootstrap

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-backend/config"
	authrepo "github.com/portfolio-site/portfolio-backend/internal/auth/repository"
	authservice "github.com/portfolio-site/portfolio-backend/internal/auth/service"
	"github.com/portfolio-site/portfolio-backend/internal/catalog"
	"github.com/portfolio-site/portfolio-backend/internal/contact"
	"github.com/portfolio-site/portfolio-backend/internal/media"
	msgrepo "github.com/portfolio-site/portfolio-backend/internal/messages/repository"
	msgservice "github.com/portfolio-site/portfolio-backend/internal/messages/service"
	projrepo "github.com/portfolio-site/portfolio-backend/internal/projects/repository"
	projservice "github.com/portfolio-site/portfolio-backend/internal/projects/service"
	"github.com/portfolio-site/portfolio-backend/internal/storage/objectstore"
)

type Services struct {
	Projects *projservice.ProjectService
	Inbox    *msgservice.Inbox
	Catalog  *catalog.Catalog
	Contact  *contact.Service
	Auditor  *media.Auditor
}

// NewServices wires repositories over db and uploads into store.
func NewServices(db *sql.DB, store objectstore.Store, cfg *config.StorageConfig, log zerolog.Logger) *Services {
	projects := projrepo.NewProjectRepository(db)
	messages := msgrepo.NewMessageRepository(db)
	pipeline := media.NewPipeline(store, media.WithCacheControl(cfg.CacheControl))
	projectSvc := projservice.NewProjectService(projects, pipeline, store)

	return &Services{
		Projects: projectSvc,
		Inbox:    msgservice.NewInbox(messages),
		Catalog:  catalog.New(projectSvc),
		Contact:  contact.NewService(messages),
		Auditor:  media.NewAuditor(store, projects, log.With().Str("job", "orphan-audit").Logger()),
	}
}

// NewAuthenticator caches verified sessions in Redis when a client is given.
func NewAuthenticator(provider authservice.IdentityProvider, rdb *redis.Client) *authservice.Authenticator {
	if rdb == nil {
		return authservice.NewAuthenticator(provider, nil)
	}
	return authservice.NewAuthenticator(provider, authrepo.NewSessionCache(rdb))
}
