package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	httpapi "github.com/portfolio-site/portfolio-backend/internal/api/http"
	apimw "github.com/portfolio-site/portfolio-backend/internal/api/http/middleware"
	authhttp "github.com/portfolio-site/portfolio-backend/internal/auth/http"
	authmw "github.com/portfolio-site/portfolio-backend/internal/auth/middleware"
	"github.com/portfolio-site/portfolio-backend/internal/catalog"
	"github.com/portfolio-site/portfolio-backend/internal/contact"
	msghttp "github.com/portfolio-site/portfolio-backend/internal/messages/http"
	projhttp "github.com/portfolio-site/portfolio-backend/internal/projects/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	MaxUploadMB    int
	Log            zerolog.Logger

	DB    httpapi.Pinger
	Cache httpapi.Pinger

	Auth     authhttp.Authenticator
	Projects projhttp.Projects
	Inbox    msghttp.Inbox
	Catalog  *catalog.Catalog
	Contact  *contact.Service
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID(dep.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", apimw.HeaderRequestID},
		ExposeHeaders:    []string{apimw.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	maxUpload := int64(dep.MaxUploadMB) << 20
	if maxUpload > 0 {
		r.MaxMultipartMemory = maxUpload
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	authhttp.New(dep.Auth).Register(api.Group("/auth"))
	catalog.NewHandler(dep.Catalog).Register(api.Group("/projects"))
	contact.NewHandler(dep.Contact).Register(api.Group("/contact"))

	admin := api.Group("/admin", authmw.RequireSession(dep.Auth))
	projectsGroup := admin.Group("/projects")
	if maxUpload > 0 {
		projectsGroup.Use(apimw.BodyLimit(maxUpload))
	}
	projhttp.New(dep.Projects).Register(projectsGroup)
	msghttp.New(dep.Inbox).Register(admin.Group("/messages"))

	return r
}
