package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/projecthub/projecthub-backend/config"
	"github.com/projecthub/projecthub-backend/internal/auth"
	authhttp "github.com/projecthub/projecthub-backend/internal/auth/http"
	authmw "github.com/projecthub/projecthub-backend/internal/auth/middleware"
	authrepo "github.com/projecthub/projecthub-backend/internal/auth/repository"
	authservice "github.com/projecthub/projecthub-backend/internal/auth/service"
	"github.com/projecthub/projecthub-backend/internal/httpapi"
	"github.com/projecthub/projecthub-backend/internal/httpapi/middleware"
	"github.com/projecthub/projecthub-backend/internal/originality"
	projhttp "github.com/projecthub/projecthub-backend/internal/projects/http"
	projrepo "github.com/projecthub/projecthub-backend/internal/projects/repository"
	projservice "github.com/projecthub/projecthub-backend/internal/projects/service"
	"github.com/projecthub/projecthub-backend/internal/weather"
)

// RouterDeps carries everything BuildRouter wires together.
type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
}

// BuildRouter assembles all repositories, services, and handlers into a
// gin engine.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{dep.Config.Server.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	accountRepo := authrepo.NewAccountRepository(dep.DB)
	projectRepo := projrepo.NewProjectRepository(dep.DB)

	tokens := authservice.NewTokenIssuer(dep.Config.Auth.JWTSecret, dep.Config.Auth.TokenLifetime)
	authSvc := authservice.NewAuthService(accountRepo, tokens)
	policy := auth.NewPolicy()

	embedder := NewEmbedder(dep.Config, dep.Redis)
	engine := originality.NewEngine(projectRepo, embedder, originality.Config{
		Threshold: dep.Config.Originality.Threshold,
		Neighbors: dep.Config.Originality.Neighbors,
	})
	projectSvc := projservice.NewProjectService(projectRepo, accountRepo, embedder, policy)

	authhttp.New(authSvc).Register(r.Group("/auth"))

	projectsGroup := r.Group("/projects")
	projectsGroup.Use(authmw.BearerAuth(authSvc))
	projhttp.New(projectSvc, engine).Register(projectsGroup)

	weatherClient := weather.NewClient(
		dep.Config.Weather.APIKey,
		dep.Config.Weather.Latitude,
		dep.Config.Weather.Longitude,
	)
	weather.NewHandler(weatherClient).Register(r.Group("/weather"))

	return r
}
