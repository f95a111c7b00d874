// Package httpapi wires the HTTP transport (Gin) to the application services,
// middleware and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, access logging, panic recovery, body limits,
// compression, metrics, idempotency keys, CORS and security headers.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/config"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/endpoints"
	"github.com/tbourn/go-news-backend/internal/events"
	_ "github.com/tbourn/go-news-backend/internal/http/docs"
	"github.com/tbourn/go-news-backend/internal/http/handlers"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/services"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// articleRepoShim adapts the repository free functions to
// services.ArticleRepo.
type articleRepoShim struct{}

// GetArticle proxies repo.GetArticle.
func (articleRepoShim) GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error) {
	return repo.GetArticle(ctx, db, id)
}

// ListArticles proxies repo.ListArticles.
func (articleRepoShim) ListArticles(ctx context.Context, db *gorm.DB, topic, sortColumn string, desc bool, offset, limit int) ([]domain.Article, error) {
	return repo.ListArticles(ctx, db, topic, sortColumn, desc, offset, limit)
}

// CreateArticle proxies repo.CreateArticle.
func (articleRepoShim) CreateArticle(ctx context.Context, db *gorm.DB, author, title, body, topic, imgURL string) (*domain.Article, error) {
	return repo.CreateArticle(ctx, db, author, title, body, topic, imgURL)
}

// IncrementArticleVotes proxies repo.IncrementArticleVotes.
func (articleRepoShim) IncrementArticleVotes(ctx context.Context, db *gorm.DB, id int64, delta int) (bool, int, error) {
	return repo.IncrementArticleVotes(ctx, db, id, delta)
}

// RegisterRoutes attaches middleware, operational endpoints and the public
// API (under cfg.APIBasePath) to r. A nil pub disables domain events.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. Logger
//  4. Recovery
//  5. Body size limit
//  6. Gzip (when enabled)
//  7. Metrics
//  8. Idempotency-Key validation and replay lookup
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, catalog *endpoints.Catalog, pub events.Publisher, cfg config.Config) {
	// Unknown methods on known paths fall through to NoRoute.
	r.HandleMethodNotAllowed = false

	idemSvc := &services.IdempotencyService{DB: db, TTL: cfg.IdempotencyTTL}

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	r.Use(middleware.Metrics())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idemSvc.Lookup))
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, apperr.NotFound(handlers.MsgRouteNotFound))
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", health(db))
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(handlers.Deps{
		Topics:       &services.TopicService{DB: db},
		Articles:     services.NewArticleService(db, articleRepoShim{}, pub),
		Comments:     services.NewCommentService(db, pub),
		Users:        &services.UserService{DB: db},
		Idempotency:  idemSvc,
		Catalog:      catalog,
		DefaultLimit: cfg.DefaultPageLimit,
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("", h.GetAPI)
		api.GET("/topics", h.ListTopics)

		api.GET("/articles", h.ListArticles)
		api.POST("/articles", h.PostArticle)
		api.GET("/articles/:article_id", h.GetArticle)
		api.PATCH("/articles/:article_id", h.PatchArticle)

		api.GET("/articles/:article_id/comments", h.ListComments)
		api.POST("/articles/:article_id/comments", h.PostComment)
		api.PATCH("/comments/:comment_id", h.PatchComment)
		api.DELETE("/comments/:comment_id", h.DeleteComment)

		api.GET("/users", h.ListUsers)
		api.GET("/users/:username", h.GetUser)
	}
}

// corsMiddleware allows any origin when none are configured, otherwise only
// the listed ones.
func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", middleware.HeaderIdempotencyReplayed},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return cors.New(c)
}

// health reports 200 when the database answers a ping and 503 otherwise.
func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// limitBody caps the request body at maxBytes; reads past the cap fail with
// *http.MaxBytesError.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
