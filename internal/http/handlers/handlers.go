// Package handlers exposes the REST endpoints of the news API.
//
// Handlers are transport-thin: they parse and validate path, query and body
// input, call the application services and shape the result under a single
// top-level key. All failures go through fail, which owns the mapping from
// error to status and message.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/endpoints"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/query"
	"github.com/tbourn/go-news-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// TopicService lists topics.
type TopicService interface {
	List(ctx context.Context) ([]domain.Topic, error)
}

// ArticleService reads and writes articles.
type ArticleService interface {
	Get(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context, p query.ArticleListParams) ([]domain.Article, error)
	Create(ctx context.Context, in services.NewArticle) (*domain.Article, error)
	Vote(ctx context.Context, id int64, inc int) (*domain.Article, error)
}

// CommentService reads and writes comments.
type CommentService interface {
	ListForArticle(ctx context.Context, articleID int64, p query.PageParams) ([]domain.Comment, error)
	Get(ctx context.Context, id int64) (*domain.Comment, error)
	Create(ctx context.Context, articleID int64, username, body string) (*domain.Comment, error)
	Vote(ctx context.Context, id int64, inc int) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// UserService reads users.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
}

// IdempotencyStore records resources created under an Idempotency-Key.
type IdempotencyStore interface {
	Remember(ctx context.Context, scope, key string, resourceID int64, status int) error
}

//
// Handler wiring
//

// Deps carries everything Handlers needs. Idempotency may be nil.
type Deps struct {
	Topics       TopicService
	Articles     ArticleService
	Comments     CommentService
	Users        UserService
	Idempotency  IdempotencyStore
	Catalog      *endpoints.Catalog
	DefaultLimit int
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	topics   TopicService
	articles ArticleService
	comments CommentService
	users    UserService
	idem     IdempotencyStore
	catalog  *endpoints.Catalog
	norm     query.Normalizer
}

// New constructs Handlers from d.
func New(d Deps) *Handlers {
	return &Handlers{
		topics:   d.Topics,
		articles: d.Articles,
		comments: d.Comments,
		users:    d.Users,
		idem:     d.Idempotency,
		catalog:  d.Catalog,
		norm:     query.Normalizer{DefaultLimit: d.DefaultLimit},
	}
}

// bindJSON decodes the request body into dst. Failed binding-tag checks and
// an empty body report missingMsg; other decode errors are returned raw.
func bindJSON(c *gin.Context, dst any, missingMsg string) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
		return apperr.BadRequest(missingMsg)
	}
	return err
}

// remember records the created resource under the request's Idempotency-Key.
// Failures are logged; the client already has its 201.
func (h *Handlers) remember(c *gin.Context, resourceID int64) {
	key, found := middleware.GetIdempotencyKey(c)
	if !found || h.idem == nil {
		return
	}
	if err := h.idem.Remember(c.Request.Context(), middleware.Scope(c), key, resourceID, http.StatusCreated); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("key", key).Msg("idempotency record failed")
	}
}

// replayed marks the response as served from an earlier request.
func replayed(c *gin.Context) {
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
}
