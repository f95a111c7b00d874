// Package services – ArticleService
//
// This file implements ArticleService, which owns reads and writes of
// articles: single fetch, filtered and sorted listing, creation and vote
// updates. Existence checks that gate a request run concurrently with each
// other, or with the fetch they guard, and the first failure wins.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// carry the article id or listing parameters where applicable.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/events"
	"github.com/tbourn/go-news-backend/internal/query"
)

// ArticleRepo defines the repository contract required by ArticleService.
type ArticleRepo interface {
	// GetArticle fetches one article with body and comment_count.
	GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error)

	// ListArticles returns one page of articles with comment_count.
	ListArticles(ctx context.Context, db *gorm.DB, topic, sortColumn string, desc bool, offset, limit int) ([]domain.Article, error)

	// CreateArticle inserts a new article.
	CreateArticle(ctx context.Context, db *gorm.DB, author, title, body, topic, imgURL string) (*domain.Article, error)

	// IncrementArticleVotes applies a vote delta with a floor of zero.
	IncrementArticleVotes(ctx context.Context, db *gorm.DB, id int64, delta int) (bool, int, error)
}

// NewArticle carries the fields of an article submission.
type NewArticle struct {
	Author        string
	Title         string
	Body          string
	Topic         string
	ArticleImgURL string // empty selects domain.DefaultArticleImgURL
}

// ArticleService provides article operations.
type ArticleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the article repository used by this service.
	Repo ArticleRepo
	// Checker gates requests on referenced entities existing.
	Checker Checker
	// Events receives article.created and article.voted.
	Events events.Publisher
}

// NewArticleService constructs an ArticleService sharing db with its checker.
func NewArticleService(db *gorm.DB, r ArticleRepo, pub events.Publisher) *ArticleService {
	return &ArticleService{DB: db, Repo: r, Checker: Checker{DB: db}, Events: pub}
}

func (s *ArticleService) tracer() trace.Tracer { return otel.Tracer("services/ArticleService") }

// Get returns one article or a 404 "No article with that id!".
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	ctx, span := s.tracer().Start(ctx, "Get", trace.WithAttributes(attribute.Int64("article.id", id)))
	defer span.End()

	a, err := s.Repo.GetArticle(ctx, s.DB, id)
	if err != nil {
		return nil, notFoundAs(err, MsgNoArticleWithID)
	}
	return a, nil
}

// List returns one page of articles. When a topic filter is given, its
// existence is checked concurrently with the fetch; an existing topic with no
// articles yields an empty slice. An empty page skips the fetch entirely.
func (s *ArticleService) List(ctx context.Context, p query.ArticleListParams) ([]domain.Article, error) {
	ctx, span := s.tracer().Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("topic", p.Topic),
			attribute.String("sort_by", p.SortBy),
			attribute.String("order", p.Order),
			attribute.Int("limit", p.Limit),
			attribute.Int("page", p.Page),
		),
	)
	defer span.End()

	var out []domain.Article
	g, gctx := errgroup.WithContext(ctx)
	if p.Topic != "" {
		g.Go(func() error { return s.Checker.TopicExists(gctx, p.Topic) })
	}
	if !p.Empty() {
		g.Go(func() error {
			items, err := s.Repo.ListArticles(gctx, s.DB, p.Topic, p.SortColumn(), p.Desc(), p.Offset(), p.Limit)
			out = items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Article{}
	}
	return out, nil
}

// Create stores a new article after confirming its author and topic exist,
// and returns it with comment_count computed like any other read.
func (s *ArticleService) Create(ctx context.Context, in NewArticle) (*domain.Article, error) {
	ctx, span := s.tracer().Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("author", in.Author),
			attribute.String("topic", in.Topic),
		),
	)
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Checker.UserExists(gctx, in.Author) })
	g.Go(func() error { return s.Checker.TopicExists(gctx, in.Topic) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	img := in.ArticleImgURL
	if img == "" {
		img = domain.DefaultArticleImgURL
	}
	created, err := s.Repo.CreateArticle(ctx, s.DB, in.Author, in.Title, in.Body, in.Topic, img)
	if err != nil {
		return nil, err
	}
	a, err := s.Repo.GetArticle(ctx, s.DB, created.ArticleID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.ArticleCreated, a)
	return a, nil
}

// Vote adds inc to the article's votes and returns the updated article.
// A change that would leave the count negative is rejected whole.
func (s *ArticleService) Vote(ctx context.Context, id int64, inc int) (*domain.Article, error) {
	ctx, span := s.tracer().Start(ctx, "Vote",
		trace.WithAttributes(
			attribute.Int64("article.id", id),
			attribute.Int("inc_votes", inc),
		),
	)
	defer span.End()

	if err := checkVoteDelta(inc); err != nil {
		return nil, err
	}
	if err := s.Checker.ArticleExists(ctx, id); err != nil {
		return nil, err
	}
	applied, current, err := s.Repo.IncrementArticleVotes(ctx, s.DB, id, inc)
	if err := voteOutcome(kindArticle, applied, current, err, MsgArticleNotFound); err != nil {
		return nil, err
	}
	a, err := s.Repo.GetArticle(ctx, s.DB, id)
	if err != nil {
		return nil, notFoundAs(err, MsgArticleNotFound)
	}

	publish(ctx, s.Events, events.ArticleVoted, a)
	return a, nil
}
