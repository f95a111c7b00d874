// Package services – CommentService
//
// This file implements CommentService: paginated listing of an article's
// comments, creation, vote updates and deletion. Comments are always
// returned newest first.
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
	"github.com/tbourn/go-news-backend/internal/repo"
)

// CommentService provides comment operations.
type CommentService struct {
	DB      *gorm.DB
	Checker Checker
	Events  events.Publisher
}

// NewCommentService constructs a CommentService sharing db with its checker.
func NewCommentService(db *gorm.DB, pub events.Publisher) *CommentService {
	return &CommentService{DB: db, Checker: Checker{DB: db}, Events: pub}
}

func (s *CommentService) tracer() trace.Tracer { return otel.Tracer("services/CommentService") }

// ListForArticle returns one page of an article's comments. The article's
// existence is checked concurrently with the fetch, so an unknown article is
// a 404 while a known article without comments yields an empty slice.
func (s *CommentService) ListForArticle(ctx context.Context, articleID int64, p query.PageParams) ([]domain.Comment, error) {
	ctx, span := s.tracer().Start(ctx, "ListForArticle",
		trace.WithAttributes(
			attribute.Int64("article.id", articleID),
			attribute.Int("limit", p.Limit),
			attribute.Int("page", p.Page),
		),
	)
	defer span.End()

	var out []domain.Comment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Checker.ArticleExists(gctx, articleID) })
	if !p.Empty() {
		g.Go(func() error {
			items, err := repo.ListCommentsPage(gctx, s.DB, articleID, p.Offset(), p.Limit)
			out = items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Comment{}
	}
	return out, nil
}

// Get returns one comment or a 404.
func (s *CommentService) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	c, err := repo.GetComment(ctx, s.DB, id)
	if err != nil {
		return nil, notFoundAs(err, MsgCommentNotFound)
	}
	return c, nil
}

// Create adds a comment by username to an article. The user and the article
// are checked concurrently before anything is written.
func (s *CommentService) Create(ctx context.Context, articleID int64, username, body string) (*domain.Comment, error) {
	ctx, span := s.tracer().Start(ctx, "Create",
		trace.WithAttributes(
			attribute.Int64("article.id", articleID),
			attribute.String("author", username),
		),
	)
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Checker.UserExists(gctx, username) })
	g.Go(func() error { return s.Checker.ArticleExists(gctx, articleID) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c, err := repo.CreateComment(ctx, s.DB, articleID, username, body)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.CommentCreated, c)
	return c, nil
}

// Vote adds inc to the comment's votes and returns the updated comment.
func (s *CommentService) Vote(ctx context.Context, id int64, inc int) (*domain.Comment, error) {
	ctx, span := s.tracer().Start(ctx, "Vote",
		trace.WithAttributes(
			attribute.Int64("comment.id", id),
			attribute.Int("inc_votes", inc),
		),
	)
	defer span.End()

	if err := checkVoteDelta(inc); err != nil {
		return nil, err
	}
	if err := s.Checker.CommentExists(ctx, id); err != nil {
		return nil, err
	}
	applied, current, err := repo.IncrementCommentVotes(ctx, s.DB, id, inc)
	if err := voteOutcome(kindComment, applied, current, err, MsgCommentNotFound); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.CommentVoted, c)
	return c, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer().Start(ctx, "Delete", trace.WithAttributes(attribute.Int64("comment.id", id)))
	defer span.End()

	if err := s.Checker.CommentExists(ctx, id); err != nil {
		return err
	}
	if err := repo.DeleteComment(ctx, s.DB, id); err != nil {
		return notFoundAs(err, MsgCommentNotFound)
	}

	publish(ctx, s.Events, events.CommentDeleted, map[string]int64{"comment_id": id})
	return nil
}
