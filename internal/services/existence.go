package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// Checker answers "does this entity exist?" for the four entity kinds. Each
// method returns nil when a row exists, a 404 *apperr.Error naming the entity
// when none does, and the raw storage error otherwise.
//
// Methods are safe to run concurrently; services combine them with
// errgroup so the first failure cancels the remaining checks.
type Checker struct {
	DB *gorm.DB
}

// ArticleExists checks an article id.
func (c Checker) ArticleExists(ctx context.Context, id int64) error {
	ok, err := repo.ArticleExists(ctx, c.DB, id)
	return found(ok, err, MsgArticleNotFound)
}

// CommentExists checks a comment id.
func (c Checker) CommentExists(ctx context.Context, id int64) error {
	ok, err := repo.CommentExists(ctx, c.DB, id)
	return found(ok, err, MsgCommentNotFound)
}

// UserExists checks a username.
func (c Checker) UserExists(ctx context.Context, username string) error {
	ok, err := repo.UserExists(ctx, c.DB, username)
	return found(ok, err, MsgUserNotFound)
}

// TopicExists checks a topic slug.
func (c Checker) TopicExists(ctx context.Context, slug string) error {
	ok, err := repo.TopicExists(ctx, c.DB, slug)
	return found(ok, err, MsgTopicNotFound)
}

func found(ok bool, err error, msg string) error {
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(msg)
	}
	return nil
}
