// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Article
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an article is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated so the HTTP layer can classify it.
//
// Reads always compute comment_count with a LEFT JOIN on comments grouped by
// article, so the count is never stale.
package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

const (
	articleListColumns = "articles.article_id, articles.author, articles.title, articles.topic, " +
		"articles.created_at, articles.votes, articles.article_img_url, " +
		"COUNT(comments.comment_id) AS comment_count"
	articleDetailColumns = articleListColumns + ", articles.body"
)

// articlesWithCounts starts a query over articles joined to their comments.
func articlesWithCounts(ctx context.Context, db *gorm.DB, columns string) *gorm.DB {
	return db.WithContext(ctx).
		Model(&domain.Article{}).
		Select(columns).
		Joins("LEFT JOIN comments ON comments.article_id = articles.article_id").
		Group("articles.article_id")
}

// GetArticle fetches a single article, body included, with its comment_count.
func GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error) {
	var a domain.Article
	err := articlesWithCounts(ctx, db, articleDetailColumns).
		Where("articles.article_id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListArticles returns one page of articles without bodies. An empty topic
// disables the filter. sortColumn must be a trusted column expression and
// desc selects descending order; article_id breaks ties in the same direction.
func ListArticles(ctx context.Context, db *gorm.DB, topic, sortColumn string, desc bool, offset, limit int) ([]domain.Article, error) {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	q := articlesWithCounts(ctx, db, articleListColumns)
	if topic != "" {
		q = q.Where("articles.topic = ?", topic)
	}
	out := []domain.Article{}
	err := q.
		Order(fmt.Sprintf("%s %s, articles.article_id %s", sortColumn, dir, dir)).
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CreateArticle inserts a new article with zero votes and a UTC timestamp.
// The returned value carries the generated article_id.
func CreateArticle(ctx context.Context, db *gorm.DB, author, title, body, topic, imgURL string) (*domain.Article, error) {
	a := &domain.Article{
		Author:        author,
		Title:         title,
		Body:          body,
		Topic:         topic,
		CreatedAt:     time.Now().UTC(),
		ArticleImgURL: imgURL,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// IncrementArticleVotes applies delta to an article's votes with a floor of
// zero. See incrementVotes for the result semantics.
func IncrementArticleVotes(ctx context.Context, db *gorm.DB, id int64, delta int) (applied bool, current int, err error) {
	return incrementVotes(ctx, db, &domain.Article{}, "article_id", id, delta)
}
