// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// CreateComment inserts a comment with zero votes and a UTC timestamp.
func CreateComment(ctx context.Context, db *gorm.DB, articleID int64, author, body string) (*domain.Comment, error) {
	c := &domain.Comment{
		ArticleID: articleID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComment fetches a single comment by id or returns ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id int64) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("comment_id = ?", id).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCommentsPage returns a page of an article's comments, newest first
// (created_at DESC, comment_id DESC).
func ListCommentsPage(ctx context.Context, db *gorm.DB, articleID int64, offset, limit int) ([]domain.Comment, error) {
	out := []domain.Comment{}
	err := db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at DESC, comment_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteComment removes a comment by id. It returns ErrNotFound when no row
// was deleted.
func DeleteComment(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Where("comment_id = ?", id).Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementCommentVotes applies delta to a comment's votes with a floor of
// zero. See incrementVotes for the result semantics.
func IncrementCommentVotes(ctx context.Context, db *gorm.DB, id int64, delta int) (applied bool, current int, err error) {
	return incrementVotes(ctx, db, &domain.Comment{}, "comment_id", id, delta)
}
