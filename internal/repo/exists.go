package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// ArticleExists reports whether an article with the given id is stored.
func ArticleExists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	return exists(ctx, db, &domain.Article{}, "article_id = ?", id)
}

// CommentExists reports whether a comment with the given id is stored.
func CommentExists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	return exists(ctx, db, &domain.Comment{}, "comment_id = ?", id)
}

// UserExists reports whether a user with the given username is stored.
func UserExists(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	return exists(ctx, db, &domain.User{}, "username = ?", username)
}

// TopicExists reports whether a topic with the given slug is stored.
func TopicExists(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	return exists(ctx, db, &domain.Topic{}, "slug = ?", slug)
}

func exists(ctx context.Context, db *gorm.DB, model any, cond string, arg any) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where(cond, arg).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
