package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// TopicService lists topics.
type TopicService struct {
	DB *gorm.DB
}

// List returns every topic.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	return repo.ListTopics(ctx, s.DB)
}

// UserService reads users.
type UserService struct {
	DB *gorm.DB
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return repo.ListUsers(ctx, s.DB)
}

// Get returns one user or a 404 "That username/author does not exist!".
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, username)
	if err != nil {
		return nil, notFoundAs(err, MsgUserNotFound)
	}
	return u, nil
}
