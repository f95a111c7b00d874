//go:build integration

package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-news-backend/internal/seed"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("nc_news_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := Open(DriverPostgres, connStr, 5)
	s.Require().NoError(err)
	db.Logger = logger.Default.LogMode(logger.Silent)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	s.Require().NoError(seed.Drop(s.db))
	s.Require().NoError(AutoMigrate(s.db))
	_, err := seed.Apply(s.ctx, s.db, seed.MustDefault())
	s.Require().NoError(err)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestGetArticle_GroupedCount() {
	a, err := GetArticle(s.ctx, s.db, 1)
	s.Require().NoError(err)
	s.Equal(6, a.CommentCount)
	s.Equal("I find this existence challenging", a.Body)

	_, err = GetArticle(s.ctx, s.db, 999)
	s.ErrorIs(err, ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestListArticles_SortByCommentCount() {
	out, err := ListArticles(s.ctx, s.db, "", "comment_count", true, 0, 3)
	s.Require().NoError(err)
	s.Require().Len(out, 3)
	s.Equal(int64(1), out[0].ArticleID)
	s.Equal(int64(3), out[1].ArticleID)
	s.Equal(int64(5), out[2].ArticleID)
	s.Empty(out[0].Body)
}

func (s *PostgresIntegrationSuite) TestListArticles_TopicFilter() {
	out, err := ListArticles(s.ctx, s.db, "mitch", "articles.votes", false, 0, 10)
	s.Require().NoError(err)
	s.Len(out, 6)
	s.Equal(int64(1), out[len(out)-1].ArticleID)
}

func (s *PostgresIntegrationSuite) TestCreateArticle_SequenceContinues() {
	a, err := CreateArticle(s.ctx, s.db, "lurker", "t", "b", "paper", "http://img")
	s.Require().NoError(err)
	s.Equal(int64(8), a.ArticleID)
}

func (s *PostgresIntegrationSuite) TestIncrementVotes_Floor() {
	applied, current, err := IncrementCommentVotes(s.ctx, s.db, 1, -100)
	s.Require().NoError(err)
	s.False(applied)
	s.Equal(16, current)

	applied, _, err = IncrementArticleVotes(s.ctx, s.db, 1, -100)
	s.Require().NoError(err)
	s.True(applied)

	_, _, err = IncrementArticleVotes(s.ctx, s.db, 999, 1)
	s.ErrorIs(err, ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestDeleteComment() {
	s.Require().NoError(DeleteComment(s.ctx, s.db, 9))
	s.ErrorIs(DeleteComment(s.ctx, s.db, 9), ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestIdempotency_Duplicate() {
	_, err := CreateIdempotency(s.ctx, s.db, "POST /api/articles", "k", 1, 201, time.Hour)
	s.Require().NoError(err)
	_, err = CreateIdempotency(s.ctx, s.db, "POST /api/articles", "k", 2, 201, time.Hour)
	s.ErrorIs(err, ErrDuplicate)
}

// The HTTP error classifier relies on these SQLSTATE codes surfacing intact.
func (s *PostgresIntegrationSuite) TestErrorCodes() {
	var n int64
	err := s.db.WithContext(s.ctx).Raw("SELECT COUNT(*) FROM articles WHERE article_id = ?::int", "banana").Scan(&n).Error
	var pgErr *pgconn.PgError
	s.Require().True(errors.As(err, &pgErr), "got %v", err)
	s.Equal("22P02", pgErr.Code)

	err = s.db.WithContext(s.ctx).Exec("INSERT INTO comments (article_id, author, body, votes, created_at) VALUES (1, 'lurker', NULL, 0, now())").Error
	s.Require().True(errors.As(err, &pgErr), "got %v", err)
	s.Equal("23502", pgErr.Code)
}
