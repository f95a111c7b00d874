package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/events"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/seed"
)

// ---------- test helpers ----------

func newSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if _, err := seed.Apply(context.Background(), db, seed.MustDefault()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Keep the shared in-memory database alive for the whole test.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// dbRepo is ArticleRepo over the real repo functions.
type dbRepo struct{}

func (dbRepo) GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error) {
	return repo.GetArticle(ctx, db, id)
}

func (dbRepo) ListArticles(ctx context.Context, db *gorm.DB, topic, sortColumn string, desc bool, offset, limit int) ([]domain.Article, error) {
	return repo.ListArticles(ctx, db, topic, sortColumn, desc, offset, limit)
}

func (dbRepo) CreateArticle(ctx context.Context, db *gorm.DB, author, title, body, topic, imgURL string) (*domain.Article, error) {
	return repo.CreateArticle(ctx, db, author, title, body, topic, imgURL)
}

func (dbRepo) IncrementArticleVotes(ctx context.Context, db *gorm.DB, id int64, delta int) (bool, int, error) {
	return repo.IncrementArticleVotes(ctx, db, id, delta)
}

// stubRepo wraps dbRepo, counting list calls and optionally failing.
type stubRepo struct {
	dbRepo
	mu        sync.Mutex
	listCalls int
	listErr   error
	voteErr   error
}

func (s *stubRepo) ListArticles(ctx context.Context, db *gorm.DB, topic, sortColumn string, desc bool, offset, limit int) ([]domain.Article, error) {
	s.mu.Lock()
	s.listCalls++
	s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.dbRepo.ListArticles(ctx, db, topic, sortColumn, desc, offset, limit)
}

func (s *stubRepo) IncrementArticleVotes(ctx context.Context, db *gorm.DB, id int64, delta int) (bool, int, error) {
	if s.voteErr != nil {
		return false, 0, s.voteErr
	}
	return s.dbRepo.IncrementArticleVotes(ctx, db, id, delta)
}

// recorder is an in-memory events.Publisher.
type recorder struct {
	mu   sync.Mutex
	got  []events.Event
	fail bool
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("broker down")
	}
	r.got = append(r.got, e)
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.got))
	for i, e := range r.got {
		out[i] = e.Type
	}
	return out
}

// wantAppErr asserts err is an *apperr.Error with the given status and message.
func wantAppErr(t *testing.T, err error, status int, msg string) {
	t.Helper()
	e, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected *apperr.Error, got %T: %v", err, err)
	}
	if e.Status != status || e.Message != msg {
		t.Fatalf("got %d %q; want %d %q", e.Status, e.Message, status, msg)
	}
}
