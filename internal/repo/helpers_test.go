package repo

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-news-backend/internal/seed"
)

// newTestDB opens a unique in-memory database per test with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// newSeededDB returns a database loaded with the default data set.
func newSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	if _, err := seed.Apply(context.Background(), db, seed.MustDefault()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}
