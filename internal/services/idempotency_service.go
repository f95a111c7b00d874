package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/repo"
)

// IdempotencyService records and resolves Idempotency-Key submissions.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
}

// Lookup returns the resource id recorded for (scope, key), if unexpired.
func (s *IdempotencyService) Lookup(ctx context.Context, scope, key string) (int64, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, scope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return rec.ResourceID, true, nil
}

// Remember records the resource created for (scope, key). A concurrent
// request that recorded the same pair first is not an error.
func (s *IdempotencyService) Remember(ctx context.Context, scope, key string, resourceID int64, status int) error {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, scope, key, resourceID, status, ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}
