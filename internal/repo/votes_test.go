package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-news-backend/internal/domain"
)

func TestIncrementArticleVotes(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	applied, _, err := IncrementArticleVotes(ctx, db, 1, 1)
	if err != nil || !applied {
		t.Fatalf("increment: applied=%v err=%v", applied, err)
	}
	a, _ := GetArticle(ctx, db, 1)
	if a.Votes != 101 {
		t.Fatalf("votes = %d; want 101", a.Votes)
	}

	applied, _, err = IncrementArticleVotes(ctx, db, 1, -101)
	if err != nil || !applied {
		t.Fatalf("decrement to zero: applied=%v err=%v", applied, err)
	}

	applied, current, err := IncrementArticleVotes(ctx, db, 1, -1)
	if err != nil {
		t.Fatalf("refused decrement: %v", err)
	}
	if applied || current != 0 {
		t.Fatalf("expected refusal with current=0, got applied=%v current=%d", applied, current)
	}

	applied, _, err = IncrementArticleVotes(ctx, db, 1, 0)
	if err != nil || !applied {
		t.Fatalf("zero delta on existing row must apply: applied=%v err=%v", applied, err)
	}
}

func TestIncrementVotes_NotFound(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	if _, _, err := IncrementArticleVotes(ctx, db, 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("article: expected ErrNotFound, got %v", err)
	}
	if _, _, err := IncrementCommentVotes(ctx, db, 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("comment: expected ErrNotFound, got %v", err)
	}
}

func TestIncrementCommentVotes_Floor(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	applied, current, err := IncrementCommentVotes(ctx, db, 1, -17)
	if err != nil || applied || current != 16 {
		t.Fatalf("expected refusal with current=16, got applied=%v current=%d err=%v", applied, current, err)
	}
	c, _ := GetComment(ctx, db, 1)
	if c.Votes != 16 {
		t.Fatalf("refused update must not persist, votes=%d", c.Votes)
	}

	applied, _, err = IncrementCommentVotes(ctx, db, 1, -16)
	if err != nil || !applied {
		t.Fatalf("decrement to zero: applied=%v err=%v", applied, err)
	}
}

func TestIncrementVotes_Range(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	for _, delta := range []int{MaxVoteDelta + 1, -MaxVoteDelta - 1} {
		if _, _, err := IncrementArticleVotes(ctx, db, 1, delta); !errors.Is(err, ErrVoteRange) {
			t.Fatalf("delta %d: expected ErrVoteRange, got %v", delta, err)
		}
	}

	if err := db.Model(&domain.Article{}).Where("article_id = ?", 1).UpdateColumn("votes", MaxVotes).Error; err != nil {
		t.Fatalf("prime votes: %v", err)
	}
	if _, _, err := IncrementArticleVotes(ctx, db, 1, 1); !errors.Is(err, ErrVoteRange) {
		t.Fatalf("increment past ceiling: expected ErrVoteRange, got %v", err)
	}
	a, err := GetArticle(ctx, db, 1)
	if err != nil || a.Votes != MaxVotes {
		t.Fatalf("row must stay readable at the ceiling: votes=%v err=%v", a, err)
	}

	applied, _, err := IncrementArticleVotes(ctx, db, 1, -1)
	if err != nil || !applied {
		t.Fatalf("decrement below ceiling: applied=%v err=%v", applied, err)
	}
	if applied, _, err := IncrementCommentVotes(ctx, db, 1, MaxVoteDelta); err != nil || !applied {
		t.Fatalf("largest delta must apply: applied=%v err=%v", applied, err)
	}
}
