package repo

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
)

// MaxVoteDelta bounds the size of a single vote change in either direction.
const MaxVoteDelta = math.MaxInt32

// MaxVotes is the largest count a row may hold. Keeping it MaxVoteDelta below
// the integer limit means votes + delta never overflows in SQL.
const MaxVotes = math.MaxInt - MaxVoteDelta

// ErrVoteRange is returned for a delta beyond MaxVoteDelta or one that would
// push the count past MaxVotes.
var ErrVoteRange = errors.New("vote change out of range")

// incrementVotes adds delta to the votes column of the row whose idColumn
// equals id, in a single conditional UPDATE that refuses to take the counter
// below zero or above MaxVotes.
//
// Results:
//   - applied=true: the row was updated.
//   - applied=false, current=n: the row exists but votes+delta would be
//     negative; n is the count observed after the refusal.
//   - ErrVoteRange: delta is too large, or the count would exceed MaxVotes.
//   - ErrNotFound: no row matches id.
func incrementVotes(ctx context.Context, db *gorm.DB, model any, idColumn string, id int64, delta int) (bool, int, error) {
	if delta > MaxVoteDelta || delta < -MaxVoteDelta {
		return false, 0, ErrVoteRange
	}
	res := db.WithContext(ctx).
		Model(model).
		Where(idColumn+" = ? AND votes + ? >= 0 AND votes <= ?", id, delta, MaxVotes-delta).
		UpdateColumn("votes", gorm.Expr("votes + ?", delta))
	if res.Error != nil {
		return false, 0, res.Error
	}
	if res.RowsAffected > 0 {
		return true, 0, nil
	}

	var row struct{ Votes int }
	err := db.WithContext(ctx).
		Model(model).
		Select("votes").
		Where(idColumn+" = ?", id).
		Take(&row).Error
	if err != nil {
		return false, 0, err
	}
	if row.Votes+delta >= 0 {
		return false, 0, ErrVoteRange
	}
	return false, row.Votes, nil
}
