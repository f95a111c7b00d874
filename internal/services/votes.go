package services

import (
	"errors"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// Entity kinds used as metric labels.
const (
	kindArticle = "article"
	kindComment = "comment"
)

// errVoteRange is reported for vote changes the counter cannot represent.
func errVoteRange() error { return apperr.BadRequest(apperr.MsgInvalidNumber) }

// checkVoteDelta rejects an oversized change before any storage access.
func checkVoteDelta(inc int) error {
	if inc > repo.MaxVoteDelta || inc < -repo.MaxVoteDelta {
		return errVoteRange()
	}
	return nil
}

// voteOutcome converts the result of an atomic vote increment into the error
// reported to the caller, if any.
func voteOutcome(kind string, applied bool, current int, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, repo.ErrVoteRange):
		voteRejections.WithLabelValues(kind).Inc()
		return errVoteRange()
	case err != nil:
		return notFoundAs(err, notFoundMsg)
	case !applied:
		voteRejections.WithLabelValues(kind).Inc()
		return errNotPopularEnough(current)
	}
	return nil
}
