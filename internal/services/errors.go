// Package services defines the business logic for topics, articles, comments
// and users. This file centralizes the client-facing failure messages so that
// every path reporting the same condition uses the same wording.
//
// Services report expected failures as *apperr.Error values; anything else
// (storage or context errors) is returned raw for the HTTP error classifier.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// Not-found messages reported by the existence checker and data accessors.
const (
	MsgArticleNotFound = "That article does not exist!"
	MsgCommentNotFound = "That comment does not exist!"
	MsgUserNotFound    = "That username/author does not exist!"
	MsgTopicNotFound   = "That topic does not exist!"
	MsgNoArticleWithID = "No article with that id!"
)

// msgNotPopularEnough is formatted with the current vote count.
const msgNotPopularEnough = "We're not popular enough to subtract that amount! We only have %d votes!"

// errNotPopularEnough reports a vote change that would make the count negative.
func errNotPopularEnough(current int) error {
	return apperr.BadRequest(fmt.Sprintf(msgNotPopularEnough, current))
}

// notFoundAs maps repo.ErrNotFound to a 404 with msg and passes other errors
// through unchanged.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
