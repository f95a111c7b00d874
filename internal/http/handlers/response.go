// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by every endpoint. Success
// bodies wrap their payload under a single resource key; every failure body
// is exactly {"msg": "<string>"}.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{ "msg": "That topic does not exist!" }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable message, safe to show to users.
	Msg string `json:"msg" example:"That article does not exist!"`
}

// fail classifies err, aborts the request with the resulting status and
// message, and logs server-side failures with the request-scoped logger.
func fail(c *gin.Context, err error) {
	e := classify(err)
	if e.Status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Err(err).
			Int("status", e.Status).
			Msg("api error")
	}
	c.AbortWithStatusJSON(e.Status, ErrorResponse{Msg: e.Message})
}

// Fail is the exported variant of fail for router-level fallbacks.
func Fail(c *gin.Context, err error) { fail(c, err) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes 204 with no body.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
