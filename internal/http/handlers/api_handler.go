package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAPI godoc
// @ID          getApi
// @Summary     Describe the API
// @Description Returns every available endpoint with its queries and an example response.
// @Tags        Meta
// @Produce     json
// @Success     200  {object}  map[string]any
// @Router      / [get]
func (h *Handlers) GetAPI(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"endpoints": h.catalog})
}

// ListTopics godoc
// @ID          listTopics
// @Summary     List topics
// @Tags        Topics
// @Produce     json
// @Success     200  {object}  map[string][]domain.Topic
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /topics [get]
func (h *Handlers) ListTopics(c *gin.Context) {
	topics, err := h.topics.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"topics": topics})
}
