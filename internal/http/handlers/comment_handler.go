// Comment HTTP handlers.
//
//   - GET    /articles/{article_id}/comments  (paginated, newest first)
//   - POST   /articles/{article_id}/comments  (create, Idempotency-Key aware)
//   - PATCH  /comments/{comment_id}           (vote)
//   - DELETE /comments/{comment_id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/utils"
)

// PostCommentRequest is the JSON payload for adding a comment.
type PostCommentRequest struct {
	Username string `json:"username" binding:"required" example:"butter_bridge"`
	Body     string `json:"body"     binding:"required" example:"Great read!"`
}

// ListComments godoc
// @ID          listComments
// @Summary     List an article's comments
// @Tags        Comments
// @Produce     json
// @Param       article_id  path   int  true   "Article ID"
// @Param       limit       query  int  false  "Page size"    minimum(0)  default(10)
// @Param       p           query  int  false  "Page number"  minimum(0)  default(1)
// @Success     200  {object}  map[string][]domain.Comment
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "That article does not exist!"
// @Router      /articles/{article_id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	id, err := utils.ParseID(c.Param("article_id"))
	if err != nil {
		fail(c, err)
		return
	}
	p, err := h.norm.Page(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	comments, err := h.comments.ListForArticle(c.Request.Context(), id, p)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"comments": comments})
}

// PostComment godoc
// @ID          postComment
// @Summary     Add a comment to an article
// @Description Supports safe retries via the Idempotency-Key header.
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string                        false  "Idempotency key"
// @Param       article_id       path    int                           true   "Article ID"
// @Param       body             body    handlers.PostCommentRequest  true   "Comment"
// @Success     201  {object}  map[string]domain.Comment
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /articles/{article_id}/comments [post]
func (h *Handlers) PostComment(c *gin.Context) {
	ctx := c.Request.Context()
	articleID, err := utils.ParseID(c.Param("article_id"))
	if err != nil {
		fail(c, err)
		return
	}

	if id, found := middleware.ReplayOf(c); found {
		if cm, err := h.comments.Get(ctx, id); err == nil {
			replayed(c)
			ok(c, http.StatusCreated, gin.H{"addedComment": cm})
			return
		}
	}

	var req PostCommentRequest
	if err := bindJSON(c, &req, apperr.MsgIncompletePost); err != nil {
		fail(c, err)
		return
	}
	cm, err := h.comments.Create(ctx, articleID, req.Username, req.Body)
	if err != nil {
		fail(c, err)
		return
	}

	h.remember(c, cm.CommentID)
	ok(c, http.StatusCreated, gin.H{"addedComment": cm})
}

// PatchComment godoc
// @ID          patchComment
// @Summary     Vote on a comment
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       comment_id  path  int                         true  "Comment ID"
// @Param       body        body  handlers.PatchVotesRequest  true  "Vote delta"
// @Success     200  {object}  map[string]domain.Comment
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "That comment does not exist!"
// @Router      /comments/{comment_id} [patch]
func (h *Handlers) PatchComment(c *gin.Context) {
	id, err := utils.ParseID(c.Param("comment_id"))
	if err != nil {
		fail(c, err)
		return
	}
	var req PatchVotesRequest
	if err := bindJSON(c, &req, apperr.MsgIncompletePatch); err != nil {
		fail(c, err)
		return
	}
	cm, err := h.comments.Vote(c.Request.Context(), id, *req.IncVotes)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"updatedComment": cm})
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Tags        Comments
// @Param       comment_id  path  int  true  "Comment ID"
// @Success     204
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "That comment does not exist!"
// @Router      /comments/{comment_id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	id, err := utils.ParseID(c.Param("comment_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	noContent(c)
}
