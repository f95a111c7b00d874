// Article HTTP handlers.
//
//   - GET   /articles               (filtered, sorted, paginated list)
//   - GET   /articles/{article_id}  (single article with body)
//   - POST  /articles               (create, Idempotency-Key aware)
//   - PATCH /articles/{article_id}  (vote)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/services"
	"github.com/tbourn/go-news-backend/internal/utils"
)

//
// DTOs
//

// PostArticleRequest is the JSON payload for creating an article.
type PostArticleRequest struct {
	Author        string `json:"author"          binding:"required" example:"butter_bridge"`
	Title         string `json:"title"           binding:"required" example:"Living in the shadow of a great man"`
	Body          string `json:"body"            binding:"required" example:"I find this existence challenging"`
	Topic         string `json:"topic"           binding:"required" example:"mitch"`
	ArticleImgURL string `json:"article_img_url" example:"https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg?w=700&h=700"`
}

// PatchVotesRequest is the JSON payload for article and comment votes.
// A pointer keeps inc_votes: 0 distinguishable from a missing property.
type PatchVotesRequest struct {
	IncVotes *int `json:"inc_votes" binding:"required" example:"1"`
}

//
// Handlers
//

// ListArticles godoc
// @ID          listArticles
// @Summary     List articles
// @Description Articles without body, each with comment_count. Unknown topics are a 404;
// @Description known topics without articles return an empty list.
// @Tags        Articles
// @Produce     json
// @Param       topic    query  string  false  "Topic slug"
// @Param       sort_by  query  string  false  "Sort column"  Enums(author,title,article_id,topic,created_at,votes,comment_count)  default(created_at)
// @Param       order    query  string  false  "Sort order"   Enums(asc,desc)  default(desc)
// @Param       limit    query  int     false  "Page size"    minimum(0)  default(10)
// @Param       p        query  int     false  "Page number"  minimum(0)  default(1)
// @Success     200  {object}  map[string][]domain.Article
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "That topic does not exist!"
// @Router      /articles [get]
func (h *Handlers) ListArticles(c *gin.Context) {
	p, err := h.norm.Articles(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	articles, err := h.articles.List(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"articles": articles})
}

// GetArticle godoc
// @ID          getArticle
// @Summary     Get an article
// @Tags        Articles
// @Produce     json
// @Param       article_id  path  int  true  "Article ID"
// @Success     200  {object}  map[string]domain.Article
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid input: expected a number"
// @Failure     404  {object}  handlers.ErrorResponse  "No article with that id!"
// @Router      /articles/{article_id} [get]
func (h *Handlers) GetArticle(c *gin.Context) {
	id, err := utils.ParseID(c.Param("article_id"))
	if err != nil {
		fail(c, err)
		return
	}
	a, err := h.articles.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"article": a})
}

// PostArticle godoc
// @ID          postArticle
// @Summary     Create an article
// @Description Supports safe retries via the Idempotency-Key header.
// @Tags        Articles
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string                        false  "Idempotency key"
// @Param       body             body    handlers.PostArticleRequest  true   "Article"
// @Success     201  {object}  map[string]domain.Article
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /articles [post]
func (h *Handlers) PostArticle(c *gin.Context) {
	ctx := c.Request.Context()

	if id, found := middleware.ReplayOf(c); found {
		if a, err := h.articles.Get(ctx, id); err == nil {
			replayed(c)
			ok(c, http.StatusCreated, gin.H{"addedArticle": a})
			return
		}
	}

	var req PostArticleRequest
	if err := bindJSON(c, &req, apperr.MsgIncompletePost); err != nil {
		fail(c, err)
		return
	}
	a, err := h.articles.Create(ctx, services.NewArticle{
		Author:        req.Author,
		Title:         req.Title,
		Body:          req.Body,
		Topic:         req.Topic,
		ArticleImgURL: req.ArticleImgURL,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.remember(c, a.ArticleID)
	ok(c, http.StatusCreated, gin.H{"addedArticle": a})
}

// PatchArticle godoc
// @ID          patchArticle
// @Summary     Vote on an article
// @Tags        Articles
// @Accept      json
// @Produce     json
// @Param       article_id  path  int                         true  "Article ID"
// @Param       body        body  handlers.PatchVotesRequest  true  "Vote delta"
// @Success     200  {object}  map[string]domain.Article
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "That article does not exist!"
// @Router      /articles/{article_id} [patch]
func (h *Handlers) PatchArticle(c *gin.Context) {
	id, err := utils.ParseID(c.Param("article_id"))
	if err != nil {
		fail(c, err)
		return
	}
	var req PatchVotesRequest
	if err := bindJSON(c, &req, apperr.MsgIncompletePatch); err != nil {
		fail(c, err)
		return
	}
	a, err := h.articles.Vote(c.Request.Context(), id, *req.IncVotes)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"updatedArticle": a})
}
