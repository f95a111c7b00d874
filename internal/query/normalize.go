// Package query turns raw listing query strings into validated parameter
// values. Every rejection happens here, before any storage access, and is
// reported as a 400 *apperr.Error.
package query

import (
	"net/url"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/utils"
)

// Defaults applied when a parameter is absent.
const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "desc"
	DefaultLimit  = 10
	DefaultPage   = 1
)

// Validation messages.
const (
	MsgInvalidSortBy = "invalid sort_by request"
	MsgInvalidOrder  = "invalid order request"
)

// sortColumns maps every accepted sort_by value to the column expression used
// in ORDER BY. Only values from this table ever reach SQL.
var sortColumns = map[string]string{
	"author":        "articles.author",
	"title":         "articles.title",
	"article_id":    "articles.article_id",
	"topic":         "articles.topic",
	"created_at":    "articles.created_at",
	"votes":         "articles.votes",
	"comment_count": "comment_count",
}

// PageParams selects one page of a listing.
type PageParams struct {
	Limit int
	Page  int
}

// Offset is the number of rows skipped before the page starts.
func (p PageParams) Offset() int { return utils.Offset(p.Page, p.Limit) }

// Empty reports whether the page can hold no rows: limit or page is zero, or
// the page starts beyond any representable offset.
func (p PageParams) Empty() bool {
	return p.Limit == 0 || p.Page == 0 || utils.OffsetOverflows(p.Page, p.Limit)
}

// ArticleListParams is the normalized form of GET /api/articles.
type ArticleListParams struct {
	Topic  string // empty: no filter
	SortBy string // key of sortColumns
	Order  string // "asc" or "desc"
	PageParams
}

// SortColumn returns the trusted ORDER BY expression for SortBy.
func (p ArticleListParams) SortColumn() string { return sortColumns[p.SortBy] }

// Desc reports whether results are sorted in descending order.
func (p ArticleListParams) Desc() bool { return p.Order == "desc" }

// Normalizer validates listing parameters. The zero value uses DefaultLimit.
type Normalizer struct {
	DefaultLimit int
}

// Articles validates sort_by, then order, then limit and p, returning the
// first failure.
func (n Normalizer) Articles(v url.Values) (ArticleListParams, error) {
	sortBy := DefaultSortBy
	if v.Has("sort_by") {
		sortBy = v.Get("sort_by")
	}
	if _, ok := sortColumns[sortBy]; !ok {
		return ArticleListParams{}, apperr.BadRequest(MsgInvalidSortBy)
	}

	order := DefaultOrder
	if v.Has("order") {
		// Lowercase, not fold: folding maps U+017F to s.
		order = cases.Lower(language.Und).String(v.Get("order"))
	}
	if order != "asc" && order != "desc" {
		return ArticleListParams{}, apperr.BadRequest(MsgInvalidOrder)
	}

	page, err := n.Page(v)
	if err != nil {
		return ArticleListParams{}, err
	}

	return ArticleListParams{
		Topic:      v.Get("topic"),
		SortBy:     sortBy,
		Order:      order,
		PageParams: page,
	}, nil
}

// Page validates limit and p.
func (n Normalizer) Page(v url.Values) (PageParams, error) {
	def := n.DefaultLimit
	if def <= 0 {
		def = DefaultLimit
	}
	limit, err := utils.QueryInt(v, "limit", def)
	if err != nil {
		return PageParams{}, apperr.BadRequest(apperr.MsgInvalidNumber)
	}
	page, err := utils.QueryInt(v, "p", DefaultPage)
	if err != nil {
		return PageParams{}, apperr.BadRequest(apperr.MsgInvalidNumber)
	}
	return PageParams{Limit: limit, Page: page}, nil
}
