package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Enforce FKs so cascades actually execute.
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&Topic{}, &User{}, &Article{}, &Comment{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(Topic{}).TableName():       "topics",
		(User{}).TableName():        "users",
		(Article{}).TableName():     "articles",
		(Comment{}).TableName():     "comments",
		(Idempotency{}).TableName(): "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_IndexesAndComputedColumn(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()

	for _, idx := range []string{"idx_articles_author", "idx_articles_topic", "idx_articles_created"} {
		if !m.HasIndex(&Article{}, idx) {
			t.Fatalf("expected index %s on articles", idx)
		}
	}
	if !m.HasIndex(&Comment{}, "idx_comments_article") {
		t.Fatalf("expected index idx_comments_article on comments")
	}
	if !m.HasIndex(&Idempotency{}, "ux_idem_scope_key") {
		t.Fatalf("expected unique index ux_idem_scope_key on idempotency")
	}
	if m.HasColumn(&Article{}, "comment_count") {
		t.Fatalf("comment_count must not be a stored column")
	}
}

func TestMigrations_ForeignKeysPointAtParents(t *testing.T) {
	db := newDomainDB(t)

	ddl := func(table string) string {
		var sql string
		if err := db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&sql).Error; err != nil {
			t.Fatalf("read %s ddl: %v", table, err)
		}
		return sql
	}

	articles, comments := ddl("articles"), ddl("comments")
	if strings.Contains(articles, "REFERENCES `comments`") {
		t.Fatalf("articles must not reference comments:\n%s", articles)
	}
	for _, want := range []string{"REFERENCES `users`", "REFERENCES `topics`"} {
		if !strings.Contains(articles, want) {
			t.Fatalf("articles missing %s:\n%s", want, articles)
		}
	}
	for _, want := range []string{"REFERENCES `articles`", "REFERENCES `users`", "ON DELETE CASCADE"} {
		if !strings.Contains(comments, want) {
			t.Fatalf("comments missing %s:\n%s", want, comments)
		}
	}
}

func TestComments_CascadeWithArticle(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	if err := db.Create(&Topic{Slug: "cats", Description: "meow"}).Error; err != nil {
		t.Fatalf("insert topic: %v", err)
	}
	if err := db.Create(&User{Username: "rogersop", Name: "paul"}).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	a := &Article{Author: "rogersop", Title: "T", Body: "B", Topic: "cats", CreatedAt: now, ArticleImgURL: DefaultArticleImgURL}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("insert article: %v", err)
	}
	if a.ArticleID == 0 {
		t.Fatalf("expected generated article_id")
	}
	c := &Comment{ArticleID: a.ArticleID, Author: "rogersop", Body: "hi", CreatedAt: now}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("insert comment: %v", err)
	}

	if err := db.Delete(&Article{}, a.ArticleID).Error; err != nil {
		t.Fatalf("delete article: %v", err)
	}
	var n int64
	db.Model(&Comment{}).Where("article_id = ?", a.ArticleID).Count(&n)
	if n != 0 {
		t.Fatalf("expected comments to cascade, found %d", n)
	}
}

func TestArticles_RejectUnknownAuthor(t *testing.T) {
	db := newDomainDB(t)
	if err := db.Create(&Topic{Slug: "cats", Description: "meow"}).Error; err != nil {
		t.Fatalf("insert topic: %v", err)
	}
	a := &Article{Author: "nobody", Title: "T", Body: "B", Topic: "cats", CreatedAt: time.Now().UTC()}
	if err := db.Create(a).Error; err == nil {
		t.Fatalf("expected foreign key violation for unknown author")
	}
}

func TestArticle_JSONShape(t *testing.T) {
	a := Article{ArticleID: 1, Author: "a", Title: "t", Topic: "cats", Votes: 3, CommentCount: 2}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["body"]; ok {
		t.Fatalf("empty body should be omitted: %s", b)
	}
	for _, k := range []string{"article_id", "author", "title", "topic", "created_at", "votes", "article_img_url", "comment_count"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing key %q in %s", k, b)
		}
	}
	for _, k := range []string{"User", "TopicRef", "Comments", "user"} {
		if _, ok := m[k]; ok {
			t.Fatalf("association %q must not be serialized", k)
		}
	}
}
