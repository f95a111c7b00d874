// Package seed loads topics, users, articles and comments into an empty
// database. The embedded data set backs local development and the test
// suites; cmd/seed can load any file with the same YAML layout.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

//go:embed data.yaml
var defaultData []byte

// Data is a complete data set.
type Data struct {
	Topics   []domain.Topic `yaml:"topics"`
	Users    []User         `yaml:"users"`
	Articles []Article      `yaml:"articles"`
	Comments []Comment      `yaml:"comments"`
}

// User mirrors domain.User with YAML keys.
type User struct {
	Username  string `yaml:"username"`
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar_url"`
}

// Article is an article row without its generated id.
type Article struct {
	Title         string    `yaml:"title"`
	Topic         string    `yaml:"topic"`
	Author        string    `yaml:"author"`
	Body          string    `yaml:"body"`
	CreatedAt     time.Time `yaml:"created_at"`
	Votes         int       `yaml:"votes"`
	ArticleImgURL string    `yaml:"article_img_url"`
}

// Comment references its parent by 1-based position in Data.Articles.
type Comment struct {
	Article   int       `yaml:"article"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	Votes     int       `yaml:"votes"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Default returns the embedded development data set.
func Default() (Data, error) { return Parse(defaultData) }

// MustDefault is Default for tests and tooling; it panics on a malformed
// embedded file.
func MustDefault() Data {
	d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}

// Parse decodes a YAML data set and checks comment references.
func Parse(b []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Data{}, fmt.Errorf("seed: decode: %w", err)
	}
	for i, c := range d.Comments {
		if c.Article < 1 || c.Article > len(d.Articles) {
			return Data{}, fmt.Errorf("seed: comment %d references article %d of %d", i+1, c.Article, len(d.Articles))
		}
	}
	return d, nil
}

// Tables lists the models seeded by Apply, parents first.
func Tables() []any {
	return []any{&domain.Topic{}, &domain.User{}, &domain.Article{}, &domain.Comment{}}
}

// Drop removes the seeded tables, children first, so a following migration
// starts from empty tables with fresh id sequences.
func Drop(db *gorm.DB) error {
	t := Tables()
	for i := len(t) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(t[i]); err != nil {
			return err
		}
	}
	return nil
}

// Apply inserts d in a single transaction and returns the generated article
// ids in data order.
func Apply(ctx context.Context, db *gorm.DB, d Data) ([]int64, error) {
	ids := make([]int64, 0, len(d.Articles))
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(d.Topics) > 0 {
			if err := tx.Create(&d.Topics).Error; err != nil {
				return fmt.Errorf("seed topics: %w", err)
			}
		}
		for _, u := range d.Users {
			row := domain.User{Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
		}
		for _, a := range d.Articles {
			row := domain.Article{
				Author:        a.Author,
				Title:         a.Title,
				Body:          a.Body,
				Topic:         a.Topic,
				CreatedAt:     a.CreatedAt.UTC(),
				Votes:         a.Votes,
				ArticleImgURL: a.ArticleImgURL,
			}
			if row.ArticleImgURL == "" {
				row.ArticleImgURL = domain.DefaultArticleImgURL
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seed article %q: %w", a.Title, err)
			}
			ids = append(ids, row.ArticleID)
		}
		for _, c := range d.Comments {
			row := domain.Comment{
				ArticleID: ids[c.Article-1],
				Author:    c.Author,
				Body:      c.Body,
				Votes:     c.Votes,
				CreatedAt: c.CreatedAt.UTC(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seed comment on article %d: %w", c.Article, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
