// Package domain defines the persistence models for topics, articles,
// comments and users. These types are mapped with GORM and double as the JSON
// shapes returned by the HTTP layer.
package domain

import "time"

// DefaultArticleImgURL is stored for every article created without an image.
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Topic is a subject category identified by its slug. Topics are seeded
// externally and only read by the API.
type Topic struct {
	Slug        string `json:"slug"        gorm:"column:slug;type:varchar(255);primaryKey"`
	Description string `json:"description" gorm:"column:description;type:varchar(255);not null"`
}

// TableName returns the database table name for Topic.
func (Topic) TableName() string { return "topics" }

// User is a registered account. Users author articles and comments; the API
// never creates or modifies them.
type User struct {
	Username  string `json:"username"   gorm:"column:username;type:varchar(255);primaryKey"`
	Name      string `json:"name"       gorm:"column:name;type:varchar(255);not null"`
	AvatarURL string `json:"avatar_url" gorm:"column:avatar_url;type:varchar(1000)"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Article is a published piece of writing.
//
// Fields:
//   - ArticleID: storage-generated identifier.
//   - Author: username of an existing user.
//   - Topic: slug of an existing topic.
//   - Body: omitted from list responses, which do not select it.
//   - Votes: net vote count, never negative.
//   - CommentCount: computed at read time by joining comments; never stored.
type Article struct {
	ArticleID     int64     `json:"article_id"      gorm:"column:article_id;primaryKey;autoIncrement"`
	Author        string    `json:"author"          gorm:"column:author;type:varchar(255);not null;index:idx_articles_author"`
	Title         string    `json:"title"           gorm:"column:title;type:varchar(255);not null"`
	Body          string    `json:"body,omitempty"  gorm:"column:body;type:text;not null"`
	Topic         string    `json:"topic"           gorm:"column:topic;type:varchar(255);not null;index:idx_articles_topic"`
	CreatedAt     time.Time `json:"created_at"      gorm:"column:created_at;not null;index:idx_articles_created"`
	Votes         int       `json:"votes"           gorm:"column:votes;not null;default:0"`
	ArticleImgURL string    `json:"article_img_url" gorm:"column:article_img_url;type:varchar(1000)"`
	CommentCount  int       `json:"comment_count"   gorm:"column:comment_count;->;-:migration"`

	User     User      `json:"-" gorm:"foreignKey:Author;references:Username"`
	TopicRef Topic     `json:"-" gorm:"foreignKey:Topic;references:Slug"`
	Comments []Comment `json:"-" gorm:"foreignKey:ArticleID;references:ArticleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Article.
func (Article) TableName() string { return "articles" }

// Comment is a user's remark on an article. Comments are removed together
// with their article.
type Comment struct {
	CommentID int64     `json:"comment_id" gorm:"column:comment_id;primaryKey;autoIncrement"`
	ArticleID int64     `json:"article_id" gorm:"column:article_id;not null;index:idx_comments_article,priority:1"`
	Author    string    `json:"author"     gorm:"column:author;type:varchar(255);not null"`
	Body      string    `json:"body"       gorm:"column:body;type:text;not null"`
	Votes     int       `json:"votes"      gorm:"column:votes;not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;index:idx_comments_article,priority:2"`

	User User `json:"-" gorm:"foreignKey:Author;references:Username"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }
