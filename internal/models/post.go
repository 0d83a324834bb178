// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringList is a []string stored as a JSON column.
type StringList []string

// ValidCategories is the fixed set of categories a post may carry.
var ValidCategories = []string{
	"General",
	"Technology",
	"Lifestyle",
	"Business",
	"Design",
	"Sports",
	"Entertainment",
}

// IsValidCategory reports whether cat is one of the fixed categories.
func IsValidCategory(cat string) bool {
	for _, c := range ValidCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// Post represents a blog post.
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Slug          string     `gorm:"uniqueIndex;not null" json:"slug"`
	AuthorID      uint       `gorm:"not null;index" json:"author_id"`
	Author        User       `gorm:"foreignKey:AuthorID" json:"author"`
	Categories    StringList `gorm:"type:jsonb;serializer:json" json:"categories"`
	Tags          StringList `gorm:"type:jsonb;serializer:json" json:"tags"`
	CoverImageURL string     `json:"cover_image_url"`
	// ReactionsCount is persisted and re-derived from the reactions table
	// after every reaction mutation.
	ReactionsCount int `gorm:"not null;default:0" json:"reactions_count"`
	// CommentsCount is persisted and adjusted atomically on comment
	// create/delete; the reconcile sweep repairs any drift.
	CommentsCount int            `gorm:"not null;default:0" json:"comments_count"`
	IsPublished   bool           `gorm:"not null;default:true" json:"is_published"`
	Reactions     []Reaction     `gorm:"foreignKey:PostID" json:"reactions,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Slugify derives a URL-safe slug from a post title: lower-case, runs of
// non-alphanumeric characters collapse into a single hyphen, leading and
// trailing hyphens trimmed. "Hello, World!" -> "hello-world".
func Slugify(title string) string {
	lower := strings.ToLower(title)
	var b strings.Builder
	prevHyphen := false
	for _, r := range lower {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
