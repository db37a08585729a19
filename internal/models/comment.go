// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. A nil ParentID marks a top-level
// comment; replies reference their parent comment and carry a nesting level
// of exactly parent.Level+1. A comment always belongs to the same post as
// its parent.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	Level    int    `gorm:"not null;default:0" json:"level"`
	// LikesCount is a persisted derived counter kept equal to the number of
	// comment_likes rows; recomputed explicitly on every like toggle.
	LikesCount int            `gorm:"not null;default:0" json:"likes_count"`
	Liked      bool           `gorm:"->" json:"liked"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
