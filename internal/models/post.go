// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in the Ripple application.
//
// LikesCount, CommentsCount and SavedCount are persisted derived counters.
// They are recomputed explicitly in the repository write paths (never via
// GORM hooks) so that likes_count always equals the number of like rows,
// saved_count the number of saved_posts rows, and comments_count the number
// of top-level comments.
type Post struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user"`
	Content       string `gorm:"type:text;not null" json:"content"`
	MediaURL      string `json:"media_url,omitempty"`
	LikesCount    int    `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int    `gorm:"not null;default:0" json:"comments_count"`
	SavedCount    int    `gorm:"not null;default:0" json:"saved_count"`
	// Liked and Saved indicate whether the current requesting user liked or
	// saved this post; computed at query time, never persisted.
	Liked     bool           `gorm:"->" json:"liked"`
	Saved     bool           `gorm:"->" json:"saved"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
