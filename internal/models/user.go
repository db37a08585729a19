// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// User represents an account. Email and Nickname are stored lowercase and
// unique; the password hash never serializes.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Nickname       string         `gorm:"uniqueIndex;not null" json:"nickname"`
	ProfilePicture string         `json:"profile_picture"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// DefaultProfilePicture returns the generated avatar URL used when a new
// account has not uploaded a picture.
func DefaultProfilePicture(nickname string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/identicon/svg?seed=%s", nickname)
}

// PublicProfile is the view of a user exposed to other users.
type PublicProfile struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Nickname       string    `json:"nickname"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}

// Public returns the user's public profile view.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:             u.ID,
		Name:           u.Name,
		Nickname:       u.Nickname,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}
