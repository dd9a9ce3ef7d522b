package models

import (
	"time"
)

// Post represents a blog entry owned by a single user.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Subject string `gorm:"not null" json:"subject"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
