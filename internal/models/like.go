package models

import (
	"time"
)

// Like records that a user liked a post. The (UserID, PostID) pair is unique
// at the store level, which bounds the double-click race on concurrent likes.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
