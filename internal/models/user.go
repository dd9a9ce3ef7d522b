// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered author. Username is immutable after creation
// and users are never deleted.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
