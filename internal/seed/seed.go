// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// SeedPassword is the password every generated user gets, so any seeded
// account can be logged into during development.
const SeedPassword = "seedme"

// Seed populates the database with test data: users, posts, comments and
// likes. Likes follow the same rules the application enforces, so a seeded
// database never contains a self-like or a duplicate like.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	likes, err := createLikes(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ %d likes created", likes)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	// Child tables first so foreign keys never block a delete.
	for _, table := range []string{"likes", "comments", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// generateUsername builds a username that satisfies the signup rules and is
// unique across runs via a short uuid suffix.
func generateUsername() string {
	base := strings.ToLower(gofakeit.Username())
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, base)
	if len(base) > 13 {
		base = base[:13]
	}
	if len(base) < 3 {
		base = "user-" + base
	}
	return base + "-" + uuid.NewString()[:6]
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := generateUsername()
		hash, err := auth.HashPassword(username, SeedPassword)
		if err != nil {
			return nil, err
		}
		users = append(users, models.User{
			Username:     username,
			PasswordHash: hash,
			Email:        gofakeit.Email(),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := models.Post{
			Subject: gofakeit.Sentence(5),
			Content: gofakeit.Paragraph(1, 3, 6, "\n"),
			UserID:  author.ID,
		}
		// realistic created_at spread over the last 90 days
		post.CreatedAt = time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour)
		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, nil
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	comments := make([]models.Comment, 0)
	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			commenter := users[r.Intn(len(users))]
			comments = append(comments, models.Comment{
				Content: gofakeit.Sentence(8),
				UserID:  commenter.ID,
				PostID:  post.ID,
			})
		}
	}
	if len(comments) == 0 {
		return 0, nil
	}
	if err := db.Create(&comments).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}

func createLikes(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	if len(users) < 2 || len(posts) == 0 {
		return 0, nil
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	seen := make(map[[2]uint]bool)
	likes := make([]models.Like, 0)
	for _, post := range posts {
		for i := 0; i < r.Intn(len(users)); i++ {
			liker := users[r.Intn(len(users))]
			if liker.ID == post.UserID {
				continue
			}
			key := [2]uint{liker.ID, post.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			likes = append(likes, models.Like{
				UserID: liker.ID,
				PostID: post.ID,
			})
		}
	}
	if len(likes) == 0 {
		return 0, nil
	}
	if err := db.Create(&likes).Error; err != nil {
		return 0, err
	}
	return len(likes), nil
}
