package repository

import (
	"context"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Subject: "First post", Content: "Hello", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Success with counts", func(t *testing.T) {
		// main query with count subqueries
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "subject", "user_id", "comments_count", "likes_count"}).
				AddRow(1, "First post", 10, 3, 7))

		// preload user - GORM preloads after main query
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "alice"))

		post, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "First post", post.Subject)
		assert.Equal(t, 3, post.CommentsCount)
		assert.Equal(t, 7, post.LikesCount)
		assert.Equal(t, "alice", post.User.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*`)).
			WithArgs(99, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Delete_CascadesCommentsAndLikes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE post_id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE post_id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
