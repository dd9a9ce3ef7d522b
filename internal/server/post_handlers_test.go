package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHome_ListsRecentPosts(t *testing.T) {
	app, _, mocks := newTestServer(t)
	mocks.posts.On("List", mock.Anything, frontPageLimit, 0).Return([]*models.Post{
		{ID: 2, Subject: "second", UserID: 1},
		{ID: 1, Subject: "first", UserID: 1},
	}, nil)

	resp, err := app.Test(formRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Posts []models.Post `json:"posts"`
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Posts, 2)
	assert.Equal(t, "second", payload.Posts[0].Subject)
}

func TestShowPost(t *testing.T) {
	app, _, mocks := newTestServer(t)
	mocks.posts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, Subject: "hello", UserID: 2}, nil)
	mocks.comments.On("ListByPost", mock.Anything, uint(1)).Return([]*models.Comment{
		{ID: 5, Content: "nice", UserID: 3, PostID: 1},
	}, nil)

	resp, err := app.Test(formRequest(http.MethodGet, "/blog/1", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestShowPost_NotFound(t *testing.T) {
	app, _, mocks := newTestServer(t)
	mocks.posts.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("Post", uint(99)))

	resp, err := app.Test(formRequest(http.MethodGet, "/blog/99", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShowPost_MalformedID(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp, err := app.Test(formRequest(http.MethodGet, "/blog/not-a-number", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePost(t *testing.T) {
	author := &models.User{ID: 7, Username: "alice"}

	t.Run("Anonymous Redirects To Login", func(t *testing.T) {
		app, _, _ := newTestServer(t)

		resp, err := app.Test(formRequest(http.MethodPost, "/blog/newpost", url.Values{
			"subject": {"hello"},
			"content": {"world"},
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Location"), "/login")
	})

	t.Run("Success Redirects To New Post", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(7)).Return(author, nil)
		mocks.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.Subject == "hello" && p.Content == "world" && p.UserID == 7
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Post).ID = 3
		}).Return(nil)
		mocks.posts.On("GetByID", mock.Anything, uint(3)).
			Return(&models.Post{ID: 3, Subject: "hello", Content: "world", UserID: 7}, nil)

		req := formRequest(http.MethodPost, "/blog/newpost", url.Values{
			"subject": {"hello"},
			"content": {"world"},
		})
		req.AddCookie(sessionCookie(s, 7))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/blog/3", resp.Header.Get("Location"))
	})

	t.Run("Missing Subject Is Rejected", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(7)).Return(author, nil)

		req := formRequest(http.MethodPost, "/blog/newpost", url.Values{
			"content": {"world"},
		})
		req.AddCookie(sessionCookie(s, 7))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mocks.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLikePost(t *testing.T) {
	author := &models.User{ID: 7, Username: "alice"}
	likeForm := url.Values{"like": {"update"}}

	t.Run("Success", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(7)).Return(author, nil)
		mocks.posts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, UserID: 2}, nil)
		mocks.likes.On("Exists", mock.Anything, uint(7), uint(1)).Return(false, nil)
		mocks.likes.On("Create", mock.Anything, uint(7), uint(1)).Return(nil)

		req := formRequest(http.MethodPost, "/blog/1", likeForm)
		req.AddCookie(sessionCookie(s, 7))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/blog/1", resp.Header.Get("Location"))
		mocks.likes.AssertExpectations(t)
	})

	t.Run("Own Post Is Denied", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(7)).Return(author, nil)
		mocks.posts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, UserID: 7}, nil)
		mocks.likes.On("Exists", mock.Anything, uint(7), uint(1)).Return(false, nil)

		req := formRequest(http.MethodPost, "/blog/1", likeForm)
		req.AddCookie(sessionCookie(s, 7))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		location := resp.Header.Get("Location")
		assert.Contains(t, location, "/blog/1?error=")
		assert.Contains(t, location, url.QueryEscape("You cannot like your own post."))
		mocks.likes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Second Like Is Denied", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(7)).Return(author, nil)
		mocks.posts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, UserID: 2}, nil)
		mocks.likes.On("Exists", mock.Anything, uint(7), uint(1)).Return(true, nil)

		req := formRequest(http.MethodPost, "/blog/1", likeForm)
		req.AddCookie(sessionCookie(s, 7))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Location"), url.QueryEscape("You have already liked this post."))
		mocks.likes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Anonymous Redirects To Login", func(t *testing.T) {
		app, _, _ := newTestServer(t)

		resp, err := app.Test(formRequest(http.MethodPost, "/blog/1", likeForm))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Location"), "/login")
	})
}

func TestEditPost(t *testing.T) {
	t.Run("Owner Can Update", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
		mocks.posts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, Subject: "old", Content: "body", UserID: 7}, nil)
		mocks.posts.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.ID == 1 && p.Subject == "new" && p.Content == "body"
		})).Return(nil)

		req := formRequest(http.MethodPost, "/blog/editpost/1", url.Values{
			"subject": {"new"},
			"content": {"body"},
		})
		req.AddCookie(sessionCookie(s, 7))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/blog/1", resp.Header.Get("Location"))
		mocks.posts.AssertExpectations(t)
	})

	t.Run("Non-Owner Is Denied", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(8)).Return(&models.User{ID: 8}, nil)
		mocks.posts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, Subject: "old", Content: "body", UserID: 7}, nil)

		req := formRequest(http.MethodPost, "/blog/editpost/1", url.Values{
			"subject": {"hijacked"},
			"content": {"body"},
		})
		req.AddCookie(sessionCookie(s, 8))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Location"),
			url.QueryEscape("You don't have access to modify this post."))
		mocks.posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Owner Can Delete", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
		mocks.posts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, UserID: 7}, nil)
		mocks.posts.On("Delete", mock.Anything, uint(1)).Return(nil)

		req := formRequest(http.MethodGet, "/blog/deletepost/1", nil)
		req.AddCookie(sessionCookie(s, 7))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/?deleted_post_id=1", resp.Header.Get("Location"))
		mocks.posts.AssertExpectations(t)
	})

	t.Run("Non-Owner Is Denied", func(t *testing.T) {
		app, s, mocks := newTestServer(t)
		mocks.users.On("GetByID", mock.Anything, uint(8)).Return(&models.User{ID: 8}, nil)
		mocks.posts.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, UserID: 7}, nil)

		req := formRequest(http.MethodGet, "/blog/deletepost/1", nil)
		req.AddCookie(sessionCookie(s, 8))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Location"), "/blog/1?error=")
		mocks.posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
