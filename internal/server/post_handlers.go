package server

import (
	"fmt"
	"strings"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

const frontPageLimit = 10

// Home handles GET /: the front page lists the most recent posts. A
// deleted_post_id query parameter is echoed back so the page can confirm a
// deletion the browser was just redirected from.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context(), frontPageLimit, 0)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{
		"posts":           posts,
		"deleted_post_id": c.Query("deleted_post_id"),
	})
}

// ShowPost handles GET /blog/:postID, returning the post with its comments.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	postID, ok := s.parseID(c, "postID")
	if !ok {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"post":               post,
		"comments":           comments,
		"error":              c.Query("error"),
		"deleted_comment_id": c.Query("deleted_comment_id"),
	})
}

// PostActions handles POST /blog/:postID, which carries both the like button
// and the comment form. A like submits like=update; anything with comment
// text is a new comment.
func (s *Server) PostActions(c *fiber.Ctx) error {
	postID, ok := s.parseID(c, "postID")
	if !ok {
		return nil
	}
	postURL := fmt.Sprintf("/blog/%d", postID)

	user := s.currentUser(c)
	if user == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}

	if c.FormValue("like") == "update" {
		if err := s.postService.LikePost(c.Context(), user, postID); err != nil {
			return respondServiceError(c, err, postURL)
		}
		return c.Redirect(postURL)
	}

	if comment := strings.TrimSpace(c.FormValue("comment")); comment != "" {
		_, err := s.commentService.CreateComment(c.Context(), user, service.CreateCommentInput{
			PostID:  postID,
			Content: comment,
		})
		if err != nil {
			return respondServiceError(c, err, postURL)
		}
		return c.Redirect(postURL)
	}

	return redirectWithError(c, postURL, "Comment text is required")
}

// NewPostForm handles GET /blog/newpost
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	if s.currentUser(c) == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}
	return c.JSON(fiber.Map{
		"error": c.Query("error"),
	})
}

// CreatePost handles POST /blog/newpost
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}

	post, err := s.postService.CreatePost(c.Context(), user, service.CreatePostInput{
		Subject: c.FormValue("subject"),
		Content: c.FormValue("content"),
	})
	if err != nil {
		return respondServiceError(c, err, "/blog/newpost")
	}
	return c.Redirect(fmt.Sprintf("/blog/%d", post.ID))
}

// EditPostForm handles GET /blog/editpost/:postID, prefilled for the owner.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	postID, ok := s.parseID(c, "postID")
	if !ok {
		return nil
	}
	postURL := fmt.Sprintf("/blog/%d", postID)

	user := s.currentUser(c)
	if user == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err, "/")
	}
	if err := authz.CanModifyPost(user, post); err != nil {
		return respondServiceError(c, err, postURL)
	}

	return c.JSON(fiber.Map{
		"subject": post.Subject,
		"content": post.Content,
		"error":   c.Query("error"),
	})
}

// EditPost handles POST /blog/editpost/:postID
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, ok := s.parseID(c, "postID")
	if !ok {
		return nil
	}
	postURL := fmt.Sprintf("/blog/%d", postID)

	user := s.currentUser(c)
	if user == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}

	_, err := s.postService.UpdatePost(c.Context(), user, service.UpdatePostInput{
		PostID:  postID,
		Subject: c.FormValue("subject"),
		Content: c.FormValue("content"),
	})
	if err != nil {
		return respondServiceError(c, err, postURL)
	}
	return c.Redirect(postURL)
}

// DeletePost handles GET /blog/deletepost/:postID. On success the browser
// lands on the front page with the deleted id so the removal can be shown.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, ok := s.parseID(c, "postID")
	if !ok {
		return nil
	}
	postURL := fmt.Sprintf("/blog/%d", postID)

	user := s.currentUser(c)
	if user == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}

	if err := s.postService.DeletePost(c.Context(), user, postID); err != nil {
		return respondServiceError(c, err, postURL)
	}
	return c.Redirect(fmt.Sprintf("/?deleted_post_id=%d", postID))
}
