package server

import (
	"fmt"

	"inkwell/internal/authz"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// EditCommentForm handles GET /blog/editcomment/:postID/:commentID, prefilled
// for the comment's author.
func (s *Server) EditCommentForm(c *fiber.Ctx) error {
	postID, ok := s.parseID(c, "postID")
	if !ok {
		return nil
	}
	commentID, ok := s.parseID(c, "commentID")
	if !ok {
		return nil
	}
	postURL := fmt.Sprintf("/blog/%d", postID)

	user := s.currentUser(c)
	if user == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}

	comment, err := s.commentService.GetComment(c.Context(), commentID)
	if err != nil {
		return respondServiceError(c, err, postURL)
	}
	if err := authz.CanModifyComment(user, comment); err != nil {
		return respondServiceError(c, err, postURL)
	}

	return c.JSON(fiber.Map{
		"content": comment.Content,
		"error":   c.Query("error"),
	})
}

// EditComment handles POST /blog/editcomment/:postID/:commentID
func (s *Server) EditComment(c *fiber.Ctx) error {
	postID, ok := s.parseID(c, "postID")
	if !ok {
		return nil
	}
	commentID, ok := s.parseID(c, "commentID")
	if !ok {
		return nil
	}
	postURL := fmt.Sprintf("/blog/%d", postID)

	user := s.currentUser(c)
	if user == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}

	_, err := s.commentService.UpdateComment(c.Context(), user, service.UpdateCommentInput{
		CommentID: commentID,
		Content:   c.FormValue("comment"),
	})
	if err != nil {
		return respondServiceError(c, err, postURL)
	}
	return c.Redirect(postURL)
}

// DeleteComment handles GET /blog/deletecomment/:postID/:commentID
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, ok := s.parseID(c, "postID")
	if !ok {
		return nil
	}
	commentID, ok := s.parseID(c, "commentID")
	if !ok {
		return nil
	}
	postURL := fmt.Sprintf("/blog/%d", postID)

	user := s.currentUser(c)
	if user == nil {
		return redirectLogin(c, authz.MsgLoginRequired)
	}

	if err := s.commentService.DeleteComment(c.Context(), user, commentID); err != nil {
		return respondServiceError(c, err, postURL)
	}
	return c.Redirect(fmt.Sprintf("%s?deleted_comment_id=%d", postURL, commentID))
}
