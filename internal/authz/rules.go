// Package authz holds the authorization rules deciding whether the current
// session's user may perform a given mutation. Rules are pure functions over
// (current user, target entity); a nil result means allow, a non-nil result
// is a typed error carrying the user-facing reason.
package authz

import (
	"inkwell/internal/models"
)

// Denial messages surfaced to the user on redirects.
const (
	MsgLoginRequired     = "You need to login before performing edit, like or commenting."
	MsgCannotLikeOwnPost = "You cannot like your own post."
	MsgNotPostOwner      = "You don't have access to modify this post."
	MsgNotCommentOwner   = "You don't have access to modify this comment."
	MsgAlreadyLiked      = "You have already liked this post."
)

// CanComment allows any authenticated user to comment.
func CanComment(user *models.User) error {
	if user == nil {
		return models.NewAuthorizationError(MsgLoginRequired)
	}
	return nil
}

// CanModifyPost allows edit and delete only for the post's owner.
func CanModifyPost(user *models.User, post *models.Post) error {
	if user == nil {
		return models.NewAuthorizationError(MsgLoginRequired)
	}
	if user.ID != post.UserID {
		return models.NewAuthorizationError(MsgNotPostOwner)
	}
	return nil
}

// CanModifyComment allows edit and delete only for the comment's owner.
func CanModifyComment(user *models.User, comment *models.Comment) error {
	if user == nil {
		return models.NewAuthorizationError(MsgLoginRequired)
	}
	if user.ID != comment.UserID {
		return models.NewAuthorizationError(MsgNotCommentOwner)
	}
	return nil
}

// CanLikePost allows a like only for an authenticated user who does not own
// the post and has not liked it yet. The self-like check runs before the
// already-liked check so owners are always denied for the ownership reason.
func CanLikePost(user *models.User, post *models.Post, alreadyLiked bool) error {
	if user == nil {
		return models.NewAuthorizationError(MsgLoginRequired)
	}
	if user.ID == post.UserID {
		return models.NewAuthorizationError(MsgCannotLikeOwnPost)
	}
	if alreadyLiked {
		return models.NewAuthorizationError(MsgAlreadyLiked)
	}
	return nil
}
