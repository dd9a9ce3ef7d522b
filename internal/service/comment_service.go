package service

import (
	"context"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	CommentID uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment requires an authenticated user and an existing post; the
// post reference is only checked here, never re-checked afterwards.
func (s *CommentService) CreateComment(ctx context.Context, user *models.User, in CreateCommentInput) (*models.Comment, error) {
	if err := authz.CanComment(user); err != nil {
		observability.AuthorizationDenials.WithLabelValues("create_comment").Inc()
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  user.ID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentsCreated.Inc()

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, user *models.User, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanModifyComment(user, comment); err != nil {
		observability.AuthorizationDenials.WithLabelValues("edit_comment").Inc()
		return nil, err
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, user *models.User, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := authz.CanModifyComment(user, comment); err != nil {
		observability.AuthorizationDenials.WithLabelValues("delete_comment").Inc()
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}
