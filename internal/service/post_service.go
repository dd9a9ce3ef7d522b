// Package service implements the application's use cases on top of the
// repositories, applying validation and authorization before any mutation.
package service

import (
	"context"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

type CreatePostInput struct {
	Subject string
	Content string
}

type UpdatePostInput struct {
	PostID  uint
	Subject string
	Content string
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		likeRepo: likeRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, user *models.User, in CreatePostInput) (*models.Post, error) {
	if user == nil {
		return nil, models.NewAuthorizationError(authz.MsgLoginRequired)
	}
	if in.Subject == "" || in.Content == "" {
		return nil, models.NewValidationError("subject and content, please!")
	}

	post := &models.Post{
		Subject: in.Subject,
		Content: in.Content,
		UserID:  user.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, user *models.User, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanModifyPost(user, post); err != nil {
		observability.AuthorizationDenials.WithLabelValues("edit_post").Inc()
		return nil, err
	}
	if in.Subject == "" || in.Content == "" {
		return nil, models.NewValidationError("subject and content, please!")
	}

	post.Subject = in.Subject
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and, through the repository, every comment and
// like attached to it.
func (s *PostService) DeletePost(ctx context.Context, user *models.User, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := authz.CanModifyPost(user, post); err != nil {
		observability.AuthorizationDenials.WithLabelValues("delete_post").Inc()
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// LikePost records a like for user on the given post. Denials (anonymous,
// own post, already liked) surface as authorization errors carrying the
// user-facing reason. The existence check plus the store-level uniqueness
// constraint together guarantee at most one like per (user, post).
func (s *PostService) LikePost(ctx context.Context, user *models.User, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	alreadyLiked := false
	if user != nil {
		alreadyLiked, err = s.likeRepo.Exists(ctx, user.ID, postID)
		if err != nil {
			return err
		}
	}

	if err := authz.CanLikePost(user, post, alreadyLiked); err != nil {
		observability.AuthorizationDenials.WithLabelValues("like_post").Inc()
		return err
	}

	if err := s.likeRepo.Create(ctx, user.ID, postID); err != nil {
		return err
	}
	observability.LikesCreated.Inc()
	return nil
}
