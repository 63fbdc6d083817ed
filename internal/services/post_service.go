package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/publication-scheduler/backend/internal/apperrors"
	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/repositories"
)

// PostService manages posts and refuses to delete one a publication still uses
type PostService struct {
	repo       repositories.PostRepository
	references ReferenceChecker
}

// NewPostService creates a new PostService
func NewPostService(repo repositories.PostRepository, references ReferenceChecker) *PostService {
	return &PostService{repo: repo, references: references}
}

func (s *PostService) CreatePost(ctx context.Context, title, text string, image *string) (*models.Post, error) {
	post := &models.Post{Title: title, Text: text, Image: image}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	logEntry(ctx, "posts").WithField("post_id", post.ID).Info("post created")
	return post, nil
}

func (s *PostService) FindAllPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.repo.GetPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) FindOnePost(ctx context.Context, id uint) (*models.Post, error) {
	return s.VerifyPostExist(ctx, id)
}

// UpdatePost overwrites title, text and image. A nil image clears it.
func (s *PostService) UpdatePost(ctx context.Context, id uint, title, text string, image *string) (*models.Post, error) {
	if _, err := s.VerifyPostExist(ctx, id); err != nil {
		return nil, err
	}

	post := &models.Post{ID: id, Title: title, Text: text, Image: image}
	err := s.repo.UpdatePost(ctx, post)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, apperrors.PostNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}

	logEntry(ctx, "posts").WithField("post_id", id).Info("post updated")
	return post, nil
}

func (s *PostService) RemovePost(ctx context.Context, id uint) error {
	post, err := s.VerifyPostExist(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.references.FindPublicationByPostID(ctx, post.ID)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.ForbiddenPostDeletion(post.ID)
	}

	err = s.repo.DeletePost(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrReferenced):
		return apperrors.ForbiddenPostDeletion(id)
	case errors.Is(err, repositories.ErrRecordNotFound):
		return apperrors.PostNotFound(id)
	case err != nil:
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}

	logEntry(ctx, "posts").WithField("post_id", id).Info("post deleted")
	return nil
}

// VerifyPostExist returns the post or a not found error
func (s *PostService) VerifyPostExist(ctx context.Context, id uint) (*models.Post, error) {
	return verifyExists(ctx, id, s.repo.GetPostByID, apperrors.PostNotFound)
}
