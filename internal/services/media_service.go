package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/publication-scheduler/backend/internal/apperrors"
	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/repositories"
)

// MediaService enforces the (title, username) uniqueness and the delete guard on medias
type MediaService struct {
	repo       repositories.MediaRepository
	references ReferenceChecker
}

// NewMediaService creates a new MediaService
func NewMediaService(repo repositories.MediaRepository, references ReferenceChecker) *MediaService {
	return &MediaService{repo: repo, references: references}
}

func (s *MediaService) CreateMedia(ctx context.Context, title, username string) (*models.Media, error) {
	if err := s.verifyUsernameAvailable(ctx, title, username, 0); err != nil {
		return nil, err
	}

	media := &models.Media{Title: title, Username: username}
	if err := s.repo.CreateMedia(ctx, media); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.MediaUsernameConflict(title, username)
		}
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	logEntry(ctx, "medias").WithField("media_id", media.ID).Info("media created")
	return media, nil
}

func (s *MediaService) FindAllMedias(ctx context.Context) ([]models.Media, error) {
	medias, err := s.repo.GetMedias(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medias: %w", err)
	}
	return medias, nil
}

func (s *MediaService) FindOneMedia(ctx context.Context, id uint) (*models.Media, error) {
	return s.VerifyMediaExist(ctx, id)
}

// UpdateMedia replaces title and username. Keeping the current pair is not a conflict.
func (s *MediaService) UpdateMedia(ctx context.Context, id uint, title, username string) (*models.MediaSummary, error) {
	if _, err := s.VerifyMediaExist(ctx, id); err != nil {
		return nil, err
	}
	if err := s.verifyUsernameAvailable(ctx, title, username, id); err != nil {
		return nil, err
	}

	err := s.repo.UpdateMedia(ctx, &models.Media{ID: id, Title: title, Username: username})
	switch {
	case errors.Is(err, repositories.ErrRecordNotFound):
		return nil, apperrors.MediaNotFound(id)
	case errors.Is(err, repositories.ErrDuplicateKey):
		return nil, apperrors.MediaUsernameConflict(title, username)
	case err != nil:
		return nil, fmt.Errorf("failed to update media %d: %w", id, err)
	}

	logEntry(ctx, "medias").WithField("media_id", id).Info("media updated")
	return &models.MediaSummary{Title: title, Username: username}, nil
}

func (s *MediaService) RemoveMedia(ctx context.Context, id uint) error {
	media, err := s.VerifyMediaExist(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.references.FindPublicationByMediaID(ctx, media.ID)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.ForbiddenMediaDeletion(media.Title)
	}

	err = s.repo.DeleteMedia(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrReferenced):
		return apperrors.ForbiddenMediaDeletion(media.Title)
	case errors.Is(err, repositories.ErrRecordNotFound):
		return apperrors.MediaNotFound(id)
	case err != nil:
		return fmt.Errorf("failed to delete media %d: %w", id, err)
	}

	logEntry(ctx, "medias").WithField("media_id", id).Info("media deleted")
	return nil
}

// VerifyMediaExist returns the media or a not found error
func (s *MediaService) VerifyMediaExist(ctx context.Context, id uint) (*models.Media, error) {
	return verifyExists(ctx, id, s.repo.GetMediaByID, apperrors.MediaNotFound)
}

// verifyUsernameAvailable fails when the pair belongs to a media other than ownerID.
// ownerID is 0 on create, which matches no stored media.
func (s *MediaService) verifyUsernameAvailable(ctx context.Context, title, username string, ownerID uint) error {
	existing, err := s.repo.GetMediaByTitleAndUsername(ctx, title, username)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up media by username: %w", err)
	}
	if existing.ID != ownerID {
		return apperrors.MediaUsernameConflict(title, username)
	}
	return nil
}
