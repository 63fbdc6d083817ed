package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/publication-scheduler/backend/internal/apperrors"
	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/repositories"
)

// PublicationService schedules posts on medias.
//
// A publication is scheduled while its date is not before now and elapsed
// afterwards; only wall-clock time moves it from one state to the other. An
// elapsed publication can no longer be updated, but it can still be created
// with a past date and deleted.
type PublicationService struct {
	*PublicationReferences

	repo   repositories.PublicationRepository
	medias MediaVerifier
	posts  PostVerifier
	now    func() time.Time
}

// PublicationOption customises a PublicationService
type PublicationOption func(*PublicationService)

// WithClock replaces time.Now as the source of the current time
func WithClock(now func() time.Time) PublicationOption {
	return func(s *PublicationService) {
		s.now = now
	}
}

// NewPublicationService creates a new PublicationService
func NewPublicationService(
	repo repositories.PublicationRepository,
	medias MediaVerifier,
	posts PostVerifier,
	opts ...PublicationOption,
) *PublicationService {
	s := &PublicationService{
		PublicationReferences: NewPublicationReferences(repo),
		repo:                  repo,
		medias:                medias,
		posts:                 posts,
		now:                   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePublication checks the media, then the post, and inserts. Past dates are accepted.
func (s *PublicationService) CreatePublication(ctx context.Context, mediaID, postID uint, date time.Time) (*models.Publication, error) {
	if err := s.verifyReferences(ctx, mediaID, postID); err != nil {
		return nil, err
	}

	publication := &models.Publication{MediaID: mediaID, PostID: postID, Date: normalizeDate(date)}
	if err := s.repo.CreatePublication(ctx, publication); err != nil {
		if refErr := s.vanishedReference(ctx, err, mediaID, postID); refErr != nil {
			return nil, refErr
		}
		return nil, fmt.Errorf("failed to create publication: %w", err)
	}

	logEntry(ctx, "publications").WithFields(map[string]interface{}{
		"publication_id": publication.ID,
		"media_id":       mediaID,
		"post_id":        postID,
	}).Info("publication created")
	return publication, nil
}

// FindAllPublications lists publications. published=true keeps only those whose
// date is strictly before now (elapsed ones); after keeps dates >= after.
// Both filters combine; a nil or false filter imposes nothing.
func (s *PublicationService) FindAllPublications(ctx context.Context, published *bool, after *time.Time) ([]models.Publication, error) {
	var filter models.PublicationFilter
	if published != nil && *published {
		now := s.now().UTC()
		filter.Before = &now
	}
	if after != nil {
		a := after.UTC()
		filter.After = &a
	}

	publications, err := s.repo.GetPublications(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list publications: %w", err)
	}
	return publications, nil
}

func (s *PublicationService) FindOnePublication(ctx context.Context, id uint) (*models.Publication, error) {
	return s.VerifyPublicationExist(ctx, id)
}

// UpdatePublication overwrites media, post and date. The elapsed check uses the
// stored date, not the new one.
func (s *PublicationService) UpdatePublication(ctx context.Context, id, mediaID, postID uint, date time.Time) (*models.Publication, error) {
	current, err := s.VerifyPublicationExist(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.verifyReferences(ctx, mediaID, postID); err != nil {
		return nil, err
	}
	if current.Elapsed(s.now()) {
		return nil, apperrors.PublicationAlreadyElapsed()
	}

	publication := &models.Publication{ID: id, MediaID: mediaID, PostID: postID, Date: normalizeDate(date)}
	err = s.repo.UpdatePublication(ctx, publication)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, apperrors.PublicationNotFound(id)
	}
	if err != nil {
		if refErr := s.vanishedReference(ctx, err, mediaID, postID); refErr != nil {
			return nil, refErr
		}
		return nil, fmt.Errorf("failed to update publication %d: %w", id, err)
	}

	logEntry(ctx, "publications").WithField("publication_id", id).Info("publication updated")
	return publication, nil
}

func (s *PublicationService) RemovePublication(ctx context.Context, id uint) error {
	if _, err := s.VerifyPublicationExist(ctx, id); err != nil {
		return err
	}

	err := s.repo.DeletePublication(ctx, id)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return apperrors.PublicationNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete publication %d: %w", id, err)
	}

	logEntry(ctx, "publications").WithField("publication_id", id).Info("publication deleted")
	return nil
}

// VerifyPublicationExist returns the publication or a not found error
func (s *PublicationService) VerifyPublicationExist(ctx context.Context, id uint) (*models.Publication, error) {
	return verifyExists(ctx, id, s.repo.GetPublicationByID, apperrors.PublicationNotFound)
}

// verifyReferences checks the media first; a missing media hides a missing post.
func (s *PublicationService) verifyReferences(ctx context.Context, mediaID, postID uint) error {
	if _, err := s.medias.VerifyMediaExist(ctx, mediaID); err != nil {
		return err
	}
	if _, err := s.posts.VerifyPostExist(ctx, postID); err != nil {
		return err
	}
	return nil
}

// vanishedReference handles a write rejected by a storage foreign key: the media
// or post was deleted after verifyReferences passed, so the same not found error
// is reported. It returns nil when err is anything else.
func (s *PublicationService) vanishedReference(ctx context.Context, err error, mediaID, postID uint) error {
	if !errors.Is(err, repositories.ErrForeignKey) {
		return nil
	}
	return s.verifyReferences(ctx, mediaID, postID)
}

// normalizeDate stores dates in UTC at millisecond precision
func normalizeDate(date time.Time) time.Time {
	return date.UTC().Truncate(time.Millisecond)
}
