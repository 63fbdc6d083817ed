// Package services holds the business rules for medias, posts and publications.
//
// The three services depend on each other only through the narrow interfaces
// below: publications verify medias and posts exist, and medias and posts ask
// whether a publication still references them before deleting.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/publication-scheduler/backend/internal/apperrors"
	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/repositories"
	"github.com/anonto42/publication-scheduler/backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ReferenceChecker reports whether any publication points at a media or post
type ReferenceChecker interface {
	FindPublicationByMediaID(ctx context.Context, mediaID uint) (bool, error)
	FindPublicationByPostID(ctx context.Context, postID uint) (bool, error)
}

// MediaVerifier resolves a media id or fails with a not found error
type MediaVerifier interface {
	VerifyMediaExist(ctx context.Context, id uint) (*models.Media, error)
}

// PostVerifier resolves a post id or fails with a not found error
type PostVerifier interface {
	VerifyPostExist(ctx context.Context, id uint) (*models.Post, error)
}

// PublicationReferences is the ReferenceChecker backed by the publication store.
// It is built before any service so the media and post services can be
// constructed without the publication service.
type PublicationReferences struct {
	repo repositories.PublicationRepository
}

func NewPublicationReferences(repo repositories.PublicationRepository) *PublicationReferences {
	return &PublicationReferences{repo: repo}
}

func (r *PublicationReferences) FindPublicationByMediaID(ctx context.Context, mediaID uint) (bool, error) {
	found, err := r.repo.ExistsByMediaID(ctx, mediaID)
	if err != nil {
		return false, fmt.Errorf("failed to look up publications for media %d: %w", mediaID, err)
	}
	return found, nil
}

func (r *PublicationReferences) FindPublicationByPostID(ctx context.Context, postID uint) (bool, error) {
	found, err := r.repo.ExistsByPostID(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("failed to look up publications for post %d: %w", postID, err)
	}
	return found, nil
}

// verifyExists resolves id through lookup, turning a missing row into notFound(id)
func verifyExists[T any](
	ctx context.Context,
	id uint,
	lookup func(context.Context, uint) (*T, error),
	notFound func(uint) *apperrors.Error,
) (*T, error) {
	entity, err := lookup(ctx, id)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up id %d: %w", id, err)
	}
	return entity, nil
}

func logEntry(ctx context.Context, module string) *logrus.Entry {
	return logger.WithContext(ctx).WithField("module", module)
}
