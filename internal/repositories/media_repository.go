package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"gorm.io/gorm"
)

// MediaRepository defines the interface for media data operations
type MediaRepository interface {
	CreateMedia(ctx context.Context, media *models.Media) error
	GetMedias(ctx context.Context) ([]models.Media, error)
	GetMediaByID(ctx context.Context, id uint) (*models.Media, error)
	GetMediaByTitleAndUsername(ctx context.Context, title, username string) (*models.Media, error)
	UpdateMedia(ctx context.Context, media *models.Media) error
	// DeleteMedia refuses with ErrReferenced while a publication points at the media
	DeleteMedia(ctx context.Context, id uint) error
	DeleteAllMedias(ctx context.Context) error
}

// PostgresMediaRepository implements MediaRepository with GORM
type PostgresMediaRepository struct {
	db *gorm.DB
}

// NewPostgresMediaRepository creates a new PostgresMediaRepository
func NewPostgresMediaRepository(db *gorm.DB) *PostgresMediaRepository {
	return &PostgresMediaRepository{db: db}
}

func (r *PostgresMediaRepository) CreateMedia(ctx context.Context, media *models.Media) error {
	return translateSQLError(r.db.WithContext(ctx).Create(media).Error)
}

func (r *PostgresMediaRepository) GetMedias(ctx context.Context) ([]models.Media, error) {
	medias := make([]models.Media, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&medias).Error; err != nil {
		return nil, err
	}
	return medias, nil
}

func (r *PostgresMediaRepository) GetMediaByID(ctx context.Context, id uint) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).First(&media, id).Error; err != nil {
		return nil, translateSQLError(err)
	}
	return &media, nil
}

func (r *PostgresMediaRepository) GetMediaByTitleAndUsername(ctx context.Context, title, username string) (*models.Media, error) {
	var media models.Media
	err := r.db.WithContext(ctx).
		Where("title = ? AND username = ?", title, username).
		First(&media).Error
	if err != nil {
		return nil, translateSQLError(err)
	}
	return &media, nil
}

func (r *PostgresMediaRepository) UpdateMedia(ctx context.Context, media *models.Media) error {
	res := r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("id = ?", media.ID).
		Updates(map[string]interface{}{"title": media.Title, "username": media.Username})
	if res.Error != nil {
		return translateSQLError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *PostgresMediaRepository) DeleteMedia(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	referenced := db.Model(&models.Publication{}).Select("1").Where("media_id = ?", id)

	res := db.Where("id = ? AND NOT EXISTS (?)", id, referenced).Delete(&models.Media{})
	if err := guardedDeleteError(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return missingOrReferenced(db, &models.Media{}, id)
	}
	return nil
}

func (r *PostgresMediaRepository) DeleteAllMedias(ctx context.Context) error {
	return translateSQLError(r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Media{}).Error)
}

// guardedDeleteError reports a foreign key violation on delete as ErrReferenced
func guardedDeleteError(err error) error {
	err = translateSQLError(err)
	if err != nil && errors.Is(err, ErrForeignKey) {
		return ErrReferenced
	}
	return err
}

// missingOrReferenced explains why a guarded delete removed nothing
func missingOrReferenced(db *gorm.DB, model interface{}, id uint) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecordNotFound
	}
	return ErrReferenced
}
