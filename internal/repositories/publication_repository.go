package repositories

import (
	"context"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PublicationRepository defines the interface for publication data operations
type PublicationRepository interface {
	CreatePublication(ctx context.Context, publication *models.Publication) error
	GetPublications(ctx context.Context, filter models.PublicationFilter) ([]models.Publication, error)
	GetPublicationByID(ctx context.Context, id uint) (*models.Publication, error)
	UpdatePublication(ctx context.Context, publication *models.Publication) error
	DeletePublication(ctx context.Context, id uint) error
	DeleteAllPublications(ctx context.Context) error
	ExistsByMediaID(ctx context.Context, mediaID uint) (bool, error)
	ExistsByPostID(ctx context.Context, postID uint) (bool, error)
}

// PostgresPublicationRepository implements PublicationRepository with GORM
type PostgresPublicationRepository struct {
	db *gorm.DB
}

// NewPostgresPublicationRepository creates a new PostgresPublicationRepository
func NewPostgresPublicationRepository(db *gorm.DB) *PostgresPublicationRepository {
	return &PostgresPublicationRepository{db: db}
}

func (r *PostgresPublicationRepository) CreatePublication(ctx context.Context, publication *models.Publication) error {
	return translateSQLError(r.db.WithContext(ctx).Omit(clause.Associations).Create(publication).Error)
}

func (r *PostgresPublicationRepository) GetPublications(ctx context.Context, filter models.PublicationFilter) ([]models.Publication, error) {
	q := r.db.WithContext(ctx).Order("id")
	if filter.Before != nil {
		q = q.Where(clause.Lt{Column: clause.Column{Name: "date"}, Value: *filter.Before})
	}
	if filter.After != nil {
		q = q.Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: *filter.After})
	}

	publications := make([]models.Publication, 0)
	if err := q.Find(&publications).Error; err != nil {
		return nil, err
	}
	return publications, nil
}

func (r *PostgresPublicationRepository) GetPublicationByID(ctx context.Context, id uint) (*models.Publication, error) {
	var publication models.Publication
	if err := r.db.WithContext(ctx).First(&publication, id).Error; err != nil {
		return nil, translateSQLError(err)
	}
	return &publication, nil
}

func (r *PostgresPublicationRepository) UpdatePublication(ctx context.Context, publication *models.Publication) error {
	res := r.db.WithContext(ctx).
		Model(&models.Publication{}).
		Where("id = ?", publication.ID).
		Updates(map[string]interface{}{
			"media_id": publication.MediaID,
			"post_id":  publication.PostID,
			"date":     publication.Date,
		})
	if res.Error != nil {
		return translateSQLError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *PostgresPublicationRepository) DeletePublication(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Publication{}, id)
	if res.Error != nil {
		return translateSQLError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *PostgresPublicationRepository) DeleteAllPublications(ctx context.Context) error {
	return translateSQLError(r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Publication{}).Error)
}

func (r *PostgresPublicationRepository) ExistsByMediaID(ctx context.Context, mediaID uint) (bool, error) {
	return r.exists(ctx, "media_id = ?", mediaID)
}

func (r *PostgresPublicationRepository) ExistsByPostID(ctx context.Context, postID uint) (bool, error) {
	return r.exists(ctx, "post_id = ?", postID)
}

func (r *PostgresPublicationRepository) exists(ctx context.Context, query string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Publication{}).Where(query, id).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
