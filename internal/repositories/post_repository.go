package repositories

import (
	"context"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	// DeletePost refuses with ErrReferenced while a publication points at the post
	DeletePost(ctx context.Context, id uint) error
	DeleteAllPosts(ctx context.Context) error
}

// PostgresPostRepository implements PostRepository with GORM
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translateSQLError(r.db.WithContext(ctx).Create(post).Error)
}

func (r *PostgresPostRepository) GetPosts(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translateSQLError(err)
	}
	return &post, nil
}

// UpdatePost overwrites every field; a nil image clears the stored one
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{"title": post.Title, "text": post.Text, "image": post.Image})
	if res.Error != nil {
		return translateSQLError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	referenced := db.Model(&models.Publication{}).Select("1").Where("post_id = ?", id)

	res := db.Where("id = ? AND NOT EXISTS (?)", id, referenced).Delete(&models.Post{})
	if err := guardedDeleteError(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return missingOrReferenced(db, &models.Post{}, id)
	}
	return nil
}

func (r *PostgresPostRepository) DeleteAllPosts(ctx context.Context) error {
	return translateSQLError(r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Post{}).Error)
}
