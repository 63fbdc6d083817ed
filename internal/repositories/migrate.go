package repositories

import (
	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the SQL schema. Publications come last so their
// foreign keys to medias and posts can be created.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Media{},
		&models.Post{},
		&models.Publication{},
	)
}
