// Package testutil opens throwaway databases and builds fixture rows for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/repositories"
	"github.com/anonto42/publication-scheduler/backend/pkg/config"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated in-memory SQLite database closed at test end
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenSQL(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateMedia inserts a media with random title and username
func CreateMedia(t *testing.T, db *gorm.DB) *models.Media {
	t.Helper()

	media := &models.Media{Title: gofakeit.URL(), Username: gofakeit.Username()}
	require.NoError(t, repositories.NewPostgresMediaRepository(db).CreateMedia(context.Background(), media))
	return media
}

// CreatePost inserts a post without image
func CreatePost(t *testing.T, db *gorm.DB) *models.Post {
	t.Helper()

	post := &models.Post{Title: gofakeit.AppName(), Text: gofakeit.URL()}
	require.NoError(t, repositories.NewPostgresPostRepository(db).CreatePost(context.Background(), post))
	return post
}

// CreatePublication inserts a publication at date
func CreatePublication(t *testing.T, db *gorm.DB, mediaID, postID uint, date time.Time) *models.Publication {
	t.Helper()

	publication := &models.Publication{MediaID: mediaID, PostID: postID, Date: date.UTC()}
	require.NoError(t, repositories.NewPostgresPublicationRepository(db).CreatePublication(context.Background(), publication))
	return publication
}

// Soon returns a date a few days in the future, truncated to the second
func Soon() time.Time {
	return time.Now().UTC().Add(time.Duration(gofakeit.Number(24, 96)) * time.Hour).Truncate(time.Second)
}
