// Package seed fills a fresh database with demo medias, posts and publications.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/router"
	"github.com/anonto42/publication-scheduler/backend/pkg/logger"
	"github.com/brianvoe/gofakeit/v7"
)

// MediaTitles are the social networks every seeded username gets an account on
var MediaTitles = []string{"Instagram", "X", "Facebook"}

// Result lists what Seed inserted
type Result struct {
	Medias       []models.Media
	Posts        []models.Post
	Publications []models.Publication
}

// Seeder writes demo data through the domain services
type Seeder struct {
	stores   *router.Stores
	services *router.Services
	now      func() time.Time
}

func NewSeeder(stores *router.Stores) *Seeder {
	return &Seeder{stores: stores, services: router.NewServices(stores), now: time.Now}
}

// Clean deletes every row, publications first so no restrict foreign key fires
func (s *Seeder) Clean(ctx context.Context) error {
	if err := s.stores.Publications.DeleteAllPublications(ctx); err != nil {
		return fmt.Errorf("failed to delete publications: %w", err)
	}
	if err := s.stores.Posts.DeleteAllPosts(ctx); err != nil {
		return fmt.Errorf("failed to delete posts: %w", err)
	}
	if err := s.stores.Medias.DeleteAllMedias(ctx); err != nil {
		return fmt.Errorf("failed to delete medias: %w", err)
	}
	logger.WithModule("seed").Info("database cleaned")
	return nil
}

// Seed cleans the database, then creates one media per title sharing a random
// username, one post per media (only the first with an image) and a publication
// for each pair scheduled within the next day.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	if err := s.Clean(ctx); err != nil {
		return nil, err
	}

	var result Result
	username := gofakeit.Username()
	for _, title := range MediaTitles {
		media, err := s.services.Medias.CreateMedia(ctx, title, username)
		if err != nil {
			return nil, err
		}
		result.Medias = append(result.Medias, *media)
	}

	for i := range result.Medias {
		var image *string
		if i == 0 {
			url := fmt.Sprintf("https://picsum.photos/seed/%s/640/480", gofakeit.Word())
			image = &url
		}
		post, err := s.services.Posts.CreatePost(ctx, gofakeit.Sentence(gofakeit.Number(3, 10)), gofakeit.URL(), image)
		if err != nil {
			return nil, err
		}
		result.Posts = append(result.Posts, *post)
	}

	now := s.now()
	for i, media := range result.Medias {
		date := gofakeit.DateRange(now, now.Add(24*time.Hour))
		publication, err := s.services.Publications.CreatePublication(ctx, media.ID, result.Posts[i].ID, date)
		if err != nil {
			return nil, err
		}
		result.Publications = append(result.Publications, *publication)
	}

	logger.WithModule("seed").WithField("username", username).Infof(
		"seeded %d medias, %d posts, %d publications",
		len(result.Medias), len(result.Posts), len(result.Publications),
	)
	return &result, nil
}
