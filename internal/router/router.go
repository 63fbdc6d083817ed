package router

import (
	"context"
	"fmt"

	"github.com/anonto42/publication-scheduler/backend/internal/handlers"
	"github.com/anonto42/publication-scheduler/backend/internal/repositories"
	"github.com/anonto42/publication-scheduler/backend/internal/services"
	"github.com/anonto42/publication-scheduler/backend/pkg/config"
	"github.com/anonto42/publication-scheduler/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Stores groups the repositories of the selected storage driver
type Stores struct {
	Medias       repositories.MediaRepository
	Posts        repositories.PostRepository
	Publications repositories.PublicationRepository
}

// NewStores prepares the schema (SQL migrations or Mongo indexes) and builds the repositories
func NewStores(ctx context.Context, db *config.DB) (*Stores, error) {
	log := logger.WithModule("router")

	if db.Mongo != nil {
		if err := repositories.EnsureMongoIndexes(ctx, db.Mongo); err != nil {
			return nil, fmt.Errorf("failed to create MongoDB indexes: %w", err)
		}
		log.Info("MongoDB indexes ensured.")
		return &Stores{
			Medias:       repositories.NewMongoMediaRepository(db.Mongo),
			Posts:        repositories.NewMongoPostRepository(db.Mongo),
			Publications: repositories.NewMongoPublicationRepository(db.Mongo),
		}, nil
	}

	if db.SQL == nil {
		return nil, fmt.Errorf("no storage gateway configured")
	}
	if err := repositories.Migrate(db.SQL.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Infof("%s auto-migrations completed for all models.", db.Driver)
	return &Stores{
		Medias:       repositories.NewPostgresMediaRepository(db.SQL),
		Posts:        repositories.NewPostgresPostRepository(db.SQL),
		Publications: repositories.NewPostgresPublicationRepository(db.SQL),
	}, nil
}

// Services groups the three domain services
type Services struct {
	Medias       *services.MediaService
	Posts        *services.PostService
	Publications *services.PublicationService
}

// NewServices wires the services. The reference checker is built from the
// publication store first so medias and posts never need the publication service.
func NewServices(stores *Stores, opts ...services.PublicationOption) *Services {
	references := services.NewPublicationReferences(stores.Publications)
	medias := services.NewMediaService(stores.Medias, references)
	posts := services.NewPostService(stores.Posts, references)
	publications := services.NewPublicationService(stores.Publications, medias, posts, opts...)

	return &Services{Medias: medias, Posts: posts, Publications: publications}
}

// RegisterRoutes mounts every resource on e
func RegisterRoutes(e *echo.Echo, svc *Services, health *handlers.HealthHandler) {
	health.RegisterHealthRoutes(e)

	api := e.Group("")
	handlers.NewMediaHandler(svc.Medias).RegisterMediaRoutes(api)
	handlers.NewPostHandler(svc.Posts).RegisterPostRoutes(api)
	handlers.NewPublicationHandler(svc.Publications).RegisterPublicationRoutes(api)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(ctx context.Context, e *echo.Echo, db *config.DB) error {
	stores, err := NewStores(ctx, db)
	if err != nil {
		return err
	}

	RegisterRoutes(e, NewServices(stores), handlers.NewHealthHandler(db, db.Driver))
	logger.WithModule("router").Info("All routes configured.")
	return nil
}
