package main

import (
	"context"
	"fmt"
	"os"

	"github.com/anonto42/publication-scheduler/backend/internal/router"
	"github.com/anonto42/publication-scheduler/backend/internal/seed"
	"github.com/anonto42/publication-scheduler/backend/pkg/config"
	"github.com/anonto42/publication-scheduler/backend/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCommand seeds the database; its clean subcommand only empties it
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Reset the database and insert demo medias, posts and publications",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				result, err := s.Seed(ctx)
				if err != nil {
					return fmt.Errorf("seed failed: %w", err)
				}
				for _, p := range result.Publications {
					fmt.Printf("publication %d: media %d, post %d at %s\n", p.ID, p.MediaID, p.PostID, p.Date.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Delete every publication, post and media",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				if err := s.Clean(ctx); err != nil {
					return fmt.Errorf("clean failed: %w", err)
				}
				fmt.Println("Database cleaned.")
				return nil
			})
		},
	})

	return rootCmd
}

func withSeeder(ctx context.Context, run func(context.Context, *seed.Seeder) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := logger.Init(cfg.Log); err != nil {
		return err
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	stores, err := router.NewStores(ctx, db)
	if err != nil {
		return err
	}
	return run(ctx, seed.NewSeeder(stores))
}
