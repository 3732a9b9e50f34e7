package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/database"
	"github.com/denisAlshanov/learnoverse/internal/models"
	"github.com/denisAlshanov/learnoverse/internal/services/catalog"
	"github.com/denisAlshanov/learnoverse/internal/services/youtube"
)

// Usage: go run ./scripts [videoID|URL ...]
// With no arguments the default catalog is seeded.
func main() {
	fmt.Println("Learnoverse Seed")
	fmt.Println("================")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ids := os.Args[1:]
	if len(ids) == 0 {
		ids = models.DefaultVideoIDs
	}

	ctx := context.Background()

	// The reset below replaces the collection anyway.
	cfg.Store.SeedDefaults = false
	store, err := database.NewVideoStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer store.Close(ctx)

	svc := catalog.NewService(store, youtube.NewMockProvider(cfg.YouTube.MockSeed))

	fmt.Printf("Seeding %s store...\n", cfg.Store.Backend)
	n, err := svc.SeedVideos(ctx, ids)
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	seeded, err := store.ListVideoIDs(ctx)
	if err != nil {
		log.Fatalf("Failed to read back seeded videos: %v", err)
	}
	for _, id := range seeded {
		fmt.Printf("  added %s\n", id)
	}

	fmt.Printf("\nSeeded %d videos\n", n)
}
