package database

import (
	"context"
	"fmt"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/models"
	"github.com/denisAlshanov/learnoverse/internal/utils"
)

// NewVideoStore opens the backend selected by cfg.Store.Backend. The caller
// owns the returned store and must Close it on shutdown.
func NewVideoStore(ctx context.Context, cfg *config.Config) (VideoStore, error) {
	var (
		store VideoStore
		err   error
	)

	switch cfg.Store.Backend {
	case config.StoreBackendMongo:
		store, err = NewMongoDB(&cfg.MongoDB)
	case config.StoreBackendFirestore:
		store, err = NewFirestoreDB(ctx, &cfg.Firestore)
	case config.StoreBackendMemory:
		store = NewMemoryDB()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}

	if cfg.Store.SeedDefaults {
		n, err := store.SeedVideos(ctx, models.DefaultVideoIDs)
		if err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("failed to seed default videos: %w", err)
		}
		utils.LogInfo(ctx, "Seeded default videos", utils.Fields{
			"backend": cfg.Store.Backend,
			"count":   n,
		})
	}

	return store, nil
}
