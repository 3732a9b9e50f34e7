package youtube

import (
	"context"
	"fmt"

	"github.com/denisAlshanov/learnoverse/internal/config"
)

// NewMetadataProvider builds the provider named by cfg.Provider.
func NewMetadataProvider(ctx context.Context, cfg *config.YouTubeConfig) (MetadataProvider, error) {
	switch cfg.Provider {
	case config.ProviderDataAPI:
		provider, err := NewDataAPIProvider(ctx, cfg.APIKey, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case config.ProviderPlayer:
		return NewPlayerProvider(cfg.Timeout), nil
	case config.ProviderMock:
		return NewMockProvider(cfg.MockSeed), nil
	default:
		return nil, fmt.Errorf("unknown metadata provider %q", cfg.Provider)
	}
}
