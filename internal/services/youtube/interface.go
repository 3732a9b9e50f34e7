package youtube

import (
	"context"
	"fmt"

	"github.com/denisAlshanov/learnoverse/internal/models"
)

// MetadataProvider resolves tracked video IDs into display metadata.
type MetadataProvider interface {
	// FetchMetadata returns one entry per resolvable ID. IDs the upstream
	// does not know are left out, and result order is not guaranteed to
	// follow videoIDs.
	FetchMetadata(ctx context.Context, videoIDs []string) ([]models.VideoMetadata, error)

	// Name identifies the provider in logs and responses.
	Name() string
}

// UpstreamError reports a failed or malformed metadata lookup.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s metadata lookup failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
