package database

import (
	"context"
	"errors"
	"strings"

	"github.com/denisAlshanov/learnoverse/internal/models"
)

var (
	// ErrInvalidVideoID indicates an empty or blank video ID.
	ErrInvalidVideoID = errors.New("video id is required")
	// ErrVideoExists indicates the video ID is already tracked.
	ErrVideoExists = errors.New("video already exists")
)

// VideoStore persists the set of tracked video IDs.
type VideoStore interface {
	// ListVideoIDs returns every tracked ID, oldest first.
	ListVideoIDs(ctx context.Context) ([]string, error)
	VideoExists(ctx context.Context, videoID string) (bool, error)
	// AddVideo fails with ErrInvalidVideoID or ErrVideoExists.
	AddVideo(ctx context.Context, videoID string) (*models.VideoRecord, error)
	// SeedVideos replaces the whole collection with videoIDs and returns the
	// number of records inserted.
	SeedVideos(ctx context.Context, videoIDs []string) (int, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func normalizeVideoID(videoID string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", ErrInvalidVideoID
	}
	return videoID, nil
}

// uniqueVideoIDs trims and de-duplicates ids, keeping first occurrences. Any
// blank ID rejects the whole batch so a seed never half-applies.
func uniqueVideoIDs(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		normalized, err := normalizeVideoID(id)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result, nil
}
