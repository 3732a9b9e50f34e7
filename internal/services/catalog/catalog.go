package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/database"
	"github.com/denisAlshanov/learnoverse/internal/models"
	"github.com/denisAlshanov/learnoverse/internal/services/youtube"
	"github.com/denisAlshanov/learnoverse/internal/utils"
)

const (
	EmptyCatalogMessage = "No videos found in database. Please seed the database first."
	DemoDataNote        = "This is demo data for testing purposes"
)

// Service joins the tracked IDs in a VideoStore with live metadata from a
// MetadataProvider. Every error it returns is an *utils.AppError.
type Service struct {
	store    database.VideoStore
	provider youtube.MetadataProvider
}

func NewService(store database.VideoStore, provider youtube.MetadataProvider) *Service {
	return &Service{
		store:    store,
		provider: provider,
	}
}

// ProviderName reports which metadata provider backs the catalog.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// ListVideos resolves metadata for every tracked video. An empty store is not
// an error: the response carries success=false and an explanatory message.
func (s *Service) ListVideos(ctx context.Context) (*models.VideoListResponse, error) {
	ids, err := s.store.ListVideoIDs(ctx)
	if err != nil {
		utils.LogError(ctx, "Failed to list video IDs", err)
		return nil, utils.NewDatabaseError("Error fetching videos", err)
	}

	if len(ids) == 0 {
		return &models.VideoListResponse{
			Success: false,
			Message: EmptyCatalogMessage,
			Count:   0,
			Videos:  []models.VideoMetadata{},
		}, nil
	}

	videos, err := s.provider.FetchMetadata(ctx, ids)
	if err != nil {
		utils.LogError(ctx, "Failed to fetch video metadata", err, utils.Fields{
			"provider": s.provider.Name(),
			"count":    len(ids),
		})
		return nil, utils.NewUpstreamError("Error fetching videos", err)
	}

	videos = orderByIDs(videos, ids)
	resp := &models.VideoListResponse{
		Success: true,
		Count:   len(videos),
		Videos:  videos,
	}
	if s.provider.Name() == config.ProviderMock {
		resp.Note = DemoDataNote
	}

	return resp, nil
}

func (s *Service) GetVideo(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	// A blank ID can never be tracked.
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, utils.NewNotFoundError("Video not found in database")
	}

	exists, err := s.store.VideoExists(ctx, videoID)
	if err != nil {
		utils.LogError(ctx, "Failed to look up video", err, utils.Fields{"video_id": videoID})
		return nil, utils.NewDatabaseError("Error fetching video", err)
	}
	if !exists {
		return nil, utils.NewNotFoundError("Video not found in database")
	}

	videos, err := s.provider.FetchMetadata(ctx, []string{videoID})
	if err != nil {
		utils.LogError(ctx, "Failed to fetch video metadata", err, utils.Fields{
			"provider": s.provider.Name(),
			"video_id": videoID,
		})
		return nil, utils.NewUpstreamError("Error fetching video", err)
	}

	// Providers do not promise positional results, so match on the ID.
	for i := range videos {
		if videos[i].VideoID == videoID {
			return &videos[i], nil
		}
	}

	return nil, utils.NewNotFoundError("Video not found on YouTube")
}

// AddVideo starts tracking a video. input may be a bare ID or a YouTube URL.
func (s *Service) AddVideo(ctx context.Context, input string) (*models.VideoRecord, error) {
	videoID, err := youtube.NormalizeVideoID(input)
	if err != nil {
		return nil, utils.NewInvalidInputError("Invalid YouTube URL")
	}
	if videoID == "" {
		return nil, utils.NewInvalidInputError("Video ID is required")
	}

	record, err := s.store.AddVideo(ctx, videoID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrVideoExists):
			return nil, utils.NewConflictError("Video already exists in database")
		case errors.Is(err, database.ErrInvalidVideoID):
			return nil, utils.NewInvalidInputError("Video ID is required")
		default:
			utils.LogError(ctx, "Failed to add video", err, utils.Fields{"video_id": videoID})
			return nil, utils.NewDatabaseError("Error adding video", err)
		}
	}

	utils.LogInfo(ctx, "Video added", utils.Fields{"video_id": record.VideoID})
	return record, nil
}

// SeedVideos replaces the tracked set with inputs, which may mix IDs and URLs.
func (s *Service) SeedVideos(ctx context.Context, inputs []string) (int, error) {
	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		id, err := youtube.NormalizeVideoID(input)
		if err != nil {
			return 0, utils.NewInvalidInputError("Invalid YouTube URL: " + input)
		}
		ids = append(ids, id)
	}

	n, err := s.store.SeedVideos(ctx, ids)
	if err != nil {
		if errors.Is(err, database.ErrInvalidVideoID) {
			return 0, utils.NewInvalidInputError("Video ID is required")
		}
		return 0, utils.NewDatabaseError("Error seeding videos", err)
	}

	utils.LogInfo(ctx, "Videos seeded", utils.Fields{"count": n})
	return n, nil
}

// Ping checks the store backing the catalog.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// orderByIDs sorts videos into the order of ids. Videos whose ID is not in ids
// keep their relative order at the end.
func orderByIDs(videos []models.VideoMetadata, ids []string) []models.VideoMetadata {
	position := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, ok := position[id]; !ok {
			position[id] = i
		}
	}

	ordered := make([]models.VideoMetadata, 0, len(videos))
	var rest []models.VideoMetadata
	slots := make([][]models.VideoMetadata, len(ids))
	for _, v := range videos {
		if i, ok := position[v.VideoID]; ok {
			slots[i] = append(slots[i], v)
			continue
		}
		rest = append(rest, v)
	}
	for _, slot := range slots {
		ordered = append(ordered, slot...)
	}
	return append(ordered, rest...)
}
