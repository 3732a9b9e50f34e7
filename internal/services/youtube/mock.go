package youtube

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/models"
)

type cannedVideo struct {
	title        string
	channelTitle string
	description  string
	duration     string
	viewCount    string
	likeCount    string
	publishedAt  string
}

var cannedVideos = map[string]cannedVideo{
	"dQw4w9WgXcQ": {
		title:        "Rick Astley - Never Gonna Give You Up (Official Video)",
		channelTitle: "RickAstleyVEVO",
		description:  `The official video for "Never Gonna Give You Up" by Rick Astley`,
		duration:     "PT3M33S",
		viewCount:    "1234567890",
		likeCount:    "12345678",
		publishedAt:  "2009-10-25T06:57:33Z",
	},
	"kJQP7kiw5Fk": {
		title:        "Luis Fonsi - Despacito ft. Daddy Yankee",
		channelTitle: "LuisFonsiVEVO",
		description:  "Official Music Video for Despacito",
		duration:     "PT4M42S",
		viewCount:    "8234567890",
		likeCount:    "45678901",
		publishedAt:  "2017-01-12T16:00:01Z",
	},
	"JGwWNGJdvx8": {
		title:        "Ed Sheeran - Shape of You (Official Video)",
		channelTitle: "Ed Sheeran",
		description:  "Official music video for Shape of You by Ed Sheeran",
		duration:     "PT3M54S",
		viewCount:    "5678901234",
		likeCount:    "23456789",
		publishedAt:  "2017-01-30T11:04:14Z",
	},
}

// MockProvider serves canned metadata for a few well-known videos and
// synthesizes the rest. It never touches the network.
type MockProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ MetadataProvider = (*MockProvider)(nil)

// NewMockProvider seeds the synthesized counts. A zero seed uses the clock,
// so counts differ between runs.
func NewMockProvider(seed int64) *MockProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *MockProvider) Name() string {
	return config.ProviderMock
}

func (p *MockProvider) FetchMetadata(ctx context.Context, videoIDs []string) ([]models.VideoMetadata, error) {
	results := make([]models.VideoMetadata, 0, len(videoIDs))
	for _, id := range videoIDs {
		if canned, ok := cannedVideos[id]; ok {
			results = append(results, models.VideoMetadata{
				VideoID:      id,
				Title:        canned.title,
				Description:  canned.description,
				ChannelTitle: canned.channelTitle,
				PublishedAt:  canned.publishedAt,
				Thumbnails:   mockThumbnails(id),
				Duration:     canned.duration,
				ViewCount:    canned.viewCount,
				LikeCount:    canned.likeCount,
				Tags:         []string{},
			})
			continue
		}

		views, likes := p.randomCounts()
		results = append(results, models.VideoMetadata{
			VideoID:      id,
			Title:        "Sample Video Title - " + id,
			Description:  "This is a sample video description for video ID: " + id,
			ChannelTitle: "Sample Channel",
			PublishedAt:  "2023-01-01T12:00:00Z",
			Thumbnails:   mockThumbnails(id),
			Duration:     "PT4M13S",
			ViewCount:    strconv.FormatInt(views, 10),
			LikeCount:    strconv.FormatInt(likes, 10),
			Tags:         []string{},
		})
	}
	return results, nil
}

func (p *MockProvider) randomCounts() (views, likes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Int63n(1_000_000_000), p.rng.Int63n(10_000_000)
}

func mockThumbnails(videoID string) models.Thumbnails {
	thumbs := thumbnailsFor(videoID)
	thumbs.Standard = ""
	thumbs.Maxres = ""
	return thumbs
}
