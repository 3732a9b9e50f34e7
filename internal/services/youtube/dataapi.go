package youtube

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/models"
)

// maxIDsPerCall is the videos.list limit on comma-joined IDs.
const maxIDsPerCall = 50

var videoParts = []string{"snippet", "contentDetails", "statistics"}

// DataAPIProvider resolves metadata with the YouTube Data API v3.
type DataAPIProvider struct {
	service *ytapi.Service
	timeout time.Duration
}

var _ MetadataProvider = (*DataAPIProvider)(nil)

// NewDataAPIProvider authenticates with apiKey. Extra options are appended
// after the key, which lets tests point the client at a local server.
func NewDataAPIProvider(ctx context.Context, apiKey string, timeout time.Duration, opts ...option.ClientOption) (*DataAPIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("YouTube API key is required")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := ytapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &DataAPIProvider{service: service, timeout: timeout}, nil
}

func (p *DataAPIProvider) Name() string {
	return config.ProviderDataAPI
}

func (p *DataAPIProvider) FetchMetadata(ctx context.Context, videoIDs []string) ([]models.VideoMetadata, error) {
	results := make([]models.VideoMetadata, 0, len(videoIDs))
	if len(videoIDs) == 0 {
		return results, nil
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	for start := 0; start < len(videoIDs); start += maxIDsPerCall {
		end := min(start+maxIDsPerCall, len(videoIDs))

		resp, err := p.service.Videos.
			List(videoParts).
			Id(strings.Join(videoIDs[start:end], ",")).
			Context(ctx).
			Do()
		if err != nil {
			return nil, &UpstreamError{Provider: p.Name(), Err: err}
		}

		for _, item := range resp.Items {
			md, err := metadataFromItem(item)
			if err != nil {
				return nil, &UpstreamError{Provider: p.Name(), Err: err}
			}
			results = append(results, md)
		}
	}

	return results, nil
}

func metadataFromItem(item *ytapi.Video) (models.VideoMetadata, error) {
	if item == nil || item.Id == "" {
		return models.VideoMetadata{}, errors.New("response item has no id")
	}
	if item.Snippet == nil {
		return models.VideoMetadata{}, fmt.Errorf("response item %s has no snippet", item.Id)
	}

	md := models.VideoMetadata{
		VideoID:      item.Id,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelTitle: item.Snippet.ChannelTitle,
		PublishedAt:  item.Snippet.PublishedAt,
		Thumbnails:   thumbnailsFromDetails(item.Snippet.Thumbnails),
		ViewCount:    "0",
		LikeCount:    "0",
		Tags:         item.Snippet.Tags,
	}
	if md.Tags == nil {
		md.Tags = []string{}
	}
	if item.ContentDetails != nil {
		md.Duration = item.ContentDetails.Duration
	}
	if item.Statistics != nil {
		md.ViewCount = strconv.FormatUint(item.Statistics.ViewCount, 10)
		md.LikeCount = strconv.FormatUint(item.Statistics.LikeCount, 10)
	}

	return md, nil
}

func thumbnailsFromDetails(details *ytapi.ThumbnailDetails) models.Thumbnails {
	if details == nil {
		return models.Thumbnails{}
	}
	return models.Thumbnails{
		Default:  thumbnailURL(details.Default),
		Medium:   thumbnailURL(details.Medium),
		High:     thumbnailURL(details.High),
		Standard: thumbnailURL(details.Standard),
		Maxres:   thumbnailURL(details.Maxres),
	}
}

func thumbnailURL(t *ytapi.Thumbnail) string {
	if t == nil {
		return ""
	}
	return t.Url
}
