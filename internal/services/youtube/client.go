package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/models"
)

var (
	youtubeURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^https?://(www\.)?youtube\.com/watch\?v=[\w-]+`),
		regexp.MustCompile(`^https?://(www\.)?youtube\.com/embed/[\w-]+`),
		regexp.MustCompile(`^https?://youtu\.be/[\w-]+`),
		regexp.MustCompile(`^https?://(www\.)?youtube\.com/v/[\w-]+`),
		regexp.MustCompile(`^https?://(www\.)?youtube\.com/shorts/[\w-]+`),
		regexp.MustCompile(`^https?://(m\.)?youtube\.com/watch\?v=[\w-]+`),
	}
	videoIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`)
)

// IsYouTubeURL checks if the provided URL is a valid YouTube URL
func IsYouTubeURL(url string) bool {
	for _, pattern := range youtubeURLPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

// ParseYouTubeURL extracts video ID from YouTube URL
func ParseYouTubeURL(url string) (string, error) {
	matches := videoIDPattern.FindStringSubmatch(url)
	if len(matches) > 1 {
		return matches[1], nil
	}
	return "", fmt.Errorf("could not extract video ID from YouTube URL: %s", url)
}

// NormalizeVideoID accepts either a bare video ID or a YouTube URL.
func NormalizeVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if IsYouTubeURL(input) {
		return ParseYouTubeURL(input)
	}
	return input, nil
}

// PlayerProvider reads metadata from the public player endpoint, so it needs
// no API key. Like counts are not exposed there and are reported as "0".
type PlayerProvider struct {
	client *youtube.Client
}

var _ MetadataProvider = (*PlayerProvider)(nil)

// NewPlayerProvider creates a keyless provider with the given request timeout.
func NewPlayerProvider(timeout time.Duration) *PlayerProvider {
	httpClient := &http.Client{
		Timeout: timeout,
	}

	return &PlayerProvider{
		client: &youtube.Client{HTTPClient: httpClient},
	}
}

func (p *PlayerProvider) Name() string {
	return config.ProviderPlayer
}

func (p *PlayerProvider) FetchMetadata(ctx context.Context, videoIDs []string) ([]models.VideoMetadata, error) {
	results := make([]models.VideoMetadata, 0, len(videoIDs))

	for _, id := range videoIDs {
		video, err := p.client.GetVideoContext(ctx, id)
		if err != nil {
			if isUnresolvable(err) {
				continue
			}
			return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("video %s: %w", id, err)}
		}

		results = append(results, metadataFromPlayer(video))
	}

	return results, nil
}

// isUnresolvable reports errors that mean "no such public video" rather than
// an upstream outage.
func isUnresolvable(err error) bool {
	return errors.Is(err, youtube.ErrVideoPrivate) ||
		errors.Is(err, youtube.ErrInvalidCharactersInVideoID) ||
		errors.Is(err, youtube.ErrVideoIDMinLength)
}

func metadataFromPlayer(video *youtube.Video) models.VideoMetadata {
	md := models.VideoMetadata{
		VideoID:      video.ID,
		Title:        video.Title,
		Description:  video.Description,
		ChannelTitle: video.Author,
		Thumbnails:   thumbnailsFor(video.ID),
		Duration:     formatISODuration(video.Duration),
		ViewCount:    strconv.Itoa(video.Views),
		LikeCount:    "0",
		Tags:         []string{},
	}
	if !video.PublishDate.IsZero() {
		md.PublishedAt = video.PublishDate.UTC().Format(time.RFC3339)
	}
	return md
}

func thumbnailsFor(videoID string) models.Thumbnails {
	base := "https://i.ytimg.com/vi/" + videoID + "/"
	return models.Thumbnails{
		Default:  base + "default.jpg",
		Medium:   base + "mqdefault.jpg",
		High:     base + "hqdefault.jpg",
		Standard: base + "sddefault.jpg",
		Maxres:   base + "maxresdefault.jpg",
	}
}

// formatISODuration renders d as an ISO-8601 duration such as PT1H2M3S.
func formatISODuration(d time.Duration) string {
	if d < time.Second {
		return "PT0S"
	}

	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var b strings.Builder
	b.WriteString("PT")
	if hours > 0 {
		b.WriteString(strconv.FormatInt(hours, 10) + "H")
	}
	if minutes > 0 {
		b.WriteString(strconv.FormatInt(minutes, 10) + "M")
	}
	if seconds > 0 {
		b.WriteString(strconv.FormatInt(seconds, 10) + "S")
	}
	return b.String()
}
