package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	kkyoutube "github.com/kkdai/youtube/v2"
	"google.golang.org/api/option"

	"github.com/denisAlshanov/learnoverse/internal/config"
)

const videosResponse = `{
  "items": [
    {
      "id": "dQw4w9WgXcQ",
      "snippet": {
        "title": "Rick Astley - Never Gonna Give You Up (Official Video)",
        "description": "The official video",
        "channelTitle": "Rick Astley",
        "publishedAt": "2009-10-25T06:57:33Z",
        "tags": ["rick astley", "never gonna give you up"],
        "thumbnails": {
          "default": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg"},
          "medium": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/mqdefault.jpg"},
          "high": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"},
          "maxres": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"}
        }
      },
      "contentDetails": {"duration": "PT3M33S"},
      "statistics": {"viewCount": "1500000000", "likeCount": "17000000"}
    },
    {
      "id": "kJQP7kiw5Fk",
      "snippet": {
        "title": "Luis Fonsi - Despacito ft. Daddy Yankee",
        "channelTitle": "LuisFonsiVEVO",
        "publishedAt": "2017-01-12T16:00:01Z"
      }
    }
  ]
}`

func newTestDataAPIProvider(t *testing.T, handler http.HandlerFunc) *DataAPIProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewDataAPIProvider(context.Background(), "test-key", 5*time.Second,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewDataAPIProvider returned error: %v", err)
	}
	return provider
}

func TestDataAPIProviderFetchMetadata(t *testing.T) {
	var gotPath, gotIDs, gotParts string
	provider := newTestDataAPIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotIDs = r.URL.Query().Get("id")
		gotParts = strings.Join(r.URL.Query()["part"], ",")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, videosResponse)
	})

	results, err := provider.FetchMetadata(context.Background(), []string{"dQw4w9WgXcQ", "kJQP7kiw5Fk", "missing0000"})
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}

	if gotPath != "/youtube/v3/videos" {
		t.Errorf("Unexpected request path %q", gotPath)
	}
	if gotIDs != "dQw4w9WgXcQ,kJQP7kiw5Fk,missing0000" {
		t.Errorf("Unexpected id parameter %q", gotIDs)
	}
	for _, part := range videoParts {
		if !strings.Contains(gotParts, part) {
			t.Errorf("Expected part %q in %q", part, gotParts)
		}
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	byID := make(map[string]int)
	for i, md := range results {
		byID[md.VideoID] = i
	}

	rick := results[byID["dQw4w9WgXcQ"]]
	if rick.Duration != "PT3M33S" || rick.ViewCount != "1500000000" || rick.LikeCount != "17000000" {
		t.Errorf("Unexpected details %+v", rick)
	}
	if rick.Thumbnails.Maxres == "" || rick.Thumbnails.Standard != "" {
		t.Errorf("Unexpected thumbnails %+v", rick.Thumbnails)
	}
	if len(rick.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", rick.Tags)
	}

	fonsi := results[byID["kJQP7kiw5Fk"]]
	if fonsi.ViewCount != "0" || fonsi.LikeCount != "0" {
		t.Errorf("Expected zero counts without statistics, got %+v", fonsi)
	}
	if fonsi.Tags == nil {
		t.Error("Expected empty tag slice, got nil")
	}
}

func TestDataAPIProviderChunksLargeBatches(t *testing.T) {
	var calls atomic.Int32
	provider := newTestDataAPIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if n := len(strings.Split(r.URL.Query().Get("id"), ",")); n > maxIDsPerCall {
			t.Errorf("Request carried %d IDs", n)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": []}`)
	})

	ids := make([]string, maxIDsPerCall+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("video%06d", i)
	}

	if _, err := provider.FetchMetadata(context.Background(), ids); err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 calls, got %d", calls.Load())
	}
}

func TestDataAPIProviderEmptyInputSkipsCall(t *testing.T) {
	provider := newTestDataAPIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Unexpected upstream call")
	})

	results, err := provider.FetchMetadata(context.Background(), nil)
	if err != nil || len(results) != 0 {
		t.Errorf("Expected empty result, got %v (err %v)", results, err)
	}
}

func TestDataAPIProviderUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`)
			},
		},
		{
			name: "item without snippet",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"items": [{"id": "dQw4w9WgXcQ"}]}`)
			},
		},
		{
			name: "item without id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"items": [{"snippet": {"title": "x"}}]}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestDataAPIProvider(t, tt.handler)

			_, err := provider.FetchMetadata(context.Background(), []string{"dQw4w9WgXcQ"})
			var upstream *UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("Expected UpstreamError, got %v", err)
			}
			if upstream.Provider != config.ProviderDataAPI {
				t.Errorf("Unexpected provider %q", upstream.Provider)
			}
		})
	}
}

func TestNewDataAPIProviderRequiresKey(t *testing.T) {
	if _, err := NewDataAPIProvider(context.Background(), "", time.Second); err == nil {
		t.Fatal("Expected error for missing API key")
	}
}

func TestMockProviderKnownVideoIsStable(t *testing.T) {
	first := NewMockProvider(1)
	second := NewMockProvider(99)

	a, _ := first.FetchMetadata(context.Background(), []string{"dQw4w9WgXcQ"})
	b, _ := second.FetchMetadata(context.Background(), []string{"dQw4w9WgXcQ"})

	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("Expected one result each, got %d and %d", len(a), len(b))
	}
	if a[0].Title != "Rick Astley - Never Gonna Give You Up (Official Video)" || a[0].ChannelTitle != "RickAstleyVEVO" {
		t.Errorf("Unexpected canned metadata %+v", a[0])
	}
	if a[0].Title != b[0].Title || a[0].ViewCount != b[0].ViewCount {
		t.Error("Expected canned metadata to ignore the seed")
	}
}

func TestMockProviderSynthesizesUnknownVideo(t *testing.T) {
	provider := NewMockProvider(42)

	results, err := provider.FetchMetadata(context.Background(), []string{"unknown1234"})
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected one result, got %d", len(results))
	}

	md := results[0]
	if md.Title == "" || !strings.Contains(md.Title, "unknown1234") {
		t.Errorf("Expected synthesized title containing the ID, got %q", md.Title)
	}
	if md.Duration != "PT4M13S" || md.ChannelTitle != "Sample Channel" {
		t.Errorf("Unexpected synthesized metadata %+v", md)
	}
}

func TestMockProviderSeedIsReproducible(t *testing.T) {
	ids := []string{"aaaaaaaaaaa", "bbbbbbbbbbb"}

	a, _ := NewMockProvider(7).FetchMetadata(context.Background(), ids)
	b, _ := NewMockProvider(7).FetchMetadata(context.Background(), ids)

	for i := range a {
		if a[i].ViewCount != b[i].ViewCount || a[i].LikeCount != b[i].LikeCount {
			t.Errorf("Expected equal counts for %s, got %s/%s and %s/%s",
				a[i].VideoID, a[i].ViewCount, a[i].LikeCount, b[i].ViewCount, b[i].LikeCount)
		}
	}
}

func TestPlayerProviderSkipsInvalidIDs(t *testing.T) {
	provider := NewPlayerProvider(time.Second)

	results, err := provider.FetchMetadata(context.Background(), []string{"short", "bad&id=value"})
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %v", results)
	}
}

func TestMetadataFromPlayer(t *testing.T) {
	video := &kkyoutube.Video{
		ID:          "dQw4w9WgXcQ",
		Title:       "Never Gonna Give You Up",
		Author:      "Rick Astley",
		Duration:    3*time.Minute + 33*time.Second,
		Views:       42,
		PublishDate: time.Date(2009, time.October, 25, 6, 57, 33, 0, time.UTC),
	}

	md := metadataFromPlayer(video)

	if md.ChannelTitle != "Rick Astley" || md.Duration != "PT3M33S" || md.ViewCount != "42" || md.LikeCount != "0" {
		t.Errorf("Unexpected metadata %+v", md)
	}
	if md.PublishedAt != "2009-10-25T06:57:33Z" {
		t.Errorf("Unexpected publishedAt %q", md.PublishedAt)
	}
	if md.Thumbnails.High != "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("Unexpected thumbnail %q", md.Thumbnails.High)
	}
}

func TestIsUnresolvable(t *testing.T) {
	if !isUnresolvable(fmt.Errorf("wrapped: %w", kkyoutube.ErrVideoPrivate)) {
		t.Error("Expected private video to be unresolvable")
	}
	if isUnresolvable(errors.New("connection reset")) {
		t.Error("Expected network error to be reported")
	}
}

func TestFormatISODuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "PT0S"},
		{45 * time.Second, "PT45S"},
		{3*time.Minute + 33*time.Second, "PT3M33S"},
		{time.Hour + 2*time.Minute, "PT1H2M"},
		{2*time.Hour + 5*time.Second, "PT2H5S"},
	}

	for _, tt := range tests {
		if got := formatISODuration(tt.in); got != tt.want {
			t.Errorf("formatISODuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseYouTubeURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/kJQP7kiw5Fk", "kJQP7kiw5Fk", false},
		{"https://www.youtube.com/embed/JGwWNGJdvx8", "JGwWNGJdvx8", false},
		{"https://www.youtube.com/shorts/RgKAFK5djSk", "RgKAFK5djSk", false},
		{"https://example.com/video", "", true},
	}

	for _, tt := range tests {
		got, err := ParseYouTubeURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseYouTubeURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseYouTubeURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestNormalizeVideoID(t *testing.T) {
	tests := map[string]string{
		"dQw4w9WgXcQ":                  "dQw4w9WgXcQ",
		"  kJQP7kiw5Fk ":               "kJQP7kiw5Fk",
		"https://youtu.be/JGwWNGJdvx8": "JGwWNGJdvx8",
		"":                             "",
	}

	for in, want := range tests {
		got, err := NormalizeVideoID(in)
		if err != nil {
			t.Errorf("NormalizeVideoID(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("NormalizeVideoID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewMetadataProvider(t *testing.T) {
	tests := []struct {
		cfg      config.YouTubeConfig
		wantName string
		wantErr  bool
	}{
		{cfg: config.YouTubeConfig{Provider: config.ProviderMock}, wantName: config.ProviderMock},
		{cfg: config.YouTubeConfig{Provider: config.ProviderPlayer, Timeout: time.Second}, wantName: config.ProviderPlayer},
		{cfg: config.YouTubeConfig{Provider: config.ProviderDataAPI, APIKey: "key"}, wantName: config.ProviderDataAPI},
		{cfg: config.YouTubeConfig{Provider: config.ProviderDataAPI}, wantErr: true},
		{cfg: config.YouTubeConfig{Provider: "vimeo"}, wantErr: true},
	}

	for _, tt := range tests {
		provider, err := NewMetadataProvider(context.Background(), &tt.cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewMetadataProvider(%q) error = %v, wantErr %v", tt.cfg.Provider, err, tt.wantErr)
			continue
		}
		if err == nil && provider.Name() != tt.wantName {
			t.Errorf("Expected provider %q, got %q", tt.wantName, provider.Name())
		}
	}
}
