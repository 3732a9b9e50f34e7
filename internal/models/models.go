package models

import (
	"time"
)

// DefaultVideoIDs is the canonical demo catalog used by the seed script and
// the in-memory store.
var DefaultVideoIDs = []string{
	"dQw4w9WgXcQ", // Rick Astley - Never Gonna Give You Up
	"kJQP7kiw5Fk", // Luis Fonsi - Despacito ft. Daddy Yankee
	"JGwWNGJdvx8", // Ed Sheeran - Shape of You
	"RgKAFK5djSk", // Wiz Khalifa - See You Again ft. Charlie Puth
	"CevxZvSJLk8", // Katy Perry - Roar
	"hTWKbfoikeg", // Smash Mouth - All Star
	"YQHsXMglC9A", // Adele - Hello
	"fWNaR-rxAic", // Carly Rae Jepsen - Call Me Maybe
	"iLBBRuVDOo4", // PSY - Gangnam Style
	"L_jWHffIx5E", // Smash Mouth - All Star (Official Video)
}

// VideoRecord is the persisted tracking entry for one YouTube video ID.
type VideoRecord struct {
	VideoID   string    `json:"videoId" bson:"videoId" firestore:"videoId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

// VideoMetadata is display data resolved on every read; it is never stored.
type VideoMetadata struct {
	VideoID      string     `json:"videoId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
	Thumbnails   Thumbnails `json:"thumbnails"`
	Duration     string     `json:"duration"`
	ViewCount    string     `json:"viewCount"`
	LikeCount    string     `json:"likeCount"`
	Tags         []string   `json:"tags"`
}

type Thumbnails struct {
	Default  string `json:"default"`
	Medium   string `json:"medium"`
	High     string `json:"high"`
	Standard string `json:"standard,omitempty"`
	Maxres   string `json:"maxres,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type VideoListResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Count   int             `json:"count"`
	Videos  []VideoMetadata `json:"videos"`
	Note    string          `json:"note,omitempty"`
}

type VideoResponse struct {
	Success bool          `json:"success"`
	Video   VideoMetadata `json:"video"`
}

type AddVideoRequest struct {
	VideoID string `json:"videoId"`
}

type AddVideoResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Video   VideoRecord `json:"video"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
