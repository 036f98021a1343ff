// Package youtube contains YouTube-specific data models
package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Period is the symbolic recency window selected for a search
type Period string

const (
	PeriodAll   Period = "all"
	PeriodHour  Period = "hour"
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods lists every supported period in selector order
var Periods = []Period{PeriodAll, PeriodHour, PeriodToday, PeriodWeek, PeriodMonth, PeriodYear}

// ParsePeriod maps text to a Period. Unknown values resolve to PeriodAll.
func ParsePeriod(s string) Period {
	if !IsValidPeriod(s) {
		return PeriodAll
	}
	return Period(strings.ToLower(strings.TrimSpace(s)))
}

// IsValidPeriod reports whether s names a supported period
func IsValidPeriod(s string) bool {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Periods {
		if p == known {
			return true
		}
	}
	return false
}

// SearchRequest is the immutable input to a search run
type SearchRequest struct {
	Keyword    string `json:"keyword"`
	MaxResults int    `json:"maxResults"`
	Period     Period `json:"period"`
	Region     string `json:"region,omitempty"`
}

// Validate checks the request and normalises the region code in place.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return fmt.Errorf("keyword cannot be empty")
	}

	if r.MaxResults < 1 {
		return fmt.Errorf("max results must be at least 1, got %d", r.MaxResults)
	}

	region, err := NormalizeRegion(r.Region)
	if err != nil {
		return err
	}
	r.Region = region

	return nil
}

// NormalizeRegion validates an ISO 3166-1 alpha-2 country code and returns it upper-cased.
// An empty code means "no region filter" and is returned unchanged.
func NormalizeRegion(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil
	}
	if len(code) != 2 {
		return "", fmt.Errorf("invalid region code '%s': expected a two-letter country code", code)
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", fmt.Errorf("invalid region code '%s'", code)
	}
	return region.String(), nil
}

// SearchHit is one search result reference before enrichment
type SearchHit struct {
	VideoID      string
	ChannelID    string
	Title        string
	Description  string
	Thumbnail    string
	ChannelTitle string
	PublishedAt  time.Time
}

// SearchPageRequest holds the parameters of a single search call
type SearchPageRequest struct {
	Query          string
	MaxResults     int
	PublishedAfter *time.Time
	RegionCode     string
	PageToken      string
}

// SearchPage is one page of search results
type SearchPage struct {
	Hits          []SearchHit
	NextPageToken string
}

// VideoStats holds per-video statistics and the content duration
type VideoStats struct {
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Duration     string
}

// ChannelStats holds per-channel statistics
type ChannelStats struct {
	SubscriberCount int64
	VideoCount      int64
	ViewCount       int64
}

// EnrichedVideo is one search hit joined with its statistics and derived metrics
type EnrichedVideo struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Thumbnail             string    `json:"thumbnail"`
	ChannelTitle          string    `json:"channelTitle"`
	ChannelID             string    `json:"channelId"`
	PublishedAt           time.Time `json:"publishedAt"`
	ViewCount             int64     `json:"viewCount"`
	LikeCount             int64     `json:"likeCount"`
	CommentCount          int64     `json:"commentCount"`
	SubscriberCount       int64     `json:"subscriberCount"`
	VideoCount            int64     `json:"videoCount"`
	ChannelViewCount      int64     `json:"channelViewCount"`
	ChannelContribution   float64   `json:"channelContribution"`
	PerformanceMultiplier float64   `json:"performanceMultiplier"`
	Duration              string    `json:"duration"`
	DurationInSeconds     int       `json:"durationInSeconds"`
	StatsDegraded         bool      `json:"statsDegraded,omitempty"`
}

// YouTubeClient defines the methods needed for YouTube API operations
type YouTubeClient interface {
	// Connect establishes a connection to the YouTube API
	Connect(ctx context.Context) error

	// Disconnect closes the connection to the YouTube API
	Disconnect(ctx context.Context) error

	// SearchVideos fetches a single page of keyword search results
	SearchVideos(ctx context.Context, req SearchPageRequest) (*SearchPage, error)

	// GetVideoStatistics retrieves statistics and duration for one video
	GetVideoStatistics(ctx context.Context, videoID string) (VideoStats, error)

	// GetChannelStatistics retrieves statistics for one channel
	GetChannelStatistics(ctx context.Context, channelID string) (ChannelStats, error)
}
