package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

const defaultRequestTimeout = 30 * time.Second

// DataClientConfig contains optional settings for the YouTube Data API client
type DataClientConfig struct {
	RequestTimeout time.Duration // Per HTTP request. Default: 30s
	Endpoint       string        // Overrides the API base URL. Default: the public endpoint
}

// YouTubeDataClient implements the youtube.YouTubeClient interface for accessing YouTube Data API
type YouTubeDataClient struct {
	service  *ytapi.Service
	apiKey   string
	timeout  time.Duration
	endpoint string
}

// NewYouTubeDataClient creates a new YouTube data client
func NewYouTubeDataClient(apiKey string, config *DataClientConfig) (*YouTubeDataClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: YouTube API key is required", youtube.ErrInvalidCredential)
	}

	// Set defaults
	if config == nil {
		config = &DataClientConfig{}
	}
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &YouTubeDataClient{
		apiKey:   apiKey,
		timeout:  timeout,
		endpoint: config.Endpoint,
	}, nil
}

// Connect establishes a connection to the YouTube API
func (c *YouTubeDataClient) Connect(ctx context.Context) error {
	log.Info().Msg("Connecting to YouTube API")

	// The key travels as a query parameter added by the transport, since a custom
	// HTTP client takes precedence over option.WithAPIKey.
	httpClient := &http.Client{
		Timeout:   c.timeout,
		Transport: &transport.APIKey{Key: c.apiKey},
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create YouTube service")
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	c.service = service
	log.Info().Dur("request_timeout", c.timeout).Msg("Connected to YouTube API successfully")
	return nil
}

// Disconnect closes the connection to the YouTube API
func (c *YouTubeDataClient) Disconnect(ctx context.Context) error {
	// No explicit disconnect needed for the YouTube API client
	c.service = nil
	return nil
}

// SearchVideos fetches one page of keyword search results ordered by relevance
func (c *YouTubeDataClient) SearchVideos(ctx context.Context, req youtube.SearchPageRequest) (*youtube.SearchPage, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	call := c.service.Search.List([]string{"snippet"}).
		Q(req.Query).
		Type("video").
		Order("relevance").
		MaxResults(int64(req.MaxResults))

	if req.PublishedAfter != nil {
		call = call.PublishedAfter(req.PublishedAfter.UTC().Format(time.RFC3339))
	}
	if req.RegionCode != "" {
		call = call.RegionCode(req.RegionCode)
	}
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	log.Debug().
		Str("query", req.Query).
		Int("max_results", req.MaxResults).
		Str("region", req.RegionCode).
		Bool("has_page_token", req.PageToken != "").
		Msg("Searching YouTube videos")

	response, err := call.Context(ctx).Do()
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Msg("Failed to search videos on YouTube API")
		return nil, fmt.Errorf("failed to search videos: %w", classifyAPIError(err))
	}

	page := &youtube.SearchPage{
		Hits:          make([]youtube.SearchHit, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}

	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		// Parse published date
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			log.Warn().Err(err).Str("date", item.Snippet.PublishedAt).Msg("Failed to parse video published date")
		}

		page.Hits = append(page.Hits, youtube.SearchHit{
			VideoID:      item.Id.VideoId,
			ChannelID:    item.Snippet.ChannelId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    pickThumbnail(item.Snippet.Thumbnails),
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  publishedAt,
		})
	}

	return page, nil
}

// GetVideoStatistics retrieves view, like and comment counts plus the duration of a video
func (c *YouTubeDataClient) GetVideoStatistics(ctx context.Context, videoID string) (youtube.VideoStats, error) {
	if c.service == nil {
		return youtube.VideoStats{}, fmt.Errorf("YouTube client not connected")
	}

	response, err := c.service.Videos.List([]string{"statistics", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return youtube.VideoStats{}, fmt.Errorf("failed to get video statistics: %w", classifyAPIError(err))
	}

	if len(response.Items) == 0 {
		return youtube.VideoStats{}, fmt.Errorf("video %s: %w", videoID, youtube.ErrNotFound)
	}

	item := response.Items[0]
	stats := youtube.VideoStats{}
	if item.Statistics != nil {
		stats.ViewCount = int64(item.Statistics.ViewCount)
		stats.LikeCount = int64(item.Statistics.LikeCount)
		stats.CommentCount = int64(item.Statistics.CommentCount)
	}
	if item.ContentDetails != nil {
		stats.Duration = item.ContentDetails.Duration
	}

	log.Debug().
		Str("video_id", videoID).
		Int64("view_count", stats.ViewCount).
		Str("duration", stats.Duration).
		Msg("YouTube video statistics retrieved")

	return stats, nil
}

// GetChannelStatistics retrieves subscriber, video and view counts of a channel
func (c *YouTubeDataClient) GetChannelStatistics(ctx context.Context, channelID string) (youtube.ChannelStats, error) {
	if c.service == nil {
		return youtube.ChannelStats{}, fmt.Errorf("YouTube client not connected")
	}

	response, err := c.service.Channels.List([]string{"statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return youtube.ChannelStats{}, fmt.Errorf("failed to get channel statistics: %w", classifyAPIError(err))
	}

	if len(response.Items) == 0 {
		return youtube.ChannelStats{}, fmt.Errorf("channel %s: %w", channelID, youtube.ErrNotFound)
	}

	stats := youtube.ChannelStats{}
	if s := response.Items[0].Statistics; s != nil {
		stats.SubscriberCount = int64(s.SubscriberCount)
		stats.VideoCount = int64(s.VideoCount)
		stats.ViewCount = int64(s.ViewCount)
	}

	log.Debug().
		Str("channel_id", channelID).
		Int64("subscribers", stats.SubscriberCount).
		Int64("view_count", stats.ViewCount).
		Msg("YouTube channel statistics retrieved")

	return stats, nil
}

// pickThumbnail prefers the medium size, falling back to high then default
func pickThumbnail(thumbnails *ytapi.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	for _, thumb := range []*ytapi.Thumbnail{thumbnails.Medium, thumbnails.High, thumbnails.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}
