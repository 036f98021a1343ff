// Package search implements the keyword search pipeline: paginated search,
// per-video and per-channel statistics enrichment, and derived metrics.
package search

import (
	"context"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
)

// API is the subset of the YouTube client the pipeline calls
type API interface {
	// SearchVideos fetches a single page of keyword search results
	SearchVideos(ctx context.Context, req youtube.SearchPageRequest) (*youtube.SearchPage, error)

	// GetVideoStatistics retrieves statistics and duration for one video
	GetVideoStatistics(ctx context.Context, videoID string) (youtube.VideoStats, error)

	// GetChannelStatistics retrieves statistics for one channel
	GetChannelStatistics(ctx context.Context, channelID string) (youtube.ChannelStats, error)
}
