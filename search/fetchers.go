package search

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// StatsResult is either fetched statistics or, when Degraded is set, the zero
// value standing in for statistics that could not be fetched.
type StatsResult[T any] struct {
	Stats    T
	Degraded bool
}

// FetchVideoStats retrieves statistics for one video. Any failure is logged and
// degrades to empty statistics so a single video cannot abort the batch.
func FetchVideoStats(ctx context.Context, api API, videoID string) StatsResult[youtube.VideoStats] {
	stats, err := api.GetVideoStatistics(ctx, videoID)
	if err != nil {
		log.Warn().Err(err).Str("video_id", videoID).Msg("Video statistics unavailable, using empty statistics")
		return StatsResult[youtube.VideoStats]{Degraded: true}
	}
	return StatsResult[youtube.VideoStats]{Stats: stats}
}

// FetchChannelStats retrieves statistics for one channel with the same
// degrade-to-empty contract as FetchVideoStats.
func FetchChannelStats(ctx context.Context, api API, channelID string) StatsResult[youtube.ChannelStats] {
	stats, err := api.GetChannelStatistics(ctx, channelID)
	if err != nil {
		log.Warn().Err(err).Str("channel_id", channelID).Msg("Channel statistics unavailable, using empty statistics")
		return StatsResult[youtube.ChannelStats]{Degraded: true}
	}
	return StatsResult[youtube.ChannelStats]{Stats: stats}
}

// channelStatsCache deduplicates channel lookups within one search run. Hits from
// the same channel share one in-flight call, and successful results are kept
// for later hits. Degraded results are not kept so later hits try again.
type channelStatsCache struct {
	api   API
	group singleflight.Group
	done  *lru.Cache[string, youtube.ChannelStats]

	mu     sync.Mutex
	misses int
}

func newChannelStatsCache(api API, size int) (*channelStatsCache, error) {
	done, err := lru.New[string, youtube.ChannelStats](max(size, 1))
	if err != nil {
		return nil, err
	}
	return &channelStatsCache{api: api, done: done}, nil
}

// Fetch has the signature of FetchChannelStats bound to the cache's client
func (c *channelStatsCache) Fetch(ctx context.Context, channelID string) StatsResult[youtube.ChannelStats] {
	if stats, ok := c.done.Get(channelID); ok {
		return StatsResult[youtube.ChannelStats]{Stats: stats}
	}

	v, _, _ := c.group.Do(channelID, func() (interface{}, error) {
		if stats, ok := c.done.Get(channelID); ok {
			return StatsResult[youtube.ChannelStats]{Stats: stats}, nil
		}

		c.mu.Lock()
		c.misses++
		c.mu.Unlock()

		result := FetchChannelStats(ctx, c.api, channelID)
		if !result.Degraded {
			c.done.Add(channelID, result.Stats)
		}
		return result, nil
	})

	return v.(StatsResult[youtube.ChannelStats])
}

// Lookups returns how many channel fetches actually reached the client
func (c *channelStatsCache) Lookups() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}
