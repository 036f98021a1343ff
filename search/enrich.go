package search

import (
	"context"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"golang.org/x/sync/errgroup"
)

// VideoStatsFunc fetches statistics for one video
type VideoStatsFunc func(ctx context.Context, videoID string) StatsResult[youtube.VideoStats]

// ChannelStatsFunc fetches statistics for one channel
type ChannelStatsFunc func(ctx context.Context, channelID string) StatsResult[youtube.ChannelStats]

// Enrich fetches statistics for every hit concurrently and returns one enriched
// record per hit in input order. Each hit fetches its video and channel
// statistics in parallel and no hit waits on another. Individual fetch failures
// degrade to empty statistics; the only error is ctx ending before every fetch
// returned, in which case the partial records are discarded.
func Enrich(ctx context.Context, hits []youtube.SearchHit, videoStats VideoStatsFunc, channelStats ChannelStatsFunc) ([]youtube.EnrichedVideo, error) {
	enriched := make([]youtube.EnrichedVideo, len(hits))

	var g errgroup.Group
	for i, hit := range hits {
		g.Go(func() error {
			var video StatsResult[youtube.VideoStats]
			var channel StatsResult[youtube.ChannelStats]

			var pair errgroup.Group
			pair.Go(func() error {
				video = videoStats(ctx, hit.VideoID)
				return ctx.Err()
			})
			pair.Go(func() error {
				channel = channelStats(ctx, hit.ChannelID)
				return ctx.Err()
			})
			if err := pair.Wait(); err != nil {
				return err
			}

			enriched[i] = BuildEnrichedVideo(hit, video, channel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}
