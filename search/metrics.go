package search

import (
	"math"

	"github.com/researchaccelerator-hub/tuberay/common"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
)

// ChannelContribution is the share of the channel's total views that one video
// accounts for, in percent, rounded to two decimals. The channel total is
// floored at 1 so the result is always finite.
func ChannelContribution(videoViews, channelViews int64) float64 {
	return round2(float64(max(videoViews, 0)) / float64(max(channelViews, 1)) * 100)
}

// PerformanceMultiplier is the ratio of a video's views to its channel's
// subscribers, rounded to two decimals, with subscribers floored at 1.
func PerformanceMultiplier(videoViews, subscribers int64) float64 {
	return round2(float64(max(videoViews, 0)) / float64(max(subscribers, 1)))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// BuildEnrichedVideo joins a hit with its statistics and computes the derived fields
func BuildEnrichedVideo(hit youtube.SearchHit, video StatsResult[youtube.VideoStats], channel StatsResult[youtube.ChannelStats]) youtube.EnrichedVideo {
	vs := video.Stats
	cs := channel.Stats

	duration := vs.Duration
	if duration == "" {
		duration = common.ZeroDuration
	}

	return youtube.EnrichedVideo{
		ID:                    hit.VideoID,
		Title:                 hit.Title,
		Description:           hit.Description,
		Thumbnail:             hit.Thumbnail,
		ChannelTitle:          hit.ChannelTitle,
		ChannelID:             hit.ChannelID,
		PublishedAt:           hit.PublishedAt,
		ViewCount:             max(vs.ViewCount, 0),
		LikeCount:             max(vs.LikeCount, 0),
		CommentCount:          max(vs.CommentCount, 0),
		SubscriberCount:       max(cs.SubscriberCount, 0),
		VideoCount:            max(cs.VideoCount, 0),
		ChannelViewCount:      max(cs.ViewCount, 0),
		ChannelContribution:   ChannelContribution(vs.ViewCount, cs.ViewCount),
		PerformanceMultiplier: PerformanceMultiplier(vs.ViewCount, cs.SubscriberCount),
		Duration:              duration,
		DurationInSeconds:     common.ParseDuration(duration),
		StatsDegraded:         video.Degraded || channel.Degraded,
	}
}
