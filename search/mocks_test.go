package search

import (
	"context"
	"fmt"
	"time"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/stretchr/testify/mock"
)

// MockYouTubeAPI is a mock implementation of the API interface.
type MockYouTubeAPI struct {
	mock.Mock
}

func (m *MockYouTubeAPI) SearchVideos(ctx context.Context, req youtube.SearchPageRequest) (*youtube.SearchPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*youtube.SearchPage), args.Error(1)
}

func (m *MockYouTubeAPI) GetVideoStatistics(ctx context.Context, videoID string) (youtube.VideoStats, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(youtube.VideoStats), args.Error(1)
}

func (m *MockYouTubeAPI) GetChannelStatistics(ctx context.Context, channelID string) (youtube.ChannelStats, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(youtube.ChannelStats), args.Error(1)
}

// makeHits builds n hits with IDs prefix-0 .. prefix-(n-1), all on the given channel
func makeHits(prefix, channelID string, n int) []youtube.SearchHit {
	hits := make([]youtube.SearchHit, n)
	for i := range hits {
		hits[i] = youtube.SearchHit{
			VideoID:      fmt.Sprintf("%s-%d", prefix, i),
			ChannelID:    channelID,
			Title:        fmt.Sprintf("Video %s %d", prefix, i),
			ChannelTitle: "Channel " + channelID,
			PublishedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}
	}
	return hits
}

// pageWith matches a page request by size and continuation token
func pageWith(size int, token string) interface{} {
	return mock.MatchedBy(func(req youtube.SearchPageRequest) bool {
		return req.MaxResults == size && req.PageToken == token
	})
}
