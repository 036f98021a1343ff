package console

import (
	"context"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/stretchr/testify/mock"
)

// MockYouTubeAPI is a mock implementation of search.API.
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

// newFakeAPI returns a mock serving a short video and a long video from two channels
func newFakeAPI() *MockYouTubeAPI {
	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, mock.Anything).Return(&youtube.SearchPage{Hits: []youtube.SearchHit{
		{VideoID: "short1", ChannelID: "UC-a", Title: "짧은 영상", ChannelTitle: "채널A"},
		{VideoID: "long1", ChannelID: "UC-b", Title: "긴 영상", ChannelTitle: "채널B"},
	}}, nil)
	api.On("GetVideoStatistics", mock.Anything, "short1").
		Return(youtube.VideoStats{ViewCount: 500, Duration: "PT45S"}, nil)
	api.On("GetVideoStatistics", mock.Anything, "long1").
		Return(youtube.VideoStats{ViewCount: 25000, Duration: "PT12M5S"}, nil)
	api.On("GetChannelStatistics", mock.Anything, "UC-a").
		Return(youtube.ChannelStats{SubscriberCount: 100, ViewCount: 1000}, nil)
	api.On("GetChannelStatistics", mock.Anything, "UC-b").
		Return(youtube.ChannelStats{SubscriberCount: 10000, ViewCount: 100000}, nil)
	return api
}
