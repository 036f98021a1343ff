package search

import (
	"errors"
	"testing"
	"time"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaginate_SplitsIntoCappedPages(t *testing.T) {
	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, pageWith(50, "")).
		Return(&youtube.SearchPage{Hits: makeHits("p1", "c", 50), NextPageToken: "t2"}, nil).Once()
	api.On("SearchVideos", mock.Anything, pageWith(50, "t2")).
		Return(&youtube.SearchPage{Hits: makeHits("p2", "c", 50), NextPageToken: "t3"}, nil).Once()
	api.On("SearchVideos", mock.Anything, pageWith(20, "t3")).
		Return(&youtube.SearchPage{Hits: makeHits("p3", "c", 20), NextPageToken: "t4"}, nil).Once()

	req := youtube.SearchRequest{Keyword: "golang", MaxResults: 120, Period: youtube.PeriodAll}
	hits, err := Paginate(t.Context(), api, req, nil)

	require.NoError(t, err)
	assert.Len(t, hits, 120)
	assert.Equal(t, "p1-0", hits[0].VideoID)
	assert.Equal(t, "p2-0", hits[50].VideoID)
	assert.Equal(t, "p3-19", hits[119].VideoID)
	api.AssertNumberOfCalls(t, "SearchVideos", 3)
	api.AssertExpectations(t)
}

func TestPaginate_SinglePageBelowCap(t *testing.T) {
	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, pageWith(10, "")).
		Return(&youtube.SearchPage{Hits: makeHits("p1", "c", 10), NextPageToken: "more"}, nil).Once()

	req := youtube.SearchRequest{Keyword: "golang", MaxResults: 10}
	hits, err := Paginate(t.Context(), api, req, nil)

	require.NoError(t, err)
	assert.Len(t, hits, 10)
	api.AssertNumberOfCalls(t, "SearchVideos", 1)
}

func TestPaginate_StopsWithoutContinuationToken(t *testing.T) {
	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, pageWith(50, "")).
		Return(&youtube.SearchPage{Hits: makeHits("p1", "c", 30)}, nil).Once()

	req := youtube.SearchRequest{Keyword: "rare", MaxResults: 120}
	hits, err := Paginate(t.Context(), api, req, nil)

	require.NoError(t, err)
	assert.Len(t, hits, 30)
	api.AssertNumberOfCalls(t, "SearchVideos", 1)
}

func TestPaginate_StopsOnEmptyPage(t *testing.T) {
	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, pageWith(50, "")).
		Return(&youtube.SearchPage{Hits: makeHits("p1", "c", 50), NextPageToken: "t2"}, nil).Once()
	api.On("SearchVideos", mock.Anything, pageWith(50, "t2")).
		Return(&youtube.SearchPage{NextPageToken: "t3"}, nil).Once()

	req := youtube.SearchRequest{Keyword: "golang", MaxResults: 150}
	hits, err := Paginate(t.Context(), api, req, nil)

	require.NoError(t, err)
	assert.Len(t, hits, 50)
	api.AssertNumberOfCalls(t, "SearchVideos", 2)
}

func TestPaginate_NoResults(t *testing.T) {
	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, mock.Anything).
		Return(&youtube.SearchPage{}, nil).Once()

	hits, err := Paginate(t.Context(), api, youtube.SearchRequest{Keyword: "zzzz", MaxResults: 10}, nil)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestPaginate_TruncatesOversizedPage(t *testing.T) {
	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, pageWith(5, "")).
		Return(&youtube.SearchPage{Hits: makeHits("p1", "c", 8), NextPageToken: "t2"}, nil).Once()

	hits, err := Paginate(t.Context(), api, youtube.SearchRequest{Keyword: "golang", MaxResults: 5}, nil)

	require.NoError(t, err)
	assert.Len(t, hits, 5)
}

func TestPaginate_PageFailureFailsWholeCall(t *testing.T) {
	providerErr := errors.New("connection reset")

	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, pageWith(50, "")).
		Return(&youtube.SearchPage{Hits: makeHits("p1", "c", 50), NextPageToken: "t2"}, nil).Once()
	api.On("SearchVideos", mock.Anything, pageWith(50, "t2")).
		Return(nil, providerErr).Once()

	hits, err := Paginate(t.Context(), api, youtube.SearchRequest{Keyword: "golang", MaxResults: 100}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
	assert.Contains(t, err.Error(), "page 2")
	assert.Nil(t, hits)
}

func TestPaginate_ForwardsFilters(t *testing.T) {
	after := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	api := new(MockYouTubeAPI)
	api.On("SearchVideos", mock.Anything, mock.MatchedBy(func(req youtube.SearchPageRequest) bool {
		return req.Query == "맛집" &&
			req.RegionCode == "KR" &&
			req.PublishedAfter != nil && req.PublishedAfter.Equal(after)
	})).Return(&youtube.SearchPage{Hits: makeHits("p1", "c", 3)}, nil).Once()

	req := youtube.SearchRequest{Keyword: "맛집", MaxResults: 3, Region: "KR"}
	hits, err := Paginate(t.Context(), api, req, &after)

	require.NoError(t, err)
	assert.Len(t, hits, 3)
	api.AssertExpectations(t)
}
