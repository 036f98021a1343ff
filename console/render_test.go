package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/researchaccelerator-hub/tuberay/state"
	"github.com/researchaccelerator-hub/tuberay/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func resultsView() state.View {
	return state.View{
		Phase:   state.PhaseResults,
		Keyword: "golang",
		Total:   2,
		Videos: []youtube.EnrichedVideo{
			{
				ID:                    "vid1",
				Title:                 "Go 튜토리얼",
				ChannelTitle:          "Gopher",
				DurationInSeconds:     59,
				SubscriberCount:       15000,
				ViewCount:             1234,
				LikeCount:             12,
				CommentCount:          3,
				ChannelContribution:   25,
				PerformanceMultiplier: 2.5,
				PublishedAt:           renderNow.Add(-3 * 24 * time.Hour),
			},
			{
				ID:                    "vid2",
				Title:                 "Concurrency in depth",
				ChannelTitle:          "Gopher",
				DurationInSeconds:     3725,
				SubscriberCount:       150000000,
				ViewCount:             50,
				ChannelContribution:   0.01,
				PerformanceMultiplier: 0,
				PublishedAt:           renderNow.Add(-400 * 24 * time.Hour),
			},
		},
		Sort: table.SortState{Key: table.SortViews, Direction: table.DirectionDescending},
	}
}

func TestSortGlyph(t *testing.T) {
	desc := table.SortState{Key: table.SortViews, Direction: table.DirectionDescending}
	asc := table.SortState{Key: table.SortViews, Direction: table.DirectionAscending}
	none := table.SortState{Key: table.SortViews, Direction: table.DirectionNone}

	assert.Equal(t, "▼", SortGlyph(desc, table.SortViews))
	assert.Equal(t, "▲", SortGlyph(asc, table.SortViews))
	assert.Equal(t, "⇅", SortGlyph(none, table.SortViews))
	assert.Equal(t, "⇅", SortGlyph(desc, table.SortTitle))
	assert.Equal(t, "⇅", SortGlyph(table.SortState{}, table.SortTitle))
}

func TestResultsHeader(t *testing.T) {
	assert.Equal(t, `"맛집" 검색 결과 — 12개의 영상`, ResultsHeader("맛집", 12))
}

func TestRenderTable_Results(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, resultsView(), renderNow))
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"golang" 검색 결과 — 2개의 영상`, lines[0])

	assert.Contains(t, lines[1], "조회수 ▼")
	assert.Contains(t, lines[1], "제목 ⇅")

	assert.Contains(t, lines[2], "Go 튜토리얼")
	assert.Contains(t, lines[2], "0:59 [쇼츠]")
	assert.Contains(t, lines[2], "1.5만")
	assert.Contains(t, lines[2], "1,234")
	assert.Contains(t, lines[2], "25%")
	assert.Contains(t, lines[2], "2.5x")
	assert.Contains(t, lines[2], "3일 전")
	assert.Contains(t, lines[2], "https://www.youtube.com/watch?v=vid1")

	assert.Contains(t, lines[3], "1:02:05 [롱폼]")
	assert.Contains(t, lines[3], "1.5억")
	assert.Contains(t, lines[3], "0.01%")
	assert.Contains(t, lines[3], "0x")
	assert.Contains(t, lines[3], "1년 전")
}

func TestRenderTable_Phases(t *testing.T) {
	tests := []struct {
		name     string
		view     state.View
		contains []string
	}{
		{"welcome", state.View{Phase: state.PhaseWelcome}, []string{state.WelcomeTitle}},
		{"loading", state.View{Phase: state.PhaseLoading}, []string{state.LoadingTitle, state.LoadingBody}},
		{"empty", state.View{Phase: state.PhaseEmpty, Keyword: "zz"}, []string{state.NoResultsTitle}},
		{
			"failed",
			state.View{Phase: state.PhaseFailed, Error: "영상 검색에 실패했습니다.", Hint: "다시 시도해주세요."},
			[]string{"⚠️ 영상 검색에 실패했습니다.", "다시 시도해주세요."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderTable(&buf, tt.view, renderNow))
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
			assert.NotContains(t, buf.String(), "검색 결과 —")
		})
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, resultsView(), FormatJSON, renderNow))

	var decoded struct {
		Keyword  string `json:"keyword"`
		Status   string `json:"status"`
		Total    int    `json:"total"`
		Count    int    `json:"count"`
		Criteria struct {
			ContentType string `json:"contentType"`
		} `json:"criteria"`
		Sort struct {
			Key       string `json:"key"`
			Direction string `json:"direction"`
		} `json:"sort"`
		Videos []map[string]interface{} `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "golang", decoded.Keyword)
	assert.Equal(t, "results", decoded.Status)
	assert.Equal(t, 2, decoded.Total)
	assert.Equal(t, 2, decoded.Count)
	assert.Equal(t, "all", decoded.Criteria.ContentType)
	assert.Equal(t, "viewCount", decoded.Sort.Key)
	assert.Equal(t, "desc", decoded.Sort.Direction)
	require.Len(t, decoded.Videos, 2)
	assert.Equal(t, "vid1", decoded.Videos[0]["id"])
	assert.Equal(t, 25.0, decoded.Videos[0]["channelContribution"])
	assert.Equal(t, 59.0, decoded.Videos[0]["durationInSeconds"])
}

func TestRenderJSON_FailureHasEmptyVideos(t *testing.T) {
	var buf bytes.Buffer
	view := state.View{Phase: state.PhaseFailed, Keyword: "golang", Error: "영상 검색에 실패했습니다.", Hint: "hint"}
	require.NoError(t, RenderJSON(&buf, view))

	out := buf.String()
	assert.Contains(t, out, `"status": "failed"`)
	assert.Contains(t, out, `"videos": []`)
	assert.Contains(t, out, `"hint": "hint"`)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "가나다라…", truncate("가나다라마바사", 5))
}
