// Package console renders search sessions to a terminal and drives the
// one-shot and interactive command-line modes.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/researchaccelerator-hub/tuberay/common"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/researchaccelerator-hub/tuberay/state"
	"github.com/researchaccelerator-hub/tuberay/table"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

const maxTitleRunes = 40

type header struct {
	key   table.SortKey
	label string
}

var headers = []header{
	{table.SortTitle, "제목"},
	{table.SortChannelTitle, "채널"},
	{table.SortDuration, "영상 길이"},
	{table.SortSubscribers, "구독자"},
	{table.SortViews, "조회수"},
	{table.SortLikes, "좋아요"},
	{table.SortComments, "댓글"},
	{table.SortChannelContribution, "채널 기여도"},
	{table.SortPerformanceMultiplier, "성과배율"},
	{table.SortPublishedAt, "게시일"},
}

// SortGlyph returns the indicator shown next to a column header
func SortGlyph(current table.SortState, key table.SortKey) string {
	if current.Key != key {
		return "⇅"
	}
	switch current.Direction {
	case table.DirectionDescending:
		return "▼"
	case table.DirectionAscending:
		return "▲"
	default:
		return "⇅"
	}
}

// ResultsHeader is the title line above a result table
func ResultsHeader(keyword string, count int) string {
	return fmt.Sprintf("\"%s\" 검색 결과 — %d개의 영상", keyword, count)
}

// Render writes view in the given format
func Render(w io.Writer, view state.View, format string, now time.Time) error {
	if format == FormatJSON {
		return RenderJSON(w, view)
	}
	return RenderTable(w, view, now)
}

// RenderTable writes the phase-appropriate text for view
func RenderTable(w io.Writer, view state.View, now time.Time) error {
	switch view.Phase {
	case state.PhaseWelcome:
		_, err := fmt.Fprintf(w, "%s\n%s\n", state.WelcomeTitle, state.WelcomeBody)
		return err
	case state.PhaseLoading:
		_, err := fmt.Fprintf(w, "%s\n%s\n", state.LoadingTitle, state.LoadingBody)
		return err
	case state.PhaseFailed:
		if _, err := fmt.Fprintf(w, "⚠️ %s\n", view.Error); err != nil {
			return err
		}
		if view.Hint != "" {
			_, err := fmt.Fprintln(w, view.Hint)
			return err
		}
		return nil
	case state.PhaseEmpty:
		_, err := fmt.Fprintln(w, state.NoResultsTitle)
		return err
	}

	if _, err := fmt.Fprintln(w, ResultsHeader(view.Keyword, len(view.Videos))); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	labels := []string{"#"}
	for _, h := range headers {
		labels = append(labels, h.label+" "+SortGlyph(view.Sort, h.key))
	}
	labels = append(labels, "링크")
	fmt.Fprintln(tw, strings.Join(labels, "\t"))

	for i, video := range view.Videos {
		fmt.Fprintln(tw, strings.Join(row(i+1, video, now), "\t"))
	}

	return tw.Flush()
}

func row(index int, video youtube.EnrichedVideo, now time.Time) []string {
	badge := "롱폼"
	if table.IsShort(video) {
		badge = "쇼츠"
	}

	return []string{
		strconv.Itoa(index),
		truncate(video.Title, maxTitleRunes),
		video.ChannelTitle,
		fmt.Sprintf("%s [%s]", common.FormatDuration(video.DurationInSeconds), badge),
		common.FormatNumber(video.SubscriberCount),
		common.FormatNumber(video.ViewCount),
		common.FormatNumber(video.LikeCount),
		common.FormatNumber(video.CommentCount),
		strconv.FormatFloat(video.ChannelContribution, 'f', -1, 64) + "%",
		strconv.FormatFloat(video.PerformanceMultiplier, 'f', -1, 64) + "x",
		common.FormatRelativeDate(video.PublishedAt, now),
		common.WatchURL(video.ID),
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

type jsonSort struct {
	Key       string `json:"key,omitempty"`
	Direction string `json:"direction"`
}

type jsonView struct {
	Keyword  string                  `json:"keyword"`
	Status   string                  `json:"status"`
	Total    int                     `json:"total"`
	Count    int                     `json:"count"`
	Criteria table.FilterCriteria    `json:"criteria"`
	Sort     jsonSort                `json:"sort"`
	Error    string                  `json:"error,omitempty"`
	Hint     string                  `json:"hint,omitempty"`
	Videos   []youtube.EnrichedVideo `json:"videos"`
}

// RenderJSON writes view as an indented JSON document
func RenderJSON(w io.Writer, view state.View) error {
	videos := view.Videos
	if videos == nil {
		videos = []youtube.EnrichedVideo{}
	}

	criteria := view.Criteria
	if criteria.ContentType == "" {
		criteria.ContentType = table.ContentAll
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonView{
		Keyword:  view.Keyword,
		Status:   view.Phase.String(),
		Total:    view.Total,
		Count:    len(view.Videos),
		Criteria: criteria,
		Sort: jsonSort{
			Key:       string(view.Sort.Key),
			Direction: view.Sort.Direction.String(),
		},
		Error:  view.Error,
		Hint:   view.Hint,
		Videos: videos,
	})
}
