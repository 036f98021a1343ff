package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLanguage is the collation language for text columns
var DefaultLanguage = language.Korean

// SortKey names a sortable column. The zero value means unsorted.
type SortKey string

const (
	SortNone                  SortKey = ""
	SortTitle                 SortKey = "title"
	SortChannelTitle          SortKey = "channelTitle"
	SortPublishedAt           SortKey = "publishedAt"
	SortDuration              SortKey = "durationInSeconds"
	SortSubscribers           SortKey = "subscriberCount"
	SortViews                 SortKey = "viewCount"
	SortLikes                 SortKey = "likeCount"
	SortComments              SortKey = "commentCount"
	SortChannelContribution   SortKey = "channelContribution"
	SortPerformanceMultiplier SortKey = "performanceMultiplier"
)

type comparatorKind int

const (
	compareText comparatorKind = iota
	compareNumber
	compareInstant
)

// column binds a key to exactly one comparator and the field it reads
type column struct {
	kind    comparatorKind
	text    func(v *youtube.EnrichedVideo) string
	number  func(v *youtube.EnrichedVideo) float64
	instant func(v *youtube.EnrichedVideo) time.Time
}

var columns = map[SortKey]column{
	SortTitle:        {kind: compareText, text: func(v *youtube.EnrichedVideo) string { return v.Title }},
	SortChannelTitle: {kind: compareText, text: func(v *youtube.EnrichedVideo) string { return v.ChannelTitle }},
	SortPublishedAt:  {kind: compareInstant, instant: func(v *youtube.EnrichedVideo) time.Time { return v.PublishedAt }},
	SortDuration:     {kind: compareNumber, number: func(v *youtube.EnrichedVideo) float64 { return float64(v.DurationInSeconds) }},
	SortSubscribers:  {kind: compareNumber, number: func(v *youtube.EnrichedVideo) float64 { return float64(v.SubscriberCount) }},
	SortViews:        {kind: compareNumber, number: func(v *youtube.EnrichedVideo) float64 { return float64(v.ViewCount) }},
	SortLikes:        {kind: compareNumber, number: func(v *youtube.EnrichedVideo) float64 { return float64(v.LikeCount) }},
	SortComments:     {kind: compareNumber, number: func(v *youtube.EnrichedVideo) float64 { return float64(v.CommentCount) }},
	SortChannelContribution: {kind: compareNumber, number: func(v *youtube.EnrichedVideo) float64 {
		return v.ChannelContribution
	}},
	SortPerformanceMultiplier: {kind: compareNumber, number: func(v *youtube.EnrichedVideo) float64 {
		return v.PerformanceMultiplier
	}},
}

// SortKeys lists every sortable key in column order
var SortKeys = []SortKey{
	SortTitle, SortChannelTitle, SortPublishedAt, SortDuration, SortSubscribers,
	SortViews, SortLikes, SortComments, SortChannelContribution, SortPerformanceMultiplier,
}

// sortKeyAliases accepts short CLI spellings
var sortKeyAliases = map[string]SortKey{
	"date":         SortPublishedAt,
	"published":    SortPublishedAt,
	"duration":     SortDuration,
	"subscribers":  SortSubscribers,
	"views":        SortViews,
	"likes":        SortLikes,
	"comments":     SortComments,
	"contribution": SortChannelContribution,
	"performance":  SortPerformanceMultiplier,
	"channel":      SortChannelTitle,
}

// ParseSortKey maps a column name or alias to a SortKey. Empty input is SortNone.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return SortNone, nil
	}
	for _, key := range SortKeys {
		if strings.EqualFold(s, string(key)) {
			return key, nil
		}
	}
	if key, ok := sortKeyAliases[strings.ToLower(s)]; ok {
		return key, nil
	}
	return SortNone, fmt.Errorf("unknown sort key '%s'", s)
}

// Valid reports whether k is a sortable column
func (k SortKey) Valid() bool {
	_, ok := columns[k]
	return ok
}

// Direction is the sort order of the active column
type Direction int

const (
	DirectionNone Direction = iota
	DirectionDescending
	DirectionAscending
)

func (d Direction) String() string {
	switch d {
	case DirectionDescending:
		return "desc"
	case DirectionAscending:
		return "asc"
	default:
		return "none"
	}
}

// ParseDirection maps asc/desc/none text to a Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return DirectionDescending, nil
	case "asc", "ascending":
		return DirectionAscending, nil
	case "none":
		return DirectionNone, nil
	default:
		return DirectionNone, fmt.Errorf("invalid sort order '%s': must be asc, desc or none", s)
	}
}

// SortState is the active sort column and its direction
type SortState struct {
	Key       SortKey   `json:"key,omitempty"`
	Direction Direction `json:"direction"`
}

// Active reports whether the state reorders anything
func (s SortState) Active() bool {
	return s.Key.Valid() && s.Direction != DirectionNone
}

// NextSortState returns the state after activating key. Repeated activation of
// the same column cycles descending, ascending, none; a different column
// always starts at descending.
func NextSortState(current SortState, key SortKey) SortState {
	if key != current.Key {
		return SortState{Key: key, Direction: DirectionDescending}
	}

	switch current.Direction {
	case DirectionDescending:
		return SortState{Key: key, Direction: DirectionAscending}
	case DirectionAscending:
		return SortState{Key: key, Direction: DirectionNone}
	default:
		return SortState{Key: key, Direction: DirectionDescending}
	}
}

// Sorter orders videos using the collation rules of a language
type Sorter struct {
	lang language.Tag
}

// NewSorter creates a Sorter for lang
func NewSorter(lang language.Tag) *Sorter {
	return &Sorter{lang: lang}
}

// Sort returns a sorted copy of videos. Equal keys keep their input order, and
// an inactive state returns the videos in input order.
func (s *Sorter) Sort(videos []youtube.EnrichedVideo, state SortState) []youtube.EnrichedVideo {
	sorted := slices.Clone(videos)
	if sorted == nil {
		sorted = []youtube.EnrichedVideo{}
	}
	if !state.Active() {
		return sorted
	}

	col := columns[state.Key]
	compare := s.comparator(col)

	slices.SortStableFunc(sorted, func(a, b youtube.EnrichedVideo) int {
		c := compare(&a, &b)
		if state.Direction == DirectionDescending {
			return -c
		}
		return c
	})
	return sorted
}

func (s *Sorter) comparator(col column) func(a, b *youtube.EnrichedVideo) int {
	switch col.kind {
	case compareText:
		// Collators keep internal buffers, so each sort gets its own
		collator := collate.New(s.lang)
		return func(a, b *youtube.EnrichedVideo) int {
			return collator.CompareString(col.text(a), col.text(b))
		}
	case compareInstant:
		return func(a, b *youtube.EnrichedVideo) int {
			return col.instant(a).Compare(col.instant(b))
		}
	default:
		return func(a, b *youtube.EnrichedVideo) int {
			return cmp.Compare(col.number(a), col.number(b))
		}
	}
}

var defaultSorter = NewSorter(DefaultLanguage)

// Sort orders videos with the default language's collation
func Sort(videos []youtube.EnrichedVideo, state SortState) []youtube.EnrichedVideo {
	return defaultSorter.Sort(videos, state)
}
