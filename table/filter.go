// Package table provides the in-memory filter and sort engine applied to
// enriched search results before display.
package table

import (
	"fmt"
	"strings"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
)

// ShortsMaxSeconds is the duration below which a video counts as a short
const ShortsMaxSeconds = 180

// ContentType selects videos by length class
type ContentType string

const (
	ContentAll    ContentType = "all"
	ContentShorts ContentType = "shorts"
	ContentLong   ContentType = "long"
)

// ParseContentType maps text to a ContentType. An empty string means all.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case "", ContentAll:
		return ContentAll, nil
	case ContentShorts:
		return ContentShorts, nil
	case ContentLong:
		return ContentLong, nil
	default:
		return "", fmt.Errorf("invalid content type '%s': must be all, shorts or long", s)
	}
}

// IsShort reports whether a video falls in the shorts length class
func IsShort(video youtube.EnrichedVideo) bool {
	return video.DurationInSeconds < ShortsMaxSeconds
}

// FilterCriteria holds the active filters. Zero values disable a filter.
type FilterCriteria struct {
	ContentType    ContentType `json:"contentType"`
	MinViews       int64       `json:"minViews"`
	MinSubscribers int64       `json:"minSubscribers"`
}

// IsZero reports whether no filter is active
func (c FilterCriteria) IsZero() bool {
	return (c.ContentType == "" || c.ContentType == ContentAll) && c.MinViews <= 0 && c.MinSubscribers <= 0
}

func (c FilterCriteria) matches(video youtube.EnrichedVideo) bool {
	switch c.ContentType {
	case ContentShorts:
		if !IsShort(video) {
			return false
		}
	case ContentLong:
		if IsShort(video) {
			return false
		}
	}

	if c.MinViews > 0 && video.ViewCount < c.MinViews {
		return false
	}
	if c.MinSubscribers > 0 && video.SubscriberCount < c.MinSubscribers {
		return false
	}
	return true
}

// Filter returns the videos matching every active criterion, in input order.
// The input slice is not modified.
func Filter(videos []youtube.EnrichedVideo, criteria FilterCriteria) []youtube.EnrichedVideo {
	filtered := make([]youtube.EnrichedVideo, 0, len(videos))
	for _, video := range videos {
		if criteria.matches(video) {
			filtered = append(filtered, video)
		}
	}
	return filtered
}
