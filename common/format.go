package common

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	eok = 100000000 // 억
	man = 10000     // 만
)

var numPrinter = message.NewPrinter(language.Korean)

// FormatNumber renders a count using Korean units: 억 and 만 with one decimal,
// grouped digits from one thousand up, plain digits below that.
func FormatNumber(n int64) string {
	switch {
	case n >= eok:
		return fmt.Sprintf("%.1f억", float64(n)/eok)
	case n >= man:
		return fmt.Sprintf("%.1f만", float64(n)/man)
	case n >= 1000:
		return numPrinter.Sprintf("%d", n)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatRelativeDate describes how long ago t was, relative to now.
func FormatRelativeDate(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff / (24 * time.Hour))

	switch {
	case days == 0:
		return "오늘"
	case days == 1:
		return "어제"
	case days < 7:
		return fmt.Sprintf("%d일 전", days)
	case days < 30:
		return fmt.Sprintf("%d주 전", days/7)
	case days < 365:
		return fmt.Sprintf("%d개월 전", days/30)
	default:
		return fmt.Sprintf("%d년 전", days/365)
	}
}

// WatchURL returns the canonical watch link for a video
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// ChannelURL returns the canonical link for a channel. Handles (@name) map to the short form.
func ChannelURL(channelID string) string {
	if len(channelID) > 0 && channelID[0] == '@' {
		return fmt.Sprintf("https://www.youtube.com/%s", channelID)
	}
	return fmt.Sprintf("https://www.youtube.com/channel/%s", channelID)
}
