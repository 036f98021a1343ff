package common

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ZeroDuration is the compact duration reported for videos without content details
const ZeroDuration = "PT0S"

// Longest duration ParseDuration accepts, about 68 years
const maxDurationSeconds = math.MaxInt32

// Pre-compiled once, reused for every video in a search run
var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts a compact duration such as "PT1H30M45S" into whole seconds.
// Missing components contribute 0. Input that does not match, or whose total
// exceeds maxDurationSeconds, decodes to 0.
func ParseDuration(duration string) int {
	match := durationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	var total int64
	for i, unit := range []int64{3600, 60, 1} {
		n, ok := parseComponent(match[i+1])
		if !ok || n > maxDurationSeconds/unit {
			return 0
		}
		total += n * unit
		if total > maxDurationSeconds {
			return 0
		}
	}
	return int(total)
}

// EncodeDuration renders whole seconds in the compact form, omitting zero components.
func EncodeDuration(totalSeconds int) string {
	if totalSeconds <= 0 {
		return ZeroDuration
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var b strings.Builder
	b.WriteString("PT")
	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	if seconds > 0 {
		fmt.Fprintf(&b, "%dS", seconds)
	}
	return b.String()
}

// FormatDuration renders seconds as H:MM:SS when there are hours, else M:SS.
func FormatDuration(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// parseComponent reads one digit run; an absent component is 0
func parseComponent(s string) (int64, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
