package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GenerateSearchID generates a unique identifier for one search run.
// The identifier is the start timestamp in "YYYYMMDDHHMMSS" format followed by
// the first eight characters of a random UUID, so IDs sort by start time.
func GenerateSearchID() string {
	// Format the timestamp to a string (e.g., "20060102150405" for YYYYMMDDHHMMSS)
	stamp := time.Now().Format("20060102150405")

	return fmt.Sprintf("%s-%s", stamp, uuid.New().String()[:8])
}

// ReadKeywordsFromFile reads search keywords from a file, one per line.
// It ignores empty lines and lines starting with a '#' character (comments).
func ReadKeywordsFromFile(filename string) ([]string, error) {
	log.Debug().Str("filename", filename).Msg("Reading keywords from file")

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	var keywords []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			keywords = append(keywords, line)
		}
	}

	log.Debug().Int("keyword_count", len(keywords)).Msg("Keywords read from file")
	return keywords, nil
}
