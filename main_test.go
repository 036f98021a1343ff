package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/researchaccelerator-hub/tuberay/config"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/researchaccelerator-hub/tuberay/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewOptions(t *testing.T) {
	tests := []struct {
		name           string
		contentType    string
		minViews       int64
		minSubscribers int64
		sortKey        string
		sortOrder      string
		expectError    bool
		errorContains  string
		expected       table.SortState
	}{
		{
			name:        "defaults",
			contentType: "all",
			sortOrder:   "desc",
			expected:    table.SortState{Direction: table.DirectionDescending},
		},
		{
			name:           "shorts sorted by views ascending",
			contentType:    "shorts",
			minViews:       10000,
			minSubscribers: 100,
			sortKey:        "viewCount",
			sortOrder:      "asc",
			expected:       table.SortState{Key: table.SortViews, Direction: table.DirectionAscending},
		},
		{
			name:          "unknown content type",
			contentType:   "medium",
			expectError:   true,
			errorContains: "invalid content type",
		},
		{
			name:          "negative views",
			contentType:   "all",
			minViews:      -1,
			expectError:   true,
			errorContains: "min-views cannot be negative",
		},
		{
			name:           "negative subscribers",
			contentType:    "all",
			minSubscribers: -5,
			expectError:    true,
			errorContains:  "min-subscribers cannot be negative",
		},
		{
			name:          "unknown sort key",
			contentType:   "all",
			sortKey:       "popularity",
			expectError:   true,
			errorContains: "unknown sort key",
		},
		{
			name:          "unknown order",
			contentType:   "all",
			sortKey:       "title",
			sortOrder:     "random",
			expectError:   true,
			errorContains: "invalid sort order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseViewOptions(tt.contentType, tt.minViews, tt.minSubscribers, tt.sortKey, tt.sortOrder)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.minViews, opts.Criteria.MinViews)
			assert.Equal(t, tt.minSubscribers, opts.Criteria.MinSubscribers)
			assert.Equal(t, tt.expected, opts.Sort)
		})
	}
}

func TestCollectKeywords(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "keywords.txt")
	require.NoError(t, os.WriteFile(file, []byte("# comment\n맛집\n\n  golang  \n"), 0o644))

	t.Run("arguments only", func(t *testing.T) {
		keywords, err := collectKeywords([]string{"a", " ", "b"}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, keywords)
	})

	t.Run("arguments and file", func(t *testing.T) {
		keywords, err := collectKeywords([]string{"first"}, file)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "맛집", "golang"}, keywords)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := collectKeywords(nil, filepath.Join(dir, "missing.txt"))
		assert.Error(t, err)
	})

	t.Run("nothing provided", func(t *testing.T) {
		_, err := collectKeywords(nil, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no keywords provided")
	})
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["search"])
	assert.True(t, names["shell"])

	for _, flag := range []string{"config", "api-key", "max-results", "period", "region", "output", "search-timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %s", flag)
	}
}

func TestConnect(t *testing.T) {
	original := connectClient
	t.Cleanup(func() { connectClient = original })

	t.Run("no key yields nil client", func(t *testing.T) {
		connectClient = func(ctx context.Context, cfg *config.Config) (youtube.YouTubeClient, error) {
			t.Fatal("connect should not dial without a key")
			return nil, nil
		}

		api, closeAPI, err := connect(t.Context(), config.DefaultConfig())

		require.NoError(t, err)
		assert.Nil(t, api)
		closeAPI()
	})

	t.Run("dial failure is returned", func(t *testing.T) {
		dialErr := errors.New("unsupported endpoint scheme")
		connectClient = func(ctx context.Context, cfg *config.Config) (youtube.YouTubeClient, error) {
			return nil, dialErr
		}
		cfg := config.DefaultConfig()
		cfg.APIKey = "test-key"
		cfg.Endpoint = "ftp://example.invalid/"

		api, closeAPI, err := connect(t.Context(), cfg)

		require.ErrorIs(t, err, dialErr)
		assert.NotErrorIs(t, err, youtube.ErrInvalidCredential)
		assert.Nil(t, api)
		closeAPI()
	})

	t.Run("configured key connects", func(t *testing.T) {
		connectClient = original
		cfg := config.DefaultConfig()
		cfg.APIKey = "test-key"

		api, closeAPI, err := connect(t.Context(), cfg)

		require.NoError(t, err)
		assert.NotNil(t, api)
		closeAPI()
	})
}
