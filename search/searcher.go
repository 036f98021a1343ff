package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/researchaccelerator-hub/tuberay/common"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a whole search run, enrichment included
const DefaultTimeout = 60 * time.Second

// Status is the result type of a search run
type Status int

const (
	StatusSuccess Status = iota
	StatusFetchFailed
	StatusConfigFailed
	StatusTimedOut
	StatusInvalidRequest
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFetchFailed:
		return "fetch_failed"
	case StatusConfigFailed:
		return "config_failed"
	case StatusTimedOut:
		return "timed_out"
	case StatusInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a search run. Videos is set only on success.
type Outcome struct {
	Status   Status
	SearchID string
	Videos   []youtube.EnrichedVideo
	Err      error
}

// Searcher runs the search pipeline: paginate, enrich, compute metrics.
// A Searcher keeps no state between runs and is safe for concurrent use.
type Searcher struct {
	api          API
	timeout      time.Duration
	now          func() time.Time
	dedupChannel bool
}

// Option configures a Searcher
type Option func(*Searcher)

// WithTimeout sets the deadline applied to each run
func WithTimeout(timeout time.Duration) Option {
	return func(s *Searcher) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithClock overrides the clock used to resolve recency periods
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

// WithoutChannelDedup makes every hit fetch its own channel statistics
func WithoutChannelDedup() Option {
	return func(s *Searcher) {
		s.dedupChannel = false
	}
}

// NewSearcher creates a Searcher over api. A nil api is accepted and makes every
// run fail as a configuration failure, which is how a missing credential surfaces.
func NewSearcher(api API, opts ...Option) *Searcher {
	s := &Searcher{
		api:          api,
		timeout:      DefaultTimeout,
		now:          time.Now,
		dedupChannel: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs the pipeline and returns the enriched videos in relevance order.
// All failures come back as a *SearchError, whose message is "search failed".
func (s *Searcher) Search(ctx context.Context, req youtube.SearchRequest) ([]youtube.EnrichedVideo, error) {
	outcome := s.Run(ctx, req)
	return outcome.Videos, outcome.Err
}

// Run is Search returning the tagged Outcome
func (s *Searcher) Run(ctx context.Context, req youtube.SearchRequest) Outcome {
	searchID := common.GenerateSearchID()

	if err := req.Validate(); err != nil {
		return Outcome{
			Status:   StatusInvalidRequest,
			SearchID: searchID,
			Err:      fmt.Errorf("%w: %v", ErrInvalidRequest, err),
		}
	}

	logger := log.With().
		Str("search_id", searchID).
		Str("keyword", req.Keyword).
		Logger()

	if s.api == nil {
		return s.fail(logger, searchID, FailureConfig, youtube.ErrInvalidCredential)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var publishedAfter *time.Time
	if after, bounded := common.PublishedAfter(req.Period, s.now()); bounded {
		publishedAfter = &after
	}

	logger.Info().
		Int("max_results", req.MaxResults).
		Str("period", string(req.Period)).
		Str("region", req.Region).
		Msg("Starting search")

	start := time.Now()

	hits, err := Paginate(ctx, s.api, req, publishedAfter)
	if err != nil {
		return s.fail(logger, searchID, classify(ctx, err), err)
	}

	channelStats := func(ctx context.Context, channelID string) StatsResult[youtube.ChannelStats] {
		return FetchChannelStats(ctx, s.api, channelID)
	}
	var cache *channelStatsCache
	if s.dedupChannel {
		cache, err = newChannelStatsCache(s.api, len(hits))
		if err != nil {
			return s.fail(logger, searchID, FailureFetch, err)
		}
		channelStats = cache.Fetch
	}

	videos, err := Enrich(ctx, hits, func(ctx context.Context, videoID string) StatsResult[youtube.VideoStats] {
		return FetchVideoStats(ctx, s.api, videoID)
	}, channelStats)
	if err != nil {
		return s.fail(logger, searchID, classify(ctx, err), err)
	}

	degraded := 0
	for _, video := range videos {
		if video.StatsDegraded {
			degraded++
		}
	}

	event := logger.Info().
		Int("hits", len(hits)).
		Int("degraded", degraded).
		Dur("elapsed", time.Since(start))
	if cache != nil {
		event = event.Int("channel_lookups", cache.Lookups())
	}
	event.Msg("Search completed")

	return Outcome{Status: StatusSuccess, SearchID: searchID, Videos: videos}
}

func (s *Searcher) fail(logger zerolog.Logger, searchID string, kind FailureKind, cause error) Outcome {
	logger.Error().Err(cause).Str("failure", kind.String()).Msg("Search failed")

	status := StatusFetchFailed
	switch kind {
	case FailureConfig:
		status = StatusConfigFailed
	case FailureTimeout:
		status = StatusTimedOut
	}

	return Outcome{
		Status:   status,
		SearchID: searchID,
		Err:      &SearchError{Kind: kind, SearchID: searchID, cause: cause},
	}
}

type timeoutError interface {
	Timeout() bool
}

// classify maps a pagination or enrichment error onto a failure kind.
// A cancelled run is a fetch failure unless its deadline had already passed.
func classify(ctx context.Context, err error) FailureKind {
	if errors.Is(err, youtube.ErrInvalidCredential) {
		return FailureConfig
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return FailureTimeout
	}
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return FailureFetch
	}
	var te timeoutError
	if errors.As(err, &te) && te.Timeout() {
		return FailureTimeout
	}
	return FailureFetch
}
