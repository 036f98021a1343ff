package search

import (
	"context"
	"fmt"
	"time"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/rs/zerolog/log"
)

// PageCap is the largest page the search endpoint returns per call
const PageCap = 50

// Paginate collects up to req.MaxResults hits in provider (relevance) order.
// It issues at most ceil(MaxResults/PageCap) calls and stops early when a page
// is empty, when no continuation token comes back, or once enough hits are
// collected. Any failed page call fails the whole pagination.
func Paginate(ctx context.Context, api API, req youtube.SearchRequest, publishedAfter *time.Time) ([]youtube.SearchHit, error) {
	totalPages := (req.MaxResults + PageCap - 1) / PageCap
	hits := make([]youtube.SearchHit, 0, max(0, min(req.MaxResults, PageCap*4)))
	pageToken := ""

	for page := 0; page < totalPages; page++ {
		remaining := req.MaxResults - len(hits)

		result, err := api.SearchVideos(ctx, youtube.SearchPageRequest{
			Query:          req.Keyword,
			MaxResults:     min(PageCap, remaining),
			PublishedAfter: publishedAfter,
			RegionCode:     req.Region,
			PageToken:      pageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch search page %d: %w", page+1, err)
		}

		if result == nil || len(result.Hits) == 0 {
			log.Debug().Int("page", page+1).Msg("Search page returned no videos")
			break
		}

		pageHits := result.Hits
		if len(pageHits) > remaining {
			pageHits = pageHits[:remaining]
		}
		hits = append(hits, pageHits...)
		pageToken = result.NextPageToken

		log.Debug().
			Int("page", page+1).
			Int("page_hits", len(pageHits)).
			Int("collected", len(hits)).
			Msg("Fetched search page")

		// No more pages, or the requested count is reached
		if pageToken == "" || len(hits) >= req.MaxResults {
			break
		}
	}

	return hits, nil
}
