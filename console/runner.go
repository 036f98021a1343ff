package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/researchaccelerator-hub/tuberay/config"
	"github.com/researchaccelerator-hub/tuberay/search"
	"github.com/researchaccelerator-hub/tuberay/state"
	"github.com/researchaccelerator-hub/tuberay/table"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// ViewOptions are the filter and sort settings applied to results
type ViewOptions struct {
	Criteria table.FilterCriteria
	Sort     table.SortState
}

// Runner performs one-shot searches and prints each result set
type Runner struct {
	cfg      *config.Config
	searcher *search.Searcher
	sorter   *table.Sorter
	out      io.Writer
	now      func() time.Time
}

// NewRunner creates a Runner. api may be nil when no credential is configured,
// in which case every search reports a configuration failure.
func NewRunner(cfg *config.Config, api search.API, out io.Writer) *Runner {
	return &Runner{
		cfg:      cfg,
		searcher: search.NewSearcher(api, search.WithTimeout(cfg.SearchTimeout)),
		sorter:   NewSorter(cfg.Language),
		out:      out,
		now:      time.Now,
	}
}

// NewSorter builds a Sorter for a BCP 47 tag, falling back to the default language
func NewSorter(tag string) *table.Sorter {
	lang, err := language.Parse(tag)
	if err != nil {
		log.Warn().Err(err).Str("language", tag).Msg("Unknown collation language, using default")
		lang = table.DefaultLanguage
	}
	return table.NewSorter(lang)
}

// Run searches each keyword in turn and renders its results. Every keyword is
// attempted; the returned error joins the failures.
func (r *Runner) Run(ctx context.Context, keywords []string, opts ViewOptions) error {
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords provided")
	}

	log.Info().Int("keywords", len(keywords)).Int("max_results", r.cfg.MaxResults).Msg("Starting search run")

	var failures []error
	for _, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		if err := r.runOne(ctx, keyword, opts); err != nil {
			failures = append(failures, fmt.Errorf("keyword '%s': %w", keyword, err))
		}
	}

	log.Info().Int("failed", len(failures)).Msg("Search run completed")
	return errors.Join(failures...)
}

func (r *Runner) runOne(ctx context.Context, keyword string, opts ViewOptions) error {
	session := state.NewSession(r.sorter)
	session.SetCriteria(opts.Criteria)
	session.SetSort(opts.Sort)

	token := session.Begin(keyword)
	videos, searchErr := r.searcher.Search(ctx, r.cfg.SearchRequest(keyword))
	session.Resolve(token, videos, searchErr)

	if err := Render(r.out, session.View(), r.cfg.Output, r.now()); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	return searchErr
}
