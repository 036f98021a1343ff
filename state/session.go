// Package state tracks the in-memory state of a search session: the latest
// result set, the active filter and sort, and which search may publish.
package state

import (
	"sync"
	"time"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/researchaccelerator-hub/tuberay/table"
	"github.com/rs/zerolog/log"
)

// Phase is the display state of a session. Exactly one phase holds at a time.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseLoading
	PhaseFailed
	PhaseEmpty
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFailed:
		return "failed"
	case PhaseEmpty:
		return "empty"
	case PhaseResults:
		return "results"
	default:
		return "welcome"
	}
}

// Token identifies one search run within a session. Later runs get larger tokens.
type Token uint64

// View is a point-in-time snapshot of a session for rendering
type View struct {
	Phase     Phase
	Keyword   string
	Videos    []youtube.EnrichedVideo // filtered and sorted
	Total     int                     // before filtering
	Error     string
	Hint      string
	Criteria  table.FilterCriteria
	Sort      table.SortState
	UpdatedAt time.Time
}

// Session holds the current result set and view settings of an interactive
// search session. Only the most recently started search may publish results.
type Session struct {
	mutex sync.RWMutex

	sorter *table.Sorter
	latest Token
	phase  Phase

	keyword   string
	all       []youtube.EnrichedVideo
	visible   []youtube.EnrichedVideo
	errMsg    string
	hint      string
	criteria  table.FilterCriteria
	sortState table.SortState
	updatedAt time.Time
}

// NewSession creates an empty session that sorts text with sorter
func NewSession(sorter *table.Sorter) *Session {
	if sorter == nil {
		sorter = table.NewSorter(table.DefaultLanguage)
	}
	return &Session{
		sorter:    sorter,
		phase:     PhaseWelcome,
		updatedAt: time.Now(),
	}
}

// Begin starts a new search and returns its token. Any run still in flight
// becomes stale and its result will be discarded.
func (s *Session) Begin(keyword string) Token {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.latest++
	s.keyword = keyword
	s.phase = PhaseLoading
	s.errMsg = ""
	s.hint = ""
	s.updatedAt = time.Now()

	log.Debug().Uint64("token", uint64(s.latest)).Str("keyword", keyword).Msg("Search started")
	return s.latest
}

// Resolve publishes the result of the run identified by token. It returns false
// and changes nothing when a newer run has started since.
func (s *Session) Resolve(token Token, videos []youtube.EnrichedVideo, err error) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if token != s.latest {
		log.Debug().
			Uint64("token", uint64(token)).
			Uint64("latest", uint64(s.latest)).
			Msg("Discarding stale search result")
		return false
	}

	s.updatedAt = time.Now()

	if err != nil {
		s.all = nil
		s.visible = nil
		s.errMsg, s.hint = FailureMessage(err)
		s.phase = PhaseFailed
		return true
	}

	s.all = videos
	s.refresh()
	return true
}

// InFlight reports whether the latest search has not resolved yet
func (s *Session) InFlight() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.phase == PhaseLoading
}

// SetCriteria replaces the filter criteria and reapplies filter and sort
func (s *Session) SetCriteria(criteria table.FilterCriteria) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.criteria = criteria
	s.refreshSettled()
}

// ToggleSort activates a column and returns the resulting sort state
func (s *Session) ToggleSort(key table.SortKey) table.SortState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.sortState = table.NextSortState(s.sortState, key)
	s.refreshSettled()
	return s.sortState
}

// SetSort replaces the sort state outright
func (s *Session) SetSort(state table.SortState) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.sortState = state
	s.refreshSettled()
}

// View returns a snapshot of the session
func (s *Session) View() View {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	videos := make([]youtube.EnrichedVideo, len(s.visible))
	copy(videos, s.visible)

	return View{
		Phase:     s.phase,
		Keyword:   s.keyword,
		Videos:    videos,
		Total:     len(s.all),
		Error:     s.errMsg,
		Hint:      s.hint,
		Criteria:  s.criteria,
		Sort:      s.sortState,
		UpdatedAt: s.updatedAt,
	}
}

// refreshSettled recomputes the visible rows only when a result set is shown.
// Settings changed while loading, failed or before the first search apply to
// the next result.
func (s *Session) refreshSettled() {
	if s.phase == PhaseResults || s.phase == PhaseEmpty {
		s.refresh()
	}
}

// refresh recomputes the visible rows from the full result set.
// Callers hold the write lock.
func (s *Session) refresh() {
	s.visible = s.sorter.Sort(table.Filter(s.all, s.criteria), s.sortState)
	if len(s.visible) == 0 {
		s.phase = PhaseEmpty
	} else {
		s.phase = PhaseResults
	}
}
