package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/researchaccelerator-hub/tuberay/config"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/researchaccelerator-hub/tuberay/search"
	"github.com/researchaccelerator-hub/tuberay/state"
	"github.com/researchaccelerator-hub/tuberay/table"
	"github.com/rs/zerolog/log"
)

const shellPrompt = "tuberay> "

const shellHelp = `명령어:
  search <키워드>        검색 실행 (키워드만 입력해도 됩니다)
  max <개수>             결과 개수 (예: 10, 50, 100, 200, 300, 500)
  period <기간>          all, hour, today, week, month, year
  region <국가>          KR, US, JP, GB 또는 none (전 세계)
  type <유형>            all, shorts, long
  min-views <수>         최소 조회수 (0이면 사용 안 함)
  min-subs <수>          최소 구독자 수 (0이면 사용 안 함)
  sort <열>              정렬 전환 (내림차순 → 오름차순 → 해제)
  show                   현재 결과 다시 보기
  wait                   진행 중인 검색이 끝날 때까지 대기
  help                   도움말
  quit                   종료`

// Shell is an interactive search session. Searches run in the background so
// filters and sorting stay responsive; only the latest search may publish.
type Shell struct {
	cfg      config.Config
	searcher *search.Searcher
	session  *state.Session
	now      func() time.Time

	outMu sync.Mutex
	out   io.Writer

	pending sync.WaitGroup
}

// NewShell creates a Shell. Search options start from cfg and can be changed
// with shell commands without affecting cfg.
func NewShell(cfg *config.Config, api search.API, out io.Writer) *Shell {
	return &Shell{
		cfg:      *cfg,
		searcher: search.NewSearcher(api, search.WithTimeout(cfg.SearchTimeout)),
		session:  state.NewSession(NewSorter(cfg.Language)),
		now:      time.Now,
		out:      out,
	}
}

// Run reads commands from in until EOF, quit or ctx is done. Searches still
// running at that point are awaited before Run returns.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	defer s.pending.Wait()

	s.render()
	s.printf("%s", shellPrompt)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			s.printf("%s", shellPrompt)
			continue
		}

		if quit := s.execute(ctx, line); quit {
			return nil
		}
		s.printf("%s", shellPrompt)
	}

	return scanner.Err()
}

// execute runs one command line and reports whether the shell should exit
func (s *Shell) execute(ctx context.Context, line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.println(shellHelp)
	case "show":
		s.render()
	case "wait":
		s.pending.Wait()
	case "search":
		s.startSearch(ctx, arg)
	case "max":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			s.println("결과 개수는 1 이상의 숫자여야 합니다.")
			return false
		}
		s.cfg.MaxResults = n
		s.printf("결과 개수: %d\n", n)
	case "period":
		if !youtube.IsValidPeriod(arg) {
			s.println("기간은 all, hour, today, week, month, year 중 하나여야 합니다.")
			return false
		}
		s.cfg.Period = string(youtube.ParsePeriod(arg))
		s.printf("기간: %s\n", s.cfg.Period)
	case "region":
		if strings.EqualFold(arg, "none") || arg == "" {
			s.cfg.Region = ""
			s.println("국가: 전 세계")
			return false
		}
		region, err := youtube.NormalizeRegion(arg)
		if err != nil {
			s.println(err.Error())
			return false
		}
		s.cfg.Region = region
		s.printf("국가: %s\n", region)
	case "type":
		contentType, err := table.ParseContentType(arg)
		if err != nil {
			s.println(err.Error())
			return false
		}
		criteria := s.session.View().Criteria
		criteria.ContentType = contentType
		s.applyCriteria(criteria)
	case "min-views":
		n, ok := s.parseThreshold(arg)
		if !ok {
			return false
		}
		criteria := s.session.View().Criteria
		criteria.MinViews = n
		s.applyCriteria(criteria)
	case "min-subs", "min-subscribers":
		n, ok := s.parseThreshold(arg)
		if !ok {
			return false
		}
		criteria := s.session.View().Criteria
		criteria.MinSubscribers = n
		s.applyCriteria(criteria)
	case "sort":
		key, err := table.ParseSortKey(arg)
		if err != nil || key == table.SortNone {
			s.printf("정렬할 수 없는 열입니다: %s\n", arg)
			return false
		}
		s.session.ToggleSort(key)
		s.render()
	default:
		// A bare line is a keyword
		s.startSearch(ctx, line)
	}

	return false
}

func (s *Shell) startSearch(ctx context.Context, keyword string) {
	if keyword == "" {
		s.println("검색어를 입력해주세요.")
		return
	}
	if s.session.InFlight() {
		s.println("이전 검색이 아직 진행 중입니다.")
		return
	}

	req := s.cfg.SearchRequest(keyword)
	token := s.session.Begin(keyword)
	s.render()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		videos, err := s.searcher.Search(ctx, req)
		if !s.session.Resolve(token, videos, err) {
			log.Debug().Str("keyword", keyword).Msg("Search result superseded")
			return
		}
		s.render()
	}()
}

func (s *Shell) applyCriteria(criteria table.FilterCriteria) {
	s.session.SetCriteria(criteria)
	s.render()
}

func (s *Shell) parseThreshold(arg string) (int64, bool) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n < 0 {
		s.println("0 이상의 숫자를 입력해주세요.")
		return 0, false
	}
	return n, true
}

func (s *Shell) render() {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	if err := Render(s.out, s.session.View(), s.cfg.Output, s.now()); err != nil {
		log.Error().Err(err).Msg("Failed to render session")
	}
}

func (s *Shell) printf(format string, args ...interface{}) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(text string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintln(s.out, text)
}
