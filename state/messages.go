package state

import (
	"errors"

	"github.com/researchaccelerator-hub/tuberay/search"
)

const (
	WelcomeTitle   = "📺 TubeRay에 오신 것을 환영합니다"
	WelcomeBody    = "키워드를 입력하고 옵션을 선택한 후 검색하세요."
	LoadingTitle   = "YouTube 영상을 검색하고 있습니다..."
	LoadingBody    = "영상 정보와 채널 통계를 불러오는 중입니다."
	NoResultsTitle = "검색 결과가 없습니다."
)

// FailureMessage returns the user-facing message and remediation hint for a failed search
func FailureMessage(err error) (message, hint string) {
	if errors.Is(err, search.ErrInvalidRequest) {
		return err.Error(), ""
	}

	var searchErr *search.SearchError
	if !errors.As(err, &searchErr) {
		return "영상 검색에 실패했습니다.", ""
	}

	switch searchErr.Kind {
	case search.FailureConfig:
		message = "영상 검색에 실패했습니다. API 키를 확인해주세요."
	case search.FailureTimeout:
		message = "검색 시간이 초과되었습니다."
	default:
		message = "영상 검색에 실패했습니다."
	}
	return message, searchErr.Hint()
}
