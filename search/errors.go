package search

import (
	"errors"
)

// ErrSearchFailed is the single user-facing failure of a search run
var ErrSearchFailed = errors.New("search failed")

// ErrInvalidRequest is returned for a request that fails validation before any call is made
var ErrInvalidRequest = errors.New("invalid search request")

// FailureKind classifies why a search run failed
type FailureKind int

const (
	// FailureFetch covers network and provider failures
	FailureFetch FailureKind = iota
	// FailureConfig means the credential is missing or was rejected
	FailureConfig
	// FailureTimeout means the run exceeded its deadline
	FailureTimeout
)

func (k FailureKind) String() string {
	switch k {
	case FailureConfig:
		return "config"
	case FailureTimeout:
		return "timeout"
	default:
		return "fetch"
	}
}

// SearchError is returned for every failed search run. Its message is always
// "search failed"; Kind tells callers which remediation to suggest and Cause
// keeps the underlying error for logs.
type SearchError struct {
	Kind     FailureKind
	SearchID string
	cause    error
}

func (e *SearchError) Error() string {
	return ErrSearchFailed.Error()
}

// Unwrap makes errors.Is(err, ErrSearchFailed) hold for every failed run
func (e *SearchError) Unwrap() error {
	return ErrSearchFailed
}

// Cause returns the underlying error
func (e *SearchError) Cause() error {
	return e.cause
}

// Hint returns remediation text for the user
func (e *SearchError) Hint() string {
	switch e.Kind {
	case FailureConfig:
		return ".env 파일 또는 환경 변수에서 YOUTUBE_API_KEY를 확인해주세요."
	case FailureTimeout:
		return "결과 개수를 줄이거나 잠시 후 다시 시도해주세요."
	default:
		return "네트워크 연결과 API 할당량을 확인한 후 다시 시도해주세요."
	}
}

// KindOf reports the failure kind of err, and false when err is not a SearchError
func KindOf(err error) (FailureKind, bool) {
	var searchErr *SearchError
	if errors.As(err, &searchErr) {
		return searchErr.Kind, true
	}
	return 0, false
}
