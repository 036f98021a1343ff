package youtube

import "errors"

var (
	// ErrInvalidCredential means the provider rejected or never received the API key.
	ErrInvalidCredential = errors.New("YouTube API credential rejected")

	// ErrQuotaExceeded means the provider refused the call because the quota is spent.
	ErrQuotaExceeded = errors.New("YouTube API quota exceeded")

	// ErrNotFound means the requested video or channel does not exist.
	ErrNotFound = errors.New("not found on YouTube")
)
