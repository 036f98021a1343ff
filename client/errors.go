package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"google.golang.org/api/googleapi"
)

var credentialReasons = map[string]bool{
	"keyInvalid":          true,
	"keyExpired":          true,
	"accessNotConfigured": true,
	"ipRefererBlocked":    true,
	"forbidden":           true,
}

var quotaReasons = map[string]bool{
	"quotaExceeded":         true,
	"dailyLimitExceeded":    true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// classifyAPIError tags provider errors with the matching sentinel so callers can
// tell a rejected credential from a spent quota without inspecting googleapi types.
// Errors that are neither are returned unchanged.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	for _, item := range apiErr.Errors {
		if quotaReasons[item.Reason] {
			return fmt.Errorf("%w: %w", youtube.ErrQuotaExceeded, err)
		}
		if credentialReasons[item.Reason] {
			return fmt.Errorf("%w: %w", youtube.ErrInvalidCredential, err)
		}
	}

	if apiErr.Code == http.StatusUnauthorized || strings.Contains(strings.ToLower(apiErr.Message), "api key") {
		return fmt.Errorf("%w: %w", youtube.ErrInvalidCredential, err)
	}

	return err
}
