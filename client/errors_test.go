package client

import (
	"errors"
	"net/http"
	"testing"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestClassifyAPIError(t *testing.T) {
	plain := errors.New("connection reset by peer")
	assert.Same(t, plain, classifyAPIError(plain))

	tests := []struct {
		name     string
		err      *googleapi.Error
		sentinel error
	}{
		{
			name:     "unauthorized",
			err:      &googleapi.Error{Code: http.StatusUnauthorized, Message: "Login Required"},
			sentinel: youtube.ErrInvalidCredential,
		},
		{
			name:     "missing key",
			err:      &googleapi.Error{Code: http.StatusForbidden, Message: "The request is missing a valid API key."},
			sentinel: youtube.ErrInvalidCredential,
		},
		{
			name: "expired key",
			err: &googleapi.Error{Code: http.StatusBadRequest, Errors: []googleapi.ErrorItem{
				{Reason: "keyExpired"},
			}},
			sentinel: youtube.ErrInvalidCredential,
		},
		{
			name: "forbidden",
			err: &googleapi.Error{Code: http.StatusForbidden, Message: "Access forbidden.", Errors: []googleapi.ErrorItem{
				{Reason: "forbidden"},
			}},
			sentinel: youtube.ErrInvalidCredential,
		},
		{
			name: "daily limit",
			err: &googleapi.Error{Code: http.StatusForbidden, Errors: []googleapi.ErrorItem{
				{Reason: "dailyLimitExceeded"},
			}},
			sentinel: youtube.ErrQuotaExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := classifyAPIError(tt.err)
			assert.True(t, errors.Is(classified, tt.sentinel))

			var apiErr *googleapi.Error
			assert.True(t, errors.As(classified, &apiErr), "original error should stay reachable")
		})
	}

	notFound := &googleapi.Error{Code: http.StatusNotFound, Message: "Requested entity was not found."}
	assert.Same(t, error(notFound), classifyAPIError(notFound))
}
