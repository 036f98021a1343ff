package client

import (
	"context"
	"fmt"

	"github.com/researchaccelerator-hub/tuberay/config"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
)

// NewConnectedClient creates a YouTube Data API client from configuration and connects it
func NewConnectedClient(ctx context.Context, cfg *config.Config) (youtube.YouTubeClient, error) {
	dataClient, err := NewYouTubeDataClient(cfg.APIKey, &DataClientConfig{
		RequestTimeout: cfg.RequestTimeout,
		Endpoint:       cfg.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	if err := dataClient.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect YouTube client: %w", err)
	}

	return dataClient, nil
}
