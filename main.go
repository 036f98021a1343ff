package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/researchaccelerator-hub/tuberay/client"
	"github.com/researchaccelerator-hub/tuberay/common"
	"github.com/researchaccelerator-hub/tuberay/config"
	"github.com/researchaccelerator-hub/tuberay/console"
	"github.com/researchaccelerator-hub/tuberay/search"
	"github.com/researchaccelerator-hub/tuberay/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	keywordFile string

	contentType    string
	minViews       int64
	minSubscribers int64
	sortKey        string
	sortOrder      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "tuberay",
		Short: "YouTube keyword search with channel statistics",
		Long: `TubeRay searches YouTube by keyword and reports every matching video with
its view, like and comment counts, its channel's subscribers, and two derived
metrics: the video's share of channel views and its views per subscriber.

The API key is read from TUBERAY_API_KEY, YOUTUBE_API_KEY or a .env file.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("api-key", "", "YouTube Data API key")
	rootCmd.PersistentFlags().Int("max-results", 10, "number of videos to collect per keyword")
	rootCmd.PersistentFlags().String("period", "all", "recency window (all, hour, today, week, month, year)")
	rootCmd.PersistentFlags().String("region", "KR", "ISO 3166-1 alpha-2 region code, empty for worldwide")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().Duration("search-timeout", search.DefaultTimeout, "deadline for one search run")

	bindFlags(v, rootCmd, map[string]string{
		"log_level":      "log-level",
		"api_key":        "api-key",
		"max_results":    "max-results",
		"period":         "period",
		"region":         "region",
		"output":         "output",
		"search_timeout": "search-timeout",
	})

	rootCmd.AddCommand(newSearchCmd(v), newShellCmd(v))
	return rootCmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			log.Fatal().Err(err).Str("flag", flag).Msg("Failed to bind flag")
		}
	}
}

func newSearchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [keyword...]",
		Short: "Search one or more keywords and print the results",
		Example: `  tuberay search "golang tutorial"
  tuberay search 맛집 --max-results 100 --period week --sort viewCount
  tuberay search --keyword-file keywords.txt --content-type shorts --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			keywords, err := collectKeywords(args, keywordFile)
			if err != nil {
				return err
			}

			opts, err := parseViewOptions(contentType, minViews, minSubscribers, sortKey, sortOrder)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			api, closeAPI, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeAPI()

			return console.NewRunner(cfg, api, cmd.OutOrStdout()).Run(ctx, keywords, opts)
		},
	}

	cmd.Flags().StringVar(&keywordFile, "keyword-file", "", "file with one keyword per line")
	cmd.Flags().StringVar(&contentType, "content-type", "all", "content filter (all, shorts, long)")
	cmd.Flags().Int64Var(&minViews, "min-views", 0, "minimum view count, 0 to disable")
	cmd.Flags().Int64Var(&minSubscribers, "min-subscribers", 0, "minimum channel subscribers, 0 to disable")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort column (e.g. viewCount, subscriberCount, performanceMultiplier)")
	cmd.Flags().StringVar(&sortOrder, "order", "desc", "sort order (desc, asc)")

	return cmd
}

func newShellCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive search session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			api, closeAPI, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeAPI()

			return console.NewShell(cfg, api, cmd.OutOrStdout()).Run(ctx, cmd.InOrStdin())
		},
	}
}

// loadConfig resolves and validates configuration, then sets up logging
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging(cfg.LogLevel)
	log.Debug().
		Int("max_results", cfg.MaxResults).
		Str("period", cfg.Period).
		Str("region", cfg.Region).
		Bool("has_api_key", cfg.HasAPIKey()).
		Msg("Configuration loaded")

	return cfg, nil
}

// setupLogging sends human-readable logs to stderr so stdout carries only results
func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// connectClient dials the provider; replaced in tests
var connectClient = client.NewConnectedClient

// connect returns a connected client. Without a configured key it returns a nil
// client so searches report a configuration failure instead of the command
// aborting; any other connect failure is returned to the command.
func connect(ctx context.Context, cfg *config.Config) (search.API, func(), error) {
	noop := func() {}

	if !cfg.HasAPIKey() {
		log.Warn().Msg("No YouTube API key configured")
		return nil, noop, nil
	}

	ytClient, err := connectClient(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to YouTube")
		return nil, noop, fmt.Errorf("failed to connect to YouTube: %w", err)
	}

	return ytClient, func() {
		if err := ytClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to disconnect YouTube client")
		}
	}, nil
}

// collectKeywords merges keywords from arguments and an optional keyword file
func collectKeywords(args []string, file string) ([]string, error) {
	var keywords []string
	for _, arg := range args {
		if kw := strings.TrimSpace(arg); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	if file != "" {
		fileKeywords, err := common.ReadKeywordsFromFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read keywords from %s: %w", file, err)
		}
		keywords = append(keywords, fileKeywords...)
	}

	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided. Pass keywords as arguments or use --keyword-file")
	}

	return keywords, nil
}

// parseViewOptions validates the filter and sort flags
func parseViewOptions(contentType string, minViews, minSubscribers int64, sortKey, sortOrder string) (console.ViewOptions, error) {
	ct, err := table.ParseContentType(contentType)
	if err != nil {
		return console.ViewOptions{}, err
	}

	if minViews < 0 {
		return console.ViewOptions{}, fmt.Errorf("min-views cannot be negative")
	}
	if minSubscribers < 0 {
		return console.ViewOptions{}, fmt.Errorf("min-subscribers cannot be negative")
	}

	key, err := table.ParseSortKey(sortKey)
	if err != nil {
		return console.ViewOptions{}, err
	}

	direction, err := table.ParseDirection(sortOrder)
	if err != nil {
		return console.ViewOptions{}, err
	}

	return console.ViewOptions{
		Criteria: table.FilterCriteria{
			ContentType:    ct,
			MinViews:       minViews,
			MinSubscribers: minSubscribers,
		},
		Sort: table.SortState{Key: key, Direction: direction},
	}, nil
}
