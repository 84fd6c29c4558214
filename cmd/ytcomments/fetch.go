// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/yt-comments/internal/collector"
	"github.com/sirseerhq/yt-comments/internal/config"
	"github.com/sirseerhq/yt-comments/internal/credentials"
	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
	"github.com/sirseerhq/yt-comments/internal/output"
	"github.com/sirseerhq/yt-comments/internal/stats"
	"github.com/sirseerhq/yt-comments/internal/youtube"
	"github.com/sirseerhq/yt-comments/pkg/version"
)

// fetchOptions holds the inputs of a fetch run
type fetchOptions struct {
	apiKey     string
	configPath string
	envFile    string
	verbose    bool
	report     bool

	minInterval time.Duration
	stdout      io.Writer
	stderr      io.Writer
}

// newFetchCommand creates the fetch command
func newFetchCommand() *cobra.Command {
	opts := fetchOptions{
		minInterval: youtube.DefaultMinInterval,
	}

	cmd := &cobra.Command{
		Use:   "fetch <video-id-or-url> [output-dir]",
		Short: "Fetch all comments of a video",
		Long: `Fetch every comment of a YouTube video, including all replies, and save
them to {videoId}_comments.json in the output directory.

The video may be given as an 11-character ID or as a URL:
  dQw4w9WgXcQ
  https://www.youtube.com/watch?v=dQw4w9WgXcQ
  https://youtu.be/dQw4w9WgXcQ

A YouTube Data API v3 key is required:
  - Use --key to provide it directly
  - Or put YOUTUBE_API_KEY=... in a .env file
  - Or set the YOUTUBE_API_KEY environment variable`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runFetch(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiKey, "key", "", "YouTube Data API key (overrides .env and environment)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Env file to read the API key from")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging, including every API request")
	cmd.Flags().BoolVar(&opts.report, "report", false, "Also write a JSON run report to the output directory")

	return cmd
}

// runFetch executes the fetch command
func runFetch(ctx context.Context, args []string, opts fetchOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}
	if opts.stderr == nil {
		opts.stderr = os.Stderr
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg, opts.verbose, opts.stderr)

	outputDir := cfg.Defaults.OutputDir
	if len(args) > 1 && args[1] != "" {
		outputDir = args[1]
	}

	apiKey, source, err := credentials.NewProvider(cfg.YouTube.KeyEnv, opts.envFile, logger).APIKey(opts.apiKey)
	if err != nil {
		return err
	}
	logger.WithField("source", source).Debug("Using API key")

	videoID, err := collector.ValidateVideoID(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(opts.stdout, "Video:  %s\n", videoID)
	fmt.Fprintf(opts.stdout, "Output: %s\n\n", outputDir)

	tracker := stats.New()
	gateway := youtube.NewGateway(
		youtube.WithMinInterval(opts.minInterval),
		youtube.WithLogger(logger),
	)
	client := youtube.NewAPIClient(gateway, cfg.YouTube.APIEndpoint, apiKey)
	c := collector.New(client,
		collector.WithPageSize(cfg.Defaults.PageSize),
		collector.WithLogger(logger),
	)

	comments, err := c.Collect(ctx, videoID, func(p collector.Progress) {
		logger.Infof("processed: %d - %s", p.ProcessedComments, p.CurrentOperation)
	})
	if err != nil {
		return err
	}

	report := tracker.Report(version.Version, videoID, comments, client.Stats())
	stats.WriteReport(opts.stdout, report)

	if len(comments) == 0 {
		fmt.Fprintln(opts.stdout, "\nThis video has no comments (or comments are disabled).")
	}

	result, err := output.SaveComments(comments, videoID, outputDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(opts.stdout, "\nSaved comments to %s\n", result.Path)
	fmt.Fprintf(opts.stdout, "  Total comments: %d\n", result.Count)
	fmt.Fprintf(opts.stdout, "  File size:      %.2f MB\n", result.SizeMB())

	if opts.report {
		path, err := stats.SaveReport(report, outputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.stdout, "Saved run report to %s\n", path)
	}

	if len(comments) > 0 {
		fmt.Fprintln(opts.stdout, "\nComment collection complete.")
	}
	return nil
}

// newLogger builds the run logger. --verbose forces debug level.
func newLogger(cfg *config.Config, verbose bool, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.TimeOnly,
	})
	logger.SetLevel(cfg.LogLevel())
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, ytcerrors.ErrMissingAPIKey) ||
		errors.Is(err, ytcerrors.ErrQuotaOrAuth) ||
		errors.Is(err, ytcerrors.ErrVideoNotFound) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, ytcerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
