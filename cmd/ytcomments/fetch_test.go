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
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
	"github.com/sirseerhq/yt-comments/test/testutil"
)

const testVideoID = "dQw4w9WgXcQ"

// setupFetchEnv isolates the run from the developer's config and
// environment and points it at a fresh fake API.
func setupFetchEnv(t *testing.T) *testutil.FakeAPI {
	t.Helper()
	api := testutil.NewFakeAPI(t)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("YOUTUBE_API_ENDPOINT", api.URL)
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("YTCOMMENTS_OUTPUT_DIR", "")
	t.Setenv("YTCOMMENTS_PAGE_SIZE", "")
	t.Setenv("YTCOMMENTS_LOG_LEVEL", "")
	return api
}

func testOptions(t *testing.T) fetchOptions {
	t.Helper()
	return fetchOptions{
		apiKey:      testutil.TestAPIKey,
		envFile:     filepath.Join(t.TempDir(), ".env"),
		minInterval: time.Millisecond,
	}
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, opts fetchOptions, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts.stdout = &stdout
	opts.stderr = &stderr
	err := runFetch(context.Background(), args, opts)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestRunFetch_FullCollection(t *testing.T) {
	api := setupFetchEnv(t)
	replies := testutil.Replies("t1", 3)
	api.AddThreads(testVideoID,
		testutil.NewThreadBuilder("t1").WithInlineReplies(replies[0]).WithDeclaredReplies(3).Build(),
		testutil.NewThreadBuilder("t2").Build(),
	)
	api.AddReplies("t1", replies...)

	outDir := filepath.Join(t.TempDir(), "out")
	res := run(t, testOptions(t), testVideoID, outDir)
	testutil.AssertNoError(t, res.err)

	path := testutil.CommentsFile(outDir, testVideoID)
	comments := testutil.AssertCommentsFile(t, path, 5)
	testutil.AssertThreadStructure(t, comments)

	want := []string{"t1", "t1.r1", "t1.r2", "t1.r3", "t2"}
	for i, id := range want {
		if comments[i].ID != id {
			t.Errorf("comment %d = %s, want %s", i, comments[i].ID, id)
		}
	}

	if api.RequestCount() != 2 {
		t.Errorf("Expected 2 API requests, got %d", api.RequestCount())
	}
	threadQueries := api.Queries("/commentThreads")
	if len(threadQueries) != 1 {
		t.Fatalf("Expected 1 thread request, got %d", len(threadQueries))
	}
	q := threadQueries[0]
	if q.Get("part") != "snippet,replies" || q.Get("order") != "time" || q.Get("maxResults") != "100" {
		t.Errorf("Unexpected thread query: %v", q)
	}

	for _, s := range []string{
		"Video:  " + testVideoID,
		"Total comments:     5",
		"Replies:            3",
		"Requests:           2",
		"Estimated quota:    2 units",
		"Saved comments to " + path,
		"Comment collection complete.",
	} {
		testutil.AssertContainsString(t, res.stdout, s)
	}
	testutil.AssertContainsString(t, res.stderr, "processed: 0 - fetching top-level comments")
	testutil.AssertContainsString(t, res.stderr, "processed: 5 - done")
}

func TestRunFetch_PagesThroughThreads(t *testing.T) {
	api := setupFetchEnv(t)
	api.AddThreads(testVideoID, testutil.Threads(7)...)
	t.Setenv("YTCOMMENTS_PAGE_SIZE", "3")

	outDir := t.TempDir()
	res := run(t, testOptions(t), testVideoID, outDir)
	testutil.AssertNoError(t, res.err)

	testutil.AssertCommentsFile(t, testutil.CommentsFile(outDir, testVideoID), 7)
	queries := api.Queries("/commentThreads")
	if len(queries) != 3 {
		t.Fatalf("Expected 3 thread pages, got %d", len(queries))
	}
	if queries[0].Get("pageToken") != "" || queries[1].Get("pageToken") == "" {
		t.Errorf("Unexpected cursors: %q, %q", queries[0].Get("pageToken"), queries[1].Get("pageToken"))
	}
	testutil.AssertContainsString(t, res.stderr, "fetching next page")
}

func TestRunFetch_URLInput(t *testing.T) {
	api := setupFetchEnv(t)
	api.AddThreads(testVideoID, testutil.Threads(1)...)

	outDir := t.TempDir()
	res := run(t, testOptions(t), "https://www.youtube.com/watch?v="+testVideoID+"&t=10s", outDir)
	testutil.AssertNoError(t, res.err)

	testutil.AssertFileExists(t, testutil.CommentsFile(outDir, testVideoID))
}

func TestRunFetch_NoComments(t *testing.T) {
	api := setupFetchEnv(t)
	api.AddThreads(testVideoID)

	outDir := filepath.Join(t.TempDir(), "new-dir")
	res := run(t, testOptions(t), testVideoID, outDir)
	testutil.AssertNoError(t, res.err)

	testutil.AssertDirExists(t, outDir)
	testutil.AssertEmptyCommentsFile(t, outDir, testVideoID)
	testutil.AssertContainsString(t, res.stdout, "no comments (or comments are disabled)")
	testutil.AssertNotContainsString(t, res.stdout, "Comment collection complete.")
}

func TestRunFetch_OutputDirFromEnvironment(t *testing.T) {
	api := setupFetchEnv(t)
	api.AddThreads(testVideoID)
	outDir := t.TempDir()
	t.Setenv("YTCOMMENTS_OUTPUT_DIR", outDir)

	res := run(t, testOptions(t), testVideoID)
	testutil.AssertNoError(t, res.err)
	testutil.AssertFileExists(t, testutil.CommentsFile(outDir, testVideoID))
}

func TestRunFetch_APIKeyFromEnvFile(t *testing.T) {
	api := setupFetchEnv(t)
	api.AddThreads(testVideoID)

	opts := testOptions(t)
	opts.apiKey = ""
	if err := os.WriteFile(opts.envFile, []byte("YOUTUBE_API_KEY="+testutil.TestAPIKey+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res := run(t, opts, testVideoID, t.TempDir())
	testutil.AssertNoError(t, res.err)
	if got := api.Queries("/commentThreads")[0].Get("key"); got != testutil.TestAPIKey {
		t.Errorf("Expected key from env file, got %q", got)
	}
	if os.Getenv("YOUTUBE_API_KEY") != "" {
		t.Error("Env file must not modify the process environment")
	}
}

func TestRunFetch_DashedIDIsValid(t *testing.T) {
	api := setupFetchEnv(t)
	const dashed = "not-a-video"
	api.AddThreads(dashed, testutil.NewThreadBuilder("t1").WithVideo(dashed).Build())

	outDir := t.TempDir()
	res := run(t, testOptions(t), dashed, outDir)
	testutil.AssertNoError(t, res.err)

	testutil.AssertCommentsFile(t, testutil.CommentsFile(outDir, dashed), 1)
	if api.RequestCount() != 1 {
		t.Errorf("Expected 1 request, got %d", api.RequestCount())
	}
	if got := api.Queries("/commentThreads")[0].Get("videoId"); got != dashed {
		t.Errorf("videoId = %q, want %q", got, dashed)
	}
}

func TestRunFetch_Failures(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(*testutil.FakeAPI, *fetchOptions)
		args         []string
		wantIs       error
		wantExit     int
		wantRequests int
	}{
		{
			name:     "invalid video id",
			args:     []string{"dQw4w9WgXc!"},
			wantIs:   ytcerrors.ErrInvalidVideoID,
			wantExit: 1,
		},
		{
			name:     "id with spaces",
			args:     []string{"not a video"},
			wantIs:   ytcerrors.ErrInvalidVideoID,
			wantExit: 1,
		},
		{
			name:     "missing api key",
			setup:    func(_ *testutil.FakeAPI, o *fetchOptions) { o.apiKey = "" },
			args:     []string{testVideoID},
			wantIs:   ytcerrors.ErrMissingAPIKey,
			wantExit: 2,
		},
		{
			name:         "video not found",
			args:         []string{testVideoID},
			wantIs:       ytcerrors.ErrVideoNotFound,
			wantExit:     2,
			wantRequests: 1,
		},
		{
			name: "quota exceeded mid-run",
			setup: func(api *testutil.FakeAPI, _ *fetchOptions) {
				api.AddThreads(testVideoID, testutil.NewThreadBuilder("t1").WithDeclaredReplies(2).Build())
				api.AddReplies("t1", testutil.Replies("t1", 2)...)
				api.SetQuota(1)
			},
			args:         []string{testVideoID},
			wantIs:       ytcerrors.ErrQuotaOrAuth,
			wantExit:     2,
			wantRequests: 2,
		},
		{
			name: "rejected api key",
			setup: func(api *testutil.FakeAPI, _ *fetchOptions) {
				api.AddThreads(testVideoID)
				api.SetAPIKey("another-key")
			},
			args:         []string{testVideoID},
			wantIs:       ytcerrors.ErrBadRequest,
			wantExit:     1,
			wantRequests: 1,
		},
		{
			name: "server error without body",
			setup: func(api *testutil.FakeAPI, _ *fetchOptions) {
				api.FailWith(http.StatusInternalServerError, "")
			},
			args:         []string{testVideoID},
			wantExit:     1,
			wantRequests: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setupFetchEnv(t)
			opts := testOptions(t)
			if tt.setup != nil {
				tt.setup(api, &opts)
			}
			outDir := t.TempDir()

			res := run(t, opts, append(tt.args, outDir)...)
			if res.err == nil {
				t.Fatal("Expected an error")
			}
			if tt.wantIs != nil && !errors.Is(res.err, tt.wantIs) {
				t.Errorf("Expected %v, got %v", tt.wantIs, res.err)
			}
			if code := mapErrorToExitCode(res.err); code != tt.wantExit {
				t.Errorf("Exit code = %d, want %d", code, tt.wantExit)
			}
			if api.RequestCount() != tt.wantRequests {
				t.Errorf("Expected %d requests, got %d", tt.wantRequests, api.RequestCount())
			}
			testutil.AssertNoOutput(t, outDir, testVideoID)
		})
	}
}

func TestRunFetch_NetworkFailure(t *testing.T) {
	setupFetchEnv(t)
	api := testutil.NewFakeAPI(t)
	api.Close()
	t.Setenv("YOUTUBE_API_ENDPOINT", api.URL)

	res := run(t, testOptions(t), testVideoID, t.TempDir())
	if !errors.Is(res.err, ytcerrors.ErrNetworkFailure) {
		t.Fatalf("Expected network failure, got %v", res.err)
	}
	if code := mapErrorToExitCode(res.err); code != 3 {
		t.Errorf("Exit code = %d, want 3", code)
	}
	testutil.AssertNotContainsString(t, res.err.Error(), testutil.TestAPIKey)
}

func TestRunFetch_InvalidConfig(t *testing.T) {
	setupFetchEnv(t)
	opts := testOptions(t)
	opts.configPath = testutil.WriteConfigFile(t, "defaults:\n  page_size: 500\n")

	res := run(t, opts, testVideoID)
	testutil.AssertErrorContains(t, res.err, "invalid configuration")
}

func TestRunFetch_VerboseLogsRedactedRequests(t *testing.T) {
	api := setupFetchEnv(t)
	api.AddThreads(testVideoID)

	opts := testOptions(t)
	opts.verbose = true
	res := run(t, opts, testVideoID, t.TempDir())
	testutil.AssertNoError(t, res.err)

	testutil.AssertContainsString(t, res.stderr, "[API Request 1]")
	testutil.AssertContainsString(t, res.stderr, "key=REDACTED")
	testutil.AssertNotContainsString(t, res.stderr, testutil.TestAPIKey)
}

func TestFetchCommand(t *testing.T) {
	api := setupFetchEnv(t)
	api.AddThreads(testVideoID)
	outDir := t.TempDir()

	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{
		"fetch", "https://youtu.be/" + testVideoID, outDir,
		"--key", testutil.TestAPIKey,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--report",
	})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute failed: %v\n%s", err, stderr.String())
	}

	testutil.AssertEmptyCommentsFile(t, outDir, testVideoID)
	testutil.AssertFileExists(t, testutil.ReportFile(outDir, testVideoID))
	testutil.AssertContainsString(t, stdout.String(), "Saved run report to")
}

func TestFetchCommand_Args(t *testing.T) {
	tests := [][]string{
		{"fetch"},
		{"fetch", testVideoID, "out", "extra"},
	}
	for _, args := range tests {
		root := newRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.Execute(); err == nil {
			t.Errorf("Expected error for args %v", args)
		}
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"generic", errors.New("boom"), 1},
		{"validation", ytcerrors.NewValidation("bad id"), 1},
		{"bad request", ytcerrors.NewAPI(400, "bad", nil), 1},
		{"forbidden", ytcerrors.NewAPI(403, "quota", nil), 2},
		{"unauthorized", ytcerrors.NewAPI(401, "auth", nil), 2},
		{"not found", ytcerrors.NewAPI(404, "missing", nil), 2},
		{"server error", ytcerrors.NewAPI(503, "down", nil), 1},
		{"missing key", fmt.Errorf("no key: %w", ytcerrors.ErrMissingAPIKey), 2},
		{"network", ytcerrors.NewTransport("dial failed", errors.New("refused")), 3},
		{"io", ytcerrors.NewIO("write failed", errors.New("disk full")), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    []string
		notWant []string
	}{
		{
			name: "quota with details",
			err: ytcerrors.NewAPI(403, "quota exceeded", []ytcerrors.ErrorDetail{
				{Domain: "youtube.quota", Reason: "quotaExceeded", Message: "quota exceeded"},
			}),
			want: []string{"HTTP status: 403", "reason: quotaExceeded", "YouTube Data API v3 is enabled", "daily quota"},
		},
		{
			name: "not found",
			err:  ytcerrors.NewAPI(404, "video not found", nil),
			want: []string{"HTTP status: 404", "video ID is correct", "deleted", "private"},
		},
		{
			name: "bad request",
			err:  ytcerrors.NewAPI(400, "invalid parameter", nil),
			want: []string{"HTTP status: 400", "right format"},
		},
		{
			name: "missing key",
			err:  fmt.Errorf("set YOUTUBE_API_KEY: %w", ytcerrors.ErrMissingAPIKey),
			want: []string{"Create a .env file", "--key"},
		},
		{
			name:    "plain error",
			err:     errors.New("something broke"),
			want:    []string{"something broke"},
			notWant: []string{"HTTP status", "How to fix"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			out := buf.String()

			if !strings.Contains(out, "Error:") {
				t.Errorf("Missing error header:\n%s", out)
			}
			for _, s := range tt.want {
				testutil.AssertContainsString(t, out, s)
			}
			for _, s := range tt.notWant {
				testutil.AssertNotContainsString(t, out, s)
			}
		})
	}
}
