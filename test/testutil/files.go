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

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"

	"github.com/sirseerhq/yt-comments/internal/output"
	"github.com/sirseerhq/yt-comments/internal/stats"
)

// CommentsFile is where a fetch into dir saves the comments of videoID.
func CommentsFile(dir, videoID string) string {
	return filepath.Join(dir, output.FileName(videoID))
}

// ReportFile is where a fetch with --report saves the run report.
func ReportFile(dir, videoID string) string {
	return filepath.Join(dir, stats.ReportFileName(videoID))
}

// WriteConfigFile writes a yt-comments YAML config into a fresh temp
// directory and returns its path, for use with --config.
func WriteConfigFile(t *testing.T, yaml string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// ReadJSON decodes a saved comments or report file into v.
func ReadJSON(t *testing.T, path string, v interface{}) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("%s is not valid JSON: %v", path, err)
	}
}

// AssertFileExists fails the test if path is missing.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected %s to exist: %v", path, err)
	}
}

// AssertNoOutput checks that a failed fetch left neither a comments file
// nor a report behind.
func AssertNoOutput(t *testing.T, dir, videoID string) {
	t.Helper()

	for _, path := range []string{CommentsFile(dir, videoID), ReportFile(dir, videoID)} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Expected no output at %s", path)
		}
	}
}

// AssertEmptyCommentsFile checks that a video without comments still got a
// comments file, holding exactly an empty array.
func AssertEmptyCommentsFile(t *testing.T, dir, videoID string) {
	t.Helper()

	data, err := os.ReadFile(CommentsFile(dir, videoID))
	if err != nil {
		t.Fatalf("Failed to read comments file: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Comments file = %q, want []", data)
	}
}
