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
	"strings"
	"testing"

	"github.com/sirseerhq/yt-comments/internal/youtube"
)

// AssertCommentsFile validates that path holds a JSON array of comment
// records and returns them.
func AssertCommentsFile(t *testing.T, path string, expectedCount int) []youtube.CommentRecord {
	t.Helper()

	var comments []youtube.CommentRecord
	ReadJSON(t, path, &comments)

	if comments == nil {
		t.Fatalf("Expected a JSON array in %s, got null", path)
	}
	if len(comments) != expectedCount {
		t.Errorf("Expected %d comments, got %d", expectedCount, len(comments))
	}
	for i, c := range comments {
		if c.ID == "" {
			t.Errorf("Comment %d: missing id", i)
		}
		if c.TotalReplyCount != nil && c.ParentID != "" {
			t.Errorf("Comment %s: has both totalReplyCount and parentId", c.ID)
		}
	}
	return comments
}

// AssertThreadStructure checks that ids are unique, that every reply
// follows its top-level comment, and that each top-level comment with a
// declared reply count is followed by exactly that many replies.
func AssertThreadStructure(t *testing.T, comments []youtube.CommentRecord) {
	t.Helper()

	seen := make(map[string]bool, len(comments))
	replies := make(map[string]int)
	declared := make(map[string]int64)
	for i, c := range comments {
		if seen[c.ID] {
			t.Errorf("Comment %d: duplicate id %s", i, c.ID)
		}
		seen[c.ID] = true

		if c.IsReply() {
			if _, ok := declared[c.ParentID]; !ok {
				t.Errorf("Reply %s appears before its parent %s", c.ID, c.ParentID)
			}
			replies[c.ParentID]++
			continue
		}
		if c.TotalReplyCount != nil {
			declared[c.ID] = *c.TotalReplyCount
		}
	}
	for id, want := range declared {
		if got := int64(replies[id]); got != want {
			t.Errorf("Comment %s: expected %d replies, got %d", id, want, got)
		}
	}
}

// AssertDirExists checks that a directory exists
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Expected directory to exist: %s", path)
		}
		t.Fatalf("Failed to stat directory: %v", err)
	}

	if !info.IsDir() {
		t.Fatalf("Expected %s to be a directory", path)
	}
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string to NOT contain %q, got: %s", needle, haystack)
	}
}

// AssertErrorContains checks if an error contains expected text
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error to contain %q, got: %v", expected, err)
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
