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

// Package testutil provides common test helpers for yt-comments
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	ytapi "google.golang.org/api/youtube/v3"
)

// TestAPIKey is the key FakeAPI accepts unless changed with SetAPIKey.
const TestAPIKey = "test-api-key"

// FakeAPI is an httptest server speaking the commentThreads and comments
// endpoints of the YouTube Data API v3. Listings are paged by maxResults
// and continued with opaque page tokens.
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	apiKey   string
	threads  map[string][]*ytapi.CommentThread
	replies  map[string][]*ytapi.Comment
	quota    int
	failWith *fakeFailure
	requests []*http.Request
	arrivals []time.Time
}

type fakeFailure struct {
	status int
	body   string
}

// NewFakeAPI starts a fake API server that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		apiKey:  TestAPIKey,
		threads: make(map[string][]*ytapi.CommentThread),
		replies: make(map[string][]*ytapi.Comment),
		quota:   -1,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

// AddThreads registers threads for videoID. Calling it without threads
// registers a video that has no comments.
func (f *FakeAPI) AddThreads(videoID string, threads ...*ytapi.CommentThread) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[videoID] = append(f.threads[videoID], threads...)
}

// AddReplies registers the full reply listing of parentID.
func (f *FakeAPI) AddReplies(parentID string, replies ...*ytapi.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[parentID] = append(f.replies[parentID], replies...)
}

// SetAPIKey changes the accepted key.
func (f *FakeAPI) SetAPIKey(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apiKey = key
}

// SetQuota makes every request after the first n fail with quotaExceeded.
func (f *FakeAPI) SetQuota(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quota = n
}

// FailWith makes every request fail with status and body.
func (f *FakeAPI) FailWith(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = &fakeFailure{status: status, body: body}
}

// RequestCount returns the number of requests received.
func (f *FakeAPI) RequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Queries returns the query parameters of every request to path, in order.
func (f *FakeAPI) Queries(path string) []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []url.Values
	for _, r := range f.requests {
		if strings.HasSuffix(r.URL.Path, path) {
			out = append(out, r.URL.Query())
		}
	}
	return out
}

// Arrivals returns the time each request was received, in order.
func (f *FakeAPI) Arrivals() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Time, len(f.arrivals))
	copy(out, f.arrivals)
	return out
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r)
	f.arrivals = append(f.arrivals, time.Now())

	if f.failWith != nil {
		w.WriteHeader(f.failWith.status)
		_, _ = w.Write([]byte(f.failWith.body))
		return
	}
	if f.quota >= 0 && len(f.requests) > f.quota {
		writeAPIError(w, http.StatusForbidden, "The request cannot be completed because you have exceeded your quota.", "youtube.quota", "quotaExceeded")
		return
	}

	q := r.URL.Query()
	if q.Get("key") != f.apiKey {
		writeAPIError(w, http.StatusBadRequest, "API key not valid. Please pass a valid API key.", "global", "badRequest")
		return
	}

	limit := 20
	if n, err := strconv.Atoi(q.Get("maxResults")); err == nil && n > 0 {
		limit = n
	}
	if limit > 100 {
		limit = 100
	}
	offset, ok := parseFakeToken(q.Get("pageToken"))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "The page token is invalid.", "youtube.parameter", "invalidPageToken")
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, "/commentThreads"):
		threads, known := f.threads[q.Get("videoId")]
		if !known {
			writeAPIError(w, http.StatusNotFound, "The video identified by the videoId parameter could not be found.", "youtube.commentThread", "videoNotFound")
			return
		}
		page, next := pageOf(threads, offset, limit)
		writeJSON(w, &ytapi.CommentThreadListResponse{
			Kind:          "youtube#commentThreadListResponse",
			Items:         page,
			NextPageToken: next,
			PageInfo:      &ytapi.PageInfo{TotalResults: int64(len(page)), ResultsPerPage: int64(limit)},
		})
	case strings.HasSuffix(r.URL.Path, "/comments"):
		page, next := pageOf(f.replies[q.Get("parentId")], offset, limit)
		writeJSON(w, &ytapi.CommentListResponse{
			Kind:          "youtube#commentListResponse",
			Items:         page,
			NextPageToken: next,
		})
	default:
		http.NotFound(w, r)
	}
}

func pageOf[T any](items []T, offset, limit int) ([]T, string) {
	if offset >= len(items) {
		return []T{}, ""
	}
	end := offset + limit
	if end >= len(items) {
		return items[offset:], ""
	}
	return items[offset:end], fmt.Sprintf("page-%d", end)
}

func parseFakeToken(token string) (int, bool) {
	if token == "" {
		return 0, true
	}
	rest, ok := strings.CutPrefix(token, "page-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil && n >= 0
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, message, domain, reason string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(APIErrorBody(status, message, domain, reason)))
}

// APIErrorBody renders the error envelope the API returns on failure.
func APIErrorBody(status int, message, domain, reason string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    status,
			"message": message,
			"errors": []map[string]string{
				{"message": message, "domain": domain, "reason": reason},
			},
		},
	})
	return string(body)
}
