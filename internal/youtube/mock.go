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

package youtube

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	ytapi "google.golang.org/api/youtube/v3"
)

// ReplyCall records one Replies invocation on a MockClient.
type ReplyCall struct {
	ParentID string
	Opts     ListOptions
}

// MockClient is an in-memory implementation of Client for testing.
// Thread pages and reply pages are served in order; page tokens are
// generated by the mock and must be passed back unchanged.
type MockClient struct {
	// ThreadPages are returned by successive CommentThreads calls.
	ThreadPages [][]*ytapi.CommentThread

	// ReplyPages holds the pages of replies served per parent id.
	ReplyPages map[string][][]*ytapi.Comment

	// Error, when set, is returned by every call.
	Error error

	// ThreadsError and RepliesError fail only the respective call.
	ThreadsError error
	RepliesError error

	// Track calls for verification
	ThreadCalls []ListOptions
	ReplyCalls  []ReplyCall
	LastVideoID string
}

// NewMockClient creates an empty mock client, which behaves like a video
// without comments.
func NewMockClient() *MockClient {
	return &MockClient{
		ReplyPages: make(map[string][][]*ytapi.Comment),
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithThreadPages sets the thread pages to serve
func WithThreadPages(pages ...[]*ytapi.CommentThread) MockClientOption {
	return func(m *MockClient) {
		m.ThreadPages = pages
	}
}

// WithReplyPages sets the reply pages served for parentID
func WithReplyPages(parentID string, pages ...[]*ytapi.Comment) MockClientOption {
	return func(m *MockClient) {
		m.ReplyPages[parentID] = pages
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}

// CommentThreads implements the Client interface
func (m *MockClient) CommentThreads(ctx context.Context, videoID string, opts ListOptions) (*ytapi.CommentThreadListResponse, error) {
	m.ThreadCalls = append(m.ThreadCalls, opts)
	m.LastVideoID = videoID

	if err := m.checkErr(ctx, m.ThreadsError); err != nil {
		return nil, err
	}

	idx, err := pageIndex("threads", opts.PageToken)
	if err != nil {
		return nil, err
	}

	resp := &ytapi.CommentThreadListResponse{}
	if idx < len(m.ThreadPages) {
		resp.Items = m.ThreadPages[idx]
	}
	if idx+1 < len(m.ThreadPages) {
		resp.NextPageToken = pageToken("threads", idx+1)
	}
	return resp, nil
}

// Replies implements the Client interface
func (m *MockClient) Replies(ctx context.Context, parentID string, opts ListOptions) (*ytapi.CommentListResponse, error) {
	m.ReplyCalls = append(m.ReplyCalls, ReplyCall{ParentID: parentID, Opts: opts})

	if err := m.checkErr(ctx, m.RepliesError); err != nil {
		return nil, err
	}

	idx, err := pageIndex("replies-"+parentID, opts.PageToken)
	if err != nil {
		return nil, err
	}

	pages := m.ReplyPages[parentID]
	resp := &ytapi.CommentListResponse{}
	if idx < len(pages) {
		resp.Items = pages[idx]
	}
	if idx+1 < len(pages) {
		resp.NextPageToken = pageToken("replies-"+parentID, idx+1)
	}
	return resp, nil
}

// RepliesCalledFor returns how many Replies calls were made for parentID.
func (m *MockClient) RepliesCalledFor(parentID string) int {
	n := 0
	for _, c := range m.ReplyCalls {
		if c.ParentID == parentID {
			n++
		}
	}
	return n
}

func (m *MockClient) checkErr(ctx context.Context, callErr error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if m.Error != nil {
		return m.Error
	}
	return callErr
}

func pageToken(prefix string, idx int) string {
	return prefix + ":" + strconv.Itoa(idx)
}

// pageIndex maps a token back to its page. A token minted for another
// listing is rejected so tests catch cursor reuse.
func pageIndex(prefix, token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	rest, ok := strings.CutPrefix(token, prefix+":")
	if !ok {
		return 0, fmt.Errorf("mock: page token %q does not belong to %s", token, prefix)
	}
	idx, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("mock: malformed page token %q", token)
	}
	return idx, nil
}
