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
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	ytapi "google.golang.org/api/youtube/v3"

	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
)

// Client defines the comment listing operations used by the collector.
// This interface allows for easy mocking in tests.
type Client interface {
	// CommentThreads retrieves one page of comment threads for a video,
	// oldest submission order first, with inline replies.
	CommentThreads(ctx context.Context, videoID string, opts ListOptions) (*ytapi.CommentThreadListResponse, error)

	// Replies retrieves one page of replies to a top-level comment.
	Replies(ctx context.Context, parentID string, opts ListOptions) (*ytapi.CommentListResponse, error)
}

// APIClient implements Client against the REST endpoints of the YouTube
// Data API v3. All requests go through its Gateway.
type APIClient struct {
	gateway  *Gateway
	endpoint string
	apiKey   string
}

// NewAPIClient creates a client for the given API base URL, for example
// https://www.googleapis.com/youtube/v3.
func NewAPIClient(gateway *Gateway, endpoint, apiKey string) *APIClient {
	return &APIClient{
		gateway:  gateway,
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
	}
}

// Stats returns the request accounting of the underlying Gateway.
func (c *APIClient) Stats() UsageStats {
	return c.gateway.Stats()
}

// CommentThreads implements Client.
func (c *APIClient) CommentThreads(ctx context.Context, videoID string, opts ListOptions) (*ytapi.CommentThreadListResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet,replies")
	params.Set("videoId", videoID)
	params.Set("order", "time")

	var page ytapi.CommentThreadListResponse
	if err := c.list(ctx, "commentThreads", params, opts, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Replies implements Client.
func (c *APIClient) Replies(ctx context.Context, parentID string, opts ListOptions) (*ytapi.CommentListResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("parentId", parentID)

	var page ytapi.CommentListResponse
	if err := c.list(ctx, "comments", params, opts, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *APIClient) list(ctx context.Context, resource string, params url.Values, opts ListOptions, out interface{}) error {
	params.Set("key", c.apiKey)
	params.Set("maxResults", strconv.Itoa(pageSize(opts.PageSize)))
	if opts.PageToken != "" {
		params.Set("pageToken", opts.PageToken)
	}

	body, err := c.gateway.Send(ctx, c.endpoint+"/"+resource+"?"+params.Encode())
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return ytcerrors.NewTransport(fmt.Sprintf("failed to decode %s response", resource), err)
	}
	return nil
}

func pageSize(n int) int {
	if n <= 0 || n > DefaultPageSize {
		return DefaultPageSize
	}
	return n
}
