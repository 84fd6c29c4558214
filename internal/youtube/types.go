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
	"time"

	ytapi "google.golang.org/api/youtube/v3"
)

// Default values for list operations
const (
	// DefaultPageSize is the maxResults used when ListOptions.PageSize is unset.
	// It is also the maximum both comment endpoints accept.
	DefaultPageSize = 100

	// DefaultMinInterval is the minimum time between the completion of one
	// request and the start of the next.
	DefaultMinInterval = 1000 * time.Millisecond
)

// CommentRecord is the flattened representation of one comment, top-level or
// reply, as written to the output file.
//
// TotalReplyCount is set only on top-level comments (including when it is 0)
// and ParentID only on replies.
type CommentRecord struct {
	ID                    string `json:"id"`
	TextOriginal          string `json:"textOriginal"`
	TextDisplay           string `json:"textDisplay"`
	AuthorDisplayName     string `json:"authorDisplayName"`
	AuthorProfileImageURL string `json:"authorProfileImageUrl"`
	AuthorChannelURL      string `json:"authorChannelUrl"`
	PublishedAt           string `json:"publishedAt"`
	UpdatedAt             string `json:"updatedAt"`
	LikeCount             int64  `json:"likeCount"`
	TotalReplyCount       *int64 `json:"totalReplyCount,omitempty"`
	ParentID              string `json:"parentId,omitempty"`
}

// IsReply reports whether the record is a reply to a top-level comment.
func (r CommentRecord) IsReply() bool {
	return r.ParentID != ""
}

// NewTopLevelRecord converts a thread's top-level comment, stamping it with
// the thread's declared reply count.
func NewTopLevelRecord(c *ytapi.Comment, totalReplyCount int64) CommentRecord {
	rec := newRecord(c)
	total := totalReplyCount
	rec.TotalReplyCount = &total
	rec.ParentID = ""
	return rec
}

// NewReplyRecord converts a reply. The parent id reported by the API wins;
// parentID is used when the snippet omits it.
func NewReplyRecord(c *ytapi.Comment, parentID string) CommentRecord {
	rec := newRecord(c)
	if rec.ParentID == "" {
		rec.ParentID = parentID
	}
	return rec
}

func newRecord(c *ytapi.Comment) CommentRecord {
	if c == nil {
		return CommentRecord{}
	}
	rec := CommentRecord{ID: c.Id}
	if s := c.Snippet; s != nil {
		rec.TextOriginal = s.TextOriginal
		rec.TextDisplay = s.TextDisplay
		rec.AuthorDisplayName = s.AuthorDisplayName
		rec.AuthorProfileImageURL = s.AuthorProfileImageUrl
		rec.AuthorChannelURL = s.AuthorChannelUrl
		rec.PublishedAt = s.PublishedAt
		rec.UpdatedAt = s.UpdatedAt
		rec.LikeCount = s.LikeCount
		rec.ParentID = s.ParentId
	}
	if rec.LikeCount < 0 {
		rec.LikeCount = 0
	}
	return rec
}

// ListOptions configures a single list request.
type ListOptions struct {
	// PageSize controls maxResults. Defaults to DefaultPageSize and is capped at it.
	PageSize int

	// PageToken continues a previous listing. Empty fetches the first page.
	PageToken string
}

// UsageStats is a snapshot of a Gateway's request accounting.
//
// EstimatedQuotaUsage assumes one quota unit per request. The real service
// weighs operations differently, so this is an approximation.
type UsageStats struct {
	RequestCount        int `json:"requestCount"`
	EstimatedQuotaUsage int `json:"estimatedQuotaUsage"`
}
