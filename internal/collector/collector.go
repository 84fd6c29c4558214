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

package collector

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/sirseerhq/yt-comments/internal/youtube"
)

// Operation labels reported through Progress.
const (
	OpFetchingTopLevel = "fetching top-level comments"
	OpFetchingNextPage = "fetching next page"
	OpDone             = "done"
)

// Progress is a snapshot of a running collection.
type Progress struct {
	ProcessedComments int
	CurrentOperation  string
}

// ProgressFunc receives progress snapshots synchronously. A nil ProgressFunc
// disables reporting.
type ProgressFunc func(Progress)

// Collector walks the thread and reply listings of a video.
type Collector struct {
	client   youtube.Client
	pageSize int
	logger   logrus.FieldLogger
}

// Option configures a Collector.
type Option func(*Collector)

// WithPageSize sets maxResults for both listings. Values outside 1..100
// fall back to youtube.DefaultPageSize.
func WithPageSize(n int) Option {
	return func(c *Collector) {
		if n > 0 && n <= youtube.DefaultPageSize {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger used for collection events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Collector that issues its requests through client.
func New(client youtube.Client, opts ...Option) *Collector {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Collector{
		client:   client,
		pageSize: youtube.DefaultPageSize,
		logger:   discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect returns every comment of the video identified by input, which is
// validated with ValidateVideoID before any request is made. Top-level
// comments appear in thread order, each followed by its replies: inline
// replies first, then the remainder fetched from the reply listing.
//
// A video without comments yields an empty, non-nil slice. Any request
// failure aborts the collection and is returned unchanged.
func (c *Collector) Collect(ctx context.Context, input string, onProgress ProgressFunc) ([]youtube.CommentRecord, error) {
	videoID, err := ValidateVideoID(input)
	if err != nil {
		return nil, err
	}

	log := c.logger.WithField("video_id", videoID)
	log.Info("Starting comment collection")

	comments := make([]youtube.CommentRecord, 0)
	report := func(op string) {
		if onProgress != nil {
			onProgress(Progress{ProcessedComments: len(comments), CurrentOperation: op})
		}
	}

	threadCursor := ""
	for {
		report(OpFetchingTopLevel)

		page, err := c.client.CommentThreads(ctx, videoID, youtube.ListOptions{
			PageSize:  c.pageSize,
			PageToken: threadCursor,
		})
		if err != nil {
			return nil, err
		}

		for _, thread := range page.Items {
			comments, err = c.appendThread(ctx, log, comments, thread)
			if err != nil {
				return nil, err
			}
		}

		threadCursor = page.NextPageToken
		if threadCursor == "" {
			report(OpDone)
			break
		}
		report(OpFetchingNextPage)
	}

	log.WithField("comments", len(comments)).Info("Comment collection finished")
	return comments, nil
}

// appendThread appends the top-level comment of thread and all of its
// replies to comments.
func (c *Collector) appendThread(ctx context.Context, log logrus.FieldLogger, comments []youtube.CommentRecord, thread *ytapi.CommentThread) ([]youtube.CommentRecord, error) {
	if thread == nil || thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
		log.Warn("Skipping comment thread without a top-level comment")
		return comments, nil
	}

	top := thread.Snippet.TopLevelComment
	declared := thread.Snippet.TotalReplyCount
	comments = append(comments, youtube.NewTopLevelRecord(top, declared))

	seen := make(map[string]struct{})
	var inline []*ytapi.Comment
	if thread.Replies != nil {
		inline = thread.Replies.Comments
	}
	for _, reply := range inline {
		if reply == nil {
			continue
		}
		comments = append(comments, youtube.NewReplyRecord(reply, top.Id))
		seen[reply.Id] = struct{}{}
	}

	if declared <= int64(len(seen)) {
		return comments, nil
	}

	log.WithFields(logrus.Fields{
		"comment_id": top.Id,
		"declared":   declared,
		"inline":     len(seen),
	}).Debug("Fetching remaining replies")

	return c.appendReplies(ctx, comments, top.Id, seen)
}

// appendReplies pages through the full reply listing of parentID and
// appends the replies not already in seen, in API order.
func (c *Collector) appendReplies(ctx context.Context, comments []youtube.CommentRecord, parentID string, seen map[string]struct{}) ([]youtube.CommentRecord, error) {
	replyCursor := ""
	for {
		page, err := c.client.Replies(ctx, parentID, youtube.ListOptions{
			PageSize:  c.pageSize,
			PageToken: replyCursor,
		})
		if err != nil {
			return nil, err
		}

		for _, reply := range page.Items {
			if reply == nil {
				continue
			}
			if _, dup := seen[reply.Id]; dup {
				continue
			}
			seen[reply.Id] = struct{}{}
			comments = append(comments, youtube.NewReplyRecord(reply, parentID))
		}

		replyCursor = page.NextPageToken
		if replyCursor == "" {
			return comments, nil
		}
	}
}
