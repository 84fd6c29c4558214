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
	"fmt"
	"time"

	ytapi "google.golang.org/api/youtube/v3"
)

// baseTime anchors generated timestamps so fixtures are deterministic.
var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// CommentBuilder provides a fluent API for creating test comments
type CommentBuilder struct {
	id          string
	text        string
	author      string
	parentID    string
	publishedAt time.Time
	updatedAt   time.Time
	likes       int64
}

// NewCommentBuilder creates a comment builder with defaults derived from id
func NewCommentBuilder(id string) *CommentBuilder {
	return &CommentBuilder{
		id:          id,
		text:        fmt.Sprintf("comment %s", id),
		author:      fmt.Sprintf("author-%s", id),
		publishedAt: baseTime,
		updatedAt:   baseTime,
	}
}

// WithText sets the comment text
func (b *CommentBuilder) WithText(text string) *CommentBuilder {
	b.text = text
	return b
}

// WithAuthor sets the author display name
func (b *CommentBuilder) WithAuthor(author string) *CommentBuilder {
	b.author = author
	return b
}

// WithParent marks the comment as a reply to parentID
func (b *CommentBuilder) WithParent(parentID string) *CommentBuilder {
	b.parentID = parentID
	return b
}

// WithPublishedAt sets the publish time; the update time follows it
func (b *CommentBuilder) WithPublishedAt(t time.Time) *CommentBuilder {
	b.publishedAt = t
	if b.updatedAt.Before(t) {
		b.updatedAt = t
	}
	return b
}

// WithLikes sets the like count
func (b *CommentBuilder) WithLikes(n int64) *CommentBuilder {
	b.likes = n
	return b
}

// Build creates the wire comment
func (b *CommentBuilder) Build() *ytapi.Comment {
	return &ytapi.Comment{
		Kind: "youtube#comment",
		Id:   b.id,
		Snippet: &ytapi.CommentSnippet{
			TextOriginal:          b.text,
			TextDisplay:           b.text,
			AuthorDisplayName:     b.author,
			AuthorProfileImageUrl: fmt.Sprintf("https://yt3.ggpht.com/%s.jpg", b.author),
			AuthorChannelUrl:      fmt.Sprintf("http://www.youtube.com/channel/%s", b.author),
			ParentId:              b.parentID,
			PublishedAt:           b.publishedAt.Format(time.RFC3339),
			UpdatedAt:             b.updatedAt.Format(time.RFC3339),
			LikeCount:             b.likes,
		},
	}
}

// ThreadBuilder builds comment threads
type ThreadBuilder struct {
	top      *ytapi.Comment
	videoID  string
	declared int64
	inline   []*ytapi.Comment
}

// NewThreadBuilder creates a thread around a default top-level comment
func NewThreadBuilder(topID string) *ThreadBuilder {
	return &ThreadBuilder{top: NewCommentBuilder(topID).Build()}
}

// WithTopLevel replaces the top-level comment
func (b *ThreadBuilder) WithTopLevel(c *ytapi.Comment) *ThreadBuilder {
	b.top = c
	return b
}

// WithVideo sets the video the thread belongs to
func (b *ThreadBuilder) WithVideo(videoID string) *ThreadBuilder {
	b.videoID = videoID
	return b
}

// WithDeclaredReplies sets totalReplyCount independently of the inline replies
func (b *ThreadBuilder) WithDeclaredReplies(n int64) *ThreadBuilder {
	b.declared = n
	return b
}

// WithInlineReplies attaches replies to the thread. The declared count is
// raised to at least their number.
func (b *ThreadBuilder) WithInlineReplies(replies ...*ytapi.Comment) *ThreadBuilder {
	b.inline = append(b.inline, replies...)
	if b.declared < int64(len(b.inline)) {
		b.declared = int64(len(b.inline))
	}
	return b
}

// Build creates the wire thread
func (b *ThreadBuilder) Build() *ytapi.CommentThread {
	thread := &ytapi.CommentThread{
		Kind: "youtube#commentThread",
		Id:   b.top.Id,
		Snippet: &ytapi.CommentThreadSnippet{
			VideoId:         b.videoID,
			TopLevelComment: b.top,
			TotalReplyCount: b.declared,
			CanReply:        true,
			IsPublic:        true,
		},
	}
	if len(b.inline) > 0 {
		thread.Replies = &ytapi.CommentThreadReplies{Comments: b.inline}
	}
	return thread
}

// Replies generates n replies to parentID with ids parentID.r1 .. parentID.rN
func Replies(parentID string, n int) []*ytapi.Comment {
	replies := make([]*ytapi.Comment, n)
	for i := range replies {
		replies[i] = NewCommentBuilder(fmt.Sprintf("%s.r%d", parentID, i+1)).
			WithParent(parentID).
			WithPublishedAt(baseTime.Add(time.Duration(i+1) * time.Minute)).
			Build()
	}
	return replies
}

// Threads generates n reply-less threads with ids t1 .. tN
func Threads(n int) []*ytapi.CommentThread {
	threads := make([]*ytapi.CommentThread, n)
	for i := range threads {
		id := fmt.Sprintf("t%d", i+1)
		top := NewCommentBuilder(id).WithPublishedAt(baseTime.Add(time.Duration(i) * time.Hour)).Build()
		threads[i] = NewThreadBuilder(id).WithTopLevel(top).Build()
	}
	return threads
}
