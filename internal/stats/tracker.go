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

// Package stats computes comment statistics and run reports for a
// collection run. Statistics never reorder or modify the comment list they
// are computed from.
package stats

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/sirseerhq/yt-comments/internal/output"
	"github.com/sirseerhq/yt-comments/internal/youtube"
)

// Summarize computes statistics for comments. Publish times are ordered on a
// copy, so the caller's slice keeps its collection order.
func Summarize(comments []youtube.CommentRecord) CommentStats {
	var s CommentStats
	published := make([]time.Time, 0, len(comments))

	for _, c := range comments {
		if c.IsReply() {
			s.Replies++
		} else {
			s.TopLevel++
		}
		s.TotalLikes += c.LikeCount

		if t, err := time.Parse(time.RFC3339, c.PublishedAt); err == nil {
			published = append(published, t)
		}
	}
	s.Total = s.TopLevel + s.Replies

	if len(published) > 0 {
		sort.Slice(published, func(i, j int) bool {
			return published[i].Before(published[j])
		})
		s.Oldest = published[0]
		s.Newest = published[len(published)-1]
	}
	return s
}

// Tracker measures a collection run. Create one when the run starts.
type Tracker struct {
	startTime time.Time
	now       func() time.Time
}

// New creates a tracker started at the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
		now:       time.Now,
	}
}

// Report builds the run report for a finished collection.
func (t *Tracker) Report(version, videoID string, comments []youtube.CommentRecord, usage youtube.UsageStats) *RunReport {
	completedAt := t.now()
	elapsed := completedAt.Sub(t.startTime)

	return &RunReport{
		Version:     version,
		VideoID:     videoID,
		Comments:    Summarize(comments),
		Usage:       usage,
		Duration:    elapsed.String(),
		Elapsed:     elapsed,
		StartedAt:   t.startTime,
		CompletedAt: completedAt,
	}
}

// WriteCommentStats prints the comment statistics block.
func WriteCommentStats(w io.Writer, s CommentStats) {
	fmt.Fprintln(w, "\nComment statistics:")
	fmt.Fprintf(w, "  Top-level comments: %d\n", s.TopLevel)
	fmt.Fprintf(w, "  Replies:            %d\n", s.Replies)
	fmt.Fprintf(w, "  Total comments:     %d\n", s.Total)
	fmt.Fprintf(w, "  Total likes:        %d\n", s.TotalLikes)
	if !s.Oldest.IsZero() {
		fmt.Fprintf(w, "  Oldest comment:     %s\n", s.Oldest.Local().Format(time.DateTime))
		fmt.Fprintf(w, "  Newest comment:     %s\n", s.Newest.Local().Format(time.DateTime))
	}
}

// WriteUsage prints the API usage block. The quota figure is an estimate
// of one unit per request.
func WriteUsage(w io.Writer, usage youtube.UsageStats, elapsed time.Duration) {
	fmt.Fprintln(w, "\nAPI usage:")
	fmt.Fprintf(w, "  Requests:           %d\n", usage.RequestCount)
	fmt.Fprintf(w, "  Estimated quota:    %d units\n", usage.EstimatedQuotaUsage)
	fmt.Fprintf(w, "  Execution time:     %.2f s\n", elapsed.Seconds())
}

// WriteReport prints the comment statistics and API usage of report.
func WriteReport(w io.Writer, report *RunReport) {
	WriteCommentStats(w, report.Comments)
	WriteUsage(w, report.Usage, report.Elapsed)
}

// ReportFileName returns the name of the report file for videoID.
func ReportFileName(videoID string) string {
	return videoID + "_report.json"
}

// SaveReport writes report as indented JSON to dir/{videoId}_report.json
// and returns the path.
func SaveReport(report *RunReport, dir string) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(dir, ReportFileName(report.VideoID))
	if err := output.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
