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

package stats

import (
	"time"

	"github.com/sirseerhq/yt-comments/internal/youtube"
)

// CommentStats summarizes a collected comment list. Oldest and Newest are
// zero when no comment carries a parseable publish time.
type CommentStats struct {
	TopLevel   int       `json:"topLevelComments"`
	Replies    int       `json:"replyComments"`
	Total      int       `json:"totalComments"`
	TotalLikes int64     `json:"totalLikes"`
	Oldest     time.Time `json:"oldestComment"`
	Newest     time.Time `json:"newestComment"`
}

// RunReport is the record of one collection run: what was collected and
// what it cost in API requests.
type RunReport struct {
	Version     string             `json:"version"`
	VideoID     string             `json:"videoId"`
	Comments    CommentStats       `json:"comments"`
	Usage       youtube.UsageStats `json:"apiUsage"`
	Duration    string             `json:"duration"`
	Elapsed     time.Duration      `json:"-"`
	StartedAt   time.Time          `json:"startedAt"`
	CompletedAt time.Time          `json:"completedAt"`
}
