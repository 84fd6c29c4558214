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
	"fmt"
	"regexp"

	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
)

var (
	videoURLPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	videoIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ValidateVideoID returns the 11-character video ID contained in input.
// Input is either a bare ID or a watch/share URL such as
// https://www.youtube.com/watch?v=dQw4w9WgXcQ or https://youtu.be/dQw4w9WgXcQ.
// URL forms are checked first.
func ValidateVideoID(input string) (string, error) {
	if m := videoURLPattern.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if videoIDPattern.MatchString(input) {
		return input, nil
	}
	return "", ytcerrors.NewValidation(fmt.Sprintf(
		"invalid video ID or URL %q: expected an 11-character ID or a youtube.com/watch?v= or youtu.be/ URL", input))
}
