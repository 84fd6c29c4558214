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

package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"

	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	hintColor  = color.New(color.FgYellow)
)

// printError writes err to w followed by the HTTP status, the API's error
// details and hints for the failure, when any apply.
func printError(w io.Writer, err error) {
	errorColor.Fprintln(w, "\nError:")
	fmt.Fprintf(w, "  %v\n", err)

	if apiErr, ok := ytcerrors.AsError(err); ok && apiErr.Kind == ytcerrors.KindAPI {
		fmt.Fprintf(w, "  HTTP status: %d\n", apiErr.Code)
		for _, d := range apiErr.Details {
			fmt.Fprintf(w, "  - %s (domain: %s, reason: %s)\n", d.Message, d.Domain, d.Reason)
		}
	}

	hints := guidance(err)
	if len(hints) == 0 {
		return
	}
	hintColor.Fprintln(w, "\nHow to fix:")
	for _, h := range hints {
		fmt.Fprintf(w, "  - %s\n", h)
	}
}

// guidance returns remediation hints for err.
func guidance(err error) []string {
	if errors.Is(err, ytcerrors.ErrMissingAPIKey) {
		return []string{
			"Create a .env file containing YOUTUBE_API_KEY=your_api_key",
			"Or export YOUTUBE_API_KEY in your shell, or pass --key",
		}
	}

	switch ytcerrors.StatusCode(err) {
	case http.StatusForbidden:
		return []string{
			"Check that the API key is set correctly",
			"Check that the YouTube Data API v3 is enabled for the key's project",
			"Check that the daily quota has not been exhausted",
		}
	case http.StatusNotFound:
		return []string{
			"Check that the video ID is correct",
			"Check that the video has not been deleted",
			"Check that the video is not private",
		}
	case http.StatusBadRequest:
		return []string{
			"Check that the video ID has the right format",
		}
	}
	return nil
}
