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

// Package main implements the yt-comments command-line interface.
// This tool collects every comment of a YouTube video, top-level comments
// and all of their replies, through the YouTube Data API v3 and saves them
// as a JSON array.
//
// The CLI supports:
//   - Video IDs or watch/share URLs as input
//   - API key from --key, a .env file, or the environment
//   - YAML configuration for endpoint, page size, output directory and log level
//   - Comment statistics and API usage after each run
//   - An optional JSON run report next to the comments file
//
// Usage:
//
//	yt-comments fetch <video-id-or-url> [output-dir] [flags]
//
// Example:
//
//	echo "YOUTUBE_API_KEY=your_key" > .env
//	yt-comments fetch https://youtu.be/dQw4w9WgXcQ ./out
//
// Exit codes:
//   - 0: Success
//   - 1: General error (invalid input, bad request, write failure)
//   - 2: Authentication, quota or not-found error, or missing API key
//   - 3: Network error
package main
