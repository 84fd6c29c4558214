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

// Package youtube provides a rate-limited client for the comment endpoints of
// the YouTube Data API v3.
//
// The package includes:
//   - Gateway, which serializes requests, enforces a minimum interval between
//     them, counts them and turns non-2xx responses into typed errors
//   - A Client interface for listing comment threads and replies
//   - APIClient, the REST implementation of Client on top of a Gateway
//   - MockClient, an in-memory Client for testing
//   - CommentRecord, the flattened output representation of a comment
//
// Basic usage:
//
//	gateway := youtube.NewGateway()
//	client := youtube.NewAPIClient(gateway, "https://www.googleapis.com/youtube/v3", apiKey)
//	page, err := client.CommentThreads(ctx, "dQw4w9WgXcQ", youtube.ListOptions{PageSize: 100})
//	if err != nil {
//	    // Handle error
//	}
//	for _, thread := range page.Items {
//	    // Process thread
//	}
//	fmt.Println(gateway.Stats().RequestCount)
package youtube
