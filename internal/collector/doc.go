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

// Package collector gathers every comment of a single video.
//
// The YouTube Data API groups comments into threads: one top-level comment
// plus a short inline page of its replies and the number of replies the
// thread declares. When the declared count exceeds the inline replies, the
// collector pages through the full reply listing for that thread so no
// reply is lost. All thread and reply records are returned as one flat
// list in which every top-level comment precedes its own replies.
//
// Basic usage:
//
//	gateway := youtube.NewGateway(youtube.WithLogger(logger))
//	client := youtube.NewAPIClient(gateway, endpoint, apiKey)
//	c := collector.New(client, collector.WithLogger(logger))
//	comments, err := c.Collect(ctx, "https://youtu.be/dQw4w9WgXcQ", func(p collector.Progress) {
//		logger.Infof("processed: %d - %s", p.ProcessedComments, p.CurrentOperation)
//	})
//
// Collection is strictly sequential: one request at a time, in the order
// the algorithm needs them.
package collector
