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

// Package output writes collected comments to disk.
//
// Comments are saved as one indented JSON array in a file named
// {videoId}_comments.json inside the chosen output directory. The directory
// is created when missing, and files are written to a temporary sibling and
// renamed into place so a failed run never leaves a truncated file behind.
// A video without comments produces a file containing an empty array.
package output
