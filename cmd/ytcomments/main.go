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
	"os"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/yt-comments/pkg/version"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yt-comments",
		Short: "Collect every comment of a YouTube video",
		Long: `yt-comments collects all comments of a YouTube video, including every
reply of every thread, and saves them as a single JSON file. Requests are
spaced at least one second apart to stay within the API's rate limits.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newFetchCommand())
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(mapErrorToExitCode(err))
	}
}
