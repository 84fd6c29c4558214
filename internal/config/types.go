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

// Package config types define the configuration structures used throughout
// yt-comments. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for yt-comments.
type Config struct {
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log"`
}

// YouTubeConfig contains the API endpoint and the name of the environment
// variable that holds the API key. A custom endpoint is mainly useful for
// proxies and tests.
type YouTubeConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	KeyEnv      string `yaml:"key_env"`
}

// DefaultsConfig contains settings that apply to every fetch unless
// overridden by command-line arguments.
type DefaultsConfig struct {
	PageSize  int    `yaml:"page_size"`
	OutputDir string `yaml:"output_dir"`
}

// LogConfig controls log verbosity. Level is any logrus level name.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with the defaults used against the public
// YouTube Data API v3.
func DefaultConfig() *Config {
	return &Config{
		YouTube: YouTubeConfig{
			APIEndpoint: "https://www.googleapis.com/youtube/v3",
			KeyEnv:      "YOUTUBE_API_KEY",
		},
		Defaults: DefaultsConfig{
			PageSize:  100,
			OutputDir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
