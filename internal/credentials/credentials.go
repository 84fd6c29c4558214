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

// Package credentials resolves the YouTube Data API key.
package credentials

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
)

// Source names where a key was found.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnvFile Source = "env-file"
	SourceEnv     Source = "environment"
)

// Provider looks up the API key from, in order: an explicit value (usually
// the --key flag), an env file, and the process environment. The env file is
// read without modifying the process environment.
type Provider struct {
	// EnvVar is the variable name holding the key, e.g. YOUTUBE_API_KEY.
	EnvVar string
	// EnvFile is the dotenv file to consult. Empty disables it.
	EnvFile string

	logger logrus.FieldLogger
	lookup func(string) (string, bool)
}

// NewProvider creates a Provider. A nil logger discards log output.
func NewProvider(envVar, envFile string, logger logrus.FieldLogger) *Provider {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Provider{
		EnvVar:  envVar,
		EnvFile: envFile,
		logger:  logger,
		lookup:  os.LookupEnv,
	}
}

// APIKey returns the key and where it came from. It fails with
// ErrMissingAPIKey when no source yields a non-empty value.
func (p *Provider) APIKey(explicit string) (string, Source, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, SourceFlag, nil
	}

	if p.EnvFile != "" {
		values, err := godotenv.Read(p.EnvFile)
		switch {
		case err == nil:
			p.logger.WithField("file", p.EnvFile).Debug("loaded env file")
			if key := strings.TrimSpace(values[p.EnvVar]); key != "" {
				return key, SourceEnvFile, nil
			}
		case errors.Is(err, fs.ErrNotExist):
			p.logger.WithField("file", p.EnvFile).Debug("env file not found, falling back to environment")
		default:
			p.logger.WithError(err).WithField("file", p.EnvFile).Warn("failed to read env file")
		}
	}

	if key, ok := p.lookup(p.EnvVar); ok && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key), SourceEnv, nil
	}

	return "", "", fmt.Errorf("set %s in %s or the environment, or pass --key: %w",
		p.EnvVar, p.envFileName(), ytcerrors.ErrMissingAPIKey)
}

func (p *Provider) envFileName() string {
	if p.EnvFile == "" {
		return "an env file"
	}
	return p.EnvFile
}
