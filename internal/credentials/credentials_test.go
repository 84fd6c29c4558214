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

package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
)

func newTestProvider(t *testing.T, envFileContent string, env map[string]string) *Provider {
	t.Helper()
	envFile := ""
	if envFileContent != "" {
		envFile = filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte(envFileContent), 0o600))
	}
	p := NewProvider("YOUTUBE_API_KEY", envFile, nil)
	p.lookup = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	return p
}

func TestAPIKey_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		explicit   string
		envFile    string
		env        map[string]string
		wantKey    string
		wantSource Source
	}{
		{
			name:       "flag wins over everything",
			explicit:   "flag-key",
			envFile:    "YOUTUBE_API_KEY=file-key\n",
			env:        map[string]string{"YOUTUBE_API_KEY": "env-key"},
			wantKey:    "flag-key",
			wantSource: SourceFlag,
		},
		{
			name:       "env file wins over environment",
			envFile:    "YOUTUBE_API_KEY=file-key\n",
			env:        map[string]string{"YOUTUBE_API_KEY": "env-key"},
			wantKey:    "file-key",
			wantSource: SourceEnvFile,
		},
		{
			name:       "env file without the key falls back to environment",
			envFile:    "OTHER=value\n",
			env:        map[string]string{"YOUTUBE_API_KEY": "env-key"},
			wantKey:    "env-key",
			wantSource: SourceEnv,
		},
		{
			name:       "no env file uses environment",
			env:        map[string]string{"YOUTUBE_API_KEY": "  env-key  "},
			wantKey:    "env-key",
			wantSource: SourceEnv,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, tt.envFile, tt.env)
			key, source, err := p.APIKey(tt.explicit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestAPIKey_Missing(t *testing.T) {
	p := newTestProvider(t, "", map[string]string{"YOUTUBE_API_KEY": "   "})
	_, _, err := p.APIKey("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ytcerrors.ErrMissingAPIKey))
	assert.Contains(t, err.Error(), "YOUTUBE_API_KEY")
}

func TestAPIKey_MissingEnvFileIsNotFatal(t *testing.T) {
	p := NewProvider("YOUTUBE_API_KEY", filepath.Join(t.TempDir(), "absent.env"), nil)
	p.lookup = func(string) (string, bool) { return "env-key", true }

	key, source, err := p.APIKey("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
	assert.Equal(t, SourceEnv, source)
}

func TestAPIKey_DoesNotMutateEnvironment(t *testing.T) {
	t.Setenv("YTC_TEST_ONLY_KEY", "")
	os.Unsetenv("YTC_TEST_ONLY_KEY")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("YTC_TEST_ONLY_KEY=file-key\n"), 0o600))

	p := NewProvider("YTC_TEST_ONLY_KEY", envFile, nil)
	key, _, err := p.APIKey("")
	require.NoError(t, err)
	assert.Equal(t, "file-key", key)

	_, set := os.LookupEnv("YTC_TEST_ONLY_KEY")
	assert.False(t, set)
}
