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

package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
	"github.com/sirseerhq/yt-comments/internal/youtube"
)

const fileSuffix = "_comments.json"

// SaveResult describes a written comments file.
type SaveResult struct {
	Path  string
	Count int
	Bytes int64
}

// SizeMB returns the file size in mebibytes.
func (r *SaveResult) SizeMB() float64 {
	return float64(r.Bytes) / 1024 / 1024
}

// FileName returns the name of the comments file for videoID.
func FileName(videoID string) string {
	return videoID + fileSuffix
}

// Encode writes comments to w as a JSON array indented by two spaces.
// A nil slice is written as [].
func Encode(w io.Writer, comments []youtube.CommentRecord) error {
	data, err := marshal(comments)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveComments writes comments to dir/{videoID}_comments.json, creating dir
// when needed.
func SaveComments(comments []youtube.CommentRecord, videoID, dir string) (*SaveResult, error) {
	data, err := marshal(comments)
	if err != nil {
		return nil, ytcerrors.NewIO("failed to encode comments", err)
	}

	path := filepath.Join(dir, FileName(videoID))
	if err := WriteFile(path, data); err != nil {
		return nil, err
	}

	return &SaveResult{
		Path:  path,
		Count: len(comments),
		Bytes: int64(len(data)),
	}, nil
}

// WriteFile atomically replaces path with data. The parent directory is
// created with mode 0755 if it does not exist.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ytcerrors.NewIO(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	tempFile := path + ".tmp"
	file, err := os.Create(tempFile)
	if err != nil {
		return ytcerrors.NewIO(fmt.Sprintf("failed to create %s", path), err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return ytcerrors.NewIO(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return ytcerrors.NewIO(fmt.Sprintf("failed to sync %s", path), err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return ytcerrors.NewIO(fmt.Sprintf("failed to close %s", path), err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return ytcerrors.NewIO(fmt.Sprintf("failed to save %s", path), err)
	}
	return nil
}

func marshal(comments []youtube.CommentRecord) ([]byte, error) {
	if comments == nil {
		comments = []youtube.CommentRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(comments); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
