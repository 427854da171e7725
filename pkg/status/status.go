// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome represents the result of patching one file
type Outcome int

const (
	OutcomeUnknown       Outcome = iota
	OutcomeApplied               // content changed and was written
	OutcomeNotFound              // no matcher changed the content, nothing written
	OutcomeFileNotFound          // target does not exist
	OutcomeIOError               // read, write or encoding failure
	OutcomeNotApplicable         // patch intentionally has no transformation
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeFileNotFound:
		return "file-not-found"
	case OutcomeIOError:
		return "io-error"
	case OutcomeNotApplicable:
		return "not-applicable"
	default:
		return "unknown"
	}
}

// IsFailure reports whether the outcome should be read as an error by the operator.
func (o Outcome) IsFailure() bool {
	return o == OutcomeFileNotFound || o == OutcomeIOError
}

// ErrNotExist is returned (wrapped) by Manager when a target path does not exist
var ErrNotExist = errors.Base("file does not exist")

// 💾 FileManager handles all file system access for patching
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, fs.FileInfo, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error
	Rel(path string) string
}

// 🔧 Manager implements FileManager on the local filesystem
type Manager struct {
	baseDir string // Base directory for relative paths
}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a new status manager
func New(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
	}
}

// 🔒 getAbsPath returns the absolute path for a given path
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// Rel returns path relative to the base directory when it lives below it.
func (m *Manager) Rel(path string) string {
	abs := m.getAbsPath(path)
	rel, err := filepath.Rel(m.baseDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return filepath.ToSlash(rel)
}

// ReadFile reads the whole file. A missing file is reported as ErrNotExist.
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, fs.FileInfo, error) {
	absPath := m.getAbsPath(path)

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, errors.Errorf("%s: %w", absPath, ErrNotExist)
		}
		return nil, nil, errors.Errorf("checking file: %w", err)
	}
	if info.IsDir() {
		return nil, nil, errors.Errorf("%s is a directory", absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, nil, errors.Errorf("reading file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Int("size", len(content)).Msg("read file")
	return content, info, nil
}

// WriteFileAtomic writes content next to the target and renames it into place.
// A symlinked target is written through: the file it points to is replaced and the link is kept.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error {
	absPath := m.getAbsPath(path)
	resolved, err := filepath.EvalSymlinks(absPath)
	switch {
	case err == nil:
		absPath = resolved
	case !errors.Is(err, fs.ErrNotExist):
		return errors.Errorf("resolving %s: %w", absPath, err)
	}
	tempPath := absPath + ".patchrc.tmp"

	if mode == 0 {
		mode = 0644
	}

	// Write to temp file
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}

	// umask may have narrowed the mode on create
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Int("size", len(content)).Msg("wrote file")
	return nil
}
