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
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestManagerReadFile(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, dir string)
		path        string
		want        string
		wantNotExst bool
		errContains string
	}{
		{
			name: "existing_file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644))
			},
			path: "a.txt",
			want: "hello",
		},
		{
			name:        "missing_file",
			path:        "missing.txt",
			wantNotExst: true,
			errContains: "file does not exist",
		},
		{
			name: "directory",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
			},
			path:        "sub",
			errContains: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			mgr := New(dir)
			content, info, err := mgr.ReadFile(context.Background(), tt.path)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Equal(t, tt.wantNotExst, errors.Is(err, ErrNotExist), "ErrNotExist should match")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, info)
			assert.Equal(t, tt.want, string(content))
		})
	}
}

func TestManagerWriteFileAtomic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("echo old\n"), 0755))

	mgr := New(dir)
	require.NoError(t, mgr.WriteFileAtomic(ctx, "script.sh", []byte("echo new\n"), 0755))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "echo new\n", string(content))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), "mode should be preserved")
	}

	_, err = os.Stat(path + ".patchrc.tmp")
	assert.True(t, os.IsNotExist(err), "temp file should not be left behind")
}

func TestManagerWriteFileAtomicFailure(t *testing.T) {
	dir := t.TempDir()
	mgr := New(dir)

	err := mgr.WriteFileAtomic(context.Background(), filepath.Join("missing-dir", "a.txt"), []byte("x"), 0644)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing temp file")
}

func TestManagerWriteFileAtomicSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	ctx := context.Background()
	dir := t.TempDir()
	target := filepath.Join(dir, "real.js")
	link := filepath.Join(dir, "link.js")
	require.NoError(t, os.WriteFile(target, []byte("const x = 1;"), 0640))
	require.NoError(t, os.Symlink("real.js", link))

	mgr := New(dir)
	require.NoError(t, mgr.WriteFileAtomic(ctx, "link.js", []byte("const x = 2;"), 0640))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0, "link should still be a symlink")

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "const x = 2;", string(content), "the linked file should be patched")

	info, err = os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm(), "mode should be preserved")

	_, err = os.Stat(target + ".patchrc.tmp")
	assert.True(t, os.IsNotExist(err), "temp file should not be left behind")
	_, err = os.Lstat(link + ".patchrc.tmp")
	assert.True(t, os.IsNotExist(err), "no temp file next to the link")
}

func TestManagerWriteFileAtomicNewFile(t *testing.T) {
	dir := t.TempDir()
	mgr := New(dir)

	require.NoError(t, mgr.WriteFileAtomic(context.Background(), "new.txt", []byte("hello"), 0))

	content, err := os.ReadFile(filepath.Join(dir, "new.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestManagerRel(t *testing.T) {
	dir := t.TempDir()
	mgr := New(dir)

	assert.Equal(t, "src/a.jsx", mgr.Rel(filepath.Join(dir, "src", "a.jsx")))
	assert.Equal(t, "src/a.jsx", mgr.Rel(filepath.Join("src", "a.jsx")))

	outside := filepath.Join(filepath.Dir(dir), "elsewhere.txt")
	assert.Equal(t, outside, mgr.Rel(outside))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome Outcome
		str     string
		glyph   string
		failure bool
	}{
		{OutcomeApplied, "applied", "✓", false},
		{OutcomeNotFound, "not-found", "⚠", false},
		{OutcomeFileNotFound, "file-not-found", "✗", true},
		{OutcomeIOError, "io-error", "✗", true},
		{OutcomeNotApplicable, "not-applicable", "–", false},
		{OutcomeUnknown, "unknown", "?", false},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.outcome.String())
			assert.Equal(t, tt.glyph, tt.outcome.Glyph())
			assert.Equal(t, tt.failure, tt.outcome.IsFailure())
		})
	}
}
