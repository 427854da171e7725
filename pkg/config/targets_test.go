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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargets(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"backend/controllers/sales/clientPOController.js",
		"backend/controllers/sales/deliveryController.js",
		"backend/controllers/sales/legacy/oldController.js",
		"frontend/src/index.jsx",
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}

	plan := &Plan{
		Root: root,
		Patches: []Patch{
			{Name: "form", Target: "frontend/src/index.jsx"},
			{Name: "controllers", Target: "backend/controllers/**/*Controller.js", Exclude: []string{"**/legacy/**"}, Critical: true},
			{Name: "nothing", Target: "docs/**/*.md"},
			{Name: "absent", Target: "frontend/src/missing.jsx"},
		},
	}

	targets, err := plan.Targets(testContext())
	require.NoError(t, err)

	got := make([][2]any, len(targets))
	for i, tg := range targets {
		rel, err := filepath.Rel(root, tg.Path)
		require.NoError(t, err)
		got[i] = [2]any{tg.Patch.Name, filepath.ToSlash(rel)}
	}

	assert.Equal(t, [][2]any{
		{"form", "frontend/src/index.jsx"},
		{"controllers", "backend/controllers/sales/clientPOController.js"},
		{"controllers", "backend/controllers/sales/deliveryController.js"},
		{"nothing", "docs/**/*.md"},
		{"absent", "frontend/src/missing.jsx"},
	}, got)

	assert.False(t, targets[0].Critical)
	assert.True(t, targets[1].Critical)
	assert.True(t, targets[2].Critical)
	assert.Equal(t, 1, targets[2].Index)
	assert.False(t, targets[3].Critical)
}

func TestTargetsAbsolute(t *testing.T) {
	other := filepath.Join(t.TempDir(), "a.js")
	plan := &Plan{Root: t.TempDir(), Patches: []Patch{{Name: "abs", Target: other}}}

	targets, err := plan.Targets(testContext())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, other, targets[0].Path)
	assert.True(t, targets[0].Critical, "first patch is critical by default")
}

func TestTargetsLiteralBrackets(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"pages/[id].jsx", "pages/i.jsx", "pages/d.jsx"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "existing_literal", target: "pages/[id].jsx", want: []string{"pages/[id].jsx"}},
		{name: "class_glob", target: "pages/[di].jsx", want: []string{"pages/d.jsx", "pages/i.jsx"}},
		{name: "brace_glob", target: "pages/{i,d}.jsx", want: []string{"pages/d.jsx", "pages/i.jsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &Plan{Root: root, Patches: []Patch{{Name: "page", Target: tt.target}}}

			targets, err := plan.Targets(testContext())
			require.NoError(t, err)

			got := make([]string, len(targets))
			for i, tg := range targets {
				rel, err := filepath.Rel(root, tg.Path)
				require.NoError(t, err)
				got[i] = filepath.ToSlash(rel)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
