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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPlan = `
root: app
patches:
  - name: client-po
    target: src/index.jsx
    critical: true
    rules:
      - pattern: 'const x = \d+;'
        literal: "const x = 1;"
        replacement: "const x = 2;"
    verify:
      contains: ["const x = 2;"]
      balanced: true
  - name: step-2
    target: src/index.jsx
    unimplemented: true
`

const hclPlan = `
root = "app"

patch "client-po" {
  target   = "src/index.jsx"
  critical = true

  rule {
    pattern     = "const x = \\d+;"
    literal     = "const x = 1;"
    replacement = "const x = 2;"
  }

  verify {
    contains = ["const x = 2;"]
    balanced = true
  }
}

patch "step-2" {
  target        = "src/index.jsx"
  unimplemented = true
}
`

const jsonPlan = `{
  "root": "app",
  "patches": [
    {
      "name": "client-po",
      "target": "src/index.jsx",
      "critical": true,
      "rules": [
        {"pattern": "const x = \\d+;", "literal": "const x = 1;", "replacement": "const x = 2;"}
      ],
      "verify": {"contains": ["const x = 2;"], "balanced": true}
    },
    {"name": "step-2", "target": "src/index.jsx", "unimplemented": true}
  ]
}`

const tomlPlan = `
root = "app"

[[patches]]
name = "client-po"
target = "src/index.jsx"
critical = true

  [[patches.rules]]
  pattern = 'const x = \d+;'
  literal = "const x = 1;"
  replacement = "const x = 2;"

  [patches.verify]
  contains = ["const x = 2;"]
  balanced = true

[[patches]]
name = "step-2"
target = "src/index.jsx"
unimplemented = true
`

func testContext() context.Context {
	return zerolog.New(os.Stderr).Level(zerolog.WarnLevel).WithContext(context.Background())
}

func writePlan(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing plan file should succeed")
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{name: "yaml", filename: "plan.yaml", content: yamlPlan},
		{name: "yml", filename: "plan.yml", content: yamlPlan},
		{name: "hcl", filename: "plan.hcl", content: hclPlan},
		{name: "json", filename: "plan.json", content: jsonPlan},
		{name: "toml", filename: "plan.toml", content: tomlPlan},
		{name: "bare_patchrc_yaml", filename: ".patchrc", content: yamlPlan},
		{name: "bare_patchrc_hcl", filename: ".patchrc", content: hclPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writePlan(t, dir, tt.filename, tt.content)

			plan, err := Load(testContext(), path)
			require.NoError(t, err, "Load should succeed")

			assert.Equal(t, filepath.Join(dir, "app"), plan.Root, "root should resolve against the plan dir")
			assert.Equal(t, path, plan.Location())
			require.Len(t, plan.Patches, 2)

			first := plan.Patches[0]
			assert.Equal(t, "client-po", first.Name)
			assert.Equal(t, "src/index.jsx", first.Target)
			assert.True(t, first.Critical)
			require.Len(t, first.Rules, 1)
			assert.Equal(t, `const x = \d+;`, first.Rules[0].Pattern)
			assert.Equal(t, "const x = 1;", first.Rules[0].Literal)
			assert.Equal(t, "const x = 2;", first.Rules[0].Replacement)
			require.NotNil(t, first.Verify)
			assert.Equal(t, []string{"const x = 2;"}, first.Verify.Contains)
			assert.True(t, first.Verify.Balanced)

			second := plan.Patches[1]
			assert.Equal(t, "step-2", second.Name)
			assert.True(t, second.Unimplemented)
			assert.Empty(t, second.Rules)
			assert.Nil(t, second.Verify)

			assert.Equal(t, 0, plan.CriticalIndex())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		errContains string
	}{
		{
			name:        "unknown_extension",
			filename:    "plan.ini",
			content:     "x=1",
			errContains: "no parser found",
		},
		{
			name:        "unknown_field",
			filename:    "plan.yaml",
			content:     "patches: []\nbogus: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "no_patches",
			filename:    "plan.yaml",
			content:     "patches: []\n",
			errContains: "at least one patch is required",
		},
		{
			name:        "missing_name",
			filename:    "plan.yaml",
			content:     "patches:\n  - target: a.js\n    rules: [{literal: a, replacement: b}]\n",
			errContains: "patch 0: name is required",
		},
		{
			name:        "missing_target",
			filename:    "plan.yaml",
			content:     "patches:\n  - name: p\n    rules: [{literal: a, replacement: b}]\n",
			errContains: `patch "p": target is required`,
		},
		{
			name:        "missing_rules",
			filename:    "plan.yaml",
			content:     "patches:\n  - name: p\n    target: a.js\n",
			errContains: "at least one rule is required",
		},
		{
			name:        "bad_pattern",
			filename:    "plan.yaml",
			content:     "patches:\n  - name: p\n    target: a.js\n    rules: [{pattern: '(', replacement: b}]\n",
			errContains: "compiling pattern",
		},
		{
			name:        "duplicate_names",
			filename:    "plan.yaml",
			content:     "patches:\n  - {name: p, target: a.js, unimplemented: true}\n  - {name: p, target: b.js, unimplemented: true}\n",
			errContains: `duplicate patch name "p"`,
		},
		{
			name:        "two_critical",
			filename:    "plan.yaml",
			content:     "patches:\n  - {name: p, target: a.js, unimplemented: true, critical: true}\n  - {name: q, target: b.js, unimplemented: true, critical: true}\n",
			errContains: "only one patch may be critical",
		},
		{
			name:        "bad_hcl",
			filename:    "plan.hcl",
			content:     "patch {",
			errContains: "parsing HCL",
		},
		{
			name:        "bad_patchrc",
			filename:    ".patchrc",
			content:     "{{{{",
			errContains: "failed to parse .patchrc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlan(t, t.TempDir(), tt.filename, tt.content)

			_, err := Load(testContext(), path)
			require.Error(t, err, "Load should return error")
			assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(testContext(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading plan file")
}

func TestLoadAbsoluteRoot(t *testing.T) {
	dir := t.TempDir()
	root := t.TempDir()
	path := writePlan(t, dir, "plan.yaml", "root: "+root+"\npatches:\n  - {name: p, target: a.js, unimplemented: true}\n")

	plan, err := Load(testContext(), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), plan.Root)
	assert.Equal(t, "1 patch under "+filepath.Clean(root), plan.String())
}

func TestHCLPlanDir(t *testing.T) {
	dir := t.TempDir()
	path := writePlan(t, dir, "plan.hcl", `
patch "p" {
  target        = "${plan_dir}/a.js"
  unimplemented = true
}
`)

	plan, err := Load(testContext(), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.js"), plan.Patches[0].Target)
}

func TestCriticalIndex(t *testing.T) {
	plan := &Plan{Patches: []Patch{{Name: "a"}, {Name: "b", Critical: true}}}
	assert.Equal(t, 1, plan.CriticalIndex())

	plan = &Plan{Patches: []Patch{{Name: "a"}, {Name: "b"}}}
	assert.Equal(t, 0, plan.CriticalIndex(), "first patch is critical by default")
}
