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
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Target is one file a patch applies to
type Target struct {
	Patch    Patch
	Index    int    // index of the patch in the plan
	Path     string // absolute path of the file
	Critical bool   // whether this target decides the exit status
}

// Targets resolves every patch against the plan root, in plan order. A glob that
// matches nothing yields its own pattern as the target so it reports as missing.
// A target naming an existing file is used as-is even if it contains glob
// characters, as in pages/[id].jsx.
func (p *Plan) Targets(ctx context.Context) ([]Target, error) {
	logger := zerolog.Ctx(ctx)
	critical := p.CriticalIndex()

	var targets []Target
	for i, patch := range p.Patches {
		pattern := patch.Target
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(p.Root, pattern)
		}
		pattern = filepath.Clean(pattern)

		paths := []string{pattern}
		if hasMeta(patch.Target) && !isFile(pattern) {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, errors.Errorf("patch %q: expanding target %q: %w", patch.Name, patch.Target, err)
			}
			sort.Strings(matches)
			if len(matches) > 0 {
				paths = matches
			}
		}

		for _, path := range paths {
			if p.excluded(patch, path) {
				logger.Debug().Str("patch", patch.Name).Str("path", path).Msg("target excluded by pattern")
				continue
			}
			targets = append(targets, Target{
				Patch:    patch,
				Index:    i,
				Path:     path,
				Critical: i == critical,
			})
		}
	}

	return targets, nil
}

// excluded matches the root-relative slash path against the patch's exclude patterns
func (p *Plan) excluded(patch Patch, path string) bool {
	if len(patch.Exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patch.Exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
