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
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/text"
	"github.com/walteh/patchrc/pkg/verify"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is one (matcher, replacement) pair of a patch
type Rule struct {
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty" hcl:"pattern,optional"`
	Literal     string `json:"literal,omitempty" yaml:"literal,omitempty" toml:"literal,omitempty" hcl:"literal,optional"`
	Replacement string `json:"replacement" yaml:"replacement" toml:"replacement" hcl:"replacement,optional"`
	Expand      bool   `json:"expand,omitempty" yaml:"expand,omitempty" toml:"expand,omitempty" hcl:"expand,optional"`
}

// ✅ Verify lists post-patch checks
type Verify struct {
	Contains []string `json:"contains,omitempty" yaml:"contains,omitempty" toml:"contains,omitempty" hcl:"contains,optional"`
	Balanced bool     `json:"balanced,omitempty" yaml:"balanced,omitempty" toml:"balanced,omitempty" hcl:"balanced,optional"`
}

// 📦 Patch is one named edit of one target (a file or a glob of files)
type Patch struct {
	Name          string   `json:"name" yaml:"name" toml:"name" hcl:"name,label"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" hcl:"description,optional"`
	Target        string   `json:"target" yaml:"target" toml:"target" hcl:"target"`
	Exclude       []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty" hcl:"exclude,optional"`
	Critical      bool     `json:"critical,omitempty" yaml:"critical,omitempty" toml:"critical,omitempty" hcl:"critical,optional"`
	Unimplemented bool     `json:"unimplemented,omitempty" yaml:"unimplemented,omitempty" toml:"unimplemented,omitempty" hcl:"unimplemented,optional"`
	Rules         []Rule   `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty" hcl:"rule,block"`
	Verify        *Verify  `json:"verify,omitempty" yaml:"verify,omitempty" toml:"verify,omitempty" hcl:"verify,block"`
}

// TextRules converts the patch rules for the text package
func (p Patch) TextRules() []text.Rule {
	rules := make([]text.Rule, len(p.Rules))
	for i, r := range p.Rules {
		rules[i] = text.Rule{
			Pattern:     r.Pattern,
			Literal:     r.Literal,
			Replacement: r.Replacement,
			Expand:      r.Expand,
		}
	}
	return rules
}

// Check converts the verify block; a patch without one yields a zero Check
func (p Patch) Check() verify.Check {
	if p.Verify == nil {
		return verify.Check{}
	}
	return verify.Check{
		Contains: p.Verify.Contains,
		Balanced: p.Verify.Balanced,
	}
}

// 📚 Plan is a complete patch plan
type Plan struct {
	Root    string  `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty" hcl:"root,optional"`
	Patches []Patch `json:"patches" yaml:"patches" toml:"patches" hcl:"patch,block"`

	location string
}

// Location returns the file the plan was loaded from
func (p *Plan) Location() string {
	return p.location
}

// 🎯 Load loads and validates a plan file. A relative or empty root is resolved against the plan's directory.
func Load(ctx context.Context, path string) (*Plan, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading plan")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading plan file: %w", err)
	}

	plan, err := parse(ctx, path, data)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving plan path: %w", err)
	}
	plan.location = abs

	planDir := filepath.Dir(abs)
	switch {
	case plan.Root == "":
		plan.Root = planDir
	case !filepath.IsAbs(plan.Root):
		plan.Root = filepath.Join(planDir, plan.Root)
	}
	plan.Root = filepath.Clean(plan.Root)

	if err := plan.Validate(); err != nil {
		return nil, errors.Errorf("validating plan: %w", err)
	}

	logger.Debug().Str("root", plan.Root).Int("patches", len(plan.Patches)).Msg("plan loaded")
	return plan, nil
}

func parse(ctx context.Context, path string, data []byte) (*Plan, error) {
	if p := GetParser(path); p != nil {
		plan, err := p.Parse(ctx, path, data)
		if err != nil {
			return nil, errors.Errorf("parsing plan: %w", err)
		}
		return plan, nil
	}

	// a bare .patchrc may be YAML or HCL
	if filepath.Base(path) == ".patchrc" {
		plan, yamlErr := (&YAMLParser{}).Parse(ctx, path, data)
		if yamlErr == nil {
			return plan, nil
		}
		plan, hclErr := (&HCLParser{}).Parse(ctx, path, data)
		if hclErr == nil {
			return plan, nil
		}
		return nil, errors.Errorf("failed to parse .patchrc as YAML (%s) or HCL: %w", yamlErr.Error(), hclErr)
	}

	return nil, errors.Errorf("no parser found for file: %s", path)
}

// 🔍 Validate checks that the plan can be run
func (p *Plan) Validate() error {
	if len(p.Patches) == 0 {
		return errors.Errorf("at least one patch is required")
	}

	replacer := text.NewRegexpReplacer()
	seen := make(map[string]bool, len(p.Patches))
	critical := 0

	for i, patch := range p.Patches {
		if patch.Name == "" {
			return errors.Errorf("patch %d: name is required", i)
		}
		if seen[patch.Name] {
			return errors.Errorf("duplicate patch name %q", patch.Name)
		}
		seen[patch.Name] = true

		if patch.Target == "" {
			return errors.Errorf("patch %q: target is required", patch.Name)
		}
		if patch.Critical {
			critical++
		}

		if patch.Unimplemented {
			continue
		}
		if len(patch.Rules) == 0 {
			return errors.Errorf("patch %q: at least one rule is required", patch.Name)
		}
		if err := replacer.ValidateRules(patch.TextRules()); err != nil {
			return errors.Errorf("patch %q: %w", patch.Name, err)
		}
	}

	if critical > 1 {
		return errors.Errorf("only one patch may be critical, found %d", critical)
	}
	return nil
}

// CriticalIndex returns the index of the patch that decides the exit status; the first patch unless one is marked.
func (p *Plan) CriticalIndex() int {
	for i, patch := range p.Patches {
		if patch.Critical {
			return i
		}
	}
	return 0
}

// 📝 String returns a string representation of the plan
func (p *Plan) String() string {
	noun := "patches"
	if len(p.Patches) == 1 {
		noun = "patch"
	}
	return fmt.Sprintf("%d %s under %s", len(p.Patches), noun, p.Root)
}
