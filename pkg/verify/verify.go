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

// Package verify runs cheap structural checks on a patched file: markers that must be
// present and balanced delimiters. It does not parse the file's language.
package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Check lists what a file must satisfy after patching
type Check struct {
	Contains []string // substrings that must be present
	Balanced bool     // {}, [] and () counts must net to zero
}

// IsZero reports whether the check has nothing to verify
func (c Check) IsZero() bool {
	return len(c.Contains) == 0 && !c.Balanced
}

// Finding is one failed check
type Finding struct {
	Kind   string // "missing" or "unbalanced"
	Detail string
}

func (f Finding) String() string {
	return f.Kind + ": " + f.Detail
}

// Report is the verification result for one file
type Report struct {
	Path     string
	Findings []Finding
}

// OK reports whether every check passed
func (r Report) OK() bool {
	return len(r.Findings) == 0
}

// Summary joins the findings for a one-line report
func (r Report) Summary() string {
	if r.OK() {
		return "verified"
	}
	parts := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

var pairs = []struct {
	name        string
	open, close rune
}{
	{"braces", '{', '}'},
	{"brackets", '[', ']'},
	{"parens", '(', ')'},
}

// Content checks content in memory
func Content(content string, check Check) []Finding {
	var findings []Finding

	for _, marker := range check.Contains {
		if !strings.Contains(content, marker) {
			findings = append(findings, Finding{Kind: "missing", Detail: fmt.Sprintf("%q", marker)})
		}
	}

	if check.Balanced {
		counts := make([]int, len(pairs))
		for _, r := range content {
			for i, p := range pairs {
				switch r {
				case p.open:
					counts[i]++
				case p.close:
					counts[i]--
				}
			}
		}

		var off []string
		for i, p := range pairs {
			if counts[i] != 0 {
				off = append(off, fmt.Sprintf("%s %+d", p.name, counts[i]))
			}
		}
		if len(off) > 0 {
			findings = append(findings, Finding{Kind: "unbalanced", Detail: strings.Join(off, ", ")})
		}
	}

	return findings
}

// File reads path through files and checks it
func File(ctx context.Context, files status.FileManager, path string, check Check) (Report, error) {
	content, _, err := files.ReadFile(ctx, path)
	if err != nil {
		return Report{Path: path}, errors.Errorf("verifying %s: %w", path, err)
	}

	report := Report{
		Path:     path,
		Findings: Content(string(content), check),
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("findings", len(report.Findings)).
		Msg("verified file")

	return report, nil
}
