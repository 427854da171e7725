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

package text

import (
	"context"
	"io"
)

// MatchedBy records which matcher of a rule changed the content
type MatchedBy int

const (
	MatchedNone    MatchedBy = iota // neither matcher changed the content
	MatchedPattern                  // the primary regular expression
	MatchedLiteral                  // the exact-substring fallback
)

// String returns a string representation of MatchedBy
func (m MatchedBy) String() string {
	switch m {
	case MatchedPattern:
		return "pattern"
	case MatchedLiteral:
		return "literal"
	default:
		return "none"
	}
}

// 🔄 Rule defines a single text replacement with a regex-first, literal-fallback matcher
type Rule struct {
	// Pattern is the primary matcher, compiled in multi-line mode
	Pattern string

	// Literal is the exact substring tried only when Pattern changes nothing
	Literal string

	// Replacement is the literal text block written in place of each match
	Replacement string

	// Expand enables $1 / ${name} submatch expansion in Replacement for Pattern matches
	Expand bool
}

// RuleResult describes what a single rule did to the content
type RuleResult struct {
	Index     int
	MatchedBy MatchedBy
	Count     int
}

// 📊 Result contains the results of applying a set of rules
type Result struct {
	// WasModified indicates if the final content differs from the original
	WasModified bool

	// ReplacementCount is the number of replacements made across all rules
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte

	// Rules holds one entry per input rule, in order
	Rules []RuleResult
}

// 🎯 Replacer defines the interface for text replacement operations
type Replacer interface {
	// Replace applies the rules in order against the evolving content
	Replace(ctx context.Context, content io.Reader, rules []Rule) (*Result, error)

	// ValidateRules checks that all rules are usable
	ValidateRules(rules []Rule) error
}
