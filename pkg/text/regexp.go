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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// RegexpReplacer implements Replacer with regexp matching and a strings fallback
type RegexpReplacer struct{}

var _ Replacer = (*RegexpReplacer)(nil)

// NewRegexpReplacer creates a new RegexpReplacer
func NewRegexpReplacer() *RegexpReplacer {
	return &RegexpReplacer{}
}

// CompilePattern compiles a rule pattern the way Replace does, with ^ and $ matching at line boundaries.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?m)" + pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}
	return re, nil
}

// Replace implements Replacer.Replace
func (r *RegexpReplacer) Replace(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		Rules:           make([]RuleResult, len(rules)),
	}

	currentContent := string(originalContent)
	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}

		next, rr, err := applyRule(currentContent, rule)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		rr.Index = i
		result.Rules[i] = rr
		result.ReplacementCount += rr.Count

		currentContent = next
	}

	result.ModifiedContent = []byte(currentContent)
	result.WasModified = currentContent != string(originalContent)
	return result, nil
}

// applyRule tries the pattern first and falls back to the literal only if the pattern left the content unchanged
func applyRule(content string, rule Rule) (string, RuleResult, error) {
	rr := RuleResult{MatchedBy: MatchedNone}

	if rule.Pattern != "" {
		re, err := CompilePattern(rule.Pattern)
		if err != nil {
			return content, rr, err
		}

		matches := re.FindAllStringIndex(content, -1)
		if len(matches) > 0 {
			var next string
			if rule.Expand {
				next = re.ReplaceAllString(content, rule.Replacement)
			} else {
				next = re.ReplaceAllLiteralString(content, rule.Replacement)
			}
			if next != content {
				rr.MatchedBy = MatchedPattern
				rr.Count = len(matches)
				return next, rr, nil
			}
		}
	}

	if rule.Literal != "" && strings.Contains(content, rule.Literal) {
		next := strings.ReplaceAll(content, rule.Literal, rule.Replacement)
		if next != content {
			rr.MatchedBy = MatchedLiteral
			rr.Count = strings.Count(content, rule.Literal)
			return next, rr, nil
		}
	}

	return content, rr, nil
}

// ValidateRules implements Replacer.ValidateRules
func (r *RegexpReplacer) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.Pattern == "" && rule.Literal == "" {
			return errors.Errorf("rule %d: pattern or literal is required", i)
		}
		if rule.Pattern != "" {
			if _, err := CompilePattern(rule.Pattern); err != nil {
				return errors.Errorf("rule %d: %w", i, err)
			}
		}
		if rule.Expand && rule.Pattern == "" {
			return errors.Errorf("rule %d: expand requires a pattern", i)
		}
	}
	return nil
}
