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

// Package patch applies regex-first, literal-fallback text patches to files on disk.
//
// A file is read once, transformed in memory and written back only when its content
// changed, so applying the same Spec twice leaves the file untouched the second time.
package patch

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/status"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📦 Spec describes one intended edit of one file
type Spec struct {
	Name          string      // Patch name used in reports
	Path          string      // Target file
	Rules         []text.Rule // Applied in order against the evolving content
	Unimplemented bool        // Never touches the file, always not-applicable
}

// 📊 Result is the outcome of applying one Spec
type Result struct {
	Name         string
	Path         string
	Outcome      status.Outcome
	Message      string
	Cause        error
	Rules        []text.RuleResult
	Replacements int

	// Original and Modified are only set by Preview
	Original []byte
	Modified []byte

	kind error
}

// Applied reports whether the patch changed the file (or would, for a preview)
func (r Result) Applied() bool {
	return r.Outcome == status.OutcomeApplied
}

// Err returns the result as an *Error, or nil when the patch applied
func (r Result) Err() error {
	var kind error
	switch r.Outcome {
	case status.OutcomeApplied:
		return nil
	case status.OutcomeNotFound:
		kind = ErrPatternNotFound
	case status.OutcomeFileNotFound:
		kind = ErrFileNotFound
	case status.OutcomeNotApplicable:
		kind = ErrNotApplicable
	default:
		kind = ErrIO
		if r.kind != nil {
			kind = r.kind
		}
	}
	return &Error{Kind: kind, Path: r.Path, Cause: r.Cause}
}

// 🔧 Applier applies Specs through a FileManager
type Applier struct {
	files    status.FileManager
	replacer text.Replacer
}

// 🏭 New creates an Applier. A nil replacer uses text.NewRegexpReplacer.
func New(files status.FileManager, replacer text.Replacer) *Applier {
	if replacer == nil {
		replacer = text.NewRegexpReplacer()
	}
	return &Applier{
		files:    files,
		replacer: replacer,
	}
}

// Apply reads the target, transforms it and writes it back only if the content changed.
func (a *Applier) Apply(ctx context.Context, spec Spec) Result {
	res, modified, info := a.transform(ctx, spec)
	res.Original, res.Modified = nil, nil
	if res.Outcome != status.OutcomeApplied {
		return res
	}

	mode := fs.FileMode(0644)
	if info != nil {
		mode = info.Mode().Perm()
	}

	if err := a.files.WriteFileAtomic(ctx, spec.Path, modified, mode); err != nil {
		return a.ioError(ctx, spec, ErrIO, errors.Errorf("writing %s: %w", spec.Path, err))
	}

	zerolog.Ctx(ctx).Info().
		Str("patch", spec.Name).
		Str("path", spec.Path).
		Int("replacements", res.Replacements).
		Msg("patch applied")
	return res
}

// Preview runs Apply without writing and returns the content the file would get.
func (a *Applier) Preview(ctx context.Context, spec Spec) Result {
	res, _, _ := a.transform(ctx, spec)
	return res
}

func (a *Applier) transform(ctx context.Context, spec Spec) (Result, []byte, fs.FileInfo) {
	logger := zerolog.Ctx(ctx).With().Str("patch", spec.Name).Str("path", spec.Path).Logger()

	if spec.Unimplemented {
		logger.Debug().Msg("patch has no transformation")
		return Result{
			Name:    spec.Name,
			Path:    spec.Path,
			Outcome: status.OutcomeNotApplicable,
			Message: "not implemented, needs manual review",
		}, nil, nil
	}

	content, info, err := a.files.ReadFile(ctx, spec.Path)
	if err != nil {
		if errors.Is(err, status.ErrNotExist) {
			logger.Debug().Msg("target file not found")
			return Result{
				Name:    spec.Name,
				Path:    spec.Path,
				Outcome: status.OutcomeFileNotFound,
				Message: "file not found",
			}, nil, nil
		}
		return a.ioError(ctx, spec, ErrIO, errors.Errorf("reading %s: %w", spec.Path, err)), nil, nil
	}

	if !utf8.Valid(content) {
		return a.ioError(ctx, spec, ErrIO, errors.Errorf("reading %s: content is not valid UTF-8", spec.Path)), nil, nil
	}

	result, err := a.replacer.Replace(ctx, bytes.NewReader(content), spec.Rules)
	if err != nil {
		return a.ioError(ctx, spec, ErrInvalidRule, errors.Errorf("applying rules: %w", err)), nil, nil
	}

	res := Result{
		Name:         spec.Name,
		Path:         spec.Path,
		Rules:        result.Rules,
		Replacements: result.ReplacementCount,
		Original:     result.OriginalContent,
		Modified:     result.ModifiedContent,
	}

	if !result.WasModified {
		logger.Debug().Msg("no matcher changed the content")
		res.Outcome = status.OutcomeNotFound
		res.Message = "pattern not found, needs manual review"
		return res, nil, info
	}

	res.Outcome = status.OutcomeApplied
	res.Message = describeRules(result)
	return res, result.ModifiedContent, info
}

func (a *Applier) ioError(ctx context.Context, spec Spec, kind error, err error) Result {
	zerolog.Ctx(ctx).Error().Err(err).Str("patch", spec.Name).Str("path", spec.Path).Msg("patch failed")
	return Result{
		Name:    spec.Name,
		Path:    spec.Path,
		Outcome: status.OutcomeIOError,
		Message: err.Error(),
		Cause:   err,
		kind:    kind,
	}
}

// describeRules renders "2 replacements (pattern, literal)"
func describeRules(result *text.Result) string {
	noun := "replacements"
	if result.ReplacementCount == 1 {
		noun = "replacement"
	}

	var hits []string
	for _, r := range result.Rules {
		if r.MatchedBy != text.MatchedNone {
			hits = append(hits, r.MatchedBy.String())
		}
	}

	msg := fmt.Sprintf("%d %s", result.ReplacementCount, noun)
	if len(hits) > 0 {
		msg += " (" + strings.Join(hits, ", ") + ")"
	}
	return msg
}
