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

package operation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Check previews every target without writing and reports in plan order
func (o *operator) Check(ctx context.Context, plan *config.Plan) (*Report, error) {
	targets, err := plan.Targets(ctx)
	if err != nil {
		return nil, errors.Errorf("resolving targets: %w", err)
	}

	o.logger.Header(fmt.Sprintf("checking %s against %s", plural(len(plan.Patches), "patch"), plural(len(targets), "file")))

	results := make([]patch.Result, len(targets))
	err = forEach(ctx, len(targets), o.jobs, func(ctx context.Context, i int) error {
		results[i] = o.applier.Preview(ctx, specFor(targets[i]))
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("previewing patches: %w", err)
	}

	report := &Report{Mode: ModeCheck}
	for i, t := range targets {
		res := results[i]

		message := res.Message
		if res.Applied() {
			message = "would apply " + res.Message
		}
		o.logResult(ctx, t, res, message)

		if o.diff && res.Applied() {
			o.logger.Raw(renderDiff(o.files.Rel(t.Path), res.Original, res.Modified))
		}

		// previews carry both contents; the report only needs the outcome
		res.Original, res.Modified = nil, nil
		report.Entries = append(report.Entries, Entry{Target: t, Result: res})
	}

	zerolog.Ctx(ctx).Debug().Int("targets", len(targets)).Msg("check complete, nothing written")

	if n := report.Tally()[status.OutcomeApplied]; n > 0 && !o.diff {
		o.logger.Infof("%s would change, diff not shown", plural(n, "file"))
	}

	o.logger.Summary(report.Tally(), report.OK())
	return report, nil
}

// 📝 renderDiff renders the changed lines of a file, "-" for removed and "+"
// for added, with "@@" where unchanged lines were skipped
func renderDiff(path string, before, after []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", path, path)
	for i, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "-", d.Text)
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+", d.Text)
		case diffmatchpatch.DiffEqual:
			if i > 0 && i < len(diffs)-1 {
				sb.WriteString("@@\n")
			}
		}
	}
	return sb.String()
}

func writeLines(sb *strings.Builder, prefix, text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			sb.WriteString("\n")
		}
	}
}
