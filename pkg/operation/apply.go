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

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/status"
	"github.com/walteh/patchrc/pkg/verify"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Apply patches every target sequentially in plan order
func (o *operator) Apply(ctx context.Context, plan *config.Plan) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	targets, err := plan.Targets(ctx)
	if err != nil {
		return nil, errors.Errorf("resolving targets: %w", err)
	}

	o.logger.Header(fmt.Sprintf("applying %s to %s", plural(len(plan.Patches), "patch"), plural(len(targets), "file")))

	report := &Report{Mode: ModeApply}
	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			return report, errors.Errorf("applying %s: %w", t.Patch.Name, err)
		}

		res := o.applier.Apply(ctx, specFor(t))
		o.logResult(ctx, t, res, res.Message)

		entry := Entry{Target: t, Result: res}
		if res.Applied() {
			if check := t.Patch.Check(); !check.IsZero() {
				vr := o.verifyTarget(ctx, t, check)
				entry.Verify = &vr
				if !vr.OK() {
					o.logger.Warningf("%s: %s", o.files.Rel(t.Path), vr.Summary())
				}
			}
		}
		report.Entries = append(report.Entries, entry)

		logger.Debug().Str("patch", t.Patch.Name).Msg(status.FormatProgress(i+1, len(targets)))
	}

	o.logger.Summary(report.Tally(), report.OK())
	return report, nil
}

// verifyTarget runs check against the target; a read failure becomes a finding
func (o *operator) verifyTarget(ctx context.Context, t config.Target, check verify.Check) verify.Report {
	vr, err := verify.File(ctx, o.files, t.Path, check)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("patch", t.Patch.Name).Msg("verification failed")
		vr.Findings = append(vr.Findings, verify.Finding{Kind: "unreadable", Detail: err.Error()})
	}
	return vr
}
