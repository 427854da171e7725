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

	"github.com/walteh/patchrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ✅ Verify runs the checks of every patch that declares them; patches without
// a verify block are skipped
func (o *operator) Verify(ctx context.Context, plan *config.Plan) (*Report, error) {
	targets, err := plan.Targets(ctx)
	if err != nil {
		return nil, errors.Errorf("resolving targets: %w", err)
	}

	o.logger.Header(fmt.Sprintf("verifying %s", plural(len(targets), "file")))

	report := &Report{Mode: ModeVerify}
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return report, errors.Errorf("verifying %s: %w", t.Patch.Name, err)
		}

		check := t.Patch.Check()
		if check.IsZero() {
			continue
		}

		vr := o.verifyTarget(ctx, t, check)
		rel := o.files.Rel(t.Path)
		if vr.OK() {
			o.logger.Successf("%s %s", rel, vr.Summary())
		} else {
			o.logger.Errorf("%s: %s", rel, vr.Summary())
		}
		report.Entries = append(report.Entries, Entry{Target: t, Verify: &vr})
	}

	o.logger.Banner(report.Summary(), report.OK())
	return report, nil
}
