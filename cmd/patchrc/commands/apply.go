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

package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply every patch in the plan",
		Long: `Apply patches every target of the plan in order.
It will:
1. Read each target once
2. Try the pattern of each rule, then its literal fallback
3. Write the file only if its content changed
4. Run the patch's verify checks after it applied

The exit status is 0 only when the critical patch applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunApply(cmd.Context(), ro)
		},
	}

	return cmd
}

// RunApply applies the loaded plan and records the exit code
func RunApply(ctx context.Context, ro *opts.RootOpts) error {
	op, err := operation.New(operation.Options{
		Files:  ro.Files,
		Logger: log.FromContext(ctx),
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	report, err := op.Apply(ctx, ro.Plan)
	if err != nil {
		return errors.Errorf("applying plan: %w", err)
	}

	ro.ExitCode = report.ExitCode()
	return nil
}
