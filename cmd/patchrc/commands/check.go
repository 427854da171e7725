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
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		diff bool
		jobs int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show what apply would do without writing",
		Long: `Check previews every patch of the plan and never writes a file.
Previews run concurrently; results are reported in plan order.
The exit status is 0 only when the critical patch would apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := operation.New(operation.Options{
				Files:  ro.Files,
				Logger: log.FromContext(cmd.Context()),
				Jobs:   jobs,
				Diff:   diff,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			report, err := op.Check(cmd.Context(), ro.Plan)
			if err != nil {
				return errors.Errorf("checking plan: %w", err)
			}

			ro.ExitCode = report.ExitCode()
			return nil
		},
	}

	cmd.Flags().BoolVar(&diff, "diff", false, "print the lines each patch would change")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "concurrent previews (0 uses every CPU)")

	return cmd
}
