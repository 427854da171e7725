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

// NewVerifyCmd creates a new verify command
func NewVerifyCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the verify checks of every patch",
		Long: `Verify reads each target that has a verify block and checks that its
required markers are present and that its braces, brackets and parentheses
balance. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := operation.New(operation.Options{
				Files:  ro.Files,
				Logger: log.FromContext(cmd.Context()),
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			report, err := op.Verify(cmd.Context(), ro.Plan)
			if err != nil {
				return errors.Errorf("verifying plan: %w", err)
			}

			ro.ExitCode = report.ExitCode()
			return nil
		},
	}

	return cmd
}
