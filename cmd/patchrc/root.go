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

package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/commands"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd builds the command tree; the bare command applies the plan
func newRootCmd(ro *opts.RootOpts, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patchrc",
		Short: "Apply idempotent, pattern-based patches to source files",
		Long: `patchrc applies a plan of text patches to files under a root directory.
Each patch tries a regular expression first and an exact literal second,
and a file is only rewritten when its content actually changes, so running
the same plan twice is safe.

Run without a subcommand to apply the plan.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(cmd, ro, stdout, stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunApply(cmd.Context(), ro)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addRootFlags(cmd, ro)

	cmd.AddCommand(
		commands.NewApplyCmd(ro),
		commands.NewCheckCmd(ro),
		commands.NewVerifyCmd(ro),
		newVersionCmd(stdout),
	)

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.PlanFile, "plan", "p", ".patchrc.yaml", "plan file path")
	cmd.PersistentFlags().StringVar(&ro.Root, "root", "", "directory targets are resolved against (default: the plan's directory)")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
}

// prepare sets up logging and loads the plan before any command runs
func prepare(cmd *cobra.Command, ro *opts.RootOpts, stdout, stderr io.Writer) error {
	zlog := setupLogging(stderr, ro.Debug)
	ctx := zlog.WithContext(cmd.Context())

	plan, err := loadPlan(ctx, ro)
	if err != nil {
		return err
	}

	ro.Plan = plan
	ro.Files = status.New(plan.Root)

	cmd.SetContext(log.NewContext(ctx, log.New(stdout, zlog)))
	return nil
}

// loadPlan loads the plan file and applies the --root override
func loadPlan(ctx context.Context, ro *opts.RootOpts) (*config.Plan, error) {
	plan, err := config.Load(ctx, ro.PlanFile)
	if err != nil {
		return nil, errors.Errorf("loading plan: %w", err)
	}

	if ro.Root != "" {
		root, err := filepath.Abs(ro.Root)
		if err != nil {
			return nil, errors.Errorf("resolving root %s: %w", ro.Root, err)
		}
		plan.Root = root
	}

	zerolog.Ctx(ctx).Debug().
		Str("plan", plan.Location()).
		Str("root", plan.Root).
		Int("patches", len(plan.Patches)).
		Msg("plan loaded")

	return plan, nil
}

// setupLogging configures zerolog based on flags; the per-file report goes to
// stdout so structured logs stay quiet unless asked for
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: zerolog.SyncWriter(w), TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
