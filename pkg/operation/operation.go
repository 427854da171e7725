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
	"runtime"

	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/status"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the main interface for patchrc operations
type Operator interface {
	// Apply patches every target in plan order and writes changed files
	Apply(ctx context.Context, plan *config.Plan) (*Report, error)
	// Check previews every target without writing anything
	Check(ctx context.Context, plan *config.Plan) (*Report, error)
	// Verify runs the post-patch checks of every patch that declares one
	Verify(ctx context.Context, plan *config.Plan) (*Report, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Files reads and writes targets
	Files status.FileManager
	// Logger receives the per-file report
	Logger *log.Logger
	// Replacer transforms content; nil uses the regexp replacer
	Replacer text.Replacer
	// Jobs bounds concurrent previews in Check; zero means GOMAXPROCS
	Jobs int
	// Diff prints what Check would change
	Diff bool
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Jobs < 0 {
		return nil, errors.Errorf("jobs must not be negative, got %d", opts.Jobs)
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	return &operator{
		files:   opts.Files,
		logger:  opts.Logger,
		applier: patch.New(opts.Files, opts.Replacer),
		jobs:    jobs,
		diff:    opts.Diff,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	files   status.FileManager
	logger  *log.Logger
	applier *patch.Applier
	jobs    int
	diff    bool
}

// specFor turns a resolved target into the Applier's unit of work
func specFor(t config.Target) patch.Spec {
	return patch.Spec{
		Name:          t.Patch.Name,
		Path:          t.Path,
		Rules:         t.Patch.TextRules(),
		Unimplemented: t.Patch.Unimplemented,
	}
}

// 📝 logResult prints one report line for a target
func (o *operator) logResult(ctx context.Context, t config.Target, res patch.Result, message string) {
	o.logger.LogFileOperation(ctx, log.FileOperation{
		Path:         o.files.Rel(t.Path),
		Patch:        t.Patch.Name,
		Outcome:      res.Outcome,
		Message:      message,
		Replacements: res.Replacements,
		Critical:     t.Critical,
	})
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
