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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/status"
)

// 🎯 FileOperation represents one patched file for logging
type FileOperation struct {
	Path         string         // File path, relative to the plan root when possible
	Patch        string         // Patch name
	Outcome      status.Outcome // What happened
	Message      string         // Human readable detail
	Replacements int            // Number of replacements made
	Critical     bool           // Whether this file decides the exit status
}

// 🎯 Logger prints the operator report and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogFileOperation prints one report line
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, status.FormatFileOperation(op.Path, op.Patch, op.Outcome, op.Message))

	var event *zerolog.Event
	switch {
	case op.Outcome.IsFailure():
		event = l.zlog.Error()
	case op.Outcome == status.OutcomeNotFound:
		event = l.zlog.Warn()
	default:
		event = l.zlog.Info()
	}
	event.
		Str("file", op.Path).
		Str("patch", op.Patch).
		Str("outcome", op.Outcome.String()).
		Str("message", op.Message).
		Int("replacements", op.Replacements).
		Bool("critical", op.Critical).
		Msg("file operation")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📊 Summary prints the run tally; ok selects the success or error banner
func (l *Logger) Summary(tally status.Tally, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.banner(status.FormatSummary(tally), ok)

	event := l.zlog.Info()
	if !ok {
		event = l.zlog.Error()
	}
	for o, n := range tally {
		event = event.Int(o.String(), n)
	}
	event.Bool("ok", ok).Msg("run complete")
}

// 📊 Banner prints a closing line that is not an outcome tally
func (l *Logger) Banner(msg string, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.banner(msg, ok)
	l.zlog.Info().Bool("ok", ok).Msg(msg)
}

func (l *Logger) banner(msg string, ok bool) {
	fmt.Fprintln(l.console)
	if ok {
		fmt.Fprint(l.console, pterm.Success.WithPrefix(pterm.Prefix{Text: "DONE", Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)}).Sprintln(msg))
		return
	}
	fmt.Fprint(l.console, pterm.Error.WithPrefix(pterm.Prefix{Text: "FAILED", Style: pterm.NewStyle(pterm.BgRed, pterm.FgWhite)}).Sprintln(msg))
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Raw writes text to the console without decoration
func (l *Logger) Raw(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, text)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
