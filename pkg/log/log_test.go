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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:    "x.js",
					Patch:   "bump",
					Outcome: status.OutcomeApplied,
					Message: "1 replacement (literal)",
				})
			},
			wantLogs: []string{
				"✓ x.js                                     bump                 applied         1 replacement (literal)",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying 2 patches")
			},
			wantLogs: []string{
				"patchrc • applying 2 patches",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())

	logger.Summary(status.Tally{status.OutcomeApplied: 2, status.OutcomeNotFound: 1}, true)
	assert.Contains(t, buf.String(), "2 applied, 1 not-found")
	assert.Contains(t, buf.String(), "DONE")

	buf.Reset()
	logger.Summary(status.Tally{status.OutcomeFileNotFound: 1}, false)
	assert.Contains(t, buf.String(), "1 file-not-found")
	assert.Contains(t, buf.String(), "FAILED")

	buf.Reset()
	logger.Banner("2 verified", true)
	assert.Contains(t, buf.String(), "2 verified")
}

func TestLoggerStructured(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	structured := &bytes.Buffer{}
	logger := New(io.Discard, zerolog.New(structured))

	logger.LogFileOperation(context.Background(), FileOperation{
		Path:     "a.jsx",
		Patch:    "form",
		Outcome:  status.OutcomeFileNotFound,
		Message:  "file not found",
		Critical: true,
	})

	out := structured.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"outcome":"file-not-found"`)
	assert.Contains(t, out, `"critical":true`)
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}
