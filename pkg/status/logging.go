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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent    = 2  // spaces to indent file entries
	nameWidth     = 40 // Base width for filename
	patchWidth    = 20 // Width for the patch name
	outcomeWidth  = 15 // Width for outcome text
	notApplicable = "–"
)

// Glyph returns the status glyph printed in front of a file line
func (o Outcome) Glyph() string {
	switch o {
	case OutcomeApplied:
		return "✓"
	case OutcomeNotFound:
		return "⚠"
	case OutcomeFileNotFound, OutcomeIOError:
		return "✗"
	case OutcomeNotApplicable:
		return notApplicable
	default:
		return "?"
	}
}

func (o Outcome) colorize(s string) string {
	switch o {
	case OutcomeApplied:
		return color.GreenString(s)
	case OutcomeNotFound:
		return color.YellowString(s)
	case OutcomeFileNotFound, OutcomeIOError:
		return color.RedString(s)
	default:
		return color.HiBlackString(s)
	}
}

// 🎯 FormatFileOperation formats one report line for a patched file
func FormatFileOperation(path, patchName string, outcome Outcome, message string) string {
	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	patchPart := fmt.Sprintf("%-*s", patchWidth, patchName)
	outcomePart := outcome.colorize(fmt.Sprintf("%-*s", outcomeWidth, outcome.String()))

	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		outcome.colorize(outcome.Glyph()),
		namePart,
		patchPart,
		outcomePart,
	)
	if message != "" {
		line += " " + message
	}
	return strings.TrimRight(line, " ")
}
