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
)

// Tally counts outcomes of a run
type Tally map[Outcome]int

// summaryOrder fixes the order outcomes appear in a summary
var summaryOrder = []Outcome{
	OutcomeApplied,
	OutcomeNotFound,
	OutcomeNotApplicable,
	OutcomeFileNotFound,
	OutcomeIOError,
}

// FormatSummary formats a tally as "2 applied, 1 not-found"; zero counts are omitted
func FormatSummary(t Tally) string {
	parts := make([]string, 0, len(summaryOrder))
	for _, o := range summaryOrder {
		if n := t[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, o))
		}
	}
	if len(parts) == 0 {
		return "no files processed"
	}
	return strings.Join(parts, ", ")
}

// FormatProgress formats a progress message with percentage
func FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
