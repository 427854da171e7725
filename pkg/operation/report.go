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
	"fmt"

	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/status"
	"github.com/walteh/patchrc/pkg/verify"
)

// Mode is the kind of run that produced a Report
type Mode int

const (
	ModeApply Mode = iota
	ModeCheck
	ModeVerify
)

func (m Mode) String() string {
	switch m {
	case ModeApply:
		return "apply"
	case ModeCheck:
		return "check"
	case ModeVerify:
		return "verify"
	default:
		return "unknown"
	}
}

// 📄 Entry is the result for one target
type Entry struct {
	Target config.Target
	Result patch.Result
	// Verify is set when the patch declares checks and they ran
	Verify *verify.Report
}

// 📊 Report is the ordered result of one run
type Report struct {
	Mode    Mode
	Entries []Entry
}

// Tally counts patch outcomes; verify runs have none
func (r *Report) Tally() status.Tally {
	tally := status.Tally{}
	if r.Mode == ModeVerify {
		return tally
	}
	for _, e := range r.Entries {
		tally[e.Result.Outcome]++
	}
	return tally
}

// OK reports whether the run succeeded. Apply and check succeed when every
// target of the critical patch applied; secondary patches never count. Verify
// succeeds when every check passed.
func (r *Report) OK() bool {
	if r.Mode == ModeVerify {
		for _, e := range r.Entries {
			if e.Verify == nil || !e.Verify.OK() {
				return false
			}
		}
		return true
	}

	critical := 0
	for _, e := range r.Entries {
		if !e.Target.Critical {
			continue
		}
		critical++
		if !e.Result.Applied() {
			return false
		}
	}
	return critical > 0
}

// ExitCode is 0 when the run succeeded and 1 otherwise
func (r *Report) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

// VerifyFailures returns the entries whose checks did not pass
func (r *Report) VerifyFailures() []Entry {
	var failed []Entry
	for _, e := range r.Entries {
		if e.Verify != nil && !e.Verify.OK() {
			failed = append(failed, e)
		}
	}
	return failed
}

// Summary renders the closing line of the run
func (r *Report) Summary() string {
	if r.Mode != ModeVerify {
		return status.FormatSummary(r.Tally())
	}
	if len(r.Entries) == 0 {
		return "no checks declared"
	}
	failed := len(r.VerifyFailures())
	return fmt.Sprintf("%d verified, %d failed", len(r.Entries)-failed, failed)
}
