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

package patch

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrPatternNotFound means no matcher changed the file; it is already patched or has drifted
	ErrPatternNotFound = errors.Base("pattern not found")
	// ErrFileNotFound means the target path does not exist
	ErrFileNotFound = errors.Base("file not found")
	// ErrIO covers any other read, write or encoding failure
	ErrIO = errors.Base("i/o error")
	// ErrInvalidRule means a rule could not be compiled
	ErrInvalidRule = errors.Base("invalid rule")
	// ErrNotApplicable marks a patch with no transformation defined
	ErrNotApplicable = errors.Base("not applicable")
)

// Error is the per-file error of a patch. It matches both its kind and its cause with errors.Is.
type Error struct {
	Kind  error
	Path  string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}
