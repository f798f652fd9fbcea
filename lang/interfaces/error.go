// Vizx
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package interfaces contains the shared errors used by the lexer, the parser
// and the layout passes of the diagram language.
package interfaces

import (
	"fmt"
	"strings"
)

// Error is a constant error type that implements error.
type Error string

// Error fulfills the error interface of this type.
func (e Error) Error() string { return string(e) }

const (
	// ErrLexerUnrecognized is the error returned when no token rule matches
	// the remaining input.
	ErrLexerUnrecognized = Error("unrecognized")

	// ErrParseError is returned when no grammar alternative matches.
	ErrParseError = Error("parser")

	// ErrParseExpectedEOF is returned when a full expression was parsed
	// but some input remains after it.
	ErrParseExpectedEOF = Error("expected end of input")

	// ErrParseAmbiguous is used for warnings about inputs that have more
	// than one distinct parse. The first candidate is kept.
	ErrParseAmbiguous = Error("ambiguous parse")
)

// EOF is the printable name of the end of the input.
const EOF = "end of input"

// LexParseErr is a permanent failure error to notify about borkage. The row
// and column are zero-based and count runes, not bytes.
type LexParseErr struct {
	Err Error
	Str string // the offending text, or EOF
	Row int    // this is zero-indexed (the first line is 0)
	Col int    // this is zero-indexed (the first char is 0)

	// Offset is the byte offset into the input.
	Offset int

	// Expected lists what the parser would have accepted at this position.
	Expected []string
}

// Error displays this error with all the relevant state information.
func (e *LexParseErr) Error() string {
	s := fmt.Sprintf("%s: `%s` @%d:%d", e.Err, e.Str, e.Row+1, e.Col+1)
	if len(e.Expected) > 0 {
		s += fmt.Sprintf(" (expected: %s)", strings.Join(e.Expected, ", "))
	}
	return s
}

// Unwrap returns the sentinel error so that errors.Is can match on it.
func (e *LexParseErr) Unwrap() error { return e.Err }
