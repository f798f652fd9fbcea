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

package interfaces

import (
	"errors"
	"testing"

	"github.com/purpleidea/vizx/util/errwrap"
)

func TestLexParseErr0(t *testing.T) {
	err := &LexParseErr{
		Err:      ErrParseError,
		Str:      EOF,
		Row:      0,
		Col:      5,
		Expected: []string{"RealNum"},
	}
	exp := "parser: `end of input` @1:6 (expected: RealNum)"
	if s := err.Error(); s != exp {
		t.Errorf("got: %s", s)
		t.Errorf("exp: %s", exp)
	}
}

func TestLexParseErr1(t *testing.T) {
	var err error = &LexParseErr{
		Err: ErrLexerUnrecognized,
		Str: "#",
	}
	wrapped := errwrap.Wrapf(err, "lex")
	if !errors.Is(wrapped, ErrLexerUnrecognized) {
		t.Errorf("expected the sentinel to match")
	}
	if errors.Is(wrapped, ErrParseError) {
		t.Errorf("did not expect the parse sentinel to match")
	}
	var lpe *LexParseErr
	if !errors.As(wrapped, &lpe) || lpe.Str != "#" {
		t.Errorf("expected to recover the positioned error")
	}
}
