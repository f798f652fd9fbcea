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

package lexer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/purpleidea/vizx/lang/interfaces"
	"github.com/purpleidea/vizx/util"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/pretty"
)

func TestLex0(t *testing.T) {
	type test struct { // an individual test
		name  string
		code  string
		fail  bool
		kinds []Kind
		texts []string // optional, checked when not nil
	}
	testCases := []test{}
	// NOTE: to run an individual test, first run: `go test -v` to list the
	// names, and then run `go test -run <pattern>` with the name(s) to run.

	testCases = append(testCases, test{
		name:  "empty",
		code:  ``,
		kinds: []Kind{},
	})
	testCases = append(testCases, test{
		name:  "only whitespace",
		code:  " \t\n ",
		kinds: []Kind{},
	})
	testCases = append(testCases, test{
		name:  "wire word",
		code:  `wire`,
		kinds: []Kind{KindWire},
		texts: []string{"wire"},
	})
	testCases = append(testCases, test{
		name:  "wire glyph",
		code:  `—`,
		kinds: []Kind{KindWire},
	})
	testCases = append(testCases, test{
		name:  "longer identifier beats reserved word",
		code:  `wires`,
		kinds: []Kind{KindIdent},
		texts: []string{"wires"},
	})
	testCases = append(testCases, test{
		name:  "spider",
		code:  `Z 1 1 0`,
		kinds: []Kind{KindZ, KindNumber, KindNumber, KindNumber},
		texts: []string{"Z", "1", "1", "0"},
	})
	testCases = append(testCases, test{
		name:  "spider with greek angle",
		code:  `X 2 3 α`,
		kinds: []Kind{KindX, KindNumber, KindNumber, KindIdent},
	})
	testCases = append(testCases, test{
		name:  "z is not an identifier start",
		code:  `Zeta`,
		kinds: []Kind{KindZ, KindIdent},
		texts: []string{"Z", "eta"},
	})
	testCases = append(testCases, test{
		name:  "stack",
		code:  `wire ↕ wire`,
		kinds: []Kind{KindWire, KindStack, KindWire},
	})
	testCases = append(testCases, test{
		name:  "compose without spaces",
		code:  `□⟷⊂`,
		kinds: []Kind{KindBox, KindCompose, KindCap},
	})
	testCases = append(testCases, test{
		name:  "nstack",
		code:  `2 ⇑ wire`,
		kinds: []Kind{KindNumber, KindNStack, KindWire},
	})
	testCases = append(testCases, test{
		name:  "nstack1",
		code:  `n ↑ swap`,
		kinds: []Kind{KindIdent, KindNStack1, KindSwap},
	})
	testCases = append(testCases, test{
		name:  "cast",
		code:  `$2,2::: X 1 1 0$`,
		kinds: []Kind{KindCast, KindNumber, KindComma, KindNumber, KindCastOf, KindX, KindNumber, KindNumber, KindNumber, KindCast},
	})
	testCases = append(testCases, test{
		name:  "reserved words",
		code:  `R0 R1 PI n_wire`,
		kinds: []Kind{KindR0, KindR1, KindPI, KindNWire},
	})
	testCases = append(testCases, test{
		name:  "reserved word prefix of identifier",
		code:  `R0x n_wires PIE`,
		kinds: []Kind{KindIdent, KindIdent, KindIdent},
	})
	testCases = append(testCases, test{
		name:  "successor",
		code:  `S n`,
		kinds: []Kind{KindSucc, KindIdent},
		texts: []string{"S ", "n"},
	})
	testCases = append(testCases, test{
		name:  "successor needs whitespace",
		code:  `Sn`,
		kinds: []Kind{KindIdent},
	})
	testCases = append(testCases, test{
		name:  "arithmetic",
		code:  `(a+b)*c/d-√2^e`,
		kinds: []Kind{KindLParen, KindIdent, KindAdd, KindIdent, KindRParen, KindMul, KindIdent, KindDiv, KindIdent, KindSub, KindRoot, KindNumber, KindExp, KindIdent},
	})
	testCases = append(testCases, test{
		name:  "scale glyph beats multiply",
		code:  `2 .* wire`,
		kinds: []Kind{KindNumber, KindScale, KindWire},
	})
	testCases = append(testCases, test{
		name:  "transforms",
		code:  `⊙ wire ⊤ † ⊼ ⥍`,
		kinds: []Kind{KindColorSwap, KindWire, KindTranspose, KindAdjoint, KindConjugate, KindFlip},
	})
	testCases = append(testCases, test{
		name:  "relations",
		code:  `a ∝= b = c`,
		kinds: []Kind{KindIdent, KindPropTo, KindEq, KindIdent, KindEq, KindIdent},
	})
	testCases = append(testCases, test{
		name:  "primes and underscores",
		code:  `f' g_1`,
		kinds: []Kind{KindIdent, KindIdent},
		texts: []string{"f'", "g_1"},
	})
	testCases = append(testCases, test{
		name: "unrecognized",
		code: `wire # wire`,
		fail: true,
	})
	testCases = append(testCases, test{
		name: "lone dot",
		code: `.`,
		fail: true,
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if tc.name == "" {
			t.Errorf("test #%d: not named", index)
			continue
		}
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			code, fail, kinds, texts := tc.code, tc.fail, tc.kinds, tc.texts

			tokens, err := Lex(code)
			if !fail && err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: lex failed with: %+v", index, err)
				return
			}
			if fail && err == nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: lex expected error, not nil", index)
				t.Logf("test #%d: tokens: %s", index, spew.Sdump(tokens))
				return
			}
			if fail {
				if !errors.Is(err, interfaces.ErrLexerUnrecognized) {
					t.Errorf("test #%d: FAIL", index)
					t.Errorf("test #%d: unexpected error: %+v", index, err)
				}
				return
			}

			if n := len(tokens); n == 0 || tokens[n-1].Kind != KindEOF {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: missing EOF token", index)
				return
			}
			tokens = tokens[:len(tokens)-1]

			got := []Kind{}
			for _, tok := range tokens {
				got = append(got, tok.Kind)
			}
			if !reflect.DeepEqual(got, kinds) {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: kinds did not match expected", index)
				t.Logf("test #%d: diff:\n%s", index, pretty.Compare(got, kinds))
				return
			}

			if texts == nil {
				return
			}
			gotTexts := []string{}
			for _, tok := range tokens {
				gotTexts = append(gotTexts, tok.Text)
			}
			if diff := pretty.Compare(gotTexts, texts); diff != "" {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: texts did not match expected", index)
				t.Logf("test #%d: diff:\n%s", index, diff)
			}
		})
	}
}

// TestLexReconstruct checks that joining the token texts gives back the input
// with the whitespace removed.
func TestLexReconstruct(t *testing.T) {
	inputs := []string{
		`wire`,
		`Z 1 1 0`,
		`wire ↕ wire`,
		`3 ⇑ Z 1 1 0 ⟷ wire`,
		`$ 2 , 2 ::: X 1 1 (α + β) $`,
		`⊙ ⊙ (f 1 2 ⟷ g(x, y)) †`,
		`S n_wire ∝ n_wire (S n)`,
		"Z\t1\n1  √2",
	}
	for index, input := range inputs {
		tokens, err := Lex(input)
		if err != nil {
			t.Errorf("test #%d: lex failed with: %+v", index, err)
			continue
		}
		result := &strings.Builder{}
		for _, tok := range tokens {
			start, end := tok.Offsets()
			if input[start:end] != tok.Text {
				t.Errorf("test #%d: span %d:%d does not hold %q", index, start, end, tok.Text)
			}
			result.WriteString(tok.Text)
		}
		if got, exp := stripWhitespace(result.String()), stripWhitespace(input); got != exp {
			t.Errorf("test #%d: got %q, expected %q", index, got, exp)
		}
	}
}

func TestLexPosition0(t *testing.T) {
	tokens, err := Lex("wire ↕\n  Z 1 1 0")
	if err != nil {
		t.Fatalf("lex failed with: %+v", err)
	}
	// the glyph is one rune wide even though it takes three bytes
	if line, col := tokens[1].Pos(); line != 0 || col != 5 {
		t.Errorf("unexpected stack position: %d:%d", line, col)
	}
	if line, col := tokens[1].End(); line != 0 || col != 6 {
		t.Errorf("unexpected stack end: %d:%d", line, col)
	}
	if line, col := tokens[2].Pos(); line != 1 || col != 2 {
		t.Errorf("unexpected spider position: %d:%d", line, col)
	}
	eof := tokens[len(tokens)-1]
	if line, col := eof.Pos(); line != 1 || col != 9 {
		t.Errorf("unexpected eof position: %d:%d", line, col)
	}
}

func TestLexError0(t *testing.T) {
	_, err := Lex("wire ⟷ ?")
	lpe := &interfaces.LexParseErr{}
	if !errors.As(err, &lpe) {
		t.Fatalf("expected a positioned error, got: %+v", err)
	}
	if lpe.Str != "?" || lpe.Row != 0 || lpe.Col != 7 {
		t.Errorf("unexpected error position: %+v", lpe)
	}
}

func TestHighlightText0(t *testing.T) {
	source := "wire ⟷ Z 1 1"
	tokens, err := Lex(source)
	if err != nil {
		t.Fatalf("lex failed with: %+v", err)
	}
	exp := "wire ⟷ Z 1 1\n       ^\n"
	if s := tokens[2].HighlightText(source); s != exp {
		t.Errorf("unexpected highlight:\n%s", s)
	}
	eof := tokens[len(tokens)-1]
	exp = "wire ⟷ Z 1 1\n            ^\n"
	if s := eof.HighlightText(source); s != exp {
		t.Errorf("unexpected eof highlight:\n%s", s)
	}
}

func TestErrorArea0(t *testing.T) {
	source := "wire ⟷\n  ? box"
	_, err := Lex(source)
	var lpe *interfaces.LexParseErr
	if !errors.As(err, &lpe) {
		t.Fatalf("expected a positioned error, got: %+v", err)
	}
	exp := "  ? box\n  ^\n"
	if s := ErrorArea(lpe).HighlightText(source); s != exp {
		t.Errorf("unexpected highlight:\n%s", s)
	}

	eof := &interfaces.LexParseErr{Err: interfaces.ErrParseError, Str: interfaces.EOF, Col: 4}
	exp = "wire\n    ^\n"
	if s := ErrorArea(eof).HighlightText("wire"); s != exp {
		t.Errorf("unexpected eof highlight:\n%s", s)
	}
}

// stripWhitespace removes every unicode whitespace character from the string.
func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
