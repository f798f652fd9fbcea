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

package lang

import (
	"regexp"
	"strings"

	"github.com/purpleidea/vizx/lang/lexer"
	"github.com/purpleidea/vizx/util"
)

// ErrPrintingAll is returned for a goal that was printed with every implicit
// argument shown, which can't be read as a diagram.
const ErrPrintingAll = util.Error("goal was printed with all implicit arguments, disable Set Printing All")

// ErrNotDiagram is returned for a goal that holds no diagram operators.
const ErrNotDiagram = util.Error("goal is not a diagram")

// qualifiers matches as many leading binders as possible. Each binder is a
// quantifier, some variables and a comma.
var qualifiers = regexp.MustCompile(`^((?:forall|exists|∀|∃)\s+.+?,\s*)+`)

// StripQualifiers splits the leading binders off a goal, so that `forall x,
// exists y, D` becomes `forall x, exists y` and `D`. The trailing comma of the
// binders is dropped.
func StripQualifiers(goal string) (string, string) {
	loc := qualifiers.FindStringIndex(goal)
	if loc == nil {
		return "", strings.TrimSpace(goal)
	}
	binders := strings.TrimSpace(goal[:loc[1]])
	binders = strings.TrimSuffix(binders, ",")
	return binders, strings.TrimSpace(goal[loc[1]:])
}

// operators are the symbols of which at least one appears in any diagram.
var operators = []string{
	"Z",
	"X",
	lexer.GlyphNStack,
	lexer.GlyphCompose,
	lexer.GlyphStack,
	lexer.GlyphNStack1,
	lexer.GlyphPropTo,
	lexer.GlyphCap,
	lexer.GlyphCup,
	lexer.GlyphWire,
	lexer.GlyphBox,
	lexer.GlyphSwap,
	lexer.GlyphEmpty,
	lexer.GlyphTranspose,
	lexer.GlyphConjugate,
	lexer.GlyphAdjoint,
	lexer.GlyphColorSwap,
	lexer.GlyphFlip,
}

// IsPotentiallyValid is a cheap filter for goals that can't be diagrams. It
// returns false for the empty string, for a semantic evaluation, and for a
// string that contains none of the diagram operators.
func IsPotentiallyValid(goal string) bool {
	if goal == "" || strings.Contains(goal, "⟧") {
		return false
	}
	for _, op := range operators {
		if strings.Contains(goal, op) {
			return true
		}
	}
	return false
}

// CheckPrintingAll errors if the goal was printed in the fully explicit mode.
func CheckPrintingAll(goal string) error {
	if strings.Contains(goal, "@") {
		return ErrPrintingAll
	}
	return nil
}

// CheckGoal runs every goal precheck and splits off the binders. It returns the
// binders and the diagram that follows them.
func CheckGoal(goal string) (string, string, error) {
	if err := CheckPrintingAll(goal); err != nil {
		return "", "", err
	}
	qualifiers, rest := StripQualifiers(goal)
	if !IsPotentiallyValid(rest) {
		return "", "", ErrNotDiagram
	}
	return qualifiers, rest, nil
}
