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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/purpleidea/vizx/lang/interfaces"
	"github.com/purpleidea/vizx/layout"
	"github.com/purpleidea/vizx/util"
	"github.com/purpleidea/vizx/util/errwrap"
)

type fakeMetrics struct {
	totals    map[string]int
	errorful  int
	durations int
	ambiguous int
}

func (obj *fakeMetrics) UpdateRenderTotal(stage string, errorful bool) error {
	obj.totals[stage]++
	if errorful {
		obj.errorful++
	}
	return nil
}

func (obj *fakeMetrics) UpdateRenderDuration(d time.Duration) error {
	obj.durations++
	return nil
}

func (obj *fakeMetrics) UpdateAmbiguousTotal() error {
	obj.ambiguous++
	return nil
}

func testLang(t *testing.T) *Lang {
	return &Lang{
		Debug: testing.Verbose(),
		Logf: func(format string, v ...interface{}) {
			t.Logf("lang: "+format, v...)
		},
	}
}

func TestRender0(t *testing.T) {
	obj := testLang(t)
	var w, h float64
	obj.CanvasFunc = func(width, height float64) {
		w, h = width, height
	}
	result, err := obj.Render(`wire ↕ wire`)
	if err != nil {
		t.Fatalf("render failed with: %+v", err)
	}
	if result.Width != 220 || result.Height != 320 {
		t.Errorf("unexpected canvas: %g x %g", result.Width, result.Height)
	}
	if w != result.Width || h != result.Height {
		t.Errorf("the host was told: %g x %g", w, h)
	}
	if result.Root.Layout().Boundary == nil {
		t.Errorf("the root was not placed")
	}
	if result.Candidates != 1 || len(result.Warnings) != 0 {
		t.Errorf("unexpected ambiguity: %d %+v", result.Candidates, result.Warnings)
	}
}

func TestRenderScale0(t *testing.T) {
	obj := testLang(t)
	config, err := layout.NewConfig(layout.ExportScale)
	if err != nil {
		t.Fatalf("config failed with: %+v", err)
	}
	obj.Config = config
	result, err := obj.Render(`wire`)
	if err != nil {
		t.Fatalf("render failed with: %+v", err)
	}
	if result.Width != 1200 || result.Height != 1200 {
		t.Errorf("unexpected canvas: %g x %g", result.Width, result.Height)
	}
}

func TestRenderError0(t *testing.T) {
	type test struct { // an individual test
		name  string
		code  string
		goal  bool
		stage string
		err   error
	}
	testCases := []test{}

	testCases = append(testCases, test{
		name:  "unknown symbol",
		code:  `wire ⟷ ?`,
		stage: StageLex,
		err:   interfaces.ErrLexerUnrecognized,
	})
	testCases = append(testCases, test{
		name:  "missing angle",
		code:  `Z 1 1`,
		stage: StageParse,
		err:   interfaces.ErrParseError,
	})
	testCases = append(testCases, test{
		name:  "trailing input",
		code:  `wire wire`,
		stage: StageParse,
		err:   interfaces.ErrParseExpectedEOF,
	})
	testCases = append(testCases, test{
		name:  "printing all",
		code:  `@Z 1 1 0`,
		goal:  true,
		stage: StageCheck,
		err:   ErrPrintingAll,
	})
	testCases = append(testCases, test{
		name:  "not a diagram",
		code:  `forall n, n + 1 = S n`,
		goal:  true,
		stage: StageCheck,
		err:   ErrNotDiagram,
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			obj := testLang(t)
			obj.Goal = tc.goal
			_, err := obj.Render(tc.code)
			if err == nil {
				t.Errorf("test #%d: expected an error", index)
				return
			}
			var se *StageErr
			if !errors.As(err, &se) {
				t.Errorf("test #%d: not a stage error: %+v", index, err)
				return
			}
			if se.Stage != tc.stage {
				t.Errorf("test #%d: got stage: %s, exp: %s", index, se.Stage, tc.stage)
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("test #%d: unexpected error: %+v", index, err)
			}
		})
	}
}

func TestRenderGoal0(t *testing.T) {
	obj := testLang(t)
	obj.Goal = true
	result, err := obj.Render(`forall n m, n ⇑ wire ↕ m ⇑ wire`)
	if err != nil {
		t.Fatalf("render failed with: %+v", err)
	}
	if result.Qualifiers != "forall n m" {
		t.Errorf("unexpected qualifiers: %s", result.Qualifiers)
	}
	if result.Input != "n ⇑ wire ↕ m ⇑ wire" {
		t.Errorf("unexpected input: %s", result.Input)
	}
}

func TestRenderAll0(t *testing.T) {
	obj := testLang(t)
	results, err := obj.RenderAll([]string{`wire`, `Z 1 1`, `⟷`, `box`})
	if len(results) != 4 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0] == nil || results[3] == nil {
		t.Errorf("valid inputs did not render")
	}
	if results[1] != nil || results[2] != nil {
		t.Errorf("invalid inputs rendered")
	}
	if errs := errwrap.Errors(err); len(errs) != 2 {
		t.Errorf("expected two errors, got: %+v", err)
	}
	if !errors.Is(err, interfaces.ErrParseError) {
		t.Errorf("expected a parse error, got: %+v", err)
	}
}

func TestRenderMetrics0(t *testing.T) {
	m := &fakeMetrics{totals: make(map[string]int)}
	obj := testLang(t)
	obj.Metrics = m
	for _, code := range []string{`wire`, `Z 1 - 1 - 1 0`, `Z 1 1`, `wire ⟷ ?`} {
		obj.Render(code) // ignore the errors
	}
	if m.totals[StageDone] != 2 || m.totals[StageParse] != 1 || m.totals[StageLex] != 1 {
		t.Errorf("unexpected totals: %+v", m.totals)
	}
	if m.errorful != 2 || m.durations != 4 || m.ambiguous != 1 {
		t.Errorf("unexpected counts: %+v", m)
	}
}

func TestRenderJSON0(t *testing.T) {
	obj := testLang(t)
	result, err := obj.Render(`f(wire, 1) ⟷ wire`)
	if err != nil {
		t.Fatalf("render failed with: %+v", err)
	}
	b, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed with: %+v", err)
	}

	out := struct {
		Root struct {
			Kind     string                 `json:"kind"`
			HorLen   float64                `json:"hor_len"`
			Boundary map[string]interface{} `json:"boundary"`
			Left     struct {
				Kind  string        `json:"kind"`
				Slots []interface{} `json:"slots"`
			} `json:"left"`
		} `json:"root"`
		Width float64 `json:"width"`
	}{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal failed with: %+v", err)
	}
	if out.Root.Kind != "compose" || out.Root.Left.Kind != "function" {
		t.Errorf("unexpected kinds in: %s", b)
	}
	if len(out.Root.Left.Slots) != 2 {
		t.Errorf("unexpected slots in: %s", b)
	}
	if _, exists := out.Root.Boundary["tl"]; !exists || out.Root.HorLen == 0 {
		t.Errorf("missing layout in: %s", b)
	}
	if out.Width != result.Width {
		t.Errorf("unexpected width in: %s", b)
	}
}

func TestRenderJSON1(t *testing.T) {
	obj := testLang(t)
	result, err := obj.Render(`Z 1 - 1 - 1 0`)
	if err != nil {
		t.Fatalf("render failed with: %+v", err)
	}
	b, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed with: %+v", err)
	}

	out := struct {
		Candidates int      `json:"candidates"`
		Warnings   []string `json:"warnings"`
	}{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal failed with: %+v", err)
	}
	if out.Candidates != 2 || len(out.Warnings) != 1 {
		t.Fatalf("unexpected ambiguity in: %s", b)
	}
	if exp := "2 parses: "; !strings.Contains(out.Warnings[0], exp) {
		t.Errorf("unexpected warning: %s", out.Warnings[0])
	}

	result, err = obj.Render(`wire`)
	if err != nil {
		t.Fatalf("render failed with: %+v", err)
	}
	if b, err = json.Marshal(result); err != nil {
		t.Fatalf("marshal failed with: %+v", err)
	}
	if !strings.Contains(string(b), `"warnings":[]`) {
		t.Errorf("expected an empty warnings list in: %s", b)
	}
}
