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

// Package lang runs the diagram language pipeline from source text to a fully
// placed tree.
package lang

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/purpleidea/vizx/lang/ast"
	"github.com/purpleidea/vizx/lang/lexer"
	"github.com/purpleidea/vizx/lang/parser"
	"github.com/purpleidea/vizx/layout"
	"github.com/purpleidea/vizx/layout/geom"
	"github.com/purpleidea/vizx/util/errwrap"

	"github.com/davecgh/go-spew/spew"
	"github.com/sanity-io/litter"
)

// These are the names of the pipeline stages. A failure reports the stage it
// happened in.
const (
	StageCheck = "check"
	StageLex   = "lex"
	StageParse = "parse"
	StageSize  = "size"
	StagePlace = "place"

	// StageDone is what gets recorded for a render that succeeded.
	StageDone = "done"
)

// StageErr is the error returned by a failed render.
type StageErr struct {
	Stage string
	Err   error
}

// Error returns the stage and the underlying error.
func (obj *StageErr) Error() string {
	return fmt.Sprintf("%s: %s", obj.Stage, obj.Err)
}

// Unwrap returns the underlying error so that errors.Is and errors.As work.
func (obj *StageErr) Unwrap() error { return obj.Err }

// Metrics receives the outcome of every render. The prometheus package
// provides an implementation.
type Metrics interface {
	// UpdateRenderTotal counts a render that ended in stage.
	UpdateRenderTotal(stage string, errorful bool) error

	// UpdateRenderDuration records how long a render took.
	UpdateRenderDuration(d time.Duration) error

	// UpdateAmbiguousTotal counts an input with more than one parse.
	UpdateAmbiguousTotal() error
}

// Result is a rendered diagram. Its JSON encoding is what a renderer consumes.
type Result struct {
	// Input is the expression that was rendered, after any qualifiers
	// were removed.
	Input string `json:"input"`

	// Qualifiers are the binders that were removed from a goal.
	Qualifiers string `json:"qualifiers,omitempty"`

	Root   ast.Node `json:"root"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`

	// Candidates is the number of distinct parses of the input.
	Candidates int `json:"candidates"`

	// Warnings are non fatal problems, such as an ambiguous input. They are
	// encoded as a list of strings.
	Warnings []error `json:"-"`
}

// MarshalJSON encodes the result with its warnings as plain text.
func (obj *Result) MarshalJSON() ([]byte, error) {
	type alias Result
	warnings := []string{}
	for _, w := range obj.Warnings {
		warnings = append(warnings, w.Error())
	}
	return json.Marshal(&struct {
		*alias
		Warnings []string `json:"warnings"`
	}{
		alias:    (*alias)(obj),
		Warnings: warnings,
	})
}

// Lang is the main pipeline object. It is safe to reuse, but not concurrently
// if CanvasFunc or Logf are not.
type Lang struct {
	// Config holds the lengths to lay out with. If it is nil, the default
	// scale is used.
	Config *layout.Config

	// Goal treats every input as a goal printed by a proof assistant, which
	// may start with binders and must not use the fully explicit printing
	// mode.
	Goal bool

	// CanvasFunc, if set, is told the size of the canvas before the tree
	// is placed on it.
	CanvasFunc func(width, height float64)

	// Metrics, if set, is told about every render.
	Metrics Metrics

	Debug bool
	Logf  func(format string, v ...interface{})
}

func (obj *Lang) logf(format string, v ...interface{}) {
	if obj.Logf == nil {
		return
	}
	obj.Logf(format, v...)
}

// Render lexes, parses, sizes and places a single expression.
func (obj *Lang) Render(input string) (*Result, error) {
	start := time.Now()
	result, err := obj.render(input)

	if obj.Metrics != nil {
		stage, errorful := StageDone, err != nil
		if e, ok := err.(*StageErr); ok {
			stage = e.Stage
		}
		if err := obj.Metrics.UpdateRenderTotal(stage, errorful); err != nil {
			obj.logf("metrics: %+v", err)
		}
		if err := obj.Metrics.UpdateRenderDuration(time.Since(start)); err != nil {
			obj.logf("metrics: %+v", err)
		}
		if result != nil && result.Candidates > 1 {
			if err := obj.Metrics.UpdateAmbiguousTotal(); err != nil {
				obj.logf("metrics: %+v", err)
			}
		}
	}
	return result, err
}

func (obj *Lang) render(input string) (*Result, error) {
	config := obj.Config
	if config == nil {
		config = layout.Default()
	}

	result := &Result{Input: input}
	if obj.Goal {
		qualifiers, rest, err := CheckGoal(input)
		if err != nil {
			return nil, &StageErr{Stage: StageCheck, Err: err}
		}
		result.Qualifiers, result.Input = qualifiers, rest
	}

	tokens, err := lexer.Lex(result.Input)
	if err != nil {
		return nil, &StageErr{Stage: StageLex, Err: err}
	}
	if obj.Debug {
		obj.logf("tokens: %s", spew.Sdump(tokens))
	}

	parsed, err := parser.Parse(tokens)
	if err != nil {
		return nil, &StageErr{Stage: StageParse, Err: err}
	}
	for _, w := range parsed.Warnings {
		obj.logf("warning: %s", w)
	}
	result.Root = parsed.Root
	result.Candidates = parsed.Candidates
	result.Warnings = parsed.Warnings
	if obj.Debug {
		opts := litter.Options{HidePrivateFields: true}
		obj.logf("behold, the AST: %s", opts.Sdump(result.Root))
	}

	if err := config.Size(result.Root); err != nil {
		return nil, &StageErr{Stage: StageSize, Err: err}
	}

	result.Width, result.Height, err = config.Canvas(result.Root)
	if err != nil {
		return nil, &StageErr{Stage: StagePlace, Err: err}
	}
	if obj.CanvasFunc != nil {
		obj.CanvasFunc(result.Width, result.Height)
	}

	canvas := geom.Rect(0, 0, result.Width, result.Height)
	if err := config.Place(result.Root, canvas); err != nil {
		return nil, &StageErr{Stage: StagePlace, Err: err}
	}
	return result, nil
}

// RenderAll renders every input. It returns one result per input, which is nil
// for each input that failed, along with all of the errors combined.
func (obj *Lang) RenderAll(inputs []string) ([]*Result, error) {
	results := []*Result{}
	var reterr error
	for i, input := range inputs {
		result, err := obj.Render(input)
		if err != nil {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(err, "input #%d", i))
		}
		results = append(results, result)
	}
	return results, reterr
}
