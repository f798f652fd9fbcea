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

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	cliUtil "github.com/purpleidea/vizx/cli/util"
	"github.com/purpleidea/vizx/lang"
	"github.com/purpleidea/vizx/lang/interfaces"
	"github.com/purpleidea/vizx/lang/lexer"
	"github.com/purpleidea/vizx/lang/parser"
	"github.com/purpleidea/vizx/util"

	"github.com/sanity-io/litter"
	"github.com/spf13/afero"
)

// goalInput reads the input and strips the binders off a goal.
func (obj *env) goalInput(args *cliUtil.InputArgs) (string, error) {
	input, err := obj.readInput(args.Input)
	if err != nil {
		return "", err
	}
	if !args.Goal && !obj.config.Goal {
		return input, nil
	}
	qualifiers, input, err := lang.CheckGoal(input)
	if err != nil {
		return "", err
	}
	if qualifiers != "" {
		obj.Logf("qualifiers: %s", qualifiers)
	}
	return input, nil
}

// highlight logs the offending part of the input for a positioned error.
func (obj *env) highlight(input string, err error) {
	var lpe *interfaces.LexParseErr
	if !errors.As(err, &lpe) {
		return
	}
	if s := lexer.ErrorArea(lpe).HighlightText(input); s != "" {
		obj.Logf("error at:\n%s", util.Indent(s))
	}
}

// runLex prints one token per line with its position.
func runLex(ctx context.Context, e *env, args *cliUtil.LexArgs) error {
	input, err := e.goalInput(&args.InputArgs)
	if err != nil {
		return err
	}
	tokens, err := lexer.Lex(input)
	if err != nil {
		e.highlight(input, err)
		return err
	}
	for _, tok := range tokens {
		row, col := tok.Pos()
		pos := fmt.Sprintf("%d:%d", row+1, col+1)
		fmt.Fprintf(e.data.Stdout, "%s %s\n", util.RightPad(pos, 7), tok)
	}
	return nil
}

// runParse prints the canonical form of the tree, or all of it with --dump.
func runParse(ctx context.Context, e *env, args *cliUtil.ParseArgs) error {
	input, err := e.goalInput(&args.InputArgs)
	if err != nil {
		return err
	}
	result, err := parser.LexParse(input)
	if err != nil {
		e.highlight(input, err)
		return err
	}
	for _, w := range result.Warnings {
		e.Logf("warning: %s", w)
	}
	if args.Dump {
		opts := litter.Options{HidePrivateFields: true}
		fmt.Fprintf(e.data.Stdout, "%s\n", opts.Sdump(result.Root))
		return nil
	}
	if args.Tree {
		g, err := lang.Graph("diagram", result.Root)
		if err != nil {
			return err
		}
		s, err := lang.Tree(g)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(e.data.Stdout, s)
		return err
	}
	fmt.Fprintf(e.data.Stdout, "%s\n", result.Root)
	return nil
}

// runRender prints the laid out tree as json.
func runRender(ctx context.Context, e *env, args *cliUtil.RenderArgs) error {
	input, err := e.readInput(args.Input)
	if err != nil {
		return err
	}
	l, err := e.lang(args.Goal, args.Export)
	if err != nil {
		return err
	}
	result, err := l.Render(input)
	if err != nil {
		if args.Goal || e.config.Goal {
			_, input = lang.StripQualifiers(input)
		}
		e.highlight(input, err)
		return err
	}
	b, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	if args.Output == "" {
		_, err := e.data.Stdout.Write(b)
		return err
	}
	output, err := util.ExpandHome(args.Output)
	if err != nil {
		return err
	}
	e.Logf("writing %g x %g canvas to: %s", result.Width, result.Height, output)
	return afero.WriteFile(e.fs, output, b, 0644)
}

// runDot prints the parsed tree as a graphviz graph, or runs a graphviz program
// on it.
func runDot(ctx context.Context, e *env, args *cliUtil.DotArgs) error {
	input, err := e.goalInput(&args.InputArgs)
	if err != nil {
		return err
	}
	result, err := parser.LexParse(input)
	if err != nil {
		e.highlight(input, err)
		return err
	}
	g, err := lang.Graph("diagram", result.Root)
	if err != nil {
		return err
	}

	if args.Program != "" {
		if args.Output == "" {
			return fmt.Errorf("a graphviz program needs an output file")
		}
		e.Logf("running %s on: %s", args.Program, args.Output)
		return g.ExecGraphviz(args.Program, args.Output)
	}
	if args.Output != "" {
		return afero.WriteFile(e.fs, args.Output, []byte(g.Graphviz()), 0644)
	}
	_, err = fmt.Fprint(e.data.Stdout, g.Graphviz())
	return err
}
