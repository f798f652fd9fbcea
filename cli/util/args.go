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

package util

import (
	"reflect"
	"strings"
)

// LookupSubcommand returns the name of the subcommand in the obj, of a struct.
// This is useful for determining the name of the subcommand that was activated.
// It returns an empty string if a specific name was not found.
func LookupSubcommand(obj interface{}, st interface{}) string {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr { // max one de-referencing
		val = val.Elem()
	}

	v := reflect.ValueOf(st) // value of the struct
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := val.Field(i) // value of the field
		if !f.CanInterface() || f.Interface() != v.Interface() {
			continue
		}

		field := typ.Field(i)
		alias, ok := field.Tag.Lookup("arg")
		if !ok {
			continue
		}

		prefix := "subcommand"
		split := strings.Split(strings.Split(alias, ",")[0], ":")
		if len(split) != 2 || split[0] != prefix {
			continue
		}

		return split[1] // found
	}
	return "" // not found
}

// InputArgs is the common part of every subcommand that reads a diagram.
type InputArgs struct {
	// Input is the diagram code, a file path, or - to read stdin.
	Input string `arg:"positional" help:"diagram code, file path, or - for stdin"`

	Goal bool `arg:"--goal" help:"treat the input as a printed goal with leading binders"`
}

// LexArgs is the lex CLI parsing structure and type of the parsed result.
type LexArgs struct {
	InputArgs
}

// ParseArgs is the parse CLI parsing structure and type of the parsed result.
type ParseArgs struct {
	InputArgs

	Dump bool `arg:"--dump" help:"dump the whole tree instead of the canonical form"`

	Tree bool `arg:"--tree" help:"print the tree as an indented outline"`
}

// RenderArgs is the render CLI parsing structure and type of the parsed
// result.
type RenderArgs struct {
	InputArgs

	Export bool `arg:"--export" help:"lay out at the export scale"`

	Output string `arg:"--output,-o" help:"write the json to this file instead of stdout"`
}

// DotArgs is the dot CLI parsing structure and type of the parsed result.
type DotArgs struct {
	InputArgs

	// Program is the graphviz filter to run on the output. If it is empty,
	// the dot source is printed.
	Program string `arg:"--program" help:"graphviz program to render the output file with"`

	Output string `arg:"--output,-o" help:"write the graph to this file"`
}

// WatchArgs is the watch CLI parsing structure and type of the parsed result.
type WatchArgs struct {
	Paths []string `arg:"positional,required" help:"files to render on every change"`

	Goal bool `arg:"--goal" help:"treat every file as a printed goal with leading binders"`

	// Limit is the most renders per second, and Burst is how many can
	// happen at once before the limit kicks in.
	Limit float64 `arg:"--limit" default:"4" help:"max renders per second"`
	Burst int     `arg:"--burst" default:"1" help:"max renders at once"`
}

// ServeArgs is the serve CLI parsing structure and type of the parsed result.
type ServeArgs struct {
	Listen string `arg:"--listen" help:"address to serve the api on"`

	Prometheus       bool   `arg:"--prometheus" help:"start a prometheus instance"`
	PrometheusListen string `arg:"--prometheus-listen" help:"specify prometheus instance binding"`
}
