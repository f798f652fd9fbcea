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

// Package cli handles all of the core command line parsing. It's the first
// entry point after the real main function, and it runs the diagram pipeline.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	cliUtil "github.com/purpleidea/vizx/cli/util"
	"github.com/purpleidea/vizx/lang"
	"github.com/purpleidea/vizx/layout"
	"github.com/purpleidea/vizx/util"
	"github.com/purpleidea/vizx/util/errwrap"

	"github.com/alexflint/go-arg"
	"github.com/spf13/afero"
)

// CLI is the entry point for using vizx normally from the CLI.
func CLI(ctx context.Context, data *cliUtil.Data) error {
	// test for sanity
	if data == nil {
		return fmt.Errorf("this CLI was not run correctly")
	}
	if data.Program == "" || data.Version == "" {
		return fmt.Errorf("program was not compiled correctly")
	}
	if data.Copying == "" {
		return fmt.Errorf("program copyrights were removed, can't run")
	}
	if data.Stdin == nil {
		data.Stdin = os.Stdin
	}
	if data.Stdout == nil {
		data.Stdout = os.Stdout
	}
	if data.Flags.Logf == nil {
		data.Flags.Logf = func(format string, v ...interface{}) {} // noop
	}

	args := Args{}
	args.version = data.Version // copy this in
	args.description = data.Tagline

	config := arg.Config{
		Program: data.Program,
	}
	parser, err := arg.NewParser(config, &args)
	if err != nil {
		// programming error
		return errwrap.Wrapf(err, "cli config error")
	}
	err = parser.Parse(data.Args[1:]) // args[0] needs to be dropped
	if err == arg.ErrHelp {
		parser.WriteHelp(data.Stdout)
		return nil
	}
	if err == arg.ErrVersion {
		fmt.Fprintf(data.Stdout, "%s\n", data.Version) // byon: bring your own newline
		return nil
	}
	if err != nil {
		return cliUtil.CliParseError(err) // consistent errors
	}

	// display the license
	if args.License {
		fmt.Fprintf(data.Stdout, "%s", data.Copying) // file comes with a trailing nl
		return nil
	}

	if data.Flags.Debug {
		args.Debug = true
	}
	if args.Debug {
		data.Flags.Debug = true
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// install the exit signal handler
	wg := &sync.WaitGroup{}
	defer wg.Wait()
	exit := make(chan struct{})
	defer close(exit)
	wg.Add(1)
	go func() {
		defer wg.Done()
		// must have buffer for max number of signals
		signals := make(chan os.Signal, 1+1) // 1 * ^C + 1 * SIGTERM
		signal.Notify(signals, os.Interrupt) // catch ^C
		signal.Notify(signals, syscall.SIGTERM)
		defer signal.Stop(signals)
		select {
		case sig := <-signals: // any signal will do
			if sig == os.Interrupt {
				data.Flags.Logf("interrupted by ^C")
			} else {
				data.Flags.Logf("interrupted by signal")
			}
			cancel()
		case <-exit:
		}
	}()

	if ok, err := args.Run(ctx, data); err != nil {
		return err
	} else if ok { // did we activate one of the commands?
		return nil
	}

	// print help if no subcommands are set
	parser.WriteHelp(data.Stdout)

	return nil
}

// Args is the CLI parsing structure and type of the parsed result. This
// particular struct is the top-most one.
type Args struct {
	License bool `arg:"--license" help:"display the license and exit"`

	Debug bool `arg:"--debug" help:"add additional log messages"`

	// Config is a yaml file with the defaults for any of the flags below.
	Config string `arg:"--config,env:VIZX_CONFIG" help:"path to a yaml config file"`

	// Scale is the side of a single generator. Zero means the value from
	// the config, or the default.
	Scale float64 `arg:"--scale,env:VIZX_SCALE" help:"side of a single generator"`

	LexCmd *cliUtil.LexArgs `arg:"subcommand:lex" help:"print the tokens of a diagram"`

	ParseCmd *cliUtil.ParseArgs `arg:"subcommand:parse" help:"print the parsed tree of a diagram"`

	RenderCmd *cliUtil.RenderArgs `arg:"subcommand:render" help:"lay out a diagram and print it as json"`

	DotCmd *cliUtil.DotArgs `arg:"subcommand:dot" help:"print the parsed tree of a diagram as a graphviz graph"`

	WatchCmd *cliUtil.WatchArgs `arg:"subcommand:watch" help:"render files every time they change"`

	ServeCmd *cliUtil.ServeArgs `arg:"subcommand:serve" help:"serve the pipeline over http"`

	// version is a private handle for our version string.
	version string `arg:"-"` // ignored from parsing

	// description is a private handle for our description string.
	description string `arg:"-"` // ignored from parsing
}

// Version returns the version string. Implementing this signature is part of
// the API for the cli library.
func (obj *Args) Version() string {
	return obj.version
}

// Description returns a description string. Implementing this signature is part
// of the API for the cli library.
func (obj *Args) Description() string {
	return obj.description
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not. This information is used so that the top-level parser can return
// usage or help information if no subcommand activates.
func (obj *Args) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	fs := data.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	config, err := obj.config(fs)
	if err != nil {
		return false, err
	}

	var name string
	var fn func(context.Context, *env) error
	if cmd := obj.LexCmd; cmd != nil {
		name = cliUtil.LookupSubcommand(obj, cmd) // "lex"
		fn = func(ctx context.Context, e *env) error { return runLex(ctx, e, cmd) }
	}
	if cmd := obj.ParseCmd; cmd != nil {
		name = cliUtil.LookupSubcommand(obj, cmd) // "parse"
		fn = func(ctx context.Context, e *env) error { return runParse(ctx, e, cmd) }
	}
	if cmd := obj.RenderCmd; cmd != nil {
		name = cliUtil.LookupSubcommand(obj, cmd) // "render"
		fn = func(ctx context.Context, e *env) error { return runRender(ctx, e, cmd) }
	}
	if cmd := obj.DotCmd; cmd != nil {
		name = cliUtil.LookupSubcommand(obj, cmd) // "dot"
		fn = func(ctx context.Context, e *env) error { return runDot(ctx, e, cmd) }
	}
	if cmd := obj.WatchCmd; cmd != nil {
		name = cliUtil.LookupSubcommand(obj, cmd) // "watch"
		fn = func(ctx context.Context, e *env) error { return runWatch(ctx, e, cmd) }
	}
	if cmd := obj.ServeCmd; cmd != nil {
		name = cliUtil.LookupSubcommand(obj, cmd) // "serve"
		fn = func(ctx context.Context, e *env) error { return runServe(ctx, e, cmd) }
	}
	if fn == nil {
		return false, nil // nobody activated
	}

	e := &env{
		data:   data,
		fs:     fs,
		config: config,
		Logf: func(format string, v ...interface{}) {
			data.Flags.Logf(name+": "+format, v...)
		},
	}
	if err := fn(ctx, e); err != nil {
		return false, errwrap.Wrapf(err, "%s failed", name)
	}
	return true, nil
}

// config loads the config file if there is one, and applies the flags on top.
func (obj *Args) config(fs afero.Fs) (*Config, error) {
	config := &Config{}
	if obj.Config != "" {
		path, err := util.ExpandHome(obj.Config)
		if err != nil {
			return nil, err
		}
		if config, err = ParseConfig(fs, path); err != nil {
			return nil, err
		}
	}
	if obj.Scale != 0 {
		config.Scale = obj.Scale
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// env is what every subcommand runs with.
type env struct {
	data   *cliUtil.Data
	fs     afero.Fs
	config *Config

	Logf func(format string, v ...interface{})
}

// lang builds the pipeline for the chosen scale.
func (obj *env) lang(goal, export bool) (*lang.Lang, error) {
	scale := obj.config.Scale
	if export {
		scale = layout.ExportScale
	}
	if scale == 0 {
		scale = layout.DefaultScale
	}
	config, err := layout.NewConfig(scale)
	if err != nil {
		return nil, err
	}
	return &lang.Lang{
		Config: config,
		Goal:   goal || obj.config.Goal,
		Debug:  obj.data.Flags.Debug,
		Logf: func(format string, v ...interface{}) {
			obj.Logf("lang: "+format, v...)
		},
	}, nil
}
