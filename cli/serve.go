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

	cliUtil "github.com/purpleidea/vizx/cli/util"
	"github.com/purpleidea/vizx/lang"
	"github.com/purpleidea/vizx/layout"
	"github.com/purpleidea/vizx/prometheus"
	"github.com/purpleidea/vizx/server"
	"github.com/purpleidea/vizx/util/errwrap"
)

// runServe serves the pipeline until the context closes.
func runServe(ctx context.Context, e *env, args *cliUtil.ServeArgs) error {
	scale := e.config.Scale
	if scale == 0 {
		scale = layout.DefaultScale
	}
	config, err := layout.NewConfig(scale)
	if err != nil {
		return err
	}

	listen := args.Listen
	if listen == "" {
		listen = e.config.Listen
	}
	obj := &server.Server{
		Listen: listen,
		Config: config,
		Debug:  e.data.Flags.Debug,
		Logf: func(format string, v ...interface{}) {
			e.Logf("server: "+format, v...)
		},
	}

	if args.Prometheus || e.config.Prometheus {
		promListen := args.PrometheusListen
		if promListen == "" {
			promListen = e.config.PrometheusListen
		}
		prom := &prometheus.Prometheus{
			Listen: promListen,
			Stages: []string{
				lang.StageCheck,
				lang.StageLex,
				lang.StageParse,
				lang.StageSize,
				lang.StagePlace,
				lang.StageDone,
			},
		}
		if err := prom.Init(); err != nil {
			return errwrap.Wrapf(err, "can't initialize prometheus instance")
		}
		e.Logf("prometheus: starting instance on %s", prom.Listen)
		if err := prom.Start(); err != nil {
			return errwrap.Wrapf(err, "can't start prometheus instance")
		}
		defer func() {
			e.Logf("prometheus: stopping instance")
			if err := prom.Stop(); err != nil {
				e.Logf("prometheus: %+v", err)
			}
		}()
		obj.Metrics = prom
	}

	if err := obj.Init(); err != nil {
		return err
	}

	cliUtil.Hello(e.data.Stdout, e.data.Program, e.data.Version, e.data.Flags) // say hello!
	defer e.Logf("goodbye!")

	return obj.Run(ctx)
}
