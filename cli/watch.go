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
	"fmt"
	"path/filepath"
	"strings"

	cliUtil "github.com/purpleidea/vizx/cli/util"
	"github.com/purpleidea/vizx/util"
	"github.com/purpleidea/vizx/util/recwatch"

	"github.com/spf13/afero"
	"golang.org/x/time/rate"
)

// runWatch renders every file once, and then again every time it changes. A
// file that fails to render is reported and doesn't stop the watch.
func runWatch(ctx context.Context, e *env, args *cliUtil.WatchArgs) error {
	limit := rate.Limit(args.Limit)
	if args.Limit <= 0 {
		limit = rate.Inf // defaults to no limit
	}
	if args.Burst == 0 && limit != rate.Inf { // blocked
		return fmt.Errorf("permanently limited (rate != Inf, burst = 0)")
	}
	limiter := rate.NewLimiter(limit, args.Burst)

	l, err := e.lang(args.Goal, false)
	if err != nil {
		return err
	}

	render := func(path string) {
		b, err := afero.ReadFile(e.fs, path)
		if err != nil {
			e.Logf("can't read %s: %+v", path, err)
			fmt.Fprintf(e.data.Stdout, "%s: error: %s\n", path, err)
			return
		}
		result, err := l.Render(strings.TrimSpace(string(b)))
		if err != nil {
			fmt.Fprintf(e.data.Stdout, "%s: error: %s\n", path, err)
			return
		}
		fmt.Fprintf(e.data.Stdout, "%s: %g x %g: %s\n", path, result.Width, result.Height, result.Root)
	}

	paths := []string{}
	for _, p := range args.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		paths = append(paths, abs)
	}
	paths = util.StrRemoveDuplicatesInList(paths) // one render per file
	for _, p := range paths {
		render(p)
	}

	watcher, err := recwatch.NewRecWatcher(paths,
		recwatch.Debug(e.data.Flags.Debug),
		recwatch.Logf(func(format string, v ...interface{}) {
			e.Logf("recwatch: "+format, v...)
		}),
	)
	if err != nil {
		return err
	}
	defer watcher.Close()

	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if err := event.Error; err != nil {
				return err
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil // context closed
			}
			render(event.Body.Name)

		case <-ctx.Done():
			return nil
		}
	}
}
