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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	cliUtil "github.com/purpleidea/vizx/cli/util"

	"github.com/spf13/afero"
)

// syncBuffer is a buffer which is safe to write from one goroutine while it's
// read from another.
type syncBuffer struct {
	mutex sync.Mutex
	buf   bytes.Buffer
}

func (obj *syncBuffer) Write(p []byte) (int, error) {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.buf.Write(p)
}

func (obj *syncBuffer) String() string {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.buf.String()
}

func testEnv(t *testing.T, stdout *syncBuffer) *env {
	return &env{
		data: &cliUtil.Data{
			Stdout: stdout,
		},
		fs:     afero.NewOsFs(),
		config: &Config{},
		Logf: func(format string, v ...interface{}) {
			t.Logf("watch: "+format, v...)
		},
	}
}

func TestWatch0(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.zx")
	bad := filepath.Join(dir, "bad.zx")
	if err := os.WriteFile(good, []byte("wire\n"), 0644); err != nil {
		t.Fatalf("write failed: %+v", err)
	}
	if err := os.WriteFile(bad, []byte("Z 1 1\n"), 0644); err != nil {
		t.Fatalf("write failed: %+v", err)
	}

	stdout := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // only the first pass runs
	args := &cliUtil.WatchArgs{Paths: []string{good, bad}, Limit: 4, Burst: 1}
	if err := runWatch(ctx, testEnv(t, stdout), args); err != nil {
		t.Fatalf("watch failed: %+v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, good+": 120 x 120: —\n") {
		t.Errorf("missing render of good file in: %s", out)
	}
	if !strings.Contains(out, bad+": error: parse: ") {
		t.Errorf("missing error of bad file in: %s", out)
	}
}

func TestWatchChange0(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "goal.zx")
	if err := os.WriteFile(file, []byte("wire"), 0644); err != nil {
		t.Fatalf("write failed: %+v", err)
	}

	stdout := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	args := &cliUtil.WatchArgs{Paths: []string{file}, Limit: 100, Burst: 1}
	errch := make(chan error, 1)
	go func() {
		errch <- runWatch(ctx, testEnv(t, stdout), args)
	}()

	exp := file + ": 120 x 240: (— ↕ —)\n"
	deadline := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
Loop:
	for {
		select {
		case <-ticker.C:
			if strings.Contains(stdout.String(), exp) {
				break Loop
			}
			// keep writing, the watch may not have started yet
			if err := os.WriteFile(file, []byte("wire ↕ wire"), 0644); err != nil {
				t.Fatalf("write failed: %+v", err)
			}
		case err := <-errch:
			t.Fatalf("watch exited early: %+v", err)
		case <-deadline:
			t.Fatalf("timeout waiting for render, got: %s", stdout.String())
		}
	}

	cancel()
	if err := <-errch; err != nil {
		t.Errorf("watch failed: %+v", err)
	}
}

func TestWatchBlocked0(t *testing.T) {
	args := &cliUtil.WatchArgs{Paths: []string{"goal.zx"}, Limit: 1, Burst: 0}
	if err := runWatch(context.Background(), testEnv(t, &syncBuffer{}), args); err == nil {
		t.Errorf("should have failed with a zero burst")
	}
}
