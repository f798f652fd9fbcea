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
	"fmt"
	"io"
	"strings"

	cliUtil "github.com/purpleidea/vizx/cli/util"
	"github.com/purpleidea/vizx/util/errwrap"

	"github.com/spf13/afero"
)

// readInput returns the diagram that the input names. The input is read from
// stdin if it is - or empty, and from a file if one exists at that path.
// Anything else is the diagram itself.
func (obj *env) readInput(input string) (string, error) {
	if input == "" || input == "-" {
		if obj.data.Stdin == nil {
			return "", cliUtil.MissingInput
		}
		b, err := io.ReadAll(obj.data.Stdin)
		if err != nil {
			return "", errwrap.Wrapf(err, "can't read stdin")
		}
		s := strings.TrimSpace(string(b))
		if s == "" {
			return "", cliUtil.MissingInput
		}
		return s, nil
	}

	if exists, err := afero.Exists(obj.fs, input); err != nil {
		return "", err
	} else if !exists {
		return input, nil
	}
	if isDir, err := afero.IsDir(obj.fs, input); err != nil {
		return "", err
	} else if isDir {
		return "", fmt.Errorf("input %s is a directory", input)
	}

	b, err := afero.ReadFile(obj.fs, input)
	if err != nil {
		return "", errwrap.Wrapf(err, "can't read %s", input)
	}
	return strings.TrimSpace(string(b)), nil
}
