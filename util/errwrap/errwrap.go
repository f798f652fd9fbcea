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

// Package errwrap contains some error helpers.
package errwrap

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf adds a new error onto an existing chain of errors. If the new error to
// be added is nil, then the old error is returned unchanged.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Append safely combines two errors, either of which may be nil. This makes it
// usable as a `reterr += err` when collecting several independent failures.
// The combined error prints on a single line so that it fits in a log line or
// a json field.
func Append(reterr, err error) error {
	if reterr == nil {
		return err // which might even be nil
	}
	if err == nil {
		return reterr
	}
	merr := multierror.Append(reterr, err)
	merr.ErrorFormat = listFormat
	return merr
}

// listFormat prints a multierror as a count followed by each error in order.
func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	s := []string{}
	for _, err := range errs {
		s = append(s, err.Error())
	}
	return fmt.Sprintf("%d errors: %s", len(errs), strings.Join(s, "; "))
}

// Errors flattens an error built with Append back into its parts. A nil error
// returns nil and a plain error returns a list of one.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	if merr, ok := err.(*multierror.Error); ok {
		return merr.WrappedErrors()
	}
	return []error{err}
}

// String returns the message of an error, or the empty string if it is nil.
func String(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
