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
	"math"
	"net"

	"github.com/purpleidea/vizx/layout"
	"github.com/purpleidea/vizx/util/errwrap"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"
)

// Config holds the defaults that a config file may set. Flags on the command
// line win over it.
type Config struct {
	// Scale is the side of a single generator.
	Scale float64 `yaml:"scale"`

	// Goal treats every input as a printed goal.
	Goal bool `yaml:"goal"`

	// Listen is the address the api is served on.
	Listen string `yaml:"listen"`

	// Prometheus starts a prometheus instance alongside the api.
	Prometheus       bool   `yaml:"prometheus"`
	PrometheusListen string `yaml:"prometheus-listen"`
}

// ParseConfig reads and validates a yaml config file. Unknown keys are an
// error.
func ParseConfig(fs afero.Fs, path string) (*Config, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't read config %s", path)
	}
	config := &Config{}
	if err := yaml.UnmarshalStrict(b, config); err != nil {
		return nil, errwrap.Wrapf(err, "can't parse config %s", path)
	}
	if err := config.Validate(); err != nil {
		return nil, errwrap.Wrapf(err, "invalid config %s", path)
	}
	return config, nil
}

// Validate returns every problem with the config at once.
func (obj *Config) Validate() error {
	var reterr error
	if s := obj.Scale; s != 0 && (math.IsNaN(s) || s < layout.MinScale || s > layout.MaxScale) {
		reterr = errwrap.Append(reterr, fmt.Errorf("scale %g is out of range", s))
	}
	for _, listen := range []string{obj.Listen, obj.PrometheusListen} {
		if listen == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(listen); err != nil {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(err, "bad listen address"))
		}
	}
	return reterr
}
