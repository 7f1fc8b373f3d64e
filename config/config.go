// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config decodes noodlify_for_equation's params and test/benchmark
// equation fixtures from YAML, keeping declarative configuration out of
// Go literals.
package config

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/tmokenc/mata/noodle"
)

// LoadParams decodes a YAML document into a noodle.Params. An empty or
// absent document decodes to a nil map, matching "any other value (or
// absence) -> no reduction".
//
// Example document:
//
//	reduce: bidirectional
func LoadParams(data []byte) (noodle.Params, error) {
	var params noodle.Params
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("config: decoding params: %w", err)
	}
	return params, nil
}
