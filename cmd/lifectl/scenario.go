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

package main

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// Scenario describes one benchmark/demo run for lifectl: which engine
// to drive, which seed pattern to place where, and how far to run it.
type Scenario struct {
	Name        string `json:"name"`
	Engine      string `json:"engine"`      // "hashlife" or "quicklife"
	Pattern     string `json:"pattern"`     // a key of the patterns map
	OriginX     int64  `json:"originX"`
	OriginY     int64  `json:"originY"`
	Generations int    `json:"generations"` // total generations to run
	Speed       int    `json:"speed"`       // Step(speed) granularity per call
}

// DecodeScenario decodes r as either JSON or YAML, in the shape of the
// teacher's extension-dispatched db.DecodeDefinition: sigs.k8s.io/yaml
// accepts both, since JSON is a subset of YAML, so no dispatch on ext
// is actually needed beyond accepting whatever extension the caller
// passed through for error messages.
func DecodeScenario(r io.Reader, ext string) (*Scenario, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading scenario (%s): %w", ext, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(buf, &s); err != nil {
		return nil, fmt.Errorf("decoding scenario (%s): %w", ext, err)
	}
	if _, ok := patterns[s.Pattern]; !ok {
		return nil, fmt.Errorf("scenario %q: unknown pattern %q", s.Name, s.Pattern)
	}
	if s.Engine != "hashlife" && s.Engine != "quicklife" {
		return nil, fmt.Errorf("scenario %q: unknown engine %q", s.Name, s.Engine)
	}
	return &s, nil
}
