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

import "github.com/conwaylife/lifecore/life"

// offset is a cell position relative to a pattern's own origin.
type offset struct{ dx, dy int64 }

// patterns holds the fixed seed shapes used by scenario files and the
// "demo" subcommand, in lieu of an RLE file parser (out of scope).
var patterns = map[string][]offset{
	"blinker": {{0, 0}, {1, 0}, {2, 0}},
	"glider":  {{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	"block":   {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	"acorn": {
		{1, 0},
		{3, 1},
		{0, 2}, {1, 2}, {4, 2}, {5, 2}, {6, 2},
	},
	// Gosper glider gun, canonical 36x9 layout.
	"gosperGliderGun": {
		{24, 0},
		{22, 1}, {24, 1},
		{12, 2}, {13, 2}, {20, 2}, {21, 2}, {34, 2}, {35, 2},
		{11, 3}, {15, 3}, {20, 3}, {21, 3}, {34, 3}, {35, 3},
		{0, 4}, {1, 4}, {10, 4}, {16, 4}, {20, 4}, {21, 4},
		{0, 5}, {1, 5}, {10, 5}, {14, 5}, {16, 5}, {17, 5}, {22, 5}, {24, 5},
		{10, 6}, {16, 6}, {24, 6},
		{11, 7}, {15, 7},
		{12, 8}, {13, 8},
	},
}

// seed writes a named pattern into u with its own origin translated to
// (originX, originY). An unknown name is a no-op (callers validate names
// against patterns before reaching here).
func seed(u life.Universe, name string, originX, originY int64) {
	for _, o := range patterns[name] {
		u.Set(originX+o.dx, originY+o.dy, true)
	}
}
