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

package bitquad

const tableSize = 1 << 16

// StepTable is the PrecomputedStepTable of §4.2: for every possible
// 4x4 window, the center 2x2 one generation forward. Package quicklife
// assembles a window by direct sampling and looks up its next state
// here rather than paying the cost of the B3/S23 neighbour count on
// every cell of every step.
var StepTable [tableSize]Corner2x2

func init() {
	for i := 0; i < tableSize; i++ {
		StepTable[i] = StepQuad2Center(Quad2(i))
	}
}

// StepQuad2Center advances the center 2x2 of a 4x4 Quad2 by a single
// generation under B3/S23, counting neighbours that fall outside the
// 4x4 window as dead. It is the base computation StepTable memoizes.
func StepQuad2Center(q Quad2) Corner2x2 {
	alive := func(x, y int) int {
		if x < 0 || x > 3 || y < 0 || y > 3 {
			return 0
		}
		if q.Get(x, y) {
			return 1
		}
		return 0
	}
	next := func(x, y int) bool {
		n := 0
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n += alive(x+dx, y+dy)
			}
		}
		self := alive(x, y) == 1
		return n == 3 || (self && n == 2)
	}
	return corner2x2(next(1, 2), next(2, 2), next(1, 1), next(2, 1))
}
