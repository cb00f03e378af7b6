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

// Quad3 is an 8x8 rectangle built from four Quad2 quadrants, following
// the same NW/NE/SW/SE naming as package quad (north = increasing y,
// east = increasing x).
type Quad3 struct {
	NW, NE, SW, SE Quad2
}

// Get reports whether the cell at local (x, y), x,y in [0,8), is alive.
func (q Quad3) Get(x, y int) bool {
	quadrant, lx, ly := q.quadrant(x, y)
	return quadrant.Get(lx, ly)
}

// Set returns q with the cell at local (x, y) marked alive.
func (q Quad3) Set(x, y int) Quad3 {
	switch {
	case x < 4 && y >= 4:
		q.NW = q.NW.Set(x, y-4)
	case x >= 4 && y >= 4:
		q.NE = q.NE.Set(x-4, y-4)
	case x < 4 && y < 4:
		q.SW = q.SW.Set(x, y)
	default:
		q.SE = q.SE.Set(x-4, y)
	}
	return q
}

// Clear returns q with the cell at local (x, y) marked dead.
func (q Quad3) Clear(x, y int) Quad3 {
	switch {
	case x < 4 && y >= 4:
		q.NW = q.NW.Clear(x, y-4)
	case x >= 4 && y >= 4:
		q.NE = q.NE.Clear(x-4, y-4)
	case x < 4 && y < 4:
		q.SW = q.SW.Clear(x, y)
	default:
		q.SE = q.SE.Clear(x-4, y)
	}
	return q
}

func (q Quad3) quadrant(x, y int) (Quad2, int, int) {
	switch {
	case x < 4 && y >= 4:
		return q.NW, x, y - 4
	case x >= 4 && y >= 4:
		return q.NE, x - 4, y - 4
	case x < 4 && y < 4:
		return q.SW, x, y
	default:
		return q.SE, x - 4, y
	}
}

// IsAllDead reports whether every cell in q is dead.
func (q Quad3) IsAllDead() bool {
	return q.NW.IsAllDead() && q.NE.IsAllDead() && q.SW.IsAllDead() && q.SE.IsAllDead()
}
