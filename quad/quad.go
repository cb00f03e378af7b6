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

// Package quad implements the canonical, hash-consed quadtree node that
// underlies the HashLife engine: an immutable 2^L x 2^L square that is
// either a single cell (L == 0) or four equal-level children.
//
// Two structurally equal nodes are always the same *Quad: construction
// goes through a Memoizer so that identity comparison (==) doubles as
// deep structural equality. This is what lets the HashLife step function
// memoize on node identity instead of on the (unbounded) cell contents.
package quad

// MaxLevel keeps side lengths (1<<Level) within a signed 64-bit range.
const MaxLevel = 60

// Quad is a canonical 2^Level x 2^Level square region of the grid.
//
// When Level == 0, the node is one of the two canonical leaves (Alive
// or Dead) and NW/NE/SE/SW are nil. When Level >= 1, Alive is unused
// and NW/NE/SE/SW are the four equal-level children, each canonical.
type Quad struct {
	Level          int
	Alive          bool
	NW, NE, SE, SW *Quad
}

var aliveLeaf = &Quad{Level: 0, Alive: true}
var deadLeaf = &Quad{Level: 0, Alive: false}

// AliveCell returns the canonical level-0 live cell.
func AliveCell() *Quad { return aliveLeaf }

// DeadCell returns the canonical level-0 dead cell.
func DeadCell() *Quad { return deadLeaf }

// IsLeaf reports whether q is a level-0 cell.
func (q *Quad) IsLeaf() bool { return q.Level == 0 }

// Side returns 2^Level, the side length of q in cells.
func (q *Quad) Side() int64 { return int64(1) << uint(q.Level) }

// population is a best-effort, uncached count used only by report() and
// tests; it is not on the hot path of step/draw and is not memoized.
func (q *Quad) population() int64 {
	if q.IsLeaf() {
		if q.Alive {
			return 1
		}
		return 0
	}
	return q.NW.population() + q.NE.population() + q.SE.population() + q.SW.population()
}

// Population returns the number of live cells in q. For large, regular
// patterns this is cheap because identical subtrees are canonical and
// the recursion collapses quickly on all-dead children; report() uses
// it purely for diagnostics, never on the step hot path.
func (q *Quad) Population() int64 {
	if q == nil {
		return 0
	}
	return q.population()
}

// cellAt reads the cell at local coordinates (x, y), both in
// [0, q.Side()), where increasing y is north and increasing x is east.
func cellAt(q *Quad, x, y int64) bool {
	for !q.IsLeaf() {
		half := q.Side() / 2
		north := y >= half
		east := x >= half
		if north {
			y -= half
		}
		if east {
			x -= half
		}
		switch {
		case north && !east:
			q = q.NW
		case north && east:
			q = q.NE
		case !north && east:
			q = q.SE
		default:
			q = q.SW
		}
	}
	return q.Alive
}

// CellAt reads the cell at local coordinates (x, y) relative to the
// quad's own origin (bottom-left corner), both coordinates in
// [0, q.Side()). It is the building block for the HashLife base case
// and for Draw's region enumeration.
func CellAt(q *Quad, x, y int64) bool {
	if x < 0 || y < 0 || x >= q.Side() || y >= q.Side() {
		return false
	}
	return cellAt(q, x, y)
}
