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

// Package bitquad implements the QuickLife leaves of §3: Quad2 (a 4x4
// bit rectangle packed into 16 bits) and Quad3 (an 8x8 rectangle built
// from four Quad2s), plus the PrecomputedStepTable of §4.2.
package bitquad

// Quad2 packs a 4x4 grid of cells into the low 16 bits of a uint16.
// Bit position (x, y) is 4*y+x, for x, y in [0, 4).
type Quad2 uint16

func bitIndex(x, y int) uint {
	return uint(4*y + x)
}

// Get reports whether the cell at (x, y) is alive.
func (q Quad2) Get(x, y int) bool {
	return q&(1<<bitIndex(x, y)) != 0
}

// Set returns q with the cell at (x, y) marked alive.
func (q Quad2) Set(x, y int) Quad2 {
	return q | 1<<bitIndex(x, y)
}

// Clear returns q with the cell at (x, y) marked dead.
func (q Quad2) Clear(x, y int) Quad2 {
	return q &^ (1 << bitIndex(x, y))
}

// IsAllDead reports whether every cell in q is dead.
func (q Quad2) IsAllDead() bool { return q == 0 }

// Edge and corner masks over a Quad2's 4x4 footprint (§3: "edge/corner
// masks and tests for all dead"). North is the high-y pair of rows,
// matching the north=+y convention used throughout this module.
const (
	WestColsMask  Quad2 = 0x3333 // x in {0,1}, all y
	EastColsMask  Quad2 = 0xcccc // x in {2,3}, all y
	SouthRowsMask Quad2 = 0x00ff // y in {0,1}, all x
	NorthRowsMask Quad2 = 0xff00 // y in {2,3}, all x

	SWCornerMask Quad2 = 1 << 0  // (x=0, y=0)
	SECornerMask Quad2 = 1 << 3  // (x=3, y=0)
	NWCornerMask Quad2 = 1 << 12 // (x=0, y=3)
	NECornerMask Quad2 = 1 << 15 // (x=3, y=3)
)

// MaskedAllDead reports whether every cell of q selected by mask is dead.
func (q Quad2) MaskedAllDead(mask Quad2) bool { return q&mask == 0 }

// Mirror returns q reflected east-west: the west 2x4 half and the east
// 2x4 half trade places (§4.2: "mirror = swap the two 2x4 halves").
// Used to index PrecomputedStepTables with the orientation variant
// that corresponds to a mirrored read of q.
func (q Quad2) Mirror() Quad2 {
	var r Quad2
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if q.Get(x, y) {
				r = r.Set(3-x, y)
			}
		}
	}
	return r
}

// Flip returns q reflected north-south: the south 4x2 half and the
// north 4x2 half trade places (§4.2: "flip = swap the two 4x2
// halves").
func (q Quad2) Flip() Quad2 {
	var r Quad2
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if q.Get(x, y) {
				r = r.Set(x, 3-y)
			}
		}
	}
	return r
}

// SeamHoriz composes the 4x4 Quad2 centered on the vertical seam
// between west and east: its west two columns are west's east two
// columns, and its east two columns are east's west two columns (§3:
// "horizontal-middle mirror... swap the two east columns of a with
// the two west columns of b to form a 4x4 centered across their
// seam").
func SeamHoriz(west, east Quad2) Quad2 {
	var r Quad2
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			if west.Get(x+2, y) {
				r = r.Set(x, y)
			}
			if east.Get(x, y) {
				r = r.Set(x+2, y)
			}
		}
	}
	return r
}

// SeamVert composes the 4x4 Quad2 centered on the horizontal seam
// between south and north: its south two rows are south's north two
// rows, and its north two rows are north's south two rows (§3's
// "vertical-middle flip", the analogue of SeamHoriz along the other
// axis).
func SeamVert(south, north Quad2) Quad2 {
	var r Quad2
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if south.Get(x, y+2) {
				r = r.Set(x, y)
			}
			if north.Get(x, y) {
				r = r.Set(x, y+2)
			}
		}
	}
	return r
}

// Corner2x2 packs a 2x2 cell rectangle into the low 4 bits of a byte,
// with cell (x, y), x,y in [0,2), at bit 2*y+x.
type Corner2x2 uint8

// Get reports whether the cell at (x, y), x,y in [0,2), is alive.
func (c Corner2x2) Get(x, y int) bool {
	return c&(1<<uint(2*y+x)) != 0
}

func corner2x2(nw, ne, sw, se bool) Corner2x2 {
	var c Corner2x2
	if sw {
		c |= 1 << 0
	}
	if se {
		c |= 1 << 1
	}
	if nw {
		c |= 1 << 2
	}
	if ne {
		c |= 1 << 3
	}
	return c
}
