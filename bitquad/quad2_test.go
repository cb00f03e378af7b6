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

import "testing"

func TestQuad2SetGetClear(t *testing.T) {
	var q Quad2
	if !q.IsAllDead() {
		t.Fatalf("zero value must be all dead")
	}
	q = q.Set(2, 3)
	if !q.Get(2, 3) {
		t.Fatalf("Get after Set must be true")
	}
	if q.IsAllDead() {
		t.Fatalf("IsAllDead must be false after Set")
	}
	q = q.Clear(2, 3)
	if q.Get(2, 3) {
		t.Fatalf("Get after Clear must be false")
	}
	if !q.IsAllDead() {
		t.Fatalf("IsAllDead must be true after clearing the only live cell")
	}
}

func TestQuad2SetDoesNotDisturbOtherCells(t *testing.T) {
	var q Quad2
	q = q.Set(0, 0).Set(3, 3)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := (x == 0 && y == 0) || (x == 3 && y == 3)
			if q.Get(x, y) != want {
				t.Fatalf("Get(%d,%d) = %v, want %v", x, y, q.Get(x, y), want)
			}
		}
	}
}

func TestQuad2MirrorAndFlip(t *testing.T) {
	var q Quad2
	q = q.Set(0, 0).Set(1, 2) // an asymmetric shape
	m := q.Mirror()
	if !m.Get(3, 0) || !m.Get(2, 2) || m.Get(0, 0) || m.Get(1, 2) {
		t.Fatalf("Mirror did not reflect columns east-west: %016b", m)
	}
	if m.Mirror() != q {
		t.Fatalf("Mirror must be its own inverse")
	}

	f := q.Flip()
	if !f.Get(0, 3) || !f.Get(1, 1) || f.Get(0, 0) || f.Get(1, 2) {
		t.Fatalf("Flip did not reflect rows north-south: %016b", f)
	}
	if f.Flip() != q {
		t.Fatalf("Flip must be its own inverse")
	}
}

func TestSeamHorizAndSeamVert(t *testing.T) {
	var west, east Quad2
	west = west.Set(2, 1).Set(3, 0) // west's east columns
	east = east.Set(0, 2).Set(1, 3) // east's west columns
	seam := SeamHoriz(west, east)
	if !seam.Get(0, 1) || !seam.Get(1, 0) || !seam.Get(2, 2) || !seam.Get(3, 3) {
		t.Fatalf("SeamHoriz did not assemble west/east columns correctly: %016b", seam)
	}
	if seam.Get(0, 0) || seam.Get(3, 0) {
		t.Fatalf("SeamHoriz picked up a cell outside the seam columns: %016b", seam)
	}

	var south, north Quad2
	south = south.Set(1, 2).Set(0, 3) // south's north rows
	north = north.Set(2, 0).Set(3, 1) // north's south rows
	vseam := SeamVert(south, north)
	if !vseam.Get(1, 0) || !vseam.Get(0, 1) || !vseam.Get(2, 2) || !vseam.Get(3, 3) {
		t.Fatalf("SeamVert did not assemble south/north rows correctly: %016b", vseam)
	}
}

func TestQuad2MaskedAllDead(t *testing.T) {
	var q Quad2
	if !q.MaskedAllDead(WestColsMask) || !q.MaskedAllDead(NorthRowsMask) {
		t.Fatalf("zero value must be all dead in every mask")
	}
	q = q.Set(0, 0) // SW corner, west column, south row
	if q.MaskedAllDead(WestColsMask) {
		t.Fatalf("WestColsMask should see the cell at (0,0)")
	}
	if q.MaskedAllDead(SouthRowsMask) {
		t.Fatalf("SouthRowsMask should see the cell at (0,0)")
	}
	if !q.MaskedAllDead(EastColsMask) || !q.MaskedAllDead(NorthRowsMask) {
		t.Fatalf("a SW-corner cell must not appear in the east columns or north rows")
	}
	if q.MaskedAllDead(SWCornerMask) == true {
		t.Fatalf("SWCornerMask should see the cell at (0,0)")
	}
	if !q.MaskedAllDead(NECornerMask) {
		t.Fatalf("NECornerMask should not see a cell at (0,0)")
	}
}

func TestCorner2x2Get(t *testing.T) {
	c := corner2x2(true, false, false, true) // nw, ne, sw, se
	if !c.Get(0, 1) {
		t.Fatalf("nw should be at (0,1)")
	}
	if c.Get(1, 1) {
		t.Fatalf("ne should be false")
	}
	if c.Get(0, 0) {
		t.Fatalf("sw should be false")
	}
	if !c.Get(1, 0) {
		t.Fatalf("se should be at (1,0)")
	}
}
