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

package quicklife

import "testing"

func TestPhaseQuadsSetGetClear(t *testing.T) {
	var p phaseQuads
	p.set(0, 0)
	p.set(15, 15)
	p.set(8, 0)
	p.set(0, 8)
	for _, c := range []struct{ x, y int }{{0, 0}, {15, 15}, {8, 0}, {0, 8}} {
		if !p.get(c.x, c.y) {
			t.Fatalf("get(%d,%d) = false after set", c.x, c.y)
		}
	}
	p.clear(0, 0)
	if p.get(0, 0) {
		t.Fatalf("get(0,0) = true after clear")
	}
	if !p.get(15, 15) {
		t.Fatalf("clear(0,0) disturbed an unrelated cell")
	}
}

func TestBlockAtOwnFootprint(t *testing.T) {
	b := newBlock(0, 0)
	b.Even.set(3, 5)
	if !b.at(Even, 3, 5) {
		t.Fatalf("at(Even, 3, 5) = false for a cell set within the block's own footprint")
	}
	if b.at(Odd, 3, 5) {
		t.Fatalf("at(Odd, 3, 5) should read the Odd buffer, which is untouched")
	}
}

func TestBlockAtMissingNeighborIsDead(t *testing.T) {
	b := newBlock(0, 0)
	if b.at(Even, -1, 5) || b.at(Even, 16, 5) || b.at(Even, 5, -1) || b.at(Even, 5, 16) {
		t.Fatalf("margin cells must read dead when the neighbour block does not exist")
	}
	if b.at(Even, -1, -1) || b.at(Even, 16, 16) || b.at(Even, -1, 16) || b.at(Even, 16, -1) {
		t.Fatalf("diagonal margin cells must read dead when no neighbour block exists")
	}
}

func TestBlockAtReadsDirectNeighbors(t *testing.T) {
	center := newBlock(0, 0)
	west := newBlock(-1, 0)
	east := newBlock(1, 0)
	south := newBlock(0, -1)
	north := newBlock(0, 1)
	center.W, west.E = west, center
	center.E, east.W = east, center
	center.S, south.N = south, center
	center.N, north.S = north, center

	west.Even.set(15, 7)
	east.Even.set(0, 7)
	south.Even.set(7, 15)
	north.Even.set(7, 0)

	if !center.at(Even, -1, 7) {
		t.Fatalf("at(-1,7) must read the west neighbour's east column")
	}
	if !center.at(Even, 16, 7) {
		t.Fatalf("at(16,7) must read the east neighbour's west column")
	}
	if !center.at(Even, 7, -1) {
		t.Fatalf("at(7,-1) must read the south neighbour's north row")
	}
	if !center.at(Even, 7, 16) {
		t.Fatalf("at(7,16) must read the north neighbour's south row")
	}
}

func TestBlockAtReadsStoredDiagonalNeighbors(t *testing.T) {
	center := newBlock(0, 0)
	nw := newBlock(-1, 1)
	se := newBlock(1, -1)
	center.NW, nw.SE = nw, center
	center.SE, se.NW = se, center

	nw.Even.set(15, 0)
	se.Even.set(0, 15)

	if !center.at(Even, -1, 16) {
		t.Fatalf("at(-1,16) must read the stored NW neighbour's SE cell")
	}
	if !center.at(Even, 16, -1) {
		t.Fatalf("at(16,-1) must read the stored SE neighbour's NW cell")
	}
}

func TestBlockAtReadsTransitiveDiagonalNeighbors(t *testing.T) {
	center := newBlock(0, 0)
	east := newBlock(1, 0)
	northEast := newBlock(1, 1)
	center.E, east.W = east, center
	east.N, northEast.S = northEast, east

	northEast.Even.set(0, 0)

	if !center.at(Even, 16, 16) {
		t.Fatalf("at(16,16) must resolve the NE neighbour transitively via E.N")
	}
}

func TestNECachesThroughEitherPath(t *testing.T) {
	b := newBlock(0, 0)
	if b.NE() != nil {
		t.Fatalf("NE() must be nil with no linked neighbours")
	}
	n := newBlock(0, 1)
	ne := newBlock(1, 1)
	b.N, n.E = n, ne
	if got := b.NE(); got != ne {
		t.Fatalf("NE() via N.E did not resolve to the expected block")
	}
}
