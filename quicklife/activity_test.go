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

import (
	"testing"

	"github.com/conwaylife/lifecore/bitquad"
)

func TestQuadStateRoundTrip(t *testing.T) {
	var s QuadState
	for _, r := range []Region{RegionWhole, RegionVertEdge, RegionHorizEdge, RegionCorner} {
		for _, want := range []TriState{RegionActive, RegionStable, RegionDead} {
			s = s.Set(r, want)
			if got := s.Get(r); got != want {
				t.Fatalf("region %v: Set(%v) then Get() = %v", r, want, got)
			}
		}
	}
}

func TestActivityMaskFieldIsolation(t *testing.T) {
	var m ActivityMask
	s := QuadState(0).Set(RegionWhole, RegionActive)
	m = m.WithField(quadNE, s)
	if m.Field(quadNE).Get(RegionWhole) != RegionActive {
		t.Fatalf("quadNE field did not take the written state")
	}
	for _, q := range []int{quadNW, quadSW, quadSE} {
		if m.Field(q) != 0 {
			t.Fatalf("quadrant %d disturbed by an unrelated WithField call", q)
		}
	}
}

func TestAllDeadAndStableRequiresEveryQuadrant(t *testing.T) {
	var m ActivityMask
	deadState := QuadState(0).Set(RegionWhole, RegionDead)
	m = m.WithField(quadNW, deadState).WithField(quadSW, deadState).WithField(quadNE, deadState)
	if m.AllDeadAndStable() {
		t.Fatalf("AllDeadAndStable must be false until every quadrant is dead")
	}
	m = m.WithField(quadSE, deadState)
	if !m.AllDeadAndStable() {
		t.Fatalf("AllDeadAndStable must be true once every quadrant is dead")
	}
}

func TestNextQuadStateUnchangedIsStable(t *testing.T) {
	var q bitquad.Quad3
	q = q.Set(1, 1).Set(2, 1).Set(1, 2).Set(2, 2) // alive, unchanged between old and new
	s := nextQuadState(q, q, Even)
	if s.Get(RegionWhole) != RegionStable {
		t.Fatalf("an unchanged, non-empty quadrant must be Stable, got %v", s.Get(RegionWhole))
	}
}

func TestNextQuadStateEmptyUnchangedIsDead(t *testing.T) {
	var q bitquad.Quad3
	s := nextQuadState(q, q, Even)
	if s.Get(RegionWhole) != RegionDead {
		t.Fatalf("an unchanged, empty quadrant must be Dead, got %v", s.Get(RegionWhole))
	}
}

func TestNextQuadStateChangeOutsideCornerLeavesCornerAlone(t *testing.T) {
	var oldQ bitquad.Quad3
	var newQ bitquad.Quad3
	// (7,7) is outside both the even-phase vertical edge (x<2) and
	// horizontal edge (y>=6 only matters together with x<2 for the
	// corner); flip a cell far from the even-phase corner region
	// (x<2, y>=6) to confirm the corner itself is untouched.
	newQ = newQ.Set(7, 7)
	s := nextQuadState(oldQ, newQ, Even)
	if s.Get(RegionCorner) != RegionDead {
		t.Fatalf("corner region must stay Dead when the changed cell lies outside it, got %v", s.Get(RegionCorner))
	}
	if s.Get(RegionWhole) != RegionActive {
		t.Fatalf("whole region must report Active when any cell changes, got %v", s.Get(RegionWhole))
	}
}

func TestNextQuadStateCornerChangeForcesBothEdges(t *testing.T) {
	var oldQ bitquad.Quad3
	var newQ bitquad.Quad3
	newQ = newQ.Set(0, 7) // inside the even-phase corner (x<2, y>=6)
	s := nextQuadState(oldQ, newQ, Even)
	if s.Get(RegionCorner) != RegionActive {
		t.Fatalf("corner must be Active when one of its cells changes")
	}
	if s.Get(RegionVertEdge) != RegionActive {
		t.Fatalf("a changed corner must force the vertical edge Active")
	}
	if s.Get(RegionHorizEdge) != RegionActive {
		t.Fatalf("a changed corner must force the horizontal edge Active")
	}
}

func TestNextQuadStateEdgeChangeDoesNotForceSiblingEdge(t *testing.T) {
	var oldQ bitquad.Quad3
	var newQ bitquad.Quad3
	// (0,3) is in the even-phase vertical edge (x<2) but not in the
	// horizontal edge (y>=6) or the corner.
	newQ = newQ.Set(0, 3)
	s := nextQuadState(oldQ, newQ, Even)
	if s.Get(RegionVertEdge) != RegionActive {
		t.Fatalf("vertical edge must be Active when one of its cells changes")
	}
	if s.Get(RegionHorizEdge) == RegionActive {
		t.Fatalf("a vertical-edge-only change must not force the horizontal edge Active")
	}
}
