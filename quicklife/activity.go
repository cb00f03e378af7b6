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

import "github.com/conwaylife/lifecore/bitquad"

// Phase distinguishes the two halves of a QuickLife generation. The
// odd buffer is logically offset by one cell to the southeast
// relative to the even buffer (§3).
type Phase int

const (
	Even Phase = iota
	Odd
)

// Opposite returns the other phase.
func (p Phase) Opposite() Phase {
	if p == Even {
		return Odd
	}
	return Even
}

// TriState is the per-region encoding of §3: a region is Active
// (changing), Stable (unchanged but alive somewhere) or Dead (entirely
// and stably empty).
type TriState int

const (
	RegionActive TriState = iota
	RegionStable
	RegionDead
)

// Region indexes the four nested per-quadrant regions tracked by an
// activity mask field, MSB to LSB within each nibble.
type Region int

const (
	RegionWhole Region = iota
	RegionVertEdge
	RegionHorizEdge
	RegionCorner
)

// QuadState packs the tri-state of the four regions of one Quad3 into
// one byte: high nibble holds the dead flags, low nibble the stable
// flags, MSB to LSB in region order (§3).
//
// The zero value decodes (via Get) as RegionActive for every region --
// it has neither its dead nor its stable bit set -- so it must never be
// used to represent an untouched, all-dead Quad3. DeadQuadState is the
// explicit all-dead encoding for that case.
type QuadState uint8

func deadBit(r Region) QuadState   { return 1 << uint(7-r) }
func stableBit(r Region) QuadState { return 1 << uint(3-r) }

// DeadQuadState is the QuadState with every region's tri-state set to
// RegionDead: both the dead and stable bits set for all four regions.
// newBlock uses this (not the zero value) to seed a freshly-allocated
// block's masks, since the zero value would misdecode as all-Active.
const DeadQuadState QuadState = 0xff

// Get returns the tri-state of region r.
func (s QuadState) Get(r Region) TriState {
	dead := s&deadBit(r) != 0
	stable := s&stableBit(r) != 0
	switch {
	case dead && stable:
		return RegionDead
	case !dead && stable:
		return RegionStable
	default:
		return RegionActive
	}
}

// Set returns s with region r's tri-state replaced by t.
func (s QuadState) Set(r Region, t TriState) QuadState {
	s &^= deadBit(r) | stableBit(r)
	switch t {
	case RegionDead:
		s |= deadBit(r) | stableBit(r)
	case RegionStable:
		s |= stableBit(r)
	}
	return s
}

// ActivityMask is the 32-bit per-phase activity mask of a Quad4Block:
// four 8-bit QuadState fields in NW, SW, NE, SE order (§3).
//
// Like QuadState, the zero value decodes every quadrant as all-Active,
// not all-Dead; DeadActivityMask is the explicit all-dead encoding.
type ActivityMask uint32

// DeadActivityMask is the ActivityMask with every quadrant's QuadState
// set to DeadQuadState.
const DeadActivityMask ActivityMask = ActivityMask(DeadQuadState)<<24 | ActivityMask(DeadQuadState)<<16 | ActivityMask(DeadQuadState)<<8 | ActivityMask(DeadQuadState)

// Quadrant indices into an ActivityMask/phaseQuads, matching the
// NW, SW, NE, SE order used by §3's 32-bit layout.
const (
	quadNW = iota
	quadSW
	quadNE
	quadSE
)

func (m ActivityMask) Field(q int) QuadState {
	return QuadState(m >> uint(8*(3-q)))
}

func (m ActivityMask) WithField(q int, s QuadState) ActivityMask {
	shift := uint(8 * (3 - q))
	mask := ActivityMask(0xff) << shift
	return (m &^ mask) | (ActivityMask(s) << shift)
}

// AllDeadAndStable reports whether every quadrant's whole-region state
// is Dead, the condition for a block to belong on the Dead list (§3).
func (m ActivityMask) AllDeadAndStable() bool {
	for q := quadNW; q <= quadSE; q++ {
		if m.Field(q).Get(RegionWhole) != RegionDead {
			return false
		}
	}
	return true
}

// AnyActive reports whether any quadrant's whole region is still Active.
func (m ActivityMask) AnyActive() bool {
	for q := quadNW; q <= quadSE; q++ {
		if m.Field(q).Get(RegionWhole) == RegionActive {
			return true
		}
	}
	return false
}

// inRegion reports whether local Quad3 cell (x, y), x,y in [0,8), lies
// within the named region for the given phase (§3's per-phase region
// definitions: vertical edge is west on even / east on odd, etc).
func inRegion(r Region, phase Phase, x, y int) bool {
	switch r {
	case RegionWhole:
		return true
	case RegionVertEdge:
		if phase == Even {
			return x < 2
		}
		return x >= 6
	case RegionHorizEdge:
		if phase == Even {
			return y >= 6
		}
		return y < 2
	case RegionCorner:
		if phase == Even {
			return x < 2 && y >= 6
		}
		return x >= 6 && y < 2
	}
	return false
}

// compareRegion reports whether any cell of the named region differs
// between old and new, and whether the region is entirely dead in new.
func compareRegion(oldQ, newQ bitquad.Quad3, r Region, phase Phase) (changed, dead bool) {
	dead = true
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if !inRegion(r, phase, x, y) {
				continue
			}
			o, n := oldQ.Get(x, y), newQ.Get(x, y)
			if o != n {
				changed = true
			}
			if n {
				dead = false
			}
		}
	}
	return changed, dead
}

// nextQuadState derives the tri-state of each region from a comparison
// of oldQ against newQ, enforcing §3's nesting rule: because the
// corner is contained in both edges, and both edges are contained in
// the whole quadrant, a changed corner forces both edges active and a
// changed edge forces the whole quadrant active.
func nextQuadState(oldQ, newQ bitquad.Quad3, phase Phase) QuadState {
	cornerChanged, cornerDead := compareRegion(oldQ, newQ, RegionCorner, phase)
	vertChanged, vertDead := compareRegion(oldQ, newQ, RegionVertEdge, phase)
	horizChanged, horizDead := compareRegion(oldQ, newQ, RegionHorizEdge, phase)
	wholeChanged, wholeDead := compareRegion(oldQ, newQ, RegionWhole, phase)

	var s QuadState
	s = setRegionState(s, RegionCorner, cornerChanged, cornerDead)
	s = setRegionState(s, RegionVertEdge, vertChanged || cornerChanged, vertDead)
	s = setRegionState(s, RegionHorizEdge, horizChanged || cornerChanged, horizDead)
	s = setRegionState(s, RegionWhole, wholeChanged || vertChanged || horizChanged || cornerChanged, wholeDead)
	return s
}

func setRegionState(s QuadState, r Region, active bool, dead bool) QuadState {
	switch {
	case active:
		return s.Set(r, RegionActive)
	case dead:
		return s.Set(r, RegionDead)
	default:
		return s.Set(r, RegionStable)
	}
}
