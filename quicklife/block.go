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

// Package quicklife implements the Hensel block engine of §4.2: a
// sparse grid of double-buffered 16x16 blocks that advance one
// generation at a time, skipping blocks and regions whose next state
// is provably unchanged.
package quicklife

import "github.com/conwaylife/lifecore/bitquad"

// Membership identifies which of the grid's three lists a block
// currently belongs to (§3).
type Membership int

const (
	Active Membership = iota
	Stable
	Dead
)

// phaseQuads is the four Quad3 quadrants of one phase of a Quad4Block,
// covering a 16x16 region (§3).
type phaseQuads struct {
	NW, NE, SW, SE bitquad.Quad3
}

func (p phaseQuads) get(x, y int) bool {
	switch {
	case x < 8 && y >= 8:
		return p.NW.Get(x, y-8)
	case x >= 8 && y >= 8:
		return p.NE.Get(x-8, y-8)
	case x < 8 && y < 8:
		return p.SW.Get(x, y)
	default:
		return p.SE.Get(x-8, y)
	}
}

func (p *phaseQuads) set(x, y int) {
	switch {
	case x < 8 && y >= 8:
		p.NW = p.NW.Set(x, y-8)
	case x >= 8 && y >= 8:
		p.NE = p.NE.Set(x-8, y-8)
	case x < 8 && y < 8:
		p.SW = p.SW.Set(x, y)
	default:
		p.SE = p.SE.Set(x-8, y)
	}
}

func (p *phaseQuads) clear(x, y int) {
	switch {
	case x < 8 && y >= 8:
		p.NW = p.NW.Clear(x, y-8)
	case x >= 8 && y >= 8:
		p.NE = p.NE.Clear(x-8, y-8)
	case x < 8 && y < 8:
		p.SW = p.SW.Clear(x, y)
	default:
		p.SE = p.SE.Clear(x-8, y)
	}
}

func (p phaseQuads) quadrant(q int) bitquad.Quad3 {
	switch q {
	case quadNW:
		return p.NW
	case quadSW:
		return p.SW
	case quadNE:
		return p.NE
	default:
		return p.SE
	}
}

func (p *phaseQuads) setQuadrant(q int, v bitquad.Quad3) {
	switch q {
	case quadNW:
		p.NW = v
	case quadSW:
		p.SW = v
	case quadNE:
		p.NE = v
	default:
		p.SE = v
	}
}

// Block is a Quad4Block: a 16x16 double-buffered region of the
// infinite grid at block coordinates (BX, BY) (§3).
type Block struct {
	BX, BY int16

	Even, Odd phaseQuads

	// Direct neighbour links. NE and SW are intentionally not stored
	// (§3: "NE/SW are inferable via neighbours' neighbours").
	N, S, E, W, NW, SE *Block

	EvenState, OddState ActivityMask
	StayActiveNextStep  bool
	Membership          Membership

	prev, next *Block // intrusive link for the owning list
}

// newBlock allocates an all-dead block. Its masks are seeded with
// DeadActivityMask rather than left at their zero value: QuadState's
// zero value decodes as all-Active (see activity.go), and a block that
// is stepped in only one phase direction before its neighbours stop
// waking it must still be able to reach the Dead list on its first
// qualifying check instead of being permanently misread as active.
func newBlock(bx, by int16) *Block {
	return &Block{
		BX: bx, BY: by,
		Membership: Active,
		EvenState:  DeadActivityMask,
		OddState:   DeadActivityMask,
	}
}

// NE computes the north-east diagonal neighbour transitively via N.E
// or E.N, returning nil if neither path is known.
func (b *Block) NE() *Block {
	if b.N != nil && b.N.E != nil {
		return b.N.E
	}
	if b.E != nil && b.E.N != nil {
		return b.E.N
	}
	return nil
}

// SW computes the south-west diagonal neighbour transitively via S.W
// or W.S, returning nil if neither path is known.
func (b *Block) SW() *Block {
	if b.S != nil && b.S.W != nil {
		return b.S.W
	}
	if b.W != nil && b.W.S != nil {
		return b.W.S
	}
	return nil
}

// at samples phase buffer `phase` at block-local coordinates (x, y),
// x,y in [-1,17): the block's own 16x16 plus a one-cell margin on all
// eight sides, drawn from the matching phase of the matching
// neighbour.
//
// The source specification's Quad4Block saves work by offsetting the
// odd buffer by one cell to the southeast, so that stepping even->odd
// only ever needs to read south/east/southeast neighbours (and
// odd->even only north/west/northwest). This implementation instead
// keeps both phase buffers aligned to the same footprint and samples
// all eight neighbours every step; it is simpler to derive correctly
// without a compiler to check the shifted-coordinate arithmetic, at
// the cost of touching a few more neighbour blocks per generation (see
// DESIGN.md).
func (b *Block) at(phase Phase, x, y int) bool {
	get := func(blk *Block, lx, ly int) bool {
		if blk == nil {
			return false
		}
		if phase == Even {
			return blk.Even.get(lx, ly)
		}
		return blk.Odd.get(lx, ly)
	}
	switch {
	case x >= 0 && x < 16 && y >= 0 && y < 16:
		return get(b, x, y)
	case x == -1 && y >= 0 && y < 16:
		return get(b.W, 15, y)
	case x == 16 && y >= 0 && y < 16:
		return get(b.E, 0, y)
	case y == -1 && x >= 0 && x < 16:
		return get(b.S, x, 15)
	case y == 16 && x >= 0 && x < 16:
		return get(b.N, x, 0)
	case x == -1 && y == -1:
		return get(b.SW(), 15, 15)
	case x == 16 && y == -1:
		return get(b.SE, 0, 15)
	case x == -1 && y == 16:
		return get(b.NW, 15, 0)
	case x == 16 && y == 16:
		return get(b.NE(), 0, 0)
	default:
		return false
	}
}
