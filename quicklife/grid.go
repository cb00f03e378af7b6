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
	"fmt"

	"github.com/conwaylife/lifecore/quad"
	"github.com/dchest/siphash"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

type coord struct{ bx, by int16 }

// reclaimEvery is the generation interval at which the Dead list is
// walked and its entries returned to the free list (§4.2).
const reclaimEvery = 128

// Grid is the SparseBlockGrid of §3/§4.2: a hash map from block
// coordinates to Quad4Block, plus the three intrusive lists and the
// phase-advance driver.
type Grid struct {
	blocks map[coord]*Block

	activeHead, activeTail *Block
	stableHead, stableTail *Block
	deadHead, deadTail     *Block

	phase        Phase
	generation   uint64
	sinceReclaim int
	id           string
	sipK0, sipK1 uint64
}

// NewGrid returns an empty QuickLife universe at generation 0.
func NewGrid() *Grid {
	return &Grid{
		blocks: make(map[coord]*Block),
		phase:  Even,
		id:     uuid.New().String(),
		sipK0:  0x5152535455565758,
		sipK1:  0x6162636465666768,
	}
}

// ID returns the grid's session identifier, assigned once at
// construction, surfaced by Report for distinguishing universes in a
// batch run (see cmd/lifectl).
func (g *Grid) ID() string { return g.id }

// Generation returns the number of single generations the grid has
// advanced since construction.
func (g *Grid) Generation() uint64 { return g.generation }

// Clear resets the grid to an all-dead grid at generation 0, discarding
// every block.
func (g *Grid) Clear() {
	g.blocks = make(map[coord]*Block)
	g.activeHead, g.activeTail = nil, nil
	g.stableHead, g.stableTail = nil, nil
	g.deadHead, g.deadTail = nil, nil
	g.phase = Even
	g.generation = 0
	g.sinceReclaim = 0
}

func (g *Grid) headRef(m Membership) **Block {
	switch m {
	case Active:
		return &g.activeHead
	case Stable:
		return &g.stableHead
	default:
		return &g.deadHead
	}
}

func (g *Grid) tailRef(m Membership) **Block {
	switch m {
	case Active:
		return &g.activeTail
	case Stable:
		return &g.stableTail
	default:
		return &g.deadTail
	}
}

func (g *Grid) unlink(b *Block) {
	hr, tr := g.headRef(b.Membership), g.tailRef(b.Membership)
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		*hr = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	} else {
		*tr = b.prev
	}
	b.prev, b.next = nil, nil
}

func (g *Grid) pushFront(m Membership, b *Block) {
	hr, tr := g.headRef(m), g.tailRef(m)
	b.Membership = m
	b.prev = nil
	b.next = *hr
	if *hr != nil {
		(*hr).prev = b
	}
	*hr = b
	if *tr == nil {
		*tr = b
	}
}

func (g *Grid) moveTo(b *Block, m Membership) {
	if b.Membership == m {
		return
	}
	g.unlink(b)
	g.pushFront(m, b)
}

// blockDigest is a siphash-2-4 fingerprint of a block's coordinates,
// used only for the diagnostic summary in Report -- the authoritative
// lookup structure is the coordinate-keyed Go map above.
func (g *Grid) blockDigest(bx, by int16) uint64 {
	var buf [4]byte
	buf[0] = byte(bx)
	buf[1] = byte(bx >> 8)
	buf[2] = byte(by)
	buf[3] = byte(by >> 8)
	return siphash.Hash(g.sipK0, g.sipK1, buf[:])
}

func (g *Grid) getOrCreate(bx, by int16) *Block {
	c := coord{bx, by}
	if b, ok := g.blocks[c]; ok {
		return b
	}
	b := newBlock(bx, by)
	g.blocks[c] = b
	if n, ok := g.blocks[coord{bx, by + 1}]; ok {
		b.N, n.S = n, b
	}
	if s, ok := g.blocks[coord{bx, by - 1}]; ok {
		b.S, s.N = s, b
	}
	if e, ok := g.blocks[coord{bx + 1, by}]; ok {
		b.E, e.W = e, b
	}
	if w, ok := g.blocks[coord{bx - 1, by}]; ok {
		b.W, w.E = w, b
	}
	if nw, ok := g.blocks[coord{bx - 1, by + 1}]; ok {
		b.NW, nw.SE = nw, b
	}
	if se, ok := g.blocks[coord{bx + 1, by - 1}]; ok {
		b.SE, se.NW = se, b
	}
	g.pushFront(Active, b)
	return b
}

// wakeNeighbors marks b's six directly-linked neighbours Active,
// allocating any that don't yet exist (§4.2: "allocating it if
// absent"). A pattern growing toward empty space must force its
// neighbour block into existence so that block gets a chance to step
// and pick up cells spilling across the shared edge; without this, a
// shape straddling a block boundary would lose the cells that belong
// to the not-yet-created neighbour every generation.
//
// This wakes all six links regardless of which specific edge of b is
// actually active, a conservative over-approximation of §4.2's
// per-edge activation in exchange for much simpler bookkeeping (see
// DESIGN.md).
func (g *Grid) wakeNeighbors(b *Block) {
	deltas := [...][2]int64{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {-1, 1}, {1, -1}}
	for _, d := range deltas {
		bx, by := int64(b.BX)+d[0], int64(b.BY)+d[1]
		if !blockInRange(bx, by) {
			continue
		}
		n := g.getOrCreate(int16(bx), int16(by))
		if n.Membership != Active {
			g.moveTo(n, Active)
		}
	}
}

func floorDivMod16(v int64) (q int64, r int) {
	q = v >> 4
	r = int(v & 15)
	return
}

// blockAndLocal returns the (not yet range-checked) block coordinates
// and in-block offset for world cell (x, y).
func (g *Grid) blockAndLocal(x, y int64) (bx, by int64, lx, ly int) {
	bx, lx = floorDivMod16(x)
	by, ly = floorDivMod16(y)
	return
}

func blockInRange(bx, by int64) bool {
	return bx >= -32768 && bx <= 32767 && by >= -32768 && by <= 32767
}

// Get reads the cell at external coordinates (x, y). Both phase
// buffers of a block share the same footprint (see the note on
// Block.at in block.go), so no coordinate transform is needed between
// phases.
func (g *Grid) Get(x, y int64) bool {
	bx, by, cx, cy := g.blockAndLocal(x, y)
	if !blockInRange(bx, by) {
		return false
	}
	b, ok := g.blocks[coord{int16(bx), int16(by)}]
	if !ok {
		return false
	}
	if g.phase == Even {
		return b.Even.get(cx, cy)
	}
	return b.Odd.get(cx, cy)
}

// Set writes the cell at external coordinates (x, y), allocating a
// block if needed and marking it (and its neighbours) Active.
func (g *Grid) Set(x, y int64, alive bool) {
	bxi, byi, cx, cy := g.blockAndLocal(x, y)
	if !blockInRange(bxi, byi) {
		return // clipped per §4.2's 16-bit block coordinate range
	}
	b := g.getOrCreate(int16(bxi), int16(byi))
	if g.phase == Even {
		if alive {
			b.Even.set(cx, cy)
		} else {
			b.Even.clear(cx, cy)
		}
	} else {
		if alive {
			b.Odd.set(cx, cy)
		} else {
			b.Odd.clear(cx, cy)
		}
	}
	b.StayActiveNextStep = true
	g.moveTo(b, Active)
	g.wakeNeighbors(b)
}

// Step advances the grid by 2^speed generations (speed 0 is a single
// generation), matching the life.Universe contract shared with
// package hashlife.
func (g *Grid) Step(speed int) {
	speed = quad.Clamp(speed, 0, 62)
	n := uint64(1) << uint(speed)
	for i := uint64(0); i < n; i++ {
		g.stepOnce()
	}
}

func (g *Grid) stepOnce() {
	dest := g.phase.Opposite()

	var actives []*Block
	for b := g.activeHead; b != nil; b = b.next {
		actives = append(actives, b)
	}

	for _, b := range actives {
		var next phaseQuads
		if g.phase == Even {
			next = stepEvenToOdd(b)
		} else {
			next = stepOddToEven(b)
		}
		sticky := b.StayActiveNextStep
		b.StayActiveNextStep = false
		anyActive := applyStep(b, dest, next)
		if !anyActive {
			// The source phase's mask was last written two generations
			// ago; refresh it to Dead when that buffer is now empty, so
			// an emptied block can reach the Dead list below.
			src, srcState := b.Even, &b.EvenState
			if g.phase == Odd {
				src, srcState = b.Odd, &b.OddState
			}
			if src.NW.IsAllDead() && src.NE.IsAllDead() && src.SW.IsAllDead() && src.SE.IsAllDead() {
				*srcState = DeadActivityMask
			}
		}

		switch {
		case anyActive:
			g.wakeNeighbors(b)
		case sticky:
			// Edited this generation: stay Active one more round even
			// though the step itself produced no change.
		case b.EvenState.AllDeadAndStable() && b.OddState.AllDeadAndStable():
			g.moveTo(b, Dead)
		default:
			g.moveTo(b, Stable)
		}
	}

	g.phase = dest
	g.generation++
	g.sinceReclaim++
	if g.sinceReclaim >= reclaimEvery || (g.deadHead != nil && g.countDead() > 64) {
		g.reclaimDead()
	}
}

func (g *Grid) countDead() int {
	n := 0
	for b := g.deadHead; b != nil; b = b.next {
		n++
	}
	return n
}

// reclaimDead walks the Dead list, unlinks each block from its
// neighbours and the coordinate map, and discards it (§4.2).
func (g *Grid) reclaimDead() {
	g.sinceReclaim = 0
	b := g.deadHead
	for b != nil {
		next := b.next
		g.unlinkNeighbors(b)
		delete(g.blocks, coord{b.BX, b.BY})
		g.unlink(b)
		b = next
	}
}

func (g *Grid) unlinkNeighbors(b *Block) {
	if b.N != nil {
		b.N.S = nil
	}
	if b.S != nil {
		b.S.N = nil
	}
	if b.E != nil {
		b.E.W = nil
	}
	if b.W != nil {
		b.W.E = nil
	}
	if b.NW != nil {
		b.NW.SE = nil
	}
	if b.SE != nil {
		b.SE.NW = nil
	}
}

// Rect is an axis-aligned, half-open rectangle: x in [MinX, MaxX), y
// in [MinY, MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int64
}

// Draw invokes cb(x, y) once for every live cell within rect, in
// ascending block-coordinate order for determinism (§4.4). Dead
// blocks are skipped entirely.
func (g *Grid) Draw(rect Rect, cb func(x, y int64)) {
	coords := make([]coord, 0, len(g.blocks))
	for c, b := range g.blocks {
		if b.Membership == Dead {
			continue
		}
		coords = append(coords, c)
	}
	slices.SortFunc(coords, func(a, b coord) bool {
		if a.by != b.by {
			return a.by < b.by
		}
		return a.bx < b.bx
	})
	for _, c := range coords {
		b := g.blocks[c]
		for ly := 0; ly < 16; ly++ {
			for lx := 0; lx < 16; lx++ {
				var alive bool
				if g.phase == Even {
					alive = b.Even.get(lx, ly)
				} else {
					alive = b.Odd.get(lx, ly)
				}
				if !alive {
					continue
				}
				wx := int64(b.BX)*16 + int64(lx)
				wy := int64(b.BY)*16 + int64(ly)
				if wx >= rect.MinX && wx < rect.MaxX && wy >= rect.MinY && wy < rect.MaxY {
					cb(wx, wy)
				}
			}
		}
	}
}

// Report returns a human-readable summary of generation count and
// list occupancy, purely diagnostic.
func (g *Grid) Report() string {
	var active, stable, dead int
	for b := g.activeHead; b != nil; b = b.next {
		active++
	}
	for b := g.stableHead; b != nil; b = b.next {
		stable++
	}
	for b := g.deadHead; b != nil; b = b.next {
		dead++
	}
	var digest uint64
	for c := range g.blocks {
		digest ^= g.blockDigest(c.bx, c.by)
	}
	return fmt.Sprintf(
		"quicklife[%s] generation=%d blocks=%d active=%d stable=%d dead=%d digest=%016x",
		g.id, g.generation, len(g.blocks), active, stable, dead, digest,
	)
}
