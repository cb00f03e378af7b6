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

// Package hashlife implements the embiggen/step driver of §4.1: it
// keeps the active region of a quad.Quad centered in sufficiently
// padded empty space and repeatedly invokes the memoized step
// function to advance the universe by 2^speed generations.
package hashlife

import (
	"fmt"

	"github.com/conwaylife/lifecore/quad"
	"github.com/google/uuid"
)

// Engine is a single HashLife universe. Both its construction memo
// (quad.Default) and its step memo (below) are process-wide
// singletons per §5 ("HashLife memo tables are process-wide
// singletons ... and are written only from the engine's own
// thread"), so canonical identity and memoized steps are shared
// across every Engine running on the same goroutine; only the current
// root (cells) and generation counter are per-Engine state.
type Engine struct {
	memo       *quad.Memoizer
	cells      *quad.Quad
	generation uint64
	id         string
}

const initialStepThreshold = 1 << 16

// stepMemo and stepThreshold are the process-wide step memo singleton
// and its eviction threshold, mirroring quad.Default/quad.Memoizer.
var (
	stepMemo      = make(map[stepKey]*quad.Quad, 1024)
	stepThreshold = initialStepThreshold
)

// New creates an empty HashLife universe at the minimum level (3),
// which already satisfies the "outer two rings empty" invariant.
func New() *Engine {
	e := &Engine{
		memo: quad.Default,
		id:   uuid.New().String(),
	}
	e.cells = e.memo.Empty(3)
	return e
}

// ID returns the engine's session identifier, assigned once at
// construction, surfaced by Report for distinguishing universes in a
// batch run (see cmd/lifectl).
func (e *Engine) ID() string { return e.id }

// Generation returns the number of single-cell-generations the
// universe has advanced since construction.
func (e *Engine) Generation() uint64 { return e.generation }

// Clear resets the universe to an all-dead grid at generation 0.
func (e *Engine) Clear() {
	e.cells = e.memo.Empty(3)
	e.generation = 0
}

// maybeEvict implements §4.1's eviction policy over the *combined*
// size of the construction and step memos, both process-wide.
func (e *Engine) maybeEvict() {
	combined := e.memo.Len() + len(stepMemo)
	if combined <= stepThreshold {
		return
	}
	e.memo.Reset()
	stepMemo = make(map[stepKey]*quad.Quad, 1024)
	after := e.memo.Len() + len(stepMemo)
	e.memo.GrowThreshold(after)
	if next := after * 2; next > stepThreshold*2 {
		stepThreshold = next
	} else {
		stepThreshold *= 2
	}
}

// origin returns the half-side of the current universe: cells spans
// [-half, half) in both axes.
func (e *Engine) origin() int64 { return e.cells.Side() / 2 }

// Get reads the cell at absolute coordinates (x, y); false outside
// the representable region (§7 clipping policy -- there is no error,
// only an implicit "dead" answer for coordinates the universe has
// never been grown to cover).
func (e *Engine) Get(x, y int64) bool {
	half := e.origin()
	lx, ly := x+half, y+half
	if lx < 0 || ly < 0 || lx >= e.cells.Side() || ly >= e.cells.Side() {
		return false
	}
	return quad.CellAt(e.cells, lx, ly)
}

// Set writes the cell at absolute coordinates (x, y), embiggening the
// universe as needed so the coordinate becomes representable. Levels
// beyond quad.MaxLevel are not reachable; writes that would require
// exceeding it are clipped (no-op), per §7.
func (e *Engine) Set(x, y int64, alive bool) {
	for !e.inRange(x, y) {
		if !e.embiggenOnce() {
			return // clipped: at MaxLevel and still out of range
		}
	}
	e.cells = setCell(e.memo, e.cells, x+e.origin(), y+e.origin(), alive)
}

func (e *Engine) inRange(x, y int64) bool {
	half := e.origin()
	return x >= -half && x < half && y >= -half && y < half
}

// embiggenOnce wraps cells in one more ring of empty space, doubling
// its side length. Returns false if already at MaxLevel.
func (e *Engine) embiggenOnce() bool {
	if e.cells.Level >= quad.MaxLevel {
		return false
	}
	q := e.cells
	empty := e.memo.Empty(q.Level - 1)
	newNW := e.memo.Join(empty, empty, q.NW, empty) // old NW sits at its SE corner
	newNE := e.memo.Join(empty, empty, empty, q.NE) // old NE sits at its SW corner
	newSE := e.memo.Join(q.SE, empty, empty, empty) // old SE sits at its NW corner
	newSW := e.memo.Join(empty, q.SW, empty, empty) // old SW sits at its NE corner
	e.cells = e.memo.Join(newNW, newNE, newSE, newSW)
	return true
}

func setCell(m *quad.Memoizer, q *quad.Quad, x, y int64, alive bool) *quad.Quad {
	if q.Level == 0 {
		if alive {
			return quad.AliveCell()
		}
		return quad.DeadCell()
	}
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
		return m.Join(setCell(m, q.NW, x, y, alive), q.NE, q.SE, q.SW)
	case north && east:
		return m.Join(q.NW, setCell(m, q.NE, x, y, alive), q.SE, q.SW)
	case !north && east:
		return m.Join(q.NW, q.NE, setCell(m, q.SE, x, y, alive), q.SW)
	default:
		return m.Join(q.NW, q.NE, q.SE, setCell(m, q.SW, x, y, alive))
	}
}

// padForStep applies §4.1's padding discipline: enlarge by two levels
// if any living cell touches the outer ring, by one level if any
// living cell is in the second-outermost ring, so that a step is
// always safe to perform on a sufficiently-padded cells.
func (e *Engine) padForStep() {
	for ringHasLife(e.cells, 0) && e.cells.Level < quad.MaxLevel {
		e.embiggenOnce()
		e.embiggenOnce()
	}
	if ringHasLife(e.cells, 1) {
		e.embiggenOnce()
	}
}

// ringHasLife reports whether any live cell lies on the ring `depth`
// cells in from the edge of q (depth 0 = outermost ring).
func ringHasLife(q *quad.Quad, depth int64) bool {
	side := q.Side()
	if side <= 2*depth {
		return false
	}
	for x := depth; x < side-depth; x++ {
		if quad.CellAt(q, x, depth) || quad.CellAt(q, x, side-1-depth) {
			return true
		}
	}
	for y := depth + 1; y < side-1-depth; y++ {
		if quad.CellAt(q, depth, y) || quad.CellAt(q, side-1-depth, y) {
			return true
		}
	}
	return false
}

// Step advances the universe by 2^speed generations, per §6. speed
// must be >= 0; speed == 0 advances by a single generation.
func (e *Engine) Step(speed int) {
	speed = quad.Clamp(speed, 0, quad.MaxLevel-2)
	e.padForStep()
	for e.cells.Level-2 < speed && e.cells.Level < quad.MaxLevel {
		e.embiggenOnce()
		e.padForStep()
	}
	if e.cells.Level-2 < speed {
		speed = e.cells.Level - 2 // clipped: cannot embiggen further
	}
	e.cells = e.step(e.cells, speed)
	e.generation += uint64(1) << uint(speed)
	// Re-pad so the next Step call begins from an already-padded root;
	// also restores the level the embiggen above borrowed.
	e.embiggenOnce()
}

// Draw invokes cb(x, y) once for every live cell within rect, pruning
// recursion on quads whose bounding box does not intersect rect
// (§4.4).
func (e *Engine) Draw(rect Rect, cb func(x, y int64)) {
	half := e.origin()
	draw(e.cells, -half, -half, rect, cb)
}

// Rect is an axis-aligned, half-open rectangle: x in [MinX, MaxX), y
// in [MinY, MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int64
}

func draw(q *quad.Quad, originX, originY int64, rect Rect, cb func(x, y int64)) {
	side := q.Side()
	if originX+side <= rect.MinX || originX >= rect.MaxX {
		return
	}
	if originY+side <= rect.MinY || originY >= rect.MaxY {
		return
	}
	if q.IsLeaf() {
		if q.Alive && originX >= rect.MinX && originX < rect.MaxX && originY >= rect.MinY && originY < rect.MaxY {
			cb(originX, originY)
		}
		return
	}
	half := side / 2
	draw(q.SW, originX, originY, rect, cb)
	draw(q.SE, originX+half, originY, rect, cb)
	draw(q.NW, originX, originY+half, rect, cb)
	draw(q.NE, originX+half, originY+half, rect, cb)
}

// Report returns a human-readable summary of generation count and
// memo cache statistics, per §6 -- purely diagnostic.
func (e *Engine) Report() string {
	stats := e.memo.Stats()
	return fmt.Sprintf(
		"hashlife[%s] generation=%d level=%d population=%d construct_entries=%d step_entries=%d threshold=%d",
		e.id, e.generation, e.cells.Level, e.cells.Population(),
		stats.ConstructEntries, len(stepMemo), stepThreshold,
	)
}
