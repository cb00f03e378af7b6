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

package hashlife

import "github.com/conwaylife/lifecore/quad"

// stepKey is the step memo's key: a canonical node identity plus the
// requested speed. Because *quad.Quad identity already implies deep
// structural equality, this is an identity-keyed cache exactly like
// the construction memo in package quad.
type stepKey struct {
	q *quad.Quad
	k int
}

// step computes Step(q, k) per §4.1: q has level L >= 2, 0 <= k <=
// L-2, and the result has level L-1 containing the center of q
// advanced by exactly 2^k generations.
func (e *Engine) step(q *quad.Quad, k int) *quad.Quad {
	if q.Level < 2 || k < 0 || k > q.Level-2 {
		panic("hashlife: step called outside its (level, speed) contract")
	}
	key := stepKey{q, k}
	if r, ok := stepMemo[key]; ok {
		return r
	}
	e.maybeEvict()
	r := e.computeStep(q, k)
	stepMemo[key] = r
	return r
}

func (e *Engine) computeStep(q *quad.Quad, k int) *quad.Quad {
	m := e.memo
	L := q.Level
	if m.IsEmpty(q) {
		return m.Empty(L - 1)
	}
	if L == 2 {
		return baseStep(m, q)
	}

	// The nine overlapping level-(L-1) pieces, laid out as a 3x3
	// window over q's 4x4 grandchildren grid (§4.1 "General case").
	pieces := [9]*quad.Quad{
		q.NW, m.North(q), q.NE,
		m.West(q), m.Center(q), m.East(q),
		q.SW, m.South(q), q.SE,
	}

	kPrime := k
	if kPrime > L-3 {
		kPrime = L - 3
	}
	var stepped [9]*quad.Quad
	for i, p := range pieces {
		stepped[i] = e.step(p, kPrime)
	}

	// Assemble four level-(L-1) blocks from a 2x2 sliding window over
	// the 3x3 grid of (now level-(L-2)) stepped pieces.
	assembled := [4]*quad.Quad{
		m.Join(stepped[0], stepped[1], stepped[4], stepped[3]), // NW
		m.Join(stepped[1], stepped[2], stepped[5], stepped[4]), // NE
		m.Join(stepped[4], stepped[5], stepped[8], stepped[7]), // SE
		m.Join(stepped[3], stepped[4], stepped[7], stepped[6]), // SW
	}

	var corners [4]*quad.Quad
	if k == L-2 {
		// Maximal speed for this level: step the assembled blocks
		// again, at the same depth L-3 used above, to advance the
		// remaining 2^(L-3) generations.
		for i, b := range assembled {
			corners[i] = e.step(b, L-3)
		}
	} else {
		// k < L-2 means k <= L-3, so kPrime already equals k and the
		// assembled blocks already encode the requested 2^k
		// generations: just extract their geometric center, with no
		// further temporal advance.
		for i, b := range assembled {
			corners[i] = m.Center(b)
		}
	}
	return m.Join(corners[0], corners[1], corners[2], corners[3])
}

// baseStep handles the level-2 base case: q is a 4x4 grid and the
// result is the center 2x2 (level 1) advanced by one generation,
// computed directly from the B3/S23 rule.
func baseStep(m *quad.Memoizer, q *quad.Quad) *quad.Quad {
	alive := func(x, y int64) int {
		if quad.CellAt(q, x, y) {
			return 1
		}
		return 0
	}
	next := func(cx, cy int64) *quad.Quad {
		n := 0
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n += alive(cx+dx, cy+dy)
			}
		}
		self := alive(cx, cy) == 1
		live := n == 3 || (self && n == 2)
		if live {
			return quad.AliveCell()
		}
		return quad.DeadCell()
	}
	// Center 2x2 of the 4x4 grid is local (1,1),(2,1),(1,2),(2,2).
	return m.Join(next(1, 2), next(2, 2), next(2, 1), next(1, 1))
}
