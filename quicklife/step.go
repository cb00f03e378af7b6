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

// stepPhase advances every cell of one 16x16 phase buffer by one
// generation, reading through sample (which supplies the one-cell
// margin from all eight neighbour blocks) and writing the result with
// set.
//
// The block is tiled into an 8x8 grid of 2x2 output tiles; each tile's
// next state is a single bitquad.StepTable lookup keyed on the 4x4
// window centered on it, assembled here by direct sampling of each
// window. DESIGN.md records this as a deliberate simplification of
// §4.2's described mirror/flip seam-composition trick, which reuses
// fewer underlying lookups across the sixteen windows of a block but
// reaches the same per-cell result.
func stepPhase(sample func(x, y int) bool, set func(x, y int)) {
	for tr := 0; tr < 8; tr++ {
		for tc := 0; tc < 8; tc++ {
			ox, oy := tc*2, tr*2
			var window bitquad.Quad2
			for wy := 0; wy < 4; wy++ {
				for wx := 0; wx < 4; wx++ {
					if sample(ox-1+wx, oy-1+wy) {
						window = window.Set(wx, wy)
					}
				}
			}
			corner := bitquad.StepTable[window]
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					if corner.Get(dx, dy) {
						set(ox+dx, oy+dy)
					}
				}
			}
		}
	}
}

// stepEvenToOdd computes b's new Odd phase from its Even phase plus
// the even phases of all eight neighbouring blocks.
func stepEvenToOdd(b *Block) phaseQuads {
	var next phaseQuads
	stepPhase(func(x, y int) bool { return b.at(Even, x, y) }, next.set)
	return next
}

// stepOddToEven computes b's new Even phase from its Odd phase plus
// the odd phases of all eight neighbouring blocks.
func stepOddToEven(b *Block) phaseQuads {
	var next phaseQuads
	stepPhase(func(x, y int) bool { return b.at(Odd, x, y) }, next.set)
	return next
}

// applyStep replaces b's phase buffer for the destination phase with
// next, updates the destination phase's activity mask by comparing
// against the prior contents of that buffer, and reports whether any
// region anywhere in the block is still Active.
func applyStep(b *Block, dest Phase, next phaseQuads) bool {
	var old phaseQuads
	var mask *ActivityMask
	if dest == Odd {
		old, b.Odd = b.Odd, next
		mask = &b.OddState
	} else {
		old, b.Even = b.Even, next
		mask = &b.EvenState
	}
	anyActive := false
	for q := quadNW; q <= quadSE; q++ {
		s := nextQuadState(old.quadrant(q), next.quadrant(q), dest)
		*mask = mask.WithField(q, s)
		if s.Get(RegionWhole) == RegionActive {
			anyActive = true
		}
	}
	return anyActive
}
