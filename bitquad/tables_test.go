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

func TestStepQuad2CenterAllDead(t *testing.T) {
	if got := StepQuad2Center(0); got != 0 {
		t.Fatalf("an empty 4x4 must step to an empty center, got %04b", got)
	}
}

func TestStepQuad2CenterBlinker(t *testing.T) {
	// Horizontal blinker across the middle row, local y=1, x=0..2.
	var q Quad2
	q = q.Set(0, 1).Set(1, 1).Set(2, 1)
	got := StepQuad2Center(q)
	// After one step the blinker is vertical through (1,1) and (1,2):
	// center cell (1,1) alive, (2,1) dead, (1,2) alive, (2,2) dead.
	if !got.Get(0, 0) { // maps to center-local (1,1)
		t.Fatalf("expected center (1,1) alive, got %04b", got)
	}
	if got.Get(1, 0) { // maps to center-local (2,1)
		t.Fatalf("expected center (2,1) dead, got %04b", got)
	}
	if !got.Get(0, 1) { // maps to center-local (1,2)
		t.Fatalf("expected center (1,2) alive, got %04b", got)
	}
}

func TestStepTableAgreesWithDirectComputation(t *testing.T) {
	var q Quad2
	q = q.Set(1, 1).Set(2, 1).Set(1, 2).Set(2, 2) // a 2x2 block, stable
	want := StepQuad2Center(q)
	if StepTable[q] != want {
		t.Fatalf("StepTable[q] = %04b, want %04b", StepTable[q], want)
	}
}

func TestStepTableCoversFullRange(t *testing.T) {
	if len(StepTable) != tableSize {
		t.Fatalf("StepTable has %d entries, want %d", len(StepTable), tableSize)
	}
	var allSet Quad2 = 0xffff
	if StepTable[allSet] != StepQuad2Center(allSet) {
		t.Fatalf("StepTable[0xffff] does not match a direct computation")
	}
}
