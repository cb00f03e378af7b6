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

package life

import (
	"sort"
	"testing"
)

type point struct{ x, y int64 }

func liveCells(u Universe, minX, minY, maxX, maxY int64) []point {
	var got []point
	u.Draw(Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, func(x, y int64) {
		got = append(got, point{x, y})
	})
	sort.Slice(got, func(i, j int) bool {
		if got[i].y != got[j].y {
			return got[i].y < got[j].y
		}
		return got[i].x < got[j].x
	})
	return got
}

func assertCells(t *testing.T, u Universe, want []point) {
	t.Helper()
	sort.Slice(want, func(i, j int) bool {
		if want[i].y != want[j].y {
			return want[i].y < want[j].y
		}
		return want[i].x < want[j].x
	})
	got := liveCells(u, -64, -64, 64, 64)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func forEachVariant(t *testing.T, f func(t *testing.T, u Universe)) {
	t.Run("HashLife", func(t *testing.T) { f(t, NewHashLife()) })
	t.Run("QuickLife", func(t *testing.T) { f(t, NewQuickLife()) })
}

func TestBlinkerPeriodBothVariants(t *testing.T) {
	forEachVariant(t, func(t *testing.T, u Universe) {
		u.Set(0, 0, true)
		u.Set(1, 0, true)
		u.Set(2, 0, true)
		u.Step(0)
		assertCells(t, u, []point{{1, -1}, {1, 0}, {1, 1}})
		u.Step(0)
		assertCells(t, u, []point{{0, 0}, {1, 0}, {2, 0}})
	})
}

func TestClearResetsToEmpty(t *testing.T) {
	forEachVariant(t, func(t *testing.T, u Universe) {
		u.Set(0, 0, true)
		u.Set(1, 1, true)
		u.Clear()
		if u.Get(0, 0) || u.Get(1, 1) {
			t.Fatalf("Clear must leave the universe entirely dead")
		}
		got := liveCells(u, -64, -64, 64, 64)
		if len(got) != 0 {
			t.Fatalf("Clear left live cells: %v", got)
		}
	})
}

func TestGetSetRoundTripBothVariants(t *testing.T) {
	forEachVariant(t, func(t *testing.T, u Universe) {
		u.Set(5, -5, true)
		if !u.Get(5, -5) {
			t.Fatalf("Get(5,-5) = false after Set(..., true)")
		}
		u.Set(5, -5, false)
		if u.Get(5, -5) {
			t.Fatalf("Get(5,-5) = true after Set(..., false)")
		}
	})
}

func TestReportNonEmptyBothVariants(t *testing.T) {
	forEachVariant(t, func(t *testing.T, u Universe) {
		if u.Report() == "" {
			t.Fatalf("Report() returned empty string")
		}
	})
}
