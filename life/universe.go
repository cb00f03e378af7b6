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

// Package life exposes the LifeUniverse contract of §6: one interface
// in front of either the hashlife or quicklife engine, so a caller
// (cmd/lifectl, a test harness, an eventual viewer) can select a
// variant without depending on either package's concrete type.
package life

import (
	"github.com/conwaylife/lifecore/hashlife"
	"github.com/conwaylife/lifecore/quicklife"
)

// Rect is an axis-aligned, half-open rectangle: x in [MinX, MaxX), y
// in [MinY, MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int64
}

// Universe is the polymorphic handle of §6. Both HashLife and
// QuickLife satisfy it; callers hold a Universe and never see which
// variant is underneath.
type Universe interface {
	// Clear resets the universe to an all-dead grid at generation 0.
	Clear()
	// Set writes cell (x, y). Out-of-range coordinates are silently
	// clipped per §7.
	Set(x, y int64, alive bool)
	// Get reads cell (x, y); false outside the representable region.
	Get(x, y int64) bool
	// Step advances by 2^speed generations; Step(0) is a single
	// generation.
	Step(speed int)
	// Draw invokes cb(x, y) once per live cell within rect.
	Draw(rect Rect, cb func(x, y int64))
	// Report returns a human-readable, purely diagnostic summary.
	Report() string
}

type hashLifeUniverse struct {
	e *hashlife.Engine
}

// NewHashLife returns a Universe backed by the HashLife engine: best
// suited to long runs on sparse, highly-periodic patterns where the
// memoized step can skip whole stretches of generations at once.
func NewHashLife() Universe {
	return &hashLifeUniverse{e: hashlife.New()}
}

func (u *hashLifeUniverse) Clear()                 { u.e.Clear() }
func (u *hashLifeUniverse) Set(x, y int64, v bool) { u.e.Set(x, y, v) }
func (u *hashLifeUniverse) Get(x, y int64) bool    { return u.e.Get(x, y) }
func (u *hashLifeUniverse) Step(speed int)         { u.e.Step(speed) }
func (u *hashLifeUniverse) Report() string         { return u.e.Report() }
func (u *hashLifeUniverse) Draw(r Rect, cb func(x, y int64)) {
	u.e.Draw(hashlife.Rect{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}, cb)
}

type quickLifeUniverse struct {
	g *quicklife.Grid
}

// NewQuickLife returns a Universe backed by the QuickLife engine: best
// suited to chaotic or one-off patterns where HashLife's memoization
// would rarely pay for itself.
func NewQuickLife() Universe {
	return &quickLifeUniverse{g: quicklife.NewGrid()}
}

func (u *quickLifeUniverse) Clear()                 { u.g.Clear() }
func (u *quickLifeUniverse) Set(x, y int64, v bool) { u.g.Set(x, y, v) }
func (u *quickLifeUniverse) Get(x, y int64) bool    { return u.g.Get(x, y) }
func (u *quickLifeUniverse) Step(speed int)         { u.g.Step(speed) }
func (u *quickLifeUniverse) Report() string         { return u.g.Report() }
func (u *quickLifeUniverse) Draw(r Rect, cb func(x, y int64)) {
	u.g.Draw(quicklife.Rect{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}, cb)
}
