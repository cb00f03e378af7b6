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

package quad

import "golang.org/x/exp/maps"

// childKey identifies a constructed node by the identity of its four
// children. Two *Quad pointers compare equal only if they are the same
// node, which is exactly the hash-consing property this package relies
// on: the key is pointer identity, never the children's contents.
type childKey struct {
	nw, ne, se, sw *Quad
}

// Memoizer is the construction memo of §4.1: it maps four equal-level
// children to their unique canonical parent. It is meant to be used as
// a process-wide singleton (see Default), the way the teacher's ion
// symbol table is a per-process intern table for strings.
type Memoizer struct {
	construct map[childKey]*Quad
	empties   []*Quad
	threshold int
}

const initialThreshold = 1 << 16

// NewMemoizer creates an empty construction memo seeded with the
// canonical empty quad at level 0 (DeadCell).
func NewMemoizer() *Memoizer {
	m := &Memoizer{
		construct: make(map[childKey]*Quad, 1024),
		empties:   []*Quad{deadLeaf},
		threshold: initialThreshold,
	}
	return m
}

// Default is the process-wide construction memo shared by every
// HashLife engine running on the same goroutine, mirroring §5's
// "HashLife memo tables are process-wide singletons" rule.
var Default = NewMemoizer()

// Len returns the number of canonical interior nodes currently cached.
func (m *Memoizer) Len() int { return len(m.construct) }

// Threshold returns the eviction threshold currently in force.
func (m *Memoizer) Threshold() int { return m.threshold }

// Join returns the canonical node with the given four children,
// constructing and interning it if it has not been seen before. nw,
// ne, se and sw must all share the same Level; violating this is a
// programmer error (§7) and panics.
func (m *Memoizer) Join(nw, ne, se, sw *Quad) *Quad {
	if nw.Level != ne.Level || nw.Level != se.Level || nw.Level != sw.Level {
		panic("quad: Join called with mismatched child levels")
	}
	key := childKey{nw, ne, se, sw}
	if q, ok := m.construct[key]; ok {
		return q
	}
	q := &Quad{Level: nw.Level + 1, NW: nw, NE: ne, SE: se, SW: sw}
	m.construct[key] = q
	return q
}

// Empty returns the canonical empty (all-dead) quad at the given
// level, constructing the chain of empties up to that level on first
// use and caching each one in m.
func (m *Memoizer) Empty(level int) *Quad {
	for len(m.empties) <= level {
		last := m.empties[len(m.empties)-1]
		m.empties = append(m.empties, m.Join(last, last, last, last))
	}
	return m.empties[level]
}

// IsEmpty reports whether q is the canonical empty quad at its level.
func (m *Memoizer) IsEmpty(q *Quad) bool {
	return q == m.Empty(q.Level)
}

// Reset bulk-clears the construction memo and reinserts the canonical
// empty-per-level entries, per §4.1's eviction discipline. It does not
// touch the step memo; callers that also own a step memo (the
// hashlife.Engine) must clear it separately as part of the same
// eviction pass, since §4.1 eviction is defined over the combined size
// of both tables.
func (m *Memoizer) Reset() {
	clear(m.construct)
	// Empty(L) for L>0 is Join(Empty(L-1) x4): put the existing empties
	// back under their keys so they keep their identities.
	for l := 1; l < len(m.empties); l++ {
		prev := m.empties[l-1]
		m.construct[childKey{prev, prev, prev, prev}] = m.empties[l]
	}
}

// GrowThreshold raises the eviction threshold to at least 2x the
// current combined memo size, per §4.1 ("the threshold is at least
// doubled to prevent thrashing"). combinedSize is the caller's total
// across both memo tables after the reset.
func (m *Memoizer) GrowThreshold(combinedSize int) {
	if next := combinedSize * 2; next > m.threshold*2 {
		m.threshold = next
	} else {
		m.threshold *= 2
	}
}

// Center returns the 2^(L-1) square centered in q, for q.Level >= 2.
func (m *Memoizer) Center(q *Quad) *Quad {
	return m.Join(q.NW.SE, q.NE.SW, q.SE.NW, q.SW.NE)
}

// North returns the half-overlap spanning the top of q, centered
// between the NW and NE children, for q.Level >= 2.
func (m *Memoizer) North(q *Quad) *Quad {
	return m.Join(q.NW.NE, q.NE.NW, q.NE.SW, q.NW.SE)
}

// South returns the half-overlap spanning the bottom of q, centered
// between the SW and SE children, for q.Level >= 2.
func (m *Memoizer) South(q *Quad) *Quad {
	return m.Join(q.SW.NE, q.SE.NW, q.SE.SW, q.SW.SE)
}

// East returns the half-overlap spanning the right of q, centered
// between the NE and SE children, for q.Level >= 2.
func (m *Memoizer) East(q *Quad) *Quad {
	return m.Join(q.NE.SW, q.NE.SE, q.SE.NE, q.SE.NW)
}

// West returns the half-overlap spanning the left of q, centered
// between the NW and SW children, for q.Level >= 2.
func (m *Memoizer) West(q *Quad) *Quad {
	return m.Join(q.NW.SW, q.NW.SE, q.SW.NE, q.SW.NW)
}

// snapshotSizes is a small helper used by report() implementations
// (hashlife.Engine) that want to describe both memo tables without
// reaching into Memoizer's private fields.
func (m *Memoizer) snapshotSizes() (entries, emptyLevels int) {
	return len(m.construct), len(m.empties)
}

// Stats returns a diagnostic snapshot of the construction memo's
// sizes and threshold, as plain values that share nothing with m's
// internals.
func (m *Memoizer) Stats() Stats {
	entries, emptyLevels := m.snapshotSizes()
	return Stats{
		ConstructEntries: entries,
		EmptyLevels:      emptyLevels,
		Threshold:        m.threshold,
	}
}

// Stats is a diagnostic snapshot of a Memoizer, used by report().
type Stats struct {
	ConstructEntries int
	EmptyLevels      int
	Threshold        int
}

// snapshotConstruct returns a defensive copy of the construction memo,
// the same clone-before-handing-out idiom the teacher's symbol table
// uses for its interned-string table. Nothing in the module calls it
// at present.
func (m *Memoizer) snapshotConstruct() map[childKey]*Quad {
	return maps.Clone(m.construct)
}
