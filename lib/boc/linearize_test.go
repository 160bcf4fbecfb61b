// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"errors"
	"slices"
	"testing"
)

// checkOrdering fails the test unless entries start with root and every
// reference points forward.
func checkOrdering(t *testing.T, root *Cell, entries []Entry) {
	t.Helper()
	if len(entries) == 0 || entries[0].Cell != root {
		t.Fatalf("root is not entry 0")
	}
	for index, entry := range entries {
		if len(entry.Refs) != entry.Cell.RefCount() {
			t.Errorf("entry %d has %d resolved refs for %d cell refs", index, len(entry.Refs), entry.Cell.RefCount())
		}
		for i, ref := range entry.Refs {
			if ref <= index || ref >= len(entries) {
				t.Errorf("entry %d ref %d points to %d", index, i, ref)
				continue
			}
			if entries[ref].Cell != entry.Cell.Ref(i) {
				t.Errorf("entry %d ref %d resolves to the wrong cell", index, i)
			}
		}
	}
}

func TestLinearizeTreeIsBreadthFirst(t *testing.T) {
	c := mustCell(t, "C")
	d := mustCell(t, "D")
	a := mustCell(t, "A", c)
	b := mustCell(t, "B", d)
	root := mustCell(t, "0", a, b)

	entries, err := Linearize(root)
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	checkOrdering(t, root, entries)

	want := []*Cell{root, a, b, c, d}
	for i, cell := range want {
		if entries[i].Cell != cell {
			t.Errorf("entry %d = %s, want %s", i, entries[i].Cell, cell)
		}
	}
}

func TestLinearizeSharedChild(t *testing.T) {
	shared := mustCell(t, "5")
	a := mustCell(t, "A", shared)
	b := mustCell(t, "B", shared)
	root := mustCell(t, "", a, b)

	entries, err := Linearize(root)
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	checkOrdering(t, root, entries)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if !slices.Equal(entries[1].Refs, entries[2].Refs) {
		t.Errorf("parents resolve the shared child to %v and %v", entries[1].Refs, entries[2].Refs)
	}
}

func TestLinearizeChildOfLaterParent(t *testing.T) {
	// c is reachable from the root directly and through a -> b. It must
	// come after b even though breadth-first discovery finds it first.
	c := mustCell(t, "C")
	b := mustCell(t, "B", c)
	a := mustCell(t, "A", b)
	root := mustCell(t, "0", a, c)

	entries, err := Linearize(root)
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	checkOrdering(t, root, entries)
	want := []*Cell{root, a, b, c}
	for i, cell := range want {
		if entries[i].Cell != cell {
			t.Errorf("entry %d = %s, want %s", i, entries[i].Cell, cell)
		}
	}
}

func TestLinearizeRepeatedRef(t *testing.T) {
	leaf := mustCell(t, "F")
	root := mustCell(t, "", leaf, leaf, leaf)

	entries, err := Linearize(root)
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	checkOrdering(t, root, entries)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !slices.Equal(entries[0].Refs, []int{1, 1, 1}) {
		t.Errorf("root refs = %v, want [1 1 1]", entries[0].Refs)
	}
}

func TestLinearizeRejectsCycles(t *testing.T) {
	t.Run("mutual", func(t *testing.T) {
		a := mustCell(t, "A")
		b := mustCell(t, "B", a)
		a.refs = append(a.refs, b)
		if _, err := Linearize(a); !errors.Is(err, ErrCyclicGraph) {
			t.Errorf("Linearize error = %v, want ErrCyclicGraph", err)
		}
		if _, err := Serialize(a); !errors.Is(err, ErrCyclicGraph) {
			t.Errorf("Serialize error = %v, want ErrCyclicGraph", err)
		}
	})

	t.Run("self", func(t *testing.T) {
		a := mustCell(t, "A")
		a.refs = append(a.refs, a)
		if _, err := Linearize(a); !errors.Is(err, ErrCyclicGraph) {
			t.Errorf("Linearize error = %v, want ErrCyclicGraph", err)
		}
	})

	t.Run("below root", func(t *testing.T) {
		a := mustCell(t, "A")
		b := mustCell(t, "B", a)
		a.refs = append(a.refs, b)
		root := mustCell(t, "", mustCell(t, "1"), b)
		if _, err := Linearize(root); !errors.Is(err, ErrCyclicGraph) {
			t.Errorf("Linearize error = %v, want ErrCyclicGraph", err)
		}
		if _, err := Digest(root); !errors.Is(err, ErrCyclicGraph) {
			t.Errorf("Digest error = %v, want ErrCyclicGraph", err)
		}
	})
}

func TestLinearizeDeepChain(t *testing.T) {
	const depth = 50000
	cell := mustCell(t, "")
	for range depth {
		cell = mustCell(t, "", cell)
	}
	entries, err := Linearize(cell)
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	if len(entries) != depth+1 {
		t.Fatalf("got %d entries, want %d", len(entries), depth+1)
	}
	for i, entry := range entries[:depth] {
		if len(entry.Refs) != 1 || entry.Refs[0] != i+1 {
			t.Fatalf("entry %d refs = %v, want [%d]", i, entry.Refs, i+1)
		}
	}
}
