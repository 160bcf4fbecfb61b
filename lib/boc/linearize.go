// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"errors"
	"fmt"
)

// Entry is one cell of a linearized graph with its references resolved
// to positions in the same sequence.
type Entry struct {
	Cell *Cell
	Refs []int
}

// Linearize flattens the graph under root into a sequence where each
// distinct *Cell appears once, the root is first, and every reference
// points to a later entry. Returns ErrCyclicGraph if the graph has a
// cycle.
//
// Cells are discovered breadth-first and then emitted in FIFO
// topological order: a cell is placed once all of its parents are
// placed, and ties go to the cell discovered first. A tree therefore
// comes out in plain breadth-first order.
func Linearize(root *Cell) ([]Entry, error) {
	if root == nil {
		return nil, errors.New("boc: linearizing a nil cell")
	}
	g := discover(root)
	order, err := g.order()
	if err != nil {
		return nil, err
	}
	return g.entries(order), nil
}

// graph is the identity-deduplicated form of a cell graph. Node ids are
// discovery order; node 0 is the root. children keeps one entry per
// reference, so a cell referencing the same child twice lists it
// twice.
type graph struct {
	cells    []*Cell
	children [][]int
}

// discover walks the graph breadth-first from root. It terminates on
// cyclic input because each *Cell is assigned exactly one node.
func discover(root *Cell) *graph {
	ids := map[*Cell]int{root: 0}
	g := &graph{cells: []*Cell{root}}
	for next := 0; next < len(g.cells); next++ {
		cell := g.cells[next]
		children := make([]int, len(cell.refs))
		for i, ref := range cell.refs {
			id, ok := ids[ref]
			if !ok {
				id = len(g.cells)
				ids[ref] = id
				g.cells = append(g.cells, ref)
			}
			children[i] = id
		}
		g.children = append(g.children, children)
	}
	return g
}

// order returns node ids in FIFO topological order starting at the
// root. Any node left unplaced lies on a cycle.
func (g *graph) order() ([]int, error) {
	indegree := make([]int, len(g.cells))
	for _, children := range g.children {
		for _, child := range children {
			indegree[child]++
		}
	}

	queue := make([]int, 0, len(g.cells))
	if indegree[0] == 0 {
		queue = append(queue, 0)
	}
	for head := 0; head < len(queue); head++ {
		for _, child := range g.children[queue[head]] {
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if len(queue) != len(g.cells) {
		return nil, fmt.Errorf("%w: %d of %d cells lie on or below a cycle",
			ErrCyclicGraph, len(g.cells)-len(queue), len(g.cells))
	}
	return queue, nil
}

func (g *graph) entries(order []int) []Entry {
	position := make([]int, len(g.cells))
	for index, id := range order {
		position[id] = index
	}
	entries := make([]Entry, len(order))
	for index, id := range order {
		refs := make([]int, len(g.children[id]))
		for i, child := range g.children[id] {
			refs[i] = position[child]
		}
		entries[index] = Entry{Cell: g.cells[id], Refs: refs}
	}
	return entries
}
