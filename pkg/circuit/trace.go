// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package circuit

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/sha512-circuit/pkg/field"
)

// Trace is the single write-once region in which an entire circuit execution
// is assigned.  Cells are addressed by absolute (column, row); unassigned
// cells read as zero.  Equality constraints wire later uses of a value to its
// earlier definition.
type Trace struct {
	system *ConstraintSystem
	// Assigned cell values.  Presence in the map is what distinguishes an
	// assigned zero from an unassigned cell.
	cells map[CellRef]field.Element
	// Recorded equality constraints.
	copies [][2]CellRef
	// Enabled rows, one set per selector.
	selectors []*bitset.BitSet
	// One past the highest row touched so far.
	height int
}

// NewTrace constructs an empty trace for the given constraint system.
func NewTrace(system *ConstraintSystem) *Trace {
	selectors := make([]*bitset.BitSet, len(system.selectors))
	//
	for i := range selectors {
		selectors[i] = bitset.New(1024)
	}
	//
	return &Trace{
		system:    system,
		cells:     make(map[CellRef]field.Element),
		selectors: selectors,
	}
}

// Height returns one past the highest row touched by any assignment or
// selector so far.
func (p *Trace) Height() int {
	return p.height
}

// Get reads the given cell, returning zero for unassigned cells.  Negative
// rows (reachable through gate rotations on row 0) also read as zero.
func (p *Trace) Get(column Column, row int) field.Element {
	return p.cells[CellRef{column.index, row}]
}

// GetRef reads the cell identified by the given reference.
func (p *Trace) GetRef(ref CellRef) field.Element {
	return p.cells[ref]
}

// IsAssigned checks whether the given cell has been assigned.
func (p *Trace) IsAssigned(column Column, row int) bool {
	_, ok := p.cells[CellRef{column.index, row}]
	return ok
}

// AssignAdvice writes a witness value into an advice cell.  Assigning the
// same cell twice is an error, as is writing into a non-advice column.
func (p *Trace) AssignAdvice(column Column, row int, value field.Element) (CellRef, error) {
	if column.kind != Advice {
		return CellRef{}, fmt.Errorf("column %s is not an advice column", column)
	}
	//
	return p.assign(column, row, value)
}

// AssignFixed writes a value into a fixed cell.
func (p *Trace) AssignFixed(column Column, row int, value field.Element) (CellRef, error) {
	if column.kind != Fixed {
		return CellRef{}, fmt.Errorf("column %s is not a fixed column", column)
	}
	//
	return p.assign(column, row, value)
}

// Copy assigns the value held by the source cell into the destination cell,
// recording an equality constraint between the two.  The source must already
// have been assigned.
func (p *Trace) Copy(src CellRef, column Column, row int) (CellRef, error) {
	value, ok := p.cells[src]
	if !ok {
		return CellRef{}, fmt.Errorf("equality constraint references unassigned cell %s", src)
	}
	//
	dst, err := p.assign(column, row, value)
	if err != nil {
		return CellRef{}, err
	}
	//
	p.copies = append(p.copies, [2]CellRef{src, dst})
	//
	return dst, nil
}

// EnableSelector switches the given selector on for the given row.
func (p *Trace) EnableSelector(selector Selector, row int) {
	if row < 0 {
		panic(fmt.Errorf("selector %s enabled on negative row %d", selector, row))
	}
	//
	p.selectors[selector.index].Set(uint(row))
	p.bump(row)
}

// SelectorEnabled checks whether the given selector is on for the given row.
func (p *Trace) SelectorEnabled(selector Selector, row int) bool {
	return row >= 0 && p.selectors[selector.index].Test(uint(row))
}

// Overwrite replaces the value of an already-assigned cell without any
// bookkeeping.  This exists only so that tests can corrupt a trace; circuit
// code must never call it.
func (p *Trace) Overwrite(ref CellRef, value field.Element) {
	if _, ok := p.cells[ref]; !ok {
		panic(fmt.Errorf("overwriting unassigned cell %s", ref))
	}
	//
	p.cells[ref] = value
}

func (p *Trace) assign(column Column, row int, value field.Element) (CellRef, error) {
	if row < 0 {
		return CellRef{}, fmt.Errorf("cannot assign cell of %s on negative row %d", column, row)
	}
	//
	ref := CellRef{column.index, row}
	//
	if _, ok := p.cells[ref]; ok {
		return CellRef{}, fmt.Errorf("duplicate assignment of cell %s (column %s)", ref, column)
	}
	//
	p.cells[ref] = value
	p.bump(row)
	//
	return ref, nil
}

func (p *Trace) bump(row int) {
	if row+1 > p.height {
		p.height = row + 1
	}
}
