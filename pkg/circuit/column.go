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

import "fmt"

// ColumnKind distinguishes the two kinds of region column.  Advice columns
// hold prover-supplied witness values; fixed columns hold values baked into
// the circuit definition.
type ColumnKind uint8

const (
	// Advice columns are witnessed by the prover during assignment.
	Advice ColumnKind = iota
	// Fixed columns are part of the circuit definition.
	Fixed
)

// Column identifies a single column of the region.  Columns are allocated by
// a ConstraintSystem and are only meaningful with respect to it.
type Column struct {
	index uint
	kind  ColumnKind
	name  string
}

// Index returns the column index within its constraint system.
func (p Column) Index() uint {
	return p.index
}

// Kind returns the kind of this column.
func (p Column) Kind() ColumnKind {
	return p.kind
}

// Name returns the name this column was declared with.
func (p Column) Name() string {
	return p.name
}

func (p Column) String() string {
	return fmt.Sprintf("%s#%d", p.name, p.index)
}

// Selector identifies a virtual fixed column holding 0/1 values which gates
// the rows on which a custom gate applies.
type Selector struct {
	index uint
	name  string
}

// Index returns the selector index within its constraint system.
func (p Selector) Index() uint {
	return p.index
}

// Name returns the name this selector was declared with.
func (p Selector) Name() string {
	return p.name
}

func (p Selector) String() string {
	return fmt.Sprintf("sel:%s#%d", p.name, p.index)
}

// CellRef identifies a single cell of the region by absolute (column, row)
// address.
type CellRef struct {
	// Column index of the cell in question.
	Column uint
	// Row of the cell in question.
	Row int
}

func (p CellRef) String() string {
	return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
}
