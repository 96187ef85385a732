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

	"github.com/consensys/sha512-circuit/pkg/field"
)

// Table is the target of a lookup argument: a fixed multiset of rows loaded
// once at circuit setup.
type Table struct {
	name  string
	width int
	// Number of rows loaded so far.
	rows int
	// Membership index over loaded rows.
	index map[string]struct{}
}

// lookupArgument constrains every region row: the tuple read from the input
// columns must be a member of the target table.  Unassigned cells read as
// zero, so the table must contain an all-zero row for this to be satisfiable
// on untouched rows (the spread table does, at dense = 0).
type lookupArgument struct {
	// Handle of this lookup, for error reporting.
	handle string
	// Input columns, read on every row.
	inputs []Column
	// Target table.
	table *Table
}

// AddTable allocates a fresh lookup table with the given tuple width.
func (p *ConstraintSystem) AddTable(name string, width int) *Table {
	table := &Table{name, width, 0, make(map[string]struct{})}
	p.tables = append(p.tables, table)
	//
	return table
}

// Lookup declares a lookup argument from the given input columns into the
// given table.
func (p *ConstraintSystem) Lookup(handle string, inputs []Column, table *Table) {
	if len(inputs) != table.width {
		panic(fmt.Errorf("lookup \"%s\": %d input columns for width-%d table", handle, len(inputs), table.width))
	}
	//
	p.lookups = append(p.lookups, lookupArgument{handle, inputs, table})
}

// Name returns the name this table was declared with.
func (p *Table) Name() string {
	return p.name
}

// Rows returns the number of rows loaded into this table.
func (p *Table) Rows() int {
	return p.rows
}

// Append loads one row into this table.
func (p *Table) Append(row []field.Element) {
	if len(row) != p.width {
		panic(fmt.Errorf("table \"%s\": appending width-%d row to width-%d table", p.name, len(row), p.width))
	}
	//
	p.index[tupleKey(row)] = struct{}{}
	p.rows++
}

// Contains checks whether the given tuple is a member of this table.
func (p *Table) Contains(row []field.Element) bool {
	_, ok := p.index[tupleKey(row)]
	return ok
}

func (p *ConstraintSystem) verifyLookups(tr *Trace) []Failure {
	var failures []Failure
	//
	for _, lookup := range p.lookups {
		tuple := make([]field.Element, len(lookup.inputs))
		//
		for row := 0; row < tr.Height(); row++ {
			for i, col := range lookup.inputs {
				tuple[i] = tr.Get(col, row)
			}
			//
			if !lookup.table.Contains(tuple) {
				failures = append(failures, &LookupFailure{lookup.handle, row})
			}
		}
	}
	//
	return failures
}

func tupleKey(row []field.Element) string {
	var key []byte
	//
	for _, element := range row {
		bytes := element.Bytes()
		key = append(key, bytes[:]...)
	}
	//
	return string(key)
}
