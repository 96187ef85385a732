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
	log "github.com/sirupsen/logrus"
)

// Constraint is a single named polynomial within a gate which must vanish on
// every row where the gate's selector is enabled.
type Constraint struct {
	// Name of this constraint, for error reporting.
	Name string
	// The polynomial which must vanish.
	Expr Expression
}

// Gate is a named collection of constraints fired by a common selector.
type Gate struct {
	// Handle of this gate, for error reporting.
	Handle string
	// Selector gating the rows on which the constraints apply.
	Selector Selector
	// The constraints themselves.
	Constraints []Constraint
}

// ConstraintSystem collects the columns, selectors, gates, lookup arguments
// and tables making up a circuit definition.  It plays the role of the host
// proof system's configuration surface: the chip layers above allocate
// columns and declare gates here, then assign witnesses into a Trace and
// check the result with Verify.
type ConstraintSystem struct {
	columns   []Column
	selectors []Selector
	gates     []Gate
	lookups   []lookupArgument
	tables    []*Table
}

// NewConstraintSystem constructs an empty constraint system.
func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{}
}

// AdviceColumn allocates a fresh advice column.
func (p *ConstraintSystem) AdviceColumn(name string) Column {
	column := Column{uint(len(p.columns)), Advice, name}
	p.columns = append(p.columns, column)
	//
	return column
}

// FixedColumn allocates a fresh fixed column.
func (p *ConstraintSystem) FixedColumn(name string) Column {
	column := Column{uint(len(p.columns)), Fixed, name}
	p.columns = append(p.columns, column)
	//
	return column
}

// Selector allocates a fresh selector.
func (p *ConstraintSystem) Selector(name string) Selector {
	selector := Selector{uint(len(p.selectors)), name}
	p.selectors = append(p.selectors, selector)
	//
	return selector
}

// CreateGate declares a custom gate: all constraints must vanish on every row
// where the selector is enabled.
func (p *ConstraintSystem) CreateGate(handle string, selector Selector, constraints []Constraint) {
	p.gates = append(p.gates, Gate{handle, selector, constraints})
}

// Columns returns the columns declared in this system.
func (p *ConstraintSystem) Columns() []Column {
	return p.columns
}

// Gates returns the gates declared in this system.
func (p *ConstraintSystem) Gates() []Gate {
	return p.gates
}

// Verify checks a trace against every gate, lookup argument and equality
// constraint of this system, returning all failures found.  An empty result
// means the trace satisfies the circuit.
func (p *ConstraintSystem) Verify(tr *Trace) []Failure {
	var failures []Failure
	//
	failures = append(failures, p.verifyGates(tr)...)
	failures = append(failures, p.verifyLookups(tr)...)
	failures = append(failures, p.verifyCopies(tr)...)
	//
	log.Debugf("verified trace of height %d: %d gates, %d lookups, %d failures",
		tr.Height(), len(p.gates), len(p.lookups), len(failures))
	//
	return failures
}

func (p *ConstraintSystem) verifyGates(tr *Trace) []Failure {
	var failures []Failure
	//
	for _, gate := range p.gates {
		rows := tr.selectors[gate.Selector.index]
		//
		for row, ok := rows.NextSet(0); ok; row, ok = rows.NextSet(row + 1) {
			for _, constraint := range gate.Constraints {
				if !constraint.Expr.Eval(tr, int(row)).IsZero() {
					failures = append(failures, &GateFailure{gate.Handle, constraint.Name, int(row)})
				}
			}
		}
	}
	//
	return failures
}

func (p *ConstraintSystem) verifyCopies(tr *Trace) []Failure {
	var failures []Failure
	//
	for _, pair := range tr.copies {
		if tr.GetRef(pair[0]).Cmp(tr.GetRef(pair[1])) != 0 {
			failures = append(failures, &CopyFailure{pair[0], pair[1]})
		}
	}
	//
	return failures
}
