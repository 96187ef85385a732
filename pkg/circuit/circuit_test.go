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
	"testing"

	"github.com/consensys/sha512-circuit/pkg/field"
)

func Test_Expr_00(t *testing.T) {
	cs := NewConstraintSystem()
	col := cs.AdviceColumn("x")
	tr := NewTrace(cs)
	//
	if _, err := tr.AssignAdvice(col, 3, field.Uint64(42)); err != nil {
		t.Fatal(err)
	}
	// x@+1 evaluated on row 2
	e := Sum(Cell(col, 1), Const64(8))
	//
	if e.Eval(tr, 2).ToUint64() != 50 {
		t.Errorf("unexpected evaluation: %s", e.Eval(tr, 2))
	}
	// unassigned cells read as zero
	if !Cell(col, 0).Eval(tr, 0).IsZero() {
		t.Errorf("unassigned cell is not zero")
	}
}

func Test_Expr_01(t *testing.T) {
	// (x - 1)(x - 2) vanishes exactly on {1, 2}
	cs := NewConstraintSystem()
	col := cs.AdviceColumn("x")
	e := RangeCheck(Cell(col, 0), 1, 2)
	//
	for i := uint64(0); i < 5; i++ {
		tr := NewTrace(cs)
		//
		if _, err := tr.AssignAdvice(col, 0, field.Uint64(i)); err != nil {
			t.Fatal(err)
		}
		//
		vanishes := e.Eval(tr, 0).IsZero()
		//
		if vanishes != (i == 1 || i == 2) {
			t.Errorf("range check wrong at %d", i)
		}
	}
}

func Test_Expr_02(t *testing.T) {
	// Interpolation through the 3-bit spread points
	points := [][2]uint64{
		{0, 0}, {1, 1}, {2, 4}, {3, 5}, {4, 16}, {5, 17}, {6, 20}, {7, 21},
	}
	//
	cs := NewConstraintSystem()
	col := cs.AdviceColumn("x")
	e := Interpolate(points, Cell(col, 0))
	//
	for _, point := range points {
		tr := NewTrace(cs)
		//
		if _, err := tr.AssignAdvice(col, 0, field.Uint64(point[0])); err != nil {
			t.Fatal(err)
		}
		//
		if e.Eval(tr, 0).ToUint64() != point[1] {
			t.Errorf("interpolation wrong at %d: %s", point[0], e.Eval(tr, 0))
		}
	}
}

func Test_Trace_00(t *testing.T) {
	// Write-once discipline
	cs := NewConstraintSystem()
	col := cs.AdviceColumn("x")
	tr := NewTrace(cs)
	//
	if _, err := tr.AssignAdvice(col, 0, field.Uint64(1)); err != nil {
		t.Fatal(err)
	}
	//
	if _, err := tr.AssignAdvice(col, 0, field.Uint64(1)); err == nil {
		t.Errorf("duplicate assignment not rejected")
	}
}

func Test_Trace_01(t *testing.T) {
	// Equality constraints propagate values and are checked.
	cs := NewConstraintSystem()
	col := cs.AdviceColumn("x")
	tr := NewTrace(cs)
	//
	src, err := tr.AssignAdvice(col, 0, field.Uint64(9))
	if err != nil {
		t.Fatal(err)
	}
	//
	dst, err := tr.Copy(src, col, 5)
	if err != nil {
		t.Fatal(err)
	}
	//
	if tr.GetRef(dst).ToUint64() != 9 {
		t.Errorf("copy did not propagate value")
	}
	//
	if failures := cs.Verify(tr); len(failures) != 0 {
		t.Errorf("unexpected failures: %v", failures)
	}
	// Corrupt the destination; the copy check must now fail.
	tr.Overwrite(dst, field.Uint64(10))
	//
	if failures := cs.Verify(tr); len(failures) != 1 {
		t.Errorf("expected one copy failure, got %v", failures)
	}
}

func Test_Gate_00(t *testing.T) {
	// A gate fires only where its selector is enabled.
	cs := NewConstraintSystem()
	x := cs.AdviceColumn("x")
	y := cs.AdviceColumn("y")
	sel := cs.Selector("s")
	//
	cs.CreateGate("double", sel, []Constraint{
		{Name: "check", Expr: Sub(Cell(y, 0), ScalePow2(Cell(x, 0), 1))},
	})
	//
	tr := NewTrace(cs)
	// Row 0 satisfies the gate; row 1 violates it but is not gated.
	assign := func(col Column, row int, v uint64) {
		if _, err := tr.AssignAdvice(col, row, field.Uint64(v)); err != nil {
			t.Fatal(err)
		}
	}
	//
	assign(x, 0, 21)
	assign(y, 0, 42)
	assign(x, 1, 5)
	assign(y, 1, 7)
	tr.EnableSelector(sel, 0)
	//
	if failures := cs.Verify(tr); len(failures) != 0 {
		t.Errorf("unexpected failures: %v", failures)
	}
	//
	tr.EnableSelector(sel, 1)
	//
	if failures := cs.Verify(tr); len(failures) != 1 {
		t.Errorf("expected one gate failure, got %v", failures)
	}
}

func Test_Lookup_00(t *testing.T) {
	cs := NewConstraintSystem()
	a := cs.AdviceColumn("a")
	b := cs.AdviceColumn("b")
	table := cs.AddTable("squares", 2)
	cs.Lookup("squares", []Column{a, b}, table)
	//
	for i := uint64(0); i < 8; i++ {
		table.Append([]field.Element{field.Uint64(i), field.Uint64(i * i)})
	}
	//
	tr := NewTrace(cs)
	//
	assign := func(col Column, row int, v uint64) {
		if _, err := tr.AssignAdvice(col, row, field.Uint64(v)); err != nil {
			t.Fatal(err)
		}
	}
	// (3, 9) is a member; rows with only zeros are members too.
	assign(a, 0, 3)
	assign(b, 0, 9)
	//
	if failures := cs.Verify(tr); len(failures) != 0 {
		t.Errorf("unexpected failures: %v", failures)
	}
	// (2, 5) is not a member.
	assign(a, 1, 2)
	assign(b, 1, 5)
	//
	if failures := cs.Verify(tr); len(failures) != 1 {
		t.Errorf("expected one lookup failure, got %v", failures)
	}
}
