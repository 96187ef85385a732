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
	"strings"

	"github.com/consensys/sha512-circuit/pkg/field"
)

// Expression represents a multivariate polynomial over region cells, where
// cells are addressed relative to the row on which the enclosing gate fires.
type Expression interface {
	fmt.Stringer
	// Eval evaluates this expression at the given row of the trace.
	Eval(tr *Trace, row int) field.Element
}

// ============================================================================
// Constants
// ============================================================================

type constant struct {
	value field.Element
}

// Constant constructs an expression returning a fixed field element.
func Constant(value field.Element) Expression {
	return &constant{value}
}

// Const64 constructs a constant expression from a uint64.
func Const64(value uint64) Expression {
	return &constant{field.Uint64(value)}
}

// TwoPow constructs a constant expression representing 2^n.
func TwoPow(n uint) Expression {
	return &constant{field.TwoPowN(n)}
}

func (p *constant) Eval(*Trace, int) field.Element {
	return p.value
}

func (p *constant) String() string {
	return p.value.String()
}

// ============================================================================
// Cell access
// ============================================================================

type cellAccess struct {
	column   Column
	rotation int
}

// Cell constructs an expression reading the given column at the gate row
// shifted by rotation.
func Cell(column Column, rotation int) Expression {
	return &cellAccess{column, rotation}
}

func (p *cellAccess) Eval(tr *Trace, row int) field.Element {
	return tr.Get(p.column, row+p.rotation)
}

func (p *cellAccess) String() string {
	return fmt.Sprintf("%s@%+d", p.column.Name(), p.rotation)
}

// ============================================================================
// Sums and products
// ============================================================================

type sum struct {
	terms []Expression
}

// Sum constructs the sum of the given expressions.
func Sum(terms ...Expression) Expression {
	return &sum{terms}
}

func (p *sum) Eval(tr *Trace, row int) field.Element {
	res := field.Zero()
	//
	for _, term := range p.terms {
		res = res.Add(term.Eval(tr, row))
	}
	//
	return res
}

func (p *sum) String() string {
	return naryString("+", p.terms)
}

type product struct {
	terms []Expression
}

// Product constructs the product of the given expressions.
func Product(terms ...Expression) Expression {
	return &product{terms}
}

func (p *product) Eval(tr *Trace, row int) field.Element {
	res := field.One()
	//
	for _, term := range p.terms {
		res = res.Mul(term.Eval(tr, row))
	}
	//
	return res
}

func (p *product) String() string {
	return naryString("*", p.terms)
}

// ============================================================================
// Derived forms
// ============================================================================

// Scale constructs the expression c * e for a constant c.
func Scale(e Expression, c field.Element) Expression {
	return Product(Constant(c), e)
}

// ScalePow2 constructs the expression 2^n * e.
func ScalePow2(e Expression, n uint) Expression {
	return Product(TwoPow(n), e)
}

// Neg constructs the expression -e.
func Neg(e Expression) Expression {
	return Scale(e, field.One().Neg())
}

// Sub constructs the expression lhs - rhs.
func Sub(lhs Expression, rhs Expression) Expression {
	return Sum(lhs, Neg(rhs))
}

// RangeCheck constructs an expression which vanishes iff e takes an integer
// value in [lo, hi].  This is the product (e-lo)(e-lo-1)...(e-hi).
func RangeCheck(e Expression, lo uint64, hi uint64) Expression {
	var terms []Expression
	//
	for i := lo; i <= hi; i++ {
		terms = append(terms, Sub(e, Const64(i)))
	}
	//
	return Product(terms...)
}

// Interpolate constructs the Lagrange interpolation polynomial through the
// given (x, y) points, evaluated at e.  Used by the short spread gates to tie
// a 2- or 3-bit dense value to its spread form without a table lookup.
func Interpolate(points [][2]uint64, e Expression) Expression {
	var terms []Expression
	//
	for i, pi := range points {
		coeff := field.Uint64(pi[1])
		factors := []Expression{}
		//
		for j, pj := range points {
			if i == j {
				continue
			}
			//
			factors = append(factors, Sub(e, Const64(pj[0])))
			coeff = coeff.Mul(field.Uint64(pi[0]).Sub(field.Uint64(pj[0])).Inverse())
		}
		//
		factors = append(factors, Constant(coeff))
		terms = append(terms, Product(factors...))
	}
	//
	return Sum(terms...)
}

func naryString(op string, terms []Expression) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, term := range terms {
		if i != 0 {
			builder.WriteString(op)
		}
		//
		builder.WriteString(term.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
