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
package table16

import (
	"github.com/consensys/sha512-circuit/pkg/circuit"
)

// rangeCheck constrains value to the integer range [lo, hi].
func rangeCheck(name string, value circuit.Expression, lo uint64, hi uint64) circuit.Constraint {
	return circuit.Constraint{Name: name, Expr: circuit.RangeCheck(value, lo, hi)}
}

// booleanCheck constrains a 1-bit piece.
func booleanCheck(name string, value circuit.Expression) circuit.Constraint {
	return rangeCheck(name, value, 0, 1)
}

// twoBitSpreadAndRange constrains dense to 2 bits and spread to its spread
// form, via interpolation through the four (dense, spread) pairs.  Short
// pieces bypass the lookup table entirely.
func twoBitSpreadAndRange(name string, dense circuit.Expression, spread circuit.Expression) []circuit.Constraint {
	points := [][2]uint64{{0, 0}, {1, 1}, {2, 4}, {3, 5}}
	//
	return []circuit.Constraint{
		rangeCheck(name+"_range", dense, 0, 3),
		{Name: name + "_spread", Expr: circuit.Sub(spread, circuit.Interpolate(points, dense))},
	}
}

// threeBitSpreadAndRange constrains dense to 3 bits and spread to its spread
// form.
func threeBitSpreadAndRange(name string, dense circuit.Expression, spread circuit.Expression) []circuit.Constraint {
	points := [][2]uint64{
		{0, 0}, {1, 1}, {2, 4}, {3, 5},
		{4, 16}, {5, 17}, {6, 20}, {7, 21},
	}
	//
	return []circuit.Constraint{
		rangeCheck(name+"_range", dense, 0, 7),
		{Name: name + "_spread", Expr: circuit.Sub(spread, circuit.Interpolate(points, dense))},
	}
}
