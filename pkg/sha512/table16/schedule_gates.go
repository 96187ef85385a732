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

// The gate constructors below are the single source of truth for the cell
// placement of every message-schedule gate.  The subregion assignment code
// mirrors these rotations exactly; a cell is always named relative to the
// row on which the gate's selector fires.

// checkB enforces b = b_lo + 2^3 * b_hi for a chunk split into a 3-bit low
// piece and a short high piece.
func checkB(b, bLo, bHi circuit.Expression) circuit.Constraint {
	return circuit.Constraint{
		Name: "check_b",
		Expr: circuit.Sub(circuit.Sum(bLo, circuit.ScalePow2(bHi, 3)), b),
	}
}

// scheduleWordGate constrains W_i = σ1(W_{i-2}) + W_{i-7} + σ0(W_{i-15}) +
// W_{i-16} mod 2^64 for i in [16, 80).  The four addends arrive as 32-bit
// halves; the W_{i-16} halves are read in place from its decompose row one
// above the gate row.
func scheduleWordGate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		a3, a4, a6 = c.extras[0], c.extras[1], c.extras[2]
		a7, a8, a9 = c.extras[3], c.extras[4], c.extras[5]
		a5         = c.messageSchedule
		//
		sigma0Lo = circuit.Cell(a6, -1)
		sigma0Hi = circuit.Cell(a6, 0)
		sigma1Lo = circuit.Cell(a7, -1)
		sigma1Hi = circuit.Cell(a7, 0)
		wMinus7Lo = circuit.Cell(a8, -1)
		wMinus7Hi = circuit.Cell(a8, 0)
		wMinus16Lo = circuit.Cell(a3, -1)
		wMinus16Hi = circuit.Cell(a4, -1)
		word  = circuit.Cell(a5, 0)
		carry = circuit.Cell(a9, 0)
	)
	//
	lo := circuit.Sum(sigma0Lo, sigma1Lo, wMinus7Lo, wMinus16Lo)
	hi := circuit.Sum(sigma0Hi, sigma1Hi, wMinus7Hi, wMinus16Hi)
	//
	wordCheck := circuit.Sub(
		circuit.Sum(lo, circuit.ScalePow2(hi, 32)),
		circuit.Sum(circuit.ScalePow2(carry, 64), word),
	)
	//
	return []circuit.Constraint{
		{Name: "word_check", Expr: wordCheck},
		rangeCheck("carry_check", carry, 0, 3),
	}
}

// decompose0Gate constrains a word's 32-bit halves to reconstruct it.
// Applies to every schedule word.
func decompose0Gate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		lo   = circuit.Cell(c.extras[0], 0)
		hi   = circuit.Cell(c.extras[1], 0)
		word = circuit.Cell(c.messageSchedule, 0)
	)
	//
	return []circuit.Constraint{
		{Name: "decompose_0", Expr: circuit.Sub(circuit.Sum(lo, circuit.ScalePow2(hi, 32)), word)},
	}
}

// decompose1Gate constrains the (1, 6, 1, 56)-bit chunking of W_1..W_13,
// with the 56-bit chunk looked up as four 14-bit pieces.
func decompose1Gate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		a0, a1 = c.lookup.Tag, c.lookup.Dense
		a3, a4 = c.extras[0], c.extras[1]
		//
		a      = circuit.Cell(a3, 1)
		b      = circuit.Cell(a4, 1)
		cPiece = circuit.Cell(a3, 2)
		dLoLo  = circuit.Cell(a1, 0)
		dLoHi  = circuit.Cell(a1, 1)
		dHiLo  = circuit.Cell(a1, 2)
		dHiHi  = circuit.Cell(a1, 3)
		word   = circuit.Cell(c.messageSchedule, 0)
	)
	//
	decomposeCheck := circuit.Sub(
		circuit.Sum(
			a,
			circuit.ScalePow2(b, 1),
			circuit.ScalePow2(cPiece, 7),
			circuit.ScalePow2(dLoLo, 8),
			circuit.ScalePow2(dLoHi, 22),
			circuit.ScalePow2(dHiLo, 36),
			circuit.ScalePow2(dHiHi, 50),
		),
		word,
	)
	//
	return []circuit.Constraint{
		{Name: "decompose_check", Expr: decomposeCheck},
		booleanCheck("range_check_a", a),
		booleanCheck("range_check_c", cPiece),
		rangeCheck("range_check_tag_d_lo_lo", circuit.Cell(a0, 0), 0, tag14),
		rangeCheck("range_check_tag_d_lo_hi", circuit.Cell(a0, 1), 0, tag14),
		rangeCheck("range_check_tag_d_hi_lo", circuit.Cell(a0, 2), 0, tag14),
		rangeCheck("range_check_tag_d_hi_hi", circuit.Cell(a0, 3), 0, tag14),
	}
}

// decompose2Gate constrains the (1, 5, 1, 1, 11, 42, 3)-bit chunking of
// W_14..W_64, with the 42-bit chunk looked up as (11, 10, 11, 10)-bit
// pieces.  The 5-bit chunk is bounded by check_b in the sigma gates and the
// 3-bit chunk by their spread-range checks.
func decompose2Gate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		a0, a1 = c.lookup.Tag, c.lookup.Dense
		a3, a4 = c.extras[0], c.extras[1]
		//
		a      = circuit.Cell(a3, -1)
		b      = circuit.Cell(a1, 4)
		cPiece = circuit.Cell(a4, -1)
		d      = circuit.Cell(a4, 1)
		e      = circuit.Cell(a1, -1)
		fLoLo  = circuit.Cell(a1, 0)
		fLoHi  = circuit.Cell(a1, 1)
		fHiLo  = circuit.Cell(a1, 2)
		fHiHi  = circuit.Cell(a1, 3)
		g      = circuit.Cell(a3, 1)
		word   = circuit.Cell(c.messageSchedule, 0)
	)
	//
	decomposeCheck := circuit.Sub(
		circuit.Sum(
			a,
			circuit.ScalePow2(b, 1),
			circuit.ScalePow2(cPiece, 6),
			circuit.ScalePow2(d, 7),
			circuit.ScalePow2(e, 8),
			circuit.ScalePow2(fLoLo, 19),
			circuit.ScalePow2(fLoHi, 30),
			circuit.ScalePow2(fHiLo, 40),
			circuit.ScalePow2(fHiHi, 51),
			circuit.ScalePow2(g, 61),
		),
		word,
	)
	//
	return []circuit.Constraint{
		{Name: "decompose_check", Expr: decomposeCheck},
		booleanCheck("range_check_a", a),
		booleanCheck("range_check_c", cPiece),
		booleanCheck("range_check_d", d),
		rangeCheck("range_check_tag_e", circuit.Cell(a0, -1), 0, tag11),
		rangeCheck("range_check_tag_f_lo_lo", circuit.Cell(a0, 0), 0, tag11),
		rangeCheck("range_check_tag_f_lo_hi", circuit.Cell(a0, 1), 0, tag11),
		rangeCheck("range_check_tag_f_hi_lo", circuit.Cell(a0, 2), 0, tag11),
		rangeCheck("range_check_tag_f_hi_hi", circuit.Cell(a0, 3), 0, tag11),
	}
}

// decompose3Gate constrains the (6, 13, 42, 3)-bit chunking of W_65..W_77,
// with the 42-bit chunk looked up as (11, 10, 11, 10)-bit pieces.
func decompose3Gate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		a0, a1 = c.lookup.Tag, c.lookup.Dense
		a3, a4 = c.extras[0], c.extras[1]
		//
		a     = circuit.Cell(a4, 1)
		b     = circuit.Cell(a1, 0)
		cLoLo = circuit.Cell(a1, 1)
		cLoHi = circuit.Cell(a1, 2)
		cHiLo = circuit.Cell(a1, 3)
		cHiHi = circuit.Cell(a1, 4)
		d     = circuit.Cell(a3, 1)
		word  = circuit.Cell(c.messageSchedule, 0)
	)
	//
	decomposeCheck := circuit.Sub(
		circuit.Sum(
			a,
			circuit.ScalePow2(b, 6),
			circuit.ScalePow2(cLoLo, 19),
			circuit.ScalePow2(cLoHi, 30),
			circuit.ScalePow2(cHiLo, 40),
			circuit.ScalePow2(cHiHi, 51),
			circuit.ScalePow2(d, 61),
		),
		word,
	)
	//
	return []circuit.Constraint{
		{Name: "decompose_check", Expr: decomposeCheck},
		rangeCheck("range_check_tag_b", circuit.Cell(a0, 0), 0, tag13),
		rangeCheck("range_check_tag_c_lo_lo", circuit.Cell(a0, 1), 0, tag11),
		rangeCheck("range_check_tag_c_lo_hi", circuit.Cell(a0, 2), 0, tag11),
		rangeCheck("range_check_tag_c_hi_lo", circuit.Cell(a0, 3), 0, tag11),
		rangeCheck("range_check_tag_c_hi_hi", circuit.Cell(a0, 4), 0, tag11),
	}
}

// lowerSigma0V1Gate constrains σ0 = ROTR^1 ⊕ ROTR^8 ⊕ SHR^7 over the
// (1, 6, 1, 56)-bit chunking: the three rotation-shifted spread sums must
// equal the looked-up spread witness, whose even bits are the σ0 output.
func lowerSigma0V1Gate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		a1, a2     = c.lookup.Dense, c.lookup.Spread
		a3, a4     = c.extras[0], c.extras[1]
		a5         = c.messageSchedule
		a6         = c.extras[2]
		//
		spreadA   = circuit.Cell(a6, 1)
		b         = circuit.Cell(a6, 0)
		bLo       = circuit.Cell(a3, -1)
		spreadBLo = circuit.Cell(a4, -1)
		bHi       = circuit.Cell(a5, -1)
		spreadBHi = circuit.Cell(a6, -1)
		spreadC   = circuit.Cell(a4, 0)
		spreadDLoLo = circuit.Cell(a5, 0)
		spreadDLoHi = circuit.Cell(a5, 1)
		spreadDHiLo = circuit.Cell(a4, 1)
		spreadDHiHi = circuit.Cell(a3, 1)
	)
	// SHR^7.
	xor0 := circuit.Sum(
		spreadC,
		circuit.ScalePow2(spreadDLoLo, 2),
		circuit.ScalePow2(spreadDLoHi, 30),
		circuit.ScalePow2(spreadDHiLo, 58),
		circuit.ScalePow2(spreadDHiHi, 86),
	)
	// ROTR^1.
	xor1 := circuit.Sum(
		spreadBLo,
		circuit.ScalePow2(spreadBHi, 6),
		circuit.ScalePow2(spreadC, 12),
		circuit.ScalePow2(spreadDLoLo, 14),
		circuit.ScalePow2(spreadDLoHi, 42),
		circuit.ScalePow2(spreadDHiLo, 70),
		circuit.ScalePow2(spreadDHiHi, 98),
		circuit.ScalePow2(spreadA, 126),
	)
	// ROTR^8 places the 56-bit chunk at the bottom.
	xor2 := circuit.Sum(
		spreadDLoLo,
		circuit.ScalePow2(spreadDLoHi, 28),
		circuit.ScalePow2(spreadDHiLo, 56),
		circuit.ScalePow2(spreadDHiHi, 84),
		circuit.ScalePow2(spreadA, 112),
		circuit.ScalePow2(spreadBLo, 114),
		circuit.ScalePow2(spreadBHi, 120),
		circuit.ScalePow2(spreadC, 126),
	)
	//
	constraints := threeBitSpreadAndRange("b_lo", bLo, spreadBLo)
	constraints = append(constraints, threeBitSpreadAndRange("b_hi", bHi, spreadBHi)...)
	constraints = append(constraints, checkB(b, bLo, bHi))
	constraints = append(constraints, circuit.Constraint{
		Name: "lower_sigma_0",
		Expr: circuit.Sub(spreadWitness(a2), circuit.Sum(xor0, xor1, xor2)),
	})
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}

// lowerSigma1V1Gate constrains σ1 = ROTR^19 ⊕ ROTR^61 ⊕ SHR^6 over the
// (6, 13, 42, 3)-bit chunking.
func lowerSigma1V1Gate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		a1, a2 = c.lookup.Dense, c.lookup.Spread
		a3, a4 = c.extras[0], c.extras[1]
		a5     = c.messageSchedule
		a6     = c.extras[2]
		//
		a         = circuit.Cell(a6, 0)
		aLo       = circuit.Cell(a3, -1)
		aHi       = circuit.Cell(a6, -1)
		spreadALo = circuit.Cell(a4, -1)
		spreadAHi = circuit.Cell(a6, 1)
		spreadB   = circuit.Cell(a5, -1)
		spreadCLoLo = circuit.Cell(a5, 0)
		spreadCLoHi = circuit.Cell(a4, 0)
		spreadCHiLo = circuit.Cell(a4, 2)
		spreadCHiHi = circuit.Cell(a6, 2)
		d       = circuit.Cell(a3, 1)
		spreadD = circuit.Cell(a4, 1)
	)
	// SHR^6 places the 13-bit chunk at the bottom.
	xor0 := circuit.Sum(
		spreadB,
		circuit.ScalePow2(spreadCLoLo, 26),
		circuit.ScalePow2(spreadCLoHi, 48),
		circuit.ScalePow2(spreadCHiLo, 68),
		circuit.ScalePow2(spreadCHiHi, 90),
		circuit.ScalePow2(spreadD, 110),
	)
	// ROTR^19.
	xor1 := circuit.Sum(
		spreadCLoLo,
		circuit.ScalePow2(spreadCLoHi, 22),
		circuit.ScalePow2(spreadCHiLo, 42),
		circuit.ScalePow2(spreadCHiHi, 64),
		circuit.ScalePow2(spreadD, 84),
		circuit.ScalePow2(spreadALo, 90),
		circuit.ScalePow2(spreadAHi, 96),
		circuit.ScalePow2(spreadB, 102),
	)
	// ROTR^61.
	xor2 := circuit.Sum(
		spreadD,
		circuit.ScalePow2(spreadALo, 6),
		circuit.ScalePow2(spreadAHi, 12),
		circuit.ScalePow2(spreadB, 18),
		circuit.ScalePow2(spreadCLoLo, 44),
		circuit.ScalePow2(spreadCLoHi, 66),
		circuit.ScalePow2(spreadCHiLo, 86),
		circuit.ScalePow2(spreadCHiHi, 108),
	)
	//
	constraints := threeBitSpreadAndRange("a_lo", aLo, spreadALo)
	constraints = append(constraints, threeBitSpreadAndRange("a_hi", aHi, spreadAHi)...)
	constraints = append(constraints, threeBitSpreadAndRange("d", d, spreadD)...)
	constraints = append(constraints, checkB(a, aLo, aHi))
	constraints = append(constraints, circuit.Constraint{
		Name: "lower_sigma_1",
		Expr: circuit.Sub(spreadWitness(a2), circuit.Sum(xor0, xor1, xor2)),
	})
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}

// v2Pieces is the shared operand placement of the two sigma-v2 gates over
// the (1, 5, 1, 1, 11, 42, 3)-bit chunking.
type v2Pieces struct {
	spreadA   circuit.Expression
	b         circuit.Expression
	bLo       circuit.Expression
	spreadBLo circuit.Expression
	bHi       circuit.Expression
	spreadBHi circuit.Expression
	spreadC   circuit.Expression
	spreadD   circuit.Expression
	spreadE   circuit.Expression
	spreadFLoLo circuit.Expression
	spreadFLoHi circuit.Expression
	spreadFHiLo circuit.Expression
	spreadFHiHi circuit.Expression
	g       circuit.Expression
	spreadG circuit.Expression
}

func sigmaV2Pieces(c *MessageScheduleConfig) v2Pieces {
	var (
		a3, a4 = c.extras[0], c.extras[1]
		a5     = c.messageSchedule
		a6, a7 = c.extras[2], c.extras[3]
	)
	//
	return v2Pieces{
		spreadA:   circuit.Cell(a4, 1),
		b:         circuit.Cell(a6, 0),
		bLo:       circuit.Cell(a3, -1),
		spreadBLo: circuit.Cell(a4, -1),
		bHi:       circuit.Cell(a5, -1),
		spreadBHi: circuit.Cell(a6, -1),
		spreadC:   circuit.Cell(a6, 1),
		spreadD:   circuit.Cell(a4, 0),
		spreadE:   circuit.Cell(a7, 0),
		spreadFLoLo: circuit.Cell(a7, 1),
		spreadFLoHi: circuit.Cell(a7, 2),
		spreadFHiLo: circuit.Cell(a4, 2),
		spreadFHiHi: circuit.Cell(a4, 3),
		g:       circuit.Cell(a5, 1),
		spreadG: circuit.Cell(a5, 0),
	}
}

func (p *v2Pieces) commonChecks() []circuit.Constraint {
	constraints := threeBitSpreadAndRange("b_lo", p.bLo, p.spreadBLo)
	constraints = append(constraints, twoBitSpreadAndRange("b_hi", p.bHi, p.spreadBHi)...)
	constraints = append(constraints, threeBitSpreadAndRange("g", p.g, p.spreadG)...)
	//
	return append(constraints, checkB(p.b, p.bLo, p.bHi))
}

// lowerSigma0V2Gate constrains σ0 over the unified chunking of W_14..W_64.
func lowerSigma0V2Gate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		a1, a2 = c.lookup.Dense, c.lookup.Spread
		a3     = c.extras[0]
		pieces = sigmaV2Pieces(c)
	)
	// SHR^7.
	xor0 := circuit.Sum(
		pieces.spreadD,
		circuit.ScalePow2(pieces.spreadE, 2),
		circuit.ScalePow2(pieces.spreadFLoLo, 24),
		circuit.ScalePow2(pieces.spreadFLoHi, 46),
		circuit.ScalePow2(pieces.spreadFHiLo, 66),
		circuit.ScalePow2(pieces.spreadFHiHi, 88),
		circuit.ScalePow2(pieces.spreadG, 108),
	)
	// ROTR^1.
	xor1 := circuit.Sum(
		pieces.spreadBLo,
		circuit.ScalePow2(pieces.spreadBHi, 6),
		circuit.ScalePow2(pieces.spreadC, 10),
		circuit.ScalePow2(pieces.spreadD, 12),
		circuit.ScalePow2(pieces.spreadE, 14),
		circuit.ScalePow2(pieces.spreadFLoLo, 36),
		circuit.ScalePow2(pieces.spreadFLoHi, 58),
		circuit.ScalePow2(pieces.spreadFHiLo, 78),
		circuit.ScalePow2(pieces.spreadFHiHi, 100),
		circuit.ScalePow2(pieces.spreadG, 120),
		circuit.ScalePow2(pieces.spreadA, 126),
	)
	// ROTR^8.
	xor2 := circuit.Sum(
		pieces.spreadE,
		circuit.ScalePow2(pieces.spreadFLoLo, 22),
		circuit.ScalePow2(pieces.spreadFLoHi, 44),
		circuit.ScalePow2(pieces.spreadFHiLo, 64),
		circuit.ScalePow2(pieces.spreadFHiHi, 86),
		circuit.ScalePow2(pieces.spreadG, 106),
		circuit.ScalePow2(pieces.spreadA, 112),
		circuit.ScalePow2(pieces.spreadBLo, 114),
		circuit.ScalePow2(pieces.spreadBHi, 120),
		circuit.ScalePow2(pieces.spreadC, 124),
		circuit.ScalePow2(pieces.spreadD, 126),
	)
	//
	constraints := pieces.commonChecks()
	constraints = append(constraints, circuit.Constraint{
		Name: "lower_sigma_0_v2",
		Expr: circuit.Sub(spreadWitness(a2), circuit.Sum(xor0, xor1, xor2)),
	})
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}

// lowerSigma1V2Gate constrains σ1 over the unified chunking of W_14..W_64.
func lowerSigma1V2Gate(c *MessageScheduleConfig) []circuit.Constraint {
	var (
		a1, a2 = c.lookup.Dense, c.lookup.Spread
		a3     = c.extras[0]
		pieces = sigmaV2Pieces(c)
	)
	// SHR^6.
	xor0 := circuit.Sum(
		pieces.spreadC,
		circuit.ScalePow2(pieces.spreadD, 2),
		circuit.ScalePow2(pieces.spreadE, 4),
		circuit.ScalePow2(pieces.spreadFLoLo, 26),
		circuit.ScalePow2(pieces.spreadFLoHi, 48),
		circuit.ScalePow2(pieces.spreadFHiLo, 68),
		circuit.ScalePow2(pieces.spreadFHiHi, 90),
		circuit.ScalePow2(pieces.spreadG, 110),
	)
	// ROTR^19.
	xor1 := circuit.Sum(
		pieces.spreadFLoLo,
		circuit.ScalePow2(pieces.spreadFLoHi, 22),
		circuit.ScalePow2(pieces.spreadFHiLo, 42),
		circuit.ScalePow2(pieces.spreadFHiHi, 64),
		circuit.ScalePow2(pieces.spreadG, 84),
		circuit.ScalePow2(pieces.spreadA, 90),
		circuit.ScalePow2(pieces.spreadBLo, 92),
		circuit.ScalePow2(pieces.spreadBHi, 98),
		circuit.ScalePow2(pieces.spreadC, 102),
		circuit.ScalePow2(pieces.spreadD, 104),
		circuit.ScalePow2(pieces.spreadE, 106),
	)
	// ROTR^61.
	xor2 := circuit.Sum(
		pieces.spreadG,
		circuit.ScalePow2(pieces.spreadA, 6),
		circuit.ScalePow2(pieces.spreadBLo, 8),
		circuit.ScalePow2(pieces.spreadBHi, 14),
		circuit.ScalePow2(pieces.spreadC, 18),
		circuit.ScalePow2(pieces.spreadD, 20),
		circuit.ScalePow2(pieces.spreadE, 22),
		circuit.ScalePow2(pieces.spreadFLoLo, 44),
		circuit.ScalePow2(pieces.spreadFLoHi, 66),
		circuit.ScalePow2(pieces.spreadFHiLo, 86),
		circuit.ScalePow2(pieces.spreadFHiHi, 108),
	)
	//
	constraints := pieces.commonChecks()
	constraints = append(constraints, circuit.Constraint{
		Name: "lower_sigma_1_v2",
		Expr: circuit.Sub(spreadWitness(a2), circuit.Sum(xor0, xor1, xor2)),
	})
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}
