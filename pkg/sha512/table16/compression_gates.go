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

// As with the schedule gates, these constructors fix the cell placement of
// every compression gate; compression_util.go mirrors them during
// assignment.

// decomposeABCDGate constrains the (28, 6, 5, 25)-bit chunking of an A-role
// word, in both dense and spread form, against its 32-bit word halves.
// Pieces: a as (14, 14), b as (3, 3), c as (2, 3), d as (14, 11).
func decomposeABCDGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a0, a1, a2 = c.lookup.Tag, c.lookup.Dense, c.lookup.Spread
		a3, a4     = c.extras[0], c.extras[1]
		a7, a8     = c.extras[3], c.extras[4]
		//
		aLo, spreadALo = circuit.Cell(a1, 0), circuit.Cell(a2, 0)
		aHi, spreadAHi = circuit.Cell(a1, 1), circuit.Cell(a2, 1)
		bLo, spreadBLo = circuit.Cell(a3, 0), circuit.Cell(a4, 0)
		bHi, spreadBHi = circuit.Cell(a3, 1), circuit.Cell(a4, 1)
		cLo, spreadCLo = circuit.Cell(a3, 2), circuit.Cell(a4, 2)
		cHi, spreadCHi = circuit.Cell(a3, 3), circuit.Cell(a4, 3)
		dLo, spreadDLo = circuit.Cell(a1, 2), circuit.Cell(a2, 2)
		dHi, spreadDHi = circuit.Cell(a1, 3), circuit.Cell(a2, 3)
		//
		wordLo, spreadWordLo = circuit.Cell(a7, 0), circuit.Cell(a8, 0)
		wordHi, spreadWordHi = circuit.Cell(a7, 1), circuit.Cell(a8, 1)
	)
	//
	denseCheck := circuit.Sub(
		circuit.Sum(
			aLo,
			circuit.ScalePow2(aHi, 14),
			circuit.ScalePow2(bLo, 28),
			circuit.ScalePow2(bHi, 31),
			circuit.ScalePow2(cLo, 34),
			circuit.ScalePow2(cHi, 36),
			circuit.ScalePow2(dLo, 39),
			circuit.ScalePow2(dHi, 53),
		),
		circuit.Sum(wordLo, circuit.ScalePow2(wordHi, 32)),
	)
	//
	spreadCheck := circuit.Sub(
		circuit.Sum(
			spreadALo,
			circuit.ScalePow2(spreadAHi, 28),
			circuit.ScalePow2(spreadBLo, 56),
			circuit.ScalePow2(spreadBHi, 62),
			circuit.ScalePow2(spreadCLo, 68),
			circuit.ScalePow2(spreadCHi, 72),
			circuit.ScalePow2(spreadDLo, 78),
			circuit.ScalePow2(spreadDHi, 106),
		),
		circuit.Sum(spreadWordLo, circuit.ScalePow2(spreadWordHi, 64)),
	)
	//
	constraints := threeBitSpreadAndRange("b_lo", bLo, spreadBLo)
	constraints = append(constraints, threeBitSpreadAndRange("b_hi", bHi, spreadBHi)...)
	constraints = append(constraints, twoBitSpreadAndRange("c_lo", cLo, spreadCLo)...)
	constraints = append(constraints, threeBitSpreadAndRange("c_hi", cHi, spreadCHi)...)
	//
	return append(constraints,
		rangeCheck("range_check_tag_a_lo", circuit.Cell(a0, 0), 0, tag14),
		rangeCheck("range_check_tag_a_hi", circuit.Cell(a0, 1), 0, tag14),
		rangeCheck("range_check_tag_d_lo", circuit.Cell(a0, 2), 0, tag14),
		rangeCheck("range_check_tag_d_hi", circuit.Cell(a0, 3), 0, tag11),
		circuit.Constraint{Name: "dense_check", Expr: denseCheck},
		circuit.Constraint{Name: "spread_check", Expr: spreadCheck},
	)
}

// decomposeEFGHGate constrains the (14, 4, 23, 23)-bit chunking of an E-role
// word.  Pieces: a as 14, b as (2, 2), c as (13, 10), d as (13, 10).
func decomposeEFGHGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a0, a1, a2 = c.lookup.Tag, c.lookup.Dense, c.lookup.Spread
		a3, a4     = c.extras[0], c.extras[1]
		a7, a8     = c.extras[3], c.extras[4]
		//
		a, spreadA     = circuit.Cell(a1, 0), circuit.Cell(a2, 0)
		bLo, spreadBLo = circuit.Cell(a3, 0), circuit.Cell(a4, 0)
		bHi, spreadBHi = circuit.Cell(a3, 1), circuit.Cell(a4, 1)
		cLo, spreadCLo = circuit.Cell(a1, 1), circuit.Cell(a2, 1)
		cHi, spreadCHi = circuit.Cell(a1, 2), circuit.Cell(a2, 2)
		dLo, spreadDLo = circuit.Cell(a1, 3), circuit.Cell(a2, 3)
		dHi, spreadDHi = circuit.Cell(a1, 4), circuit.Cell(a2, 4)
		//
		wordLo, spreadWordLo = circuit.Cell(a7, 0), circuit.Cell(a8, 0)
		wordHi, spreadWordHi = circuit.Cell(a7, 1), circuit.Cell(a8, 1)
	)
	//
	denseCheck := circuit.Sub(
		circuit.Sum(
			a,
			circuit.ScalePow2(bLo, 14),
			circuit.ScalePow2(bHi, 16),
			circuit.ScalePow2(cLo, 18),
			circuit.ScalePow2(cHi, 31),
			circuit.ScalePow2(dLo, 41),
			circuit.ScalePow2(dHi, 54),
		),
		circuit.Sum(wordLo, circuit.ScalePow2(wordHi, 32)),
	)
	//
	spreadCheck := circuit.Sub(
		circuit.Sum(
			spreadA,
			circuit.ScalePow2(spreadBLo, 28),
			circuit.ScalePow2(spreadBHi, 32),
			circuit.ScalePow2(spreadCLo, 36),
			circuit.ScalePow2(spreadCHi, 62),
			circuit.ScalePow2(spreadDLo, 82),
			circuit.ScalePow2(spreadDHi, 108),
		),
		circuit.Sum(spreadWordLo, circuit.ScalePow2(spreadWordHi, 64)),
	)
	//
	constraints := twoBitSpreadAndRange("b_lo", bLo, spreadBLo)
	constraints = append(constraints, twoBitSpreadAndRange("b_hi", bHi, spreadBHi)...)
	//
	return append(constraints,
		rangeCheck("range_check_tag_a", circuit.Cell(a0, 0), 0, tag14),
		rangeCheck("range_check_tag_c_lo", circuit.Cell(a0, 1), 0, tag13),
		rangeCheck("range_check_tag_c_hi", circuit.Cell(a0, 2), 0, tag11),
		rangeCheck("range_check_tag_d_lo", circuit.Cell(a0, 3), 0, tag13),
		rangeCheck("range_check_tag_d_hi", circuit.Cell(a0, 4), 0, tag11),
		circuit.Constraint{Name: "dense_check", Expr: denseCheck},
		circuit.Constraint{Name: "spread_check", Expr: spreadCheck},
	)
}

// upperSigma0Gate constrains Σ0 = ROTR^28 ⊕ ROTR^34 ⊕ ROTR^39 over the
// spread pieces of an A-role word.
func upperSigma0Gate(c *CompressionConfig) []circuit.Constraint {
	var (
		a1, a2 = c.lookup.Dense, c.lookup.Spread
		a3, a4 = c.extras[0], c.extras[1]
		a5     = c.messageSchedule
		//
		spreadALo = circuit.Cell(a3, 1)
		spreadAHi = circuit.Cell(a4, -1)
		spreadBLo = circuit.Cell(a4, 0)
		spreadBHi = circuit.Cell(a4, 1)
		spreadCLo = circuit.Cell(a5, -1)
		spreadCHi = circuit.Cell(a5, 0)
		spreadDLo = circuit.Cell(a5, 1)
		spreadDHi = circuit.Cell(a3, -1)
	)
	// ROTR^28.
	xor0 := circuit.Sum(
		spreadBLo,
		circuit.ScalePow2(spreadBHi, 6),
		circuit.ScalePow2(spreadCLo, 12),
		circuit.ScalePow2(spreadCHi, 16),
		circuit.ScalePow2(spreadDLo, 22),
		circuit.ScalePow2(spreadDHi, 50),
		circuit.ScalePow2(spreadALo, 72),
		circuit.ScalePow2(spreadAHi, 100),
	)
	// ROTR^34.
	xor1 := circuit.Sum(
		spreadCLo,
		circuit.ScalePow2(spreadCHi, 4),
		circuit.ScalePow2(spreadDLo, 10),
		circuit.ScalePow2(spreadDHi, 38),
		circuit.ScalePow2(spreadALo, 60),
		circuit.ScalePow2(spreadAHi, 88),
		circuit.ScalePow2(spreadBLo, 116),
		circuit.ScalePow2(spreadBHi, 122),
	)
	// ROTR^39.
	xor2 := circuit.Sum(
		spreadDLo,
		circuit.ScalePow2(spreadDHi, 28),
		circuit.ScalePow2(spreadALo, 50),
		circuit.ScalePow2(spreadAHi, 78),
		circuit.ScalePow2(spreadBLo, 106),
		circuit.ScalePow2(spreadBHi, 112),
		circuit.ScalePow2(spreadCLo, 118),
		circuit.ScalePow2(spreadCHi, 122),
	)
	//
	constraints := []circuit.Constraint{{
		Name: "upper_sigma_0",
		Expr: circuit.Sub(spreadWitness(a2), circuit.Sum(xor0, xor1, xor2)),
	}}
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}

// upperSigma1Gate constrains Σ1 = ROTR^14 ⊕ ROTR^18 ⊕ ROTR^41 over the
// spread pieces of an E-role word.
func upperSigma1Gate(c *CompressionConfig) []circuit.Constraint {
	var (
		a1, a2 = c.lookup.Dense, c.lookup.Spread
		a3, a4 = c.extras[0], c.extras[1]
		a5     = c.messageSchedule
		//
		spreadA   = circuit.Cell(a3, 1)
		spreadBLo = circuit.Cell(a4, -1)
		spreadBHi = circuit.Cell(a4, 0)
		spreadCLo = circuit.Cell(a4, 1)
		spreadCHi = circuit.Cell(a5, -1)
		spreadDLo = circuit.Cell(a5, 0)
		spreadDHi = circuit.Cell(a5, 1)
	)
	// ROTR^14.
	xor0 := circuit.Sum(
		spreadBLo,
		circuit.ScalePow2(spreadBHi, 4),
		circuit.ScalePow2(spreadCLo, 8),
		circuit.ScalePow2(spreadCHi, 34),
		circuit.ScalePow2(spreadDLo, 54),
		circuit.ScalePow2(spreadDHi, 80),
		circuit.ScalePow2(spreadA, 100),
	)
	// ROTR^18.
	xor1 := circuit.Sum(
		spreadCLo,
		circuit.ScalePow2(spreadCHi, 26),
		circuit.ScalePow2(spreadDLo, 46),
		circuit.ScalePow2(spreadDHi, 72),
		circuit.ScalePow2(spreadA, 92),
		circuit.ScalePow2(spreadBLo, 120),
		circuit.ScalePow2(spreadBHi, 124),
	)
	// ROTR^41.
	xor2 := circuit.Sum(
		spreadDLo,
		circuit.ScalePow2(spreadDHi, 26),
		circuit.ScalePow2(spreadA, 46),
		circuit.ScalePow2(spreadBLo, 74),
		circuit.ScalePow2(spreadBHi, 78),
		circuit.ScalePow2(spreadCLo, 82),
		circuit.ScalePow2(spreadCHi, 108),
	)
	//
	constraints := []circuit.Constraint{{
		Name: "upper_sigma_1",
		Expr: circuit.Sub(spreadWitness(a2), circuit.Sum(xor0, xor1, xor2)),
	}}
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}

// chGate constrains the first half of the choice function: the odd bits of
// spread(E) + spread(F) are E ∧ F.
func chGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a1, a2 = c.lookup.Dense, c.lookup.Spread
		a3, a4 = c.extras[0], c.extras[1]
		//
		spreadELo = circuit.Cell(a3, -1)
		spreadEHi = circuit.Cell(a4, -1)
		spreadFLo = circuit.Cell(a3, 1)
		spreadFHi = circuit.Cell(a4, 1)
	)
	//
	lhs := circuit.Sum(
		circuit.Sum(spreadELo, spreadFLo),
		circuit.ScalePow2(circuit.Sum(spreadEHi, spreadFHi), 64),
	)
	//
	constraints := []circuit.Constraint{{
		Name: "s_ch",
		Expr: circuit.Sub(lhs, spreadWitness(a2)),
	}}
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}

// chNegGate constrains the second half of the choice function: spread(¬E)
// must be the even-bit complement of spread(E), and the odd bits of
// spread(¬E) + spread(G) are ¬E ∧ G.
func chNegGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a1, a2 = c.lookup.Dense, c.lookup.Spread
		a3, a4 = c.extras[0], c.extras[1]
		a5     = c.messageSchedule
		//
		spreadNegELo = circuit.Cell(a3, -1)
		spreadNegEHi = circuit.Cell(a4, -1)
		spreadELo    = circuit.Cell(a5, -1)
		spreadEHi    = circuit.Cell(a5, 0)
		spreadGLo    = circuit.Cell(a3, 1)
		spreadGHi    = circuit.Cell(a4, 1)
		//
		evens = circuit.Const64(MaskEven64)
	)
	//
	lhs := circuit.Sum(
		circuit.Sum(spreadNegELo, spreadGLo),
		circuit.ScalePow2(circuit.Sum(spreadNegEHi, spreadGHi), 64),
	)
	//
	constraints := []circuit.Constraint{
		{Name: "lo_check", Expr: circuit.Sub(circuit.Sum(spreadNegELo, spreadELo), evens)},
		{Name: "hi_check", Expr: circuit.Sub(circuit.Sum(spreadNegEHi, spreadEHi), evens)},
		{Name: "s_ch_neg", Expr: circuit.Sub(lhs, spreadWitness(a2))},
	}
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}

// majGate constrains the majority function: the odd bits of spread(A) +
// spread(B) + spread(C) are Maj(A, B, C).
func majGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a1, a2 = c.lookup.Dense, c.lookup.Spread
		a3, a4 = c.extras[0], c.extras[1]
		a5     = c.messageSchedule
		//
		spreadALo = circuit.Cell(a4, -1)
		spreadAHi = circuit.Cell(a5, -1)
		spreadBLo = circuit.Cell(a4, 0)
		spreadBHi = circuit.Cell(a5, 0)
		spreadCLo = circuit.Cell(a4, 1)
		spreadCHi = circuit.Cell(a5, 1)
	)
	//
	sum := circuit.Sum(
		circuit.Sum(spreadALo, circuit.ScalePow2(spreadAHi, 64)),
		circuit.Sum(spreadBLo, circuit.ScalePow2(spreadBHi, 64)),
		circuit.Sum(spreadCLo, circuit.ScalePow2(spreadCHi, 64)),
	)
	//
	constraints := []circuit.Constraint{{
		Name: "maj",
		Expr: circuit.Sub(sum, spreadWitness(a2)),
	}}
	//
	return append(constraints, spreadOutputJoins(a1, a3)...)
}

// hPrimeGate constrains H' = H + Σ1(E) + Ch(E, F, G) + K + W as a
// six-operand modular addition over 32-bit halves.  The two Ch halves are
// read in place from the choice band's odd-bit joins (rotations +3 and +5).
func hPrimeGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a3, a4 = c.extras[0], c.extras[1]
		a5     = c.messageSchedule
		a6, a7 = c.extras[2], c.extras[3]
		a8, a9 = c.extras[4], c.extras[5]
		//
		hLo, hHi         = circuit.Cell(a7, -1), circuit.Cell(a7, 0)
		chLo, chHi       = circuit.Cell(a3, 3), circuit.Cell(a3, 5)
		chNegLo, chNegHi = circuit.Cell(a5, -1), circuit.Cell(a5, 1)
		sigmaELo         = circuit.Cell(a4, 0)
		sigmaEHi         = circuit.Cell(a5, 0)
		kLo, kHi         = circuit.Cell(a6, -1), circuit.Cell(a6, 0)
		wLo, wHi         = circuit.Cell(a8, -1), circuit.Cell(a8, 0)
		//
		hPrimeLo    = circuit.Cell(a7, 1)
		hPrimeHi    = circuit.Cell(a8, 1)
		hPrimeCarry = circuit.Cell(a9, 1)
	)
	//
	lo := circuit.Sum(hLo, chLo, chNegLo, sigmaELo, kLo, wLo)
	hi := circuit.Sum(hHi, chHi, chNegHi, sigmaEHi, kHi, wHi)
	//
	check := circuit.Sub(
		circuit.Sum(lo, circuit.ScalePow2(hi, 32)),
		circuit.Sum(
			circuit.ScalePow2(hPrimeCarry, 64),
			hPrimeLo,
			circuit.ScalePow2(hPrimeHi, 32),
		),
	)
	//
	return []circuit.Constraint{
		{Name: "s_h_prime", Expr: check},
		rangeCheck("h_prime_carry", hPrimeCarry, 0, 5),
	}
}

// eNewGate constrains E_new = H' + D with carry in {0, 1}.  The H' halves
// are read in place one row above the gate row.
func eNewGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a7, a8, a9 = c.extras[3], c.extras[4], c.extras[5]
		//
		dLo, dHi           = circuit.Cell(a7, 0), circuit.Cell(a7, 1)
		hPrimeLo, hPrimeHi = circuit.Cell(a7, -1), circuit.Cell(a8, -1)
		eNewLo, eNewHi     = circuit.Cell(a8, 0), circuit.Cell(a8, 1)
		eNewCarry          = circuit.Cell(a9, 1)
	)
	//
	check := circuit.Sub(
		circuit.Sum(
			circuit.Sum(hPrimeLo, dLo),
			circuit.ScalePow2(circuit.Sum(hPrimeHi, dHi), 32),
		),
		circuit.Sum(
			circuit.ScalePow2(eNewCarry, 64),
			eNewLo,
			circuit.ScalePow2(eNewHi, 32),
		),
	)
	//
	return []circuit.Constraint{
		{Name: "s_e_new", Expr: check},
		rangeCheck("e_new_carry", eNewCarry, 0, 1),
	}
}

// aNewGate constrains A_new = H' + Σ0(A) + Maj(A, B, C) with carry in
// {0, 1, 2}.
func aNewGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a3         = c.extras[0]
		a6, a7     = c.extras[2], c.extras[3]
		a8, a9     = c.extras[4], c.extras[5]
		//
		sigmaALo, sigmaAHi = circuit.Cell(a6, 0), circuit.Cell(a6, 1)
		majLo, majHi       = circuit.Cell(a7, 0), circuit.Cell(a3, -1)
		hPrimeLo, hPrimeHi = circuit.Cell(a7, -1), circuit.Cell(a8, -1)
		aNewLo, aNewHi     = circuit.Cell(a8, 0), circuit.Cell(a8, 1)
		aNewCarry          = circuit.Cell(a9, 0)
	)
	//
	check := circuit.Sub(
		circuit.Sum(
			circuit.Sum(sigmaALo, majLo, hPrimeLo),
			circuit.ScalePow2(circuit.Sum(sigmaAHi, majHi, hPrimeHi), 32),
		),
		circuit.Sum(
			circuit.ScalePow2(aNewCarry, 64),
			aNewLo,
			circuit.ScalePow2(aNewHi, 32),
		),
	)
	//
	return []circuit.Constraint{
		{Name: "s_a_new", Expr: check},
		rangeCheck("a_new_carry", aNewCarry, 0, 2),
	}
}

// feedForwardGate constrains one word of the block output state to the sum
// of the compressed word and the corresponding initial-state word, modulo
// 2^64.  This is the Davies-Meyer addition which makes multi-block chaining
// sound.
func feedForwardGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a3, a4     = c.extras[0], c.extras[1]
		a7, a8, a9 = c.extras[3], c.extras[4], c.extras[5]
		//
		xLo, xHi     = circuit.Cell(a7, 0), circuit.Cell(a7, 1)
		yLo, yHi     = circuit.Cell(a3, 0), circuit.Cell(a4, 0)
		outLo, outHi = circuit.Cell(a8, 0), circuit.Cell(a8, 1)
		carry        = circuit.Cell(a9, 0)
	)
	//
	check := circuit.Sub(
		circuit.Sum(
			circuit.Sum(xLo, yLo),
			circuit.ScalePow2(circuit.Sum(xHi, yHi), 32),
		),
		circuit.Sum(circuit.ScalePow2(carry, 64), outLo, circuit.ScalePow2(outHi, 32)),
	)
	//
	return []circuit.Constraint{
		{Name: "s_feed_forward", Expr: check},
		rangeCheck("feed_forward_carry", carry, 0, 1),
	}
}

// digestGate constrains four output words per gate row pair: each word cell
// must equal lo + 2^32 * hi of its copied halves.
func digestGate(c *CompressionConfig) []circuit.Constraint {
	var (
		a3, a4 = c.extras[0], c.extras[1]
		a5     = c.messageSchedule
		a6, a7 = c.extras[2], c.extras[3]
		a8     = c.extras[4]
	)
	//
	checkLoHi := func(name string, lo, hi, word circuit.Expression) circuit.Constraint {
		return circuit.Constraint{
			Name: name,
			Expr: circuit.Sub(circuit.Sum(lo, circuit.ScalePow2(hi, 32)), word),
		}
	}
	//
	return []circuit.Constraint{
		checkLoHi("check_lo_hi_0", circuit.Cell(a3, 0), circuit.Cell(a4, 0), circuit.Cell(a5, 0)),
		checkLoHi("check_lo_hi_1", circuit.Cell(a6, 0), circuit.Cell(a7, 0), circuit.Cell(a8, 0)),
		checkLoHi("check_lo_hi_2", circuit.Cell(a3, 1), circuit.Cell(a4, 1), circuit.Cell(a5, 1)),
		checkLoHi("check_lo_hi_3", circuit.Cell(a6, 1), circuit.Cell(a7, 1), circuit.Cell(a8, 1)),
	}
}
