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
	"fmt"

	"github.com/consensys/sha512-circuit/pkg/circuit"
)

// RoundWordDense is a 64-bit word held as two dense 32-bit halves.
type RoundWordDense struct {
	// Lo is the low 32-bit half.
	Lo *AssignedBits
	// Hi is the high 32-bit half.
	Hi *AssignedBits
}

// Value reconstructs the 64-bit word.
func (p RoundWordDense) Value() uint64 {
	return p.Lo.Value() | p.Hi.Value()<<32
}

// HalfValues returns the halves as a (lo, hi) pair of 32-bit integers.
func (p RoundWordDense) HalfValues() [2]uint32 {
	return [2]uint32{uint32(p.Lo.Value()), uint32(p.Hi.Value())}
}

// RoundWordSpread is a 64-bit word held as the spread forms of its 32-bit
// halves (64 bits each).
type RoundWordSpread struct {
	// Lo is the spread form of the low half.
	Lo *AssignedBits
	// Hi is the spread form of the high half.
	Hi *AssignedBits
}

// Value reconstructs the 128-bit spread form of the word.
func (p RoundWordSpread) Value() Uint128 {
	return p.Lo.Value128().Add(p.Hi.Value128().Shl(64))
}

// AbcdVar is the (28, 6, 5, 25)-bit chunking of an A-role word, held as
// looked-up (14, 14)-bit pieces for the 28-bit chunk, short spread pieces
// for the 6- and 5-bit chunks, and (14, 11)-bit pieces for the 25-bit chunk.
type AbcdVar struct {
	aLo *SpreadVar
	aHi *SpreadVar
	bLo *SpreadVar
	bHi *SpreadVar
	cLo *SpreadVar
	cHi *SpreadVar
	dLo *SpreadVar
	dHi *SpreadVar
}

// xorUpperSigma computes the spread witness of Σ0 = ROTR^28 ⊕ ROTR^34 ⊕
// ROTR^39.
func (p *AbcdVar) xorUpperSigma() []bool {
	var (
		aLo = p.aLo.Spread.Value128()
		aHi = p.aHi.Spread.Value128()
		bLo = p.bLo.Spread.Value128()
		bHi = p.bHi.Spread.Value128()
		cLo = p.cLo.Spread.Value128()
		cHi = p.cHi.Spread.Value128()
		dLo = p.dLo.Spread.Value128()
		dHi = p.dHi.Spread.Value128()
	)
	// ROTR^28: b c d a.
	xor0 := bLo.
		Add(bHi.Shl(6)).
		Add(cLo.Shl(12)).
		Add(cHi.Shl(16)).
		Add(dLo.Shl(22)).
		Add(dHi.Shl(50)).
		Add(aLo.Shl(72)).
		Add(aHi.Shl(100))
	// ROTR^34: c d a b.
	xor1 := cLo.
		Add(cHi.Shl(4)).
		Add(dLo.Shl(10)).
		Add(dHi.Shl(38)).
		Add(aLo.Shl(60)).
		Add(aHi.Shl(88)).
		Add(bLo.Shl(116)).
		Add(bHi.Shl(122))
	// ROTR^39: d a b c.
	xor2 := dLo.
		Add(dHi.Shl(28)).
		Add(aLo.Shl(50)).
		Add(aHi.Shl(78)).
		Add(bLo.Shl(106)).
		Add(bHi.Shl(112)).
		Add(cLo.Shl(118)).
		Add(cHi.Shl(122))
	//
	return i2lebsp128(xor0.Add(xor1).Add(xor2), 128)
}

// EfghVar is the (14, 4, 23, 23)-bit chunking of an E-role word, held as a
// looked-up 14-bit piece, short spread pieces for the 4-bit chunk, and
// looked-up (13, 10)-bit pieces for each 23-bit chunk.
type EfghVar struct {
	a   *SpreadVar
	bLo *SpreadVar
	bHi *SpreadVar
	cLo *SpreadVar
	cHi *SpreadVar
	dLo *SpreadVar
	dHi *SpreadVar
}

// xorUpperSigma computes the spread witness of Σ1 = ROTR^14 ⊕ ROTR^18 ⊕
// ROTR^41.
func (p *EfghVar) xorUpperSigma() []bool {
	var (
		a   = p.a.Spread.Value128()
		bLo = p.bLo.Spread.Value128()
		bHi = p.bHi.Spread.Value128()
		cLo = p.cLo.Spread.Value128()
		cHi = p.cHi.Spread.Value128()
		dLo = p.dLo.Spread.Value128()
		dHi = p.dHi.Spread.Value128()
	)
	// ROTR^14: b c d a.
	xor0 := bLo.
		Add(bHi.Shl(4)).
		Add(cLo.Shl(8)).
		Add(cHi.Shl(34)).
		Add(dLo.Shl(54)).
		Add(dHi.Shl(80)).
		Add(a.Shl(100))
	// ROTR^18: c d a b.
	xor1 := cLo.
		Add(cHi.Shl(26)).
		Add(dLo.Shl(46)).
		Add(dHi.Shl(72)).
		Add(a.Shl(92)).
		Add(bLo.Shl(120)).
		Add(bHi.Shl(124))
	// ROTR^41: d a b c.
	xor2 := dLo.
		Add(dHi.Shl(26)).
		Add(a.Shl(46)).
		Add(bLo.Shl(74)).
		Add(bHi.Shl(78)).
		Add(cLo.Shl(82)).
		Add(cHi.Shl(108))
	//
	return i2lebsp128(xor0.Add(xor1).Add(xor2), 128)
}

// RoundWordA is the A-role representation: chunk pieces for Σ0, plus dense
// and spread halves for Maj and the rotation into B.
type RoundWordA struct {
	pieces *AbcdVar
	dense  RoundWordDense
	spread *RoundWordSpread
}

// RoundWordE is the E-role representation: chunk pieces for Σ1, plus dense
// and spread halves for Ch and the rotation into F.
type RoundWordE struct {
	pieces *EfghVar
	dense  RoundWordDense
	spread *RoundWordSpread
}

// RoundWord is the B/C/F/G-role representation: dense and spread halves.
type RoundWord struct {
	dense  RoundWordDense
	spread RoundWordSpread
}

// StateWord is one entry of the 8-word state, in whichever representation
// its current role requires.
type StateWord interface {
	isStateWord()
}

func (RoundWordA) isStateWord()     {}
func (RoundWordE) isStateWord()     {}
func (RoundWord) isStateWord()      {}
func (RoundWordDense) isStateWord() {}

// State is the 8-word SHA-512 state (A..H).  During rounds A and E carry
// their chunk decompositions, B, C, F, G carry dense and spread halves, and
// D, H carry only dense halves.  After the feed-forward of a block all eight
// words are dense.
type State struct {
	a StateWord
	b StateWord
	c StateWord
	d StateWord
	e StateWord
	f StateWord
	g StateWord
	h StateWord
}

// matchState destructures an initialized state, panicking if any word is not
// in its round-role representation.  Misuse here is a programming bug, not a
// witness error.
func matchState(state *State) (RoundWordA, RoundWord, RoundWord, RoundWordDense,
	RoundWordE, RoundWord, RoundWord, RoundWordDense) {
	a, okA := state.a.(RoundWordA)
	b, okB := state.b.(RoundWord)
	c, okC := state.c.(RoundWord)
	d, okD := state.d.(RoundWordDense)
	e, okE := state.e.(RoundWordE)
	f, okF := state.f.(RoundWord)
	g, okG := state.g.(RoundWord)
	h, okH := state.h.(RoundWordDense)
	//
	if !(okA && okB && okC && okD && okE && okF && okG && okH) {
		panic(fmt.Errorf("state is not in round form: %T %T %T %T %T %T %T %T",
			state.a, state.b, state.c, state.d, state.e, state.f, state.g, state.h))
	}
	//
	return a, b, c, d, e, f, g, h
}

// matchDenseState destructures a compressed (post-feed-forward) state whose
// eight words are all dense.
func matchDenseState(state *State) [stateWords]RoundWordDense {
	var (
		res   [stateWords]RoundWordDense
		words = [stateWords]StateWord{state.a, state.b, state.c, state.d, state.e, state.f, state.g, state.h}
	)
	//
	for i, word := range words {
		dense, ok := word.(RoundWordDense)
		if !ok {
			panic(fmt.Errorf("state word %d is not dense: %T", i, word))
		}
		//
		res[i] = dense
	}
	//
	return res
}

// CompressionConfig holds the columns and selectors of the compression
// subsystem.
type CompressionConfig struct {
	lookup          SpreadInputs
	messageSchedule circuit.Column
	extras          [6]circuit.Column

	sDecomposeABCD circuit.Selector
	sDecomposeEFGH circuit.Selector
	sUpperSigma0   circuit.Selector
	sUpperSigma1   circuit.Selector
	sCh            circuit.Selector
	sChNeg         circuit.Selector
	sMaj           circuit.Selector
	sHPrime        circuit.Selector
	sANew          circuit.Selector
	sENew          circuit.Selector
	sFeedForward   circuit.Selector
	sDigest        circuit.Selector
}

// configureCompression declares the compression selectors and gates.
func configureCompression(cs *circuit.ConstraintSystem, lookup SpreadInputs,
	messageSchedule circuit.Column, extras [6]circuit.Column) CompressionConfig {
	config := CompressionConfig{
		lookup:          lookup,
		messageSchedule: messageSchedule,
		extras:          extras,
		sDecomposeABCD:  cs.Selector("s_decompose_abcd"),
		sDecomposeEFGH:  cs.Selector("s_decompose_efgh"),
		sUpperSigma0:    cs.Selector("s_upper_sigma_0"),
		sUpperSigma1:    cs.Selector("s_upper_sigma_1"),
		sCh:             cs.Selector("s_ch"),
		sChNeg:          cs.Selector("s_ch_neg"),
		sMaj:            cs.Selector("s_maj"),
		sHPrime:         cs.Selector("s_h_prime"),
		sANew:           cs.Selector("s_a_new"),
		sENew:           cs.Selector("s_e_new"),
		sFeedForward:    cs.Selector("s_feed_forward"),
		sDigest:         cs.Selector("s_digest"),
	}
	//
	cs.CreateGate("s_decompose_abcd", config.sDecomposeABCD, decomposeABCDGate(&config))
	cs.CreateGate("s_decompose_efgh", config.sDecomposeEFGH, decomposeEFGHGate(&config))
	cs.CreateGate("s_upper_sigma_0", config.sUpperSigma0, upperSigma0Gate(&config))
	cs.CreateGate("s_upper_sigma_1", config.sUpperSigma1, upperSigma1Gate(&config))
	cs.CreateGate("s_ch", config.sCh, chGate(&config))
	cs.CreateGate("s_ch_neg", config.sChNeg, chNegGate(&config))
	cs.CreateGate("s_maj", config.sMaj, majGate(&config))
	cs.CreateGate("s_h_prime", config.sHPrime, hPrimeGate(&config))
	cs.CreateGate("s_a_new", config.sANew, aNewGate(&config))
	cs.CreateGate("s_e_new", config.sENew, eNewGate(&config))
	cs.CreateGate("s_feed_forward", config.sFeedForward, feedForwardGate(&config))
	cs.CreateGate("s_digest", config.sDigest, digestGate(&config))
	//
	return config
}
