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
	"github.com/consensys/sha512-circuit/pkg/sha512"
)

// subregion1Word is a schedule word decomposed into (1, 6, 1, 56)-bit
// chunks, with the 56-bit chunk held as four looked-up 14-bit pieces.
type subregion1Word struct {
	index int
	a     *AssignedBits
	b     *AssignedBits
	c     *AssignedBits
	dLoLo *SpreadVar
	dLoHi *SpreadVar
	dHiLo *SpreadVar
	dHiHi *SpreadVar
}

// xorLowerSigma0 computes the spread witness of σ0 = ROTR^1 ⊕ ROTR^8 ⊕
// SHR^7: the sum of the three rotation-shifted spread forms, as 128 bits.
func (p *subregion1Word) xorLowerSigma0() []bool {
	var (
		spreadA = U128FromU64(p.a.Value())
		spreadB = lebs2ip128(spreadBits(p.b.Bits()))
		spreadC = U128FromU64(p.c.Value())
		dLoLo   = p.dLoLo.Spread.Value128()
		dLoHi   = p.dLoHi.Spread.Value128()
		dHiLo   = p.dHiLo.Spread.Value128()
		dHiHi   = p.dHiHi.Spread.Value128()
	)
	// SHR^7: c d, top zeroed.
	xor0 := spreadC.
		Add(dLoLo.Shl(2)).
		Add(dLoHi.Shl(30)).
		Add(dHiLo.Shl(58)).
		Add(dHiHi.Shl(86))
	// ROTR^1: b c d a.
	xor1 := spreadB.
		Add(spreadC.Shl(12)).
		Add(dLoLo.Shl(14)).
		Add(dLoHi.Shl(42)).
		Add(dHiLo.Shl(70)).
		Add(dHiHi.Shl(98)).
		Add(spreadA.Shl(126))
	// ROTR^8: d a b c.
	xor2 := dLoLo.
		Add(dLoHi.Shl(28)).
		Add(dHiLo.Shl(56)).
		Add(dHiHi.Shl(84)).
		Add(spreadA.Shl(112)).
		Add(spreadB.Shl(114)).
		Add(spreadC.Shl(126))
	//
	return i2lebsp128(xor0.Add(xor1).Add(xor2), 128)
}

// assignSubregion1 decomposes W_[1..14) and applies σ0 to each, returning
// the thirteen σ0 outputs as half-pairs.
func (p *Table16Chip) assignSubregion1(state *scheduleState, input []sha512.BlockWord) ([]RoundWordDense, error) {
	var outputs []RoundWordDense
	//
	for idx, word := range input {
		decomposed, err := p.decomposeSubregion1Word(state.base, i2lebsp(uint64(word), 64), idx+1)
		if err != nil {
			return nil, err
		}
		//
		output, err := p.lowerSigma0(state.base, decomposed)
		if err != nil {
			return nil, err
		}
		//
		outputs = append(outputs, output)
	}
	//
	return outputs, nil
}

// decomposeSubregion1Word assigns the (1, 6, 1, 56)-bit pieces of a word at
// its decompose band.
func (p *Table16Chip) decomposeSubregion1Word(base int, word []bool, index int) (*subregion1Word, error) {
	var (
		config = &p.config.messageSchedule
		a3, a4 = config.extras[0], config.extras[1]
		row    = base + getWordRow(index)
		err    error
		res    = subregion1Word{index: index}
	)
	// Assign `a` (1-bit piece).
	if res.a, err = assignBits(p.tr, a3, row+1, word[0:1]); err != nil {
		return nil, err
	}
	// Assign `b` (6-bit piece).
	if res.b, err = assignBits(p.tr, a4, row+1, word[1:7]); err != nil {
		return nil, err
	}
	// Assign `c` (1-bit piece).
	if res.c, err = assignBits(p.tr, a3, row+2, word[7:8]); err != nil {
		return nil, err
	}
	// Look up the four 14-bit pieces of `d`.
	lookups := [4]struct {
		bits []bool
		row  int
		dest **SpreadVar
	}{
		{word[8:22], row, &res.dLoLo},
		{word[22:36], row + 1, &res.dLoHi},
		{word[36:50], row + 2, &res.dHiLo},
		{word[50:64], row + 3, &res.dHiHi},
	}
	//
	for _, lookup := range lookups {
		if *lookup.dest, err = SpreadVarWithLookup(p.tr, &p.config.lookup.Input, lookup.row,
			NewSpreadWord(lookup.bits)); err != nil {
			return nil, err
		}
	}
	//
	return &res, nil
}

// lowerSigma0 assigns the σ0 band of a subregion-1 word and returns the
// dense even halves of the spread sum, i.e. the σ0 output.
func (p *Table16Chip) lowerSigma0(base int, word *subregion1Word) (RoundWordDense, error) {
	var (
		config = &p.config.messageSchedule
		a3, a4 = config.extras[0], config.extras[1]
		a5     = config.messageSchedule
		a6     = config.extras[2]
		row    = base + getWordRow(word.index) + 6
	)
	// Assign `a` (copied; 1-bit spread equals dense).
	if _, err := copyBits(p.tr, word.a, a6, row+1); err != nil {
		return RoundWordDense{}, err
	}
	// Split `b` into `b_lo`, `b_hi` with their spread forms.
	bLo := word.b.Bits()[0:3]
	bHi := word.b.Bits()[3:6]
	//
	if _, err := SpreadVarWithoutLookup(p.tr, a3, row-1, a4, row-1, NewSpreadWord(bLo)); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := SpreadVarWithoutLookup(p.tr, a5, row-1, a6, row-1, NewSpreadWord(bHi)); err != nil {
		return RoundWordDense{}, err
	}
	// Assign `b` (copied).
	if _, err := copyBits(p.tr, word.b, a6, row); err != nil {
		return RoundWordDense{}, err
	}
	// Assign `c` (copied; 1-bit spread equals dense).
	if _, err := copyBits(p.tr, word.c, a4, row); err != nil {
		return RoundWordDense{}, err
	}
	// Copy the four spread `d` pieces.
	if _, err := copyBits(p.tr, word.dLoLo.Spread, a5, row); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, word.dLoHi.Spread, a5, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, word.dHiLo.Spread, a4, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, word.dHiHi.Spread, a3, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	return p.assignSigmaOutputs(row, word.xorLowerSigma0())
}

// assignSigmaOutputs splits a 128-bit spread witness into even/odd 32-bit
// halves, assigns the standard spread-output band, and returns the dense
// even halves as the σ output.
func (p *Table16Chip) assignSigmaOutputs(row int, r []bool) (RoundWordDense, error) {
	outputs, err := p.assignSpreadBand(row, r)
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	lo, hi := outputs.even()
	//
	return RoundWordDense{lo, hi}, nil
}

// assignSpreadBand carves a 128-bit spread sum into its four 32-bit
// even/odd halves and assigns the standard spread-output band at the given
// gate row.
func (p *Table16Chip) assignSpreadBand(row int, r []bool) (*spreadOutputs, error) {
	var (
		r0 = r[:64]
		r1 = r[64:]
	)
	//
	return p.assignSpreadOutputs(p.config.messageSchedule.extras[0], row,
		evenBits(r0), oddBits(r0), evenBits(r1), oddBits(r1))
}
