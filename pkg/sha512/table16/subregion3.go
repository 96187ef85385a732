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

// subregion3Word is a schedule word decomposed into (6, 13, 42, 3)-bit
// chunks, with the 13-bit chunk and the (11, 10, 11, 10)-bit pieces of the
// 42-bit chunk looked up.
type subregion3Word struct {
	index int
	a     *AssignedBits
	b     *SpreadVar
	cLoLo *SpreadVar
	cLoHi *SpreadVar
	cHiLo *SpreadVar
	cHiHi *SpreadVar
	d     *AssignedBits
}

// xorLowerSigma1 computes the spread witness of σ1 = ROTR^19 ⊕ ROTR^61 ⊕
// SHR^6 over the (6, 13, 42, 3)-bit chunking.
func (p *subregion3Word) xorLowerSigma1() []bool {
	var (
		a     = lebs2ip128(spreadBits(p.a.Bits()))
		b     = p.b.Spread.Value128()
		cLoLo = p.cLoLo.Spread.Value128()
		cLoHi = p.cLoHi.Spread.Value128()
		cHiLo = p.cHiLo.Spread.Value128()
		cHiHi = p.cHiHi.Spread.Value128()
		d     = lebs2ip128(spreadBits(p.d.Bits()))
	)
	// SHR^6: b c d, top zeroed.
	xor0 := b.
		Add(cLoLo.Shl(26)).
		Add(cLoHi.Shl(48)).
		Add(cHiLo.Shl(68)).
		Add(cHiHi.Shl(90)).
		Add(d.Shl(110))
	// ROTR^19: c d a b.
	xor1 := cLoLo.
		Add(cLoHi.Shl(22)).
		Add(cHiLo.Shl(42)).
		Add(cHiHi.Shl(64)).
		Add(d.Shl(84)).
		Add(a.Shl(90)).
		Add(b.Shl(102))
	// ROTR^61: d a b c.
	xor2 := d.
		Add(a.Shl(6)).
		Add(b.Shl(18)).
		Add(cLoLo.Shl(44)).
		Add(cLoHi.Shl(66)).
		Add(cHiLo.Shl(86)).
		Add(cHiHi.Shl(108))
	//
	return i2lebsp128(xor0.Add(xor1).Add(xor2), 128)
}

// assignSubregion3 decomposes W_[65..78), applies σ1 to each, and composes
// the final words W_[67..80).
func (p *Table16Chip) assignSubregion3(state *scheduleState, sigma0V2Output []RoundWordDense) error {
	// W_i = σ1(W_{i-2}) + W_{i-7} + σ0(W_{i-15}) + W_{i-16}; the σ0_v2
	// outputs cover W_[52..65), so composing W_{idx+2} uses entry idx-65.
	for idx := 65; idx < 78; idx++ {
		word, err := p.decomposeSubregion3Word(state, idx)
		if err != nil {
			return err
		}
		//
		sigma1, err := p.lowerSigma1(state.base, word)
		if err != nil {
			return err
		}
		//
		if err := p.composeWord(state, idx+2, sigma0V2Output[idx-65], sigma1); err != nil {
			return err
		}
	}
	//
	return nil
}

// decomposeSubregion3Word assigns the (6, 13, 42, 3)-bit pieces of a word
// at its decompose band.
func (p *Table16Chip) decomposeSubregion3Word(state *scheduleState, index int) (*subregion3Word, error) {
	var (
		config = &p.config.messageSchedule
		a3, a4 = config.extras[0], config.extras[1]
		row    = state.base + getWordRow(index)
		word   = state.words[index].Bits()
		err    error
		res    = subregion3Word{index: index}
	)
	// Assign `a` (6-bit piece).
	if res.a, err = assignBits(p.tr, a4, row+1, word[0:6]); err != nil {
		return nil, err
	}
	// Assign `d` (3-bit piece).
	if res.d, err = assignBits(p.tr, a3, row+1, word[61:64]); err != nil {
		return nil, err
	}
	// Look up `b` and the four pieces of `c`.
	lookups := [5]struct {
		bits []bool
		row  int
		dest **SpreadVar
	}{
		{word[6:19], row, &res.b},
		{word[19:30], row + 1, &res.cLoLo},
		{word[30:40], row + 2, &res.cLoHi},
		{word[40:51], row + 3, &res.cHiLo},
		{word[51:61], row + 4, &res.cHiHi},
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

// lowerSigma1 assigns the σ1 band of a subregion-3 word and returns the σ1
// output.
func (p *Table16Chip) lowerSigma1(base int, word *subregion3Word) (RoundWordDense, error) {
	var (
		config = &p.config.messageSchedule
		a3, a4 = config.extras[0], config.extras[1]
		a5     = config.messageSchedule
		a6     = config.extras[2]
		row    = base + getWordRow(word.index) + 6
	)
	// Split `a` into 3-bit `a_lo`, `a_hi` with spread forms.
	aLo := word.a.Bits()[0:3]
	aHi := word.a.Bits()[3:6]
	//
	if _, err := SpreadVarWithoutLookup(p.tr, a3, row-1, a4, row-1, NewSpreadWord(aLo)); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := SpreadVarWithoutLookup(p.tr, a6, row-1, a6, row+1, NewSpreadWord(aHi)); err != nil {
		return RoundWordDense{}, err
	}
	// Assign `a` (copied).
	if _, err := copyBits(p.tr, word.a, a6, row); err != nil {
		return RoundWordDense{}, err
	}
	// Copy `spread_b` and the four spread `c` pieces.
	if _, err := copyBits(p.tr, word.b.Spread, a5, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, word.cLoLo.Spread, a5, row); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, word.cLoHi.Spread, a4, row); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, word.cHiLo.Spread, a4, row+2); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, word.cHiHi.Spread, a6, row+2); err != nil {
		return RoundWordDense{}, err
	}
	// Assign `d` (copied) and witness `spread_d`.
	if _, err := copyBits(p.tr, word.d, a3, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := assignBits(p.tr, a4, row+1, spreadBits(word.d.Bits())); err != nil {
		return RoundWordDense{}, err
	}
	//
	return p.assignSigmaOutputs(row, word.xorLowerSigma1())
}
