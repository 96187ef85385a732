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

// subregion2Word is a schedule word decomposed into the unified
// (1, 5, 1, 1, 11, 42, 3)-bit chunking which supports both σ0 and σ1, with
// the 11-bit chunk and the (11, 10, 11, 10)-bit pieces of the 42-bit chunk
// looked up.
type subregion2Word struct {
	index int
	a     *AssignedBits
	b     *SpreadVar
	c     *AssignedBits
	d     *AssignedBits
	e     *SpreadVar
	fLoLo *SpreadVar
	fLoHi *SpreadVar
	fHiLo *SpreadVar
	fHiHi *SpreadVar
	g     *AssignedBits
}

func (p *subregion2Word) spreadPieces() (a, b, c, d, e, fLoLo, fLoHi, fHiLo, fHiHi, g Uint128) {
	a = U128FromU64(p.a.Value())
	b = p.b.Spread.Value128()
	c = U128FromU64(p.c.Value())
	d = U128FromU64(p.d.Value())
	e = p.e.Spread.Value128()
	fLoLo = p.fLoLo.Spread.Value128()
	fLoHi = p.fLoHi.Spread.Value128()
	fHiLo = p.fHiLo.Spread.Value128()
	fHiHi = p.fHiHi.Spread.Value128()
	g = lebs2ip128(spreadBits(p.g.Bits()))
	//
	return
}

// xorSigma0 computes the spread witness of σ0 = ROTR^1 ⊕ ROTR^8 ⊕ SHR^7
// over the unified chunking.
func (p *subregion2Word) xorSigma0() []bool {
	a, b, c, d, e, fLoLo, fLoHi, fHiLo, fHiHi, g := p.spreadPieces()
	// SHR^7: d e f g, top zeroed.
	xor0 := d.
		Add(e.Shl(2)).
		Add(fLoLo.Shl(24)).
		Add(fLoHi.Shl(46)).
		Add(fHiLo.Shl(66)).
		Add(fHiHi.Shl(88)).
		Add(g.Shl(108))
	// ROTR^1: b c d e f g a.
	xor1 := b.
		Add(c.Shl(10)).
		Add(d.Shl(12)).
		Add(e.Shl(14)).
		Add(fLoLo.Shl(36)).
		Add(fLoHi.Shl(58)).
		Add(fHiLo.Shl(78)).
		Add(fHiHi.Shl(100)).
		Add(g.Shl(120)).
		Add(a.Shl(126))
	// ROTR^8: e f g a b c d.
	xor2 := e.
		Add(fLoLo.Shl(22)).
		Add(fLoHi.Shl(44)).
		Add(fHiLo.Shl(64)).
		Add(fHiHi.Shl(86)).
		Add(g.Shl(106)).
		Add(a.Shl(112)).
		Add(b.Shl(114)).
		Add(c.Shl(124)).
		Add(d.Shl(126))
	//
	return i2lebsp128(xor0.Add(xor1).Add(xor2), 128)
}

// xorSigma1 computes the spread witness of σ1 = ROTR^19 ⊕ ROTR^61 ⊕ SHR^6
// over the unified chunking.
func (p *subregion2Word) xorSigma1() []bool {
	a, b, c, d, e, fLoLo, fLoHi, fHiLo, fHiHi, g := p.spreadPieces()
	// SHR^6: c d e f g, top zeroed.
	xor0 := c.
		Add(d.Shl(2)).
		Add(e.Shl(4)).
		Add(fLoLo.Shl(26)).
		Add(fLoHi.Shl(48)).
		Add(fHiLo.Shl(68)).
		Add(fHiHi.Shl(90)).
		Add(g.Shl(110))
	// ROTR^19: f g a b c d e.
	xor1 := fLoLo.
		Add(fLoHi.Shl(22)).
		Add(fHiLo.Shl(42)).
		Add(fHiHi.Shl(64)).
		Add(g.Shl(84)).
		Add(a.Shl(90)).
		Add(b.Shl(92)).
		Add(c.Shl(102)).
		Add(d.Shl(104)).
		Add(e.Shl(106))
	// ROTR^61: g a b c d e f.
	xor2 := g.
		Add(a.Shl(6)).
		Add(b.Shl(8)).
		Add(c.Shl(18)).
		Add(d.Shl(20)).
		Add(e.Shl(22)).
		Add(fLoLo.Shl(44)).
		Add(fLoHi.Shl(66)).
		Add(fHiLo.Shl(86)).
		Add(fHiHi.Shl(108))
	//
	return i2lebsp128(xor0.Add(xor1).Add(xor2), 128)
}

// assignSubregion2 decomposes W_[14..65), applies both σ0 and σ1 to each,
// and composes the new words W_[16..67).  It returns the σ0 outputs for
// W_[52..65), which subregion 3 consumes.
func (p *Table16Chip) assignSubregion2(state *scheduleState, sigma0Output []RoundWordDense) ([]RoundWordDense, error) {
	var (
		sigma0V2Results []RoundWordDense
		sigma1V2Results []RoundWordDense
	)
	// W_i = σ1(W_{i-2}) + W_{i-7} + σ0(W_{i-15}) + W_{i-16}; composing
	// W_{idx+2} consumes σ1 of the word decomposed in the same iteration.
	newWord := func(idx int, sigma0 RoundWordDense) error {
		word, err := p.decomposeSubregion2Word(state, idx)
		if err != nil {
			return err
		}
		//
		sigma0V2, err := p.lowerSigma0V2(state.base, word)
		if err != nil {
			return err
		}
		//
		sigma1V2, err := p.lowerSigma1V2(state.base, word)
		if err != nil {
			return err
		}
		//
		sigma0V2Results = append(sigma0V2Results, sigma0V2)
		sigma1V2Results = append(sigma1V2Results, sigma1V2)
		//
		return p.composeWord(state, idx+2, sigma0, sigma1V2Results[idx+2-16])
	}
	// Use up the σ0 outputs of subregion 1 first.
	for i := 14; i < 27; i++ {
		if err := newWord(i, sigma0Output[i-14]); err != nil {
			return nil, err
		}
	}
	//
	for i := 27; i < 65; i++ {
		if err := newWord(i, sigma0V2Results[i-27]); err != nil {
			return nil, err
		}
	}
	// Return the σ0_v2 outputs for W_[52..65).
	return sigma0V2Results[52-14:], nil
}

// decomposeSubregion2Word assigns the (1, 5, 1, 1, 11, 42, 3)-bit pieces of
// a word at its decompose band.
func (p *Table16Chip) decomposeSubregion2Word(state *scheduleState, index int) (*subregion2Word, error) {
	var (
		config = &p.config.messageSchedule
		a3, a4 = config.extras[0], config.extras[1]
		row    = state.base + getWordRow(index)
		word   = state.words[index].Bits()
		err    error
		res    = subregion2Word{index: index}
	)
	// Assign `a` (1-bit piece).
	if res.a, err = assignBits(p.tr, a3, row-1, word[0:1]); err != nil {
		return nil, err
	}
	// Assign `c` (1-bit piece).
	if res.c, err = assignBits(p.tr, a4, row-1, word[6:7]); err != nil {
		return nil, err
	}
	// Assign `d` (1-bit piece).
	if res.d, err = assignBits(p.tr, a4, row+1, word[7:8]); err != nil {
		return nil, err
	}
	// Assign `g` (3-bit piece).
	if res.g, err = assignBits(p.tr, a3, row+1, word[61:64]); err != nil {
		return nil, err
	}
	// Look up `e`, the four pieces of `f`, and `b`.
	lookups := [6]struct {
		bits []bool
		row  int
		dest **SpreadVar
	}{
		{word[8:19], row - 1, &res.e},
		{word[19:30], row, &res.fLoLo},
		{word[30:40], row + 1, &res.fLoHi},
		{word[40:51], row + 2, &res.fHiLo},
		{word[51:61], row + 3, &res.fHiHi},
		{word[1:6], row + 4, &res.b},
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

// assignSigmaV2Pieces lays out the shared operands of the two v2 sigma
// gates at the given gate row.
func (p *Table16Chip) assignSigmaV2Pieces(row int, word *subregion2Word) error {
	var (
		config = &p.config.messageSchedule
		a3, a4 = config.extras[0], config.extras[1]
		a5     = config.messageSchedule
		a6, a7 = config.extras[2], config.extras[3]
	)
	// Assign `a` (copied; 1-bit spread equals dense).
	if _, err := copyBits(p.tr, word.a, a4, row+1); err != nil {
		return err
	}
	// Split `b` into 3-bit `b_lo` and 2-bit `b_hi` with spread forms.
	bLo := word.b.Dense.Bits()[0:3]
	bHi := word.b.Dense.Bits()[3:5]
	//
	if _, err := SpreadVarWithoutLookup(p.tr, a3, row-1, a4, row-1, NewSpreadWord(bLo)); err != nil {
		return err
	}
	//
	if _, err := SpreadVarWithoutLookup(p.tr, a5, row-1, a6, row-1, NewSpreadWord(bHi)); err != nil {
		return err
	}
	// Assign `b` (copied).
	if _, err := copyBits(p.tr, word.b.Dense, a6, row); err != nil {
		return err
	}
	// Assign `c` (copied; 1-bit spread equals dense).
	if _, err := copyBits(p.tr, word.c, a6, row+1); err != nil {
		return err
	}
	// Assign `d` (copied; 1-bit spread equals dense).
	if _, err := copyBits(p.tr, word.d, a4, row); err != nil {
		return err
	}
	// Copy `spread_e` and the four spread `f` pieces.
	if _, err := copyBits(p.tr, word.e.Spread, a7, row); err != nil {
		return err
	}
	//
	if _, err := copyBits(p.tr, word.fLoLo.Spread, a7, row+1); err != nil {
		return err
	}
	//
	if _, err := copyBits(p.tr, word.fLoHi.Spread, a7, row+2); err != nil {
		return err
	}
	//
	if _, err := copyBits(p.tr, word.fHiLo.Spread, a4, row+2); err != nil {
		return err
	}
	//
	if _, err := copyBits(p.tr, word.fHiHi.Spread, a4, row+3); err != nil {
		return err
	}
	// Assign `g` (copied) and witness `spread_g`.
	if _, err := copyBits(p.tr, word.g, a5, row+1); err != nil {
		return err
	}
	//
	if _, err := assignBits(p.tr, a5, row, spreadBits(word.g.Bits())); err != nil {
		return err
	}
	//
	return nil
}

// lowerSigma0V2 assigns the σ0 band of a subregion-2 word.
func (p *Table16Chip) lowerSigma0V2(base int, word *subregion2Word) (RoundWordDense, error) {
	row := base + getWordRow(word.index) + 6
	//
	if err := p.assignSigmaV2Pieces(row, word); err != nil {
		return RoundWordDense{}, err
	}
	//
	return p.assignSigmaOutputs(row, word.xorSigma0())
}

// lowerSigma1V2 assigns the σ1 band of a subregion-2 word.
func (p *Table16Chip) lowerSigma1V2(base int, word *subregion2Word) (RoundWordDense, error) {
	row := base + getWordRow(word.index) + 6 + sigma0V2Rows
	//
	if err := p.assignSigmaV2Pieces(row, word); err != nil {
		return RoundWordDense{}, err
	}
	//
	return p.assignSigmaOutputs(row, word.xorSigma1())
}
