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
	"github.com/consensys/sha512-circuit/pkg/field"
)

// Row budgets of the compression layout.  A round band packs, in order, the
// E decomposition, Σ1, the two choice halves, the A decomposition, Σ0 and
// Maj; the H' and E_new additions share rows with the choice band, and the
// A_new addition with the Maj band.
const (
	decomposeABCDRows = 4
	decomposeEFGHRows = 5
	sigmaRows         = 9
	chRows            = 18
	majRows           = 9

	subregionMainWord = decomposeEFGHRows + sigmaRows + chRows +
		decomposeABCDRows + sigmaRows + majRows
	subregionMainRows = Rounds * subregionMainWord

	// The initial band decomposes E, F, G, A, B, C and holds the dense
	// halves of H and D.
	initialRows = 3*decomposeEFGHRows + 3*decomposeABCDRows + 2 + 5

	// Two rows per state word for the Davies-Meyer addition.
	feedForwardRows = 2 * stateWords

	digestRows = 8
)

// Offsets of the initial-round bands.
const (
	initDecomposeE = 0
	initDecomposeF = initDecomposeE + decomposeEFGHRows
	initDecomposeG = initDecomposeF + decomposeEFGHRows
	initH          = initDecomposeG + decomposeEFGHRows
	initDecomposeA = initH + 5
	initDecomposeB = initDecomposeA + decomposeABCDRows
	initDecomposeC = initDecomposeB + decomposeABCDRows
	initD          = initDecomposeC + decomposeABCDRows
)

// Offsets within a round band.
const (
	decomposeERow  = 0
	upperSigma1Row = decomposeEFGHRows + 1
	chRow          = decomposeEFGHRows + sigmaRows + 1
	chNegRow       = chRow + chRows/2
	hPrimeRow      = chRow
	eNewRow        = chRow + 2
	decomposeARow  = chNegRow - 1 + chRows/2
	upperSigma0Row = decomposeARow + decomposeABCDRows + 1
	majRow         = upperSigma0Row + sigmaRows
	aNewRow        = majRow
)

// roundRow returns the first row of the given round's band, relative to the
// compression base.
func roundRow(idx int) int {
	return idx * subregionMainWord
}

// assignWordHalves assigns the dense and spread 32-bit halves of a word.
// Dense halves land in a_7 at (row, row+1), spread halves in a_8.  When src
// is non-nil the dense halves are wired to it by equality constraints.
func (p *Table16Chip) assignWordHalves(row int, bits []bool, src *RoundWordDense) (RoundWordDense, RoundWordSpread, error) {
	var (
		a7    = p.config.compression.extras[3]
		a8    = p.config.compression.extras[4]
		dense RoundWordDense
		err   error
	)
	//
	if src != nil {
		if dense.Lo, err = copyBits(p.tr, src.Lo, a7, row); err != nil {
			return dense, RoundWordSpread{}, err
		}
		//
		dense.Hi, err = copyBits(p.tr, src.Hi, a7, row+1)
	} else {
		if dense.Lo, err = assignBits(p.tr, a7, row, bits[:32]); err != nil {
			return dense, RoundWordSpread{}, err
		}
		//
		dense.Hi, err = assignBits(p.tr, a7, row+1, bits[32:])
	}
	//
	if err != nil {
		return dense, RoundWordSpread{}, err
	}
	//
	spreadLo, err := assignBits(p.tr, a8, row, spreadBits(bits[:32]))
	if err != nil {
		return dense, RoundWordSpread{}, err
	}
	//
	spreadHi, err := assignBits(p.tr, a8, row+1, spreadBits(bits[32:]))
	if err != nil {
		return dense, RoundWordSpread{}, err
	}
	//
	return dense, RoundWordSpread{spreadLo, spreadHi}, nil
}

// assignWordHalvesDense assigns only the dense halves of a word, at
// (row, row+1) of a_7, optionally wired to a source word.
func (p *Table16Chip) assignWordHalvesDense(row int, bits []bool, src *RoundWordDense) (RoundWordDense, error) {
	var (
		a7    = p.config.compression.extras[3]
		dense RoundWordDense
		err   error
	)
	//
	if src != nil {
		if dense.Lo, err = copyBits(p.tr, src.Lo, a7, row); err != nil {
			return dense, err
		}
		//
		dense.Hi, err = copyBits(p.tr, src.Hi, a7, row+1)
	} else {
		if dense.Lo, err = assignBits(p.tr, a7, row, bits[:32]); err != nil {
			return dense, err
		}
		//
		dense.Hi, err = assignBits(p.tr, a7, row+1, bits[32:])
	}
	//
	return dense, err
}

// decomposeABCD assigns the (28, 6, 5, 25)-bit pieces of an A-role word at
// the given band, enabling the decomposition gate.
func (p *Table16Chip) decomposeABCD(row int, bits []bool) (*AbcdVar, error) {
	var (
		a3, a4 = p.config.compression.extras[0], p.config.compression.extras[1]
		res    AbcdVar
		err    error
	)
	//
	p.tr.EnableSelector(p.config.compression.sDecomposeABCD, row)
	// Looked-up pieces: a as (14, 14), d as (14, 11).
	lookups := [4]struct {
		bits []bool
		row  int
		dest **SpreadVar
	}{
		{bits[0:14], row, &res.aLo},
		{bits[14:28], row + 1, &res.aHi},
		{bits[39:53], row + 2, &res.dLo},
		{bits[53:64], row + 3, &res.dHi},
	}
	//
	for _, lookup := range lookups {
		if *lookup.dest, err = SpreadVarWithLookup(p.tr, &p.config.lookup.Input, lookup.row,
			NewSpreadWord(lookup.bits)); err != nil {
			return nil, err
		}
	}
	// Short pieces: b as (3, 3), c as (2, 3).
	shorts := [4]struct {
		bits []bool
		row  int
		dest **SpreadVar
	}{
		{bits[28:31], row, &res.bLo},
		{bits[31:34], row + 1, &res.bHi},
		{bits[34:36], row + 2, &res.cLo},
		{bits[36:39], row + 3, &res.cHi},
	}
	//
	for _, short := range shorts {
		if *short.dest, err = SpreadVarWithoutLookup(p.tr, a3, short.row, a4, short.row,
			NewSpreadWord(short.bits)); err != nil {
			return nil, err
		}
	}
	//
	return &res, nil
}

// decomposeEFGH assigns the (14, 4, 23, 23)-bit pieces of an E-role word at
// the given band, enabling the decomposition gate.
func (p *Table16Chip) decomposeEFGH(row int, bits []bool) (*EfghVar, error) {
	var (
		a3, a4 = p.config.compression.extras[0], p.config.compression.extras[1]
		res    EfghVar
		err    error
	)
	//
	p.tr.EnableSelector(p.config.compression.sDecomposeEFGH, row)
	// Looked-up pieces: a as 14, c and d as (13, 10) each.
	lookups := [5]struct {
		bits []bool
		row  int
		dest **SpreadVar
	}{
		{bits[0:14], row, &res.a},
		{bits[18:31], row + 1, &res.cLo},
		{bits[31:41], row + 2, &res.cHi},
		{bits[41:54], row + 3, &res.dLo},
		{bits[54:64], row + 4, &res.dHi},
	}
	//
	for _, lookup := range lookups {
		if *lookup.dest, err = SpreadVarWithLookup(p.tr, &p.config.lookup.Input, lookup.row,
			NewSpreadWord(lookup.bits)); err != nil {
			return nil, err
		}
	}
	// Short pieces: b as (2, 2).
	shorts := [2]struct {
		bits []bool
		row  int
		dest **SpreadVar
	}{
		{bits[14:16], row, &res.bLo},
		{bits[16:18], row + 1, &res.bHi},
	}
	//
	for _, short := range shorts {
		if *short.dest, err = SpreadVarWithoutLookup(p.tr, a3, short.row, a4, short.row,
			NewSpreadWord(short.bits)); err != nil {
			return nil, err
		}
	}
	//
	return &res, nil
}

// decomposeA assigns an A-role word: halves plus chunk pieces.
func (p *Table16Chip) decomposeA(row int, value uint64, src *RoundWordDense) (RoundWordA, error) {
	bits := i2lebsp(value, 64)
	//
	dense, spread, err := p.assignWordHalves(row, bits, src)
	if err != nil {
		return RoundWordA{}, err
	}
	//
	pieces, err := p.decomposeABCD(row, bits)
	if err != nil {
		return RoundWordA{}, err
	}
	//
	return RoundWordA{pieces, dense, &spread}, nil
}

// decomposeE assigns an E-role word: halves plus chunk pieces.
func (p *Table16Chip) decomposeE(row int, value uint64, src *RoundWordDense) (RoundWordE, error) {
	bits := i2lebsp(value, 64)
	//
	dense, spread, err := p.assignWordHalves(row, bits, src)
	if err != nil {
		return RoundWordE{}, err
	}
	//
	pieces, err := p.decomposeEFGH(row, bits)
	if err != nil {
		return RoundWordE{}, err
	}
	//
	return RoundWordE{pieces, dense, &spread}, nil
}

// decomposeRoundWord assigns a B/C/F/G-role word: halves plus the chunk
// decomposition which constrains its spread halves.
func (p *Table16Chip) decomposeRoundWord(row int, value uint64, src *RoundWordDense, abcd bool) (RoundWord, error) {
	bits := i2lebsp(value, 64)
	//
	dense, spread, err := p.assignWordHalves(row, bits, src)
	if err != nil {
		return RoundWord{}, err
	}
	//
	if abcd {
		_, err = p.decomposeABCD(row, bits)
	} else {
		_, err = p.decomposeEFGH(row, bits)
	}
	//
	if err != nil {
		return RoundWord{}, err
	}
	//
	return RoundWord{dense, spread}, nil
}

// assignUpperSigma0 assigns the Σ0 band of a round: the spread pieces of A
// are wired in and the spread sum's even halves come back as the output.
func (p *Table16Chip) assignUpperSigma0(row int, word *AbcdVar) (RoundWordDense, error) {
	var (
		config = &p.config.compression
		a3, a4 = config.extras[0], config.extras[1]
		a5     = config.messageSchedule
	)
	//
	p.tr.EnableSelector(config.sUpperSigma0, row)
	//
	copies := []struct {
		src *AssignedBits
		col int
		row int
	}{
		{word.aLo.Spread, 0, row + 1},
		{word.aHi.Spread, 1, row - 1},
		{word.bLo.Spread, 1, row},
		{word.bHi.Spread, 1, row + 1},
		{word.cLo.Spread, 2, row - 1},
		{word.cHi.Spread, 2, row},
		{word.dLo.Spread, 2, row + 1},
		{word.dHi.Spread, 0, row - 1},
	}
	//
	for _, c := range copies {
		column := a3
		//
		switch c.col {
		case 1:
			column = a4
		case 2:
			column = a5
		}
		//
		if _, err := copyBits(p.tr, c.src, column, c.row); err != nil {
			return RoundWordDense{}, err
		}
	}
	//
	return p.assignSigmaOutputs(row, word.xorUpperSigma())
}

// assignUpperSigma1 assigns the Σ1 band of a round.
func (p *Table16Chip) assignUpperSigma1(row int, word *EfghVar) (RoundWordDense, error) {
	var (
		config = &p.config.compression
		a3, a4 = config.extras[0], config.extras[1]
		a5     = config.messageSchedule
	)
	//
	p.tr.EnableSelector(config.sUpperSigma1, row)
	//
	copies := []struct {
		src *AssignedBits
		col int
		row int
	}{
		{word.a.Spread, 0, row + 1},
		{word.bLo.Spread, 1, row - 1},
		{word.bHi.Spread, 1, row},
		{word.cLo.Spread, 1, row + 1},
		{word.cHi.Spread, 2, row - 1},
		{word.dLo.Spread, 2, row},
		{word.dHi.Spread, 2, row + 1},
	}
	//
	for _, c := range copies {
		column := a3
		//
		switch c.col {
		case 1:
			column = a4
		case 2:
			column = a5
		}
		//
		if _, err := copyBits(p.tr, c.src, column, c.row); err != nil {
			return RoundWordDense{}, err
		}
	}
	//
	return p.assignSigmaOutputs(row, word.xorUpperSigma())
}

// assignCh assigns the E ∧ F half of the choice band: the odd bits of
// spread(E) + spread(F).
func (p *Table16Chip) assignCh(row int, spreadE, spreadF RoundWordSpread) (RoundWordDense, error) {
	var (
		config = &p.config.compression
		a3, a4 = config.extras[0], config.extras[1]
	)
	//
	p.tr.EnableSelector(config.sCh, row)
	//
	if _, err := copyBits(p.tr, spreadE.Lo, a3, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, spreadE.Hi, a4, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, spreadF.Lo, a3, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, spreadF.Hi, a4, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	sum := spreadE.Value().Add(spreadF.Value())
	//
	outputs, err := p.assignSpreadBand(row, i2lebsp128(sum, 128))
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	lo, hi := outputs.odd()
	//
	return RoundWordDense{lo, hi}, nil
}

// assignChNeg assigns the ¬E ∧ G half of the choice band: spread(¬E) is
// witnessed as the even-bit complement of spread(E), and the odd bits of
// spread(¬E) + spread(G) come back as the output.
func (p *Table16Chip) assignChNeg(row int, spreadE, spreadG RoundWordSpread) (RoundWordDense, error) {
	var (
		config = &p.config.compression
		a3, a4 = config.extras[0], config.extras[1]
		a5     = config.messageSchedule
	)
	//
	p.tr.EnableSelector(config.sChNeg, row)
	//
	if _, err := copyBits(p.tr, spreadE.Lo, a5, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, spreadE.Hi, a5, row); err != nil {
		return RoundWordDense{}, err
	}
	//
	negLo := negateSpread(spreadE.Lo.Bits())
	negHi := negateSpread(spreadE.Hi.Bits())
	//
	if _, err := assignBits(p.tr, a3, row-1, negLo); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := assignBits(p.tr, a4, row-1, negHi); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, spreadG.Lo, a3, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, spreadG.Hi, a4, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	negE := lebs2ip128(negLo).Add(lebs2ip128(negHi).Shl(64))
	sum := negE.Add(spreadG.Value())
	//
	outputs, err := p.assignSpreadBand(row, i2lebsp128(sum, 128))
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	lo, hi := outputs.odd()
	//
	return RoundWordDense{lo, hi}, nil
}

// assignMaj assigns the majority band: the odd bits of spread(A) +
// spread(B) + spread(C).
func (p *Table16Chip) assignMaj(row int, spreadA, spreadB, spreadC RoundWordSpread) (RoundWordDense, error) {
	var (
		config = &p.config.compression
		a4     = config.extras[1]
		a5     = config.messageSchedule
	)
	//
	p.tr.EnableSelector(config.sMaj, row)
	//
	copies := []struct {
		src *AssignedBits
		hi  bool
		row int
	}{
		{spreadA.Lo, false, row - 1},
		{spreadA.Hi, true, row - 1},
		{spreadB.Lo, false, row},
		{spreadB.Hi, true, row},
		{spreadC.Lo, false, row + 1},
		{spreadC.Hi, true, row + 1},
	}
	//
	for _, c := range copies {
		column := a4
		//
		if c.hi {
			column = a5
		}
		//
		if _, err := copyBits(p.tr, c.src, column, c.row); err != nil {
			return RoundWordDense{}, err
		}
	}
	//
	sum := spreadA.Value().Add(spreadB.Value()).Add(spreadC.Value())
	//
	outputs, err := p.assignSpreadBand(row, i2lebsp128(sum, 128))
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	lo, hi := outputs.odd()
	//
	return RoundWordDense{lo, hi}, nil
}

// assignHPrime assigns H' = H + Σ1(E) + Ch(E,F,G) + K + W at the choice
// row.  The ch halves are already in place as the choice band's odd joins;
// everything else is wired in by copies.
func (p *Table16Chip) assignHPrime(row int, h RoundWordDense, ch, chNeg, sigma1 RoundWordDense,
	k uint64, w RoundWordDense) (RoundWordDense, error) {
	var (
		config = &p.config.compression
		a5     = config.messageSchedule
		a4     = config.extras[1]
		a6, a7 = config.extras[2], config.extras[3]
		a8, a9 = config.extras[4], config.extras[5]
	)
	//
	p.tr.EnableSelector(config.sHPrime, row)
	// Wire in H.
	if _, err := copyBits(p.tr, h.Lo, a7, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, h.Hi, a7, row); err != nil {
		return RoundWordDense{}, err
	}
	// Wire in Σ1(E).
	if _, err := copyBits(p.tr, sigma1.Lo, a4, row); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, sigma1.Hi, a5, row); err != nil {
		return RoundWordDense{}, err
	}
	// Witness K.
	kBits := i2lebsp(k, 64)
	//
	if _, err := assignBits(p.tr, a6, row-1, kBits[:32]); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := assignBits(p.tr, a6, row, kBits[32:]); err != nil {
		return RoundWordDense{}, err
	}
	// Wire in W.
	if _, err := copyBits(p.tr, w.Lo, a8, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, w.Hi, a8, row); err != nil {
		return RoundWordDense{}, err
	}
	// Wire in ¬E ∧ G.
	if _, err := copyBits(p.tr, chNeg.Lo, a5, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, chNeg.Hi, a5, row+1); err != nil {
		return RoundWordDense{}, err
	}
	// Sum and carry.
	sum, carry := sumWithCarry([][2]uint32{
		h.HalfValues(),
		ch.HalfValues(),
		chNeg.HalfValues(),
		sigma1.HalfValues(),
		{uint32(k), uint32(k >> 32)},
		w.HalfValues(),
	})
	//
	if _, err := p.tr.AssignAdvice(a9, row+1, field.Uint64(carry)); err != nil {
		return RoundWordDense{}, err
	}
	//
	sumBits := i2lebsp(sum, 64)
	//
	lo, err := assignBits(p.tr, a7, row+1, sumBits[:32])
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	hi, err := assignBits(p.tr, a8, row+1, sumBits[32:])
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	return RoundWordDense{lo, hi}, nil
}

// assignENew assigns E_new = H' + D.  The H' halves are read in place one
// row above.
func (p *Table16Chip) assignENew(row int, d, hPrime RoundWordDense) (RoundWordDense, error) {
	var (
		config = &p.config.compression
		a7     = config.extras[3]
		a8, a9 = config.extras[4], config.extras[5]
	)
	//
	p.tr.EnableSelector(config.sENew, row)
	//
	if _, err := copyBits(p.tr, d.Lo, a7, row); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, d.Hi, a7, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	sum, carry := sumWithCarry([][2]uint32{hPrime.HalfValues(), d.HalfValues()})
	sumBits := i2lebsp(sum, 64)
	//
	lo, err := assignBits(p.tr, a8, row, sumBits[:32])
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	hi, err := assignBits(p.tr, a8, row+1, sumBits[32:])
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := p.tr.AssignAdvice(a9, row+1, field.Uint64(carry)); err != nil {
		return RoundWordDense{}, err
	}
	//
	return RoundWordDense{lo, hi}, nil
}

// assignANew assigns A_new = H' + Σ0(A) + Maj(A, B, C) at the majority row.
func (p *Table16Chip) assignANew(row int, maj, sigma0, hPrime RoundWordDense) (RoundWordDense, error) {
	var (
		config = &p.config.compression
		a3     = config.extras[0]
		a6, a7 = config.extras[2], config.extras[3]
		a8, a9 = config.extras[4], config.extras[5]
	)
	//
	p.tr.EnableSelector(config.sANew, row)
	//
	if _, err := copyBits(p.tr, maj.Lo, a7, row); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, maj.Hi, a3, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, sigma0.Lo, a6, row); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, sigma0.Hi, a6, row+1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, hPrime.Lo, a7, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := copyBits(p.tr, hPrime.Hi, a8, row-1); err != nil {
		return RoundWordDense{}, err
	}
	//
	sum, carry := sumWithCarry([][2]uint32{
		hPrime.HalfValues(),
		sigma0.HalfValues(),
		maj.HalfValues(),
	})
	sumBits := i2lebsp(sum, 64)
	//
	lo, err := assignBits(p.tr, a8, row, sumBits[:32])
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	hi, err := assignBits(p.tr, a8, row+1, sumBits[32:])
	if err != nil {
		return RoundWordDense{}, err
	}
	//
	if _, err := p.tr.AssignAdvice(a9, row, field.Uint64(carry)); err != nil {
		return RoundWordDense{}, err
	}
	//
	return RoundWordDense{lo, hi}, nil
}
