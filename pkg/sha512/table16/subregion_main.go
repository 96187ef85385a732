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
	log "github.com/sirupsen/logrus"
)

// initializeWithIV lays out the fixed SHA-512 IV as an initialized state in
// a fresh initial band.
func (p *Table16Chip) initializeWithIV() (*State, error) {
	return p.initialize(IV, nil)
}

// initializeWithState lays out a prior block's output state as an
// initialized state, copy-constraining its dense halves into the new band.
func (p *Table16Chip) initializeWithState(state *State) (*State, error) {
	var (
		dense  = matchDenseState(state)
		values [stateWords]uint64
	)
	//
	for i := range dense {
		values[i] = dense[i].Value()
	}
	//
	return p.initialize(values, &dense)
}

// initialize assigns the initial-round band: E, F, G, A, B, C are fully
// decomposed (their spread halves are needed by round 0), while D and H
// carry only dense halves.
func (p *Table16Chip) initialize(values [stateWords]uint64, src *[stateWords]RoundWordDense) (*State, error) {
	base := p.reserve(initialRows)
	//
	log.Debugf("initializing compression state at rows [%d, %d)", base, base+initialRows)
	//
	srcWord := func(i int) *RoundWordDense {
		if src == nil {
			return nil
		}
		//
		return &src[i]
	}
	//
	e, err := p.decomposeE(base+initDecomposeE, values[4], srcWord(4))
	if err != nil {
		return nil, err
	}
	//
	f, err := p.decomposeRoundWord(base+initDecomposeF, values[5], srcWord(5), false)
	if err != nil {
		return nil, err
	}
	//
	g, err := p.decomposeRoundWord(base+initDecomposeG, values[6], srcWord(6), false)
	if err != nil {
		return nil, err
	}
	//
	h, err := p.assignWordHalvesDense(base+initH, i2lebsp(values[7], 64), srcWord(7))
	if err != nil {
		return nil, err
	}
	//
	a, err := p.decomposeA(base+initDecomposeA, values[0], srcWord(0))
	if err != nil {
		return nil, err
	}
	//
	b, err := p.decomposeRoundWord(base+initDecomposeB, values[1], srcWord(1), true)
	if err != nil {
		return nil, err
	}
	//
	c, err := p.decomposeRoundWord(base+initDecomposeC, values[2], srcWord(2), true)
	if err != nil {
		return nil, err
	}
	//
	d, err := p.assignWordHalvesDense(base+initD, i2lebsp(values[3], 64), srcWord(3))
	if err != nil {
		return nil, err
	}
	//
	return &State{a: a, b: b, c: c, d: d, e: e, f: f, g: g, h: h}, nil
}

// compress runs the eighty rounds over an initialized state, then applies
// the Davies-Meyer feed-forward against the initial state.  The result is a
// dense 8-word state.
func (p *Table16Chip) compress(state *State, wHalves [Rounds]RoundWordDense) (*State, error) {
	var (
		a, b, c, d, e, f, g, h = matchState(state)
		//
		initial = [stateWords]RoundWordDense{
			a.dense, b.dense, c.dense, d, e.dense, f.dense, g.dense, h,
		}
		//
		base = p.reserve(subregionMainRows + feedForwardRows)
	)
	//
	log.Debugf("assigning compression rounds at rows [%d, %d)", base, base+subregionMainRows)
	//
	current := state
	//
	for idx := 0; idx < Rounds; idx++ {
		next, err := p.assignRound(base, idx, current, wHalves[idx])
		if err != nil {
			return nil, err
		}
		//
		current = next
	}
	//
	return p.feedForward(base+subregionMainRows, initial, matchDenseState(current))
}

// assignRound assigns one compression round.  For all but the final round
// the fresh A and E words are re-decomposed into the next round's band.
func (p *Table16Chip) assignRound(base int, idx int, state *State, w RoundWordDense) (*State, error) {
	var (
		a, b, c, d, e, f, g, h = matchState(state)
		//
		row = base + roundRow(idx)
	)
	// Σ1(E)
	sigma1, err := p.assignUpperSigma1(row+upperSigma1Row, e.pieces)
	if err != nil {
		return nil, err
	}
	// Ch(E, F, G), in two halves.
	ch, err := p.assignCh(row+chRow, *e.spread, f.spread)
	if err != nil {
		return nil, err
	}
	//
	chNeg, err := p.assignChNeg(row+chNegRow, *e.spread, g.spread)
	if err != nil {
		return nil, err
	}
	// Σ0(A)
	sigma0, err := p.assignUpperSigma0(row+upperSigma0Row, a.pieces)
	if err != nil {
		return nil, err
	}
	// Maj(A, B, C)
	maj, err := p.assignMaj(row+majRow, *a.spread, b.spread, c.spread)
	if err != nil {
		return nil, err
	}
	// H' = H + Σ1(E) + Ch(E, F, G) + K + W
	hPrime, err := p.assignHPrime(row+hPrimeRow, h, ch, chNeg, sigma1, RoundConstants[idx], w)
	if err != nil {
		return nil, err
	}
	// E_new = H' + D
	eNew, err := p.assignENew(row+eNewRow, d, hPrime)
	if err != nil {
		return nil, err
	}
	// A_new = H' + Σ0(A) + Maj(A, B, C)
	aNew, err := p.assignANew(row+aNewRow, maj, sigma0, hPrime)
	if err != nil {
		return nil, err
	}
	// Rotate the register roles.
	if idx < Rounds-1 {
		nextRow := base + roundRow(idx+1)
		//
		aNext, err := p.decomposeA(nextRow+decomposeARow, aNew.Value(), &aNew)
		if err != nil {
			return nil, err
		}
		//
		eNext, err := p.decomposeE(nextRow+decomposeERow, eNew.Value(), &eNew)
		if err != nil {
			return nil, err
		}
		//
		return &State{
			a: aNext,
			b: RoundWord{a.dense, *a.spread},
			c: b,
			d: c.dense,
			e: eNext,
			f: RoundWord{e.dense, *e.spread},
			g: f,
			h: g.dense,
		}, nil
	}
	// Final round: every word collapses to its dense halves for the
	// feed-forward.
	return &State{
		a: aNew,
		b: a.dense,
		c: b.dense,
		d: c.dense,
		e: eNew,
		f: e.dense,
		g: f.dense,
		h: g.dense,
	}, nil
}
