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
	"github.com/consensys/sha512-circuit/pkg/field"
	"github.com/consensys/sha512-circuit/pkg/sha512"
)

// feedForward adds each compressed word to the corresponding initial-state
// word modulo 2^64, producing the block output state.  One gate row per
// word.
func (p *Table16Chip) feedForward(base int, initial, final [stateWords]RoundWordDense) (*State, error) {
	var (
		config = &p.config.compression
		a3, a4 = config.extras[0], config.extras[1]
		a7     = config.extras[3]
		a8, a9 = config.extras[4], config.extras[5]
		out    [stateWords]RoundWordDense
	)
	//
	for i := 0; i < stateWords; i++ {
		row := base + 2*i
		//
		p.tr.EnableSelector(config.sFeedForward, row)
		//
		if _, err := copyBits(p.tr, final[i].Lo, a7, row); err != nil {
			return nil, err
		}
		//
		if _, err := copyBits(p.tr, final[i].Hi, a7, row+1); err != nil {
			return nil, err
		}
		//
		if _, err := copyBits(p.tr, initial[i].Lo, a3, row); err != nil {
			return nil, err
		}
		//
		if _, err := copyBits(p.tr, initial[i].Hi, a4, row); err != nil {
			return nil, err
		}
		//
		sum, carry := sumWithCarry([][2]uint32{final[i].HalfValues(), initial[i].HalfValues()})
		sumBits := i2lebsp(sum, 64)
		//
		lo, err := assignBits(p.tr, a8, row, sumBits[:32])
		if err != nil {
			return nil, err
		}
		//
		hi, err := assignBits(p.tr, a8, row+1, sumBits[32:])
		if err != nil {
			return nil, err
		}
		//
		if _, err := p.tr.AssignAdvice(a9, row, field.Uint64(carry)); err != nil {
			return nil, err
		}
		//
		out[i] = RoundWordDense{lo, hi}
	}
	//
	return &State{
		a: out[0], b: out[1], c: out[2], d: out[3],
		e: out[4], f: out[5], g: out[6], h: out[7],
	}, nil
}

// assignDigest reconstructs the eight 64-bit output words from the dense
// halves of a compressed state, exposing them as the digest.
func (p *Table16Chip) assignDigest(state *State) ([sha512.DigestSize]sha512.BlockWord, error) {
	var (
		config = &p.config.compression
		dense  = matchDenseState(state)
		digest [sha512.DigestSize]sha512.BlockWord
		//
		base = p.reserve(digestRows)
	)
	// Two gate rows, four words each.
	p.tr.EnableSelector(config.sDigest, base)
	p.tr.EnableSelector(config.sDigest, base+4)
	//
	for i, word := range dense {
		var (
			row  = base + 4*(i/4) + (i%4)/2
			cols [3]circuit.Column
		)
		//
		if i%2 == 0 {
			cols = [3]circuit.Column{config.extras[0], config.extras[1], config.messageSchedule}
		} else {
			cols = [3]circuit.Column{config.extras[2], config.extras[3], config.extras[4]}
		}
		//
		if _, err := copyBits(p.tr, word.Lo, cols[0], row); err != nil {
			return digest, err
		}
		//
		if _, err := copyBits(p.tr, word.Hi, cols[1], row); err != nil {
			return digest, err
		}
		//
		value := word.Value()
		//
		if _, err := assignBits(p.tr, cols[2], row, i2lebsp(value, 64)); err != nil {
			return digest, err
		}
		//
		digest[i] = sha512.BlockWord(value)
	}
	//
	return digest, nil
}
