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
	log "github.com/sirupsen/logrus"
)

// MessageScheduleConfig holds the columns and selectors of the message
// schedule.  The schedule column (a_5) is where every W_i lands; downstream
// compression rounds read the (lo, hi) half-pairs by equality constraint.
type MessageScheduleConfig struct {
	lookup          SpreadInputs
	messageSchedule circuit.Column
	extras          [6]circuit.Column

	// Construct a word from the four-addend update rule.
	sWord circuit.Selector
	// Half-word decomposition gate for every word W_[0..80).
	sDecompose0 circuit.Selector
	// Decomposition gate for W_[1..14).
	sDecompose1 circuit.Selector
	// Decomposition gate for W_[14..65).
	sDecompose2 circuit.Selector
	// Decomposition gate for W_[65..78).
	sDecompose3 circuit.Selector
	// σ0 gate for W_[1..14).
	sLowerSigma0 circuit.Selector
	// σ1 gate for W_[65..78).
	sLowerSigma1 circuit.Selector
	// σ0 gate for W_[14..65).
	sLowerSigma0V2 circuit.Selector
	// σ1 gate for W_[14..65).
	sLowerSigma1V2 circuit.Selector
}

// configureMessageSchedule declares the schedule's selectors and gates.
func configureMessageSchedule(cs *circuit.ConstraintSystem, lookup SpreadInputs,
	messageSchedule circuit.Column, extras [6]circuit.Column) MessageScheduleConfig {
	config := MessageScheduleConfig{
		lookup:          lookup,
		messageSchedule: messageSchedule,
		extras:          extras,
		sWord:           cs.Selector("s_word"),
		sDecompose0:     cs.Selector("s_decompose_0"),
		sDecompose1:     cs.Selector("s_decompose_1"),
		sDecompose2:     cs.Selector("s_decompose_2"),
		sDecompose3:     cs.Selector("s_decompose_3"),
		sLowerSigma0:    cs.Selector("s_lower_sigma_0"),
		sLowerSigma1:    cs.Selector("s_lower_sigma_1"),
		sLowerSigma0V2:  cs.Selector("s_lower_sigma_0_v2"),
		sLowerSigma1V2:  cs.Selector("s_lower_sigma_1_v2"),
	}
	//
	cs.CreateGate("s_word", config.sWord, scheduleWordGate(&config))
	cs.CreateGate("s_decompose_0", config.sDecompose0, decompose0Gate(&config))
	cs.CreateGate("s_decompose_1", config.sDecompose1, decompose1Gate(&config))
	cs.CreateGate("s_decompose_2", config.sDecompose2, decompose2Gate(&config))
	cs.CreateGate("s_decompose_3", config.sDecompose3, decompose3Gate(&config))
	cs.CreateGate("s_lower_sigma_0", config.sLowerSigma0, lowerSigma0V1Gate(&config))
	cs.CreateGate("s_lower_sigma_1", config.sLowerSigma1, lowerSigma1V1Gate(&config))
	cs.CreateGate("s_lower_sigma_0_v2", config.sLowerSigma0V2, lowerSigma0V2Gate(&config))
	cs.CreateGate("s_lower_sigma_1_v2", config.sLowerSigma1V2, lowerSigma1V2Gate(&config))
	//
	return config
}

// scheduleState is the working state threaded through the three subregions
// while one block's schedule is assigned.
type scheduleState struct {
	// First row of this block's schedule subregion.
	base int
	// Assigned word cells, in index order.
	words []*AssignedBits
	// Assigned (lo, hi) half-pairs, in index order.
	halves []RoundWordDense
}

// processMessageBlock expands sixteen input words into the eighty scheduled
// words of one block, returning their half-pairs for the compression rounds.
func (p *Table16Chip) processMessageBlock(input [sha512.BlockSize]sha512.BlockWord) ([Rounds]RoundWordDense, error) {
	var (
		result [Rounds]RoundWordDense
		config = &p.config.messageSchedule
		state  = &scheduleState{base: p.reserve(scheduleRows)}
	)
	//
	log.Debugf("assigning message schedule at rows [%d, %d)", state.base, state.base+scheduleRows)
	// Enable all selectors up front; the layout is static.
	for i := 1; i < 14; i++ {
		row := state.base + getWordRow(i)
		p.tr.EnableSelector(config.sDecompose1, row)
		p.tr.EnableSelector(config.sLowerSigma0, row+6)
	}
	//
	for i := 14; i < 65; i++ {
		row := state.base + getWordRow(i)
		p.tr.EnableSelector(config.sDecompose2, row)
		p.tr.EnableSelector(config.sLowerSigma0V2, row+6)
		p.tr.EnableSelector(config.sLowerSigma1V2, row+6+sigma0V2Rows)
		p.tr.EnableSelector(config.sWord, state.base+getWordRow(i+2-16)+1)
	}
	//
	for i := 65; i < 78; i++ {
		row := state.base + getWordRow(i)
		p.tr.EnableSelector(config.sDecompose3, row)
		p.tr.EnableSelector(config.sLowerSigma1, row+6)
		p.tr.EnableSelector(config.sWord, state.base+getWordRow(i+2-16)+1)
	}
	//
	for i := 0; i < Rounds; i++ {
		p.tr.EnableSelector(config.sDecompose0, state.base+getWordRow(i))
	}
	// Assign W_[0..16).
	for i, word := range input {
		cell, halfPair, err := p.assignWordAndHalves(state.base, i, i2lebsp(uint64(word), 64), nil)
		if err != nil {
			return result, err
		}
		//
		state.words = append(state.words, cell)
		state.halves = append(state.halves, halfPair)
	}
	// σ0 on W_[1..14).
	sigma0Output, err := p.assignSubregion1(state, input[1:14])
	if err != nil {
		return result, err
	}
	// σ0_v2 and σ1_v2 on W_[14..65), composing W_[16..67); returns the
	// σ0_v2 outputs for W_[52..65) needed by subregion 3.
	sigma0V2Output, err := p.assignSubregion2(state, sigma0Output)
	if err != nil {
		return result, err
	}
	// σ1 on W_[65..78), composing W_[67..80).
	if err := p.assignSubregion3(state, sigma0V2Output); err != nil {
		return result, err
	}
	//
	copy(result[:], state.halves)
	//
	return result, nil
}

// composeWord assigns the s_word row of a freshly scheduled word: the four
// addends' halves are wired in, the word and its carry are written at the
// gate row, and the word is then re-assigned (by equality) at its own row
// with its halves.
func (p *Table16Chip) composeWord(state *scheduleState, newIdx int,
	sigma0, sigma1 RoundWordDense) error {
	var (
		config = &p.config.messageSchedule
		a6, a7 = config.extras[2], config.extras[3]
		a8, a9 = config.extras[4], config.extras[5]
		a5     = config.messageSchedule
		row    = state.base + getWordRow(newIdx-16) + 1
	)
	// Copy σ0(W_{i-15}).
	if _, err := copyBits(p.tr, sigma0.Lo, a6, row-1); err != nil {
		return err
	}
	//
	if _, err := copyBits(p.tr, sigma0.Hi, a6, row); err != nil {
		return err
	}
	// Copy σ1(W_{i-2}).
	if _, err := copyBits(p.tr, sigma1.Lo, a7, row-1); err != nil {
		return err
	}
	//
	if _, err := copyBits(p.tr, sigma1.Hi, a7, row); err != nil {
		return err
	}
	// Copy W_{i-7}.
	wMinus7 := state.halves[newIdx-7]
	//
	if _, err := copyBits(p.tr, wMinus7.Lo, a8, row-1); err != nil {
		return err
	}
	//
	if _, err := copyBits(p.tr, wMinus7.Hi, a8, row); err != nil {
		return err
	}
	// W_{i-16} is read in place from its decompose row, one above this one.
	wMinus16 := state.halves[newIdx-16]
	// Calculate W_i and its carry.
	word, carry := sumWithCarry([][2]uint32{
		sigma1.HalfValues(),
		wMinus7.HalfValues(),
		sigma0.HalfValues(),
		wMinus16.HalfValues(),
	})
	//
	wordCell, err := assignBits(p.tr, a5, row, i2lebsp(word, 64))
	if err != nil {
		return err
	}
	//
	if _, err := p.tr.AssignAdvice(a9, row, field.Uint64(carry)); err != nil {
		return err
	}
	// Re-assign W_i (with halves) at its own row, wired by equality.
	cell, halfPair, err := p.assignWordAndHalves(state.base, newIdx, i2lebsp(word, 64), wordCell)
	if err != nil {
		return err
	}
	//
	state.words = append(state.words, cell)
	state.halves = append(state.halves, halfPair)
	//
	return nil
}
