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

import "fmt"

// Rows needed for each schedule gate.
const (
	decompose0Rows = 6
	decompose1Rows = 6
	decompose2Rows = 6
	decompose3Rows = 6
	sigma0V1Rows   = 8
	sigma0V2Rows   = 8
	sigma1V1Rows   = 8
	sigma1V2Rows   = 8
)

// Rows needed for each schedule subregion.  Subregion 1 holds W_1..W_13
// ((1,6,1,56)-bit chunks, σ0 only), subregion 2 holds W_14..W_64
// ((1,5,1,1,11,42,3)-bit chunks, both σ0 and σ1), and subregion 3 holds
// W_65..W_77 ((6,13,42,3)-bit chunks, σ1 only).  W_0, W_78 and W_79 need no
// sigma at all.
const (
	subregion0Len  = 1
	subregion0Rows = subregion0Len * decompose0Rows
	subregion1WordRows = decompose1Rows + sigma0V1Rows
	subregion1Len  = 13
	subregion1Rows = subregion1Len * subregion1WordRows
	subregion2WordRows = decompose2Rows + sigma0V2Rows + sigma1V2Rows
	subregion2Len  = 51
	subregion2Rows = subregion2Len * subregion2WordRows
	subregion3WordRows = decompose3Rows + sigma1V1Rows
	subregion3Len  = 13
	subregion3Rows = subregion3Len * subregion3WordRows
	subregion4Len  = 2
	subregion4Rows = subregion4Len * decompose0Rows
)

// scheduleRows is the total height of one block's message-schedule
// subregion.
const scheduleRows = subregion0Rows + subregion1Rows + subregion2Rows +
	subregion3Rows + subregion4Rows

// getWordRow returns the row of schedule word i, relative to the start of
// the schedule subregion.  Subregion-2 words sit one row into their band
// because their decomposition reads one row above the word row.
func getWordRow(wordIdx int) int {
	switch {
	case wordIdx == 0:
		return 0
	case wordIdx <= 13:
		return subregion0Rows + subregion1WordRows*(wordIdx-1)
	case wordIdx <= 64:
		return subregion0Rows + subregion1Rows + subregion2WordRows*(wordIdx-14) + 1
	case wordIdx <= 77:
		return subregion0Rows + subregion1Rows + subregion2Rows + subregion3WordRows*(wordIdx-65)
	case wordIdx <= 79:
		return subregion0Rows + subregion1Rows + subregion2Rows + subregion3Rows +
			decompose0Rows*(wordIdx-78)
	default:
		panic(fmt.Errorf("schedule word index %d out of range", wordIdx))
	}
}

// assignWordAndHalves assigns a schedule word together with its 32-bit
// halves at the word's own row.  When src is non-nil the word cell is wired
// to it by an equality constraint (generated words are first asserted by the
// s_word gate elsewhere in the region).
func (p *Table16Chip) assignWordAndHalves(base int, wordIdx int, bits []bool,
	src *AssignedBits) (*AssignedBits, RoundWordDense, error) {
	var (
		word *AssignedBits
		err  error
		a3   = p.config.messageSchedule.extras[0]
		a4   = p.config.messageSchedule.extras[1]
		a5   = p.config.messageSchedule.messageSchedule
		row  = base + getWordRow(wordIdx)
	)
	//
	lo, err := assignBits(p.tr, a3, row, bits[:32])
	if err != nil {
		return nil, RoundWordDense{}, err
	}
	//
	hi, err := assignBits(p.tr, a4, row, bits[32:])
	if err != nil {
		return nil, RoundWordDense{}, err
	}
	//
	if src != nil {
		word, err = copyBits(p.tr, src, a5, row)
	} else {
		word, err = assignBits(p.tr, a5, row, bits)
	}
	//
	if err != nil {
		return nil, RoundWordDense{}, err
	}
	//
	return word, RoundWordDense{lo, hi}, nil
}
