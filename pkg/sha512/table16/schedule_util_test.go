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

import "testing"

// wordBand returns the row range [start, end) reserved for a schedule word,
// including its decompose and sigma bands.
func wordBand(idx int) (int, int) {
	switch {
	case idx == 0:
		return getWordRow(0), getWordRow(0) + decompose0Rows
	case idx <= 13:
		return getWordRow(idx), getWordRow(idx) + subregion1WordRows
	case idx <= 64:
		// The word row sits one row into its band.
		return getWordRow(idx) - 1, getWordRow(idx) - 1 + subregion2WordRows
	case idx <= 77:
		return getWordRow(idx), getWordRow(idx) + subregion3WordRows
	default:
		return getWordRow(idx), getWordRow(idx) + decompose0Rows
	}
}

// Reserved word bands must be disjoint and within the schedule subregion.
func Test_ScheduleLayout_00(t *testing.T) {
	for idx := 1; idx < Rounds; idx++ {
		prevStart, prevEnd := wordBand(idx - 1)
		start, end := wordBand(idx)
		//
		if prevStart >= prevEnd || start >= end {
			t.Fatalf("empty band at %d", idx)
		}
		//
		if prevEnd > start {
			t.Errorf("bands of words %d and %d overlap", idx-1, idx)
		}
	}
	//
	if _, end := wordBand(Rounds - 1); end != scheduleRows {
		t.Errorf("schedule height %d does not close the layout (%d)", scheduleRows, end)
	}
}

// Compression round bands must tile the main subregion exactly, with the
// internal gate bands inside each round.
func Test_CompressionLayout_00(t *testing.T) {
	if subregionMainWord != 54 {
		t.Errorf("unexpected round height %d", subregionMainWord)
	}
	//
	offsets := []int{
		decomposeERow,
		upperSigma1Row,
		chRow,
		chNegRow,
		decomposeARow,
		upperSigma0Row,
		majRow,
	}
	//
	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			t.Errorf("gate bands out of order: %v", offsets)
		}
	}
	//
	if majRow+majRows-1 != subregionMainWord {
		t.Errorf("majority band does not close the round: %d", majRow+majRows-1)
	}
	//
	if roundRow(Rounds) != subregionMainRows {
		t.Errorf("round bands do not tile the main subregion")
	}
}
