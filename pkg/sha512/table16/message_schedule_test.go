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
	"math/bits"
	"math/rand"
	"testing"

	"github.com/consensys/sha512-circuit/pkg/sha512"
)

// Reference small sigmas.
func refSigma0(x uint64) uint64 {
	return bits.RotateLeft64(x, -1) ^ bits.RotateLeft64(x, -8) ^ (x >> 7)
}

func refSigma1(x uint64) uint64 {
	return bits.RotateLeft64(x, -19) ^ bits.RotateLeft64(x, -61) ^ (x >> 6)
}

// refSchedule expands a block by the reference update rule.
func refSchedule(input [sha512.BlockSize]sha512.BlockWord) [Rounds]uint64 {
	var w [Rounds]uint64
	//
	for i, word := range input {
		w[i] = uint64(word)
	}
	//
	for i := sha512.BlockSize; i < Rounds; i++ {
		w[i] = refSigma1(w[i-2]) + w[i-7] + refSigma0(w[i-15]) + w[i-16]
	}
	//
	return w
}

func check_Schedule(t *testing.T, input [sha512.BlockSize]sha512.BlockWord) {
	chip := NewTable16Chip()
	//
	halves, err := chip.processMessageBlock(input)
	if err != nil {
		t.Fatal(err)
	}
	//
	expected := refSchedule(input)
	//
	for i, half := range halves {
		if half.Value() != expected[i] {
			t.Errorf("W_%d = %016x, expected %016x", i, half.Value(), expected[i])
		}
	}
	//
	for _, failure := range chip.Verify() {
		t.Errorf("%s", failure.Message())
	}
}

func Test_MessageSchedule_00(t *testing.T) {
	// Padded block for "abc".
	var input [sha512.BlockSize]sha512.BlockWord
	//
	copy(input[:], sha512.PadMessage([]byte("abc")))
	//
	check_Schedule(t, input)
}

func Test_MessageSchedule_01(t *testing.T) {
	// All-zero block.
	check_Schedule(t, [sha512.BlockSize]sha512.BlockWord{})
}

func Test_MessageSchedule_02(t *testing.T) {
	// All-ones block exercises the carry paths.
	var input [sha512.BlockSize]sha512.BlockWord
	//
	for i := range input {
		input[i] = sha512.BlockWord(^uint64(0))
	}
	//
	check_Schedule(t, input)
}

func TestSlow_MessageSchedule_03(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	//
	for i := 0; i < 4; i++ {
		var input [sha512.BlockSize]sha512.BlockWord
		//
		for j := range input {
			input[j] = sha512.BlockWord(rng.Uint64())
		}
		//
		check_Schedule(t, input)
	}
}
