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
package sha512_test

import (
	"testing"

	"github.com/consensys/sha512-circuit/pkg/sha512"
	"github.com/consensys/sha512-circuit/pkg/sha512/table16"
)

// Witness assignment for a single padded block.
func BenchmarkAssign(b *testing.B) {
	words := sha512.PadMessage([]byte("abc"))
	//
	for i := 0; i < b.N; i++ {
		chip := table16.NewTable16Chip()
		//
		if _, err := sha512.Digest(chip, words); err != nil {
			b.Fatal(err)
		}
	}
}

// Assignment plus full constraint checking.
func BenchmarkAssignAndVerify(b *testing.B) {
	words := sha512.PadMessage([]byte("abc"))
	//
	for i := 0; i < b.N; i++ {
		chip := table16.NewTable16Chip()
		//
		if _, err := sha512.Digest(chip, words); err != nil {
			b.Fatal(err)
		}
		//
		if failures := chip.Verify(); len(failures) != 0 {
			b.Fatalf("trace rejected: %v", failures)
		}
	}
}
