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
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/consensys/sha512-circuit/pkg/circuit"
	"github.com/consensys/sha512-circuit/pkg/field"
	gadget "github.com/consensys/sha512-circuit/pkg/sha512"
)

func check_Digest(t *testing.T, msg []byte) {
	chip := NewTable16Chip()
	//
	digest, err := gadget.Digest(chip, gadget.PadMessage(msg))
	if err != nil {
		t.Fatal(err)
	}
	//
	expected := sha512.Sum512(msg)
	//
	if gadget.DigestHex(digest) != hex.EncodeToString(expected[:]) {
		t.Errorf("digest mismatch for %q: %s", msg, gadget.DigestHex(digest))
	}
	//
	for _, failure := range chip.Verify() {
		t.Errorf("%s", failure.Message())
	}
}

func Test_Compression_00(t *testing.T) {
	check_Digest(t, []byte("abc"))
}

func Test_Compression_01(t *testing.T) {
	check_Digest(t, []byte{})
}

func Test_Compression_02(t *testing.T) {
	// Two blocks: exercises the feed-forward into a second compression.
	check_Digest(t, []byte("abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmn"+
		"hijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu"))
}

// A corrupted witness must be rejected by the constraint checker.
func Test_Compression_03(t *testing.T) {
	chip := NewTable16Chip()
	//
	if _, err := gadget.Digest(chip, gadget.PadMessage([]byte("abc"))); err != nil {
		t.Fatal(err)
	}
	//
	if failures := chip.Verify(); len(failures) != 0 {
		t.Fatalf("clean trace rejected: %v", failures)
	}
	// W_0 sits in the schedule column at the first schedule row, right
	// after the initial band.
	w0 := circuit.CellRef{Column: 5, Row: initialRows}
	//
	chip.Trace().Overwrite(w0, field.Uint64(12345))
	//
	if failures := chip.Verify(); len(failures) == 0 {
		t.Errorf("corrupted trace accepted")
	}
}
