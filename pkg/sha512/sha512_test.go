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
	refsha "crypto/sha512"
	"encoding/hex"
	"os"
	"strings"
	"testing"

	"github.com/consensys/sha512-circuit/pkg/sha512"
	"github.com/consensys/sha512-circuit/pkg/sha512/table16"
	"github.com/stretchr/testify/assert"
)

// check_Digest hashes msg through the circuit, verifies the witness trace
// against every constraint, and compares against the reference SHA-512.
func check_Digest(t *testing.T, msg []byte) string {
	chip := table16.NewTable16Chip()
	//
	digest, err := sha512.Digest(chip, sha512.PadMessage(msg))
	if err != nil {
		t.Fatal(err)
	}
	//
	expected := refsha.Sum512(msg)
	hexDigest := sha512.DigestHex(digest)
	//
	assert.Equal(t, hex.EncodeToString(expected[:]), hexDigest)
	//
	for _, failure := range chip.Verify() {
		t.Errorf("%s", failure.Message())
	}
	//
	return hexDigest
}

func Test_Digest_00(t *testing.T) {
	// Empty message.
	digest := check_Digest(t, []byte{})
	//
	assert.Equal(t,
		"cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce"+
			"47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		digest)
}

func Test_Digest_01(t *testing.T) {
	digest := check_Digest(t, []byte("abc"))
	//
	assert.Equal(t,
		"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a"+
			"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		digest)
}

func Test_Digest_02(t *testing.T) {
	// The two-block NIST example.
	check_Digest(t, []byte("abcdefghbcdefghicdefghijdefghijkefghijklfghijklm"+
		"ghijklmnhijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu"))
}

func Test_Digest_03(t *testing.T) {
	// Message length exactly at the 896-bit padding boundary.
	check_Digest(t, make([]byte, 111))
}

func Test_Digest_04(t *testing.T) {
	// One byte over the padding boundary forces an extra block.
	check_Digest(t, make([]byte, 112))
}

func TestSlow_Digest_05(t *testing.T) {
	// Deep multi-block chaining.
	check_Digest(t, []byte(strings.Repeat("a", 2048)))
}

func TestSlow_Digest_06(t *testing.T) {
	if testing.Short() || os.Getenv("SHA512_CIRCUIT_EXHAUSTIVE") == "" {
		t.Skip("the million-character witness needs tens of GB; set SHA512_CIRCUIT_EXHAUSTIVE=1")
	}
	//
	digest := check_Digest(t, []byte(strings.Repeat("a", 1_000_000)))
	//
	assert.Equal(t,
		"e718483d0ce769644e2e42c7bc15b4638e1f98b13b2044285632a803afa973eb"+
			"de0ff244877ea60a4cb0432ce577c31beb009c5c2c49aa2e4eadb217ad8cc09b",
		digest)
}

func Test_Hasher_00(t *testing.T) {
	// Incremental update matches the one-shot digest.
	words := sha512.PadMessage([]byte("abc"))
	//
	chip := table16.NewTable16Chip()
	hasher, err := sha512.New(chip)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if err := hasher.Update(words[:5]); err != nil {
		t.Fatal(err)
	}
	//
	if err := hasher.Update(words[5:]); err != nil {
		t.Fatal(err)
	}
	//
	digest, err := hasher.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	//
	expected := refsha.Sum512([]byte("abc"))
	//
	assert.Equal(t, hex.EncodeToString(expected[:]), sha512.DigestHex(digest))
	//
	for _, failure := range chip.Verify() {
		t.Errorf("%s", failure.Message())
	}
}

func Test_PadMessage_00(t *testing.T) {
	for _, n := range []int{0, 1, 3, 55, 111, 112, 127, 128, 200} {
		words := sha512.PadMessage(make([]byte, n))
		//
		if len(words)%sha512.BlockSize != 0 {
			t.Errorf("padded length %d for %d-byte message is not block-aligned", len(words), n)
		}
		// Minimality: at most one extra block beyond the message itself.
		if len(words)*8 > n+1+16+127 {
			t.Errorf("padding of %d-byte message too long: %d words", n, len(words))
		}
		// The final word carries the bit length.
		if uint64(words[len(words)-1]) != uint64(n)*8 {
			t.Errorf("length word wrong for %d-byte message", n)
		}
	}
}

func Test_PadMessage_01(t *testing.T) {
	// The 0x80 marker directly follows the message.
	words := sha512.PadMessage([]byte("abc"))
	//
	assert.Equal(t, sha512.BlockWord(0x6162638000000000), words[0])
	assert.Equal(t, sha512.BlockWord(24), words[15])
}
