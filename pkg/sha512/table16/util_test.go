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
	"math/rand"
	"testing"
)

func Test_Bits_00(t *testing.T) {
	// lebs2ip / i2lebsp round trip
	rng := rand.New(rand.NewSource(1))
	//
	for i := 0; i < 1000; i++ {
		v := rng.Uint64()
		//
		if lebs2ip(i2lebsp(v, 64)) != v {
			t.Errorf("round trip failed for %x", v)
		}
	}
}

func Test_Bits_01(t *testing.T) {
	// spread doubles the length and interleaves zeros
	bits := i2lebsp(0b1011, 4)
	spread := spreadBits(bits)
	//
	if lebs2ip(spread) != 0b01000101 {
		t.Errorf("unexpected spread: %b", lebs2ip(spread))
	}
}

func Test_Bits_02(t *testing.T) {
	// interleaveU64 agrees with spreadBits for random words
	rng := rand.New(rand.NewSource(2))
	//
	for i := 0; i < 1000; i++ {
		v := rng.Uint64()
		//
		expected := lebs2ip128(spreadBits(i2lebsp(v, 64)))
		//
		if interleaveU64(v) != expected {
			t.Errorf("interleave mismatch for %x", v)
		}
	}
}

// Even bits of spread(x) + spread(x) vanish; odd bits recover x.
func Test_Spread_00(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	//
	for i := 0; i < 1000; i++ {
		x := rng.Uint64()
		//
		sum := interleaveU64(x).Add(interleaveU64(x))
		bits := i2lebsp128(sum, 128)
		//
		if lebs2ip(evenBits(bits)) != 0 {
			t.Errorf("even bits of spread(x)+spread(x) non-zero for %x", x)
		}
		//
		if lebs2ip(oddBits(bits)) != x {
			t.Errorf("odd bits of spread(x)+spread(x) do not recover %x", x)
		}
	}
}

// Even bits of spread(x) + spread(y) are x XOR y; odd bits are x AND y.
func Test_Spread_01(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	//
	for i := 0; i < 1000; i++ {
		x, y := rng.Uint64(), rng.Uint64()
		//
		sum := interleaveU64(x).Add(interleaveU64(y))
		bits := i2lebsp128(sum, 128)
		//
		if lebs2ip(evenBits(bits)) != x^y {
			t.Errorf("even bits are not XOR for %x, %x", x, y)
		}
		//
		if lebs2ip(oddBits(bits)) != x&y {
			t.Errorf("odd bits are not AND for %x, %x", x, y)
		}
	}
}

// Odd bits of spread(x) + spread(y) + spread(z) are the majority.
func Test_Spread_02(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	//
	for i := 0; i < 1000; i++ {
		x, y, z := rng.Uint64(), rng.Uint64(), rng.Uint64()
		//
		sum := interleaveU64(x).Add(interleaveU64(y)).Add(interleaveU64(z))
		bits := i2lebsp128(sum, 128)
		//
		maj := (x & y) | (x & z) | (y & z)
		//
		if lebs2ip(oddBits(bits)) != maj {
			t.Errorf("odd bits are not majority for %x, %x, %x", x, y, z)
		}
		//
		if lebs2ip(evenBits(bits)) != x^y^z {
			t.Errorf("even bits are not triple XOR for %x, %x, %x", x, y, z)
		}
	}
}

// negate_spread(spread(e)) + spread(e) = spread(all-ones).
func Test_NegateSpread_00(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	//
	for i := 0; i < 1000; i++ {
		x := uint64(rng.Uint32())
		//
		spread := spreadBits(i2lebsp(x, 32))
		neg := negateSpread(spread)
		//
		sum := lebs2ip(spread) + lebs2ip(neg)
		//
		if sum != MaskEven64 {
			t.Errorf("negate_spread mismatch for %x: %x", x, sum)
		}
	}
}

// sum_with_carry: a + b + ... = sum + 2^64 * carry, carry < n.
func Test_SumWithCarry_00(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	//
	for i := 0; i < 1000; i++ {
		n := 2 + rng.Intn(5)
		pairs := make([][2]uint32, n)
		//
		var expected Uint128
		//
		for j := range pairs {
			word := rng.Uint64()
			pairs[j] = [2]uint32{uint32(word), uint32(word >> 32)}
			expected = expected.Add(U128FromU64(word))
		}
		//
		sum, carry := sumWithCarry(pairs)
		//
		if sum != expected.Lo || carry != expected.Hi {
			t.Errorf("sum_with_carry mismatch for %d addends", n)
		}
		//
		if carry >= uint64(n) {
			t.Errorf("carry %d out of range for %d addends", carry, n)
		}
	}
}

func Test_Uint128_00(t *testing.T) {
	x := Uint128{0, 0xffffffffffffffff}
	//
	if x.Add(U128FromU64(1)) != (Uint128{1, 0}) {
		t.Errorf("carry propagation failed")
	}
	//
	if x.Shl(4) != (Uint128{0xf, 0xfffffffffffffff0}) {
		t.Errorf("shift across limbs failed")
	}
	//
	if (Uint128{3, 5}).Sub(Uint128{1, 6}) != (Uint128{1, 0xffffffffffffffff}) {
		t.Errorf("borrow propagation failed")
	}
}
