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
package field

import (
	"testing"
)

func Test_Element_00(t *testing.T) {
	if !Zero().IsZero() {
		t.Errorf("Zero() is not zero")
	}
	//
	if One().ToUint64() != 1 {
		t.Errorf("One() is not one")
	}
}

func Test_Element_01(t *testing.T) {
	x := Uint64(0xdeadbeef)
	y := Uint64(0x1234)
	//
	if x.Add(y).ToUint64() != 0xdeadbeef+0x1234 {
		t.Errorf("unexpected sum")
	}
	//
	if x.Mul(y).ToUint64() != 0xdeadbeef*0x1234 {
		t.Errorf("unexpected product")
	}
	//
	if x.Sub(y).ToUint64() != 0xdeadbeef-0x1234 {
		t.Errorf("unexpected difference")
	}
}

func Test_Element_02(t *testing.T) {
	// 2^64 as a field element
	x := TwoPowN(64)
	y := Uint64(1).Add(Uint64(0xffffffffffffffff))
	//
	if x.Cmp(y) != 0 {
		t.Errorf("2^64 mismatch: %s vs %s", x, y)
	}
}

func Test_Element_03(t *testing.T) {
	// hi * 2^64 + lo
	x := Uint128(3, 7)
	y := TwoPowN(64).Mul(Uint64(3)).Add(Uint64(7))
	//
	if x.Cmp(y) != 0 {
		t.Errorf("uint128 mismatch: %s vs %s", x, y)
	}
}

func Test_Element_04(t *testing.T) {
	// x * x^-1 = 1
	x := Uint64(0xcafe)
	//
	if x.Mul(x.Inverse()).Cmp(One()) != 0 {
		t.Errorf("inverse mismatch")
	}
	// 0^-1 = 0 by convention
	if !Zero().Inverse().IsZero() {
		t.Errorf("inverse of zero is not zero")
	}
}

func Test_Element_05(t *testing.T) {
	// Negation
	x := Uint64(5)
	//
	if !x.Add(x.Neg()).IsZero() {
		t.Errorf("x + (-x) is not zero")
	}
}
