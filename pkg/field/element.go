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
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Element wraps fr.Element with value semantics, so that circuit code can
// treat field values like ordinary scalars.  The BLS12-377 scalar field has
// order a little under 2^253, comfortably above the 2^128 quantities produced
// by spread-form sums.
type Element struct {
	fr.Element
}

// Zero constructs a field element representing 0.
func Zero() Element {
	var element Element
	//
	return element
}

// One constructs a field element representing 1.
func One() Element {
	return Uint64(1)
}

// Uint64 constructs a field element from a given uint64.
func Uint64(val uint64) Element {
	var element fr.Element
	//
	element.SetUint64(val)
	//
	return Element{element}
}

// Uint128 constructs a field element from a 128-bit quantity given as two
// 64-bit limbs (hi * 2^64 + lo).
func Uint128(hi, lo uint64) Element {
	res := Uint64(hi).Mul(TwoPowN(64))
	//
	return res.Add(Uint64(lo))
}

// BigInt constructs a field element from a given (non-negative) big.Int.
func BigInt(val *big.Int) Element {
	var element fr.Element
	//
	if val.Sign() < 0 {
		panic("negative value encountered")
	}
	//
	element.SetBigInt(val)
	//
	return Element{element}
}

// TwoPowN constructs a field element representing 2^n.
func TwoPowN(n uint) Element {
	var element fr.Element
	//
	element.SetUint64(2)
	element.Exp(element, big.NewInt(int64(n)))
	//
	return Element{element}
}

// Add x + y
func (x Element) Add(y Element) Element {
	var res fr.Element
	//
	res.Add(&x.Element, &y.Element)
	//
	return Element{res}
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	var res fr.Element
	//
	res.Sub(&x.Element, &y.Element)
	//
	return Element{res}
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	var res fr.Element
	//
	res.Mul(&x.Element, &y.Element)
	//
	return Element{res}
}

// Neg -x
func (x Element) Neg() Element {
	var res fr.Element
	//
	res.Neg(&x.Element)
	//
	return Element{res}
}

// Inverse x⁻¹, or 0 if x = 0.
func (x Element) Inverse() Element {
	var res fr.Element
	//
	res.Inverse(&x.Element)
	//
	return Element{res}
}

// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
func (x Element) Cmp(y Element) int {
	return x.Element.Cmp(&y.Element)
}

// IsZero checks whether this element is zero.
func (x Element) IsZero() bool {
	return x.Element.IsZero()
}

// ToUint64 returns the numerical value of x, which must fit in a uint64.
func (x Element) ToUint64() uint64 {
	if !x.IsUint64() {
		panic(fmt.Errorf("cannot convert to uint64: %s", x.String()))
	}
	//
	return x.Uint64()
}

func (x Element) String() string {
	return x.Element.String()
}
