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

	"github.com/consensys/sha512-circuit/pkg/circuit"
	"github.com/consensys/sha512-circuit/pkg/field"
)

func Test_GetTag_00(t *testing.T) {
	cases := []struct {
		input uint64
		tag   uint8
	}{
		{0, 0},
		{(1 << 11) - 1, 0},
		{1 << 11, 1},
		{(1 << 13) - 1, 1},
		{1 << 13, 2},
		{(1 << 14) - 1, 2},
		{1 << 14, 3},
		{(1 << 23) - 1, 3},
		{1 << 23, 4},
		{(1 << 25) - 1, 4},
		{1 << 25, 5},
		{(1 << 28) - 1, 5},
		{1 << 28, 6},
		{(1 << 42) - 1, 6},
		{1 << 42, 7},
		{(1 << 56) - 1, 7},
		{1 << 56, 8},
		{^uint64(0), 8},
	}
	//
	for _, c := range cases {
		if getTag(c.input) != c.tag {
			t.Errorf("getTag(%x) = %d, expected %d", c.input, getTag(c.input), c.tag)
		}
	}
}

func Test_SpreadTable_00(t *testing.T) {
	cs := circuit.NewConstraintSystem()
	tag := cs.AdviceColumn("a_0")
	dense := cs.AdviceColumn("a_1")
	spread := cs.AdviceColumn("a_2")
	//
	config := ConfigureSpreadTable(cs, tag, dense, spread, LookupWordWidth)
	LoadSpreadTable(config)
	//
	if config.Table.Rows() != 1<<LookupWordWidth {
		t.Fatalf("unexpected table size %d", config.Table.Rows())
	}
	//
	contains := func(tagV, denseV uint64, spreadV Uint128) bool {
		return config.Table.Contains([]field.Element{
			field.Uint64(tagV), field.Uint64(denseV), spreadV.Field(),
		})
	}
	// First few small values.
	for _, c := range [][2]uint64{{0b000, 0b000000}, {0b001, 0b000001}, {0b010, 0b000100},
		{0b011, 0b000101}, {0b100, 0b010000}, {0b101, 0b010001}} {
		if !contains(0, c[0], U128FromU64(c[1])) {
			t.Errorf("missing row for %b", c[0])
		}
	}
	// Tag class boundaries inside the table.
	boundaries := []struct {
		tag   uint64
		dense uint64
	}{
		{0, (1 << 11) - 1},
		{1, 1 << 11},
		{1, (1 << 13) - 1},
		{2, 1 << 13},
		{2, (1 << 14) - 1},
		{3, 1 << 14},
		{3, (1 << 16) - 1},
	}
	//
	for _, b := range boundaries {
		if !contains(b.tag, b.dense, interleaveU64(b.dense)) {
			t.Errorf("missing boundary row for %x (tag %d)", b.dense, b.tag)
		}
		// The same dense value under any other tag must be absent.
		if contains(b.tag+1, b.dense, interleaveU64(b.dense)) {
			t.Errorf("wrong-tag row present for %x", b.dense)
		}
	}
	// Random members and non-members.
	rng := rand.New(rand.NewSource(8))
	//
	for i := 0; i < 100; i++ {
		v := rng.Uint64() & 0xffff
		//
		if !contains(uint64(getTag(v)), v, interleaveU64(v)) {
			t.Errorf("missing random row for %x", v)
		}
		// Corrupt the spread form.
		if contains(uint64(getTag(v)), v, interleaveU64(v).Add(U128FromU64(1<<20))) {
			t.Errorf("corrupted spread accepted for %x", v)
		}
	}
}

func Test_SpreadTable_01(t *testing.T) {
	// Widths other than 16 are draft layouts and must be rejected.
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for unsupported width")
		}
	}()
	//
	cs := circuit.NewConstraintSystem()
	ConfigureSpreadTable(cs, cs.AdviceColumn("a_0"), cs.AdviceColumn("a_1"),
		cs.AdviceColumn("a_2"), 14)
}
