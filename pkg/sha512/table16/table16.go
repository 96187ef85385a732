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

// Package table16 implements SHA-512 as an arithmetized circuit over a
// 16-bit spread lookup table.  Bitwise operations are linearized by encoding
// words in "spread" form (one zero bit interleaved after every data bit), so
// that XOR and majority become integer additions whose even/odd output bits
// are recovered through the lookup table.
package table16

import (
	"fmt"

	"github.com/consensys/sha512-circuit/pkg/circuit"
	"github.com/consensys/sha512-circuit/pkg/sha512"
	log "github.com/sirupsen/logrus"
)

// Rounds is the number of SHA-512 compression rounds.
const Rounds = 80

// stateWords is the number of 64-bit words in the hasher state.
const stateWords = 8

// RoundConstants are the eighty SHA-512 round constants K of FIPS 180-4.
var RoundConstants = [Rounds]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// IV is the SHA-512 initialization vector of FIPS 180-4.
var IV = [stateWords]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// AssignedBits is a region cell holding the dense value of a little-endian
// bit string.
type AssignedBits struct {
	cell circuit.CellRef
	bits []bool
}

// Cell returns the region cell backing this value.
func (p *AssignedBits) Cell() circuit.CellRef {
	return p.cell
}

// Len returns the bit length of this value.
func (p *AssignedBits) Len() int {
	return len(p.bits)
}

// Bits returns the little-endian bits of this value.
func (p *AssignedBits) Bits() []bool {
	return p.bits
}

// Value returns the dense value, which must fit in 64 bits.
func (p *AssignedBits) Value() uint64 {
	return lebs2ip(p.bits)
}

// Value128 returns the dense value at full width.
func (p *AssignedBits) Value128() Uint128 {
	return lebs2ip128(p.bits)
}

// assignBits writes the dense value of the given bits into a cell.
func assignBits(tr *circuit.Trace, column circuit.Column, row int, bits []bool) (*AssignedBits, error) {
	cell, err := tr.AssignAdvice(column, row, bitsField(bits))
	if err != nil {
		return nil, err
	}
	//
	return &AssignedBits{cell, bits}, nil
}

// copyBits re-assigns an already-assigned value into a new cell, wiring the
// two by an equality constraint.
func copyBits(tr *circuit.Trace, src *AssignedBits, column circuit.Column, row int) (*AssignedBits, error) {
	cell, err := tr.Copy(src.cell, column, row)
	if err != nil {
		return nil, err
	}
	//
	return &AssignedBits{cell, src.bits}, nil
}

// Table16Config aggregates the configuration of the three sub-chips.
type Table16Config struct {
	lookup          SpreadTableConfig
	messageSchedule MessageScheduleConfig
	compression     CompressionConfig
}

// Table16Chip implements SHA-512 with a maximum lookup table width of 2^16.
// It owns the single region in which every hash invocation is assigned; row
// bands are reserved through a monotone cursor, so reserved ranges never
// overlap.
type Table16Chip struct {
	cs     *circuit.ConstraintSystem
	config Table16Config
	tr     *circuit.Trace
	cursor int
}

// NewTable16Chip configures a fresh constraint system, loads the spread
// table, and returns a chip ready for assignment.
func NewTable16Chip() *Table16Chip {
	cs := circuit.NewConstraintSystem()
	config := configure(cs)
	//
	LoadSpreadTable(config.lookup)
	//
	return &Table16Chip{
		cs:     cs,
		config: config,
		tr:     circuit.NewTrace(cs),
	}
}

// configure declares the chip's columns, gates and lookup argument.
func configure(cs *circuit.ConstraintSystem) Table16Config {
	// Three advice columns interacting with the lookup table.
	inputTag := cs.AdviceColumn("a_0")
	inputDense := cs.AdviceColumn("a_1")
	inputSpread := cs.AdviceColumn("a_2")
	// Remaining advice columns.
	a3 := cs.AdviceColumn("a_3")
	a4 := cs.AdviceColumn("a_4")
	a5 := cs.AdviceColumn("a_5")
	a6 := cs.AdviceColumn("a_6")
	a7 := cs.AdviceColumn("a_7")
	a8 := cs.AdviceColumn("a_8")
	a9 := cs.AdviceColumn("a_9")
	//
	lookup := ConfigureSpreadTable(cs, inputTag, inputDense, inputSpread, LookupWordWidth)
	//
	messageSchedule := a5
	extras := [6]circuit.Column{a3, a4, a6, a7, a8, a9}
	//
	compression := configureCompression(cs, lookup.Input, messageSchedule, extras)
	schedule := configureMessageSchedule(cs, lookup.Input, messageSchedule, extras)
	//
	return Table16Config{
		lookup:          lookup,
		messageSchedule: schedule,
		compression:     compression,
	}
}

// ConstraintSystem returns the underlying constraint system.
func (p *Table16Chip) ConstraintSystem() *circuit.ConstraintSystem {
	return p.cs
}

// Trace returns the region in which this chip assigns.
func (p *Table16Chip) Trace() *circuit.Trace {
	return p.tr
}

// Verify checks the assigned trace against every constraint of the chip.
func (p *Table16Chip) Verify() []circuit.Failure {
	return p.cs.Verify(p.tr)
}

// reserve claims the next band of rows, returning its first row.
func (p *Table16Chip) reserve(rows int) int {
	base := p.cursor
	p.cursor += rows
	//
	return base
}

// ============================================================================
// sha512.Instructions
// ============================================================================

// InitializationVector places the SHA-512 IV in the circuit, returning the
// initial state.
func (p *Table16Chip) InitializationVector() (sha512.State, error) {
	return p.initializeWithIV()
}

// Initialization creates an initialized state from the output state of a
// previous block.
func (p *Table16Chip) Initialization(state sha512.State) (sha512.State, error) {
	return p.initializeWithState(asState(state))
}

// Compress processes one input block from the given initialized state.
func (p *Table16Chip) Compress(state sha512.State, input [sha512.BlockSize]sha512.BlockWord) (sha512.State, error) {
	wHalves, err := p.processMessageBlock(input)
	if err != nil {
		return nil, err
	}
	//
	return p.compress(asState(state), wHalves)
}

// Digest converts the given state into a message digest by reconstructing
// the eight 64-bit output words from their halves.
func (p *Table16Chip) Digest(state sha512.State) ([sha512.DigestSize]sha512.BlockWord, error) {
	log.Debugf("assigning digest at row %d", p.cursor)
	//
	return p.assignDigest(asState(state))
}

func asState(state sha512.State) *State {
	concrete, ok := state.(*State)
	if !ok {
		panic(fmt.Errorf("foreign state %T handed to table16 chip", state))
	}
	//
	return concrete
}

// ============================================================================
// Common spread-output assignment
// ============================================================================

// spreadOutputs is the quadruple of 32-bit dense half-words recovered from a
// 128-bit spread sum: R_0^{even}, R_0^{odd} for the low 64 spread bits and
// R_1^{even}, R_1^{odd} for the high 64 spread bits.
type spreadOutputs struct {
	evenLo *AssignedBits
	evenHi *AssignedBits
	oddLo  *AssignedBits
	oddHi  *AssignedBits
}

// assignSpreadOutputs looks up the four 32-bit halves of a spread sum as
// eight 16-bit pieces, and joins each pair into a dense 32-bit cell in a_3.
// The caller's gate ties the spread pieces to the sum being decomposed; the
// join cells are constrained by spreadOutputJoins.
//
// Rows used, relative to the gate row: lookups at -1..+6, joins at +2..+5.
func (p *Table16Chip) assignSpreadOutputs(a3 circuit.Column, row int,
	r0Even, r0Odd, r1Even, r1Odd []bool) (*spreadOutputs, error) {
	var (
		out  spreadOutputs
		err  error
		cols = &p.config.lookup.Input
	)
	// Lookup R_0^{even}, R_0^{odd}, R_1^{even}, R_1^{odd}
	joins := [4]struct {
		half    []bool
		loRow   int
		hiRow   int
		joinRow int
		dest    **AssignedBits
	}{
		{r0Even, row - 1, row, row + 2, &out.evenLo},
		{r0Odd, row + 1, row + 2, row + 3, &out.oddLo},
		{r1Even, row + 3, row + 4, row + 4, &out.evenHi},
		{r1Odd, row + 5, row + 6, row + 5, &out.oddHi},
	}
	//
	for _, join := range joins {
		var lo, hi *SpreadVar
		//
		if lo, err = SpreadVarWithLookup(p.tr, cols, join.loRow, NewSpreadWord(join.half[:16])); err != nil {
			return nil, err
		}
		//
		if hi, err = SpreadVarWithLookup(p.tr, cols, join.hiRow, NewSpreadWord(join.half[16:])); err != nil {
			return nil, err
		}
		//
		dense := append(append([]bool{}, lo.Dense.Bits()...), hi.Dense.Bits()...)
		//
		if *join.dest, err = assignBits(p.tr, a3, join.joinRow, dense); err != nil {
			return nil, err
		}
	}
	//
	return &out, nil
}

// even returns the dense σ output halves (R_0^{even}, R_1^{even}).
func (p *spreadOutputs) even() (*AssignedBits, *AssignedBits) {
	return p.evenLo, p.evenHi
}

// odd returns the dense odd-bit halves (R_0^{odd}, R_1^{odd}).
func (p *spreadOutputs) odd() (*AssignedBits, *AssignedBits) {
	return p.oddLo, p.oddHi
}

// ============================================================================
// Common gate fragments
// ============================================================================

// spreadWitness is the 128-bit spread sum reconstructed from the eight
// looked-up 16-bit spread pieces of the standard spread-output band:
// (even_0 + 2·odd_0) + 2^64·(even_1 + 2·odd_1).
func spreadWitness(a2 circuit.Column) circuit.Expression {
	r0Even := circuit.Sum(circuit.Cell(a2, -1), circuit.ScalePow2(circuit.Cell(a2, 0), 32))
	r0Odd := circuit.Sum(circuit.Cell(a2, 1), circuit.ScalePow2(circuit.Cell(a2, 2), 32))
	r1Even := circuit.Sum(circuit.Cell(a2, 3), circuit.ScalePow2(circuit.Cell(a2, 4), 32))
	r1Odd := circuit.Sum(circuit.Cell(a2, 5), circuit.ScalePow2(circuit.Cell(a2, 6), 32))
	//
	return circuit.Sum(
		r0Even,
		circuit.ScalePow2(r0Odd, 1),
		circuit.ScalePow2(circuit.Sum(r1Even, circuit.ScalePow2(r1Odd, 1)), 64),
	)
}

// spreadOutputJoins ties the four dense 32-bit join cells of the standard
// spread-output band to their looked-up 16-bit halves.
func spreadOutputJoins(a1, a3 circuit.Column) []circuit.Constraint {
	join := func(name string, joinRot, loRot, hiRot int) circuit.Constraint {
		return circuit.Constraint{
			Name: name,
			Expr: circuit.Sub(
				circuit.Cell(a3, joinRot),
				circuit.Sum(circuit.Cell(a1, loRot), circuit.ScalePow2(circuit.Cell(a1, hiRot), 16)),
			),
		}
	}
	//
	return []circuit.Constraint{
		join("r0_even_join", 2, -1, 0),
		join("r0_odd_join", 3, 1, 2),
		join("r1_even_join", 4, 3, 4),
		join("r1_odd_join", 5, 5, 6),
	}
}
