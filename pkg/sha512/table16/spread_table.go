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
	"fmt"

	"github.com/consensys/sha512-circuit/pkg/circuit"
	"github.com/consensys/sha512-circuit/pkg/field"
	log "github.com/sirupsen/logrus"
)

// LookupWordWidth is the maximum bit width of a dense value looked up in the
// spread table.  Wider values are decomposed into pieces of at most this
// width, each looked up individually.
const LookupWordWidth = 16

// Tag class boundaries.  A dense value's tag is the number of boundaries at
// or below it, which lets a gate bound a looked-up piece to a class narrower
// than the table width.
const (
	bits11 = 1 << 11
	bits13 = 1 << 13
	bits14 = 1 << 14
	bits23 = 1 << 23
	bits25 = 1 << 25
	bits28 = 1 << 28
	bits42 = 1 << 42
	bits56 = 1 << 56
)

// Tags by class, for use as gate bounds.
const (
	tag11 = 0
	tag13 = 1
	tag14 = 2
	tag16 = 3
)

// getTag returns the tag class of a dense value.
func getTag(input uint64) uint8 {
	switch {
	case input < bits11:
		return 0
	case input < bits13:
		return 1
	case input < bits14:
		return 2
	case input < bits23:
		return 3
	case input < bits25:
		return 4
	case input < bits28:
		return 5
	case input < bits42:
		return 6
	case input < bits56:
		return 7
	default:
		return 8
	}
}

// SpreadWord is an input word for a lookup, pairing a dense bit string with
// its spread form and tag.  Values are well-formed by construction.
type SpreadWord struct {
	// Tag class of the dense value.
	Tag uint8
	// Dense bits, little endian.
	Dense []bool
	// Spread bits, twice the dense length.
	Spread []bool
}

// NewSpreadWord constructs a spread word from a dense little-endian bit
// array of at most 64 bits.
func NewSpreadWord(dense []bool) SpreadWord {
	if len(dense) > 64 {
		panic(fmt.Errorf("dense value of %d bits exceeds 64 bits", len(dense)))
	}
	//
	return SpreadWord{
		Tag:    getTag(lebs2ip(dense)),
		Dense:  dense,
		Spread: spreadBits(dense),
	}
}

// SpreadInputs are the three advice columns bound to the lookup argument.
type SpreadInputs struct {
	// Tag column (a_0).
	Tag circuit.Column
	// Dense column (a_1).
	Dense circuit.Column
	// Spread column (a_2).
	Spread circuit.Column
}

// SpreadTableConfig is the configuration of the spread table chip.
type SpreadTableConfig struct {
	// Input columns bound to the lookup argument.
	Input SpreadInputs
	// The backing table of (tag, dense, spread) rows.
	Table *circuit.Table
}

// ConfigureSpreadTable declares the spread lookup argument over the given
// advice columns.  Only the 16-bit table width is supported; the narrower
// layouts require different output half splits throughout the chip.
func ConfigureSpreadTable(cs *circuit.ConstraintSystem, tag, dense, spread circuit.Column,
	width int) SpreadTableConfig {
	if width != LookupWordWidth {
		panic(fmt.Errorf("unsupported lookup word width %d", width))
	}
	//
	table := cs.AddTable("spread", 3)
	cs.Lookup("spread", []circuit.Column{tag, dense, spread}, table)
	//
	return SpreadTableConfig{
		Input: SpreadInputs{Tag: tag, Dense: dense, Spread: spread},
		Table: table,
	}
}

// LoadSpreadTable populates the spread table with all 2^16 rows.  The table
// is created once at circuit setup and shared by every hash invocation.
func LoadSpreadTable(config SpreadTableConfig) {
	if config.Table.Rows() > 0 {
		return
	}
	//
	for dense := uint64(0); dense < 1<<LookupWordWidth; dense++ {
		spread := interleaveU64(dense)
		//
		config.Table.Append([]field.Element{
			field.Uint64(uint64(getTag(dense))),
			field.Uint64(dense),
			spread.Field(),
		})
	}
	//
	log.Debugf("loaded spread table with %d rows", config.Table.Rows())
}

// SpreadVar is a (dense, spread) pair of cells assigned in the region,
// validated either by the lookup argument or by a short spread gate.
type SpreadVar struct {
	// Tag class of the dense value.
	Tag uint8
	// Assigned dense cell.
	Dense *AssignedBits
	// Assigned spread cell.
	Spread *AssignedBits
}

// SpreadVarWithLookup writes (tag, dense, spread) into the three lookup input
// columns at the given row, binding the row to the lookup argument.
func SpreadVarWithLookup(tr *circuit.Trace, cols *SpreadInputs, row int, word SpreadWord) (*SpreadVar, error) {
	if len(word.Dense) > LookupWordWidth {
		panic(fmt.Errorf("looked-up piece of %d bits exceeds table width", len(word.Dense)))
	}
	//
	if _, err := tr.AssignAdvice(cols.Tag, row, field.Uint64(uint64(word.Tag))); err != nil {
		return nil, err
	}
	//
	dense, err := assignBits(tr, cols.Dense, row, word.Dense)
	if err != nil {
		return nil, err
	}
	//
	spread, err := assignBits(tr, cols.Spread, row, word.Spread)
	if err != nil {
		return nil, err
	}
	//
	return &SpreadVar{word.Tag, dense, spread}, nil
}

// SpreadVarWithoutLookup writes the (dense, spread) pair into arbitrary
// advice cells, for short pieces validated by the 2-/3-bit spread gates
// rather than the table.
func SpreadVarWithoutLookup(tr *circuit.Trace, denseCol circuit.Column, denseRow int,
	spreadCol circuit.Column, spreadRow int, word SpreadWord) (*SpreadVar, error) {
	dense, err := assignBits(tr, denseCol, denseRow, word.Dense)
	if err != nil {
		return nil, err
	}
	//
	spread, err := assignBits(tr, spreadCol, spreadRow, word.Spread)
	if err != nil {
		return nil, err
	}
	//
	return &SpreadVar{word.Tag, dense, spread}, nil
}
