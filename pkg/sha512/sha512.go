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

// Package sha512 provides a gadget which constrains SHA-512 invocations
// inside a circuit, at a granularity of 64-bit words.  The heavy lifting is
// done by a chip implementing the Instructions interface; see the table16
// subpackage for the 16-bit-table realization.
package sha512

import (
	"encoding/binary"
	"fmt"
)

// BlockSize is the size of a SHA-512 block, in 64-bit words.
const BlockSize = 16

// DigestSize is the size of a SHA-512 digest, in 64-bit words.
const DigestSize = 8

// BlockWord is a 64-bit word of a SHA-512 input block or digest.  The wire
// order is big-endian in the SHA-512 sense, but the circuit treats it as a
// native 64-bit value.
type BlockWord uint64

// State is an opaque handle on a chip's internal 8-word hasher state.  Chips
// produce and consume their own concrete representation.
type State any

// Instructions is the set of circuit instructions required to use the
// gadget.
type Instructions interface {
	// InitializationVector places the SHA-512 IV in the circuit, returning
	// the initial state.
	InitializationVector() (State, error)
	// Initialization creates an initialized state from the output state of a
	// previous block.
	Initialization(state State) (State, error)
	// Compress processes a block of input starting from the given
	// initialized state, returning the resulting state.
	Compress(state State, input [BlockSize]BlockWord) (State, error)
	// Digest converts the given state into a message digest.
	Digest(state State) ([DigestSize]BlockWord, error)
}

// Hasher constrains a SHA-512 invocation over a sequence of input words,
// absorbing whole blocks as they fill and caching any partial block.
type Hasher struct {
	chip     Instructions
	state    State
	curBlock []BlockWord
	// Total length absorbed so far, in bits.
	length uint64
}

// New creates a new hasher instance whose initial state is the IV.
func New(chip Instructions) (*Hasher, error) {
	state, err := chip.InitializationVector()
	if err != nil {
		return nil, err
	}
	//
	return &Hasher{
		chip:     chip,
		state:    state,
		curBlock: make([]BlockWord, 0, BlockSize),
	}, nil
}

// Update absorbs data into the hasher, compressing every block as it fills.
func (p *Hasher) Update(data []BlockWord) error {
	// Words absorbed by earlier calls.
	previous := p.length / 64
	p.length += uint64(len(data)) * 64
	//
	// Fill the current block, if possible.
	remaining := BlockSize - len(p.curBlock)
	//
	if len(data) < remaining {
		p.curBlock = append(p.curBlock, data...)
		return nil
	}
	//
	p.curBlock = append(p.curBlock, data[:remaining]...)
	data = data[remaining:]
	// Process the now-full current block.  Once an earlier block has been
	// compressed the state is an output state, which is initialized first.
	state := p.state
	//
	if previous >= BlockSize {
		var err error
		//
		if state, err = p.chip.Initialization(state); err != nil {
			return err
		}
	}
	//
	state, err := p.chip.Compress(state, [BlockSize]BlockWord(p.curBlock))
	if err != nil {
		return err
	}
	//
	p.state = state
	p.curBlock = p.curBlock[:0]
	// Process any additional full blocks.
	for len(data) >= BlockSize {
		if p.state, err = p.chip.Initialization(p.state); err != nil {
			return err
		}
		//
		if p.state, err = p.chip.Compress(p.state, [BlockSize]BlockWord(data[:BlockSize])); err != nil {
			return err
		}
		//
		data = data[BlockSize:]
	}
	// Cache the remaining partial block, if any.
	p.curBlock = append(p.curBlock, data...)
	//
	return nil
}

// Finalize zero-pads and compresses any cached partial block, then returns
// the 8-word digest.  The caller must already have injected the SHA-512
// padding words (the 1 bit and the big-endian bit length); see PadMessage.
func (p *Hasher) Finalize() ([DigestSize]BlockWord, error) {
	if len(p.curBlock) > 0 {
		var block [BlockSize]BlockWord
		//
		copy(block[:], p.curBlock)
		// A hasher which has compressed no block yet still holds the
		// initialized IV state.
		state := p.state
		//
		if p.length/64 >= BlockSize {
			var err error
			//
			if state, err = p.chip.Initialization(state); err != nil {
				return [DigestSize]BlockWord{}, err
			}
		}
		//
		state, err := p.chip.Compress(state, block)
		if err != nil {
			return [DigestSize]BlockWord{}, err
		}
		//
		p.state = state
		p.curBlock = p.curBlock[:0]
	}
	//
	return p.chip.Digest(p.state)
}

// Digest is a convenience function computing the digest of the given data in
// one call, handling hasher creation, data feeding and finalization.
func Digest(chip Instructions, data []BlockWord) ([DigestSize]BlockWord, error) {
	hasher, err := New(chip)
	if err != nil {
		return [DigestSize]BlockWord{}, err
	}
	//
	if err := hasher.Update(data); err != nil {
		return [DigestSize]BlockWord{}, err
	}
	//
	return hasher.Finalize()
}

// PadMessage encodes an arbitrary byte message into whole 1024-bit blocks
// using the SHA-512 padding rule: a single 1 bit, the minimum number of 0
// bits so that the length is 896 mod 1024, then the 128-bit big-endian bit
// length.  This is the outer collaborator of the circuit core; the result
// length is always a multiple of BlockSize.
func PadMessage(msg []byte) []BlockWord {
	bitlen := uint64(len(msg)) * 8
	// Message, 0x80 marker, zero pad to 112 mod 128, 16-byte length.
	padded := make([]byte, 0, len(msg)+128)
	padded = append(padded, msg...)
	padded = append(padded, 0x80)
	//
	for len(padded)%128 != 112 {
		padded = append(padded, 0x00)
	}
	// Upper 64 bits of the 128-bit length are zero for any addressable
	// message.
	padded = binary.BigEndian.AppendUint64(padded, 0)
	padded = binary.BigEndian.AppendUint64(padded, bitlen)
	//
	words := make([]BlockWord, len(padded)/8)
	//
	for i := range words {
		words[i] = BlockWord(binary.BigEndian.Uint64(padded[i*8:]))
	}
	//
	return words
}

// DigestBytes renders a digest as the standard 64-byte big-endian output.
func DigestBytes(digest [DigestSize]BlockWord) []byte {
	var out []byte
	//
	for _, word := range digest {
		out = binary.BigEndian.AppendUint64(out, uint64(word))
	}
	//
	return out
}

// DigestHex renders a digest as the standard 128-character hex string.
func DigestHex(digest [DigestSize]BlockWord) string {
	return fmt.Sprintf("%x", DigestBytes(digest))
}
