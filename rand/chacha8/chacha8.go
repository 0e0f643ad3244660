// Copyright 2019 Pilosa Corp.
//
// Licensed under the BSD 3-Clause license (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
//     https://opensource.org/licenses/BSD-3-Clause
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package chacha8 implements an 8-round reduced ChaCha stream cipher used
// as a general-purpose RNG (the construction nixberg/chacha-rng-c and
// this package's upstream C reference both use): full ChaCha key and
// nonce setup, but only 4 of the usual 10 double-rounds, trading
// cryptographic security margin for speed in a context where these
// numbers never leave the process. golang.org/x/crypto/chacha20 is not a
// fit here: it hardcodes the round count at 20 and has no way to ask for
// 8.
package chacha8

import "math/bits"

// blockWords is the size of one ChaCha block in 32-bit words: a 4-word
// constant, 8-word key, 2-word counter and 2-word nonce.
const blockWords = 16

// Generator streams 64-bit words from the keystream of an 8-round ChaCha
// cipher. The zero value is not usable; construct one with New.
type Generator struct {
	input  [blockWords]uint32
	output [blockWords]uint32
	index  int // next unconsumed word of output, 0..blockWords
}

// New returns a Generator whose 256-bit key is expanded deterministically
// from seed via splitmix64, with the given stream (nonce) identifying an
// independent substream of the same key -- two generators built from the
// same seed but different streams never collide.
func New(seed uint64, stream uint64) *Generator {
	g := &Generator{}
	g.input[0] = 0x61707865
	g.input[1] = 0x3320646e
	g.input[2] = 0x79622d32
	g.input[3] = 0x6b206574

	state := seed
	for i := 4; i < 12; i++ {
		state = splitmix64(state)
		g.input[i] = uint32(state)
	}

	g.input[12] = 0
	g.input[13] = 0
	g.input[14] = uint32(stream)
	g.input[15] = uint32(stream >> 32)

	g.index = blockWords
	return g
}

// Uint64 returns the next 64-bit word of keystream, generating (and
// counting forward) a fresh block once the current one is exhausted.
func (g *Generator) Uint64() uint64 {
	if g.index >= blockWords {
		g.block()
		g.index = 0
	}
	lo := g.output[g.index]
	hi := g.output[g.index+1]
	g.index += 2
	return uint64(hi)<<32 | uint64(lo)
}

// block runs the 8-round ChaCha core over the current input state,
// writes the result (input + permuted working state) into output, and
// advances the 64-bit block counter held in input[12:14].
func (g *Generator) block() {
	working := g.input
	for i := 0; i < 4; i++ {
		doubleRound(&working)
	}
	for i := range g.output {
		g.output[i] = g.input[i] + working[i]
	}

	g.input[12]++
	if g.input[12] == 0 {
		g.input[13]++
	}
}

// doubleRound applies one column round followed by one diagonal round,
// the quarter-round pattern from the ChaCha specification (Bernstein,
// "ChaCha, a variant of Salsa20", section 2.3).
func doubleRound(state *[blockWords]uint32) {
	quarterRound(state, 0, 4, 8, 12)
	quarterRound(state, 1, 5, 9, 13)
	quarterRound(state, 2, 6, 10, 14)
	quarterRound(state, 3, 7, 11, 15)
	quarterRound(state, 0, 5, 10, 15)
	quarterRound(state, 1, 6, 11, 12)
	quarterRound(state, 2, 7, 8, 13)
	quarterRound(state, 3, 4, 9, 14)
}

func quarterRound(state *[blockWords]uint32, a, b, c, d int) {
	state[a] += state[b]
	state[d] = bits.RotateLeft32(state[d]^state[a], 16)
	state[c] += state[d]
	state[b] = bits.RotateLeft32(state[b]^state[c], 12)
	state[a] += state[b]
	state[d] = bits.RotateLeft32(state[d]^state[a], 8)
	state[c] += state[d]
	state[b] = bits.RotateLeft32(state[b]^state[c], 7)
}

func splitmix64(state uint64) uint64 {
	state += 0x9E3779B97F4A7C15
	z := state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
