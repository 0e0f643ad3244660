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

// Package pcg64 implements a 128-state, 64-output permuted congruential
// generator (O'Neill's PCG, variant XSL-RR 128/64): a 128-bit linear
// congruential generator whose raw state is never output directly, only
// through a rotate applied to a combination of its two halves.
package pcg64

import "github.com/lemire/batched-random"

// multiplier and increment are the published PCG defaults for the
// 128-bit LCG (pcg_engines::setseq_xsl_rr_128_64 in the reference C++
// implementation), split into hi/lo halves for Uint128 arithmetic.
var (
	multiplier = shuffle.Uint128{Hi: 0x2360ed051fc65da4, Lo: 0x4385df649fccf645}
	increment  = shuffle.Uint128{Hi: 0x5851f42d4c957f2d, Lo: 0x14057b7ef767814f}
)

// PCG64 is a 128-bit-state, 64-bit-output permuted congruential
// generator. The zero value is not usable; construct one with New and
// Seed, chained as New().Seed(...).
type PCG64 struct {
	state shuffle.Uint128
	inc   shuffle.Uint128
}

// New returns an unseeded PCG64; call Seed before drawing from it.
func New() *PCG64 {
	return &PCG64{}
}

// Seed sets the generator's 128-bit state and 128-bit sequence selector
// from their hi/lo halves and returns the receiver, so construction reads
// as pcg64.New().Seed(stateHi, stateLo, seqHi, seqLo).
func (p *PCG64) Seed(stateHi, stateLo, seqHi, seqLo uint64) *PCG64 {
	p.inc = shuffle.Uint128{
		Hi: (seqHi << 1) | (seqLo >> 63),
		Lo: seqLo << 1,
	}
	p.inc.Lo |= 1 // the increment must be odd for the LCG to have full period

	p.state = shuffle.Uint128{}
	p.step()
	p.state.Add(shuffle.Uint128{Hi: stateHi, Lo: stateLo})
	p.step()
	return p
}

func (p *PCG64) step() {
	p.state.Mul(multiplier)
	p.state.Add(p.inc)
}

// Uint64 advances the generator one step and returns its XSL-RR output:
// the high and low halves of the state xored together, then rotated
// right by the top 6 bits of the (pre-xor) high half.
func (p *PCG64) Uint64() uint64 {
	p.step()
	return output(p.state)
}

// Random is an alias for Uint64, matching the naming this generator's
// reference implementation uses.
func (p *PCG64) Random() uint64 {
	return p.Uint64()
}

func output(state shuffle.Uint128) uint64 {
	rot := state.Hi >> 58
	xored := state.Hi ^ state.Lo
	return rotr64(xored, rot)
}

func rotr64(x uint64, n uint64) uint64 {
	n &= 63
	if n == 0 {
		return x
	}
	return (x >> n) | (x << (64 - n))
}

// Advance moves the generator forward by delta steps in O(log delta)
// time using the standard LCG jump-ahead identity, without materializing
// the intervening outputs.
func (p *PCG64) Advance(delta uint64) {
	p.state = advanceState(p.state, shuffle.Uint128{Lo: delta}, multiplier, p.inc)
}

// Retreat moves the generator backward by delta steps, implemented as an
// advance by 2**128 - delta (the jump-ahead identity is defined for any
// 128-bit displacement, and going backward delta steps is the same as
// going forward all the way around the state space except for delta
// steps).
func (p *PCG64) Retreat(delta uint64) {
	backward := shuffle.Uint128{Lo: delta}.Neg()
	p.state = advanceState(p.state, backward, multiplier, p.inc)
}

// advanceState computes state*mult^delta + inc*(mult^(delta-1) + ... + 1)
// without a delta-length loop, by repeated squaring of the per-step
// multiplier and increment (the same construction the reference PCG
// implementation's pcg_advance_lcg uses).
func advanceState(state, delta, mult, inc shuffle.Uint128) shuffle.Uint128 {
	accMult := shuffle.Uint128{Lo: 1}
	accInc := shuffle.Uint128{}
	curMult := mult
	curInc := inc

	for delta.Lo != 0 || delta.Hi != 0 {
		if delta.Lo&1 != 0 {
			accMult.Mul(curMult)
			accInc.Mul(curMult)
			accInc.Add(curInc)
		}
		next := curInc
		next.Mul(curMult)
		next.Add(curInc)
		curInc = next
		curMult.Mul(curMult)

		carry := delta.Hi & 1
		delta.Hi >>= 1
		delta.Lo = (delta.Lo >> 1) | (carry << 63)
	}

	accMult.Mul(state)
	accMult.Add(accInc)
	return accMult
}
