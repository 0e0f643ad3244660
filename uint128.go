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

package shuffle

import (
	"fmt"
	"math/bits"
)

// Uint128 is a pair of uint64, treated as a single object to simplify
// calling conventions. It's a struct rather than an array for two reasons:
//
// 1. The go compiler seems better at this.
//
// 2. [0] and [1] are ambiguous, .Lo and .Hi aren't.
type Uint128 struct {
	Lo, Hi uint64 // low-order and high-order uint64 words. Value is `(Hi << 64) | Lo`.
}

// Mul64 returns the full 128-bit product of a and b. This is the core
// operation behind the batched shuffle primitive: scaling a 64-bit draw r
// by a shrinking bound n-j yields both the next index (the high half) and
// a fresh low-order remainder to feed the next scaling (the low half).
func Mul64(a, b uint64) Uint128 {
	hi, lo := bits.Mul64(a, b)
	return Uint128{Lo: lo, Hi: hi}
}

// Add adds value to its receiver in place.
func (u *Uint128) Add(value Uint128) {
	u.Lo += value.Lo
	if u.Lo < value.Lo {
		u.Hi++
	}
	u.Hi += value.Hi
}

// Mul multiplies its receiver by value in place, keeping only the low 128
// bits of the product (arithmetic modulo 2**128). This is what a 128-bit
// multiplicative/permuted congruential generator needs to advance its
// state; it is not needed by the shuffle primitive itself, which only ever
// needs the full 128-bit product of two 64-bit values (see Mul64).
func (u *Uint128) Mul(value Uint128) {
	hi, lo := bits.Mul64(u.Lo, value.Lo)
	hi += u.Lo*value.Hi + u.Hi*value.Lo
	u.Lo, u.Hi = lo, hi
}

// Sub subtracts value from its receiver in place.
func (u *Uint128) Sub(value Uint128) {
	lo := u.Lo
	u.Lo -= value.Lo
	if u.Lo > lo {
		u.Hi--
	}
	u.Hi -= value.Hi
}

// Neg returns the two's complement negation of u: the value that, added
// to u modulo 2**128, yields zero. Used by rand/pcg64 to jump a 128-bit
// LCG state backwards by reframing retreat-by-delta as advance-by-(2**128
// - delta).
func (u Uint128) Neg() Uint128 {
	var n Uint128
	n.Sub(u)
	return n
}

// String provides a string representation.
func (u Uint128) String() string {
	return fmt.Sprintf("0x%x%016x", u.Hi, u.Lo)
}
