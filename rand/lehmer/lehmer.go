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

// Package lehmer implements a 128-bit Lehmer (multiplicative congruential)
// generator: D. H. Lehmer, "Mathematical methods in large-scale computing
// units", Annals of the Computation Laboratory, Harvard Univ. 26 (1951).
//
// The state is a single 128-bit word multiplied by a fixed odd constant
// each step; Uint64 returns the high 64 bits of the product, which is the
// generator's highest-quality output half.
package lehmer

import "github.com/lemire/batched-random"

// multiplier is the constant this generator's state is multiplied by on
// each step. It is not tunable: changing it changes the generator's
// period and statistical properties.
const multiplier = 0xda942042e4dd58b5

// Generator is a 128-bit Lehmer generator. The zero value is not usable;
// construct one with New.
type Generator struct {
	state shuffle.Uint128
}

// New returns a Generator seeded deterministically from seed. Seeding
// expands a single 64-bit seed into the 128 bits of initial state via two
// splitmix64 draws, matching the seeding scheme this generator's
// reference implementation uses.
func New(seed uint64) *Generator {
	return &Generator{
		state: shuffle.Uint128{
			Hi: splitmix64(seed),
			Lo: splitmix64(seed + 1),
		},
	}
}

// Uint64 advances the generator one step and returns the high 64 bits of
// the resulting 128-bit state, implementing the RNG interface that the
// shuffle package's drivers consume.
func (g *Generator) Uint64() uint64 {
	g.state.Mul(shuffle.Uint128{Lo: multiplier})
	return g.state.Hi
}

// splitmix64 is the stateless mixing function used to expand a 64-bit
// seed into the wider state this generator needs.
func splitmix64(index uint64) uint64 {
	z := index * 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
