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

// RNG is the contract the shuffle primitives need from a random source: a
// single, infallible way to draw a uniformly random 64-bit word. Seeding
// is deliberately not part of this interface -- it's a property of the
// concrete generator (see rand/lehmer, rand/pcg64, rand/chacha8), not of
// the shuffle.
//
// A type satisfying RNG is borrowed, not owned: the core advances it but
// never reseeds it, and never retains it beyond the call that received it.
type RNG interface {
	Uint64() uint64
}
