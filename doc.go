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

// Package shuffle implements a batched, uniformly-distributed in-place
// Fisher-Yates shuffle for slices of uint64.
//
// The interesting part of this package is that it amortizes the cost of
// uniform bounded-integer sampling across several swap steps by drawing a
// batch of indices from a single wide random word, using a variant of
// Lemire's nearly-divisionless bounded-sampling trick: the low 64 bits of
// a 128-bit product are threaded from one multiplication to the next,
// supplying every index in the batch from one RNG draw in the common case.
//
// Not cryptographically secure. The RNG is pluggable (see the RNG
// interface and the rand/lehmer, rand/pcg64 and rand/chacha8 packages) and
// the shuffle's security properties are exactly those of the RNG in use.
package shuffle
