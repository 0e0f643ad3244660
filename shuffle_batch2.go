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

// tailThreshold2 is the prefix length above which ShuffleBatch2 falls back
// to single-index draws: past this point, n*(n-1) would need a bound at or
// above 2**60, which is still representable, but the point of this phase
// is to keep the k=2 body phase's product comfortably under 2**60 for
// every n it's entered with.
const tailThreshold2 = 1 << 30

// bodyBound2 is the initial bound for the k=2 phase: the smallest
// power-of-two ceiling on n*(n-1) for any n <= tailThreshold2.
const bodyBound2 = 1 << 60

// ShuffleBatch2 shuffles storage in place using batches of two indices per
// RNG draw once the unshuffled prefix is small enough, falling back to one
// index per draw (via PartialShuffleK with k=1) while the prefix is still
// larger than 2**30 elements.
//
// Two phases, walking n down from len(storage) to 0 or 1:
//
//  1. n > 2**30: k=1, bound=n.
//  2. n <= 2**30: k=2, bound threaded from an initial 2**60.
func ShuffleBatch2(storage []uint64, rng RNG) {
	n := len(storage)
	for ; n > tailThreshold2; n-- {
		PartialShuffleK(storage, n, 1, uint64(n), rng)
	}

	bound := uint64(bodyBound2)
	for ; n > 1; n -= 2 {
		bound = PartialShuffleK(storage, n, 2, bound, rng)
	}
}
