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

// Phase-boundary constants for ShuffleBatch23456. Each threshold is the n
// at and below which the *next* phase runs, and for every such n that
// phase's batch size keeps n*(n-1)*...*(n-k+1) under the paired
// power-of-two ceiling; each ceiling
// is loose enough that PartialShuffleK's fast path (comparing against
// bound rather than the exact product) is rejected only rarely.
const (
	threshold23 = 1 << 19
	threshold34 = 1 << 14
	threshold45 = 1 << 11
	threshold56 = 1 << 9
	threshold6C = 6 // below this, batches of 6 no longer fit

	bound2 = 1 << 60
	bound3 = 1 << 57
	bound4 = 1 << 56
	bound5 = 1 << 55
	bound6 = 1 << 54

	cleanupBound = 720 // 6!
)

// ShuffleBatch23456 shuffles storage in place, increasing the batch size
// as the unshuffled prefix shrinks so that n*(n-1)*...*(n-k+1) stays under
// 64 bits while drawing as many indices as possible from each RNG word:
//
//	phase   n range          k   initial bound
//	1       n > 2**30        1   n
//	2       2**19 < n <=2**30 2   2**60
//	3       2**14 < n <=2**19 3   2**57
//	4       2**11 < n <=2**14 4   2**56
//	5       2**9  < n <=2**11 5   2**55
//	6       6     < n <=2**9  6   2**54
//	7       n <= 6 (n > 1)    n-1 720
//
// Between phases the running bound is not carried across the k change --
// it's re-seeded to the tabulated power of two for the new phase.
func ShuffleBatch23456(storage []uint64, rng RNG) {
	n := len(storage)

	for ; n > tailThreshold2; n-- {
		PartialShuffleK(storage, n, 1, uint64(n), rng)
	}

	bound := uint64(bound2)
	for ; n > threshold23; n -= 2 {
		bound = PartialShuffleK(storage, n, 2, bound, rng)
	}

	bound = uint64(bound3)
	for ; n > threshold34; n -= 3 {
		bound = PartialShuffleK(storage, n, 3, bound, rng)
	}

	bound = uint64(bound4)
	for ; n > threshold45; n -= 4 {
		bound = PartialShuffleK(storage, n, 4, bound, rng)
	}

	bound = uint64(bound5)
	for ; n > threshold56; n -= 5 {
		bound = PartialShuffleK(storage, n, 5, bound, rng)
	}

	bound = uint64(bound6)
	for ; n > threshold6C; n -= 6 {
		bound = PartialShuffleK(storage, n, 6, bound, rng)
	}

	if n > 1 {
		PartialShuffleK(storage, n, n-1, cleanupBound, rng)
	}
}
