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

// Command batched-bench times the shuffle drivers in this module against
// each of its RNG implementations, across a range of array sizes, and
// prints a table of nanoseconds-per-element.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/lemire/batched-random/rand/chacha8"
	"github.com/lemire/batched-random/rand/lehmer"
	"github.com/lemire/batched-random/rand/pcg64"

	"github.com/lemire/batched-random"
)

func main() {
	repeats := flag.Int("repeats", 5, "number of timed repetitions per (driver, rng, n) combination")
	seed := flag.Int64("seed", 1, "seed for every RNG, for reproducible timings")
	quiet := flag.Bool("quiet", false, "suppress the progress bar")
	flag.Parse()

	sizes := []int{1 << 6, 1 << 12, 1 << 18, 1 << 24}
	if flag.NArg() > 0 {
		var err error
		sizes, err = parseSizes(flag.Args())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	drivers := []struct {
		name string
		run  func([]uint64, shuffle.RNG)
	}{
		{"ShuffleOne", shuffle.ShuffleOne},
		{"ShuffleBatch2", shuffle.ShuffleBatch2},
		{"ShuffleBatch23456", shuffle.ShuffleBatch23456},
	}

	rngs := []struct {
		name string
		new  func() shuffle.RNG
	}{
		{"lehmer", func() shuffle.RNG { return lehmer.New(uint64(*seed)) }},
		{"pcg64", func() shuffle.RNG { return pcg64.New().Seed(uint64(*seed), uint64(*seed), 0, 1) }},
		{"chacha8", func() shuffle.RNG { return chacha8.New(uint64(*seed), 0) }},
	}

	total := len(drivers) * len(rngs) * len(sizes) * *repeats
	var bar *pb.ProgressBar
	if !*quiet {
		bar = pb.StartNew(total)
		defer bar.Finish()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "driver\trng\tn\tns/elem (mean)\tns/elem (stddev)")

	for _, d := range drivers {
		for _, r := range rngs {
			for _, n := range sizes {
				samples := make([]float64, *repeats)
				storage := make([]uint64, n)
				for i := 0; i < *repeats; i++ {
					for j := range storage {
						storage[j] = uint64(j)
					}
					rng := r.new()
					start := time.Now()
					d.run(storage, rng)
					elapsed := time.Since(start)
					samples[i] = float64(elapsed.Nanoseconds()) / float64(n)
					if bar != nil {
						bar.Increment()
					}
				}
				mean, std := stat.MeanStdDev(samples, nil)
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n", d.name, r.name, n, mean, std)
			}
		}
	}
	w.Flush()
}

func parseSizes(args []string) ([]int, error) {
	sizes := make([]int, len(args))
	for i, a := range args {
		var n int
		if _, err := fmt.Sscanf(a, "%d", &n); err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", a, err)
		}
		sizes[i] = n
	}
	return sizes, nil
}
