// Command bloomtune estimates filter capacity and false positive rate
// without having to build a filter first. It wraps the same solver the
// library uses internally (blockbloom.CapacityFor / blockbloom.FPRFor).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/student/blockbloom"
)

func main() {
	var (
		n          = flag.Uint64("n", 0, "expected number of inserted elements")
		fpr        = flag.Float64("fpr", 0.01, "target false positive rate, for capacity mode")
		m          = flag.Uint64("m", 0, "capacity in bits; when nonzero, selects fpr mode and -fpr is ignored")
		k          = flag.Int("k", 4, "number of independent rounds")
		kPrime     = flag.Int("kprime", 4, "bits set per round")
		strategy   = flag.String("strategy", "block", "subfilter strategy: block, multiblock, or fastmultiblock32")
		strideElem = flag.Int("stride", 0, "bucket stride in elements (0 means no overlap)")
	)
	flag.Parse()

	if *n == 0 {
		fmt.Fprintln(os.Stderr, "bloomtune: -n is required")
		os.Exit(2)
	}

	switch *strategy {
	case "block":
		run(blockbloom.NewBlockSubfilter[uint64](*kPrime), *k, *strideElem, *n, *m, *fpr)
	case "multiblock":
		run(blockbloom.NewMultiblockSubfilter[uint64](*kPrime), *k, *strideElem, *n, *m, *fpr)
	case "fastmultiblock32":
		run(blockbloom.NewFastMultiblock32(*kPrime), *k, *strideElem, *n, *m, *fpr)
	default:
		fmt.Fprintf(os.Stderr, "bloomtune: unknown strategy %q\n", *strategy)
		os.Exit(2)
	}
}

func run[B blockbloom.Block](sf blockbloom.Subfilter[B], k, stride int, n, m uint64, fpr float64) {
	if m == 0 {
		capacity, err := blockbloom.CapacityFor[B](sf, k, stride, n, fpr)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bloomtune:", err)
			os.Exit(1)
		}
		fmt.Printf("capacity_bits=%d capacity_bytes=%d bits_per_element=%.2f\n",
			capacity, capacity/8, float64(capacity)/float64(n))
		return
	}
	estimate := blockbloom.FPRFor[B](sf, k, stride, n, m)
	fmt.Printf("fpr=%.6f bits_per_element=%.2f\n", estimate, float64(m)/float64(n))
}
