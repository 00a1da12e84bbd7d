// Command generate-golden produces deterministic triangle fixtures and
// their expected path values for use in tests and benchmarks.
//
// The expected values come from the production fold, cross-checked against
// an independent exponential reference implementation. The cross-check
// walks every subtree recursively, so it is limited to small heights; the
// fixture file itself can be any size.
//
// Usage:
//
//	generate-golden -rows 15 -seed 42 -out testdata/tri_15.txt
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/mbenard/tricalc/internal/triangle"
)

// checkRowLimit bounds the cross-check: the reference walks 2^(rows-1)
// paths, so anything taller is refused rather than left to run for hours.
const checkRowLimit = 24

func main() {
	rows := flag.Int("rows", 10, "triangle height to generate")
	seed := flag.Int64("seed", 1, "random seed (same seed, same triangle)")
	minVal := flag.Int64("min", 0, "smallest cell value")
	maxVal := flag.Int64("max", 99, "largest cell value")
	outPath := flag.String("out", "", "write the triangle to this file (default stdout comment)")
	check := flag.Bool("check", true, "verify the fold against the exponential reference")
	flag.Parse()

	if *rows < 1 {
		fmt.Fprintln(os.Stderr, "rows must be at least 1")
		os.Exit(1)
	}
	if *minVal > *maxVal {
		fmt.Fprintln(os.Stderr, "min must not exceed max")
		os.Exit(1)
	}
	if *check && *rows > checkRowLimit {
		fmt.Fprintf(os.Stderr, "cross-check is limited to %d rows; rerun with -check=false\n", checkRowLimit)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	cells := genRows(rng, *rows, *minVal, *maxVal)

	tri, err := triangle.FromRows(cells)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generated rows are malformed: %v\n", err)
		os.Exit(1)
	}

	maxSum, err := triangle.MaxPath(tri)
	if err != nil {
		fmt.Fprintf(os.Stderr, "max evaluation failed: %v\n", err)
		os.Exit(1)
	}
	oddEvenSum, err := triangle.MaxOddEvenPath(tri)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oddeven evaluation failed: %v\n", err)
		os.Exit(1)
	}

	if *check {
		if ref := refMax(cells, 0, 0); ref != maxSum {
			fmt.Fprintf(os.Stderr, "max mismatch: fold %d, reference %d (seed %d)\n", maxSum, ref, *seed)
			os.Exit(1)
		}
		if ref := refOddEven(cells, 0, 0); ref != oddEvenSum {
			fmt.Fprintf(os.Stderr, "oddeven mismatch: fold %d, reference %d (seed %d)\n", oddEvenSum, ref, *seed)
			os.Exit(1)
		}
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(tri.String()+"\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", *outPath, err)
			os.Exit(1)
		}
		fmt.Printf("# triangle written to %s\n", *outPath)
	}

	fmt.Printf("# rows=%d seed=%d min=%d max=%d\n", *rows, *seed, *minVal, *maxVal)
	fmt.Printf("max = %d\n", maxSum)
	fmt.Printf("oddeven = %d\n", oddEvenSum)
}

// genRows builds a triangular grid of pseudo-random values in [minVal,
// maxVal], fully determined by the rng state.
func genRows(rng *rand.Rand, rows int, minVal, maxVal int64) [][]int64 {
	span := maxVal - minVal + 1
	cells := make([][]int64, rows)
	for i := range cells {
		row := make([]int64, i+1)
		for j := range row {
			row[j] = minVal + rng.Int63n(span)
		}
		cells[i] = row
	}
	return cells
}

// refMax is the exponential reference for the unconstrained rule: the best
// sum of any route from (i, j) to the bottom row.
func refMax(cells [][]int64, i, j int) int64 {
	v := cells[i][j]
	if i == len(cells)-1 {
		return v
	}
	left := refMax(cells, i+1, j)
	right := refMax(cells, i+1, j+1)
	if left > right {
		return v + left
	}
	return v + right
}

// refOddEven is the exponential reference for the parity rule. The parity
// test applies to a child's best accumulated value: a left child counts
// only when odd, a right child only when even, and a blocked child
// contributes zero.
func refOddEven(cells [][]int64, i, j int) int64 {
	v := cells[i][j]
	if i == len(cells)-1 {
		return v
	}
	left := refOddEven(cells, i+1, j)
	if left%2 == 0 {
		left = 0
	}
	right := refOddEven(cells, i+1, j+1)
	if right%2 != 0 {
		right = 0
	}
	if left > right {
		return v + left
	}
	return v + right
}
