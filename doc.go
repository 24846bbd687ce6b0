// Package blockbloom implements a configurable, cache-aware Bloom filter
// family: one generic bit-array engine shared by three interchangeable
// subfilter strategies (block, multiblock, and fast_multiblock32), a
// hash post-mixer that only pays for avalanching when the supplied hash
// needs it, and an analytic capacity/false-positive-rate solver.
//
// # Choosing a subfilter
//
// BlockSubfilter touches exactly one B-sized cache line per
// Insert/MayContain round and sets K' bits inside it — the cheapest
// option, at the cost of a higher false positive rate for a given total
// bit budget once K' grows much past 4 or 5.
//
// MultiblockSubfilter spreads K' bits across K' separate cells (one bit
// set per cell), touching more memory per round but getting a
// meaningfully lower false positive rate at the same K'.
//
// FastMultiblock32 is the split-block layout Kudu and Parquet bloom
// filters use: statistically equivalent to MultiblockSubfilter[uint32],
// implemented with the same branch-free multiply-shift lane arithmetic
// those filters use instead of this package's general windowed-remix bit
// extractor.
//
// # Choosing parameters
//
// Use NewFor (or one of NewBlockFilter / NewMultiblockFilter /
// NewFastMultiblock32Filter) with an expected element count and a target
// false positive rate; CapacityFor and FPRFor are exposed directly for
// callers who want to explore the tradeoff themselves before
// constructing a filter.
//
// # Concurrency
//
// A Filter supports any number of concurrent MayContain readers as long
// as no Insert, Reset, Clear, CombineOr, CombineAnd, or UnmarshalBinary
// call overlaps with them. There is no atomic or sharded variant: that is
// a deliberate scope decision, not an oversight (see DESIGN.md).
//
// # References
//
//   - Lopez Munoz, "Boost.Bloom" — the generalized block/multiblock/
//     fast_multiblock32 subfilter model this package's engine follows.
//   - Dillinger and Manolios, "Bloom Filters in Probabilistic
//     Verification" — k-extraction from a single hash via repeated
//     multiplication, the technique behind the shared bit extractor.
//   - Kudu's block_bloom_filter.h (Apache Kudu) and Parquet's split-block
//     Bloom filter — the eight-lane constant-multiply-shift scheme
//     FastMultiblock32 implements.
package blockbloom
