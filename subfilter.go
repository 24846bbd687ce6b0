package blockbloom

import "math/bits"

// Subfilter is a strategy for marking and checking membership bits inside
// one bucket (a contiguous span of Width() elements of B). The filter
// engine (engine.go) is responsible for picking which bucket a given hash
// round touches; the Subfilter only ever sees the slice for that bucket
// and the hash value to derive bit positions from.
//
// Mark and Check must always derive the same sequence of bit positions
// from the same hash: that is the only correctness requirement for the
// no-false-negatives guarantee, independent of exactly which positions
// get chosen.
type Subfilter[B Block] interface {
	// Width is the number of B elements a single bucket spans.
	Width() int

	// KPrime is the number of bits this subfilter sets per Mark call
	// (and checks per Check call).
	KPrime() int

	// Mark sets KPrime bits inside block, derived from hash.
	Mark(block []B, hash uint64)

	// Check reports whether all KPrime bits derived from hash are set
	// inside block.
	Check(block []B, hash uint64) bool

	// FPR returns the analytic false-positive contribution of this
	// subfilter for i elements hashed into a bucket whose effective
	// total width is w bits (w = 2*Width()*elemBits - strideBits,
	// collapsing to Width()*elemBits when buckets don't overlap; see
	// DESIGN.md OQ-3). Used only by the capacity/FPR solver.
	FPR(i, w float64) float64
}

// extractor implements the shared bit-extraction protocol used by both
// BlockSubfilter and MultiblockSubfilter: it turns a 64-bit hash into a
// stream of indices in [0, width), periodically remixing the hash via
// mulxMix so a single 64-bit value can safely yield more bits than it has
// of good entropy to spare.
//
// The hash handed to an extractor always arrives with its low bit forced
// to 1 by the bucket selector's MCG step (see bucket.go); the first
// right-shift below discards that known-useless region before any bits
// are read, matching the rest of the stream's treatment.
type extractor struct {
	hash    uint64
	shift   uint
	mask    uint64
	rehashK int
	i       int
}

func newExtractor(hash uint64, widthBits int) extractor {
	shift := uint(bits.Len(uint(widthBits - 1)))
	rehashK := (64 - int(shift)) / int(shift)
	if rehashK < 1 {
		rehashK = 1
	}
	return extractor{
		hash:    hash >> shift,
		shift:   shift,
		mask:    uint64(widthBits - 1),
		rehashK: rehashK,
	}
}

// next returns the next bit index in [0, widthBits).
func (e *extractor) next() uint64 {
	if e.i > 0 && e.i%e.rehashK == 0 {
		e.hash = mulxMix(e.hash)
	}
	idx := e.hash & e.mask
	e.hash >>= e.shift
	e.i++
	return idx
}
