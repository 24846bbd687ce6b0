package blockbloom

import "math"

// BlockSubfilter sets and checks KPrime bits inside a single Block
// element — the classical cache-line-blocked Bloom filter cell. One
// memory word, one cache line touched, K' independent-looking bit probes
// drawn from a single hash via the shared extractor.
type BlockSubfilter[B Block] struct {
	kPrime int
}

// NewBlockSubfilter constructs a BlockSubfilter that sets kPrime bits per
// element. kPrime must be at least 1 and must not exceed the bit width of
// B (setting more bits than a block has would just keep re-setting bits
// that are already 1).
func NewBlockSubfilter[B Block](kPrime int) *BlockSubfilter[B] {
	if kPrime < 1 {
		panic("blockbloom: BlockSubfilter requires kPrime >= 1")
	}
	if kPrime > blockWidthBits[B]() {
		panic("blockbloom: BlockSubfilter kPrime exceeds the bit width of B")
	}
	return &BlockSubfilter[B]{kPrime: kPrime}
}

func (s *BlockSubfilter[B]) Width() int  { return 1 }
func (s *BlockSubfilter[B]) KPrime() int { return s.kPrime }

func (s *BlockSubfilter[B]) Mark(block []B, hash uint64) {
	e := newExtractor(hash, blockWidthBits[B]())
	var x B
	for i := 0; i < s.kPrime; i++ {
		x |= B(1) << e.next()
	}
	block[0] |= x
}

func (s *BlockSubfilter[B]) Check(block []B, hash uint64) bool {
	e := newExtractor(hash, blockWidthBits[B]())
	var want B
	for i := 0; i < s.kPrime; i++ {
		want |= B(1) << e.next()
	}
	return block[0]&want == want
}

// FPR implements the classical blocked-bloom per-cell false positive
// formula: after i elements, each contributing kPrime bit-set attempts to
// the same w-bit cell, the probability all kPrime bits this lookup checks
// happen to already be set is (1-(1-1/w)^(i*kPrime))^kPrime.
func (s *BlockSubfilter[B]) FPR(i, w float64) float64 {
	kp := float64(s.kPrime)
	return math.Pow(1-math.Pow(1-1/w, i*kp), kp)
}
