package blockbloom

import "math"

// kuduRehashSalts are the eight 32-bit rehashing constants used by the
// Apache Kudu split-block Bloom filter (src/kudu/util/block_bloom_filter.h),
// the same constants boost::bloom's AVX2 fast_multiblock32 hardcodes and
// Grafana Loki/Tempo's pure-Go split-block filter reuses verbatim.
var kuduRehashSalts = [8]uint32{
	0x47b6137b, 0x44974d91, 0x8824ad5b, 0xa2b7289d,
	0x705495c7, 0x2df1424b, 0x9efc4947, 0x5c6bfb31,
}

// fastMultiblock32LaneShift is 32-5: each lane contributes a 5-bit index
// into its own 32-bit word.
const fastMultiblock32LaneShift = 32 - 5

// FastMultiblock32 is the portable scalar equivalent of boost::bloom's
// AVX2 fast_multiblock32<K>: a multiblock subfilter fixed to uint32
// elements that derives each lane's bit position with one 32-bit multiply
// and shift instead of the shared extractor's generic windowed-remix
// protocol. Go has no portable way to express the AVX2 intrinsics this is
// normally vectorized with, so this computes the same per-lane
// multiply-shift positions Grafana Loki and Tempo's split-block filters
// use on non-AVX2 paths, one lane at a time in a loop; Check stops at the
// first lane whose bit is unset.
//
// K' beyond 8 is handled by chunking into groups of at most 8 lanes and
// remixing the hash between chunks via mulxMix, exactly as boost's own
// fallback (multiblock<uint32,K>) would, generalizing the Kudu filter's
// fixed K'=8 split.
type FastMultiblock32 struct {
	kPrime int
}

// NewFastMultiblock32 constructs a FastMultiblock32 subfilter with kPrime
// bits set, one per uint32 lane.
func NewFastMultiblock32(kPrime int) *FastMultiblock32 {
	if kPrime < 1 {
		panic("blockbloom: FastMultiblock32 requires kPrime >= 1")
	}
	return &FastMultiblock32{kPrime: kPrime}
}

func (s *FastMultiblock32) Width() int  { return s.kPrime }
func (s *FastMultiblock32) KPrime() int { return s.kPrime }

func (s *FastMultiblock32) Mark(block []uint32, hash uint64) {
	offset := 0
	for remaining := s.kPrime; remaining > 0; {
		chunk := remaining
		if chunk > 8 {
			chunk = 8
		}
		x := uint32(hash)
		for lane := 0; lane < chunk; lane++ {
			pos := (x * kuduRehashSalts[lane]) >> fastMultiblock32LaneShift
			block[offset+lane] |= uint32(1) << pos
		}
		offset += chunk
		remaining -= chunk
		if remaining > 0 {
			hash = mulxMix(hash)
		}
	}
}

func (s *FastMultiblock32) Check(block []uint32, hash uint64) bool {
	offset := 0
	for remaining := s.kPrime; remaining > 0; {
		chunk := remaining
		if chunk > 8 {
			chunk = 8
		}
		x := uint32(hash)
		for lane := 0; lane < chunk; lane++ {
			pos := (x * kuduRehashSalts[lane]) >> fastMultiblock32LaneShift
			want := uint32(1) << pos
			if block[offset+lane]&want != want {
				return false
			}
		}
		offset += chunk
		remaining -= chunk
		if remaining > 0 {
			hash = mulxMix(hash)
		}
	}
	return true
}

// FPR is statistically equivalent to MultiblockSubfilter[uint32]: each
// lane is its own independent 32-bit cell.
func (s *FastMultiblock32) FPR(i, w float64) float64 {
	kp := float64(s.kPrime)
	wCell := w / kp
	return math.Pow(1-math.Pow(1-1/wCell, i), kp)
}
