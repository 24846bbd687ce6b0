package blockbloom

import "math/bits"

// phiInverse64 is floor(2^64 / phi), the odd 64-bit constant boost::bloom
// and the Kudu block filter both use as a fixed multiplier for avalanching
// a hash value that isn't already known to avalanche well.
const phiInverse64 = 0x9E3779B97F4A7C15

// umul128 returns the low and high 64-bit halves of the full 128-bit
// product x*y. The Go compiler lowers math/bits.Mul64 to a hardware
// multiply where the architecture has one and to portable code
// otherwise, so no hand-written schoolbook fallback is needed here the
// way boost's C++ umul128 requires one for pre-__int128 compilers.
func umul128(x, y uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(x, y)
	return lo, hi
}

// mulxMix avalanches x by multiplying it against phiInverse64 and folding
// the high and low halves of the 128-bit product together. It is applied
// wherever a hash value needs better bit dispersion than its source
// provides: the per-round bit extractor's periodic remix, and the
// non-avalanching-hash fallback in the post-mixer.
func mulxMix(x uint64) uint64 {
	lo, hi := umul128(x, phiInverse64)
	return lo ^ hi
}
