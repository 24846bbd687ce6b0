package blockbloom

// roundRNG implements the multiplicative-congruential-generator +
// fast-range bucket selection boost::bloom calls mcg_and_fastrange: given
// a 64-bit odd hash, repeatedly multiplying it by a fixed odd multiplier
// rng and taking the high 64 bits of the 128-bit product yields a value
// uniformly distributed across [0, rng) (the fast-range trick), while the
// low 64 bits becomes the next round's hash.
//
// rng doubles as both the multiplier and the number of buckets: the two
// are defined to be the same value by construction (see DESIGN.md OQ-2).
//
// roundRNG rounds a requested bucket count up to the nearest value whose
// remainder mod 8 is 3 or 5 — the congruential generator's well-understood
// long-cycle property requires an odd multiplier, and rng mod 8 in {3,5}
// additionally avoids short cycles for the specific recurrence used here.
func roundRNG(r uint64) uint64 {
	m8 := r % 8
	switch {
	case m8 <= 3:
		return r + (3 - m8)
	case m8 <= 5:
		return r + (5 - m8)
	default:
		return r + (8 - m8 + 3)
	}
}

// prepareHash forces a hash's low bit to 1. The MCG step preserves
// oddness round over round (odd * odd mod 2^64 is always odd), so forcing
// it once up front guarantees every hash fed to a subfilter is odd —
// which the bit-extraction protocol relies on (see subfilter.go).
func prepareHash(hash uint64) uint64 { return hash | 1 }

// fastRangeMCG advances the generator by one round: pos is the bucket index in
// [0, rng) for this round, nextHash is the hash to feed into both this
// round's subfilter and the following round's next call.
func fastRangeMCG(hash, rng uint64) (pos, nextHash uint64) {
	lo, hi := umul128(hash, rng)
	return hi, lo
}
