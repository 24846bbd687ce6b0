package blockbloom

import "testing"

func TestRoundRNGInvariant(t *testing.T) {
	for r := uint64(0); r < 5000; r++ {
		rounded := roundRNG(r)
		if rounded < r {
			t.Fatalf("roundRNG(%d) = %d is smaller than the input", r, rounded)
		}
		m8 := rounded % 8
		if m8 != 3 && m8 != 5 {
			t.Fatalf("roundRNG(%d) = %d has rng mod 8 = %d, want 3 or 5", r, rounded, m8)
		}
	}
}

func TestPrepareHashForcesOddBit(t *testing.T) {
	for _, h := range []uint64{0, 2, 4, 0xFFFFFFFFFFFFFFFE} {
		if prepareHash(h)&1 != 1 {
			t.Fatalf("prepareHash(%#x) did not force the low bit to 1", h)
		}
	}
}

func TestFastRangeMCGWithinRange(t *testing.T) {
	rng := roundRNG(1000)
	h := prepareHash(987654321)
	for i := 0; i < 10000; i++ {
		pos, next := fastRangeMCG(h, rng)
		if pos >= rng {
			t.Fatalf("fastRangeMCG returned pos %d outside [0, %d)", pos, rng)
		}
		h = next
	}
}

func TestFastRangeMCGPreservesOddness(t *testing.T) {
	rng := roundRNG(777)
	h := prepareHash(42)
	for i := 0; i < 1000; i++ {
		_, next := fastRangeMCG(h, rng)
		if next&1 != 1 {
			t.Fatalf("fastRangeMCG produced an even hash at iteration %d", i)
		}
		h = next
	}
}
