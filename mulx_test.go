package blockbloom

import "testing"

func TestUmul128(t *testing.T) {
	cases := []struct {
		x, y   uint64
		lo, hi uint64
	}{
		{0, 0, 0, 0},
		{1, 1, 1, 0},
		{0xFFFFFFFFFFFFFFFF, 2, 0xFFFFFFFFFFFFFFFE, 1},
		{0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 1, 0xFFFFFFFFFFFFFFFE},
	}
	for _, c := range cases {
		lo, hi := umul128(c.x, c.y)
		if lo != c.lo || hi != c.hi {
			t.Errorf("umul128(%#x, %#x) = (%#x, %#x), want (%#x, %#x)", c.x, c.y, lo, hi, c.lo, c.hi)
		}
	}
}

func TestMulxMixDeterministic(t *testing.T) {
	if mulxMix(12345) != mulxMix(12345) {
		t.Fatal("mulxMix is not deterministic")
	}
}

func TestMulxMixDiffers(t *testing.T) {
	seen := map[uint64]bool{}
	for i := uint64(0); i < 1000; i++ {
		v := mulxMix(i)
		if seen[v] {
			t.Fatalf("mulxMix collided across small sequential inputs at i=%d", i)
		}
		seen[v] = true
	}
}
