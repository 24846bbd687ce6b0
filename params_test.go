package blockbloom

import (
	"math"
	"testing"
)

func TestCapacityForRejectsInvalidFPR(t *testing.T) {
	sf := NewBlockSubfilter[uint64](4)
	if _, err := CapacityFor[uint64](sf, 4, 0, 1000, -0.1); err != ErrInvalidFPR {
		t.Fatalf("want ErrInvalidFPR for negative fpr, got %v", err)
	}
	if _, err := CapacityFor[uint64](sf, 4, 0, 1000, 1.1); err != ErrInvalidFPR {
		t.Fatalf("want ErrInvalidFPR for fpr > 1, got %v", err)
	}
}

func TestCapacityForZeroElements(t *testing.T) {
	sf := NewBlockSubfilter[uint64](4)
	m, err := CapacityFor[uint64](sf, 4, 0, 0, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if m != 0 {
		t.Fatalf("CapacityFor(n=0) = %d, want 0", m)
	}
}

// TestCapacityForIdempotent checks capacity idempotence: a filter built
// with exactly the capacity CapacityFor recommends reports back that
// same capacity from Capacity().
func TestCapacityForIdempotent(t *testing.T) {
	sf := NewBlockSubfilter[uint64](4)
	m, err := CapacityFor[uint64](sf, 4, 0, 10000, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	f, err := New[[]byte, uint64](m, 4, sf, BytesHasher{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if f.Capacity() != m {
		t.Fatalf("Capacity() = %d after New(%d), want idempotent %d", f.Capacity(), m, m)
	}
}

// TestFPRForWithinBand checks the measured false positive rate of a
// concretely built filter does not exceed 3x the analytic estimate FPRFor
// produces for the same (n, m, k, subfilter) combination plus 0.02; it
// sets no lower bound.
func TestFPRForWithinBand(t *testing.T) {
	const n = 20000
	const target = 0.01
	sf := NewBlockSubfilter[uint64](4)
	m, err := CapacityFor[uint64](sf, 4, 0, n, target)
	if err != nil {
		t.Fatal(err)
	}
	f, err := New[[]byte, uint64](m, 4, sf, BytesHasher{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		f.Insert([]byte{byte(i), byte(i >> 8), byte(i >> 16)})
	}

	falsePositives := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		probe := []byte{byte(i ^ 0x5A), byte((i >> 8) ^ 0xA5), byte(i >> 16), 0xFF}
		if f.MayContain(probe) {
			falsePositives++
		}
	}
	measured := float64(falsePositives) / float64(trials)
	estimate := FPRFor[uint64](sf, 4, 0, n, m)
	if measured > estimate*3+0.02 {
		t.Fatalf("measured FPR %.4f far exceeds the analytic estimate %.4f for target %.4f", measured, estimate, target)
	}
}

func TestFPRForDegenerateCases(t *testing.T) {
	sf := NewBlockSubfilter[uint64](4)
	if got := FPRFor[uint64](sf, 4, 0, 0, 1000); got != 0 {
		t.Fatalf("FPRFor(n=0) = %v, want 0", got)
	}
	if got := FPRFor[uint64](sf, 4, 0, 1000, 0); got != 1 {
		t.Fatalf("FPRFor(m=0) = %v, want 1", got)
	}
}

func TestEffectiveWidthBitsNoOverlapIsWidthTimesElemBits(t *testing.T) {
	sf := NewMultiblockSubfilter[uint64](4)
	got := effectiveWidthBits[uint64](sf, sf.Width())
	want := float64(sf.Width()) * float64(blockWidthBits[uint64]())
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("effectiveWidthBits with stride==width = %v, want %v", got, want)
	}
}
