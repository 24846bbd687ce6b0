package blockbloom

import "testing"

func TestBlockSubfilterMarkThenCheck(t *testing.T) {
	for _, kPrime := range []int{1, 2, 4, 8} {
		sf := NewBlockSubfilter[uint64](kPrime)
		block := make([]uint64, sf.Width())
		hashes := []uint64{1, 2, 0xDEADBEEF, 0xFFFFFFFFFFFFFFFF, 12345678901234}
		for _, h := range hashes {
			sf.Mark(block, h)
		}
		for _, h := range hashes {
			if !sf.Check(block, h) {
				t.Fatalf("BlockSubfilter[uint64](%d): Check false negative for hash %#x", kPrime, h)
			}
		}
	}
}

func TestMultiblockSubfilterMarkThenCheck(t *testing.T) {
	for _, kPrime := range []int{1, 2, 5, 9} {
		sf := NewMultiblockSubfilter[uint32](kPrime)
		block := make([]uint32, sf.Width())
		hashes := []uint64{1, 2, 0xDEADBEEF, 0xFFFFFFFFFFFFFFFF, 987654321}
		for _, h := range hashes {
			sf.Mark(block, h)
		}
		for _, h := range hashes {
			if !sf.Check(block, h) {
				t.Fatalf("MultiblockSubfilter[uint32](%d): Check false negative for hash %#x", kPrime, h)
			}
		}
	}
}

func TestFastMultiblock32MarkThenCheck(t *testing.T) {
	for _, kPrime := range []int{1, 4, 8, 12, 17} {
		sf := NewFastMultiblock32(kPrime)
		block := make([]uint32, sf.Width())
		hashes := []uint64{1, 2, 0xDEADBEEF, 0xFFFFFFFFFFFFFFFF, 424242424242}
		for _, h := range hashes {
			sf.Mark(block, h)
		}
		for _, h := range hashes {
			if !sf.Check(block, h) {
				t.Fatalf("FastMultiblock32(%d): Check false negative for hash %#x", kPrime, h)
			}
		}
	}
}

func TestFastMultiblock32UnsetLaneNotFound(t *testing.T) {
	sf := NewFastMultiblock32(4)
	block := make([]uint32, sf.Width())
	if sf.Check(block, 42) {
		t.Fatal("Check reported present against an all-zero block")
	}
}

func TestSubfilterFPRMonotonicInElements(t *testing.T) {
	sf := NewBlockSubfilter[uint64](4)
	prev := 0.0
	for i := 0.0; i <= 50; i += 5 {
		fpr := sf.FPR(i, 64)
		if fpr < prev {
			t.Fatalf("FPR(%v,64)=%v is lower than FPR at a smaller i=%v", i, fpr, prev)
		}
		prev = fpr
	}
}

func TestNewBlockSubfilterRejectsBadKPrime(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for kPrime == 0")
		}
	}()
	NewBlockSubfilter[uint64](0)
}

func TestNewBlockSubfilterRejectsOversizeKPrime(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for kPrime exceeding the block width")
		}
	}()
	NewBlockSubfilter[uint8](9)
}
