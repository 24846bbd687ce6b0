package blockbloom

import "encoding/binary"

// Filter is an approximate-membership set for values of type T, backed by
// an array of B elements and a configurable Subfilter strategy. It never
// reports a false negative: every value Inserted always tests positive
// under MayContain. False positives are possible and their rate is
// governed by the capacity/K/subfilter combination the filter was built
// with — see CapacityFor and FPRFor.
//
// Filter is safe for any number of concurrent readers calling MayContain,
// but Insert must never run concurrently with itself or with any other
// method. There is no atomic or sharded variant: callers needing
// concurrent writers should partition elements across separate Filters
// or guard Insert with their own lock.
type Filter[T any, B Block] struct {
	eng    *engine[B]
	hasher Hasher[T]
}

// New builds a Filter with at least capacityBits of capacity (rounded up
// to whatever the subfilter's bucket geometry can actually provide), k
// independent rounds per Insert/MayContain call, and bucket stride
// strideElems (0 means no overlap between adjacent buckets).
func New[T any, B Block](capacityBits uint64, k int, sf Subfilter[B], hasher Hasher[T], strideElems int) (*Filter[T, B], error) {
	eng, err := newEngine[B](capacityBits, k, sf, strideElems)
	if err != nil {
		return nil, err
	}
	return &Filter[T, B]{eng: eng, hasher: hasher}, nil
}

// NewFor builds a Filter sized, via CapacityFor, to hold n elements at a
// false positive rate at most fpr.
func NewFor[T any, B Block](n uint64, fpr float64, k int, sf Subfilter[B], hasher Hasher[T], strideElems int) (*Filter[T, B], error) {
	m, err := CapacityFor(sf, k, strideElems, n, fpr)
	if err != nil {
		return nil, err
	}
	return New[T, B](m, k, sf, hasher, strideElems)
}

// NewBlockFilter builds a []byte-keyed Filter using the classical
// single-cache-line BlockSubfilter[uint64] strategy, sized to hold n
// elements at false positive rate at most fpr with k independent rounds
// of kPrime bits each.
func NewBlockFilter(n uint64, fpr float64, k, kPrime int) (*Filter[[]byte, uint64], error) {
	return NewFor[[]byte, uint64](n, fpr, k, NewBlockSubfilter[uint64](kPrime), BytesHasher{}, 0)
}

// NewMultiblockFilter builds a []byte-keyed Filter using the
// MultiblockSubfilter[uint64] strategy: kPrime separate uint64 cells per
// bucket, one bit set per cell, trading an extra cache line for a lower
// false positive rate at the same K'.
func NewMultiblockFilter(n uint64, fpr float64, k, kPrime int) (*Filter[[]byte, uint64], error) {
	return NewFor[[]byte, uint64](n, fpr, k, NewMultiblockSubfilter[uint64](kPrime), BytesHasher{}, 0)
}

// NewFastMultiblock32Filter builds a []byte-keyed Filter using the
// split-block FastMultiblock32 strategy (Kudu/parquet style), statistically
// equivalent to MultiblockSubfilter[uint32] but laid out for the
// branch-free lane arithmetic fastmultiblock32.go implements.
func NewFastMultiblock32Filter(n uint64, fpr float64, k, kPrime int) (*Filter[[]byte, uint32], error) {
	return NewFor[[]byte, uint32](n, fpr, k, NewFastMultiblock32(kPrime), BytesHasher{}, 0)
}

// Insert adds x to the filter. Must not run concurrently with itself or
// any other Filter method.
func (f *Filter[T, B]) Insert(x T) {
	f.eng.insert(hashFor(f.hasher, x))
}

// MayContain reports whether x was possibly inserted. Always true for x
// that was actually inserted (no false negatives); may spuriously return
// true for x that never was.
func (f *Filter[T, B]) MayContain(x T) bool {
	return f.eng.mayContain(hashFor(f.hasher, x))
}

// Capacity returns the filter's usable bit capacity, 0 for a
// zero-capacity filter.
func (f *Filter[T, B]) Capacity() uint64 { return f.eng.capacityBits() }

// Clear zeroes every bit without changing capacity.
func (f *Filter[T, B]) Clear() { f.eng.clear() }

// Reset discards all state and resizes the filter to capacityBits of
// capacity. Apart from UnmarshalBinary, which adopts the capacity its
// input declares, this is the only resize operation: there is no live
// incremental resize.
func (f *Filter[T, B]) Reset(capacityBits uint64) error {
	return f.eng.reshape(capacityBits)
}

// Equal reports whether f and other hold identical bit arrays. Filters
// with different capacity are never equal.
func (f *Filter[T, B]) Equal(other *Filter[T, B]) bool {
	return f.eng.equal(other.eng)
}

// CombineOr ORs other's bits into f in place, turning f into the union of
// the two sets' membership tests. Returns ErrIncompatibleCapacity (f left
// unmodified) if f and other don't share the same bucket layout.
func (f *Filter[T, B]) CombineOr(other *Filter[T, B]) error {
	if !f.eng.combine(other.eng, func(a, b B) B { return a | b }) {
		return ErrIncompatibleCapacity
	}
	return nil
}

// CombineAnd ANDs other's bits into f in place, turning f into an
// approximation of the intersection of the two sets' membership tests
// (an upper bound: it may retain false positives from either side).
// Returns ErrIncompatibleCapacity (f left unmodified) on shape mismatch.
func (f *Filter[T, B]) CombineAnd(other *Filter[T, B]) error {
	if !f.eng.combine(other.eng, func(a, b B) B { return a & b }) {
		return ErrIncompatibleCapacity
	}
	return nil
}

// Array returns a little-endian encoded copy of the filter's backing
// array (see DESIGN.md OQ-4 for why this is a copy rather than an alias).
func (f *Filter[T, B]) Array() []byte { return f.eng.toBytes() }

// CopyFrom overwrites the filter's current contents by decoding data
// (little-endian, the same format Array produces) at the filter's
// existing capacity.
func (f *Filter[T, B]) CopyFrom(data []byte) error {
	if !f.eng.fromBytes(f.eng.capacityBits(), data) {
		return ErrInvalidData
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler using an 8-byte
// little-endian capacity-in-bits header followed by the raw little-endian
// array bytes. K, the subfilter
// strategy, and BucketStride are properties of the Go type and the
// caller's own constructor call, not the wire format — a reader needs to
// already know them (e.g. by calling the same NewFor/New before
// UnmarshalBinary) to reconstitute a working Filter.
func (f *Filter[T, B]) MarshalBinary() ([]byte, error) {
	body := f.eng.toBytes()
	buf := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint64(buf[:8], f.eng.capacityBits())
	copy(buf[8:], body)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for the format
// MarshalBinary produces, resizing the receiver to the capacity the
// header declares before loading its bytes.
func (f *Filter[T, B]) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return ErrInvalidData
	}
	m := binary.LittleEndian.Uint64(data[:8])
	if !f.eng.fromBytes(m, data[8:]) {
		return ErrInvalidData
	}
	return nil
}
