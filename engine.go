package blockbloom

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// engine is the generic bit-array core shared by every subfilter
// strategy: it owns the backing []B array, the bucket selector, and the
// single-writer insert/lookup loop. It has no notion of what T an element
// is or how to hash one — that's the public Filter facade's job
// (filter.go); engine only ever sees already-computed uint64 hashes.
type engine[B Block] struct {
	data   []B // nil iff capacity() == 0 (the sentinel/empty state)
	rng    uint64
	stride int // bucket stride, in B elements
	width  int // subfilter bucket width, in B elements
	k      int // number of independent rounds per Insert/MayContain call
	sf     Subfilter[B]
}

// newEngine builds an engine sized for at least m bits of capacity, with
// k independent rounds per operation and the given subfilter/stride.
// stride <= 0 means "no overlap": each bucket gets its own dedicated
// span, stride == width.
func newEngine[B Block](m uint64, k int, sf Subfilter[B], stride int) (*engine[B], error) {
	if k < 1 {
		panic("blockbloom: K must be >= 1")
	}
	width := sf.Width()
	if stride <= 0 {
		stride = width
	}
	if stride > width {
		panic("blockbloom: BucketStride cannot exceed the subfilter's bucket width")
	}
	e := &engine[B]{k: k, sf: sf, stride: stride, width: width}
	if err := e.reshape(m); err != nil {
		return nil, err
	}
	return e, nil
}

// maxArrayElems bounds how many B elements an engine will ever attempt to
// allocate, guarding against the kind of absurd or overflowed capacity
// request that would otherwise panic deep inside make. Grounded on the
// teacher's own maxNumBlocks bound check in UnmarshalBinary.
const maxArrayElems = math.MaxInt64 / 2

func (e *engine[B]) reshape(m uint64) error {
	reqRange := requestedRangeElems[B](e.width, e.stride, m)
	e.rng = roundRNG(reqRange)
	if m == 0 {
		e.data = nil
		return nil
	}
	n := spaceForElems(e.rng, e.stride, e.width)
	if n > maxArrayElems {
		return &CapacityOverflowError{RequestedBits: m}
	}
	e.data = make([]B, n)
	return nil
}

// requestedRangeElems converts a bit-capacity request into the number of
// buckets needed, accounting for the extra capacity the last bucket's
// non-overlapping tail contributes for free.
func requestedRangeElems[B Block](widthElems, strideElems int, m uint64) uint64 {
	ebits := uint64(blockWidthBits[B]())
	tailBits := uint64(widthElems-strideElems) * ebits
	if m > tailBits {
		m -= tailBits
	}
	strideBits := uint64(strideElems) * ebits
	if strideBits == 0 {
		return 0
	}
	if math.MaxUint64-m >= strideBits-1 {
		return (m + strideBits - 1) / strideBits
	}
	return m / strideBits
}

func spaceForElems(rng uint64, strideElems, widthElems int) uint64 {
	return rng*uint64(strideElems) + uint64(widthElems-strideElems)
}

// bucketRange is the externally visible number of buckets: 0 whenever the
// engine is in the empty/sentinel state, even though an internal baseline
// rng is still used to drive bucket math against the sentinel array.
func (e *engine[B]) bucketRange() uint64 {
	if e.data == nil {
		return 0
	}
	return e.rng
}

// capacityBits is the number of usable bits this engine currently
// provides, i.e. len(data) converted to bits, or 0 when empty.
func (e *engine[B]) capacityBits() uint64 {
	if e.data == nil {
		return 0
	}
	return uint64(len(e.data)) * uint64(blockWidthBits[B]())
}

func prefetchHint[B Block](_ []B) {
	// Go has no portable cache-line prefetch intrinsic. The engine
	// relies on naturally-aligned, cache-line-sized buckets for the
	// same locality benefit real prefetching would buy; this call
	// exists only to mark the point in the algorithm where a real
	// prefetch would issue.
}

func (e *engine[B]) insert(hash uint64) {
	h := prepareHash(hash)
	pos, nh := fastRangeMCG(h, e.rng)
	h = nh
	base := pos * uint64(e.stride)
	if e.data != nil {
		prefetchHint(e.data[base:])
	}
	if e.data == nil {
		return
	}
	e.sf.Mark(e.data[base:base+uint64(e.width)], h)

	for round := 1; round < e.k; round++ {
		pos, nh = fastRangeMCG(h, e.rng)
		h = nh
		base = pos * uint64(e.stride)
		e.sf.Mark(e.data[base:base+uint64(e.width)], h)
	}
}

func (e *engine[B]) mayContain(hash uint64) bool {
	h := prepareHash(hash)
	for round := 0; round < e.k; round++ {
		pos, nh := fastRangeMCG(h, e.rng)
		h = nh
		var blk []B
		if e.data != nil {
			base := pos * uint64(e.stride)
			blk = e.data[base : base+uint64(e.width)]
		} else {
			blk = sentinelBlock[B](e.width)
		}
		if !e.sf.Check(blk, h) {
			return false
		}
	}
	return true
}

func (e *engine[B]) clear() {
	for i := range e.data {
		e.data[i] = 0
	}
}

func (e *engine[B]) equal(o *engine[B]) bool {
	if e.bucketRange() != o.bucketRange() {
		return false
	}
	for i := range e.data {
		if e.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// combine ORs or ANDs o's bits into e's, in place. Returns false if the
// two engines aren't shape-compatible (different bucket ranges), in
// which case e is left unmodified.
func (e *engine[B]) combine(o *engine[B], op func(a, b B) B) bool {
	if e.bucketRange() != o.bucketRange() {
		return false
	}
	for i := range e.data {
		e.data[i] = op(e.data[i], o.data[i])
	}
	return true
}

// toBytes encodes the backing array as little-endian bytes, regardless of
// host byte order.
func (e *engine[B]) toBytes() []byte {
	ebits := blockWidthBits[B]()
	buf := make([]byte, len(e.data)*ebits/8)
	off := 0
	for _, x := range e.data {
		off = putLE(buf, off, x)
	}
	return buf
}

// fromBytes decodes data (little-endian, as produced by toBytes) into a
// freshly sized backing array of the same bucketRange as requested by m.
func (e *engine[B]) fromBytes(m uint64, data []byte) bool {
	if err := e.reshape(m); err != nil {
		return false
	}
	if len(data) != len(e.data)*blockWidthBits[B]()/8 {
		return false
	}
	off := 0
	for i := range e.data {
		var x B
		x, off = getLE[B](data, off)
		e.data[i] = x
	}
	return true
}

func putLE[B Block](buf []byte, off int, x B) int {
	switch unsafe.Sizeof(x) {
	case 1:
		buf[off] = byte(x)
		return off + 1
	case 2:
		binary.LittleEndian.PutUint16(buf[off:], uint16(x))
		return off + 2
	case 4:
		binary.LittleEndian.PutUint32(buf[off:], uint32(x))
		return off + 4
	default:
		binary.LittleEndian.PutUint64(buf[off:], uint64(x))
		return off + 8
	}
}

func getLE[B Block](buf []byte, off int) (B, int) {
	var zero B
	switch unsafe.Sizeof(zero) {
	case 1:
		return B(buf[off]), off + 1
	case 2:
		return B(binary.LittleEndian.Uint16(buf[off:])), off + 2
	case 4:
		return B(binary.LittleEndian.Uint32(buf[off:])), off + 4
	default:
		return B(binary.LittleEndian.Uint64(buf[off:])), off + 8
	}
}

// sentinelBytes is a shared, never-written, all-ones buffer that backs
// empty-filter buckets up to 4096 bytes wide; sentinelBlock builds a
// fresh all-ones block for wider buckets. Reading through it is what lets
// mayContain report "possibly present" for every query against an empty
// filter.
var sentinelBytes [4096]byte

func init() {
	for i := range sentinelBytes {
		sentinelBytes[i] = 0xFF
	}
}

func sentinelBlock[B Block](n int) []B {
	sz := int(unsafe.Sizeof(B(0)))
	need := n * sz
	if need > len(sentinelBytes) {
		blk := make([]B, n)
		for i := range blk {
			blk[i] = ^B(0)
		}
		return blk
	}
	return unsafe.Slice((*B)(unsafe.Pointer(&sentinelBytes[0])), n)
}
