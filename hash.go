package blockbloom

import "github.com/zeebo/xxh3"

// Hasher reduces a value of type T to a 64-bit hash. Implementations that
// know their output already avalanches well (every output bit depends on
// every input bit with roughly even probability) should report that via
// Avalanches so the filter engine can skip its own post-mixing step.
type Hasher[T any] interface {
	Hash(x T) uint64

	// Avalanches reports whether Hash's output already has good bit
	// dispersion. Cryptographic and modern non-cryptographic hashes
	// (xxh3, xxhash, FNV variants built for this) should return true.
	// A hash built for speed over distribution (a raw checksum, a
	// truncated counter) should return false so the engine mixes it
	// through mulxMix before use.
	Avalanches() bool
}

// hashFor applies a Hasher's own post-mixing decision: pass the hash
// through unchanged if it already avalanches, otherwise run it through
// mulxMix first. In C++ this decision also depends on the native word
// being at least 64 bits; Hasher.Hash always returns uint64 in Go, so
// that half of the condition is unconditionally true here.
func hashFor[T any](h Hasher[T], x T) uint64 {
	v := h.Hash(x)
	if h.Avalanches() {
		return v
	}
	return mulxMix(v)
}

// BytesHasher hashes []byte with xxh3, this package's default hash.
type BytesHasher struct{}

func (BytesHasher) Hash(x []byte) uint64 { return xxh3.Hash(x) }
func (BytesHasher) Avalanches() bool     { return true }

// StringHasher hashes string with xxh3.
type StringHasher struct{}

func (StringHasher) Hash(x string) uint64 { return xxh3.HashString(x) }
func (StringHasher) Avalanches() bool     { return true }

// FuncHasher adapts any func(T) uint64 into a Hasher[T], with an explicit
// avalanche declaration. Useful for plugging in alternate hashes (for
// benchmarking, or a caller's own identity/checksum hash that needs the
// post-mixer's help).
type FuncHasher[T any] struct {
	Func          func(T) uint64
	DoesAvalanche bool
}

func (h FuncHasher[T]) Hash(x T) uint64  { return h.Func(x) }
func (h FuncHasher[T]) Avalanches() bool { return h.DoesAvalanche }
