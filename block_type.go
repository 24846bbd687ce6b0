package blockbloom

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Block is the unsigned integer type a subfilter reads and writes in a
// single operation: any type in constraints.Unsigned (uint8, uint16,
// uint32, uint64, uint, or uintptr). The filter engine
// allocates its backing array as a slice of Block, so every access is
// naturally aligned by the Go runtime with no manual alignment arithmetic.
type Block interface {
	constraints.Unsigned
}

// blockWidthBits returns the number of bits in one Block element.
func blockWidthBits[B Block]() int {
	var zero B
	return int(unsafe.Sizeof(zero)) * 8
}
