package blockbloom

import (
	"errors"
	"fmt"
)

// ErrIncompatibleCapacity is returned by CombineAnd/CombineOr when the
// two filters being combined don't share the same bucket layout. Neither
// filter is modified when this is returned.
var ErrIncompatibleCapacity = errors.New("blockbloom: filters have incompatible capacity and cannot be combined")

// ErrInvalidData is returned by UnmarshalBinary when the supplied bytes
// are too short to contain a valid header, or their length doesn't match
// the capacity the header declares.
var ErrInvalidData = errors.New("blockbloom: invalid or truncated serialized filter")

// CapacityOverflowError is returned when a requested capacity would
// require allocating more memory than a Go slice can address.
type CapacityOverflowError struct {
	RequestedBits uint64
}

func (e *CapacityOverflowError) Error() string {
	return fmt.Sprintf("blockbloom: requested capacity of %d bits overflows the maximum addressable array size", e.RequestedBits)
}
