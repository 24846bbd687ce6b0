package blockbloom

import (
	"errors"
	"math"
)

// ErrInvalidFPR is returned when a target false-positive rate outside
// [0, 1] is supplied to a parameter-sizing function.
var ErrInvalidFPR = errors.New("blockbloom: target false positive rate must be in [0, 1]")

// effectiveWidthBits is boost::bloom's uniform w = 2*used_block_size -
// bucket_size, expressed in bits. It degenerates to Width()*elemBits
// exactly when stride == Width() (no overlap), so there is no separate
// non-overlap branch — see DESIGN.md OQ-3.
func effectiveWidthBits[B Block](sf Subfilter[B], strideElems int) float64 {
	ebits := float64(blockWidthBits[B]())
	totalW := float64(sf.Width()) * ebits
	strideBits := float64(strideElems) * ebits
	return 2*totalW - strideBits
}

// fprAtBitsPerElement evaluates the analytic FPR of a filter with k
// independent rounds and c bits of capacity per inserted element, given
// the subfilter's effective cell width effWBits. It sums the Poisson-
// weighted per-cell false positive rate over the number of elements that
// might have landed in a given cell, then raises the result to the k-th
// power (k independent rounds must each happen to collide).
//
// Grounded on boost::bloom's detail/core.hpp fpr_for_c: same Poisson
// series, same unimodal-descent early exit, same classical lower bound
// floor.
func fprAtBitsPerElement[B Block](sf Subfilter[B], k int, effWBits, c float64) float64 {
	kp := float64(sf.KPrime())
	kTotal := float64(k) * kp
	lambda := effWBits * float64(k) / c
	logLambda := math.Log(lambda)

	var res, prevDelta float64
	descending := false
	for i := 0; i < 1000; i++ {
		lg, _ := math.Lgamma(float64(i + 1))
		poisson := math.Exp(float64(i)*logLambda - lambda - lg)
		delta := poisson * sf.FPR(float64(i), effWBits)
		if i > 0 {
			if delta < prevDelta {
				if descending && res+delta == res {
					break
				}
				descending = true
			} else {
				descending = false
			}
		}
		res += delta
		prevDelta = delta
	}

	classic := math.Pow(1-math.Exp(-kTotal/c), kTotal)
	return math.Max(math.Pow(res, float64(k)), classic)
}

// FPRFor estimates the false positive rate of a filter holding n elements
// in a filter with m bits of capacity, k independent rounds, the given
// subfilter, and bucket stride strideElems. It returns 0 for n == 0 and 1
// for m == 0, matching the empty-filter/zero-capacity degenerate cases.
func FPRFor[B Block](sf Subfilter[B], k, strideElems int, n, m uint64) float64 {
	if n == 0 {
		return 0
	}
	if m == 0 {
		return 1
	}
	c := float64(m) / float64(n)
	return fprAtBitsPerElement(sf, k, effectiveWidthBits(sf, strideElems), c)
}

// unadjustedCapacityFor solves for the raw bit budget (not yet snapped to
// bucket boundaries) needed to hold n elements at false positive rate at
// most fpr, by bisecting fprAtBitsPerElement around the classical
// lower-bound estimate, exactly as boost::bloom's
// detail::core::unadjusted_capacity_for does.
func unadjustedCapacityFor[B Block](sf Subfilter[B], k, strideElems int, n uint64, fpr float64) uint64 {
	if n == 0 || fpr >= 1 {
		return 0
	}
	if fpr <= 0 {
		fpr = math.SmallestNonzeroFloat64
	}

	kTotal := float64(k) * float64(sf.KPrime())
	cMax := float64(math.MaxUint64) / float64(n)

	d := 1 - math.Pow(fpr, 1/kTotal)
	if d <= 0 {
		return uint64(cMax * float64(n))
	}
	l := math.Log(d)
	c0 := kTotal / -l
	if c0 > cMax {
		c0 = cMax
	}

	effW := effectiveWidthBits(sf, strideElems)
	fprForC := func(c float64) float64 { return fprAtBitsPerElement(sf, k, effW, c) }

	c1 := c0
	if fprForC(c1) > fpr {
		for {
			cn := c1 * 1.5
			if cn > cMax {
				return uint64(cMax * float64(n))
			}
			c0, c1 = c1, cn
			if fprForC(c1) <= fpr {
				break
			}
		}
	} else {
		for {
			cn := c0 / 1.5
			c1 = c0
			c0 = cn
			if fprForC(c0) >= fpr {
				break
			}
		}
	}

	const eps = 1.0 / float64(math.MaxUint64)
	var cm float64
	for {
		cm = c0 + (c1-c0)/2
		if !(cm > c0 && cm < c1) || c1-c0 < eps {
			break
		}
		if fprForC(cm) > fpr {
			c0 = cm
		} else {
			c1 = cm
		}
	}
	return uint64(cm * float64(n))
}

// CapacityFor returns the bit capacity a filter needs to hold n elements
// at false positive rate at most fpr, snapped up to the nearest capacity
// actually achievable for the given subfilter/K/stride combination. A
// filter constructed with exactly this capacity reports the same value
// back from its own capacity accessor: CapacityFor's result is idempotent
// under reconstruction.
func CapacityFor[B Block](sf Subfilter[B], k, strideElems int, n uint64, fpr float64) (uint64, error) {
	if fpr < 0 || fpr > 1 {
		return 0, ErrInvalidFPR
	}
	width := sf.Width()
	if strideElems <= 0 {
		strideElems = width
	}
	m := unadjustedCapacityFor(sf, k, strideElems, n, fpr)
	if m == 0 {
		return 0, nil
	}
	reqRange := requestedRangeElems[B](width, strideElems, m)
	rng := roundRNG(reqRange)
	return spaceForElems(rng, strideElems, width) * uint64(blockWidthBits[B]()), nil
}
