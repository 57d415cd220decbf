package bath

import (
	"fmt"
	"math/cmplx"
)

// ExponentType identifies the role of an exponent within an exponential
// decomposition of a correlation function.
type ExponentType int

const (
	// RealExponent appears in the real part of the correlation expansion.
	RealExponent ExponentType = iota
	// ImagExponent appears in the imaginary part of the expansion.
	ImagExponent
	// RealImagExponent is a combined exponent appearing in both parts,
	// with separate coefficients for each.
	RealImagExponent
	// PlusExponent is a fermionic exponent paired with a MinusExponent.
	PlusExponent
	// MinusExponent is a fermionic exponent paired with a PlusExponent.
	MinusExponent
)

func (t ExponentType) String() string {
	switch t {
	case RealExponent:
		return "R"
	case ImagExponent:
		return "I"
	case RealImagExponent:
		return "RI"
	case PlusExponent:
		return "+"
	case MinusExponent:
		return "-"
	default:
		return "?"
	}
}

// Default tolerances for matching exponent frequencies in Combine.
const (
	CombineRTol = 1e-5
	CombineATol = 1e-7
)

// CFExponent is a single term c*exp(-v*t) within an exponential
// decomposition of a correlation function. Values are immutable: combining
// exponents produces new instances.
//
// The typed constructors (NewRealExponent and friends) build exponents whose
// optional fields are consistent by construction; NewCFExponent validates
// loosely typed input instead.
type CFExponent struct {
	typ ExponentType
	ck  complex128
	vk  complex128

	// ck2 is the coefficient in the imaginary expansion, only meaningful
	// for RealImagExponent.
	ck2 complex128

	// sigmaBarKOffset links a fermionic exponent to its opposite-sign
	// partner, as an offset within the containing exponent list.
	sigmaBarKOffset int
}

// NewRealExponent creates a bosonic exponent contributing to the real part
// of the correlation expansion.
func NewRealExponent(ck, vk complex128) CFExponent {
	return CFExponent{typ: RealExponent, ck: ck, vk: vk}
}

// NewImagExponent creates a bosonic exponent contributing to the imaginary
// part of the correlation expansion.
func NewImagExponent(ck, vk complex128) CFExponent {
	return CFExponent{typ: ImagExponent, ck: ck, vk: vk}
}

// NewRealImagExponent creates a combined bosonic exponent with coefficient
// ck in the real expansion and ck2 in the imaginary expansion.
func NewRealImagExponent(ck, ck2, vk complex128) CFExponent {
	return CFExponent{typ: RealImagExponent, ck: ck, vk: vk, ck2: ck2}
}

// NewPlusExponent creates a fermionic "+" exponent. sigmaBarKOffset is the
// offset, within the containing exponent list, of the corresponding "-"
// exponent.
func NewPlusExponent(ck, vk complex128, sigmaBarKOffset int) CFExponent {
	return CFExponent{typ: PlusExponent, ck: ck, vk: vk, sigmaBarKOffset: sigmaBarKOffset}
}

// NewMinusExponent creates a fermionic "-" exponent. sigmaBarKOffset is the
// offset of the corresponding "+" exponent.
func NewMinusExponent(ck, vk complex128, sigmaBarKOffset int) CFExponent {
	return CFExponent{typ: MinusExponent, ck: ck, vk: vk, sigmaBarKOffset: sigmaBarKOffset}
}

// NewCFExponent builds an exponent from loosely typed data, validating that
// the optional fields are consistent with the type: ck2 must be present
// exactly for RI exponents, and sigmaBarKOffset exactly for fermionic ones.
func NewCFExponent(typ ExponentType, ck, vk complex128, ck2 *complex128, sigmaBarKOffset *int) (CFExponent, error) {
	if typ == RealImagExponent {
		if ck2 == nil {
			return CFExponent{}, fmt.Errorf("RI exponents require ck2: %w", ErrInvalidExponent)
		}
	} else if ck2 != nil {
		return CFExponent{}, fmt.Errorf(
			"second coefficient (ck2) should only be specified for RI exponents: %w",
			ErrInvalidExponent)
	}

	fermionic := typ == PlusExponent || typ == MinusExponent
	if fermionic {
		if sigmaBarKOffset == nil {
			return CFExponent{}, fmt.Errorf(
				"+ and - type exponents require sigmaBarKOffset: %w", ErrInvalidExponent)
		}
	} else if sigmaBarKOffset != nil {
		return CFExponent{}, fmt.Errorf(
			"sigmaBarKOffset should only be specified for + and - type exponents: %w",
			ErrInvalidExponent)
	}

	exp := CFExponent{typ: typ, ck: ck, vk: vk}
	if ck2 != nil {
		exp.ck2 = *ck2
	}
	if sigmaBarKOffset != nil {
		exp.sigmaBarKOffset = *sigmaBarKOffset
	}
	return exp, nil
}

// Type returns the exponent type.
func (e CFExponent) Type() ExponentType { return e.typ }

// Ck returns the coefficient of the excitation term.
func (e CFExponent) Ck() complex128 { return e.ck }

// Vk returns the frequency of the exponent.
func (e CFExponent) Vk() complex128 { return e.vk }

// Ck2 returns the imaginary-expansion coefficient of an RI exponent.
func (e CFExponent) Ck2() complex128 { return e.ck2 }

// SigmaBarKOffset returns the partner offset of a fermionic exponent.
func (e CFExponent) SigmaBarKOffset() int { return e.sigmaBarKOffset }

// Fermionic reports whether the exponent is of a fermionic type.
func (e CFExponent) Fermionic() bool {
	return e.typ == PlusExponent || e.typ == MinusExponent
}

// Coefficient folds the R/I/RI cases into the single complex coefficient of
// the term Coefficient()*exp(-Exponent()*t).
func (e CFExponent) Coefficient() complex128 {
	var coeff complex128
	if e.typ == RealExponent || e.typ == RealImagExponent {
		coeff += e.ck
	}
	if e.typ == ImagExponent {
		coeff += 1i * e.ck
	}
	if e.typ == RealImagExponent {
		coeff += 1i * e.ck2
	}
	return coeff
}

// Exponent returns the decay frequency of the term.
func (e CFExponent) Exponent() complex128 { return e.vk }

func (e CFExponent) String() string {
	return fmt.Sprintf("<CFExponent type=%s ck=%v vk=%v ck2=%v sigmaBarKOffset=%d>",
		e.typ, e.ck, e.vk, e.ck2, e.sigmaBarKOffset)
}

func isclose(a, b complex128, rtol, atol float64) bool {
	return cmplx.Abs(a-b) <= atol+rtol*cmplx.Abs(b)
}

func (e CFExponent) canCombine(other CFExponent, rtol, atol float64) bool {
	if e.Fermionic() || other.Fermionic() {
		return false
	}
	return isclose(e.vk, other.vk, rtol, atol)
}

// combine merges two bosonic exponents sharing a frequency. If either is RI
// or the types differ, the result is RI with the real coefficients and the
// imaginary coefficients summed separately; two exponents of the same plain
// type just sum their ck.
func (e CFExponent) combine(other CFExponent) CFExponent {
	if e.typ == RealImagExponent || e.typ != other.typ {
		var realPart, imagPart complex128
		if e.typ == RealImagExponent || e.typ == RealExponent {
			realPart += e.ck
		}
		if other.typ == RealImagExponent || other.typ == RealExponent {
			realPart += other.ck
		}
		if e.typ == ImagExponent {
			imagPart += e.ck
		}
		if other.typ == ImagExponent {
			imagPart += other.ck
		}
		if e.typ == RealImagExponent {
			imagPart += e.ck2
		}
		if other.typ == RealImagExponent {
			imagPart += other.ck2
		}
		return NewRealImagExponent(realPart, imagPart, e.vk)
	}
	// Both R or both I.
	return CFExponent{typ: e.typ, ck: e.ck + other.ck, vk: e.vk}
}

// Combine groups bosonic exponents whose frequencies match within the given
// tolerances and returns one exponent per group. Groups are absorbed
// greedily, so the output preserves first-encountered-frequency order.
// Fermionic exponents are never combined.
func Combine(exponents []CFExponent, rtol, atol float64) []CFExponent {
	merged := make([]bool, len(exponents))
	result := make([]CFExponent, 0, len(exponents))

	for i := range exponents {
		if merged[i] {
			continue
		}
		current := exponents[i]
		for j := i + 1; j < len(exponents); j++ {
			if merged[j] {
				continue
			}
			if current.canCombine(exponents[j], rtol, atol) {
				current = current.combine(exponents[j])
				merged[j] = true
			}
		}
		result = append(result, current)
	}
	return result
}
