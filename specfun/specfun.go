// Package specfun provides the special-function evaluations needed by the
// bath package for Ohmic environments. The evaluators are behind a Provider
// interface so that callers can swap in a higher-precision implementation or
// run without one (in which case the dependent operations fail explicitly).
package specfun

import (
	"math"
	"math/cmplx"
)

// Provider supplies the Gamma function and the Hurwitz zeta function with a
// complex second argument.
type Provider interface {
	Gamma(x float64) float64
	HurwitzZeta(s float64, a complex128) complex128
}

// Default is the built-in float64 provider.
var Default Provider = mathProvider{}

type mathProvider struct{}

func (mathProvider) Gamma(x float64) float64 {
	return math.Gamma(x)
}

func (mathProvider) HurwitzZeta(s float64, a complex128) complex128 {
	return HurwitzZeta(s, a)
}

// Bernoulli numbers B_2, B_4, ..., B_14 for the Euler-Maclaurin tail.
var bernoulli = []float64{
	1.0 / 6.0,
	-1.0 / 30.0,
	1.0 / 42.0,
	-1.0 / 30.0,
	5.0 / 66.0,
	-691.0 / 2730.0,
	7.0 / 6.0,
}

// HurwitzZeta computes the Hurwitz zeta function zeta(s, a) for s > 1 and
// Re(a) > 0 by Euler-Maclaurin summation: the first n terms of the defining
// series plus an integral tail and Bernoulli-number corrections.
func HurwitzZeta(s float64, a complex128) complex128 {
	// Push the expansion point far enough out for the asymptotic tail.
	n := 18
	if re := real(a); re < 1 {
		n += int(math.Ceil(1 - re))
	}

	var sum complex128
	for k := 0; k < n; k++ {
		sum += cmplx.Pow(a+complex(float64(k), 0), complex(-s, 0))
	}

	an := a + complex(float64(n), 0)
	sum += cmplx.Pow(an, complex(1-s, 0)) / complex(s-1, 0)
	sum += 0.5 * cmplx.Pow(an, complex(-s, 0))

	// Correction terms B_2j/(2j)! * s(s+1)...(s+2j-2) * an^(-s-2j+1).
	factorial := 1.0
	rising := 1.0
	for j, b := range bernoulli {
		m := 2 * (j + 1)
		factorial *= float64(m-1) * float64(m)
		if j == 0 {
			rising = s
		} else {
			rising *= (s + float64(m-3)) * (s + float64(m-2))
		}
		sum += complex(b/factorial*rising, 0) *
			cmplx.Pow(an, complex(-s-float64(m-1), 0))
	}

	return sum
}
