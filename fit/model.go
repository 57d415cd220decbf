package fit

import "math"

// modelFunc evaluates a multi-term ansatz at every point of x. groups holds
// the per-parameter value lists: groups[p][k] is the p-th parameter of the
// k-th term.
type modelFunc func(x []float64, groups [][]float64) []float64

// corrApproxReal is the damped-oscillation ansatz for the real part of a
// correlation function,
//
//	sum_k exp(b_k t) (a_k cos(c_k t) - d_k sin(c_k t)),
//
// where the d group is absent in the reduced three-parameter form.
func corrApproxReal(t []float64, groups [][]float64) []float64 {
	a, b, c := groups[0], groups[1], groups[2]
	out := make([]float64, len(t))
	for i, ti := range t {
		var s float64
		for k := range a {
			s += math.Exp(b[k]*ti) * (a[k] * math.Cos(c[k]*ti))
			if len(groups) > 3 {
				s -= math.Exp(b[k]*ti) * (groups[3][k] * math.Sin(c[k]*ti))
			}
		}
		out[i] = s
	}
	return out
}

// corrApproxImag is the matching ansatz for the imaginary part,
//
//	sum_k exp(b_k t) (a_k sin(c_k t) + d_k cos(c_k t)).
func corrApproxImag(t []float64, groups [][]float64) []float64 {
	a, b, c := groups[0], groups[1], groups[2]
	out := make([]float64, len(t))
	for i, ti := range t {
		var s float64
		for k := range a {
			s += math.Exp(b[k]*ti) * (a[k] * math.Sin(c[k]*ti))
			if len(groups) > 3 {
				s += math.Exp(b[k]*ti) * (groups[3][k] * math.Cos(c[k]*ti))
			}
		}
		out[i] = s
	}
	return out
}

// meierTannorSD is the sum of Meier-Tannor spectral-density terms,
//
//	sum_k 2 a_k b_k w / (((w+c_k)^2 + b_k^2) ((w-c_k)^2 + b_k^2)).
func meierTannorSD(w []float64, groups [][]float64) []float64 {
	a, b, c := groups[0], groups[1], groups[2]
	out := make([]float64, len(w))
	for i, wi := range w {
		var s float64
		for k := range a {
			num := 2 * a[k] * b[k] * wi
			den := ((wi+c[k])*(wi+c[k]) + b[k]*b[k]) * ((wi-c[k])*(wi-c[k]) + b[k]*b[k])
			s += num / den
		}
		out[i] = s
	}
	return out
}

// generateCorrelationExponents converts fitted damped-oscillation
// parameters into the coefficient/frequency lists of an exponential
// decomposition. Each fitted term yields a conjugate exponent pair so that
// the reconstructed series is exactly the fitted real and imaginary parts.
func generateCorrelationExponents(paramsReal, paramsImag [][]float64) (ckReal, vkReal, ckImag, vkImag []complex128) {
	nReal := len(paramsReal[0])
	nImag := len(paramsImag[0])

	dReal := func(k int) float64 {
		if len(paramsReal) > 3 {
			return paramsReal[3][k]
		}
		return 0
	}
	dImag := func(k int) float64 {
		if len(paramsImag) > 3 {
			return paramsImag[3][k]
		}
		return 0
	}

	for k := 0; k < nReal; k++ {
		a, b, c := paramsReal[0][k], paramsReal[1][k], paramsReal[2][k]
		ck := complex(a, dReal(k)) * 0.5
		ckReal = append(ckReal, ck)
		vkReal = append(vkReal, complex(-b, -c))
	}
	for k := 0; k < nReal; k++ {
		a, b, c := paramsReal[0][k], paramsReal[1][k], paramsReal[2][k]
		ckReal = append(ckReal, complex(a, -dReal(k))*0.5)
		vkReal = append(vkReal, complex(-b, c))
	}

	for k := 0; k < nImag; k++ {
		a, b, c := paramsImag[0][k], paramsImag[1][k], paramsImag[2][k]
		ckImag = append(ckImag, -1i*complex(a, dImag(k))*0.5)
		vkImag = append(vkImag, complex(-b, -c))
	}
	for k := 0; k < nImag; k++ {
		a, b, c := paramsImag[0][k], paramsImag[1][k], paramsImag[2][k]
		ckImag = append(ckImag, 1i*complex(a, -dImag(k))*0.5)
		vkImag = append(vkImag, complex(-b, c))
	}
	return ckReal, vkReal, ckImag, vkImag
}
