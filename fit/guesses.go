package fit

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// pack flattens per-parameter scalar values into the fitter's flat layout:
// the first parameter repeated N times, then the second, and so on.
func pack(vals []float64, N int) []float64 {
	out := make([]float64, 0, len(vals)*N)
	for _, v := range vals {
		for k := 0; k < N; k++ {
			out = append(out, v)
		}
	}
	return out
}

// defaultGuesses produces the initial guess, bounds and sigma for a fit
// scenario when the caller supplies none. The returned degenerate flag is
// set when the data is identically zero, in which case no fit is needed.
func defaultGuesses(y, x []float64, scenario string, N, n int) (guess, lower, upper []float64, sigma float64, degenerate bool) {
	sigma = 1e-2

	absMax := 0.0
	for _, v := range y {
		if a := math.Abs(v); a > absMax {
			absMax = a
		}
	}
	if absMax == 0 {
		zero := make([]float64, n*N)
		degenerate = true
		return zero, zero, zero, sigma, degenerate
	}

	cmax := absMax
	wc := x[floats.MaxIdx(y)]
	inf := math.Inf(1)

	switch scenario {
	case "correlation_real":
		if n == 4 {
			guess = pack([]float64{cmax, -100 * cmax, 0, 0}, N)
			lower = pack([]float64{-100 * cmax, -inf, -1, -100 * cmax}, N)
			upper = pack([]float64{100 * cmax, 0, 1, 100 * cmax}, N)
		} else {
			guess = pack([]float64{cmax, -wc, wc}, N)
			lower = pack([]float64{-20 * cmax, -inf, 0}, N)
			upper = pack([]float64{20 * cmax, 0.1, inf}, N)
		}
	case "correlation_imag":
		if n == 4 {
			guess = pack([]float64{0, -10 * cmax, 0, 0}, N)
			lower = pack([]float64{-100 * cmax, -inf, -1, -100 * cmax}, N)
			upper = pack([]float64{100 * cmax, 0, 2, 100 * cmax}, N)
		} else {
			guess = pack([]float64{-cmax, -10 * cmax, 1}, N)
			lower = pack([]float64{-20 * cmax, -inf, 0}, N)
			upper = pack([]float64{10 * cmax, 0, inf}, N)
		}
	default: // spectral
		guess = pack([]float64{cmax, wc, wc}, N)
		lower = pack([]float64{-100 * cmax, 0.1 * wc, 0.1 * wc}, N)
		upper = pack([]float64{100 * cmax, 100 * wc, 100 * wc}, N)
	}
	return guess, lower, upper, sigma, false
}

// reformat turns per-term scalar values into the flat packed layout used by
// the fitter, matching the layout of pack.
func reformat(vals []float64, N int) []float64 {
	return pack(vals, N)
}
