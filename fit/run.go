package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/openquantum/bathkit/logging"
)

// unpack splits a flat packed parameter vector into its n per-parameter
// groups, the inverse of pack.
func unpack(p []float64, n int) [][]float64 {
	N := len(p) / n
	groups := make([][]float64, n)
	for g := 0; g < n; g++ {
		groups[g] = p[g*N : (g+1)*N]
	}
	return groups
}

// rmse is the normalized root-mean-square error of a fit, the mean squared
// deviation divided once more by the sample count and normalized by the
// data range.
func rmse(model modelFunc, y, x []float64, groups [][]float64) float64 {
	f := model(x, groups)
	sq := make([]float64, len(y))
	for i := range y {
		d := f[i] - y[i]
		sq[i] = d * d
	}
	spread := floats.Max(y) - floats.Min(y)
	if spread == 0 {
		// Constant data has no range to normalize by; report the raw
		// error so term-search diagnostics stay finite.
		spread = 1
	}
	return math.Sqrt(stat.Mean(sq, nil)/float64(len(y))) / spread
}

// fitOnce runs a single fit with N terms and returns the normalized RMSE
// and the per-parameter groups of the result.
func fitOnce(model modelFunc, y, x []float64, scenario string, N, n int, opts Options) (float64, [][]float64, error) {
	var guess, lower, upper []float64
	var sigma float64

	if opts.Lower != nil && opts.Upper != nil && opts.Guesses != nil && opts.Sigma != 0 {
		if len(opts.Guesses) != n || len(opts.Lower) != n || len(opts.Upper) != n {
			return 0, nil, fmt.Errorf(
				"guesses, lower and upper must supply %d values each (one per ansatz parameter): %w",
				n, ErrBadFitParams)
		}
		guess = reformat(opts.Guesses, N)
		lower = reformat(opts.Lower, N)
		upper = reformat(opts.Upper, N)
		sigma = opts.Sigma
	} else {
		var degenerate bool
		guess, lower, upper, sigma, degenerate = defaultGuesses(y, x, scenario, N, n)
		if degenerate {
			return 0, unpack(make([]float64, n*N), n), nil
		}
	}

	p := leastsq(model, y, x, guess, lower, upper, sigma, n)
	groups := unpack(p, n)
	return rmse(model, y, x, groups), groups, nil
}

// runFit fits the model to the data, increasing the number of terms until
// the target RMSE is met when N is zero, or fitting exactly once with the
// requested N otherwise.
func runFit(model modelFunc, y, x []float64, target float64, scenario string, N, n int, opts Options) (float64, [][]float64, error) {
	if N > 0 {
		return fitOnce(model, y, x, scenario, N, n, opts)
	}

	maxTerms := opts.MaxTerms
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}

	for terms := 2; ; terms++ {
		if terms > maxTerms {
			return 0, nil, fmt.Errorf(
				"%s fit did not reach RMSE %g within %d terms: %w",
				scenario, target, maxTerms, ErrMaxTermsExceeded)
		}
		r, groups, err := fitOnce(model, y, x, scenario, terms, n, opts)
		if err != nil {
			return 0, nil, err
		}
		logging.Debug("fit iteration", logging.Fields{
			"scenario": scenario,
			"terms":    terms,
			"rmse":     r,
			"target":   target,
		})
		if r <= target {
			return r, groups, nil
		}
	}
}
