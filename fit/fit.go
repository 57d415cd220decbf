// Package fit approximates sampled spectral functions and correlation
// functions by small sums of analytic terms: damped oscillations for
// correlation functions and Meier-Tannor terms for spectral densities. The
// number of terms can be fixed up front or grown automatically until a
// target accuracy is met.
package fit

import (
	"errors"
	"time"
)

// DefaultMaxTerms bounds the automatic term search when Options.MaxTerms
// is unset.
const DefaultMaxTerms = 20

var (
	// ErrMaxTermsExceeded is returned when the automatic term search hits
	// its cap without reaching the target RMSE.
	ErrMaxTermsExceeded = errors.New("fit: maximum number of terms exceeded")

	// ErrBadFitParams is returned when user-supplied guesses or bounds do
	// not match the ansatz parameter count.
	ErrBadFitParams = errors.New("fit: invalid fit parameters")
)

// Default RMSE targets for the automatic term search.
const (
	defaultCorrelationRMSE = 2e-5
	defaultSpectralRMSE    = 5e-6
)

// Options configures a fit. The zero value requests fully automatic
// behavior: the term count grows from two until the default RMSE target is
// met, with default guesses and bounds derived from the data.
//
// Guesses, Lower, Upper and Sigma are only honored when all four are
// supplied; a partial specification is discarded in favor of the defaults.
type Options struct {
	// Nr and Ni fix the number of real- and imaginary-part terms of a
	// correlation fit. Zero means search automatically.
	Nr, Ni int

	// N fixes the number of terms of a spectral fit; zero searches
	// automatically. Nk is the number of thermal poles used when the
	// spectral terms are expanded into exponents.
	N, Nk int

	// FinalRMSE overrides the target accuracy for the automatic search.
	FinalRMSE float64

	// Guesses, Lower and Upper hold one value per ansatz parameter, used
	// for every term. Sigma is the uncertainty assigned to each sample.
	Guesses, Lower, Upper []float64
	Sigma                 float64

	// FullAnsatz enables the four-parameter damped-oscillation ansatz for
	// correlation fits.
	FullAnsatz bool

	// MaxTerms caps the automatic term search. Zero means
	// DefaultMaxTerms.
	MaxTerms int
}

// Info records diagnostics of a correlation function fit.
type Info struct {
	Nr, Ni                 int
	FitTimeReal            time.Duration
	FitTimeImag            time.Duration
	RMSEReal, RMSEImag     float64
	ParamsReal, ParamsImag [][]float64
	Summary                string
}

// CorrelationResult holds the exponential decomposition produced by
// Correlation, as coefficient/frequency lists for the real and imaginary
// expansions.
type CorrelationResult struct {
	CkReal, VkReal []complex128
	CkImag, VkImag []complex128
	Info           Info
}

// Correlation fits the sampled correlation function c(t) by damped
// oscillations, fitting the real and imaginary parts independently, and
// returns the equivalent exponent lists.
func Correlation(c []complex128, t []float64, opts Options) (*CorrelationResult, error) {
	n := 3
	if opts.FullAnsatz {
		n = 4
	}
	target := opts.FinalRMSE
	if target == 0 {
		target = defaultCorrelationRMSE
	}

	yr := make([]float64, len(c))
	yi := make([]float64, len(c))
	for i, v := range c {
		yr[i] = real(v)
		yi[i] = imag(v)
	}

	start := time.Now()
	rmseR, paramsR, err := runFit(corrApproxReal, yr, t, target, "correlation_real", opts.Nr, n, opts)
	if err != nil {
		return nil, err
	}
	timeR := time.Since(start)

	start = time.Now()
	rmseI, paramsI, err := runFit(corrApproxImag, yi, t, target, "correlation_imag", opts.Ni, n, opts)
	if err != nil {
		return nil, err
	}
	timeI := time.Since(start)

	nr := len(paramsR[0])
	ni := len(paramsI[0])

	columns := []string{"a", "b", "c"}
	if n == 4 {
		columns = append(columns, "d")
	}
	summary := twoColumnSummary(
		genSummary(timeR, rmseR, nr, "the real part of\nthe correlation function", paramsR, columns),
		genSummary(timeI, rmseI, ni, "the imaginary part of\nthe correlation function", paramsI, columns),
	)

	ckReal, vkReal, ckImag, vkImag := generateCorrelationExponents(paramsR, paramsI)
	return &CorrelationResult{
		CkReal: ckReal,
		VkReal: vkReal,
		CkImag: ckImag,
		VkImag: vkImag,
		Info: Info{
			Nr:          nr,
			Ni:          ni,
			FitTimeReal: timeR,
			FitTimeImag: timeI,
			RMSEReal:    rmseR,
			RMSEImag:    rmseI,
			ParamsReal:  paramsR,
			ParamsImag:  paramsI,
			Summary:     summary,
		},
	}, nil
}

// SpectralInfo records diagnostics of a spectral density fit.
type SpectralInfo struct {
	N, Nk   int
	FitTime time.Duration
	RMSE    float64
	Params  [][]float64
	Summary string
}

// SpectralResult holds the fitted Meier-Tannor terms of a spectral density:
// Params[0], Params[1], Params[2] are the a, b, c coefficient lists.
type SpectralResult struct {
	Params [][]float64
	Info   SpectralInfo
}

// Underdamped fits the sampled spectral density j(w) by a sum of
// Meier-Tannor underdamped-mode terms.
func Underdamped(j, w []float64, opts Options) (*SpectralResult, error) {
	target := opts.FinalRMSE
	if target == 0 {
		target = defaultSpectralRMSE
	}

	start := time.Now()
	r, params, err := runFit(meierTannorSD, j, w, target, "spectral", opts.N, 3, opts)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	N := len(params[0])
	summary := genSummary(elapsed, r, N, "the spectral density", params,
		[]string{"a", "b", "c"})

	return &SpectralResult{
		Params: params,
		Info: SpectralInfo{
			N:       N,
			Nk:      opts.Nk,
			FitTime: elapsed,
			RMSE:    r,
			Params:  params,
			Summary: summary,
		},
	}, nil
}
