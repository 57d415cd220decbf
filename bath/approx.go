package bath

import (
	"fmt"
	"math"

	"github.com/openquantum/bathkit/fit"
	"github.com/openquantum/bathkit/logging"
)

// Named approximation methods accepted by ExponentialApproximation.
const (
	MethodCorrelationFit = "correlation_fit"
	MethodUnderdampedFit = "underdamped_fit"
	MethodMatsubara      = "matsubara"
	MethodPade           = "pade"
)

// MatsubaraApproximator is implemented by environments that admit a
// Matsubara expansion of their correlation function.
type MatsubaraApproximator interface {
	MatsubaraApproximation(nk int, combine bool) (*ExponentialBosonicEnvironment, error)
}

// PadeApproximator is implemented by environments that admit a Pade
// spectral decomposition.
type PadeApproximator interface {
	PadeApproximation(nk int, combine bool) (*ExponentialBosonicEnvironment, error)
}

// ApproxOptions collects the per-method parameters of
// ExponentialApproximation. Only the fields relevant to the chosen method
// are consulted.
type ApproxOptions struct {
	// TList is the time grid for correlation function fits.
	TList []float64
	// Nr and Ni fix the real/imaginary term counts of a correlation fit;
	// zero searches automatically.
	Nr, Ni int
	// FullAnsatz enables the four-parameter correlation ansatz.
	FullAnsatz bool

	// WList is the frequency grid for spectral density fits.
	WList []float64
	// N fixes the term count of a spectral fit; zero searches
	// automatically.
	N int

	// Nk is the number of thermal poles for matsubara, pade and
	// underdamped_fit.
	Nk int

	// FinalRMSE overrides the automatic searches' target accuracy.
	FinalRMSE float64
	// MaxTerms caps the automatic term search.
	MaxTerms int

	// NoCombine keeps matching exponents separate in the result.
	NoCombine bool
}

// ExponentialApproximation approximates an environment by an exponential
// decomposition using the named method. Fitting methods work on any
// environment; matsubara and pade require the environment to support the
// corresponding expansion.
func ExponentialApproximation(env Environment, method string, opts ApproxOptions) (*ExponentialBosonicEnvironment, error) {
	logging.Debug("exponential approximation", logging.Fields{"method": method})

	switch method {
	case MethodCorrelationFit:
		approx, _, err := CorrelationFit(env, opts.TList, fit.Options{
			Nr:         opts.Nr,
			Ni:         opts.Ni,
			FinalRMSE:  opts.FinalRMSE,
			FullAnsatz: opts.FullAnsatz,
			MaxTerms:   opts.MaxTerms,
		})
		return approx, err

	case MethodUnderdampedFit:
		approx, _, err := UnderdampedFit(env, opts.WList, opts.Nk, fit.Options{
			N:         opts.N,
			FinalRMSE: opts.FinalRMSE,
			MaxTerms:  opts.MaxTerms,
		})
		return approx, err

	case MethodMatsubara:
		m, ok := env.(MatsubaraApproximator)
		if !ok {
			return nil, fmt.Errorf("environment %T has no Matsubara expansion: %w", env, ErrUnknownMethod)
		}
		return m.MatsubaraApproximation(opts.Nk, !opts.NoCombine)

	case MethodPade:
		p, ok := env.(PadeApproximator)
		if !ok {
			return nil, fmt.Errorf("environment %T has no Pade expansion: %w", env, ErrUnknownMethod)
		}
		return p.PadeApproximation(opts.Nk, !opts.NoCombine)

	default:
		return nil, fmt.Errorf("approximation method %q: %w", method, ErrUnknownMethod)
	}
}

// CorrelationFit samples the environment's correlation function on tlist,
// fits it by damped oscillations, and returns the resulting exponential
// environment together with the fit diagnostics.
func CorrelationFit(env Environment, tlist []float64, opts fit.Options) (*ExponentialBosonicEnvironment, *fit.CorrelationResult, error) {
	c, err := env.CorrelationFunction(tlist)
	if err != nil {
		return nil, nil, err
	}

	result, err := fit.Correlation(c, tlist, opts)
	if err != nil {
		return nil, nil, err
	}

	envOpts := []Option{WithTag(env.Tag())}
	if T, ok := env.Temperature(); ok {
		envOpts = append(envOpts, WithTemperature(T))
	}
	approx, err := NewExponentialEnvironment(
		result.CkReal, result.VkReal, result.CkImag, result.VkImag, envOpts...)
	if err != nil {
		return nil, nil, err
	}
	return approx, result, nil
}

// UnderdampedFit fits the environment's spectral density on wlist by a sum
// of underdamped modes and expands each mode into its Matsubara exponents
// with nk thermal poles. The expansion needs the bath temperature.
func UnderdampedFit(env Environment, wlist []float64, nk int, opts fit.Options) (*ExponentialBosonicEnvironment, *fit.SpectralResult, error) {
	T, ok := env.Temperature()
	if !ok {
		return nil, nil, fmt.Errorf("underdamped fit: %w", ErrMissingTemperature)
	}

	j, err := env.SpectralDensity(wlist)
	if err != nil {
		return nil, nil, err
	}

	result, err := fit.Underdamped(j, wlist, opts)
	if err != nil {
		return nil, nil, err
	}

	var ckReal, vkReal, ckImag, vkImag []complex128
	a, b, c := result.Params[0], result.Params[1], result.Params[2]
	for k := range a {
		// Each Meier-Tannor term is exactly an underdamped mode with
		// lam^2 = a, gamma = 2b and w0^2 = b^2 + c^2. A negative amplitude
		// has no underdamped counterpart and would put NaN coefficients in
		// every downstream exponent.
		if a[k] < 0 {
			return nil, nil, fmt.Errorf("underdamped fit: term %d has negative amplitude %g: %w", k+1, a[k], fit.ErrBadFitParams)
		}
		lam := math.Sqrt(a[k])
		gamma := 2 * b[k]
		w0 := math.Sqrt(b[k]*b[k] + c[k]*c[k])

		cr, vr, ci, vi := underdampedMatsubaraParams(T, lam, gamma, w0, nk)
		ckReal = append(ckReal, cr...)
		vkReal = append(vkReal, vr...)
		ckImag = append(ckImag, ci...)
		vkImag = append(vkImag, vi...)
	}

	envOpts := []Option{WithTemperature(T), WithTag(env.Tag())}
	approx, err := NewExponentialEnvironment(ckReal, vkReal, ckImag, vkImag, envOpts...)
	if err != nil {
		return nil, nil, err
	}
	return approx, result, nil
}
