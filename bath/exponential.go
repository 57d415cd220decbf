package bath

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/openquantum/bathkit/logging"
)

// ExponentialBosonicEnvironment is a bosonic environment whose correlation
// function is a finite sum of decaying exponentials,
//
//	C(t) = sum_k coeff_k * exp(-vk_k * t)   for t >= 0,
//
// with C(-t) = conj(C(t)). Its power spectrum and, when a temperature is
// known, its spectral density follow in closed form.
type ExponentialBosonicEnvironment struct {
	envBase
	exponents []CFExponent
}

// NewExponentialEnvironment builds an exponential environment from the
// coefficient/frequency lists of the real and imaginary expansions,
//
//	Re C(t) = sum_k ckReal[k] exp(-vkReal[k] t)
//	Im C(t) = sum_k ckImag[k] exp(-vkImag[k] t).
//
// All four lists must be provided together; ckReal/vkReal and ckImag/vkImag
// must each have matching lengths. Exponents sharing a frequency are merged
// unless WithoutCombine is given.
func NewExponentialEnvironment(ckReal, vkReal, ckImag, vkImag []complex128, opts ...Option) (*ExponentialBosonicEnvironment, error) {
	if ckReal == nil || vkReal == nil || ckImag == nil || vkImag == nil {
		return nil, fmt.Errorf(
			"all four exponent lists (ckReal, vkReal, ckImag, vkImag) must be provided: %w",
			ErrPartialListSpec)
	}
	if len(ckReal) != len(vkReal) {
		return nil, fmt.Errorf("ckReal has %d entries but vkReal has %d: %w",
			len(ckReal), len(vkReal), ErrShapeMismatch)
	}
	if len(ckImag) != len(vkImag) {
		return nil, fmt.Errorf("ckImag has %d entries but vkImag has %d: %w",
			len(ckImag), len(vkImag), ErrShapeMismatch)
	}

	exps := make([]CFExponent, 0, len(ckReal)+len(ckImag))
	for k := range ckReal {
		exps = append(exps, NewRealExponent(ckReal[k], vkReal[k]))
	}
	for k := range ckImag {
		exps = append(exps, NewImagExponent(ckImag[k], vkImag[k]))
	}
	return newExponentialEnvironment(exps, opts)
}

// NewExponentialEnvironmentFromExponents builds an exponential environment
// directly from a list of bosonic exponents. Fermionic exponents are
// rejected.
func NewExponentialEnvironmentFromExponents(exps []CFExponent, opts ...Option) (*ExponentialBosonicEnvironment, error) {
	for _, e := range exps {
		if e.Fermionic() {
			return nil, fmt.Errorf("bosonic environments cannot hold %s-type exponents: %w",
				e.Type(), ErrInvalidExponent)
		}
	}
	return newExponentialEnvironment(exps, opts)
}

func newExponentialEnvironment(exps []CFExponent, opts []Option) (*ExponentialBosonicEnvironment, error) {
	cfg := applyOptions(opts)
	if !cfg.noCombine {
		before := len(exps)
		exps = Combine(exps, CombineRTol, CombineATol)
		if len(exps) < before {
			logging.Debug("combined matching exponents", logging.Fields{
				"before": before,
				"after":  len(exps),
			})
		}
	} else {
		exps = append([]CFExponent(nil), exps...)
	}

	return &ExponentialBosonicEnvironment{
		envBase:   baseFromConfig(cfg),
		exponents: exps,
	}, nil
}

// Exponents returns a copy of the environment's exponent list.
func (e *ExponentialBosonicEnvironment) Exponents() []CFExponent {
	return append([]CFExponent(nil), e.exponents...)
}

// CorrelationFunction evaluates the exponential series at the given times,
// using the symmetry C(-t) = conj(C(t)) for negative times.
func (e *ExponentialBosonicEnvironment) CorrelationFunction(t []float64) ([]complex128, error) {
	out := make([]complex128, len(t))
	decay := make([]complex128, len(t))
	for _, exp := range e.exponents {
		vk := exp.Exponent()
		for i, ti := range t {
			decay[i] = cmplx.Exp(-vk * complex(math.Abs(ti), 0))
		}
		cmplxs.AddScaled(out, exp.Coefficient(), decay)
	}
	for i, ti := range t {
		if ti < 0 {
			out[i] = cmplx.Conj(out[i])
		}
	}
	return out, nil
}

// PowerSpectrum evaluates the closed-form spectrum of the exponential
// series,
//
//	S(w) = sum_k 2 Re[ coeff_k / (vk_k - i w) ].
func (e *ExponentialBosonicEnvironment) PowerSpectrum(w []float64) ([]float64, error) {
	out := make([]float64, len(w))
	for i, wi := range w {
		var s float64
		for _, exp := range e.exponents {
			s += 2 * real(exp.Coefficient()/(exp.Exponent()-complex(0, wi)))
		}
		out[i] = s
	}
	return out, nil
}

// SpectralDensity derives the spectral density from the power spectrum via
// detailed balance, which requires the environment temperature to be set.
// The result is zero for non-positive frequencies.
func (e *ExponentialBosonicEnvironment) SpectralDensity(w []float64) ([]float64, error) {
	T, err := e.requireTemperature("spectral density")
	if err != nil {
		return nil, err
	}
	s, err := e.PowerSpectrum(w)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(w))
	for i, wi := range w {
		if wi <= 0 {
			continue
		}
		out[i] = s[i] / (nThermalAt(wi, T) + 1) / 2
	}
	return out, nil
}
