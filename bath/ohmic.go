package bath

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/openquantum/bathkit/logging"
	"github.com/openquantum/bathkit/specfun"
)

// ohmicEps is the finite difference used when deriving the Ohmic power
// spectrum from the spectral density.
const ohmicEps = 1e-5

// OhmicEnvironment describes Ohmic, sub-Ohmic and super-Ohmic environments
// (depending on the power s) with the spectral density
//
//	J(w) = alpha * w^s / wc^(1-s) * exp(-w/wc)
//
// for w > 0 and zero otherwise. The nonzero-temperature correlation function
// requires Gamma and Hurwitz-zeta evaluations from a specfun.Provider.
type OhmicEnvironment struct {
	envBase
	Alpha float64
	Wc    float64
	S     float64

	sf specfun.Provider
}

// NewOhmicEnvironment creates an Ohmic-family environment at temperature T
// (in frequency units) with coupling strength alpha, cutoff wc and power s.
// The default special-function provider can be replaced (or removed) with
// WithSpecialFunctions.
func NewOhmicEnvironment(T, alpha, wc, s float64, opts ...Option) *OhmicEnvironment {
	cfg := applyOptions(opts)
	sf := specfun.Default
	if cfg.sfSet {
		sf = cfg.sf
	}
	if sf == nil {
		logging.Warn("no special function provider; the correlation function "+
			"of this Ohmic environment will not be available",
			logging.Fields{"alpha": alpha, "wc": wc, "s": s})
	}
	return &OhmicEnvironment{
		envBase: envBase{temp: T, hasTemp: true, tag: cfg.tag},
		Alpha:   alpha,
		Wc:      wc,
		S:       s,
		sf:      sf,
	}
}

// SpectralDensity evaluates the Ohmic spectral density. As with every other
// model, frequencies w <= 0 map to zero.
func (e *OhmicEnvironment) SpectralDensity(w []float64) ([]float64, error) {
	result := make([]float64, len(w))
	for i, wi := range w {
		if wi > 0 {
			result[i] = e.Alpha * math.Pow(wi, e.S) / math.Pow(e.Wc, 1-e.S) *
				math.Exp(-wi/e.Wc)
		}
	}
	return result, nil
}

// PowerSpectrum derives the power spectrum from the spectral density via
// detailed balance.
func (e *OhmicEnvironment) PowerSpectrum(w []float64) ([]float64, error) {
	return psFromSD(e.SpectralDensity, e.temp, w, ohmicEps)
}

// CorrelationFunction evaluates the correlation function. At T > 0,
//
//	C(t) = alpha*wc^(1-s)/pi * Gamma(s+1) * T^(s+1) *
//	       [zeta(s+1, u1) + zeta(s+1, u2)]
//
// with u1 = (1 + wc/T - i*wc*t)/(wc/T) and u2 = (1 + i*wc*t)/(wc/T); at
// T = 0 it reduces to alpha*wc^(s+1)/pi * Gamma(s+1) * (1+i*wc*t)^(-(s+1)).
func (e *OhmicEnvironment) CorrelationFunction(t []float64) ([]complex128, error) {
	if e.sf == nil {
		return nil, fmt.Errorf("ohmic correlation function: %w", ErrMissingDependency)
	}

	result := make([]complex128, len(t))
	if e.temp != 0 {
		pref := complex(e.Alpha*math.Pow(e.Wc, 1-e.S)/math.Pi*
			e.sf.Gamma(e.S+1)*math.Pow(e.temp, e.S+1), 0)
		bwc := e.Wc / e.temp
		for i, ti := range t {
			u1 := complex(1+bwc, -e.Wc*ti) / complex(bwc, 0)
			u2 := complex(1, e.Wc*ti) / complex(bwc, 0)
			result[i] = pref * (e.sf.HurwitzZeta(e.S+1, u1) +
				e.sf.HurwitzZeta(e.S+1, u2))
		}
		return result, nil
	}

	pref := complex(e.Alpha*math.Pow(e.Wc, e.S+1)/math.Pi*e.sf.Gamma(e.S+1), 0)
	for i, ti := range t {
		result[i] = pref * cmplx.Pow(complex(1, e.Wc*ti), complex(-(e.S+1), 0))
	}
	return result, nil
}
