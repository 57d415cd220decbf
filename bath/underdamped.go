package bath

import (
	"math"
	"math/cmplx"
)

// UnderDampedEnvironment describes a bosonic environment with the
// underdamped-oscillator spectral density
//
//	J(w) = lam^2*gamma*w / ((w^2 - w0^2)^2 + gamma^2*w^2)
//
// where lam is the coupling strength, gamma the cutoff and w0 the resonance
// frequency.
type UnderDampedEnvironment struct {
	envBase
	Lam   float64
	Gamma float64
	W0    float64
}

// NewUnderDampedEnvironment creates an underdamped environment at
// temperature T (in frequency units).
func NewUnderDampedEnvironment(T, lam, gamma, w0 float64, opts ...Option) *UnderDampedEnvironment {
	cfg := applyOptions(opts)
	return &UnderDampedEnvironment{
		envBase: envBase{temp: T, hasTemp: true, tag: cfg.tag},
		Lam:     lam,
		Gamma:   gamma,
		W0:      w0,
	}
}

// SpectralDensity evaluates the underdamped spectral density.
func (e *UnderDampedEnvironment) SpectralDensity(w []float64) ([]float64, error) {
	result := make([]float64, len(w))
	for i, wi := range w {
		if wi > 0 {
			d := wi*wi - e.W0*e.W0
			result[i] = e.Lam * e.Lam * e.Gamma * wi / (d*d + e.Gamma*e.Gamma*wi*wi)
		}
	}
	return result, nil
}

// PowerSpectrum evaluates the power spectrum; the zero-frequency value
// S(0) = 2*T*lam^2*gamma/w0^4 is the closed-form limit.
func (e *UnderDampedEnvironment) PowerSpectrum(w []float64) ([]float64, error) {
	s0 := 2 * e.temp * e.Lam * e.Lam * e.Gamma / math.Pow(e.W0, 4)
	return psWithAnalyticZero(e.SpectralDensity, e.temp, w, s0)
}

// CorrelationFunction evaluates the correlation function through the
// numeric Fourier transform of the power spectrum. The spectral density is
// assumed negligible beyond w0 + 10*gamma.
func (e *UnderDampedEnvironment) CorrelationFunction(t []float64) ([]complex128, error) {
	wMax := e.W0 + 10*e.Gamma
	return cfFromPS(e.PowerSpectrum, wMax, t)
}

// MatsubaraApproximation returns the exponential decomposition with the
// conjugate resonance pole pair plus Nk thermal poles.
func (e *UnderDampedEnvironment) MatsubaraApproximation(nk int, combine bool) (*ExponentialBosonicEnvironment, error) {
	ckReal, vkReal, ckImag, vkImag := underdampedMatsubaraParams(e.temp, e.Lam, e.Gamma, e.W0, nk)
	opts := []Option{WithTemperature(e.temp)}
	if !combine {
		opts = append(opts, WithoutCombine())
	}
	return NewExponentialEnvironment(ckReal, vkReal, ckImag, vkImag, opts...)
}

// underdampedMatsubaraParams calculates the Matsubara coefficients and
// frequencies of an underdamped mode. The resonance contributes the complex
// conjugate pole pair at Gamma -+ i*Om with Om = sqrt(w0^2 - (gamma/2)^2)
// and Gamma = gamma/2; the thermal poles sit at 2*pi*k*T.
func underdampedMatsubaraParams(T, lam, gamma, w0 float64, nk int) (ckReal, vkReal, ckImag, vkImag []complex128) {
	beta := 1 / T
	om := math.Sqrt(w0*w0 - (gamma/2)*(gamma/2))
	gam := gamma / 2

	pPlus := complex(om, gam)   // Om + i*Gamma
	pMinus := complex(om, -gam) // Om - i*Gamma
	pref := complex(lam*lam/(4*om), 0)

	ckReal = make([]complex128, 0, nk+2)
	ckReal = append(ckReal,
		pref/cmplx.Tanh(complex(beta/2, 0)*pPlus),
		pref/cmplx.Tanh(complex(beta/2, 0)*pMinus),
	)
	for k := 1; k <= nk; k++ {
		nu := complex(2*math.Pi*float64(k)/beta, 0)
		ckReal = append(ckReal,
			complex(-2*lam*lam*gamma/beta, 0)*nu/
				((pPlus*pPlus+nu*nu)*(pMinus*pMinus+nu*nu)))
	}

	vkReal = make([]complex128, 0, nk+2)
	vkReal = append(vkReal, complex(gam, -om), complex(gam, om))
	for k := 1; k <= nk; k++ {
		vkReal = append(vkReal, complex(2*math.Pi*float64(k)*T, 0))
	}

	ckImag = []complex128{
		1i * pref,
		-1i * pref,
	}
	vkImag = []complex128{complex(gam, -om), complex(gam, om)}

	return ckReal, vkReal, ckImag, vkImag
}
