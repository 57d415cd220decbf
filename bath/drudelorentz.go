package bath

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// defaultMatsubaraTerms is the truncation used when summing the Matsubara
// expansion to evaluate the Drude-Lorentz correlation function directly.
const defaultMatsubaraTerms = 15000

// DrudeLorentzEnvironment describes a bosonic environment with the
// Lorentzian-cutoff spectral density
//
//	J(w) = 2*lam*gamma*w / (gamma^2 + w^2)
//
// where lam is the coupling strength and gamma the cutoff frequency.
type DrudeLorentzEnvironment struct {
	envBase
	Lam   float64
	Gamma float64
}

// NewDrudeLorentzEnvironment creates a Drude-Lorentz environment at
// temperature T (in frequency units) with coupling strength lam and cutoff
// frequency gamma.
func NewDrudeLorentzEnvironment(T, lam, gamma float64, opts ...Option) *DrudeLorentzEnvironment {
	cfg := applyOptions(opts)
	return &DrudeLorentzEnvironment{
		envBase: envBase{temp: T, hasTemp: true, tag: cfg.tag},
		Lam:     lam,
		Gamma:   gamma,
	}
}

// SpectralDensity evaluates the Drude-Lorentz spectral density.
func (e *DrudeLorentzEnvironment) SpectralDensity(w []float64) ([]float64, error) {
	result := make([]float64, len(w))
	for i, wi := range w {
		if wi > 0 {
			result[i] = 2 * e.Lam * e.Gamma * wi / (e.Gamma*e.Gamma + wi*wi)
		}
	}
	return result, nil
}

// PowerSpectrum evaluates the power spectrum. The zero-frequency value
// S(0) = 4*T*lam/gamma is the closed-form limit of the detailed-balance
// relation; nonzero frequencies use detailed balance directly.
func (e *DrudeLorentzEnvironment) PowerSpectrum(w []float64) ([]float64, error) {
	return psWithAnalyticZero(e.SpectralDensity, e.temp, w, 4*e.temp*e.Lam/e.Gamma)
}

// CorrelationFunction evaluates the correlation function by summing the
// Matsubara expansion with the default truncation.
func (e *DrudeLorentzEnvironment) CorrelationFunction(t []float64) ([]complex128, error) {
	return e.CorrelationFunctionN(t, defaultMatsubaraTerms)
}

// CorrelationFunctionN evaluates the correlation function by explicitly
// summing Nk terms of the Matsubara expansion.
func (e *DrudeLorentzEnvironment) CorrelationFunctionN(t []float64, nk int) ([]complex128, error) {
	ckReal, vkReal, ckImag, vkImag := e.matsubaraParams(nk)
	return sumExponentSeries(t, ckReal, vkReal, ckImag, vkImag), nil
}

// MatsubaraApproximation returns the exponential decomposition obtained by
// truncating the Matsubara expansion to Nk thermal poles.
func (e *DrudeLorentzEnvironment) MatsubaraApproximation(nk int, combine bool) (*ExponentialBosonicEnvironment, error) {
	ckReal, vkReal, ckImag, vkImag := e.matsubaraParams(nk)
	opts := []Option{WithTemperature(e.temp)}
	if !combine {
		opts = append(opts, WithoutCombine())
	}
	return NewExponentialEnvironment(ckReal, vkReal, ckImag, vkImag, opts...)
}

// PadeApproximation returns the exponential decomposition obtained from the
// [Nk-1/Nk] Pade spectral decomposition of the Bose function, which
// typically converges with far fewer terms than the Matsubara expansion.
func (e *DrudeLorentzEnvironment) PadeApproximation(nk int, combine bool) (*ExponentialBosonicEnvironment, error) {
	etaP, gammaP := e.padeCorr(nk)

	ckReal := make([]complex128, len(etaP))
	vkReal := make([]complex128, len(gammaP))
	for i := range etaP {
		ckReal[i] = complex(real(etaP[i]), 0)
		vkReal[i] = gammaP[i]
	}
	// Only the resonant pole contributes to the imaginary part.
	ckImag := []complex128{complex(imag(etaP[0]), 0)}
	vkImag := []complex128{gammaP[0]}

	opts := []Option{WithTemperature(e.temp)}
	if !combine {
		opts = append(opts, WithoutCombine())
	}
	return NewExponentialEnvironment(ckReal, vkReal, ckImag, vkImag, opts...)
}

// matsubaraParams calculates the Matsubara coefficients and frequencies.
func (e *DrudeLorentzEnvironment) matsubaraParams(nk int) (ckReal, vkReal, ckImag, vkImag []complex128) {
	lam, gamma, T := e.Lam, e.Gamma, e.temp

	ckReal = make([]complex128, 0, nk+1)
	vkReal = make([]complex128, 0, nk+1)
	ckReal = append(ckReal, complex(lam*gamma/math.Tan(gamma/(2*T)), 0))
	vkReal = append(vkReal, complex(gamma, 0))
	for k := 1; k <= nk; k++ {
		nu := 2 * math.Pi * float64(k) * T
		ckReal = append(ckReal, complex(8*lam*gamma*T*math.Pi*float64(k)*T/(nu*nu-gamma*gamma), 0))
		vkReal = append(vkReal, complex(nu, 0))
	}

	ckImag = []complex128{complex(-lam*gamma, 0)}
	vkImag = []complex128{complex(gamma, 0)}
	return ckReal, vkReal, ckImag, vkImag
}

// --- Pade decomposition ---

func (e *DrudeLorentzEnvironment) padeCorr(nk int) (etaP, gammaP []complex128) {
	beta := 1 / e.temp
	kappa, epsilon := padeKappaEpsilon(nk)

	etaP = append(etaP, complex(e.Lam*e.Gamma, 0)*
		complex(1/math.Tan(e.Gamma*beta/2), -1))
	gammaP = append(gammaP, complex(e.Gamma, 0))

	for ll := 1; ll <= nk; ll++ {
		nu := epsilon[ll] / beta
		etaP = append(etaP, complex(
			(kappa[ll]/beta)*4*e.Lam*e.Gamma*nu/(nu*nu-e.Gamma*e.Gamma), 0))
		gammaP = append(gammaP, complex(nu, 0))
	}
	return etaP, gammaP
}

func padeKappaEpsilon(nk int) (kappa, epsilon []float64) {
	eps := padeEps(nk)
	chi := padeChi(nk)

	kappa = []float64{0}
	prefactor := 0.5 * float64(nk) * (2*(float64(nk)+1) + 1)
	for j := 0; j < nk; j++ {
		term := prefactor
		for k := 0; k < nk-1; k++ {
			term *= (chi[k]*chi[k] - eps[j]*eps[j]) /
				(eps[k]*eps[k] - eps[j]*eps[j] + kroneckerDelta(j, k))
		}
		term /= eps[nk-1]*eps[nk-1] - eps[j]*eps[j] + kroneckerDelta(j, nk-1)
		kappa = append(kappa, term)
	}

	epsilon = append([]float64{0}, eps...)
	return kappa, epsilon
}

func kroneckerDelta(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

// padeEps computes the shift parameters from the eigenvalues of a symmetric
// tridiagonal matrix with off-diagonal entries 1/sqrt((2k+5)(2k+3)).
func padeEps(nk int) []float64 {
	evals := tridiagEigenvalues(2*nk, func(k int) float64 {
		return 1 / math.Sqrt(float64(2*k+5)*float64(2*k+3))
	})
	eps := make([]float64, nk)
	for i := 0; i < nk; i++ {
		eps[i] = -2 / evals[i]
	}
	return eps
}

// padeChi is the companion computation with off-diagonal entries
// 1/sqrt((2k+7)(2k+5)) on a matrix one size smaller.
func padeChi(nk int) []float64 {
	evals := tridiagEigenvalues(2*nk-1, func(k int) float64 {
		return 1 / math.Sqrt(float64(2*k+7)*float64(2*k+5))
	})
	chi := make([]float64, nk-1)
	for i := 0; i < nk-1; i++ {
		chi[i] = -2 / evals[i]
	}
	return chi
}

// tridiagEigenvalues returns the eigenvalues, in ascending order, of the
// n x n symmetric matrix whose only nonzero entries are the off-diagonals
// offDiag(k) at positions (k, k+1) and (k+1, k).
func tridiagEigenvalues(n int, offDiag func(k int) float64) []float64 {
	a := mat.NewSymDense(n, nil)
	for k := 0; k < n-1; k++ {
		a.SetSym(k, k+1, offDiag(k))
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(a, false); !ok {
		panic("bath: tridiagonal eigendecomposition failed")
	}
	return eig.Values(nil)
}

// psWithAnalyticZero fills zero-frequency entries with the provided
// closed-form limit and everything else through detailed balance, avoiding
// the numerical derivative entirely.
func psWithAnalyticZero(J realSampler, T float64, w []float64, s0 float64) ([]float64, error) {
	result := make([]float64, len(w))

	var nonzero []float64
	var idx []int
	for i, wi := range w {
		if wi == 0 {
			result[i] = s0
		} else {
			nonzero = append(nonzero, wi)
			idx = append(idx, i)
		}
	}
	if len(nonzero) == 0 {
		return result, nil
	}

	s, err := psFromSD(J, T, nonzero, defaultEps)
	if err != nil {
		return nil, err
	}
	for k, i := range idx {
		result[i] = s[k]
	}
	return result, nil
}

// sumExponentSeries evaluates C(t) = sum(ckR*exp(-vkR*|t|)) +
// i*sum(ckI*exp(-vkI*|t|)), conjugated for t < 0.
func sumExponentSeries(t []float64, ckReal, vkReal, ckImag, vkImag []complex128) []complex128 {
	result := make([]complex128, len(t))
	for i, ti := range t {
		absT := complex(math.Abs(ti), 0)
		var re, im complex128
		for k := range ckReal {
			re += ckReal[k] * cmplx.Exp(-vkReal[k]*absT)
		}
		for k := range ckImag {
			im += ckImag[k] * cmplx.Exp(-vkImag[k]*absT)
		}
		c := re + 1i*im
		if ti < 0 {
			c = complex(real(c), -imag(c))
		}
		result[i] = c
	}
	return result
}
