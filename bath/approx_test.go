package bath

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/openquantum/bathkit/fit"
)

func TestExponentialApproximation_Matsubara(t *testing.T) {
	env := NewDrudeLorentzEnvironment(1, 0.5, 1)

	approx, err := ExponentialApproximation(env, MethodMatsubara, ApproxOptions{Nk: 3})
	if err != nil {
		t.Fatalf("ExponentialApproximation: %v", err)
	}

	direct, err := env.MatsubaraApproximation(3, true)
	if err != nil {
		t.Fatalf("MatsubaraApproximation: %v", err)
	}
	if len(approx.Exponents()) != len(direct.Exponents()) {
		t.Errorf("dispatch produced %d exponents, direct call %d",
			len(approx.Exponents()), len(direct.Exponents()))
	}
}

func TestExponentialApproximation_NoCombine(t *testing.T) {
	env := NewDrudeLorentzEnvironment(1, 0.5, 1)

	combined, err := ExponentialApproximation(env, MethodMatsubara, ApproxOptions{Nk: 3})
	if err != nil {
		t.Fatalf("ExponentialApproximation: %v", err)
	}
	separate, err := ExponentialApproximation(env, MethodMatsubara,
		ApproxOptions{Nk: 3, NoCombine: true})
	if err != nil {
		t.Fatalf("ExponentialApproximation: %v", err)
	}

	// The resonant real and imaginary exponents share the frequency gamma
	// and merge into one RI exponent when combining.
	if len(separate.Exponents()) <= len(combined.Exponents()) {
		t.Errorf("NoCombine should keep more exponents: %d vs %d",
			len(separate.Exponents()), len(combined.Exponents()))
	}
}

func TestExponentialApproximation_UnknownMethod(t *testing.T) {
	env := NewDrudeLorentzEnvironment(1, 0.5, 1)
	_, err := ExponentialApproximation(env, "chebyshev", ApproxOptions{})
	if !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("got %v, want ErrUnknownMethod", err)
	}
}

func TestExponentialApproximation_UnsupportedExpansion(t *testing.T) {
	// An underdamped environment has no Pade expansion.
	env := NewUnderDampedEnvironment(1, 0.5, 0.4, 2)
	_, err := ExponentialApproximation(env, MethodPade, ApproxOptions{Nk: 3})
	if !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("got %v, want ErrUnknownMethod", err)
	}
}

func TestCorrelationFit_Exponential(t *testing.T) {
	// A single-exponent environment must be recovered by a one-term fit.
	env := FromCorrelationFunc(func(ti float64) complex128 {
		return complex(2*math.Exp(-3*ti), 0)
	}, WithTemperature(1))

	tlist := linspace(0, 3, 300)
	approx, result, err := CorrelationFit(env, tlist, fit.Options{Nr: 1, Ni: 1})
	if err != nil {
		t.Fatalf("CorrelationFit: %v", err)
	}
	if result.Info.RMSEReal > 1e-4 {
		t.Errorf("real-part RMSE = %g, want below 1e-4", result.Info.RMSEReal)
	}

	// Temperature carries over so the approximated environment supports
	// the spectral density.
	if T, ok := approx.Temperature(); !ok || T != 1 {
		t.Errorf("approximation temperature = %v, %v; want 1, true", T, ok)
	}

	c, err := approx.CorrelationFunction(tlist)
	if err != nil {
		t.Fatalf("approx CorrelationFunction: %v", err)
	}
	for i, ti := range tlist {
		want := 2 * math.Exp(-3*ti)
		if cmplx.Abs(c[i]-complex(want, 0)) > 1e-2 {
			t.Errorf("approx C(%g) = %v, want %g", ti, c[i], want)
			break
		}
	}
}

func TestUnderdampedFit_RequiresTemperature(t *testing.T) {
	env := FromSpectralDensityFunc(ohmicExpCutoff)
	_, _, err := UnderdampedFit(env, linspace(0.1, 10, 50), 2, fit.Options{N: 1})
	if !errors.Is(err, ErrMissingTemperature) {
		t.Errorf("got %v, want ErrMissingTemperature", err)
	}
}

func TestUnderdampedFit_RecoversUnderdampedEnvironment(t *testing.T) {
	// Fitting an actual underdamped spectral density with one term must
	// reproduce the environment's own Matsubara expansion.
	lam, gamma, w0 := 0.5, 0.4, 2.0
	env := NewUnderDampedEnvironment(1, lam, gamma, w0)

	wlist := linspace(0.01, 10, 400)
	approx, result, err := UnderdampedFit(env, wlist, 3, fit.Options{N: 1})
	if err != nil {
		t.Fatalf("UnderdampedFit: %v", err)
	}
	if result.Info.RMSE > 1e-4 {
		t.Errorf("RMSE = %g, want below 1e-4", result.Info.RMSE)
	}

	reference, err := env.MatsubaraApproximation(3, true)
	if err != nil {
		t.Fatalf("MatsubaraApproximation: %v", err)
	}

	tlist := linspace(0, 5, 25)
	cFit, err := approx.CorrelationFunction(tlist)
	if err != nil {
		t.Fatalf("fitted CorrelationFunction: %v", err)
	}
	cRef, err := reference.CorrelationFunction(tlist)
	if err != nil {
		t.Fatalf("reference CorrelationFunction: %v", err)
	}

	scale := cmplx.Abs(cRef[0])
	for i := range tlist {
		if cmplx.Abs(cFit[i]-cRef[i]) > 5e-2*scale {
			t.Errorf("C(%g): fit %v, reference %v", tlist[i], cFit[i], cRef[i])
		}
	}
}

func TestUnderdampedFit_RejectsNegativeAmplitude(t *testing.T) {
	env := FromSpectralDensityFunc(ohmicExpCutoff, WithTemperature(1))

	// Degenerate bounds pin the fitted amplitude at -1, which has no
	// underdamped mode; the expansion must refuse it instead of emitting
	// NaN coefficients.
	pinned := []float64{-1, 0.5, 2}
	opts := fit.Options{
		N:       1,
		Guesses: pinned,
		Lower:   pinned,
		Upper:   pinned,
		Sigma:   1e-2,
	}
	approx, _, err := UnderdampedFit(env, linspace(0.1, 10, 50), 2, opts)
	if !errors.Is(err, fit.ErrBadFitParams) {
		t.Fatalf("got %v, want fit.ErrBadFitParams", err)
	}
	if approx != nil {
		t.Errorf("got environment %v alongside the error", approx)
	}
}
