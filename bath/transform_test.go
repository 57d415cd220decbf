package bath

import (
	"math"
	"testing"
)

// The pair C(t) = exp(-|t|), S(w) = 2/(1+w^2) is an exact Fourier transform
// pair and exercises both transform directions.

func TestCorrelationToPowerSpectrum(t *testing.T) {
	env := FromCorrelationFunc(func(ti float64) complex128 {
		return complex(math.Exp(-ti), 0)
	}, WithSupportBound(40))

	w := linspace(-8, 8, 33)
	s, err := env.PowerSpectrum(w)
	if err != nil {
		t.Fatalf("PowerSpectrum: %v", err)
	}
	// The Nyquist-driven sampling (dt ~ pi/(2*wMax)) leaves a residual of
	// about 7e-3 near |w| = 8 regardless of tMax.
	for i, wi := range w {
		want := 2 / (1 + wi*wi)
		if !almostEqual(s[i], want, 1e-2) {
			t.Errorf("S(%g) = %g, want %g", wi, s[i], want)
		}
	}
}

func TestPowerSpectrumToCorrelation(t *testing.T) {
	// The Lorentzian tail beyond the support bound costs roughly 2/(pi*wMax)
	// at t = 0, so the bound must sit well above 60 for the tolerance below.
	env := FromPowerSpectrumFunc(func(wi float64) float64 {
		return 2 / (1 + wi*wi)
	}, WithSupportBound(200))

	ts := linspace(-4, 4, 17)
	c, err := env.CorrelationFunction(ts)
	if err != nil {
		t.Fatalf("CorrelationFunction: %v", err)
	}
	for i, ti := range ts {
		want := math.Exp(-math.Abs(ti))
		if !almostEqual(real(c[i]), want, 1e-2) {
			t.Errorf("Re C(%g) = %g, want %g", ti, real(c[i]), want)
		}
		if !almostEqual(imag(c[i]), 0, 1e-2) {
			t.Errorf("Im C(%g) = %g, want 0", ti, imag(c[i]))
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	env := FromCorrelationFunc(func(ti float64) complex128 {
		return complex(math.Exp(-ti*ti/2), 0)
	}, WithSupportBound(15))

	w := linspace(-5, 5, 21)
	s, err := env.PowerSpectrum(w)
	if err != nil {
		t.Fatalf("PowerSpectrum: %v", err)
	}

	// The Gaussian transforms to sqrt(2 pi) exp(-w^2/2).
	for i, wi := range w {
		want := math.Sqrt(2*math.Pi) * math.Exp(-wi*wi/2)
		if !almostEqual(s[i], want, 5e-3) {
			t.Errorf("S(%g) = %g, want %g", wi, s[i], want)
		}
	}
}
