package bath

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// minTransformSamples is the floor on the FFT sample count; the
// Nyquist-driven spacing dt = pi/(2*wMax) is refined until at least this
// many samples cover [-tMax, tMax].
const minTransformSamples = 250

// fourierTransform approximates the continuous Fourier transform
//
//	g(w) = integral f(t) exp(-i*w*t) dt
//
// of a function f that is essentially zero outside [-tMax, tMax], for
// frequencies of interest up to |w| <= wMax. The function is sampled
// uniformly, transformed with a discrete FFT, phase-corrected for the time
// origin shift, and the frequency-domain samples are wrapped in a cubic
// spline so the result can be evaluated at arbitrary points.
//
// The result is an approximation: accuracy degrades if f carries significant
// energy outside [-tMax, tMax] or beyond wMax.
func fourierTransform(f complexSampler, wMax, tMax float64) (ComplexFunc, error) {
	numSamples := int(math.Max(minTransformSamples, math.Ceil(4*tMax*wMax/math.Pi+1)))

	ts := make([]float64, numSamples)
	floats.Span(ts, -tMax, tMax)
	dt := ts[1] - ts[0]

	values, err := f(ts)
	if err != nil {
		return nil, err
	}

	g := fft.FFT(values)

	// DFT bin frequencies, in the usual order: non-negative first, then
	// negative. The phase factor accounts for sampling starting at -tMax
	// rather than 0.
	ws := make([]float64, numSamples)
	for k := range ws {
		cycles := float64(k)
		if k >= (numSamples+1)/2 {
			cycles = float64(k - numSamples)
		}
		ws[k] = 2 * math.Pi * cycles / (float64(numSamples) * dt)
	}
	for k := range g {
		g[k] *= complex(dt, 0) * cmplx.Exp(complex(0, ws[k]*tMax))
	}

	// Reorder into ascending frequency for the spline.
	order := make([]int, numSamples)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return ws[order[i]] < ws[order[j]] })

	sortedW := make([]float64, numSamples)
	sortedG := make([]complex128, numSamples)
	for i, idx := range order {
		sortedW[i] = ws[idx]
		sortedG[i] = g[idx]
	}

	return complexInterpolation(nil, sortedW, sortedG, "fourier transform")
}
