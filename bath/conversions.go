package bath

import (
	"math"
)

// defaultEps is the finite difference used for the one-sided numerical
// derivative in the zero-frequency power spectrum.
const defaultEps = 1e-10

// realSampler evaluates a real-valued representation on a grid.
type realSampler func(x []float64) ([]float64, error)

// complexSampler evaluates a complex-valued representation on a grid.
type complexSampler func(x []float64) ([]complex128, error)

// psFromSD derives the power spectrum from the spectral density through the
// detailed balance relation S(w) = 2*sign(w)*J(|w|)*(n(w,T)+1). At w = 0 the
// relation degenerates and the value is taken from the one-sided numerical
// derivative S(0) = 2*T*J(eps)/eps.
func psFromSD(J realSampler, T float64, w []float64, eps float64) ([]float64, error) {
	result := make([]float64, len(w))

	if T == 0 {
		j, err := J(w)
		if err != nil {
			return nil, err
		}
		for i, wi := range w {
			if wi > 0 {
				result[i] = 2 * j[i]
			}
		}
		return result, nil
	}

	absW := make([]float64, len(w))
	for i, wi := range w {
		absW[i] = math.Abs(wi)
	}
	j, err := J(absW)
	if err != nil {
		return nil, err
	}

	zeroValue := math.NaN()
	for i, wi := range w {
		if wi == 0 {
			if math.IsNaN(zeroValue) {
				je, err := J([]float64{eps})
				if err != nil {
					return nil, err
				}
				zeroValue = 2 * T * je[0] / eps
			}
			result[i] = zeroValue
			continue
		}
		result[i] = 2 * math.Copysign(1, wi) * j[i] * (nThermalAt(wi, T) + 1)
	}
	return result, nil
}

// sdFromPS inverts detailed balance: J(w) = S(w) / (2*(n(w,T)+1)) for w > 0,
// zero otherwise.
func sdFromPS(S realSampler, T float64, w []float64) ([]float64, error) {
	result := make([]float64, len(w))

	var positive []float64
	var idx []int
	for i, wi := range w {
		if wi > 0 {
			positive = append(positive, wi)
			idx = append(idx, i)
		}
	}
	if len(positive) == 0 {
		return result, nil
	}

	s, err := S(positive)
	if err != nil {
		return nil, err
	}
	for k, i := range idx {
		result[i] = s[k] / 2 / (nThermalAt(positive[k], T) + 1)
	}
	return result, nil
}

// psFromCF derives the power spectrum from the correlation function via the
// Fourier transform, evaluated at mirrored frequencies.
func psFromCF(C complexSampler, tMax float64, w []float64) ([]float64, error) {
	wMax := math.Abs(w[0])
	if len(w) > 1 {
		wMax = math.Max(wMax, math.Abs(w[len(w)-1]))
	}

	g, err := fourierTransform(C, wMax, tMax)
	if err != nil {
		return nil, err
	}

	result := make([]float64, len(w))
	for i, wi := range w {
		result[i] = real(g(-wi))
	}
	return result, nil
}

// cfFromPS derives the correlation function from the power spectrum via the
// inverse Fourier transform.
func cfFromPS(S realSampler, wMax float64, t []float64) ([]complex128, error) {
	tMax := math.Abs(t[0])
	if len(t) > 1 {
		tMax = math.Max(tMax, math.Abs(t[len(t)-1]))
	}

	f := func(ws []float64) ([]complex128, error) {
		s, err := S(ws)
		if err != nil {
			return nil, err
		}
		out := make([]complex128, len(s))
		for i, si := range s {
			out[i] = complex(si, 0)
		}
		return out, nil
	}

	g, err := fourierTransform(f, tMax, wMax)
	if err != nil {
		return nil, err
	}

	result := make([]complex128, len(t))
	for i, ti := range t {
		result[i] = g(ti) / complex(2*math.Pi, 0)
	}
	return result, nil
}
