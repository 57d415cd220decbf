package bath

import "math"

// NThermal returns the Bose-Einstein occupation number for harmonic
// oscillator modes with frequencies w, at the temperature T given in units
// of frequency. For T <= 0 the occupation is zero at every frequency, and it
// is zero at w = 0 for any temperature.
func NThermal(w []float64, T float64) []float64 {
	result := make([]float64, len(w))
	if T <= 0 {
		return result
	}
	for i, wi := range w {
		if wi != 0 {
			result[i] = 1 / (math.Exp(wi/T) - 1)
		}
	}
	return result
}

func nThermalAt(w, T float64) float64 {
	if T <= 0 || w == 0 {
		return 0
	}
	return 1 / (math.Exp(w/T) - 1)
}
