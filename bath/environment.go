// Package bath models the bosonic environment of an open quantum system. An
// environment is characterized by any one of three equivalent
// representations: its spectral density J(w), its power spectrum S(w), or
// its two-time correlation function C(t). The package converts between the
// representations on demand, provides closed-form environment families
// (Drude-Lorentz, underdamped, Ohmic), and approximates arbitrary
// environments by finite sums of decaying exponentials for consumption by
// downstream simulation algorithms.
package bath

import (
	"fmt"
	"math"

	"github.com/openquantum/bathkit/specfun"
)

// Environment is the shared capability interface of all bosonic
// environments. Implementations are immutable after construction; every
// query is a pure function of its inputs.
type Environment interface {
	// Temperature returns the bath temperature in frequency units, and
	// whether it has been set.
	Temperature() (float64, bool)

	// Tag returns the opaque identifier attached to this environment, or
	// nil. It is carried for downstream bookkeeping and never inspected.
	Tag() any

	// SpectralDensity evaluates J at the given frequencies. J(w) = 0 for
	// w <= 0 by convention.
	SpectralDensity(w []float64) ([]float64, error)

	// PowerSpectrum evaluates S at the given frequencies.
	PowerSpectrum(w []float64) ([]float64, error)

	// CorrelationFunction evaluates C at the given times. The Hermitian
	// symmetry C(-t) = conj(C(t)) holds on every path.
	CorrelationFunction(t []float64) ([]complex128, error)
}

// EpsPowerSpectrum is implemented by environments whose power spectrum is
// obtained from the spectral density by numerical differentiation at zero
// frequency; eps is the finite difference used there.
type EpsPowerSpectrum interface {
	PowerSpectrumEps(w []float64, eps float64) ([]float64, error)
}

// SpectralDensityAt evaluates the spectral density at a single frequency.
func SpectralDensityAt(env Environment, w float64) (float64, error) {
	v, err := env.SpectralDensity([]float64{w})
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// PowerSpectrumAt evaluates the power spectrum at a single frequency.
func PowerSpectrumAt(env Environment, w float64) (float64, error) {
	v, err := env.PowerSpectrum([]float64{w})
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// CorrelationFunctionAt evaluates the correlation function at a single time.
func CorrelationFunctionAt(env Environment, t float64) (complex128, error) {
	v, err := env.CorrelationFunction([]float64{t})
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

type envConfig struct {
	T        float64
	hasT     bool
	tag      any
	bound    float64
	hasBound bool

	noCombine bool

	sf    specfun.Provider
	sfSet bool
}

// Option configures an environment constructor.
type Option func(*envConfig)

// WithTemperature sets the bath temperature, in units of frequency.
func WithTemperature(T float64) Option {
	return func(c *envConfig) {
		c.T = T
		c.hasT = true
	}
}

// WithTag attaches an opaque identifier to the environment.
func WithTag(tag any) Option {
	return func(c *envConfig) {
		c.tag = tag
	}
}

// WithSupportBound declares that the supplied representation is essentially
// zero outside [-max, max] (tMax for correlation functions, wMax for
// spectral functions). Required for transform-based conversions when the
// representation is given as a callable.
func WithSupportBound(max float64) Option {
	return func(c *envConfig) {
		c.bound = max
		c.hasBound = true
	}
}

// WithoutCombine disables the merging of exponents with matching
// frequencies in decomposition constructors.
func WithoutCombine() Option {
	return func(c *envConfig) {
		c.noCombine = true
	}
}

// WithSpecialFunctions injects the special-function provider used by Ohmic
// environments. Passing nil declares the capability unavailable: the
// constructor warns, and the first correlation function call fails with
// ErrMissingDependency.
func WithSpecialFunctions(p specfun.Provider) Option {
	return func(c *envConfig) {
		c.sf = p
		c.sfSet = true
	}
}

func applyOptions(opts []Option) envConfig {
	var cfg envConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// envBase carries the state shared by every environment variant.
type envBase struct {
	temp    float64
	hasTemp bool
	tag     any
}

func baseFromConfig(cfg envConfig) envBase {
	return envBase{temp: cfg.T, hasTemp: cfg.hasT, tag: cfg.tag}
}

func (b envBase) Temperature() (float64, bool) { return b.temp, b.hasTemp }
func (b envBase) Tag() any                     { return b.tag }

func (b envBase) requireTemperature(op string) (float64, error) {
	if !b.hasTemp {
		return 0, fmt.Errorf("%s: %w", op, ErrMissingTemperature)
	}
	return b.temp, nil
}

func supportFromGrid(xs []float64) float64 {
	return math.Max(math.Abs(xs[0]), math.Abs(xs[len(xs)-1]))
}

// --- environment from a correlation function ---

type cfEnvironment struct {
	envBase
	cf      ComplexFunc
	tMax    float64
	hasTMax bool
}

// FromCorrelationFunc constructs an environment from a correlation function
// callable. The callable is only consulted for times t >= 0; at negative
// times the symmetry C(-t) = conj(C(t)) is enforced. Supply
// WithSupportBound(tMax) to enable the transform-based derivation of the
// power spectrum.
func FromCorrelationFunc(C ComplexFunc, opts ...Option) Environment {
	cfg := applyOptions(opts)
	return &cfEnvironment{
		envBase: baseFromConfig(cfg),
		cf:      C,
		tMax:    cfg.bound,
		hasTMax: cfg.hasBound,
	}
}

// FromCorrelationData constructs an environment from a correlation function
// sampled at the times tlist. The support bound tMax is taken from the
// sample grid.
func FromCorrelationData(tlist []float64, values []complex128, opts ...Option) (Environment, error) {
	cf, err := complexInterpolation(nil, tlist, values, "correlation function")
	if err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)
	return &cfEnvironment{
		envBase: baseFromConfig(cfg),
		cf:      cf,
		tMax:    supportFromGrid(tlist),
		hasTMax: true,
	}, nil
}

func (e *cfEnvironment) CorrelationFunction(t []float64) ([]complex128, error) {
	result := make([]complex128, len(t))
	for i, ti := range t {
		if ti >= 0 {
			result[i] = e.cf(ti)
		} else {
			c := e.cf(-ti)
			result[i] = complex(real(c), -imag(c))
		}
	}
	return result, nil
}

func (e *cfEnvironment) PowerSpectrum(w []float64) ([]float64, error) {
	if !e.hasTMax {
		return nil, fmt.Errorf("power spectrum from correlation function: %w",
			ErrMissingSupportBound)
	}
	return psFromCF(e.CorrelationFunction, e.tMax, w)
}

func (e *cfEnvironment) SpectralDensity(w []float64) ([]float64, error) {
	T, err := e.requireTemperature("spectral density from power spectrum")
	if err != nil {
		return nil, err
	}
	return sdFromPS(e.PowerSpectrum, T, w)
}

// --- environment from a power spectrum ---

type psEnvironment struct {
	envBase
	ps      RealFunc
	wMax    float64
	hasWMax bool
}

// FromPowerSpectrumFunc constructs an environment from a power spectrum
// callable. Supply WithSupportBound(wMax) to enable the transform-based
// derivation of the correlation function.
func FromPowerSpectrumFunc(S RealFunc, opts ...Option) Environment {
	cfg := applyOptions(opts)
	return &psEnvironment{
		envBase: baseFromConfig(cfg),
		ps:      S,
		wMax:    cfg.bound,
		hasWMax: cfg.hasBound,
	}
}

// FromPowerSpectrumData constructs an environment from a power spectrum
// sampled at the frequencies wlist.
func FromPowerSpectrumData(wlist, values []float64, opts ...Option) (Environment, error) {
	ps, err := realInterpolation(nil, wlist, values, "power spectrum")
	if err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)
	return &psEnvironment{
		envBase: baseFromConfig(cfg),
		ps:      ps,
		wMax:    supportFromGrid(wlist),
		hasWMax: true,
	}, nil
}

func (e *psEnvironment) PowerSpectrum(w []float64) ([]float64, error) {
	return evalReal(e.ps, w), nil
}

func (e *psEnvironment) SpectralDensity(w []float64) ([]float64, error) {
	T, err := e.requireTemperature("spectral density from power spectrum")
	if err != nil {
		return nil, err
	}
	return sdFromPS(e.PowerSpectrum, T, w)
}

func (e *psEnvironment) CorrelationFunction(t []float64) ([]complex128, error) {
	if !e.hasWMax {
		return nil, fmt.Errorf("correlation function from power spectrum: %w",
			ErrMissingSupportBound)
	}
	return cfFromPS(e.PowerSpectrum, e.wMax, t)
}

// --- environment from a spectral density ---

type sdEnvironment struct {
	envBase
	sd      RealFunc
	wMax    float64
	hasWMax bool
}

// FromSpectralDensityFunc constructs an environment from a spectral density
// callable. The callable is only consulted for frequencies w > 0; the
// spectral density is zero at w <= 0 by convention. Supply
// WithSupportBound(wMax) to enable the transform-based derivation of the
// correlation function.
func FromSpectralDensityFunc(J RealFunc, opts ...Option) Environment {
	cfg := applyOptions(opts)
	return &sdEnvironment{
		envBase: baseFromConfig(cfg),
		sd:      J,
		wMax:    cfg.bound,
		hasWMax: cfg.hasBound,
	}
}

// FromSpectralDensityData constructs an environment from a spectral density
// sampled at the frequencies wlist.
func FromSpectralDensityData(wlist, values []float64, opts ...Option) (Environment, error) {
	sd, err := realInterpolation(nil, wlist, values, "spectral density")
	if err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)
	return &sdEnvironment{
		envBase: baseFromConfig(cfg),
		sd:      sd,
		wMax:    supportFromGrid(wlist),
		hasWMax: true,
	}, nil
}

func (e *sdEnvironment) SpectralDensity(w []float64) ([]float64, error) {
	result := make([]float64, len(w))
	for i, wi := range w {
		if wi > 0 {
			result[i] = e.sd(wi)
		}
	}
	return result, nil
}

func (e *sdEnvironment) PowerSpectrum(w []float64) ([]float64, error) {
	return e.PowerSpectrumEps(w, defaultEps)
}

// PowerSpectrumEps derives the power spectrum from the spectral density,
// using eps as the finite difference for the zero-frequency value.
func (e *sdEnvironment) PowerSpectrumEps(w []float64, eps float64) ([]float64, error) {
	T, err := e.requireTemperature("power spectrum from spectral density")
	if err != nil {
		return nil, err
	}
	return psFromSD(e.SpectralDensity, T, w, eps)
}

func (e *sdEnvironment) CorrelationFunction(t []float64) ([]complex128, error) {
	if !e.hasWMax {
		return nil, fmt.Errorf("correlation function from spectral density: %w",
			ErrMissingSupportBound)
	}
	return cfFromPS(e.PowerSpectrum, e.wMax, t)
}
