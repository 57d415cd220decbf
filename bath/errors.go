package bath

import "errors"

// Error kinds reported by this package. All of them are terminal: they are
// returned synchronously by the call that violates the precondition and are
// never retried internally.
var (
	// ErrMissingTemperature indicates that a representation conversion
	// requiring the bath temperature was invoked on an environment whose
	// temperature was never set.
	ErrMissingTemperature = errors.New("bath temperature must be specified for this operation")

	// ErrMissingSupportBound indicates that a transform-based conversion
	// needed a time or frequency support bound (tMax/wMax) that was never
	// supplied.
	ErrMissingSupportBound = errors.New("support bound must be specified for this operation")

	// ErrShapeMismatch indicates tabulated data whose coordinate list is
	// absent or of a different length.
	ErrShapeMismatch = errors.New("sampled data and coordinate list lengths differ")

	// ErrInvalidExponent indicates an exponent specification whose optional
	// fields are inconsistent with its type, or a fermionic exponent passed
	// to a bosonic decomposition.
	ErrInvalidExponent = errors.New("invalid exponent specification")

	// ErrPartialListSpec indicates that only some of the four
	// coefficient/frequency lists were supplied to a decomposition
	// constructor.
	ErrPartialListSpec = errors.New("all four coefficient and frequency lists must be provided")

	// ErrUnknownMethod indicates an unregistered approximation method name.
	ErrUnknownMethod = errors.New("unknown approximation method")

	// ErrMissingDependency indicates that the special-function provider
	// required for an operation is not available.
	ErrMissingDependency = errors.New("special function provider not available")
)
