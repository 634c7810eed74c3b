package annealing

import "errors"

// Error taxonomy for the annealing engine. Configuration errors surface
// synchronously from the setter or constructor that detected them;
// algorithmic failures surface from Run. Callers should use errors.Is
// against these sentinels rather than comparing error strings.
var (
	// ErrInvalidArgument marks malformed configuration: non-positive
	// counts, an empty range, mismatched lengths, or an out-of-range
	// probability.
	ErrInvalidArgument = errors.New("annealing: invalid argument")

	// ErrNotInitialized marks a Run call made before all required
	// collaborators (schedule, mutation, cooling law) were set.
	ErrNotInitialized = errors.New("annealing: not initialized")

	// ErrOutOfRange marks a job or processor index outside its domain.
	ErrOutOfRange = errors.New("annealing: index out of range")

	// ErrInvariant marks an internal inconsistency, such as a job with
	// no assigned processor. It indicates a bug in the caller or in
	// this package and is always fatal to the operation that hit it.
	ErrInvariant = errors.New("annealing: invariant violated")

	// ErrCancelled marks a Run that returned early because Stop was
	// called. It is informational: Run still returns the best schedule
	// found so far rather than a zero value.
	ErrCancelled = errors.New("annealing: cancelled")
)
