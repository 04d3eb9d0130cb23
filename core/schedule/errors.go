package schedule

import "fmt"

// InvalidInputError reports malformed train or platform data. It is returned
// before any engine runs; no partial schedule accompanies it.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// OptimizationFailedError reports that the exact engine found no feasible
// solution within its budget or failed internally. The planner recovers from
// it by falling back to the heuristic engine; it only surfaces to callers as
// the fallback marker and diagnostic message on the result.
type OptimizationFailedError struct {
	Cause string
	Err   error
}

func (e *OptimizationFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("optimization failed: %s: %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("optimization failed: %s", e.Cause)
}

func (e *OptimizationFailedError) Unwrap() error { return e.Err }

func invalidInputf(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}
