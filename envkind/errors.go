package envkind

import "errors"

var (
	// ErrAmbiguousEnvironment indicates neither the environment nor the
	// configuration can tell a hosted notebook from a local workstation.
	ErrAmbiguousEnvironment = errors.New("envkind: ambiguous environment")

	// ErrUnknownHint indicates an explicit environment tag that maps to no Kind.
	ErrUnknownHint = errors.New("envkind: unknown environment hint")
)

// AmbiguousEnvironmentError carries the reason classification gave up.
type AmbiguousEnvironmentError struct {
	Reason string
}

func (e *AmbiguousEnvironmentError) Error() string {
	return ErrAmbiguousEnvironment.Error() + ": " + e.Reason
}

// Is matches ErrAmbiguousEnvironment.
func (e *AmbiguousEnvironmentError) Is(target error) bool {
	return target == ErrAmbiguousEnvironment
}
