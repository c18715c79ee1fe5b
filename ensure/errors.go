package ensure

import (
	"errors"
	"fmt"
)

// ErrDependencyInstall is the sentinel for every *DependencyInstallError.
var ErrDependencyInstall = errors.New("ensure: secret-store client unavailable")

// DependencyInstallError reports that the client could not be made available.
type DependencyInstallError struct {
	// Package is the package the installer attempted to provide.
	Package string
	// Err holds the install error and the final probe error.
	Err error
}

func (e *DependencyInstallError) Error() string {
	msg := fmt.Sprintf("ensure: %s is unavailable after install attempt", e.Package)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DependencyInstallError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDependencyInstall}
	}
	return []error{ErrDependencyInstall, e.Err}
}
