package secretstore

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

// SecretAccessorRole is the IAM role needed to read secret payloads.
const SecretAccessorRole = "roles/secretmanager.secretAccessor"

// Sentinel errors. Typed errors below unwrap to one of these.
var (
	ErrSecretNameMissing    = errors.New("secretstore: secret name is required")
	ErrSecretNotFound       = errors.New("secretstore: secret not found")
	ErrSecretAccessDenied   = errors.New("secretstore: secret access denied")
	ErrStoreUnavailable     = errors.New("secretstore: secret store unavailable")
	ErrInvalidResource      = errors.New("secretstore: invalid secret resource")
	ErrBackendNotRegistered = errors.New("secretstore: backend not registered")
	ErrNilCredential        = errors.New("secretstore: credential is nil")
	ErrNoRequests           = errors.New("secretstore: no secret requests")
)

// SecretNotFoundError reports a missing secret or version.
type SecretNotFoundError struct {
	Secret    string
	ProjectID string
	Version   string
	Err       error
}

func (e *SecretNotFoundError) Error() string {
	return fmt.Sprintf("secretstore: secret %q (version %s) not found in project %q; check the secret name and project",
		e.Secret, e.Version, e.ProjectID)
}

func (e *SecretNotFoundError) Unwrap() []error { return withCause(ErrSecretNotFound, e.Err) }

// SecretAccessDeniedError reports that the credential may not read the secret.
type SecretAccessDeniedError struct {
	Secret       string
	ProjectID    string
	RequiredRole string
	Err          error
}

func (e *SecretAccessDeniedError) Error() string {
	return fmt.Sprintf("secretstore: permission denied reading secret %q in project %q; grant %s to the calling identity",
		e.Secret, e.ProjectID, e.RequiredRole)
}

func (e *SecretAccessDeniedError) Unwrap() []error { return withCause(ErrSecretAccessDenied, e.Err) }

// SecretStoreUnavailableError wraps every other store failure.
type SecretStoreUnavailableError struct {
	Secret    string
	ProjectID string
	Code      codes.Code
	Err       error
}

func (e *SecretStoreUnavailableError) Error() string {
	msg := fmt.Sprintf("secretstore: reading secret %q in project %q failed with %s", e.Secret, e.ProjectID, e.Code)
	if e.Secret == "" {
		msg = fmt.Sprintf("secretstore: reading from project %q failed with %s", e.ProjectID, e.Code)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SecretStoreUnavailableError) Unwrap() []error { return withCause(ErrStoreUnavailable, e.Err) }

// Resource fields named by InvalidResourceError.
const (
	FieldName    = "name"
	FieldProject = "project"
	FieldSecret  = "secret"
	FieldVersion = "version"
)

// InvalidResourceError reports a malformed part of a secret address.
type InvalidResourceError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidResourceError) Error() string {
	msg := fmt.Sprintf("secretstore: invalid secret resource: %s %q", e.Field, e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidResourceError) Is(target error) bool { return target == ErrInvalidResource }

func withCause(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}
