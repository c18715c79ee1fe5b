package credential

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to one of these.
var (
	ErrBootstrapSecretNotFound  = errors.New("credential: bootstrap secret not found")
	ErrBootstrapSecretMalformed = errors.New("credential: bootstrap secret is not a valid service account")
	ErrKeyfilePathMissing       = errors.New("credential: keyfile path not configured")
	ErrKeyfileNotFound          = errors.New("credential: keyfile not found")
	ErrKeyfileMalformed         = errors.New("credential: keyfile is not a valid service account")
	ErrProjectIDUnresolved      = errors.New("credential: project id unresolved")
	ErrAmbientCredentials       = errors.New("credential: ambient credentials unavailable")
	ErrInvalidServiceAccount    = errors.New("credential: invalid service account")
	ErrUnsupportedKind          = errors.New("credential: unsupported environment kind")
	ErrInvalidConfig            = errors.New("credential: invalid config")
)

// BootstrapSecretNotFoundError reports a bootstrap secret that is either not
// configured (SecretID empty) or absent from the store.
type BootstrapSecretNotFoundError struct {
	SecretID  string
	ProjectID string
	Err       error
}

func (e *BootstrapSecretNotFoundError) Error() string {
	if e.SecretID == "" {
		return fmt.Sprintf("credential: %s is required in GCP_NATIVE environments", KeyBootstrapSecretID)
	}
	return fmt.Sprintf("credential: bootstrap secret %q not found in project %q", e.SecretID, e.ProjectID)
}

func (e *BootstrapSecretNotFoundError) Unwrap() []error {
	return withCause(ErrBootstrapSecretNotFound, e.Err)
}

// BootstrapSecretMalformedError reports a bootstrap payload that does not
// parse as service-account JSON.
type BootstrapSecretMalformedError struct {
	SecretID string
	Err      error
}

func (e *BootstrapSecretMalformedError) Error() string {
	return fmt.Sprintf("credential: bootstrap secret %q is not valid service-account JSON: %v", e.SecretID, e.Err)
}

func (e *BootstrapSecretMalformedError) Unwrap() []error {
	return withCause(ErrBootstrapSecretMalformed, e.Err)
}

// KeyfilePathMissingError reports that the keyfile key for the environment
// is not set.
type KeyfilePathMissingError struct {
	Key  string
	Kind string
}

func (e *KeyfilePathMissingError) Error() string {
	return fmt.Sprintf("credential: %s must be set in %s environments", e.Key, e.Kind)
}

func (e *KeyfilePathMissingError) Is(target error) bool { return target == ErrKeyfilePathMissing }

// KeyfileNotFoundError reports a keyfile path that does not exist or cannot
// be read.
type KeyfileNotFoundError struct {
	Key  string
	Path string
	Err  error
}

func (e *KeyfileNotFoundError) Error() string {
	return fmt.Sprintf("credential: keyfile %q from %s cannot be read: %v", e.Path, e.Key, e.Err)
}

func (e *KeyfileNotFoundError) Unwrap() []error { return withCause(ErrKeyfileNotFound, e.Err) }

// KeyfileMalformedError reports a keyfile whose contents are not a usable
// service account.
type KeyfileMalformedError struct {
	Key  string
	Path string
	Err  error
}

func (e *KeyfileMalformedError) Error() string {
	return fmt.Sprintf("credential: keyfile %q from %s is not valid service-account JSON: %v", e.Path, e.Key, e.Err)
}

func (e *KeyfileMalformedError) Unwrap() []error { return withCause(ErrKeyfileMalformed, e.Err) }

// ProjectIDUnresolvedError reports that no valid project id could be derived.
// Candidate holds the rejected value, if any.
type ProjectIDUnresolvedError struct {
	Kind      string
	Candidate string
	Reason    string
}

func (e *ProjectIDUnresolvedError) Error() string {
	if e.Candidate == "" {
		return fmt.Sprintf("credential: no project id for %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("credential: project id %q rejected for %s: %s", e.Candidate, e.Kind, e.Reason)
}

func (e *ProjectIDUnresolvedError) Is(target error) bool { return target == ErrProjectIDUnresolved }

// AmbientCredentialsError reports that default credentials could not be found.
type AmbientCredentialsError struct {
	Err error
}

func (e *AmbientCredentialsError) Error() string {
	return fmt.Sprintf("credential: application default credentials unavailable: %v", e.Err)
}

func (e *AmbientCredentialsError) Unwrap() []error { return withCause(ErrAmbientCredentials, e.Err) }

func withCause(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}
