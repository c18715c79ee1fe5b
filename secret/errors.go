package secret

import "errors"

var (
	// ErrInvalidRegistration indicates an empty provider name or nil factory.
	ErrInvalidRegistration = errors.New("secret: invalid provider registration")

	// ErrProviderExists indicates a provider name registered twice.
	ErrProviderExists = errors.New("secret: provider already registered")

	// ErrProviderNotRegistered indicates an unknown provider name.
	ErrProviderNotRegistered = errors.New("secret: provider not registered")

	// ErrInvalidRef indicates a malformed secret reference.
	ErrInvalidRef = errors.New("secret: invalid secret reference")

	// ErrEmptyValue indicates a provider returned an empty value in strict mode.
	ErrEmptyValue = errors.New("secret: provider returned empty value")

	// ErrMissingEnv indicates ${VAR} references to unset variables.
	ErrMissingEnv = errors.New("secret: missing required environment variables")
)
