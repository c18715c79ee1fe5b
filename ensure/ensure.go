package ensure

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/credops/observe"
	"github.com/jonwraymond/credops/secretstore"
)

// ProbeFunc reports whether the dependency is usable.
type ProbeFunc func(ctx context.Context) error

// InstallFunc makes the dependency available.
type InstallFunc func(ctx context.Context) error

// Config configures an Ensurer.
type Config struct {
	// Package names the dependency in errors and logs.
	// Default: secretstore.SecretManagerPackage
	Package string

	// Probe checks availability. Required.
	Probe ProbeFunc

	// Install provides the dependency. Required.
	Install InstallFunc

	// Logger receives cold-path events.
	// Default: observe.NopLogger()
	Logger observe.Logger
}

// Ensurer runs the probe, install, re-probe sequence.
type Ensurer struct {
	config Config
}

// New creates an Ensurer.
func New(config Config) (*Ensurer, error) {
	if config.Probe == nil || config.Install == nil {
		return nil, errors.New("ensure: probe and install are required")
	}
	if config.Package == "" {
		config.Package = secretstore.SecretManagerPackage
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	return &Ensurer{config: config}, nil
}

// ForBackends returns an Ensurer that probes b for the Secret Manager backend
// and installs it there.
func ForBackends(b *secretstore.Backends, logger observe.Logger) *Ensurer {
	e, _ := New(Config{
		Package: secretstore.SecretManagerPackage,
		Probe: func(context.Context) error {
			_, err := b.Lookup(secretstore.SecretManagerBackend)
			return err
		},
		Install: func(context.Context) error {
			return secretstore.InstallSecretManager(b)
		},
		Logger: logger,
	})
	return e
}

// Package returns the dependency name.
func (e *Ensurer) Package() string {
	return e.config.Package
}

// Ensure makes the dependency available. The installer runs only when the
// first probe fails, and the probe is retried exactly once after it.
func (e *Ensurer) Ensure(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.config.Probe(ctx); err == nil {
		return nil
	}

	log := e.config.Logger
	log.Info(ctx, "installing secret-store client", observe.Field{Key: "package", Value: e.config.Package})

	installErr := e.config.Install(ctx)
	if installErr != nil {
		installErr = fmt.Errorf("install: %w", installErr)
	}

	probeErr := e.config.Probe(ctx)
	if probeErr == nil {
		if installErr != nil {
			log.Warn(ctx, "installer reported an error but the client is available",
				observe.Field{Key: "package", Value: e.config.Package},
				observe.Field{Key: "error", Value: installErr.Error()})
		}
		return nil
	}

	return &DependencyInstallError{
		Package: e.config.Package,
		Err:     errors.Join(installErr, fmt.Errorf("probe: %w", probeErr)),
	}
}
