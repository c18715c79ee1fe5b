package secretstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// Client is the subset of the Secret Manager client used here.
// *secretmanager.Client satisfies it.
type Client interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

// ClientFactory builds an authenticated store client.
type ClientFactory func(ctx context.Context, opts ...option.ClientOption) (Client, error)

// Credential is what a Reader needs from a resolved credential.
type Credential interface {
	// ProjectID is the project secrets are read from.
	ProjectID() string
	// ClientOptions authenticate the store client.
	ClientOptions() []option.ClientOption
}

// SecretManagerBackend is the backend name of the Secret Manager client.
const SecretManagerBackend = "secretmanager"

// SecretManagerPackage is the Go package providing the Secret Manager client.
const SecretManagerPackage = "cloud.google.com/go/secretmanager/apiv1"

// NewSecretManagerClient is the ClientFactory for Google Cloud Secret Manager.
func NewSecretManagerClient(ctx context.Context, opts ...option.ClientOption) (Client, error) {
	c, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultScopes returns the OAuth scopes the Secret Manager client needs.
func DefaultScopes() []string {
	return secretmanager.DefaultAuthScopes()
}

// Backends is a registry of store client factories.
type Backends struct {
	mu        sync.RWMutex
	factories map[string]ClientFactory
}

// NewBackends creates an empty backend registry.
func NewBackends() *Backends {
	return &Backends{factories: make(map[string]ClientFactory)}
}

// Register adds a factory under name.
func (b *Backends) Register(name string, factory ClientFactory) error {
	name = strings.TrimSpace(name)
	if name == "" || factory == nil {
		return errors.New("secretstore: invalid backend registration")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.factories[name]; exists {
		return fmt.Errorf("secretstore: backend %q already registered", name)
	}
	b.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under name.
func (b *Backends) Lookup(name string) (ClientFactory, error) {
	b.mu.RLock()
	factory, ok := b.factories[strings.TrimSpace(name)]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotRegistered, name)
	}
	return factory, nil
}

// List returns registered backend names.
func (b *Backends) List() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.factories))
	for name := range b.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InstallSecretManager registers the Secret Manager factory in b.
// It succeeds when the backend is already present.
func InstallSecretManager(b *Backends) error {
	if _, err := b.Lookup(SecretManagerBackend); err == nil {
		return nil
	}
	if err := b.Register(SecretManagerBackend, NewSecretManagerClient); err != nil {
		// Lost a race with another installer.
		if _, lerr := b.Lookup(SecretManagerBackend); lerr == nil {
			return nil
		}
		return err
	}
	return nil
}

// DefaultBackends is the process-wide backend registry. It starts empty;
// the ensure package installs the Secret Manager backend on first use.
var DefaultBackends = NewBackends()
