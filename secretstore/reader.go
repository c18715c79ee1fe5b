package secretstore

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Payload is the decoded contents of one secret version.
type Payload struct {
	// SecretID is the short secret id.
	SecretID string
	// ProjectID is the project the secret was read from.
	ProjectID string
	// Version is the requested version (latest unless pinned).
	Version string
	// Resource is the concrete version name reported by the store.
	Resource string
	// Data is the raw secret value.
	Data []byte
}

// Text returns the payload as a UTF-8 string.
func (p *Payload) Text() string {
	return string(p.Data)
}

// String describes the payload without revealing its value.
func (p *Payload) String() string {
	return fmt.Sprintf("secretstore.Payload{%s, %d bytes}", p.Resource, len(p.Data))
}

// ReaderConfig configures a Reader.
type ReaderConfig struct {
	// Backends holds the client factories.
	// Default: DefaultBackends
	Backends *Backends

	// Backend selects the factory.
	// Default: SecretManagerBackend
	Backend string
}

// Reader fetches secret versions. It holds no clients between calls.
type Reader struct {
	config ReaderConfig
}

// NewReader creates a Reader. DefaultBackends starts empty, so callers
// that skip the pipeline must run an ensure.Ensurer over the same registry
// before the first read; otherwise reads fail with a
// *SecretStoreUnavailableError wrapping ErrBackendNotRegistered.
func NewReader(config ReaderConfig) *Reader {
	if config.Backends == nil {
		config.Backends = DefaultBackends
	}
	if config.Backend == "" {
		config.Backend = SecretManagerBackend
	}
	return &Reader{config: config}
}

// ReadSecret fetches the latest version of secretName from the credential's
// project.
func (r *Reader) ReadSecret(ctx context.Context, cred Credential, secretName string) (*Payload, error) {
	secretName = strings.TrimSpace(secretName)
	if secretName == "" {
		return nil, ErrSecretNameMissing
	}
	if cred == nil {
		return nil, ErrNilCredential
	}
	return r.ReadVersion(ctx, cred, Resource{
		Project: cred.ProjectID(),
		Secret:  secretName,
		Version: LatestVersion,
	})
}

// ReadVersion fetches one explicitly addressed version.
//
// A secret id that cannot name any secret is reported as a
// *SecretNotFoundError wrapping the *InvalidResourceError, without a store
// call. Other malformed parts return the *InvalidResourceError itself.
func (r *Reader) ReadVersion(ctx context.Context, cred Credential, res Resource) (*Payload, error) {
	if res.Secret == "" {
		return nil, ErrSecretNameMissing
	}
	if cred == nil {
		return nil, ErrNilCredential
	}
	if res.Version == "" {
		res.Version = LatestVersion
	}
	if err := res.Validate(); err != nil {
		var invalid *InvalidResourceError
		if errors.As(err, &invalid) && invalid.Field == FieldSecret {
			return nil, &SecretNotFoundError{Secret: res.Secret, ProjectID: res.Project, Version: res.Version, Err: err}
		}
		return nil, err
	}

	client, err := r.newClient(ctx, cred, res.Secret)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	return access(ctx, client, res)
}

// newClient builds a store client. A missing backend is reported as
// unavailable: the ensure package must have installed it first.
func (r *Reader) newClient(ctx context.Context, cred Credential, secret string) (Client, error) {
	factory, err := r.config.Backends.Lookup(r.config.Backend)
	if err != nil {
		return nil, &SecretStoreUnavailableError{
			Secret:    secret,
			ProjectID: cred.ProjectID(),
			Code:      codes.FailedPrecondition,
			Err:       fmt.Errorf("%w; run ensure before reading", err),
		}
	}
	client, err := factory(ctx, cred.ClientOptions()...)
	if err != nil {
		return nil, &SecretStoreUnavailableError{
			Secret:    secret,
			ProjectID: cred.ProjectID(),
			Code:      status.Code(err),
			Err:       fmt.Errorf("create client: %w", err),
		}
	}
	return client, nil
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func access(ctx context.Context, client Client, res Resource) (*Payload, error) {
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: res.Name(),
	})
	if err != nil {
		return nil, mapStoreError(err, res)
	}

	data := resp.GetPayload().GetData()
	if sum := resp.GetPayload().DataCrc32C; sum != nil {
		if int64(crc32.Checksum(data, castagnoli)) != *sum {
			return nil, &SecretStoreUnavailableError{
				Secret:    res.Secret,
				ProjectID: res.Project,
				Code:      codes.DataLoss,
				Err:       errors.New("payload checksum mismatch"),
			}
		}
	}

	name := resp.GetName()
	if name == "" {
		name = res.Name()
	}
	return &Payload{
		SecretID:  res.Secret,
		ProjectID: res.Project,
		Version:   res.Version,
		Resource:  name,
		Data:      data,
	}, nil
}

// mapStoreError translates a store status into this package's error kinds.
func mapStoreError(err error, res Resource) error {
	switch code := status.Code(err); code {
	case codes.NotFound:
		return &SecretNotFoundError{
			Secret:    res.Secret,
			ProjectID: res.Project,
			Version:   res.Version,
			Err:       err,
		}
	case codes.PermissionDenied:
		return &SecretAccessDeniedError{
			Secret:       res.Secret,
			ProjectID:    res.Project,
			RequiredRole: SecretAccessorRole,
			Err:          err,
		}
	default:
		return &SecretStoreUnavailableError{
			Secret:    res.Secret,
			ProjectID: res.Project,
			Code:      code,
			Err:       err,
		}
	}
}
