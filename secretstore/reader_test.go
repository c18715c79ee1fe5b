package secretstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const testVersion = "projects/demo-project/secrets/api-key/versions/latest"

func TestReader_ReadSecret(t *testing.T) {
	client := &fakeClient{values: map[string][]byte{testVersion: []byte("s3cr3t")}}
	r, created := newFakeReader(t, client)

	p, err := r.ReadSecret(context.Background(), stubCredential{project: "demo-project"}, " api-key ")
	if err != nil {
		t.Fatalf("ReadSecret() error = %v", err)
	}
	if p.Text() != "s3cr3t" {
		t.Fatalf("Text() = %q, want %q", p.Text(), "s3cr3t")
	}
	if p.SecretID != "api-key" || p.ProjectID != "demo-project" || p.Version != LatestVersion {
		t.Fatalf("unexpected payload metadata: %+v", p)
	}
	if p.Resource != testVersion {
		t.Fatalf("Resource = %q, want %q", p.Resource, testVersion)
	}
	if *created != 1 {
		t.Fatalf("clients created = %d, want 1", *created)
	}
	if !client.closed {
		t.Fatalf("expected client to be closed")
	}
}

func TestReader_ReadSecret_EmptyNameBeforeNetwork(t *testing.T) {
	r := newFailingReader(t)

	for _, name := range []string{"", "   "} {
		_, err := r.ReadSecret(context.Background(), stubCredential{project: "demo-project"}, name)
		if !errors.Is(err, ErrSecretNameMissing) {
			t.Fatalf("ReadSecret(%q) error = %v, want ErrSecretNameMissing", name, err)
		}
	}
}

func TestReader_ReadSecret_NilCredential(t *testing.T) {
	r := newFailingReader(t)

	_, err := r.ReadSecret(context.Background(), nil, "api-key")
	if !errors.Is(err, ErrNilCredential) {
		t.Fatalf("error = %v, want ErrNilCredential", err)
	}
}

func TestReader_ReadVersion_Pinned(t *testing.T) {
	name := "projects/demo-project/secrets/api-key/versions/3"
	client := &fakeClient{values: map[string][]byte{name: []byte("v3")}}
	r, _ := newFakeReader(t, client)

	p, err := r.ReadVersion(context.Background(), stubCredential{project: "other"}, Resource{
		Project: "demo-project", Secret: "api-key", Version: "3",
	})
	if err != nil {
		t.Fatalf("ReadVersion() error = %v", err)
	}
	if p.Text() != "v3" || p.Version != "3" {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestReader_ReadVersion_InvalidResource(t *testing.T) {
	r := newFailingReader(t)

	_, err := r.ReadVersion(context.Background(), stubCredential{project: "demo-project"}, Resource{
		Project: "demo-project", Secret: "bad/name",
	})
	if !errors.Is(err, ErrInvalidResource) {
		t.Fatalf("error = %v, want ErrInvalidResource", err)
	}
	var nf *SecretNotFoundError
	if !errors.As(err, &nf) || nf.Secret != "bad/name" {
		t.Fatalf("error = %v, want SecretNotFoundError naming the secret", err)
	}
}

func TestReader_ReadSecret_InvalidName(t *testing.T) {
	r := newFailingReader(t)

	_, err := r.ReadSecret(context.Background(), stubCredential{project: "demo-project"}, "hub spot")
	if !errors.Is(err, ErrSecretNotFound) || !errors.Is(err, ErrInvalidResource) {
		t.Fatalf("error = %v, want SecretNotFoundError wrapping ErrInvalidResource", err)
	}
}

func TestReader_ReadVersion_ReservedProject(t *testing.T) {
	r := newFailingReader(t)

	for _, project := range []string{"LOCAL", "COLAB", "COLAB_ENTERPRISE"} {
		_, err := r.ReadVersion(context.Background(), stubCredential{project: "demo-project"}, Resource{
			Project: project, Secret: "hubspot_token",
		})
		var invalid *InvalidResourceError
		if !errors.As(err, &invalid) || invalid.Field != FieldProject {
			t.Fatalf("ReadVersion(%q) error = %v, want project InvalidResourceError", project, err)
		}
	}
}

func TestReader_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		sentinel error
		check    func(t *testing.T, err error)
	}{
		{
			name:     "not found",
			storeErr: status.Error(codes.NotFound, "missing"),
			sentinel: ErrSecretNotFound,
			check: func(t *testing.T, err error) {
				var nf *SecretNotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("expected SecretNotFoundError, got %T", err)
				}
				if nf.Secret != "api-key" || nf.ProjectID != "demo-project" {
					t.Fatalf("unexpected error fields: %+v", nf)
				}
			},
		},
		{
			name:     "permission denied",
			storeErr: status.Error(codes.PermissionDenied, "denied"),
			sentinel: ErrSecretAccessDenied,
			check: func(t *testing.T, err error) {
				var ad *SecretAccessDeniedError
				if !errors.As(err, &ad) {
					t.Fatalf("expected SecretAccessDeniedError, got %T", err)
				}
				if ad.RequiredRole != SecretAccessorRole {
					t.Fatalf("RequiredRole = %q", ad.RequiredRole)
				}
				if !strings.Contains(err.Error(), SecretAccessorRole) {
					t.Fatalf("message should name the role: %v", err)
				}
			},
		},
		{
			name:     "unavailable",
			storeErr: status.Error(codes.Unavailable, "try later"),
			sentinel: ErrStoreUnavailable,
			check: func(t *testing.T, err error) {
				var su *SecretStoreUnavailableError
				if !errors.As(err, &su) {
					t.Fatalf("expected SecretStoreUnavailableError, got %T", err)
				}
				if su.Code != codes.Unavailable {
					t.Fatalf("Code = %s, want Unavailable", su.Code)
				}
			},
		},
		{
			name:     "plain error",
			storeErr: errors.New("connection reset"),
			sentinel: ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{errs: map[string]error{testVersion: tt.storeErr}}
			r, _ := newFakeReader(t, client)

			_, err := r.ReadSecret(context.Background(), stubCredential{project: "demo-project"}, "api-key")
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("error = %v, want %v", err, tt.sentinel)
			}
			if !errors.Is(err, tt.storeErr) {
				t.Fatalf("error should wrap the store error")
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestReader_ChecksumMismatch(t *testing.T) {
	client := &fakeClient{values: map[string][]byte{testVersion: []byte("s3cr3t")}, badSum: true}
	r, _ := newFakeReader(t, client)

	_, err := r.ReadSecret(context.Background(), stubCredential{project: "demo-project"}, "api-key")
	var su *SecretStoreUnavailableError
	if !errors.As(err, &su) || su.Code != codes.DataLoss {
		t.Fatalf("error = %v, want DataLoss", err)
	}
}

func TestReader_ClientFactoryError(t *testing.T) {
	backends := NewBackends()
	_ = backends.Register(SecretManagerBackend, func(context.Context, ...option.ClientOption) (Client, error) {
		return nil, status.Error(codes.Unauthenticated, "no creds")
	})
	r := NewReader(ReaderConfig{Backends: backends})

	_, err := r.ReadSecret(context.Background(), stubCredential{project: "demo-project"}, "api-key")
	var su *SecretStoreUnavailableError
	if !errors.As(err, &su) {
		t.Fatalf("error = %v, want SecretStoreUnavailableError", err)
	}
	if su.Code != codes.Unauthenticated {
		t.Fatalf("Code = %s, want Unauthenticated", su.Code)
	}
	if su.Secret != "api-key" || su.ProjectID != "demo-project" {
		t.Fatalf("error should name the secret and project: %+v", su)
	}
}

func TestReader_BackendNotRegistered(t *testing.T) {
	r := NewReader(ReaderConfig{Backends: NewBackends()})

	_, err := r.ReadSecret(context.Background(), stubCredential{project: "demo-project"}, "api-key")
	if !errors.Is(err, ErrBackendNotRegistered) {
		t.Fatalf("error = %v, want ErrBackendNotRegistered", err)
	}
	var su *SecretStoreUnavailableError
	if !errors.As(err, &su) || su.Code != codes.FailedPrecondition || su.Secret != "api-key" {
		t.Fatalf("error = %v, want FailedPrecondition SecretStoreUnavailableError", err)
	}
	if !strings.Contains(err.Error(), "ensure") {
		t.Fatalf("error should point at ensure: %v", err)
	}
}

func TestPayload_StringRedacts(t *testing.T) {
	p := &Payload{Resource: testVersion, Data: []byte("s3cr3t")}
	if strings.Contains(p.String(), "s3cr3t") {
		t.Fatalf("String() leaked payload: %s", p.String())
	}
}
