package secretstore

import (
	"context"
	"errors"
	"hash/crc32"
	"testing"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubCredential struct {
	project string
}

func (c stubCredential) ProjectID() string                    { return c.project }
func (c stubCredential) ClientOptions() []option.ClientOption { return nil }

// fakeClient serves payloads from a map keyed by full version name.
type fakeClient struct {
	values   map[string][]byte
	errs     map[string]error
	badSum   bool
	requests []string
	closed   bool
}

func (c *fakeClient) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	c.requests = append(c.requests, req.GetName())
	if err, ok := c.errs[req.GetName()]; ok {
		return nil, err
	}
	data, ok := c.values[req.GetName()]
	if !ok {
		return nil, status.Error(codes.NotFound, "secret not found")
	}
	sum := int64(crc32.Checksum(data, crc32.MakeTable(crc32.Castagnoli)))
	if c.badSum {
		sum++
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Name:    req.GetName(),
		Payload: &secretmanagerpb.SecretPayload{Data: data, DataCrc32C: &sum},
	}, nil
}

func (c *fakeClient) Close() error {
	c.closed = true
	return nil
}

// newFakeReader returns a Reader whose backend hands out client and counts
// how many clients were created.
func newFakeReader(t *testing.T, client *fakeClient) (*Reader, *int) {
	t.Helper()
	created := 0
	backends := NewBackends()
	err := backends.Register(SecretManagerBackend, func(context.Context, ...option.ClientOption) (Client, error) {
		created++
		return client, nil
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return NewReader(ReaderConfig{Backends: backends}), &created
}

// newFailingReader returns a Reader whose backend fails the test if used.
func newFailingReader(t *testing.T) *Reader {
	t.Helper()
	backends := NewBackends()
	_ = backends.Register(SecretManagerBackend, func(context.Context, ...option.ClientOption) (Client, error) {
		t.Fatalf("client must not be created")
		return nil, errors.New("unreachable")
	})
	return NewReader(ReaderConfig{Backends: backends})
}
