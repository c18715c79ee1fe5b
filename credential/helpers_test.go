package credential

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jonwraymond/credops/secretstore"
)

var (
	keyOnce sync.Once
	keyPEM  string
)

func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	keyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("rsa.GenerateKey() error = %v", err)
		}
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			t.Fatalf("MarshalPKCS8PrivateKey() error = %v", err)
		}
		keyPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	})
	return keyPEM
}

// serviceAccountJSON returns key file bytes for project. Entries in
// overrides replace or, when nil, remove fields.
func serviceAccountJSON(t *testing.T, project string, overrides map[string]any) []byte {
	t.Helper()
	doc := map[string]any{
		"type":           "service_account",
		"project_id":     project,
		"private_key_id": "abc123",
		"private_key":    testPrivateKeyPEM(t),
		"client_email":   "runner@" + project + ".iam.gserviceaccount.com",
		"client_id":      "1234567890",
		"auth_uri":       "https://accounts.google.com/o/oauth2/auth",
		"token_uri":      "https://oauth2.googleapis.com/token",
	}
	for k, v := range overrides {
		if v == nil {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return data
}

func writeKeyfile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// storeClient serves secrets by full version name.
type storeClient struct {
	values map[string][]byte
	names  []string
}

func (c *storeClient) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	c.names = append(c.names, req.GetName())
	data, ok := c.values[req.GetName()]
	if !ok {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Name:    req.GetName(),
		Payload: &secretmanagerpb.SecretPayload{Data: data},
	}, nil
}

func (c *storeClient) Close() error { return nil }

func newStoreReader(t *testing.T, client *storeClient) *secretstore.Reader {
	t.Helper()
	backends := secretstore.NewBackends()
	err := backends.Register(secretstore.SecretManagerBackend, func(context.Context, ...option.ClientOption) (secretstore.Client, error) {
		return client, nil
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return secretstore.NewReader(secretstore.ReaderConfig{Backends: backends})
}

func ambientCredentials(project string) DefaultCredentialsFunc {
	return func(context.Context, ...string) (*google.Credentials, error) {
		return &google.Credentials{
			ProjectID:   project,
			TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ambient"}),
		}, nil
	}
}
