package credential

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceAccountType is the "type" of a service-account key file.
const ServiceAccountType = "service_account"

// ServiceAccountKey is the JSON key file of a service account.
type ServiceAccountKey struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain,omitempty"`

	raw []byte
}

// ParseServiceAccount decodes and checks service-account JSON. The private
// key must be a PEM encoded RSA key.
func ParseServiceAccount(data []byte) (*ServiceAccountKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidServiceAccount, err)
	}
	if key.Type != ServiceAccountType {
		return nil, fmt.Errorf("%w: type %q, want %q", ErrInvalidServiceAccount, key.Type, ServiceAccountType)
	}
	if strings.TrimSpace(key.ClientEmail) == "" {
		return nil, fmt.Errorf("%w: client_email is empty", ErrInvalidServiceAccount)
	}
	if strings.TrimSpace(key.PrivateKey) == "" {
		return nil, fmt.Errorf("%w: private_key is empty", ErrInvalidServiceAccount)
	}
	if _, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey)); err != nil {
		return nil, fmt.Errorf("%w: private_key: %v", ErrInvalidServiceAccount, err)
	}
	key.raw = data
	return &key, nil
}

// JSON returns the original key file bytes.
func (k *ServiceAccountKey) JSON() []byte {
	return k.raw
}

// String identifies the account without key material.
func (k *ServiceAccountKey) String() string {
	return fmt.Sprintf("service account %s (project %q)", k.ClientEmail, k.ProjectID)
}
