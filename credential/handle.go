package credential

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/jonwraymond/credops/envkind"
	"github.com/jonwraymond/credops/secretstore"
)

// Handle is a resolved credential and the project it is bound to.
// A Handle is meant for one call; callers should not keep it around.
type Handle struct {
	creds     *google.Credentials
	projectID string
	kind      envkind.Kind
	source    string
	email     string
}

// NewHandle wraps creds. The project id is validated the same way Resolve
// validates it, so test doubles obey the same rules.
func NewHandle(creds *google.Credentials, projectID string, kind envkind.Kind, source string) (*Handle, error) {
	if creds == nil {
		return nil, errors.New("credential: nil credentials")
	}
	if err := checkProjectID(kind, projectID, "no project id given"); err != nil {
		return nil, err
	}
	return &Handle{creds: creds, projectID: projectID, kind: kind, source: source}, nil
}

// ProjectID is the project secrets are read from.
func (h *Handle) ProjectID() string { return h.projectID }

// Kind is the environment the handle was resolved in.
func (h *Handle) Kind() envkind.Kind { return h.kind }

// Source describes where the credential came from, e.g. "keyfile:/tmp/sa.json".
func (h *Handle) Source() string { return h.source }

// ServiceAccountEmail is the client email of keyfile and bootstrap
// credentials. It is empty for ambient credentials.
func (h *Handle) ServiceAccountEmail() string { return h.email }

// Credentials returns the underlying credentials for other Cloud clients.
func (h *Handle) Credentials() *google.Credentials { return h.creds }

// ClientOptions authenticate Cloud clients with the handle.
func (h *Handle) ClientOptions() []option.ClientOption {
	return []option.ClientOption{option.WithCredentials(h.creds)}
}

func (h *Handle) String() string {
	return fmt.Sprintf("credential.Handle{project=%s kind=%s source=%s}", h.projectID, h.kind, h.source)
}

var _ secretstore.Credential = (*Handle)(nil)
