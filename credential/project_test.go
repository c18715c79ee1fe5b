package credential

import (
	"errors"
	"testing"

	"golang.org/x/oauth2/google"

	"github.com/jonwraymond/credops/envkind"
)

func TestNewHandle(t *testing.T) {
	creds := &google.Credentials{}

	h, err := NewHandle(creds, "proj-123", envkind.Local, "test")
	if err != nil {
		t.Fatalf("NewHandle() error = %v", err)
	}
	if h.ProjectID() != "proj-123" || h.Source() != "test" {
		t.Fatalf("unexpected handle: %v", h)
	}

	for _, label := range []string{"LOCAL", "COLAB", "COLAB_ENTERPRISE"} {
		_, err := NewHandle(creds, label, envkind.Local, "test")
		var pe *ProjectIDUnresolvedError
		if !errors.As(err, &pe) || pe.Candidate != label {
			t.Fatalf("NewHandle(%q) error = %v, want ProjectIDUnresolvedError", label, err)
		}
	}

	if _, err := NewHandle(nil, "proj-123", envkind.Local, "test"); err == nil {
		t.Fatalf("expected error for nil credentials")
	}
}
