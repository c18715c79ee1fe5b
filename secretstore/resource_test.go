package secretstore

import (
	"errors"
	"testing"
)

func TestParseResource(t *testing.T) {
	tests := []struct {
		in      string
		want    Resource
		wantErr bool
	}{
		{in: "projects/proj-one/secrets/s1", want: Resource{Project: "proj-one", Secret: "s1", Version: "latest"}},
		{in: "projects/proj-one/secrets/s1/versions/7", want: Resource{Project: "proj-one", Secret: "s1", Version: "7"}},
		{in: " projects/proj-one/secrets/s1/versions/latest ", want: Resource{Project: "proj-one", Secret: "s1", Version: "latest"}},
		{in: "projects/proj-one/secrets/s1/versions/0", wantErr: true},
		{in: "projects/proj-one/secrets", wantErr: true},
		{in: "projects//secrets/s1", wantErr: true},
		{in: "s1", wantErr: true},
		{in: "projects/proj-one/keys/s1", wantErr: true},
		{in: "projects/LOCAL/secrets/s1", wantErr: true},
		{in: "projects/COLAB/secrets/s1/versions/2", wantErr: true},
		{in: "projects/colab_enterprise/secrets/s1", wantErr: true},
		{in: "projects/p1/secrets/s1", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseResource(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidResource) {
				t.Fatalf("ParseResource(%q) error = %v, want ErrInvalidResource", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseResource(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseResource(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestResource_Name(t *testing.T) {
	r := Resource{Project: "proj-one", Secret: "s1"}
	if got := r.Name(); got != "projects/proj-one/secrets/s1/versions/latest" {
		t.Fatalf("Name() = %q", got)
	}
}

func TestIsResourceName(t *testing.T) {
	if !IsResourceName("projects/p/secrets/s") {
		t.Fatalf("expected resource name")
	}
	if IsResourceName("my-secret") {
		t.Fatalf("short id is not a resource name")
	}
}

func TestResource_ValidateRejectsEnvironmentLabels(t *testing.T) {
	for _, project := range []string{"LOCAL", "COLAB", "COLAB_ENTERPRISE", "local"} {
		err := Resource{Project: project, Secret: "hubspot_token"}.Validate()
		var invalid *InvalidResourceError
		if !errors.As(err, &invalid) || invalid.Field != FieldProject || invalid.Value != project {
			t.Fatalf("Validate(%q) error = %v, want project InvalidResourceError", project, err)
		}
		if !errors.Is(err, ErrInvalidResource) {
			t.Fatalf("Validate(%q) error should match ErrInvalidResource", project)
		}
	}
}
