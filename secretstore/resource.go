package secretstore

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonwraymond/credops/envkind"
)

// LatestVersion is the version alias for the newest enabled version.
const LatestVersion = "latest"

var (
	secretIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,255}$`)
	versionPattern  = regexp.MustCompile(`^(latest|[1-9][0-9]*)$`)
)

// Resource addresses one secret version.
type Resource struct {
	Project string
	Secret  string
	Version string
}

// Name returns the full version resource name. An empty version is latest.
func (r Resource) Name() string {
	version := r.Version
	if version == "" {
		version = LatestVersion
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", r.Project, r.Secret, version)
}

// Validate checks every part of the address. Failures are
// *InvalidResourceError; a project that is empty, malformed or an
// environment label never passes.
func (r Resource) Validate() error {
	if reason := envkind.ValidateProjectID(r.Project); reason != "" {
		return &InvalidResourceError{Field: FieldProject, Value: r.Project, Reason: reason}
	}
	if !secretIDPattern.MatchString(r.Secret) {
		return &InvalidResourceError{Field: FieldSecret, Value: r.Secret, Reason: "secret ids are 1-255 letters, digits, '-' or '_'"}
	}
	if r.Version != "" && !versionPattern.MatchString(r.Version) {
		return &InvalidResourceError{Field: FieldVersion, Value: r.Version, Reason: "want latest or a positive number"}
	}
	return nil
}

// IsResourceName reports whether s looks like a full secret resource name
// rather than a short secret id.
func IsResourceName(s string) bool {
	return strings.HasPrefix(s, "projects/") && strings.Contains(s, "/secrets/")
}

// ParseResource parses projects/{p}/secrets/{s}[/versions/{v}]. A missing
// version segment means latest.
func ParseResource(name string) (Resource, error) {
	parts := strings.Split(strings.TrimSpace(name), "/")
	var res Resource
	switch {
	case len(parts) == 4 && parts[0] == "projects" && parts[2] == "secrets":
		res = Resource{Project: parts[1], Secret: parts[3], Version: LatestVersion}
	case len(parts) == 6 && parts[0] == "projects" && parts[2] == "secrets" && parts[4] == "versions":
		res = Resource{Project: parts[1], Secret: parts[3], Version: parts[5]}
	default:
		return Resource{}, &InvalidResourceError{Field: FieldName, Value: name, Reason: "want projects/{project}/secrets/{secret}[/versions/{version}]"}
	}
	if err := res.Validate(); err != nil {
		return Resource{}, err
	}
	return res, nil
}
