package envkind

import (
	"fmt"
	"strings"
)

// Kind identifies the execution context.
type Kind int

const (
	// Unknown is the zero value. Classify never returns it without an error.
	Unknown Kind = iota
	// GCPNative is a managed Google Cloud runtime with ambient credentials.
	GCPNative
	// HostedNotebook is a hosted notebook kernel (Colab, Colab Enterprise).
	HostedNotebook
	// Local is a developer workstation.
	Local
)

// String returns the canonical label for the kind.
func (k Kind) String() string {
	switch k {
	case GCPNative:
		return "GCP_NATIVE"
	case HostedNotebook:
		return "HOSTED_NOTEBOOK"
	case Local:
		return "LOCAL"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether k is one of the three classified kinds.
func (k Kind) Valid() bool {
	return k == GCPNative || k == HostedNotebook || k == Local
}

// reservedLabels are environment tags that callers have historically passed
// around as free text. None of them may ever stand in for a project id.
var reservedLabels = map[string]bool{
	"LOCAL":            true,
	"COLAB":            true,
	"COLAB_ENTERPRISE": true,
	"GCP":              true,
	"GCP_NATIVE":       true,
	"HOSTED_NOTEBOOK":  true,
	"UNKNOWN":          true,
}

// IsReservedLabel reports whether s is an environment label (case-insensitive).
func IsReservedLabel(s string) bool {
	return reservedLabels[strings.ToUpper(strings.TrimSpace(s))]
}

// ParseHint maps an explicit environment tag to a Kind.
//
// Accepted tags: LOCAL, COLAB, COLAB_ENTERPRISE, HOSTED_NOTEBOOK, GCP and
// GCP_NATIVE. An empty tag yields Unknown with no error.
func ParseHint(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return Unknown, nil
	case "LOCAL":
		return Local, nil
	case "COLAB", "COLAB_ENTERPRISE", "HOSTED_NOTEBOOK":
		return HostedNotebook, nil
	case "GCP", "GCP_NATIVE":
		return GCPNative, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownHint, s)
	}
}
