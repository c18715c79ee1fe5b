package envkind

// Hint carries the configuration signals used when the environment alone
// cannot tell a hosted notebook from a local workstation.
type Hint struct {
	// Explicit is a caller-declared kind; Unknown means none.
	Explicit Kind

	// ColabKeyfile and LocalKeyfile report which keyfile paths are configured.
	ColabKeyfile bool
	LocalKeyfile bool
}

// Classify labels the execution context.
//
// Order of precedence:
//  1. a non-empty GOOGLE_CLOUD_PROJECT, GCLOUD_PROJECT or GCP_PROJECT is GCPNative
//  2. a hosted-notebook marker variable is HostedNotebook
//  3. hint.Explicit, when set
//  4. the configured keyfiles: only colab is HostedNotebook, only local or
//     none is Local, both is ambiguous
func Classify(env Environ, hint Hint) (Kind, error) {
	if _, _, ok := ProjectFromEnv(env); ok {
		return GCPNative, nil
	}
	if _, ok := NotebookMarker(env); ok {
		return HostedNotebook, nil
	}

	switch hint.Explicit {
	case Unknown:
	case GCPNative:
		return Unknown, &AmbiguousEnvironmentError{
			Reason: "GCP environment requested but none of GOOGLE_CLOUD_PROJECT, GCLOUD_PROJECT, GCP_PROJECT is set",
		}
	case HostedNotebook, Local:
		return hint.Explicit, nil
	default:
		return Unknown, &AmbiguousEnvironmentError{Reason: "invalid explicit environment " + hint.Explicit.String()}
	}

	switch {
	case hint.ColabKeyfile && hint.LocalKeyfile:
		return Unknown, &AmbiguousEnvironmentError{
			Reason: "no hosted-notebook marker and both json_keyfile_colab and json_keyfile_local are set",
		}
	case hint.ColabKeyfile:
		return HostedNotebook, nil
	default:
		return Local, nil
	}
}
