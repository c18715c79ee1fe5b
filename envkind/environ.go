package envkind

import (
	"os"
	"strings"
)

// Environ looks up a single environment variable.
// It has the same contract as os.LookupEnv.
type Environ func(key string) (string, bool)

// OSEnviron returns an Environ backed by the process environment.
func OSEnviron() Environ {
	return os.LookupEnv
}

// MapEnviron returns an Environ backed by a fixed map.
func MapEnviron(m map[string]string) Environ {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Get returns the trimmed value of key, or "" when unset. A nil Environ
// behaves like an empty environment.
func (e Environ) Get(key string) string {
	if e == nil {
		return ""
	}
	v, _ := e(key)
	return strings.TrimSpace(v)
}

// ProjectEnvVars lists the project-id variables in lookup order.
var ProjectEnvVars = []string{
	"GOOGLE_CLOUD_PROJECT",
	"GCLOUD_PROJECT",
	"GCP_PROJECT",
}

// ProjectFromEnv returns the first non-empty project variable and its value.
func ProjectFromEnv(env Environ) (name, value string, ok bool) {
	for _, key := range ProjectEnvVars {
		if v := env.Get(key); v != "" {
			return key, v, true
		}
	}
	return "", "", false
}

// notebookMarkers are variables set by hosted notebook kernels.
// VERTEX_PRODUCT is only a marker when it equals COLAB_ENTERPRISE.
var notebookMarkers = []string{
	"COLAB_RELEASE_TAG",
	"COLAB_JUPYTER_IP",
	"COLAB_GPU",
}

// NotebookMarker returns the name of the first hosted-notebook marker found.
func NotebookMarker(env Environ) (string, bool) {
	if strings.EqualFold(env.Get("VERTEX_PRODUCT"), "COLAB_ENTERPRISE") {
		return "VERTEX_PRODUCT", true
	}
	for _, key := range notebookMarkers {
		if env.Get(key) != "" {
			return key, true
		}
	}
	return "", false
}
