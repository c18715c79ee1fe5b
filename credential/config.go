package credential

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/credops/envkind"
	"github.com/jonwraymond/credops/secretstore"
)

// Configuration keys.
const (
	KeyBootstrapSecretID = "json_keyfile_GCP_secret_id"
	KeyColabKeyfile      = "json_keyfile_colab"
	KeyLocalKeyfile      = "json_keyfile_local"
	KeySecretName        = "GCP_secret_name"
	KeyEnvironmentLabel  = "environment_label"
	KeyEnvironmentHint   = "ini_environment_identificated"
	KeyScopes            = "gcp_scopes_list"
	KeySecretRequests    = "GCP_secrets_requests_list"
	KeyAsBytes           = "as_bytes_bool"
	KeyErrorIfMissing    = "error_if_missing_bool"
)

// EnvPrefix prefixes environment variables that override file settings.
const EnvPrefix = "CREDOPS_"

// Config holds the options of one resolution.
type Config struct {
	// BootstrapSecretID names the secret holding service-account JSON, as a
	// short id or full resource name. Used only in GCP_NATIVE.
	BootstrapSecretID string `yaml:"json_keyfile_GCP_secret_id"`

	// ColabKeyfile is the keyfile path used in HOSTED_NOTEBOOK.
	ColabKeyfile string `yaml:"json_keyfile_colab"`

	// LocalKeyfile is the keyfile path used in LOCAL.
	LocalKeyfile string `yaml:"json_keyfile_local"`

	// SecretName is the business secret to read.
	SecretName string `yaml:"GCP_secret_name"`

	// EnvironmentLabel is free text for logs. It is never a project id.
	EnvironmentLabel string `yaml:"environment_label"`

	// EnvironmentHint names the environment explicitly:
	// LOCAL, COLAB, COLAB_ENTERPRISE or GCP.
	EnvironmentHint string `yaml:"ini_environment_identificated"`

	// Scopes bind keyfile and bootstrap credentials.
	// Default: secretstore.DefaultScopes()
	Scopes []string `yaml:"gcp_scopes_list"`

	// SecretRequests lists secrets for batch reads.
	SecretRequests []secretstore.Request `yaml:"GCP_secrets_requests_list"`

	// AsBytes returns secret values as []byte instead of string.
	AsBytes bool `yaml:"as_bytes_bool"`

	// ErrorIfMissing fails a batch when any secret cannot be read.
	// Default: true
	ErrorIfMissing *bool `yaml:"error_if_missing_bool"`
}

// ApplyDefaults fills unset options.
func (c *Config) ApplyDefaults() {
	if len(c.Scopes) == 0 {
		c.Scopes = secretstore.DefaultScopes()
	}
	if c.ErrorIfMissing == nil {
		v := true
		c.ErrorIfMissing = &v
	}
}

// FailOnMissing reports whether batch reads must fail on any missing secret.
func (c *Config) FailOnMissing() bool {
	return c.ErrorIfMissing == nil || *c.ErrorIfMissing
}

// Validate checks option shapes. It does not decide which options apply;
// that depends on the environment kind.
func (c *Config) Validate() error {
	if _, err := envkind.ParseHint(c.EnvironmentHint); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyEnvironmentHint, err)
	}
	if id := strings.TrimSpace(c.BootstrapSecretID); secretstore.IsResourceName(id) {
		if _, err := secretstore.ParseResource(id); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyBootstrapSecretID, err)
		}
	}
	for i, req := range c.SecretRequests {
		if req.Resource == "" && strings.TrimSpace(req.SecretID) == "" {
			return fmt.Errorf("%w: %s[%d]: secret id or resource name required", ErrInvalidConfig, KeySecretRequests, i)
		}
		if req.Resource != "" {
			if _, err := secretstore.ParseResource(req.Resource); err != nil {
				return fmt.Errorf("%w: %s[%d]: %w", ErrInvalidConfig, KeySecretRequests, i, err)
			}
		}
	}
	for _, scope := range c.Scopes {
		if strings.TrimSpace(scope) == "" {
			return fmt.Errorf("%w: %s contains an empty scope", ErrInvalidConfig, KeyScopes)
		}
	}
	return nil
}

// Hint returns the classifier inputs carried by the config.
func (c *Config) Hint() (envkind.Hint, error) {
	explicit, err := envkind.ParseHint(c.EnvironmentHint)
	if err != nil {
		return envkind.Hint{}, err
	}
	return envkind.Hint{
		Explicit:     explicit,
		ColabKeyfile: strings.TrimSpace(c.ColabKeyfile) != "",
		LocalKeyfile: strings.TrimSpace(c.LocalKeyfile) != "",
	}, nil
}

// LoadConfig reads a YAML config file, applies defaults and CREDOPS_*
// environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigWithEnviron(path, envkind.OSEnviron())
}

// LoadConfigWithEnviron is LoadConfig with an explicit environment.
func LoadConfigWithEnviron(path string, env envkind.Environ) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	return ParseConfig(data, env)
}

// ParseConfig decodes YAML config data, then applies defaults and overrides
// and validates.
func ParseConfig(data []byte, env envkind.Environ) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %w", ErrInvalidConfig, err)
	}

	applyEnvOverrides(&cfg, env)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config, env envkind.Environ) {
	strs := []struct {
		key string
		dst *string
	}{
		{KeyBootstrapSecretID, &cfg.BootstrapSecretID},
		{KeyColabKeyfile, &cfg.ColabKeyfile},
		{KeyLocalKeyfile, &cfg.LocalKeyfile},
		{KeySecretName, &cfg.SecretName},
		{KeyEnvironmentLabel, &cfg.EnvironmentLabel},
		{KeyEnvironmentHint, &cfg.EnvironmentHint},
	}
	for _, s := range strs {
		if val := env.Get(envName(s.key)); val != "" {
			*s.dst = val
		}
	}

	if val := env.Get(envName(KeyScopes)); val != "" {
		cfg.Scopes = splitList(val)
	}
	if val := env.Get(envName(KeyAsBytes)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.AsBytes = b
		}
	}
	if val := env.Get(envName(KeyErrorIfMissing)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.ErrorIfMissing = &b
		}
	}
}

// envName maps a config key to its override variable,
// e.g. json_keyfile_local -> CREDOPS_JSON_KEYFILE_LOCAL.
func envName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ConfigFromMap builds a Config from loosely typed options, as passed to
// provider factories. Unknown keys are ignored.
func ConfigFromMap(m map[string]any) (*Config, error) {
	cfg := &Config{}

	strs := []struct {
		key string
		dst *string
	}{
		{KeyBootstrapSecretID, &cfg.BootstrapSecretID},
		{KeyColabKeyfile, &cfg.ColabKeyfile},
		{KeyLocalKeyfile, &cfg.LocalKeyfile},
		{KeySecretName, &cfg.SecretName},
		{KeyEnvironmentLabel, &cfg.EnvironmentLabel},
		{KeyEnvironmentHint, &cfg.EnvironmentHint},
	}
	for _, s := range strs {
		raw, ok := m[s.key]
		if !ok || raw == nil {
			continue
		}
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidConfig, s.key, raw)
		}
		*s.dst = strings.TrimSpace(v)
	}

	if raw, ok := m[KeyScopes]; ok && raw != nil {
		scopes, err := stringList(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyScopes, err)
		}
		cfg.Scopes = scopes
	}

	if raw, ok := m[KeySecretRequests]; ok && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			if strs, isStrs := raw.([]string); isStrs {
				for _, s := range strs {
					items = append(items, s)
				}
			} else {
				return nil, fmt.Errorf("%w: %s must be a list, got %T", ErrInvalidConfig, KeySecretRequests, raw)
			}
		}
		for i, item := range items {
			req, err := secretstore.ParseRequest(item)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidConfig, KeySecretRequests, i, err)
			}
			cfg.SecretRequests = append(cfg.SecretRequests, req)
		}
	}

	for _, b := range []struct {
		key string
		set func(bool)
	}{
		{KeyAsBytes, func(v bool) { cfg.AsBytes = v }},
		{KeyErrorIfMissing, func(v bool) { cfg.ErrorIfMissing = &v }},
	} {
		raw, ok := m[b.key]
		if !ok || raw == nil {
			continue
		}
		v, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a bool, got %T", ErrInvalidConfig, b.key, raw)
		}
		b.set(v)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return splitList(v), nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", raw)
	}
}
