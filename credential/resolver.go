package credential

import (
	"context"
	"errors"
	"os"

	"golang.org/x/oauth2/google"

	"github.com/jonwraymond/credops/envkind"
	"github.com/jonwraymond/credops/observe"
	"github.com/jonwraymond/credops/secretstore"
)

// DefaultCredentialsFunc finds ambient credentials.
// google.FindDefaultCredentials satisfies it.
type DefaultCredentialsFunc func(ctx context.Context, scopes ...string) (*google.Credentials, error)

// ReadFileFunc reads a keyfile.
type ReadFileFunc func(path string) ([]byte, error)

// CredentialsFromJSONFunc builds credentials from service-account JSON.
type CredentialsFromJSONFunc func(ctx context.Context, data []byte, scopes ...string) (*google.Credentials, error)

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// Environ supplies project id variables.
	// Default: envkind.OSEnviron()
	Environ envkind.Environ

	// DefaultCredentials finds ambient credentials in GCP_NATIVE.
	// Default: google.FindDefaultCredentials
	DefaultCredentials DefaultCredentialsFunc

	// CredentialsFromJSON builds keyfile and bootstrap credentials.
	// Default: google.CredentialsFromJSON
	CredentialsFromJSON CredentialsFromJSONFunc

	// ReadFile reads keyfiles.
	// Default: os.ReadFile
	ReadFile ReadFileFunc

	// Reader reads the bootstrap secret. The default reads from
	// secretstore.DefaultBackends, which an ensure.Ensurer must have
	// populated before Resolve runs in GCP_NATIVE.
	// Default: secretstore.NewReader(secretstore.ReaderConfig{})
	Reader *secretstore.Reader

	// Logger receives resolution events. Key material is never logged.
	// Default: observe.NopLogger()
	Logger observe.Logger
}

// Resolver resolves Handles. It keeps no state between calls.
type Resolver struct {
	config ResolverConfig
}

// NewResolver creates a Resolver.
func NewResolver(config ResolverConfig) *Resolver {
	if config.Environ == nil {
		config.Environ = envkind.OSEnviron()
	}
	if config.DefaultCredentials == nil {
		config.DefaultCredentials = google.FindDefaultCredentials
	}
	if config.CredentialsFromJSON == nil {
		config.CredentialsFromJSON = google.CredentialsFromJSON
	}
	if config.ReadFile == nil {
		config.ReadFile = os.ReadFile
	}
	if config.Reader == nil {
		config.Reader = secretstore.NewReader(secretstore.ReaderConfig{})
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	return &Resolver{config: config}
}

// Resolve produces a Handle for kind from cfg.
func (r *Resolver) Resolve(ctx context.Context, kind envkind.Kind, cfg Config) (*Handle, error) {
	cfg.ApplyDefaults()

	strategy, ignored, err := cfg.StrategyFor(kind)
	if err != nil {
		return nil, err
	}
	for _, key := range ignored {
		r.config.Logger.Warn(ctx, "ignoring config option not used in this environment",
			observe.Field{Key: "option", Value: key},
			observe.Field{Key: "environment", Value: kind.String()},
			observe.Field{Key: "used_option", Value: strategy.ConfigKey()},
		)
	}

	switch s := strategy.(type) {
	case BootstrapStrategy:
		return r.resolveBootstrap(ctx, s, cfg.Scopes)
	case KeyfileStrategy:
		return r.resolveKeyfile(ctx, kind, s, cfg.Scopes)
	default:
		return nil, ErrUnsupportedKind
	}
}

func (r *Resolver) resolveBootstrap(ctx context.Context, s BootstrapStrategy, scopes []string) (*Handle, error) {
	ambient, err := r.config.DefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, &AmbientCredentialsError{Err: err}
	}

	_, envProject, _ := envkind.ProjectFromEnv(r.config.Environ)
	ambientProject := envProject
	if ambientProject == "" {
		ambientProject = ambient.ProjectID
	}

	res, err := bootstrapResource(s.SecretID, ambientProject)
	if err != nil {
		return nil, err
	}

	ambientHandle := &Handle{
		creds:     ambient,
		projectID: res.Project,
		kind:      envkind.GCPNative,
		source:    "ambient",
	}
	payload, err := r.config.Reader.ReadVersion(ctx, ambientHandle, res)
	if err != nil {
		if errors.Is(err, secretstore.ErrSecretNotFound) {
			return nil, &BootstrapSecretNotFoundError{SecretID: s.SecretID, ProjectID: res.Project, Err: err}
		}
		return nil, err
	}

	key, err := ParseServiceAccount(payload.Data)
	if err != nil {
		return nil, &BootstrapSecretMalformedError{SecretID: s.SecretID, Err: err}
	}
	creds, err := r.config.CredentialsFromJSON(ctx, key.JSON(), scopes...)
	if err != nil {
		return nil, &BootstrapSecretMalformedError{SecretID: s.SecretID, Err: err}
	}

	projectID := key.ProjectID
	if projectID == "" {
		projectID = envProject
	}
	if err := checkProjectID(envkind.GCPNative, projectID,
		"service account has no project_id and no project environment variable is set"); err != nil {
		return nil, err
	}

	r.config.Logger.Info(ctx, "resolved bootstrap credential",
		observe.Field{Key: "project_id", Value: projectID},
		observe.Field{Key: "client_email", Value: key.ClientEmail},
		observe.Field{Key: "bootstrap_secret", Value: payload.Resource},
	)
	return &Handle{
		creds:     creds,
		projectID: projectID,
		kind:      envkind.GCPNative,
		source:    "bootstrap:" + payload.Resource,
		email:     key.ClientEmail,
	}, nil
}

// bootstrapResource addresses the bootstrap secret. Short ids are read from
// the ambient project; full names must carry a usable project id.
func bootstrapResource(secretID, ambientProject string) (secretstore.Resource, error) {
	if secretstore.IsResourceName(secretID) {
		res, err := secretstore.ParseResource(secretID)
		var invalid *secretstore.InvalidResourceError
		if errors.As(err, &invalid) && invalid.Field == secretstore.FieldProject {
			return secretstore.Resource{}, &ProjectIDUnresolvedError{
				Kind:      envkind.GCPNative.String(),
				Candidate: invalid.Value,
				Reason:    "bootstrap secret " + invalid.Reason,
			}
		}
		return res, err
	}
	if err := checkProjectID(envkind.GCPNative, ambientProject,
		"no project environment variable is set and ambient credentials carry no project"); err != nil {
		return secretstore.Resource{}, err
	}
	return secretstore.Resource{
		Project: ambientProject,
		Secret:  secretID,
		Version: secretstore.LatestVersion,
	}, nil
}

func (r *Resolver) resolveKeyfile(ctx context.Context, kind envkind.Kind, s KeyfileStrategy, scopes []string) (*Handle, error) {
	data, err := r.config.ReadFile(s.Path)
	if err != nil {
		return nil, &KeyfileNotFoundError{Key: s.Key, Path: s.Path, Err: err}
	}

	key, err := ParseServiceAccount(data)
	if err != nil {
		return nil, &KeyfileMalformedError{Key: s.Key, Path: s.Path, Err: err}
	}
	if err := checkProjectID(kind, key.ProjectID, "service account has no project_id"); err != nil {
		return nil, err
	}

	creds, err := r.config.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, &KeyfileMalformedError{Key: s.Key, Path: s.Path, Err: err}
	}

	r.config.Logger.Info(ctx, "resolved keyfile credential",
		observe.Field{Key: "project_id", Value: key.ProjectID},
		observe.Field{Key: "client_email", Value: key.ClientEmail},
		observe.Field{Key: "keyfile", Value: s.Path},
	)
	return &Handle{
		creds:     creds,
		projectID: key.ProjectID,
		kind:      kind,
		source:    "keyfile:" + s.Path,
		email:     key.ClientEmail,
	}, nil
}
