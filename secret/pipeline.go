package secret

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jonwraymond/credops/credential"
	"github.com/jonwraymond/credops/ensure"
	"github.com/jonwraymond/credops/envkind"
	"github.com/jonwraymond/credops/observe"
	"github.com/jonwraymond/credops/secretstore"
)

// PipelineConfig configures a Pipeline. Zero values select production
// defaults.
type PipelineConfig struct {
	// Environ is the environment snapshot source.
	// Default: envkind.OSEnviron()
	Environ envkind.Environ

	// Backends holds the secret-store client factories.
	// Default: secretstore.DefaultBackends
	Backends *secretstore.Backends

	// Ensurer makes the store client available.
	// Default: ensure.ForBackends(Backends, logger)
	Ensurer *ensure.Ensurer

	// Reader reads secrets.
	// Default: a Reader over Backends
	Reader *secretstore.Reader

	// Resolver resolves credentials.
	// Default: a Resolver over Environ and Reader
	Resolver *credential.Resolver

	// Middleware instruments each stage.
	// Default: observe.NopMiddleware()
	Middleware *observe.Middleware

	// NewInvocationID labels each run.
	// Default: uuid.NewString
	NewInvocationID func() string
}

// Pipeline runs classify, ensure, resolve and read. It holds no per-call
// state and is safe for concurrent use.
type Pipeline struct {
	config PipelineConfig
}

// NewPipeline creates a Pipeline.
func NewPipeline(config PipelineConfig) *Pipeline {
	if config.Environ == nil {
		config.Environ = envkind.OSEnviron()
	}
	if config.Backends == nil {
		config.Backends = secretstore.DefaultBackends
	}
	if config.Middleware == nil {
		config.Middleware = observe.NopMiddleware()
	}
	logger := config.Middleware.Logger(observe.StageMeta{Stage: "pipeline"})
	if config.Ensurer == nil {
		config.Ensurer = ensure.ForBackends(config.Backends, logger)
	}
	if config.Reader == nil {
		config.Reader = secretstore.NewReader(secretstore.ReaderConfig{Backends: config.Backends})
	}
	if config.Resolver == nil {
		config.Resolver = credential.NewResolver(credential.ResolverConfig{
			Environ: config.Environ,
			Reader:  config.Reader,
			Logger:  logger,
		})
	}
	if config.NewInvocationID == nil {
		config.NewInvocationID = uuid.NewString
	}
	return &Pipeline{config: config}
}

// Session is the outcome of the classify, ensure and resolve stages.
type Session struct {
	InvocationID string
	Kind         envkind.Kind
	Handle       *credential.Handle

	meta observe.StageMeta
}

// Result is the outcome of Run.
type Result struct {
	Session
	Payload *secretstore.Payload
	asBytes bool
}

// Value returns the payload as []byte when the config asked for bytes and
// as a string otherwise.
func (r *Result) Value() any {
	if r.asBytes {
		return r.Payload.Data
	}
	return r.Payload.Text()
}

// BatchResult is the outcome of RunBatch.
type BatchResult struct {
	Session
	Payloads map[string]*secretstore.Payload
	Failures map[string]error
	asBytes  bool
}

// Values returns every payload keyed by alias, as []byte or string
// according to the config.
func (r *BatchResult) Values() map[string]any {
	out := make(map[string]any, len(r.Payloads))
	for k, p := range r.Payloads {
		if r.asBytes {
			out[k] = p.Data
		} else {
			out[k] = p.Text()
		}
	}
	return out
}

// Resolve runs classify, ensure and resolve.
func (p *Pipeline) Resolve(ctx context.Context, cfg credential.Config) (*Session, error) {
	meta := observe.StageMeta{
		InvocationID: p.config.NewInvocationID(),
		Label:        cfg.EnvironmentLabel,
	}
	s := &Session{InvocationID: meta.InvocationID}

	meta.Stage = observe.StageClassify
	err := p.config.Middleware.Run(ctx, meta, func(ctx context.Context) error {
		hint, err := cfg.Hint()
		if err != nil {
			return err
		}
		s.Kind, err = envkind.Classify(p.config.Environ, hint)
		return err
	})
	if err != nil {
		return nil, err
	}
	meta.Environment = s.Kind.String()

	meta.Stage = observe.StageEnsure
	if err := p.config.Middleware.Run(ctx, meta, p.config.Ensurer.Ensure); err != nil {
		return nil, err
	}

	meta.Stage = observe.StageResolve
	err = p.config.Middleware.Run(ctx, meta, func(ctx context.Context) error {
		h, err := p.config.Resolver.Resolve(ctx, s.Kind, cfg)
		s.Handle = h
		return err
	})
	if err != nil {
		return nil, err
	}

	s.meta = meta
	return s, nil
}

// Run resolves a credential and reads cfg.SecretName.
func (p *Pipeline) Run(ctx context.Context, cfg credential.Config) (*Result, error) {
	return p.Read(ctx, cfg, cfg.SecretName)
}

// Read resolves a credential and reads ref, a short secret id or a full
// resource name. An empty ref fails before any stage runs.
func (p *Pipeline) Read(ctx context.Context, cfg credential.Config, ref string) (*Result, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, secretstore.ErrSecretNameMissing
	}

	s, err := p.Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{Session: *s, asBytes: cfg.AsBytes}
	meta := s.meta
	meta.Stage = observe.StageRead
	meta.Secret = ref
	err = p.config.Middleware.Run(ctx, meta, func(ctx context.Context) error {
		var err error
		if secretstore.IsResourceName(ref) {
			var version secretstore.Resource
			if version, err = secretstore.ParseResource(ref); err != nil {
				return projectError(s.Kind, err)
			}
			res.Payload, err = p.config.Reader.ReadVersion(ctx, s.Handle, version)
			return err
		}
		res.Payload, err = p.config.Reader.ReadSecret(ctx, s.Handle, ref)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RunBatch resolves a credential once and reads every request in
// cfg.SecretRequests. With error_if_missing_bool false, failed reads are
// reported in Failures instead of failing the call.
func (p *Pipeline) RunBatch(ctx context.Context, cfg credential.Config) (*BatchResult, error) {
	if len(cfg.SecretRequests) == 0 {
		return nil, secretstore.ErrNoRequests
	}

	s, err := p.Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}

	out := &BatchResult{Session: *s, asBytes: cfg.AsBytes}
	meta := s.meta
	meta.Stage = observe.StageBatch
	err = p.config.Middleware.Run(ctx, meta, func(ctx context.Context) error {
		res, err := p.config.Reader.ReadBatch(ctx, s.Handle, cfg.SecretRequests, secretstore.BatchOptions{
			AllowPartial: !cfg.FailOnMissing(),
		})
		if res != nil {
			out.Payloads = res.Payloads
			out.Failures = res.Failures
		}
		return err
	})
	if err != nil {
		return out, err
	}
	return out, nil
}

// projectError reports a resource name whose project is unusable as a
// *credential.ProjectIDUnresolvedError. Other errors pass through.
func projectError(kind envkind.Kind, err error) error {
	var invalid *secretstore.InvalidResourceError
	if errors.As(err, &invalid) && invalid.Field == secretstore.FieldProject {
		return &credential.ProjectIDUnresolvedError{
			Kind:      kind.String(),
			Candidate: invalid.Value,
			Reason:    "secret resource " + invalid.Reason,
		}
	}
	return err
}
