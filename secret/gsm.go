package secret

import (
	"context"
	"fmt"

	"github.com/jonwraymond/credops/credential"
)

// GSMProviderName is the provider name of Google Cloud Secret Manager refs.
const GSMProviderName = "gsm"

// GSMProvider resolves secretref:gsm:<ref> by running the Pipeline for ref.
// ref is a short secret id or a full resource name.
type GSMProvider struct {
	pipeline *Pipeline
	config   credential.Config
}

// NewGSMProvider creates a provider that resolves refs with cfg.
func NewGSMProvider(pipeline *Pipeline, cfg credential.Config) *GSMProvider {
	if pipeline == nil {
		pipeline = NewPipeline(PipelineConfig{})
	}
	return &GSMProvider{pipeline: pipeline, config: cfg}
}

// NewGSMProviderFromMap is the ProviderFactory for "gsm". cfg uses the
// credential config keys, e.g. json_keyfile_local.
func NewGSMProviderFromMap(cfg map[string]any) (Provider, error) {
	c, err := credential.ConfigFromMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("gsm provider: %w", err)
	}
	return NewGSMProvider(nil, *c), nil
}

func (g *GSMProvider) Name() string { return GSMProviderName }

// Resolve reads ref and returns its value as a string.
func (g *GSMProvider) Resolve(ctx context.Context, ref string) (string, error) {
	res, err := g.pipeline.Read(ctx, g.config, ref)
	if err != nil {
		return "", err
	}
	return res.Payload.Text(), nil
}

// Close is a no-op; the provider holds no clients between calls.
func (g *GSMProvider) Close() error { return nil }

var _ Provider = (*GSMProvider)(nil)
