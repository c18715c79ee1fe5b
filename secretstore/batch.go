package secretstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Request names one secret to read in a batch.
//
// Either Resource (a full resource name) or SecretID must be set. ProjectID
// defaults to the credential's project and Version to latest. Alias is the
// result key; it defaults to the secret id.
type Request struct {
	SecretID  string `yaml:"secret_id_str"`
	ProjectID string `yaml:"project_id_str"`
	Version   string `yaml:"version_str"`
	Resource  string `yaml:"resource_name_str"`
	Alias     string `yaml:"alias_str"`
}

// UnmarshalYAML accepts either a plain string (secret id or resource name)
// or a mapping with the Request fields.
func (r *Request) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*r = RequestFor(s)
		return nil
	}
	type plain Request
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = Request(p)
	return nil
}

// RequestFor builds a Request from a short secret id or a full resource name.
func RequestFor(s string) Request {
	s = strings.TrimSpace(s)
	if IsResourceName(s) {
		return Request{Resource: s}
	}
	return Request{SecretID: s}
}

// ParseRequest converts a loosely typed request (as found in decoded JSON or
// map based configuration) into a Request.
func ParseRequest(v any) (Request, error) {
	switch item := v.(type) {
	case string:
		return RequestFor(item), nil
	case Request:
		return item, nil
	case map[string]any:
		str := func(key string) string {
			s, _ := item[key].(string)
			return strings.TrimSpace(s)
		}
		return Request{
			SecretID:  str("secret_id_str"),
			ProjectID: str("project_id_str"),
			Version:   str("version_str"),
			Resource:  str("resource_name_str"),
			Alias:     str("alias_str"),
		}, nil
	default:
		return Request{}, fmt.Errorf("%w: request must be a string or mapping, got %T", ErrInvalidResource, v)
	}
}

// Resolve returns the addressed version and the result key.
func (r Request) Resolve(defaultProject string) (Resource, string, error) {
	var res Resource
	if r.Resource != "" {
		parsed, err := ParseResource(r.Resource)
		if err != nil {
			return Resource{}, "", err
		}
		res = parsed
	} else {
		if strings.TrimSpace(r.SecretID) == "" {
			return Resource{}, "", ErrSecretNameMissing
		}
		project := r.ProjectID
		if project == "" {
			project = defaultProject
		}
		version := r.Version
		if version == "" {
			version = LatestVersion
		}
		res = Resource{Project: project, Secret: strings.TrimSpace(r.SecretID), Version: version}
		if err := res.Validate(); err != nil {
			return Resource{}, "", err
		}
	}

	key := r.Alias
	if key == "" {
		key = res.Secret
	}
	return res, key, nil
}

// BatchOptions configures ReadBatch.
type BatchOptions struct {
	// AllowPartial returns the readable secrets without an error when some
	// requests fail. Failures are still reported in BatchResult.Failures.
	AllowPartial bool
}

// BatchResult holds the outcome of ReadBatch, keyed by alias or secret id.
type BatchResult struct {
	Payloads map[string]*Payload
	Failures map[string]error
}

// ReadBatch reads several secrets in order over a single client.
//
// Every request is validated before the client is created. Store failures
// are collected per key; unless AllowPartial is set they are returned
// joined, alongside the partial result.
func (r *Reader) ReadBatch(ctx context.Context, cred Credential, reqs []Request, opts BatchOptions) (*BatchResult, error) {
	if len(reqs) == 0 {
		return nil, ErrNoRequests
	}
	if cred == nil {
		return nil, ErrNilCredential
	}

	type planned struct {
		key string
		res Resource
	}
	plan := make([]planned, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for i, req := range reqs {
		res, key, err := req.Resolve(cred.ProjectID())
		if err != nil {
			return nil, fmt.Errorf("request #%d: %w", i+1, err)
		}
		if seen[key] {
			return nil, fmt.Errorf("request #%d: duplicate result key %q", i+1, key)
		}
		seen[key] = true
		plan = append(plan, planned{key: key, res: res})
	}

	client, err := r.newClient(ctx, cred, "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	result := &BatchResult{
		Payloads: make(map[string]*Payload, len(plan)),
		Failures: make(map[string]error),
	}
	var errs []error
	for _, p := range plan {
		payload, err := access(ctx, client, p.res)
		if err != nil {
			result.Failures[p.key] = err
			errs = append(errs, fmt.Errorf("%s: %w", p.key, err))
			continue
		}
		result.Payloads[p.key] = payload
	}

	if len(errs) > 0 && !opts.AllowPartial {
		return result, errors.Join(errs...)
	}
	return result, nil
}
