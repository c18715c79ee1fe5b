// Package secret runs the credential pipeline and exposes it to
// configuration through secret references.
//
// A Pipeline executes four stages in order, each exactly once per call:
//
//	classify -> ensure -> resolve -> read
//
// classify labels the environment (envkind), ensure makes the Secret Manager
// client available (ensure), resolve produces a credential handle and project
// id (credential), and read fetches the secret (secretstore). A stage never
// retries an earlier one and nothing is cached between calls.
//
// Configuration values can reference secrets with the prefix "secretref:":
//
//   - Full value:  secretref:gsm:hubspot_token
//   - Inline use:  Bearer secretref:gsm:hubspot_token
//   - Pinned:      secretref:gsm:projects/proj-123/secrets/hubspot_token/versions/4
//
// The "gsm" provider is registered in DefaultRegistry and runs the Pipeline
// for each reference.
package secret
