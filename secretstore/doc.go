// Package secretstore reads secret versions from Google Cloud Secret Manager.
//
// A Reader builds one store client per call from a registered backend
// factory, addresses the version as
//
//	projects/{project}/secrets/{secret}/versions/{version}
//
// and maps store failures to distinct error kinds:
//
//   - NotFound          -> *SecretNotFoundError
//   - PermissionDenied  -> *SecretAccessDeniedError (with the IAM role to grant)
//   - anything else     -> *SecretStoreUnavailableError (with the gRPC code)
//
// An empty secret name fails with ErrSecretNameMissing before any client is
// created. Nothing is retried or cached; retry policy belongs to the caller.
//
// The package accepts any Credential that can report a project id and
// produce client options, so callers can inject fake credentials in tests.
package secretstore
