// Package credential turns an environment kind and a Config into an
// authenticated Handle bound to a validated project id.
//
// Two strategies exist and exactly one applies per kind:
//
//   - GCP_NATIVE: ambient default credentials read a bootstrap secret
//     (json_keyfile_GCP_secret_id) holding service-account JSON, which
//     becomes the credential.
//   - HOSTED_NOTEBOOK and LOCAL: service-account JSON is read from the path
//     in json_keyfile_colab or json_keyfile_local.
//
// Every Handle carries a project id that matches the Cloud project id format
// and is never an environment label such as LOCAL or COLAB_ENTERPRISE. When
// no such id can be derived, Resolve fails with *ProjectIDUnresolvedError.
//
// Handles are scoped to one call. Nothing is cached between Resolve calls.
package credential
